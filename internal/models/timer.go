package models

// TimerConfig is a persisted timer configuration. AlertTime and Message
// are serialized as null when unset, which is what existing clients
// receive for configurations with notify disabled.
type TimerConfig struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Duration  string  `json:"duration"`
	Notify    bool    `json:"notify"`
	AlertTime *string `json:"alert_time"`
	Message   *string `json:"message"`
}

// LiveTimer is an ephemeral running-timer record keyed by a
// client-supplied id. Message, AlertTime and Notify are only present
// after enrichment from a referenced TimerConfig with notify enabled.
type LiveTimer struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Duration       string  `json:"duration"`
	ConfigDataUUID string  `json:"config_data_uuid,omitempty"`
	Message        *string `json:"message,omitempty"`
	AlertTime      *string `json:"alert_time,omitempty"`
	Notify         *bool   `json:"notify,omitempty"`
}
