package dto

// CreateConfigRequest is the body of POST /set-config-timer. The id is
// assigned server-side.
type CreateConfigRequest struct {
	Name      string  `json:"name" binding:"required" validate:"required"`
	Duration  string  `json:"duration" binding:"required" validate:"required"`
	Notify    bool    `json:"notify"`
	AlertTime *string `json:"alert_time"`
	Message   *string `json:"message"`
}

// UpdateConfigRequest is the body of PUT /update-config-timer and must
// reference an existing configuration.
type UpdateConfigRequest struct {
	ID        string  `json:"id" binding:"required" validate:"required"`
	Name      string  `json:"name" binding:"required" validate:"required"`
	Duration  string  `json:"duration" binding:"required" validate:"required"`
	Notify    bool    `json:"notify"`
	AlertTime *string `json:"alert_time"`
	Message   *string `json:"message"`
}

// TimerQueryRequest is the body of POST /get-timer.
type TimerQueryRequest struct {
	ID             string `json:"id" binding:"required" validate:"required"`
	Name           string `json:"name"`
	Duration       string `json:"duration" binding:"required" validate:"required"`
	ConfigDataUUID string `json:"config_data_uuid"`
}
