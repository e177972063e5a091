package ws

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/timerpro/timer-api/internal/models"
	"github.com/timerpro/timer-api/internal/repository"
	"github.com/timerpro/timer-api/internal/service"
	appErrors "github.com/timerpro/timer-api/pkg/errors"
)

// Push-channel event names. Failures during a set are broadcast on the
// same event clients listen to for updates; delete failures go out on
// the disconnect event. Both quirks are part of the protocol existing
// clients speak.
const (
	EventSetTimer    = "set_timer"
	EventGetTimer    = "get_timer"
	EventDeleteTimer = "delete_time_data"
	EventDisconnect  = "disconnect"
)

type liveStore interface {
	Get(ctx context.Context, ns repository.Namespace, key string, dest interface{}) error
	Put(ctx context.Context, ns repository.Namespace, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, ns repository.Namespace, key string) error
}

type timerResolver interface {
	Resolve(ctx context.Context, timer models.LiveTimer) (*models.LiveTimer, error)
}

type broadcaster interface {
	Broadcast(event string, data interface{})
}

// TimerEvents implements the live-timer event handling: set_timer writes
// the record, enriches it against its configuration and broadcasts the
// result; delete_time_data removes the record if present.
type TimerEvents struct {
	store    liveStore
	resolver timerResolver
	hub      broadcaster
	ttl      time.Duration
	metrics  *service.MetricsService
	logger   *zap.Logger
}

// NewTimerEvents constructs the event handler. A zero ttl keeps live
// records until an explicit delete.
func NewTimerEvents(store liveStore, resolver timerResolver, hub broadcaster, ttl time.Duration, metrics *service.MetricsService, logger *zap.Logger) *TimerEvents {
	return &TimerEvents{store: store, resolver: resolver, hub: hub, ttl: ttl, metrics: metrics, logger: logger}
}

// HandleSetTimer stores the timer at its own id, reads it back, applies
// the configuration merge and broadcasts the enriched record to every
// client on the get_timer event. Any failure is broadcast as the error
// text on the same event.
func (h *TimerEvents) HandleSetTimer(ctx context.Context, raw json.RawMessage) {
	resolved, err := h.setTimer(ctx, raw)
	if err != nil {
		if h.logger != nil {
			h.logger.Warn("set_timer failed", zap.Error(err))
		}
		h.hub.Broadcast(EventGetTimer, err.Error())
		h.metrics.RecordBroadcast(true)
		return
	}
	h.hub.Broadcast(EventGetTimer, resolved)
	h.metrics.RecordBroadcast(false)
}

func (h *TimerEvents) setTimer(ctx context.Context, raw json.RawMessage) (*models.LiveTimer, error) {
	var timer models.LiveTimer
	if err := json.Unmarshal(raw, &timer); err != nil {
		return nil, err
	}
	if timer.ID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "id field is required")
	}

	if err := h.store.Put(ctx, repository.NamespaceLive, timer.ID, timer, h.ttl); err != nil {
		return nil, err
	}

	var stored models.LiveTimer
	if err := h.store.Get(ctx, repository.NamespaceLive, timer.ID, &stored); err != nil {
		return nil, err
	}

	return h.resolver.Resolve(ctx, stored)
}

// HandleDeleteTimer removes the live record at the given id. A missing
// record is a silent no-op. Failures are emitted on the disconnect
// event name.
func (h *TimerEvents) HandleDeleteTimer(ctx context.Context, raw json.RawMessage) {
	if err := h.deleteTimer(ctx, raw); err != nil {
		if h.logger != nil {
			h.logger.Warn("delete_time_data failed", zap.Error(err))
		}
		h.hub.Broadcast(EventDisconnect, err.Error())
	}
}

func (h *TimerEvents) deleteTimer(ctx context.Context, raw json.RawMessage) error {
	var payload struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}

	var existing models.LiveTimer
	if err := h.store.Get(ctx, repository.NamespaceLive, payload.ID, &existing); err != nil {
		if errors.Is(err, appErrors.ErrKeyNotFound) {
			return nil
		}
		return err
	}

	return h.store.Delete(ctx, repository.NamespaceLive, payload.ID)
}
