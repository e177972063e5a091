package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/timerpro/timer-api/internal/models"
	"github.com/timerpro/timer-api/internal/repository"
	appErrors "github.com/timerpro/timer-api/pkg/errors"
	"github.com/timerpro/timer-api/pkg/timefmt"
)

// TimerQueryService resolves a timer record against its referenced
// configuration, copying alert metadata in when the configuration has
// notify enabled.
type TimerQueryService struct {
	store  configStore
	logger *zap.Logger
}

// NewTimerQueryService constructs a timer query service.
func NewTimerQueryService(store configStore, logger *zap.Logger) *TimerQueryService {
	return &TimerQueryService{store: store, logger: logger}
}

// Resolve normalizes the timer's duration and, when the record points at
// a configuration with notify enabled, copies message, alert_time and
// notify into the result. A missing configuration or notify disabled
// leaves the record unenriched; neither case is an error.
func (s *TimerQueryService) Resolve(ctx context.Context, timer models.LiveTimer) (*models.LiveTimer, error) {
	duration, err := timefmt.Normalize(timer.Duration)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	timer.Duration = duration

	if timer.ConfigDataUUID == "" {
		return &timer, nil
	}

	var cfg models.TimerConfig
	if err := s.store.Get(ctx, repository.NamespaceConfigs, timer.ConfigDataUUID, &cfg); err != nil {
		if errors.Is(err, appErrors.ErrKeyNotFound) {
			if s.logger != nil {
				s.logger.Debug("referenced config absent", zap.String("config_data_uuid", timer.ConfigDataUUID))
			}
			return &timer, nil
		}
		return nil, storeError(err)
	}

	if cfg.Notify {
		notify := cfg.Notify
		timer.Message = cfg.Message
		timer.AlertTime = cfg.AlertTime
		timer.Notify = &notify
	}

	return &timer, nil
}
