package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/timerpro/timer-api/internal/dto"
	"github.com/timerpro/timer-api/internal/models"
	"github.com/timerpro/timer-api/internal/repository"
	appErrors "github.com/timerpro/timer-api/pkg/errors"
	"github.com/timerpro/timer-api/pkg/timefmt"
)

type configStore interface {
	Get(ctx context.Context, ns repository.Namespace, key string, dest interface{}) error
	Put(ctx context.Context, ns repository.Namespace, key string, value interface{}, ttl time.Duration) error
	List(ctx context.Context, ns repository.Namespace) ([]json.RawMessage, error)
}

// ConfigService implements CRUD over persisted timer configurations.
type ConfigService struct {
	store    configStore
	validate *validator.Validate
	logger   *zap.Logger
}

// NewConfigService constructs a config service.
func NewConfigService(store configStore, validate *validator.Validate, logger *zap.Logger) *ConfigService {
	return &ConfigService{store: store, validate: validate, logger: logger}
}

// checkNotifyFields enforces the notify dependency: a configuration with
// notify enabled must carry both a message and an alert time. The check
// order and messages are part of the client-facing contract.
func checkNotifyFields(notify bool, message, alertTime *string) error {
	if !notify {
		return nil
	}
	if message == nil || *message == "" {
		return appErrors.Clone(appErrors.ErrValidation, "Message field is required.")
	}
	if alertTime == nil || *alertTime == "" {
		return appErrors.Clone(appErrors.ErrValidation, "Alert time field is required.")
	}
	return nil
}

// Create validates, normalizes and persists a new configuration, then
// returns the freshly re-read record rather than an echo of the input.
func (s *ConfigService) Create(ctx context.Context, req dto.CreateConfigRequest) (*models.TimerConfig, error) {
	if s.validate != nil {
		if err := s.validate.Struct(req); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
		}
	}
	if err := checkNotifyFields(req.Notify, req.Message, req.AlertTime); err != nil {
		return nil, err
	}

	duration, err := timefmt.Normalize(req.Duration)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	alertTime, err := timefmt.NormalizePtr(req.AlertTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	cfg := models.TimerConfig{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Duration:  duration,
		Notify:    req.Notify,
		AlertTime: alertTime,
		Message:   req.Message,
	}

	if err := s.store.Put(ctx, repository.NamespaceConfigs, cfg.ID, cfg, 0); err != nil {
		return nil, storeError(err)
	}

	var stored models.TimerConfig
	if err := s.store.Get(ctx, repository.NamespaceConfigs, cfg.ID, &stored); err != nil {
		return nil, storeError(err)
	}

	if s.logger != nil {
		s.logger.Info("timer config created", zap.String("id", stored.ID), zap.String("name", stored.Name))
	}
	return &stored, nil
}

// List returns every configuration in the store, in no particular order.
func (s *ConfigService) List(ctx context.Context) ([]models.TimerConfig, error) {
	raws, err := s.store.List(ctx, repository.NamespaceConfigs)
	if err != nil {
		return nil, storeError(err)
	}

	configs := make([]models.TimerConfig, 0, len(raws))
	for _, raw := range raws {
		var cfg models.TimerConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, storeError(err)
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

// Update overwrites an existing configuration. The returned record is
// the pre-update snapshot: callers receive what was replaced, and a
// subsequent List shows the new values. Existing clients depend on this
// contract.
func (s *ConfigService) Update(ctx context.Context, req dto.UpdateConfigRequest) (*models.TimerConfig, error) {
	if s.validate != nil {
		if err := s.validate.Struct(req); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
		}
	}
	if err := checkNotifyFields(req.Notify, req.Message, req.AlertTime); err != nil {
		return nil, err
	}

	var previous models.TimerConfig
	if err := s.store.Get(ctx, repository.NamespaceConfigs, req.ID, &previous); err != nil {
		if errors.Is(err, appErrors.ErrKeyNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "No data found")
		}
		return nil, storeError(err)
	}

	duration, err := timefmt.Normalize(req.Duration)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	alertTime, err := timefmt.NormalizePtr(req.AlertTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	cfg := models.TimerConfig{
		ID:        req.ID,
		Name:      req.Name,
		Duration:  duration,
		Notify:    req.Notify,
		AlertTime: alertTime,
		Message:   req.Message,
	}

	if err := s.store.Put(ctx, repository.NamespaceConfigs, cfg.ID, cfg, 0); err != nil {
		return nil, storeError(err)
	}

	if s.logger != nil {
		s.logger.Info("timer config updated", zap.String("id", cfg.ID))
	}
	return &previous, nil
}

func storeError(err error) error {
	return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, err.Error())
}
