package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timerpro/timer-api/internal/dto"
	"github.com/timerpro/timer-api/internal/models"
	"github.com/timerpro/timer-api/internal/repository"
	appErrors "github.com/timerpro/timer-api/pkg/errors"
)

type storeStub struct {
	data   map[repository.Namespace]map[string][]byte
	getErr error
	putErr error
}

func newStoreStub() *storeStub {
	return &storeStub{data: map[repository.Namespace]map[string][]byte{
		repository.NamespaceLive:    {},
		repository.NamespaceConfigs: {},
	}}
}

func (s *storeStub) Get(ctx context.Context, ns repository.Namespace, key string, dest interface{}) error {
	if s.getErr != nil {
		return s.getErr
	}
	raw, ok := s.data[ns][key]
	if !ok {
		return appErrors.ErrKeyNotFound
	}
	return json.Unmarshal(raw, dest)
}

func (s *storeStub) Put(ctx context.Context, ns repository.Namespace, key string, value interface{}, ttl time.Duration) error {
	if s.putErr != nil {
		return s.putErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data[ns][key] = raw
	return nil
}

func (s *storeStub) Delete(ctx context.Context, ns repository.Namespace, key string) error {
	delete(s.data[ns], key)
	return nil
}

func (s *storeStub) List(ctx context.Context, ns repository.Namespace) ([]json.RawMessage, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	result := make([]json.RawMessage, 0, len(s.data[ns]))
	for _, raw := range s.data[ns] {
		result = append(result, json.RawMessage(raw))
	}
	return result, nil
}

func strPtr(v string) *string { return &v }

func newConfigService(store *storeStub) *ConfigService {
	return NewConfigService(store, validator.New(), nil)
}

func TestConfigServiceCreateNotifyRequiresMessage(t *testing.T) {
	svc := newConfigService(newStoreStub())
	_, err := svc.Create(context.Background(), dto.CreateConfigRequest{
		Name:      "morning",
		Duration:  "00:25:00",
		Notify:    true,
		AlertTime: strPtr("08:00:00"),
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "Message field is required.", appErr.Message)
}

func TestConfigServiceCreateNotifyRequiresAlertTime(t *testing.T) {
	svc := newConfigService(newStoreStub())
	_, err := svc.Create(context.Background(), dto.CreateConfigRequest{
		Name:     "morning",
		Duration: "00:25:00",
		Notify:   true,
		Message:  strPtr("wake up"),
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "Alert time field is required.", appErr.Message)
}

func TestConfigServiceCreateNotifyWithBothFields(t *testing.T) {
	store := newStoreStub()
	svc := newConfigService(store)
	cfg, err := svc.Create(context.Background(), dto.CreateConfigRequest{
		Name:      "morning",
		Duration:  "00:25:00",
		Notify:    true,
		AlertTime: strPtr("08:00:00"),
		Message:   strPtr("wake up"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.ID)
	assert.Equal(t, "morning", cfg.Name)
	assert.True(t, cfg.Notify)
	require.NotNil(t, cfg.AlertTime)
	assert.Equal(t, "08:00:00", *cfg.AlertTime)
	assert.Len(t, store.data[repository.NamespaceConfigs], 1)
}

func TestConfigServiceCreateWithoutNotifyAllowsAbsentFields(t *testing.T) {
	svc := newConfigService(newStoreStub())
	cfg, err := svc.Create(context.Background(), dto.CreateConfigRequest{
		Name:     "quiet",
		Duration: "01:00:00",
		Notify:   false,
	})
	require.NoError(t, err)
	assert.Nil(t, cfg.AlertTime)
	assert.Nil(t, cfg.Message)
}

func TestConfigServiceCreateTruncatesSubSeconds(t *testing.T) {
	svc := newConfigService(newStoreStub())
	cfg, err := svc.Create(context.Background(), dto.CreateConfigRequest{
		Name:     "precise",
		Duration: "14:30:45.123",
	})
	require.NoError(t, err)
	assert.Equal(t, "14:30:45", cfg.Duration)
}

func TestConfigServiceCreateRejectsInvalidDuration(t *testing.T) {
	svc := newConfigService(newStoreStub())
	_, err := svc.Create(context.Background(), dto.CreateConfigRequest{
		Name:     "broken",
		Duration: "not a time",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestConfigServiceUpdateReturnsPreviousSnapshot(t *testing.T) {
	store := newStoreStub()
	svc := newConfigService(store)
	created, err := svc.Create(context.Background(), dto.CreateConfigRequest{
		Name:     "X",
		Duration: "00:10:00",
	})
	require.NoError(t, err)

	previous, err := svc.Update(context.Background(), dto.UpdateConfigRequest{
		ID:       created.ID,
		Name:     "Y",
		Duration: "00:20:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "X", previous.Name)
	assert.Equal(t, "00:10:00", previous.Duration)

	configs, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "Y", configs[0].Name)
	assert.Equal(t, "00:20:00", configs[0].Duration)
}

func TestConfigServiceUpdateUnknownIDLeavesStoreUnchanged(t *testing.T) {
	store := newStoreStub()
	svc := newConfigService(store)
	_, err := svc.Update(context.Background(), dto.UpdateConfigRequest{
		ID:       "missing",
		Name:     "ghost",
		Duration: "00:05:00",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "No data found", appErr.Message)
	assert.Empty(t, store.data[repository.NamespaceConfigs])
}

func TestConfigServiceUpdateEnforcesNotifyInvariant(t *testing.T) {
	store := newStoreStub()
	svc := newConfigService(store)
	created, err := svc.Create(context.Background(), dto.CreateConfigRequest{
		Name:     "plain",
		Duration: "00:10:00",
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), dto.UpdateConfigRequest{
		ID:       created.ID,
		Name:     "plain",
		Duration: "00:10:00",
		Notify:   true,
	})
	require.Error(t, err)
	assert.Equal(t, "Message field is required.", appErrors.FromError(err).Message)
}

func TestConfigServiceCreateSurfacesStoreFailure(t *testing.T) {
	store := newStoreStub()
	store.putErr = errors.New("connection refused")
	svc := newConfigService(store)
	_, err := svc.Create(context.Background(), dto.CreateConfigRequest{
		Name:     "unlucky",
		Duration: "00:10:00",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrStore.Code, appErrors.FromError(err).Code)
}

func TestConfigServiceListDecodesAllRecords(t *testing.T) {
	store := newStoreStub()
	svc := newConfigService(store)
	for _, name := range []string{"a", "b", "c"} {
		_, err := svc.Create(context.Background(), dto.CreateConfigRequest{Name: name, Duration: "00:01:00"})
		require.NoError(t, err)
	}

	configs, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, configs, 3)

	var stored models.TimerConfig
	for _, raw := range store.data[repository.NamespaceConfigs] {
		require.NoError(t, json.Unmarshal(raw, &stored))
		assert.NotEmpty(t, stored.ID)
	}
}
