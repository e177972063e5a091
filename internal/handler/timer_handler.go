package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/timerpro/timer-api/internal/dto"
	"github.com/timerpro/timer-api/internal/models"
	appErrors "github.com/timerpro/timer-api/pkg/errors"
	"github.com/timerpro/timer-api/pkg/response"
)

type configService interface {
	Create(ctx context.Context, req dto.CreateConfigRequest) (*models.TimerConfig, error)
	List(ctx context.Context) ([]models.TimerConfig, error)
	Update(ctx context.Context, req dto.UpdateConfigRequest) (*models.TimerConfig, error)
}

type timerQueryService interface {
	Resolve(ctx context.Context, timer models.LiveTimer) (*models.LiveTimer, error)
}

// TimerHandler exposes the timer-configuration HTTP surface.
type TimerHandler struct {
	configs configService
	query   timerQueryService
}

// NewTimerHandler builds a new handler.
func NewTimerHandler(configs configService, query timerQueryService) *TimerHandler {
	return &TimerHandler{configs: configs, query: query}
}

// Register attaches the timer routes to the router.
func (h *TimerHandler) Register(r gin.IRouter) {
	r.POST("/set-config-timer", h.CreateConfig)
	r.GET("/retrieve-config-timer", h.ListConfigs)
	r.PUT("/update-config-timer", h.UpdateConfig)
	r.POST("/get-timer", h.GetTimer)
}

// CreateConfig handles POST /set-config-timer.
func (h *TimerHandler) CreateConfig(c *gin.Context) {
	var req dto.CreateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, err.Error()))
		return
	}
	cfg, err := h.configs.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, cfg, "Successfully set time configuration.")
}

// ListConfigs handles GET /retrieve-config-timer.
func (h *TimerHandler) ListConfigs(c *gin.Context) {
	configs, err := h.configs.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, configs, "Successfully retrieve time configuration.")
}

// UpdateConfig handles PUT /update-config-timer. The success payload is
// the pre-update snapshot of the configuration.
func (h *TimerHandler) UpdateConfig(c *gin.Context) {
	var req dto.UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, err.Error()))
		return
	}
	previous, err := h.configs.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, previous, "Successfully update time configuration.")
}

// GetTimer handles POST /get-timer, returning the timer enriched with
// alert metadata when its referenced configuration asks for it.
func (h *TimerHandler) GetTimer(c *gin.Context) {
	var req dto.TimerQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, err.Error()))
		return
	}
	timer := models.LiveTimer{
		ID:             req.ID,
		Name:           req.Name,
		Duration:       req.Duration,
		ConfigDataUUID: req.ConfigDataUUID,
	}
	resolved, err := h.query.Resolve(c.Request.Context(), timer)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, resolved, "Successfully retrieve timer.")
}
