package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/domain"
	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/services"
)

const settingsFailedMessage = "failed to update settings"

type SettingsHandler struct {
	svc *services.SettingsService
}

func NewSettingsHandler(svc *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

func (h *SettingsHandler) RegisterRoutes(r *gin.RouterGroup) {
	settings := r.Group("/settings")
	{
		settings.GET("/visibility", h.GetVisibility)
		settings.PUT("/visibility", h.UpdateVisibility)
		settings.GET("/goals", h.GetGoals)
		settings.PUT("/goals", h.UpdateGoals)
		settings.GET("/modules", h.ListModuleSettings)
		settings.PUT("/modules/:module", h.UpdateModuleSetting)
	}
}

func (h *SettingsHandler) GetVisibility(c *gin.Context) {
	v, err := h.svc.Visibility(c.Request.Context())
	if err != nil {
		respondError(c, err, settingsFailedMessage)
		return
	}
	c.JSON(http.StatusOK, gin.H{"visibility": v})
}

func (h *SettingsHandler) UpdateVisibility(c *gin.Context) {
	var req map[domain.Module]bool
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be an object of module flags"})
		return
	}

	v, err := h.svc.UpdateVisibility(c.Request.Context(), domain.Visibility(req))
	if err != nil {
		respondError(c, err, settingsFailedMessage)
		return
	}
	c.JSON(http.StatusOK, gin.H{"visibility": v})
}

func (h *SettingsHandler) GetGoals(c *gin.Context) {
	goals, err := h.svc.Goals(c.Request.Context())
	if err != nil {
		respondError(c, err, settingsFailedMessage)
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (h *SettingsHandler) UpdateGoals(c *gin.Context) {
	current, err := h.svc.Goals(c.Request.Context())
	if err != nil {
		respondError(c, err, settingsFailedMessage)
		return
	}

	// Fields missing from the body keep their current value.
	if err := c.ShouldBindJSON(&current); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goals payload"})
		return
	}

	goals, err := h.svc.UpdateGoals(c.Request.Context(), current)
	if err != nil {
		respondError(c, err, settingsFailedMessage)
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (h *SettingsHandler) ListModuleSettings(c *gin.Context) {
	settings, err := h.svc.ModuleSettings(c.Request.Context())
	if err != nil {
		respondError(c, err, settingsFailedMessage)
		return
	}

	out := make(map[domain.Module]domain.ModuleSetting, len(domain.Modules))
	for _, m := range domain.Modules {
		s := settings[m]
		counts := s.CountsInScore()
		s.CountInScore = &counts
		out[m] = s
	}
	c.JSON(http.StatusOK, gin.H{"modules": out})
}

type moduleSettingRequest struct {
	TrackingStartDate *string `json:"trackingStartDate"`
	CountInScore      *bool   `json:"countInScore"`
}

func (h *SettingsHandler) UpdateModuleSetting(c *gin.Context) {
	module, err := domain.ParseModule(c.Param("module"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown module"})
		return
	}

	var req moduleSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid module setting payload"})
		return
	}

	setting, err := h.svc.UpdateModuleSetting(c.Request.Context(), services.UpdateModuleSettingInput{
		Module:            module,
		TrackingStartDate: req.TrackingStartDate,
		CountInScore:      req.CountInScore,
	})
	if err != nil {
		respondError(c, err, settingsFailedMessage)
		return
	}
	c.JSON(http.StatusOK, gin.H{"module": module, "setting": setting})
}
