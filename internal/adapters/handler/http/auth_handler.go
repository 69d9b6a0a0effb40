package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/services"
	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/logging"
)

type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/pair", h.Pair)
	}
}

type pairRequest struct {
	PIN string `json:"pin" binding:"required,min=4,max=12,numeric"`
}

func (h *AuthHandler) Pair(c *gin.Context) {
	var req pairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pin must be 4 to 12 digits"})
		return
	}

	res, err := h.service.Pair(req.PIN)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPIN):
			logging.Ctx(c.Request.Context()).Warn().Str("client_ip", c.ClientIP()).Msg("pairing rejected")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid pin"})
		case errors.Is(err, services.ErrPairingDisabled):
			c.JSON(http.StatusForbidden, gin.H{"error": "pairing is disabled"})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	logging.Ctx(c.Request.Context()).Info().Str("device_id", res.DeviceID).Msg("device paired")
	c.JSON(http.StatusOK, res)
}
