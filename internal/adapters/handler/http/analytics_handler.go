package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/domain"
	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/services"
	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/logging"
)

const computeFailedMessage = "failed to compute scores"

type rangeParam struct {
	name string
	def  int
	max  int
}

var (
	daysParam   = rangeParam{name: "days", def: 30, max: 366}
	weeksParam  = rangeParam{name: "weeks", def: 12, max: 104}
	monthsParam = rangeParam{name: "months", def: 12, max: 36}
)

type AnalyticsHandler struct {
	svc *services.AnalyticsService
}

func NewAnalyticsHandler(svc *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

func (h *AnalyticsHandler) RegisterRoutes(r *gin.RouterGroup) {
	scores := r.Group("/scores")
	{
		scores.GET("/daily", h.DailyScores)
		scores.GET("/weekly", h.WeeklyScores)
		scores.GET("/monthly", h.MonthlyScores)
	}
	r.GET("/suggestions", h.Suggestions)
	r.GET("/drilldown", h.DrillDown)
	r.GET("/dashboard", h.Dashboard)
}

// parseRange reads an optional positive integer query parameter bounded by p.max.
func parseRange(c *gin.Context, p rangeParam) (int, bool) {
	raw := c.Query(p.name)
	if raw == "" {
		return p.def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > p.max {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("%s must be an integer between 1 and %d", p.name, p.max),
		})
		return 0, false
	}
	return n, true
}

// respondError maps validation errors to 400. Anything else is a single 500
// carrying fallback.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrInvalidSelector),
		errors.Is(err, domain.ErrInvalidDateKey),
		errors.Is(err, domain.ErrInvalidModule),
		errors.Is(err, domain.ErrInvalidGoals),
		errors.Is(err, domain.ErrInvalidSetting):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		logging.Ctx(c.Request.Context()).Error().Err(err).Str("route", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func (h *AnalyticsHandler) DailyScores(c *gin.Context) {
	days, ok := parseRange(c, daysParam)
	if !ok {
		return
	}

	scores, err := h.svc.DailyScoresForLastDays(c.Request.Context(), days)
	if err != nil {
		respondError(c, err, computeFailedMessage)
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": scores})
}

func (h *AnalyticsHandler) WeeklyScores(c *gin.Context) {
	weeks, ok := parseRange(c, weeksParam)
	if !ok {
		return
	}

	scores, err := h.svc.WeeklyScoresForLastWeeks(c.Request.Context(), weeks)
	if err != nil {
		respondError(c, err, computeFailedMessage)
		return
	}

	c.JSON(http.StatusOK, gin.H{"weeks": scores})
}

func (h *AnalyticsHandler) MonthlyScores(c *gin.Context) {
	months, ok := parseRange(c, monthsParam)
	if !ok {
		return
	}

	scores, err := h.svc.MonthlyScoresForLastMonths(c.Request.Context(), months)
	if err != nil {
		respondError(c, err, computeFailedMessage)
		return
	}

	c.JSON(http.StatusOK, gin.H{"months": scores})
}

func (h *AnalyticsHandler) Suggestions(c *gin.Context) {
	days, ok := parseRange(c, daysParam)
	if !ok {
		return
	}

	suggestions, err := h.svc.Suggestions(c.Request.Context(), days)
	if err != nil {
		respondError(c, err, computeFailedMessage)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

type drillDownQuery struct {
	Type string `form:"type" binding:"required,oneof=day week month"`
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

func (h *AnalyticsHandler) DrillDown(c *gin.Context) {
	var q drillDownQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be day, week or month and date must be YYYY-MM-DD"})
		return
	}

	breakdown, err := h.svc.DrillDown(c.Request.Context(), domain.DrillDownSelector{
		Type:    domain.SelectorType(q.Type),
		DateKey: q.Date,
	})
	if err != nil {
		respondError(c, err, computeFailedMessage)
		return
	}

	c.JSON(http.StatusOK, gin.H{"breakdown": breakdown})
}

func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	dash, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err, computeFailedMessage)
		return
	}

	c.JSON(http.StatusOK, dash)
}
