package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"campaignpulse/internal/config"
	"campaignpulse/internal/dataprocessing"
	apierrors "campaignpulse/internal/errors"
	"campaignpulse/internal/middleware"
)

// trendPeriods are the accepted values of the period query parameter.
var trendPeriods = []string{
	string(dataprocessing.Daily),
	string(dataprocessing.Weekly),
	string(dataprocessing.Monthly),
}

// DashboardHandler serves the dashboard view model as JSON
type DashboardHandler struct {
	service         DashboardServiceInterface
	validator       *middleware.QueryParamValidator
	leaderboardSize int
	maxLeaderboard  int
	logger          *slog.Logger
	errorHandler    *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, cfg config.DashboardConfig, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	logger = logger.With(slog.String("component", "dashboard_handler"))

	size, maxSize := cfg.LeaderboardSize, cfg.MaxLeaderboard
	if maxSize <= 0 {
		maxSize = config.MaxLeaderboardSize
	}
	if size <= 0 || size > maxSize {
		size = config.DefaultLeaderboardSize
	}

	return &DashboardHandler{
		service:         service,
		validator:       middleware.NewQueryParamValidator(logger, errorHandler),
		leaderboardSize: size,
		maxLeaderboard:  maxSize,
		logger:          logger,
		errorHandler:    errorHandler,
	}
}

// Routes returns the dashboard routes
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetView)
	r.Get("/summary", h.GetSummary)
	r.Get("/kpis", h.GetKPIs)
	r.Get("/charts", h.GetCharts)
	r.Get("/insights", h.GetInsights)
	r.Get("/leaderboard", h.GetLeaderboard)
	r.Get("/trends", h.GetTrends)

	return r
}

// GetView handles GET /api/dashboard
func (h *DashboardHandler) GetView(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.View(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	success(w, r, view)
}

// GetSummary handles GET /api/dashboard/summary
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	success(w, r, summary)
}

// GetKPIs handles GET /api/dashboard/kpis
func (h *DashboardHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.View(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	success(w, r, view.KPIs)
}

// GetCharts handles GET /api/dashboard/charts
func (h *DashboardHandler) GetCharts(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.View(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	success(w, r, view.Charts)
}

// GetInsights handles GET /api/dashboard/insights
func (h *DashboardHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.View(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	success(w, r, view.Insights)
}

// GetLeaderboard handles GET /api/dashboard/leaderboard?limit=N
func (h *DashboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.validator.ValidateInt(w, r, "limit", 1, h.maxLeaderboard, h.leaderboardSize)
	if !ok {
		return
	}

	rows, err := h.service.Leaderboard(r.Context(), limit)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   rows,
		"count":  len(rows),
	})
}

// GetTrends handles GET /api/dashboard/trends?period=daily|weekly|monthly
func (h *DashboardHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	period, ok := h.validator.ValidateEnum(w, r, "period", trendPeriods, string(dataprocessing.Monthly))
	if !ok {
		return
	}

	points, err := h.service.Trends(r.Context(), dataprocessing.Period(period))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"period": period,
		"data":   points,
		"count":  len(points),
	})
}

func success(w http.ResponseWriter, r *http.Request, data interface{}) {
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   data,
	})
}
