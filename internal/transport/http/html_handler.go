package http

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"campaignpulse/internal/dashboard"
	apierrors "campaignpulse/internal/errors"
	"campaignpulse/pkg/contracts"
	"campaignpulse/pkg/contracts/domain"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

// PageTitle is the heading of the dashboard page.
const PageTitle = "Campaign Performance Dashboard"

var dashboardTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

// pageData feeds the dashboard template. Error replaces the whole body.
type pageData struct {
	Title     string
	Version   string
	TextColor string
	Headers   []string
	View      *domain.DashboardView
	Error     string
}

// PageHandler renders the dashboard as a server-side HTML page
type PageHandler struct {
	service DashboardServiceInterface
	logger  *slog.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(service DashboardServiceInterface, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		service: service,
		logger:  logger.With(slog.String("component", "page_handler")),
	}
}

// ServeDashboard handles GET /. Any load failure renders the single
// data-unavailable message with status 503.
func (h *PageHandler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Title:     PageTitle,
		Version:   contracts.Version,
		TextColor: dashboard.TextColor,
		Headers:   domain.LeaderboardHeaders,
	}
	status := http.StatusOK

	view, err := h.service.View(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "dashboard unavailable",
			slog.String("error", err.Error()))
		data.Error = apierrors.DataUnavailableDetail
		status = http.StatusServiceUnavailable
	} else {
		data.View = view
	}

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render dashboard page",
			slog.String("error", err.Error()))
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
