package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"campaignpulse/internal/config"
	apierrors "campaignpulse/internal/errors"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportHandler serves report downloads
type ExportHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewExportHandler creates a new export handler
func NewExportHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ExportHandler {
	return &ExportHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "export_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the export routes
func (h *ExportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/campaigns.csv", h.DownloadCampaigns)
	r.Get("/workbook.xlsx", h.DownloadWorkbook)
	return r
}

// DownloadCampaigns handles GET /api/export/campaigns.csv
func (h *ExportHandler) DownloadCampaigns(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, config.CampaignsCSVName, contentTypeCSV, h.service.ExportCSV)
}

// DownloadWorkbook handles GET /api/export/workbook.xlsx
func (h *ExportHandler) DownloadWorkbook(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, config.WorkbookName, contentTypeXLSX, h.service.ExportWorkbook)
}

// download buffers the whole export so a failure can still be answered
// with a problem document instead of a truncated file.
func (h *ExportHandler) download(w http.ResponseWriter, r *http.Request, filename, contentType string, export func(context.Context, io.Writer) error) {
	var buf bytes.Buffer
	if err := export(r.Context(), &buf); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "export served",
		slog.String("file", filename),
		slog.Int("bytes", buf.Len()))

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "export write interrupted",
			slog.String("file", filename),
			slog.String("error", err.Error()))
	}
}
