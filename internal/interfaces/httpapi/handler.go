package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/fixture"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/matchmap"
	"github.com/riskibarqy/stadium-matchmap/internal/platform/logging"
	"github.com/riskibarqy/stadium-matchmap/internal/usecase"
)

// MapService is the query and reload surface the handlers depend on.
type MapService interface {
	Markers(ctx context.Context, criteria fixture.Criteria) (matchmap.Resolution, error)
	Load(ctx context.Context) (usecase.Dataset, error)
	Summary() (usecase.DatasetSummary, error)
	Ready() bool
}

type Handler struct {
	maps      MapService
	logger    *logging.Logger
	validator *validator.Validate
}

func NewHandler(maps MapService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		maps:      maps,
		logger:    logger,
		validator: validator.New(),
	}
}

type markersQuery struct {
	Start string `validate:"max=64"`
	End   string `validate:"max=64"`
	City  string `validate:"max=128"`
	Team  string `validate:"max=128"`
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Readyz")
	defer span.End()

	if !h.maps.Ready() {
		writeError(ctx, w, usecase.ErrNotReady)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ready"})
}

// ListMarkers answers GET /v1/markers. Unparseable dates leave the bound open.
func (h *Handler) ListMarkers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMarkers")
	defer span.End()

	values := r.URL.Query()
	query := markersQuery{
		Start: strings.TrimSpace(values.Get("start")),
		End:   strings.TrimSpace(values.Get("end")),
		City:  strings.TrimSpace(values.Get("city")),
		Team:  strings.TrimSpace(values.Get("team")),
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	criteria := fixture.Criteria{
		Start:        fixture.ParseDateBound(query.Start),
		End:          fixture.ParseDateBound(query.End),
		CityContains: query.City,
		TeamContains: query.Team,
	}

	resolution, err := h.maps.Markers(ctx, criteria)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, markersResponseFromResolution(resolution))
}

func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDataset")
	defer span.End()

	summary, err := h.maps.Summary()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, datasetResponseFromSummary(summary))
}

func (h *Handler) ReloadDataset(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReloadDataset")
	defer span.End()

	if _, err := h.maps.Load(ctx); err != nil {
		h.logger.WarnContext(ctx, "dataset reload failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	summary, err := h.maps.Summary()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "dataset reloaded", "version", summary.Version)
	writeSuccess(ctx, w, http.StatusOK, datasetResponseFromSummary(summary))
}
