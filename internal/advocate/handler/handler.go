package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"advocatehub/internal/search"
	"advocatehub/pkg/platform/httputil"
	"advocatehub/pkg/requestcontext"
)

// Service defines the interface for advocate search.
type Service interface {
	Search(ctx context.Context, c search.Criteria) (*search.Page, error)
}

// Handler serves the advocate list endpoint.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an advocate handler.
func New(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts advocate endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/advocates", h.HandleList)
}

// HandleList handles GET /api/advocates. Query parameters never cause a 4xx:
// paging is clamped and unknown experience codes are dropped.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	params := r.URL.Query()
	criteria := search.FromValues(params)
	if raw := strings.TrimSpace(params.Get(search.ParamExperience)); raw != "" && criteria.Experience == "" {
		h.logger.DebugContext(ctx, "ignoring unrecognized experience filter",
			"request_id", requestID,
			"experience", raw,
		)
	}

	page, err := h.service.Search(ctx, criteria)
	if err != nil {
		h.logger.ErrorContext(ctx, "advocate search failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteJSON(w, http.StatusInternalServerError, fetchFailedResponse)
		return
	}

	h.logger.InfoContext(ctx, "advocates listed",
		"request_id", requestID,
		"total", page.Pagination.Total,
		"returned", len(page.Data),
		"page", page.Pagination.Page,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, page)
}
