package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/hooppool/hooppool/internal/usecase"
)

type Handler struct {
	submissionService *usecase.SubmissionService
	scoringService    *usecase.ScoringService
	fixtureService    *usecase.FixtureService
	logger            *slog.Logger
	validator         *validator.Validate
}

func NewHandler(
	submissionService *usecase.SubmissionService,
	scoringService *usecase.ScoringService,
	fixtureService *usecase.FixtureService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		submissionService: submissionService,
		scoringService:    scoringService,
		fixtureService:    fixtureService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUsers")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.submissionService.Roster())
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrValidation, err)
	}

	return nil
}
