package httpapi

import (
	"net/http"

	"github.com/hooppool/hooppool/internal/domain/scoring"
)

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	result, err := h.scoringService.Leaderboard(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	diagnostics := result.Diagnostics
	if diagnostics == nil {
		diagnostics = []scoring.Diagnostic{}
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardDTO{
		Rows:        result.Rows,
		Leader:      result.Leader,
		Diagnostics: diagnostics,
	})
}

type leaderboardDTO struct {
	Rows        []scoring.LeaderboardRow `json:"rows"`
	Leader      string                   `json:"leader,omitempty"`
	Diagnostics []scoring.Diagnostic     `json:"diagnostics"`
}
