package httpapi

import (
	"encoding/csv"
	"net/http"

	"github.com/hooppool/hooppool/internal/domain/pick"
	"github.com/valyala/bytebufferpool"
)

// ExportPicks streams the whole pick log as CSV, header first, in the
// stored column order. The body is staged in a pooled buffer so a long
// season does not allocate a fresh megabyte per download.
func (h *Handler) ExportPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportPicks")
	defer span.End()

	records, err := h.submissionService.PickLog(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "export picks failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writer := csv.NewWriter(buf)
	if err := writer.Write(pick.Columns()); err != nil {
		h.logger.ErrorContext(ctx, "export picks header failed", "error", err)
		writeInternalError(ctx, w)
		return
	}
	for _, record := range records {
		row := []string{record.Date, record.User, record.Matchup, record.ChosenTeam, record.GameID}
		if err := writer.Write(row); err != nil {
			h.logger.ErrorContext(ctx, "export picks row failed", "error", err)
			writeInternalError(ctx, w)
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		h.logger.ErrorContext(ctx, "export picks flush failed", "error", err)
		writeInternalError(ctx, w)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="picks.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.B)
}
