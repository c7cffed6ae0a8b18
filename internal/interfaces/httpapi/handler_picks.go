package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/hooppool/hooppool/internal/domain/game"
	"github.com/hooppool/hooppool/internal/domain/pick"
	"github.com/hooppool/hooppool/internal/usecase"
)

func (h *Handler) ListTodaysFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTodaysFixtures")
	defer span.End()

	date := strings.TrimSpace(r.URL.Query().Get("date"))

	var fixtures []game.Fixture
	var err error
	if date == "" {
		fixtures, err = h.fixtureService.TodaysSlate(ctx)
	} else {
		fixtures, err = h.fixtureService.SlateByDate(ctx, date)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "list fixtures failed", "date", date, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]fixtureDTO, 0, len(fixtures))
	for _, fx := range fixtures {
		items = append(items, fixtureToDTO(ctx, fx))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetOpenFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOpenFixtures")
	defer span.End()

	user := strings.TrimSpace(r.URL.Query().Get("user"))
	slate, err := h.submissionService.OpenFixtures(ctx, user)
	if err != nil {
		h.logger.WarnContext(ctx, "open fixtures failed", "user", user, "error", err)
		writeError(ctx, w, err)
		return
	}

	open := make([]fixtureDTO, 0, len(slate.Open))
	for _, fx := range slate.Open {
		open = append(open, fixtureToDTO(ctx, fx))
	}

	writeSuccess(ctx, w, http.StatusOK, openSlateDTO{
		User:          user,
		AlreadyPicked: slate.AlreadyPicked,
		Open:          open,
	})
}

func (h *Handler) SubmitPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPicks")
	defer span.End()

	var req submitPicksRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrValidation, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	selections := make([]usecase.Selection, 0, len(req.Selections))
	for _, item := range req.Selections {
		selections = append(selections, usecase.Selection{
			GameID:     item.GameID,
			ChosenTeam: item.ChosenTeam,
		})
	}

	records, err := h.submissionService.Submit(ctx, req.User, selections)
	if err != nil {
		h.logger.WarnContext(ctx, "submit picks failed", "user", req.User, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]pickDTO, 0, len(records))
	for _, record := range records {
		items = append(items, pickToDTO(ctx, record))
	}

	writeSuccess(ctx, w, http.StatusCreated, items)
}

type submitPicksRequest struct {
	User       string                `json:"user" validate:"required"`
	Selections []pickSelectionScheme `json:"selections" validate:"required,min=1,dive"`
}

type pickSelectionScheme struct {
	GameID     string `json:"game_id" validate:"required"`
	ChosenTeam string `json:"chosen_team" validate:"required"`
}

type openSlateDTO struct {
	User          string            `json:"user"`
	AlreadyPicked map[string]string `json:"alreadyPicked"`
	Open          []fixtureDTO      `json:"open"`
}

type fixtureDTO struct {
	GameID    string `json:"gameId"`
	Matchup   string `json:"matchup"`
	HomeTeam  string `json:"homeTeam"`
	AwayTeam  string `json:"awayTeam"`
	Status    string `json:"status"`
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
}

type pickDTO struct {
	Date       string `json:"date"`
	User       string `json:"user"`
	Matchup    string `json:"matchup"`
	ChosenTeam string `json:"chosenTeam"`
	GameID     string `json:"gameId"`
}

func fixtureToDTO(ctx context.Context, v game.Fixture) fixtureDTO {
	ctx, span := startSpan(ctx, "httpapi.fixtureToDTO")
	defer span.End()

	return fixtureDTO{
		GameID:    v.GameID,
		Matchup:   v.Matchup(),
		HomeTeam:  v.HomeTeam,
		AwayTeam:  v.AwayTeam,
		Status:    game.NormalizeStatus(v.Status),
		HomeScore: v.HomeScore,
		AwayScore: v.AwayScore,
	}
}

func pickToDTO(ctx context.Context, v pick.Record) pickDTO {
	ctx, span := startSpan(ctx, "httpapi.pickToDTO")
	defer span.End()

	return pickDTO{
		Date:       v.Date,
		User:       v.User,
		Matchup:    v.Matchup,
		ChosenTeam: v.ChosenTeam,
		GameID:     v.GameID,
	}
}
