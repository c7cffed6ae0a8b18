package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/hooppool/hooppool/internal/domain/game"
	"github.com/hooppool/hooppool/internal/domain/pick"
	"github.com/hooppool/hooppool/internal/domain/scoring"
	"github.com/hooppool/hooppool/internal/platform/logging"
)

type mockPickStore struct{ mock.Mock }

func (m *mockPickStore) ReadAll(ctx context.Context) ([]pick.Record, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]pick.Record)
	return records, args.Error(1)
}

func (m *mockPickStore) Append(ctx context.Context, records []pick.Record) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

type mockResultsProvider struct{ mock.Mock }

func (m *mockResultsProvider) FixturesByDate(ctx context.Context, date string) ([]game.Fixture, []scoring.Diagnostic, error) {
	args := m.Called(ctx, date)
	fixtures, _ := args.Get(0).([]game.Fixture)
	diagnostics, _ := args.Get(1).([]scoring.Diagnostic)
	return fixtures, diagnostics, args.Error(2)
}

func TestScoringService_Leaderboard_QueriesEachDateOnceUsingMocks(t *testing.T) {
	t.Parallel()

	store := &mockPickStore{}
	provider := &mockResultsProvider{}
	service := NewScoringService(store, provider, logging.NewNop())

	records := []pick.Record{
		{Date: "2026-01-14", User: "Frank", Matchup: "Celtics vs Lakers", ChosenTeam: "Lakers", GameID: "0022500088"},
		{Date: "2026-01-14", User: "Moises", Matchup: "Celtics vs Lakers", ChosenTeam: "Celtics", GameID: "0022500088"},
		{Date: "2026-01-14", User: "Kike", Matchup: "Celtics vs Lakers", ChosenTeam: "Lakers", GameID: "0022500088"},
		{Date: "2026-01-15", User: "Frank", Matchup: "Bucks vs Nuggets", ChosenTeam: "Bucks", GameID: "0022500095"},
	}
	store.On("ReadAll", mock.Anything).Return(records, nil).Once()

	provider.
		On("FixturesByDate", mock.Anything, "2026-01-14").
		Return([]game.Fixture{
			{GameID: "0022500088", HomeTeam: "Lakers", AwayTeam: "Celtics", Status: game.StatusFinal, HomeScore: 104, AwayScore: 98},
		}, []scoring.Diagnostic(nil), nil).
		Once()
	provider.
		On("FixturesByDate", mock.Anything, "2026-01-15").
		Return([]game.Fixture(nil), []scoring.Diagnostic(nil), errors.New("feed offline")).
		Once()

	result, err := service.Leaderboard(context.Background())
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if result.Leader != "Frank" {
		t.Fatalf("unexpected leader: %q", result.Leader)
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Date != "2026-01-15" {
		t.Fatalf("failed date must become a diagnostic: %+v", result.Diagnostics)
	}

	store.AssertExpectations(t)
	provider.AssertExpectations(t)
}
