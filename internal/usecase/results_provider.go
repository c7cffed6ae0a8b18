package usecase

import (
	"context"
	"fmt"

	"github.com/hooppool/hooppool/internal/domain/game"
	"github.com/hooppool/hooppool/internal/domain/scoring"
	"github.com/hooppool/hooppool/internal/domain/team"
)

// LiveScoreboard fetches name-keyed fixtures from the live feed.
type LiveScoreboard interface {
	TodayFixtures(ctx context.Context) ([]game.Fixture, error)
	FixturesByDate(ctx context.Context, date string) ([]game.Fixture, error)
}

// LineScoreSource fetches per-team scoring rows from the historical feed.
type LineScoreSource interface {
	LineScoresByDate(ctx context.Context, date string) ([]game.LineScoreRow, error)
}

// ResultsProvider yields one date's fixtures for a results run, normalized
// to display-name teams, plus diagnostics for items it had to drop. The
// scoring engine never knows which feed is behind it.
type ResultsProvider interface {
	FixturesByDate(ctx context.Context, date string) ([]game.Fixture, []scoring.Diagnostic, error)
}

type liveResultsProvider struct {
	scoreboard LiveScoreboard
}

// NewLiveResultsProvider adapts the live scoreboard, whose fixtures already
// carry display names.
func NewLiveResultsProvider(scoreboard LiveScoreboard) ResultsProvider {
	return &liveResultsProvider{scoreboard: scoreboard}
}

func (p *liveResultsProvider) FixturesByDate(ctx context.Context, date string) ([]game.Fixture, []scoring.Diagnostic, error) {
	fixtures, err := p.scoreboard.FixturesByDate(ctx, date)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: live scoreboard for %s: %v", ErrFixtureFetch, date, err)
	}
	return fixtures, nil, nil
}

type historicalResultsProvider struct {
	lines     LineScoreSource
	directory team.Directory
}

// NewHistoricalResultsProvider adapts the line-score feed, resolving its
// numeric team ids through the franchise directory.
func NewHistoricalResultsProvider(lines LineScoreSource, directory team.Directory) ResultsProvider {
	return &historicalResultsProvider{lines: lines, directory: directory}
}

func (p *historicalResultsProvider) FixturesByDate(ctx context.Context, date string) ([]game.Fixture, []scoring.Diagnostic, error) {
	rows, err := p.lines.LineScoresByDate(ctx, date)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: line scores for %s: %v", ErrFixtureFetch, date, err)
	}

	teams, err := p.directory.ListTeams(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: team directory for %s: %v", ErrFixtureFetch, date, err)
	}
	translator := team.BuildTranslator(teams)

	grouped := groupLineScores(rows)
	fixtures := make([]game.Fixture, 0, len(grouped))
	var diagnostics []scoring.Diagnostic
	for _, group := range grouped {
		fx, diag, ok := fixtureFromLineScores(date, group, translator)
		if !ok {
			diagnostics = append(diagnostics, diag)
			continue
		}
		fixtures = append(fixtures, fx)
	}

	return fixtures, diagnostics, nil
}

// groupLineScores buckets rows by game id, keeping first-seen game order and
// feed row order inside each game.
func groupLineScores(rows []game.LineScoreRow) [][]game.LineScoreRow {
	byGame := make(map[string][]game.LineScoreRow)
	order := make([]string, 0, len(rows)/2)
	for _, row := range rows {
		if _, ok := byGame[row.GameID]; !ok {
			order = append(order, row.GameID)
		}
		byGame[row.GameID] = append(byGame[row.GameID], row)
	}

	out := make([][]game.LineScoreRow, 0, len(order))
	for _, id := range order {
		out = append(out, byGame[id])
	}
	return out
}

func fixtureFromLineScores(date string, group []game.LineScoreRow, translator team.Translator) (game.Fixture, scoring.Diagnostic, bool) {
	gameID := group[0].GameID
	if len(group) != 2 {
		return game.Fixture{}, scoring.Diagnostic{
			Date:   date,
			GameID: gameID,
			Reason: fmt.Sprintf("line score has %d rows, want 2", len(group)),
		}, false
	}

	away, ok := translator.Resolve(group[0].TeamID)
	if !ok {
		return game.Fixture{}, scoring.Diagnostic{
			Date:   date,
			GameID: gameID,
			Reason: fmt.Sprintf("unknown team id %s", group[0].TeamID),
		}, false
	}
	home, ok := translator.Resolve(group[1].TeamID)
	if !ok {
		return game.Fixture{}, scoring.Diagnostic{
			Date:   date,
			GameID: gameID,
			Reason: fmt.Sprintf("unknown team id %s", group[1].TeamID),
		}, false
	}

	return game.Fixture{
		GameID:    gameID,
		AwayTeam:  away,
		HomeTeam:  home,
		Status:    game.StatusFinal,
		AwayScore: group[0].Points,
		HomeScore: group[1].Points,
	}, scoring.Diagnostic{}, true
}
