package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hooppool/hooppool/internal/domain/game"
	"github.com/hooppool/hooppool/internal/domain/pick"
	"github.com/hooppool/hooppool/internal/domain/scoring"
	"github.com/hooppool/hooppool/internal/platform/logging"
)

// ScoringService reconciles the full pick log against official results.
// Results are recomputed from scratch on every run; nothing derived is ever
// stored back.
type ScoringService struct {
	store    pick.Store
	provider ResultsProvider
	logger   *logging.Logger
}

func NewScoringService(store pick.Store, provider ResultsProvider, logger *logging.Logger) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoringService{
		store:    store,
		provider: provider,
		logger:   logger,
	}
}

// LeaderboardResult is one full reconciliation pass: ranked rows, the
// current leader, and every item the run had to skip.
type LeaderboardResult struct {
	Rows        []scoring.LeaderboardRow
	Leader      string
	Diagnostics []scoring.Diagnostic
}

// Leaderboard reads the whole pick log, rebuilds the results index for every
// date that appears in it, and scores the log against the index.
func (s *ScoringService) Leaderboard(ctx context.Context) (LeaderboardResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.Leaderboard")
	defer span.End()

	records, err := s.store.ReadAll(ctx)
	if err != nil {
		return LeaderboardResult{}, fmt.Errorf("%w: %v", ErrStoreRead, err)
	}

	index, diagnostics := s.ComputeResults(ctx, pick.Dates(records))
	rows := Score(records, index)

	result := LeaderboardResult{Rows: rows, Diagnostics: diagnostics}
	if len(rows) > 0 {
		result.Leader = rows[0].User
	}
	return result, nil
}

// ComputeResults queries the provider once per date, in order, and folds
// finished games into a winner index. A failed date or a bad game becomes a
// diagnostic and the run moves on; it never aborts.
func (s *ScoringService) ComputeResults(ctx context.Context, dates []string) (scoring.ResultsIndex, []scoring.Diagnostic) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ComputeResults")
	defer span.End()

	index := make(scoring.ResultsIndex)
	var diagnostics []scoring.Diagnostic

	for _, date := range dates {
		fixtures, providerDiags, err := s.provider.FixturesByDate(ctx, date)
		if err != nil {
			diagnostics = append(diagnostics, scoring.Diagnostic{Date: date, Reason: err.Error()})
			s.logger.WarnContext(ctx, "results date skipped", "date", date, "error", err)
			continue
		}
		diagnostics = append(diagnostics, providerDiags...)

		finals := 0
		for _, fx := range fixtures {
			if !game.IsFinalStatus(fx.Status) {
				continue
			}
			winner, err := fixtureWinner(fx)
			if err != nil {
				diagnostics = append(diagnostics, scoring.Diagnostic{
					Date:   date,
					GameID: fx.GameID,
					Reason: err.Error(),
				})
				continue
			}
			index[fx.GameID] = winner
			finals++
		}

		s.logger.InfoContext(ctx, "results date processed",
			"date", date,
			"fixtures", len(fixtures),
			"finals_indexed", finals,
		)
	}

	return index, diagnostics
}

func fixtureWinner(fx game.Fixture) (string, error) {
	if fx.HomeScore == fx.AwayScore {
		return "", fmt.Errorf("%w: game %s ended tied %d-%d", ErrDataInconsistency, fx.GameID, fx.AwayScore, fx.HomeScore)
	}
	if fx.HomeScore > fx.AwayScore {
		return fx.HomeTeam, nil
	}
	return fx.AwayTeam, nil
}

// Score tallies correct picks per user. Pure: same log and index always
// give the same rows, whatever order the log arrives in. A pick whose game
// is absent from the index counts zero.
func Score(records []pick.Record, index scoring.ResultsIndex) []scoring.LeaderboardRow {
	correct := make(map[string]int)
	order := make([]string, 0)
	for _, r := range records {
		if _, ok := correct[r.User]; !ok {
			correct[r.User] = 0
			order = append(order, r.User)
		}
		winner, ok := index[r.GameID]
		if !ok {
			continue
		}
		if strings.TrimSpace(r.ChosenTeam) == strings.TrimSpace(winner) {
			correct[r.User]++
		}
	}

	rows := make([]scoring.LeaderboardRow, 0, len(order))
	for _, user := range order {
		rows = append(rows, scoring.LeaderboardRow{User: user, CorrectCount: correct[user]})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CorrectCount != rows[j].CorrectCount {
			return rows[i].CorrectCount > rows[j].CorrectCount
		}
		return rows[i].User < rows[j].User
	})

	lastCount := 0
	rank := 0
	for idx := range rows {
		if idx == 0 || rows[idx].CorrectCount != lastCount {
			rank = idx + 1
			lastCount = rows[idx].CorrectCount
		}
		rows[idx].Rank = rank
	}

	return rows
}
