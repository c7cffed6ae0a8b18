package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hooppool/hooppool/internal/domain/game"
	"github.com/hooppool/hooppool/internal/domain/pick"
	"github.com/hooppool/hooppool/internal/platform/logging"
)

// SubmissionService owns the pick workflow: what a user may still pick
// today, and appending new picks to the log. The store stays dumb; all
// dedup and matchup validation happens here.
type SubmissionService struct {
	store      pick.Store
	scoreboard LiveScoreboard
	roster     []string
	now        func() time.Time
	logger     *logging.Logger
}

func NewSubmissionService(
	store pick.Store,
	scoreboard LiveScoreboard,
	roster []string,
	logger *logging.Logger,
) *SubmissionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SubmissionService{
		store:      store,
		scoreboard: scoreboard,
		roster:     append([]string(nil), roster...),
		now:        time.Now,
		logger:     logger,
	}
}

// Selection is one picked winner in a submit request.
type Selection struct {
	GameID     string
	ChosenTeam string
}

// OpenSlate partitions today's fixtures for one user. AlreadyPicked maps
// game id to the stored choice; Open holds the rest in slate order.
type OpenSlate struct {
	AlreadyPicked map[string]string
	Open          []game.Fixture
}

// Roster returns the configured pool users.
func (s *SubmissionService) Roster() []string {
	return append([]string(nil), s.roster...)
}

// OpenFixtures reports what the user can still pick today. An empty slate
// with nothing picked is a normal answer, not an error.
func (s *SubmissionService) OpenFixtures(ctx context.Context, user string) (OpenSlate, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubmissionService.OpenFixtures")
	defer span.End()

	user, err := s.rosterUser(user)
	if err != nil {
		return OpenSlate{}, err
	}

	fixtures, err := s.scoreboard.TodayFixtures(ctx)
	if err != nil {
		return OpenSlate{}, fmt.Errorf("%w: today's scoreboard: %v", ErrFixtureFetch, err)
	}

	records, err := s.store.ReadAll(ctx)
	if err != nil {
		return OpenSlate{}, fmt.Errorf("%w: %v", ErrStoreRead, err)
	}

	return OpenFixturesFor(user, fixtures, records), nil
}

// OpenFixturesFor is the pure partition behind OpenFixtures: every fixture
// lands in exactly one of the two buckets, keyed by the user's pick history.
// Running it twice on the same inputs gives the same answer.
func OpenFixturesFor(user string, fixtures []game.Fixture, records []pick.Record) OpenSlate {
	picked := make(map[string]string)
	for _, r := range records {
		if r.User != user {
			continue
		}
		picked[r.GameID] = r.ChosenTeam
	}

	slate := OpenSlate{AlreadyPicked: make(map[string]string, len(fixtures))}
	for _, fx := range fixtures {
		if choice, ok := picked[fx.GameID]; ok {
			slate.AlreadyPicked[fx.GameID] = choice
			continue
		}
		slate.Open = append(slate.Open, fx)
	}

	return slate
}

// Submit validates a batch of selections against today's open slate and
// appends them. Batches may cover any subset of the open games, but one
// invalid selection rejects the whole batch and nothing is written.
func (s *SubmissionService) Submit(ctx context.Context, user string, selections []Selection) ([]pick.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubmissionService.Submit")
	defer span.End()

	user, err := s.rosterUser(user)
	if err != nil {
		return nil, err
	}
	if len(selections) == 0 {
		return nil, fmt.Errorf("%w: at least one selection is required", ErrValidation)
	}

	fixtures, err := s.scoreboard.TodayFixtures(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: today's scoreboard: %v", ErrFixtureFetch, err)
	}
	records, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreRead, err)
	}

	slate := OpenFixturesFor(user, fixtures, records)
	openByID := make(map[string]game.Fixture, len(slate.Open))
	for _, fx := range slate.Open {
		openByID[fx.GameID] = fx
	}

	date := s.now().UTC().Format(pick.DateLayout)
	seen := make(map[string]struct{}, len(selections))
	out := make([]pick.Record, 0, len(selections))
	for _, sel := range selections {
		gameID := strings.TrimSpace(sel.GameID)
		choice := strings.TrimSpace(sel.ChosenTeam)
		if gameID == "" || choice == "" {
			return nil, fmt.Errorf("%w: selection game id and chosen team are required", ErrValidation)
		}
		if _, dup := seen[gameID]; dup {
			return nil, fmt.Errorf("%w: duplicate selection for game %s", ErrValidation, gameID)
		}
		seen[gameID] = struct{}{}

		if _, already := slate.AlreadyPicked[gameID]; already {
			return nil, fmt.Errorf("%w: game %s already picked by %s", ErrValidation, gameID, user)
		}
		fx, ok := openByID[gameID]
		if !ok {
			return nil, fmt.Errorf("%w: game %s is not on today's slate", ErrValidation, gameID)
		}
		if choice != fx.HomeTeam && choice != fx.AwayTeam {
			return nil, fmt.Errorf("%w: %s is not playing in game %s", ErrValidation, choice, gameID)
		}

		out = append(out, pick.Record{
			Date:       date,
			User:       user,
			Matchup:    fx.Matchup(),
			ChosenTeam: choice,
			GameID:     gameID,
		})
	}

	if err := s.store.Append(ctx, out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}

	s.logger.InfoContext(ctx, "picks appended",
		"user", user,
		"count", len(out),
		"date", date,
	)
	return out, nil
}

// PickLog exposes the raw log for export; storage order is preserved.
func (s *SubmissionService) PickLog(ctx context.Context) ([]pick.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubmissionService.PickLog")
	defer span.End()

	records, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreRead, err)
	}
	return records, nil
}

func (s *SubmissionService) rosterUser(user string) (string, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return "", fmt.Errorf("%w: user is required", ErrValidation)
	}
	for _, known := range s.roster {
		if known == user {
			return user, nil
		}
	}
	return "", fmt.Errorf("%w: user %s is not in the pool", ErrValidation, user)
}
