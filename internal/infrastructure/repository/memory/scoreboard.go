package memory

import (
	"context"
	"sync"

	"github.com/hooppool/hooppool/internal/domain/game"
)

// Scoreboard is a canned live feed for dev mode: a fixed slate for today
// and optional per-date results.
type Scoreboard struct {
	mu     sync.RWMutex
	today  []game.Fixture
	byDate map[string][]game.Fixture
}

func NewScoreboard(today []game.Fixture, byDate map[string][]game.Fixture) *Scoreboard {
	if byDate == nil {
		byDate = make(map[string][]game.Fixture)
	}
	return &Scoreboard{
		today:  append([]game.Fixture(nil), today...),
		byDate: byDate,
	}
}

func (s *Scoreboard) TodayFixtures(_ context.Context) ([]game.Fixture, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]game.Fixture, 0, len(s.today))
	out = append(out, s.today...)
	return out, nil
}

func (s *Scoreboard) FixturesByDate(_ context.Context, date string) ([]game.Fixture, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.byDate[date]
	out := make([]game.Fixture, 0, len(items))
	out = append(out, items...)
	return out, nil
}
