package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/hooppool/hooppool/internal/domain/game"
)

var dateParamPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// FixtureService exposes the daily slate. An empty slate is a real answer
// (off day, All-Star break); only transport or decode trouble is an error.
type FixtureService struct {
	scoreboard LiveScoreboard
}

func NewFixtureService(scoreboard LiveScoreboard) *FixtureService {
	return &FixtureService{scoreboard: scoreboard}
}

func (s *FixtureService) TodaysSlate(ctx context.Context) ([]game.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.TodaysSlate")
	defer span.End()

	fixtures, err := s.scoreboard.TodayFixtures(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: today's scoreboard: %v", ErrFixtureFetch, err)
	}
	return fixtures, nil
}

func (s *FixtureService) SlateByDate(ctx context.Context, date string) ([]game.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.SlateByDate")
	defer span.End()

	date = strings.TrimSpace(date)
	if !dateParamPattern.MatchString(date) {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}

	fixtures, err := s.scoreboard.FixturesByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("%w: scoreboard for %s: %v", ErrFixtureFetch, date, err)
	}
	return fixtures, nil
}
