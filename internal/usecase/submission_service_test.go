package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hooppool/hooppool/internal/domain/game"
	"github.com/hooppool/hooppool/internal/domain/pick"
)

type stubStore struct {
	records  []pick.Record
	readErr  error
	writeErr error
	appended []pick.Record
}

func (s *stubStore) ReadAll(_ context.Context) ([]pick.Record, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	return append([]pick.Record(nil), s.records...), nil
}

func (s *stubStore) Append(_ context.Context, records []pick.Record) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.appended = append(s.appended, records...)
	s.records = append(s.records, records...)
	return nil
}

type stubScoreboard struct {
	today    []game.Fixture
	byDate   map[string][]game.Fixture
	todayErr error
	dateErr  error
}

func (s *stubScoreboard) TodayFixtures(_ context.Context) ([]game.Fixture, error) {
	if s.todayErr != nil {
		return nil, s.todayErr
	}
	return s.today, nil
}

func (s *stubScoreboard) FixturesByDate(_ context.Context, date string) ([]game.Fixture, error) {
	if s.dateErr != nil {
		return nil, s.dateErr
	}
	return s.byDate[date], nil
}

var testRoster = []string{"Moises", "Frank", "Gordic", "Kike"}

func testSlate() []game.Fixture {
	return []game.Fixture{
		{GameID: "0022500001", HomeTeam: "Lakers", AwayTeam: "Celtics", Status: game.StatusScheduled},
		{GameID: "0022500002", HomeTeam: "Warriors", AwayTeam: "Nuggets", Status: game.StatusScheduled},
	}
}

func newTestSubmissionService(store *stubStore, board *stubScoreboard) *SubmissionService {
	svc := NewSubmissionService(store, board, testRoster, nil)
	svc.now = func() time.Time {
		return time.Date(2026, time.January, 15, 23, 30, 0, 0, time.UTC)
	}
	return svc
}

func TestOpenFixturesFor_Partition(t *testing.T) {
	t.Parallel()

	fixtures := testSlate()
	records := []pick.Record{
		{Date: "2026-01-15", User: "Frank", Matchup: "Celtics vs Lakers", ChosenTeam: "Lakers", GameID: "0022500001"},
		{Date: "2026-01-15", User: "Kike", Matchup: "Nuggets vs Warriors", ChosenTeam: "Nuggets", GameID: "0022500002"},
	}

	slate := OpenFixturesFor("Frank", fixtures, records)

	if len(slate.AlreadyPicked) != 1 || slate.AlreadyPicked["0022500001"] != "Lakers" {
		t.Fatalf("unexpected already picked: %v", slate.AlreadyPicked)
	}
	if len(slate.Open) != 1 || slate.Open[0].GameID != "0022500002" {
		t.Fatalf("unexpected open slate: %v", slate.Open)
	}
	if len(slate.AlreadyPicked)+len(slate.Open) != len(fixtures) {
		t.Fatalf("partition must cover every fixture exactly once")
	}

	again := OpenFixturesFor("Frank", fixtures, records)
	if len(again.Open) != len(slate.Open) || len(again.AlreadyPicked) != len(slate.AlreadyPicked) {
		t.Fatalf("partition is not stable across runs")
	}
}

func TestOpenFixtures_EmptySlateIsNotAnError(t *testing.T) {
	t.Parallel()

	svc := newTestSubmissionService(&stubStore{}, &stubScoreboard{})

	slate, err := svc.OpenFixtures(context.Background(), "Moises")
	if err != nil {
		t.Fatalf("open fixtures: %v", err)
	}
	if len(slate.Open) != 0 || len(slate.AlreadyPicked) != 0 {
		t.Fatalf("expected empty slate, got %+v", slate)
	}
}

func TestOpenFixtures_FetchFailure(t *testing.T) {
	t.Parallel()

	svc := newTestSubmissionService(&stubStore{}, &stubScoreboard{todayErr: errors.New("cdn down")})

	_, err := svc.OpenFixtures(context.Background(), "Moises")
	if !errors.Is(err, ErrFixtureFetch) {
		t.Fatalf("expected ErrFixtureFetch, got %v", err)
	}
}

func TestSubmit_AppendsStampedRecords(t *testing.T) {
	t.Parallel()

	store := &stubStore{}
	svc := newTestSubmissionService(store, &stubScoreboard{today: testSlate()})

	out, err := svc.Submit(context.Background(), "Gordic", []Selection{
		{GameID: "0022500001", ChosenTeam: "Celtics"},
		{GameID: "0022500002", ChosenTeam: "Warriors"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(out) != 2 || len(store.appended) != 2 {
		t.Fatalf("expected 2 appended records, got %d returned / %d stored", len(out), len(store.appended))
	}

	first := store.appended[0]
	if first.Date != "2026-01-15" {
		t.Fatalf("expected server-stamped date 2026-01-15, got %q", first.Date)
	}
	if first.User != "Gordic" || first.ChosenTeam != "Celtics" || first.GameID != "0022500001" {
		t.Fatalf("unexpected record: %+v", first)
	}
	if first.Matchup != "Celtics vs Lakers" {
		t.Fatalf("unexpected matchup: %q", first.Matchup)
	}
}

func TestSubmit_PartialBatchIsAllowed(t *testing.T) {
	t.Parallel()

	store := &stubStore{}
	svc := newTestSubmissionService(store, &stubScoreboard{today: testSlate()})

	out, err := svc.Submit(context.Background(), "Kike", []Selection{
		{GameID: "0022500002", ChosenTeam: "Nuggets"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 record, got %d", len(out))
	}
}

func TestSubmit_Rejections(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		user       string
		selections []Selection
		seed       []pick.Record
	}{
		{
			name:       "unknown user",
			user:       "Walter",
			selections: []Selection{{GameID: "0022500001", ChosenTeam: "Lakers"}},
		},
		{
			name:       "empty batch",
			user:       "Frank",
			selections: nil,
		},
		{
			name: "duplicate game in batch",
			user: "Frank",
			selections: []Selection{
				{GameID: "0022500001", ChosenTeam: "Lakers"},
				{GameID: "0022500001", ChosenTeam: "Celtics"},
			},
		},
		{
			name:       "already picked",
			user:       "Frank",
			selections: []Selection{{GameID: "0022500001", ChosenTeam: "Lakers"}},
			seed: []pick.Record{
				{Date: "2026-01-15", User: "Frank", Matchup: "Celtics vs Lakers", ChosenTeam: "Celtics", GameID: "0022500001"},
			},
		},
		{
			name:       "game not on slate",
			user:       "Frank",
			selections: []Selection{{GameID: "0022509999", ChosenTeam: "Lakers"}},
		},
		{
			name:       "team not in matchup",
			user:       "Frank",
			selections: []Selection{{GameID: "0022500001", ChosenTeam: "Warriors"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store := &stubStore{records: tc.seed}
			svc := newTestSubmissionService(store, &stubScoreboard{today: testSlate()})

			_, err := svc.Submit(context.Background(), tc.user, tc.selections)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if len(store.appended) != 0 {
				t.Fatalf("rejected batch must write nothing, wrote %d", len(store.appended))
			}
		})
	}
}

func TestSubmit_StoreWriteFailure(t *testing.T) {
	t.Parallel()

	store := &stubStore{writeErr: errors.New("disk full")}
	svc := newTestSubmissionService(store, &stubScoreboard{today: testSlate()})

	_, err := svc.Submit(context.Background(), "Moises", []Selection{
		{GameID: "0022500001", ChosenTeam: "Lakers"},
	})
	if !errors.Is(err, ErrStoreWrite) {
		t.Fatalf("expected ErrStoreWrite, got %v", err)
	}
}

func TestRoster_ReturnsCopy(t *testing.T) {
	t.Parallel()

	svc := newTestSubmissionService(&stubStore{}, &stubScoreboard{})

	roster := svc.Roster()
	roster[0] = "mutated"

	if svc.Roster()[0] != "Moises" {
		t.Fatalf("roster must not be mutable through the returned slice")
	}
}
