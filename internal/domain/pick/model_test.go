package pick

import (
	"strings"
	"testing"
)

func TestParseRows_NormalizesHeader(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{" Fecha ", "USUARIO", "matchup", " Ganador_Elegido", "Game_ID "},
		{"2026-01-15", "Frank", "Celtics vs Lakers", "Lakers", "0022500001"},
	}

	records, err := ParseRows(rows)
	if err != nil {
		t.Fatalf("parse rows: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	got := records[0]
	if got.Date != "2026-01-15" || got.User != "Frank" || got.ChosenTeam != "Lakers" || got.GameID != "0022500001" {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestParseRows_ColumnOrderDoesNotMatter(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"game_id", "ganador_elegido", "matchup", "usuario", "fecha"},
		{"0022500001", "Lakers", "Celtics vs Lakers", "Frank", "2026-01-15"},
	}

	records, err := ParseRows(rows)
	if err != nil {
		t.Fatalf("parse rows: %v", err)
	}
	if records[0].User != "Frank" || records[0].GameID != "0022500001" {
		t.Fatalf("unexpected record: %+v", records[0])
	}
}

func TestParseRows_HeaderOnlyIsEmptyLog(t *testing.T) {
	t.Parallel()

	records, err := ParseRows([][]string{Columns()})
	if err != nil {
		t.Fatalf("parse rows: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty log, got %d records", len(records))
	}
}

func TestParseRows_Failures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		rows [][]string
		want string
	}{
		{
			name: "no header",
			rows: nil,
			want: "no header",
		},
		{
			name: "missing column",
			rows: [][]string{{"fecha", "usuario", "matchup", "ganador_elegido"}},
			want: "missing column",
		},
		{
			name: "short row",
			rows: [][]string{
				Columns(),
				{"2026-01-15", "Frank"},
			},
			want: "cell",
		},
		{
			name: "bad date",
			rows: [][]string{
				Columns(),
				{"15/01/2026", "Frank", "Celtics vs Lakers", "Lakers", "0022500001"},
			},
			want: "not YYYY-MM-DD",
		},
		{
			name: "empty user",
			rows: [][]string{
				Columns(),
				{"2026-01-15", "  ", "Celtics vs Lakers", "Lakers", "0022500001"},
			},
			want: "user is required",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseRows(tc.rows)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestDates_DistinctFirstSeen(t *testing.T) {
	t.Parallel()

	records := []Record{
		{Date: "2026-01-16"},
		{Date: "2026-01-15"},
		{Date: "2026-01-16"},
		{Date: "2026-01-17"},
	}

	got := Dates(records)
	want := []string{"2026-01-16", "2026-01-15", "2026-01-17"}
	if len(got) != len(want) {
		t.Fatalf("expected %d dates, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("dates[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
