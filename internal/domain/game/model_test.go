package game

import "testing"

func TestMatchup(t *testing.T) {
	t.Parallel()

	fx := Fixture{AwayTeam: "Celtics", HomeTeam: "Lakers"}
	if got := fx.Matchup(); got != "Celtics vs Lakers" {
		t.Fatalf("unexpected matchup label: %q", got)
	}
}

func TestNormalizeStatus(t *testing.T) {
	t.Parallel()

	if got := NormalizeStatus(" final "); got != StatusFinal {
		t.Fatalf("unexpected normalized status: %q", got)
	}
	if got := NormalizeStatus(""); got != StatusScheduled {
		t.Fatalf("empty status must default to scheduled, got %q", got)
	}
}

func TestIsFinalStatus(t *testing.T) {
	t.Parallel()

	for _, status := range []string{"FINAL", "final", "Final/OT", "FT", "FINAL/2OT"} {
		if !IsFinalStatus(status) {
			t.Fatalf("expected %q to count as final", status)
		}
	}
	for _, status := range []string{"", "SCHEDULED", "IN_PROGRESS", "Q4 2:30"} {
		if IsFinalStatus(status) {
			t.Fatalf("did not expect %q to count as final", status)
		}
	}
}

func TestIsInProgressStatus(t *testing.T) {
	t.Parallel()

	for _, status := range []string{"IN_PROGRESS", "live", "Halftime"} {
		if !IsInProgressStatus(status) {
			t.Fatalf("expected %q to count as in progress", status)
		}
	}
	if IsInProgressStatus("FINAL") {
		t.Fatal("final must not count as in progress")
	}
}
