package game

import (
	"fmt"
	"strings"
)

const (
	StatusScheduled  = "SCHEDULED"
	StatusInProgress = "IN_PROGRESS"
	StatusFinal      = "FINAL"
)

// Fixture represents one NBA game on a given day. Scores carry meaning only
// once the status is final.
type Fixture struct {
	GameID    string
	HomeTeam  string
	AwayTeam  string
	Status    string
	HomeScore int
	AwayScore int
}

// Matchup renders the label stored alongside a pick, away side first.
func (f Fixture) Matchup() string {
	return f.AwayTeam + " vs " + f.HomeTeam
}

func (f Fixture) Validate() error {
	if f.GameID == "" {
		return fmt.Errorf("fixture game id is required")
	}
	if f.HomeTeam == "" {
		return fmt.Errorf("fixture home team is required")
	}
	if f.AwayTeam == "" {
		return fmt.Errorf("fixture away team is required")
	}

	return nil
}

// LineScoreRow is one team's final points in one game, as reported by the
// historical stats feed. Two rows share a game id.
type LineScoreRow struct {
	GameID string
	TeamID string
	Points int
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsFinalStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFinal, "FT", "FINAL/OT", "FINAL/2OT":
		return true
	default:
		return false
	}
}

func IsInProgressStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusInProgress, "LIVE", "HALFTIME":
		return true
	default:
		return false
	}
}
