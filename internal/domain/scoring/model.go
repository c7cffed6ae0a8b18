package scoring

// ResultsIndex maps a game id to the winning team's display name. It is
// rebuilt from finished games on every scoring run and never persisted.
type ResultsIndex map[string]string

// Diagnostic records one skipped item during a results run: a date whose
// fetch failed, a tied game, or a malformed line-score grouping. Partial
// results plus diagnostics always beat an aborted run.
type Diagnostic struct {
	Date   string `json:"date"`
	GameID string `json:"gameId,omitempty"`
	Reason string `json:"reason"`
}

// LeaderboardRow is one user's tally of correct picks. Derived output,
// never persisted.
type LeaderboardRow struct {
	Rank         int    `json:"rank"`
	User         string `json:"user"`
	CorrectCount int    `json:"correctCount"`
}
