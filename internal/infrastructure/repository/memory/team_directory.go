package memory

import (
	"context"
	"sync"

	"github.com/hooppool/hooppool/internal/domain/team"
)

// TeamDirectory serves a fixed franchise list without touching the network.
type TeamDirectory struct {
	mu    sync.RWMutex
	teams []team.Team
}

func NewTeamDirectory(teams []team.Team) *TeamDirectory {
	return &TeamDirectory{teams: append([]team.Team(nil), teams...)}
}

func (d *TeamDirectory) ListTeams(_ context.Context) ([]team.Team, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]team.Team, 0, len(d.teams))
	out = append(out, d.teams...)
	return out, nil
}
