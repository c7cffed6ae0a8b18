package team

import "context"

// Directory describes where the franchise list comes from.
type Directory interface {
	ListTeams(ctx context.Context) ([]Team, error)
}
