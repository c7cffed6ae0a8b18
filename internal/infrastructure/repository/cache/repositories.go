package cache

import (
	"context"

	"github.com/hooppool/hooppool/internal/domain/team"
	basecache "github.com/hooppool/hooppool/internal/platform/cache"
)

// TeamDirectory memoizes the franchise list so one scoring run hits the
// stats feed at most once, however many dates it walks.
type TeamDirectory struct {
	next  team.Directory
	cache *basecache.Store
}

func NewTeamDirectory(next team.Directory, cache *basecache.Store) *TeamDirectory {
	return &TeamDirectory{next: next, cache: cache}
}

func (d *TeamDirectory) ListTeams(ctx context.Context) ([]team.Team, error) {
	v, err := d.cache.GetOrLoad(ctx, "team:directory", func(ctx context.Context) (any, error) {
		items, err := d.next.ListTeams(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}
