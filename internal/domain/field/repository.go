package field

import "context"

// Repository describes field catalog persistence needs from use cases.
type Repository interface {
	GetByKey(ctx context.Context, leagueID, normalizedKey string) (Definition, bool, error)
	ListByLeague(ctx context.Context, leagueID string, activeOnly bool) ([]Definition, error)
	Upsert(ctx context.Context, def Definition) error
}
