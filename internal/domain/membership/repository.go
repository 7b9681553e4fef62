package membership

import "context"

// Repository describes membership persistence. The request guards only read;
// writes belong to the admin roster endpoints.
type Repository interface {
	Get(ctx context.Context, userID, leagueID string) (Membership, bool, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Membership, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Membership, error)
	Upsert(ctx context.Context, m Membership) error
	Delete(ctx context.Context, userID, leagueID string) error
}
