package httpapi

import (
	"context"

	"github.com/slotpitch/league-api/internal/domain/user"
)

type contextKey string

const (
	principalContextKey   contextKey = "auth_principal"
	leagueScopeContextKey contextKey = "league_scope"
)

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(user.Principal)
	return p, ok
}

func withLeagueScope(ctx context.Context, leagueID string) context.Context {
	return context.WithValue(ctx, leagueScopeContextKey, leagueID)
}

func leagueScopeFromContext(ctx context.Context) (string, bool) {
	leagueID, ok := ctx.Value(leagueScopeContextKey).(string)
	return leagueID, ok
}
