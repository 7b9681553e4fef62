package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/slotpitch/league-api/internal/domain/membership"
	membershipmock "github.com/slotpitch/league-api/internal/mocks/domain/membership"
	"github.com/stretchr/testify/mock"
)

func TestGuardService_RequireAdmin_PagesUntilAdminRowUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := membershipmock.NewRepository(t)
	guards := NewGuardService(repo, true, 2, nil)

	firstPage := []membership.Membership{
		{UserID: "usr-diane", LeagueID: "harbor-spring-2026", Role: "Coach"},
		{UserID: "usr-diane", LeagueID: "bayview-fall-2025", Role: "Manager"},
	}
	secondPage := []membership.Membership{
		{UserID: "usr-diane", LeagueID: "cascade-fall-2025", Role: "Admin"},
	}

	repo.
		On("ListByUser", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "usr-diane", 2, 0).
		Return(firstPage, nil).
		Once()
	repo.
		On("ListByUser", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "usr-diane", 2, 2).
		Return(secondPage, nil).
		Once()

	if err := guards.RequireAdmin(ctx, "usr-diane"); err != nil {
		t.Fatalf("require admin: %v", err)
	}
}

func TestGuardService_RequireAdmin_StoreErrorPropagatesUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := membershipmock.NewRepository(t)
	guards := NewGuardService(repo, true, 100, nil)

	storeErr := errors.New("memberships unavailable")
	repo.
		On("ListByUser", mock.Anything, "usr-marco", 100, 0).
		Return(nil, storeErr).
		Once()

	err := guards.RequireAdmin(ctx, "usr-marco")
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestGuardService_IsMember_SentinelSkipsStoreUsingMockery(t *testing.T) {
	t.Parallel()

	repo := membershipmock.NewRepository(t)
	guards := NewGuardService(repo, false, 100, nil)

	// No expectations registered; a store call would fail the test.
	member, err := guards.IsMember(context.Background(), "UNKNOWN", "cascade-fall-2025")
	if err != nil {
		t.Fatalf("is member: %v", err)
	}
	if member {
		t.Fatalf("sentinel identity must never be a member")
	}
}
