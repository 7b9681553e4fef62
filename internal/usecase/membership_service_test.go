package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/slotpitch/league-api/internal/domain/membership"
	"github.com/slotpitch/league-api/internal/infrastructure/repository/memory"
)

func TestMembershipService_MyMemberships(t *testing.T) {
	svc := NewMembershipService(memory.NewMembershipRepository(memory.SeedMemberships()), nil)

	mine, err := svc.MyMemberships(t.Context(), "usr-diane")
	if err != nil {
		t.Fatalf("my memberships: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("len = %d, want both leagues", len(mine))
	}

	none, err := svc.MyMemberships(t.Context(), "usr-nobody")
	if err != nil {
		t.Fatalf("memberless user: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("len = %d, want 0", len(none))
	}

	if _, err := svc.MyMemberships(t.Context(), "UNKNOWN"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("sentinel identity should be ErrUnauthorized, got %v", err)
	}
	if _, err := svc.MyMemberships(t.Context(), "  "); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("blank identity should be ErrUnauthorized, got %v", err)
	}
}

func TestMembershipService_ListRoster(t *testing.T) {
	svc := NewMembershipService(memory.NewMembershipRepository(memory.SeedMemberships()), nil)

	roster, err := svc.ListRoster(t.Context(), memory.LeagueIDCascade)
	if err != nil {
		t.Fatalf("roster: %v", err)
	}
	if len(roster) != 3 {
		t.Fatalf("len = %d, want 3", len(roster))
	}
	for _, m := range roster {
		if m.LeagueID != memory.LeagueIDCascade {
			t.Fatalf("roster leaked row from %q", m.LeagueID)
		}
	}

	if _, err := svc.ListRoster(t.Context(), "  "); !errors.Is(err, ErrInvalidScope) {
		t.Fatalf("blank league should be ErrInvalidScope, got %v", err)
	}
}

func TestMembershipService_UpsertMembership(t *testing.T) {
	repo := memory.NewMembershipRepository(memory.SeedMemberships())
	svc := NewMembershipService(repo, nil)

	created, err := svc.UpsertMembership(t.Context(), UpsertMembershipInput{
		UserID:   " usr-quinn ",
		LeagueID: memory.LeagueIDCascade,
		Role:     " Umpire ",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if created.UserID != "usr-quinn" || created.Role != "Umpire" {
		t.Fatalf("created = %+v, want trimmed values", created)
	}
	if created.CreatedAt.IsZero() || !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("new row timestamps = (%v, %v)", created.CreatedAt, created.UpdatedAt)
	}

	time.Sleep(time.Millisecond)
	updated, err := svc.UpsertMembership(t.Context(), UpsertMembershipInput{
		UserID:   "usr-quinn",
		LeagueID: memory.LeagueIDCascade,
		Role:     membership.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("role change must preserve the created timestamp")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("role change must move the updated timestamp")
	}
	if updated.Role != membership.RoleAdmin {
		t.Fatalf("role = %q", updated.Role)
	}

	if _, err := svc.UpsertMembership(t.Context(), UpsertMembershipInput{LeagueID: memory.LeagueIDCascade}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank user should be ErrInvalidInput, got %v", err)
	}
	if _, err := svc.UpsertMembership(t.Context(), UpsertMembershipInput{UserID: "usr-x"}); !errors.Is(err, ErrInvalidScope) {
		t.Fatalf("blank league should be ErrInvalidScope, got %v", err)
	}
	if _, err := svc.UpsertMembership(t.Context(), UpsertMembershipInput{UserID: "unknown", LeagueID: memory.LeagueIDCascade}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("sentinel identity must not become a member, got %v", err)
	}
}

func TestMembershipService_RemoveMembership(t *testing.T) {
	repo := memory.NewMembershipRepository(memory.SeedMemberships())
	svc := NewMembershipService(repo, nil)

	if err := svc.RemoveMembership(t.Context(), memory.LeagueIDCascade, "usr-talia"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, found, _ := repo.Get(t.Context(), "usr-talia", memory.LeagueIDCascade); found {
		t.Fatalf("row should be gone")
	}

	if err := svc.RemoveMembership(t.Context(), memory.LeagueIDCascade, "usr-talia"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second remove should be ErrNotFound, got %v", err)
	}
	if err := svc.RemoveMembership(t.Context(), memory.LeagueIDCascade, " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank user should be ErrInvalidInput, got %v", err)
	}
}
