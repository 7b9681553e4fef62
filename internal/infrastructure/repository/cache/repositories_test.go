package cache

import (
	"testing"
	"time"

	"github.com/slotpitch/league-api/internal/domain/membership"
	"github.com/slotpitch/league-api/internal/domain/slot"
	"github.com/slotpitch/league-api/internal/infrastructure/repository/memory"
	basecache "github.com/slotpitch/league-api/internal/platform/cache"
)

func TestSlotRepository_ReadThroughAndInvalidate(t *testing.T) {
	inner := memory.NewSlotRepository(memory.SeedSlots())
	repo := NewSlotRepository(inner, basecache.NewStore(time.Minute))
	ctx := t.Context()

	first, found, err := repo.GetByID(ctx, memory.LeagueIDCascade, "slot-0001")
	if err != nil || !found {
		t.Fatalf("GetByID: found=%t err=%v", found, err)
	}

	// Mutate through the decorator; the cached read must not go stale.
	first.Status = slot.StatusClaimed
	first.ClaimedByTeamID = "team-otters"
	if err := repo.Update(ctx, first); err != nil {
		t.Fatalf("Update: %v", err)
	}

	second, found, err := repo.GetByID(ctx, memory.LeagueIDCascade, "slot-0001")
	if err != nil || !found {
		t.Fatalf("GetByID after update: found=%t err=%v", found, err)
	}
	if second.Status != slot.StatusClaimed || second.ClaimedByTeamID != "team-otters" {
		t.Fatalf("stale cached slot after update: %+v", second)
	}

	listed, err := repo.ListByFieldDate(ctx, memory.LeagueIDCascade, first.FieldKey, first.GameDate)
	if err != nil {
		t.Fatalf("ListByFieldDate: %v", err)
	}
	for _, s := range listed {
		if s.ID == first.ID && s.Status != slot.StatusClaimed {
			t.Fatalf("stale field-date listing after update: %+v", s)
		}
	}
}

func TestSlotRepository_ListCacheInvalidatedByInsert(t *testing.T) {
	inner := memory.NewSlotRepository(memory.SeedSlots())
	repo := NewSlotRepository(inner, basecache.NewStore(time.Minute))
	ctx := t.Context()

	before, err := repo.ListByLeague(ctx, memory.LeagueIDCascade, slot.ListFilter{})
	if err != nil {
		t.Fatalf("ListByLeague: %v", err)
	}

	newSlot := before[0]
	newSlot.ID = "slot-9999"
	newSlot.GameDate = "2025-12-01"
	if err := repo.Insert(ctx, newSlot); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	after, err := repo.ListByLeague(ctx, memory.LeagueIDCascade, slot.ListFilter{})
	if err != nil {
		t.Fatalf("ListByLeague after insert: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Fatalf("list length = %d, want %d", len(after), len(before)+1)
	}
}

func TestMembershipRepository_InvalidateOnDelete(t *testing.T) {
	inner := memory.NewMembershipRepository(memory.SeedMemberships())
	repo := NewMembershipRepository(inner, basecache.NewStore(time.Minute))
	ctx := t.Context()

	if _, found, err := repo.Get(ctx, "usr-marco", memory.LeagueIDCascade); err != nil || !found {
		t.Fatalf("Get: found=%t err=%v", found, err)
	}

	if err := repo.Delete(ctx, "usr-marco", memory.LeagueIDCascade); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, found, err := repo.Get(ctx, "usr-marco", memory.LeagueIDCascade); err != nil || found {
		t.Fatalf("Get after delete: found=%t err=%v, want cache invalidated", found, err)
	}

	roster, err := repo.ListByLeague(ctx, memory.LeagueIDCascade)
	if err != nil {
		t.Fatalf("ListByLeague: %v", err)
	}
	for _, m := range roster {
		if m.UserID == "usr-marco" {
			t.Fatalf("deleted membership still listed")
		}
	}
}

func TestMembershipRepository_UpsertRefreshesUserListings(t *testing.T) {
	inner := memory.NewMembershipRepository(memory.SeedMemberships())
	repo := NewMembershipRepository(inner, basecache.NewStore(time.Minute))
	ctx := t.Context()

	before, err := repo.ListByUser(ctx, "usr-talia", 100, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}

	if err := repo.Upsert(ctx, membership.Membership{
		UserID:   "usr-talia",
		LeagueID: memory.LeagueIDHarbor,
		Role:     "Coach",
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	after, err := repo.ListByUser(ctx, "usr-talia", 100, 0)
	if err != nil {
		t.Fatalf("ListByUser after upsert: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Fatalf("user listing length = %d, want %d", len(after), len(before)+1)
	}
}
