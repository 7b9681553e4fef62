package usecase

import (
	"errors"
	"testing"

	"github.com/slotpitch/league-api/internal/infrastructure/repository/memory"
)

func TestFieldService_ListFields(t *testing.T) {
	svc := NewFieldService(memory.NewFieldRepository(memory.SeedFields()), nil)

	all, err := svc.ListFields(t.Context(), memory.LeagueIDCascade, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}

	active, err := svc.ListFields(t.Context(), memory.LeagueIDCascade, true)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("active len = %d, want 2", len(active))
	}
	for _, def := range active {
		if !def.Active {
			t.Fatalf("inactive field leaked: %+v", def)
		}
	}

	if _, err := svc.ListFields(t.Context(), " ", false); !errors.Is(err, ErrInvalidScope) {
		t.Fatalf("blank league should be ErrInvalidScope, got %v", err)
	}
}

func TestFieldService_GetField(t *testing.T) {
	svc := NewFieldService(memory.NewFieldRepository(memory.SeedFields()), nil)

	def, err := svc.GetField(t.Context(), memory.LeagueIDCascade, "Edgewater_Field 1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if def.ID != "fld-edgewater-1" {
		t.Fatalf("id = %q", def.ID)
	}

	if _, err := svc.GetField(t.Context(), memory.LeagueIDHarbor, "edgewater/field-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-league get must look not-found, got %v", err)
	}
	if _, err := svc.GetField(t.Context(), memory.LeagueIDCascade, "edgewater"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad key should be ErrInvalidInput, got %v", err)
	}
}
