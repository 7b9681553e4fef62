package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/slotpitch/league-api/internal/domain/slot"
	"github.com/slotpitch/league-api/internal/infrastructure/repository/memory"
	idgen "github.com/slotpitch/league-api/internal/platform/id"
)

type captureNotifier struct {
	events []SlotEvent
}

func (n *captureNotifier) SlotEvent(_ context.Context, event SlotEvent) {
	n.events = append(n.events, event)
}

func newSlotServiceForTest(t *testing.T) (*SlotService, *captureNotifier) {
	t.Helper()

	notifier := &captureNotifier{}
	svc := NewSlotService(memory.NewSlotRepository(memory.SeedSlots()), idgen.NewRandomGenerator(), notifier, nil)

	return svc, notifier
}

func validCreateInput() CreateSlotInput {
	return CreateSlotInput{
		LeagueID:       memory.LeagueIDCascade,
		Division:       "10U",
		OfferingTeamID: "team-hawks",
		GameDate:       "2025-09-13",
		StartTime:      "09:00",
		EndTime:        "11:00",
		FieldKey:       "edgewater/field-1",
	}
}

func TestSlotService_CreateSlot(t *testing.T) {
	svc, notifier := newSlotServiceForTest(t)

	created, err := svc.CreateSlot(t.Context(), validCreateInput(), "diane@cascadeleague.org")
	if err != nil {
		t.Fatalf("create slot: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("created slot has no id")
	}
	if created.Status != slot.StatusOpen {
		t.Fatalf("status = %q, want open", created.Status)
	}
	if created.StartMinutes != 540 || created.EndMinutes != 660 {
		t.Fatalf("minutes = (%d, %d), want (540, 660)", created.StartMinutes, created.EndMinutes)
	}
	if created.CreatedBy != "diane@cascadeleague.org" {
		t.Fatalf("created by = %q", created.CreatedBy)
	}

	if len(notifier.events) != 1 || notifier.events[0].Type != EventSlotCreated {
		t.Fatalf("expected one slot.created event, got %+v", notifier.events)
	}

	got, err := svc.GetSlot(t.Context(), memory.LeagueIDCascade, created.ID)
	if err != nil {
		t.Fatalf("get created slot: %v", err)
	}
	if got.FieldKey != "edgewater/field-1" {
		t.Fatalf("field key = %q", got.FieldKey)
	}
}

func TestSlotService_CreateSlot_NormalizesUnderscoreKey(t *testing.T) {
	svc, _ := newSlotServiceForTest(t)

	input := validCreateInput()
	input.FieldKey = "Edgewater_Field 3"

	created, err := svc.CreateSlot(t.Context(), input, "diane@cascadeleague.org")
	if err != nil {
		t.Fatalf("create slot: %v", err)
	}
	if created.FieldKey != "edgewater/field-3" {
		t.Fatalf("field key = %q, want edgewater/field-3", created.FieldKey)
	}
}

func TestSlotService_CreateSlot_Validation(t *testing.T) {
	svc, notifier := newSlotServiceForTest(t)

	tests := []struct {
		name    string
		mutate  func(*CreateSlotInput)
		wantErr error
		errHint string
	}{
		{
			name:    "missing league",
			mutate:  func(in *CreateSlotInput) { in.LeagueID = " " },
			wantErr: ErrInvalidScope,
		},
		{
			name: "missing required fields listed together",
			mutate: func(in *CreateSlotInput) {
				in.Division = ""
				in.EndTime = "  "
			},
			wantErr: ErrInvalidInput,
			errHint: "division, endTime",
		},
		{
			name:    "bad field key",
			mutate:  func(in *CreateSlotInput) { in.FieldKey = "edgewater" },
			wantErr: ErrInvalidInput,
			errHint: "field key",
		},
		{
			name:    "bad date",
			mutate:  func(in *CreateSlotInput) { in.GameDate = "09/13/2025" },
			wantErr: ErrInvalidInput,
			errHint: "YYYY-MM-DD",
		},
		{
			name:    "bad clock",
			mutate:  func(in *CreateSlotInput) { in.StartTime = "9:00" },
			wantErr: ErrInvalidInput,
			errHint: "HH:mm",
		},
		{
			name: "start not before end",
			mutate: func(in *CreateSlotInput) {
				in.StartTime = "11:00"
				in.EndTime = "11:00"
			},
			wantErr: ErrInvalidInput,
			errHint: "before",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validCreateInput()
			tt.mutate(&input)

			_, err := svc.CreateSlot(t.Context(), input, "diane@cascadeleague.org")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.errHint != "" && !strings.Contains(err.Error(), tt.errHint) {
				t.Fatalf("error %q should contain %q", err.Error(), tt.errHint)
			}
		})
	}

	if len(notifier.events) != 0 {
		t.Fatalf("rejected creates must not publish events, got %+v", notifier.events)
	}
}

func TestSlotService_CreateSlot_ConflictRules(t *testing.T) {
	svc, _ := newSlotServiceForTest(t)

	t.Run("overlap rejected naming the clash", func(t *testing.T) {
		input := validCreateInput()
		input.GameDate = "2025-09-06"
		input.StartTime = "10:00"
		input.EndTime = "12:00"

		_, err := svc.CreateSlot(t.Context(), input, "diane@cascadeleague.org")
		if !errors.Is(err, ErrSlotConflict) {
			t.Fatalf("expected ErrSlotConflict, got %v", err)
		}
		if !strings.Contains(err.Error(), "slot-0001") {
			t.Fatalf("conflict error %q should name the clashing slot", err.Error())
		}
	})

	t.Run("back to back allowed", func(t *testing.T) {
		input := validCreateInput()
		input.GameDate = "2025-09-06"
		input.StartTime = "13:30"
		input.EndTime = "15:00"

		if _, err := svc.CreateSlot(t.Context(), input, "diane@cascadeleague.org"); err != nil {
			t.Fatalf("touching windows must not conflict: %v", err)
		}
	})

	t.Run("other field same time allowed", func(t *testing.T) {
		input := validCreateInput()
		input.GameDate = "2025-09-06"
		input.StartTime = "09:30"
		input.EndTime = "10:30"
		input.FieldKey = "riverside/north-diamond"

		if _, err := svc.CreateSlot(t.Context(), input, "diane@cascadeleague.org"); err != nil {
			t.Fatalf("different field must not conflict: %v", err)
		}
	})

	t.Run("cancelled slot releases its window", func(t *testing.T) {
		if _, err := svc.CancelSlot(t.Context(), memory.LeagueIDCascade, "slot-0001", "diane@cascadeleague.org"); err != nil {
			t.Fatalf("cancel: %v", err)
		}

		input := validCreateInput()
		input.GameDate = "2025-09-06"
		input.StartTime = "09:00"
		input.EndTime = "11:00"

		if _, err := svc.CreateSlot(t.Context(), input, "diane@cascadeleague.org"); err != nil {
			t.Fatalf("cancelled window must be reusable: %v", err)
		}
	})
}

func TestSlotService_ClaimLifecycle(t *testing.T) {
	svc, notifier := newSlotServiceForTest(t)

	claimed, err := svc.ClaimSlot(t.Context(), memory.LeagueIDCascade, "slot-0001", "team-eagles", "coach@eagles.example.com")
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if claimed.Status != slot.StatusClaimed || claimed.ClaimedByTeamID != "team-eagles" {
		t.Fatalf("claimed slot = %+v", claimed)
	}

	if _, err := svc.ClaimSlot(t.Context(), memory.LeagueIDCascade, "slot-0001", "team-wolves", "coach@wolves.example.com"); !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("double claim should be ErrSlotUnavailable, got %v", err)
	}

	released, err := svc.ReleaseSlot(t.Context(), memory.LeagueIDCascade, "slot-0001", "coach@eagles.example.com")
	if err != nil {
		t.Fatalf("release: %v", err)
	}
	if released.Status != slot.StatusOpen || released.ClaimedByTeamID != "" {
		t.Fatalf("released slot = %+v", released)
	}

	if _, err := svc.ReleaseSlot(t.Context(), memory.LeagueIDCascade, "slot-0001", "coach@eagles.example.com"); !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("releasing an open slot should be ErrSlotUnavailable, got %v", err)
	}

	cancelled, err := svc.CancelSlot(t.Context(), memory.LeagueIDCascade, "slot-0001", "diane@cascadeleague.org")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != slot.StatusCancelled {
		t.Fatalf("cancelled slot = %+v", cancelled)
	}

	if _, err := svc.CancelSlot(t.Context(), memory.LeagueIDCascade, "slot-0001", "diane@cascadeleague.org"); !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("double cancel should be ErrSlotUnavailable, got %v", err)
	}
	if _, err := svc.ClaimSlot(t.Context(), memory.LeagueIDCascade, "slot-0001", "team-eagles", "coach@eagles.example.com"); !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("claiming a cancelled slot should be ErrSlotUnavailable, got %v", err)
	}

	wantEvents := []string{EventSlotClaimed, EventSlotReleased, EventSlotCancelled}
	if len(notifier.events) != len(wantEvents) {
		t.Fatalf("events = %+v, want %v", notifier.events, wantEvents)
	}
	for i, want := range wantEvents {
		if notifier.events[i].Type != want {
			t.Fatalf("event %d = %q, want %q", i, notifier.events[i].Type, want)
		}
	}
}

func TestSlotService_ClaimSlot_Validation(t *testing.T) {
	svc, _ := newSlotServiceForTest(t)

	if _, err := svc.ClaimSlot(t.Context(), memory.LeagueIDCascade, "slot-0001", "  ", "coach@eagles.example.com"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank claiming team should be ErrInvalidInput, got %v", err)
	}

	_, err := svc.ClaimSlot(t.Context(), memory.LeagueIDCascade, "slot-0001", "TEAM-HAWKS", "coach@hawks.example.com")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("self-claim should be ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "own slot") {
		t.Fatalf("self-claim error %q should explain the rule", err.Error())
	}
}

func TestSlotService_LeagueScoping(t *testing.T) {
	svc, _ := newSlotServiceForTest(t)

	if _, err := svc.GetSlot(t.Context(), memory.LeagueIDHarbor, "slot-0001"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-league get must look not-found, got %v", err)
	}
	if _, err := svc.ClaimSlot(t.Context(), memory.LeagueIDHarbor, "slot-0001", "team-eagles", "coach@eagles.example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-league claim must look not-found, got %v", err)
	}
}

func TestSlotService_ListSlots(t *testing.T) {
	svc, _ := newSlotServiceForTest(t)

	all, err := svc.ListSlots(t.Context(), memory.LeagueIDCascade, slot.ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}

	open, err := svc.ListSlots(t.Context(), memory.LeagueIDCascade, slot.ListFilter{Status: "OPEN"})
	if err != nil {
		t.Fatalf("list open: %v", err)
	}
	if len(open) != 2 {
		t.Fatalf("open len = %d, want 2", len(open))
	}

	byKey, err := svc.ListSlots(t.Context(), memory.LeagueIDCascade, slot.ListFilter{FieldKey: "edgewater_field-2"})
	if err != nil {
		t.Fatalf("list by underscore key: %v", err)
	}
	if len(byKey) != 1 || byKey[0].ID != "slot-0003" {
		t.Fatalf("byKey = %+v, want only slot-0003", byKey)
	}

	if _, err := svc.ListSlots(t.Context(), memory.LeagueIDCascade, slot.ListFilter{Status: "pending"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown status filter should be ErrInvalidInput, got %v", err)
	}
	if _, err := svc.ListSlots(t.Context(), memory.LeagueIDCascade, slot.ListFilter{GameDate: "tomorrow"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad date filter should be ErrInvalidInput, got %v", err)
	}

	other, err := svc.ListSlots(t.Context(), memory.LeagueIDHarbor, slot.ListFilter{})
	if err != nil {
		t.Fatalf("list other league: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("harbor league should have no seeded slots, got %d", len(other))
	}
}
