package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/slotpitch/league-api/internal/domain/field"
	"github.com/slotpitch/league-api/internal/domain/schedule"
	"github.com/slotpitch/league-api/internal/domain/slot"
	idgen "github.com/slotpitch/league-api/internal/platform/id"
	"github.com/slotpitch/league-api/internal/platform/logging"
)

// Slot lifecycle event types published to the notifier.
const (
	EventSlotCreated   = "slot.created"
	EventSlotClaimed   = "slot.claimed"
	EventSlotReleased  = "slot.released"
	EventSlotCancelled = "slot.cancelled"
)

// SlotEvent describes a lifecycle change for downstream webhooks.
type SlotEvent struct {
	Type       string    `json:"type"`
	LeagueID   string    `json:"leagueId"`
	SlotID     string    `json:"slotId"`
	Division   string    `json:"division"`
	FieldKey   string    `json:"fieldKey"`
	GameDate   string    `json:"gameDate"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Notifier delivers slot lifecycle events to interested collaborators.
// Delivery is fire-and-forget; implementations must not block the request
// path and their failures never fail the operation.
type Notifier interface {
	SlotEvent(ctx context.Context, event SlotEvent)
}

// CreateSlotInput carries the single-slot creation request body.
type CreateSlotInput struct {
	LeagueID       string
	Division       string
	OfferingTeamID string
	GameDate       string
	StartTime      string
	EndTime        string
	FieldKey       string
	ParkName       string
	FieldName      string
	OfferingEmail  string
	GameType       string
	Notes          string
}

type SlotService struct {
	slots    slot.Repository
	idGen    idgen.Generator
	notifier Notifier
	logger   *logging.Logger
	now      func() time.Time
}

func NewSlotService(
	slots slot.Repository,
	idGen idgen.Generator,
	notifier Notifier,
	logger *logging.Logger,
) *SlotService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SlotService{
		slots:    slots,
		idGen:    idGen,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateSlot validates a single-slot creation request, rejects schedule
// conflicts on the same field and date, and publishes the slot. createdBy is
// the caller's identity email; it is recorded as the creator of record but
// not validated here.
func (s *SlotService) CreateSlot(ctx context.Context, input CreateSlotInput, createdBy string) (slot.Slot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SlotService.CreateSlot")
	defer span.End()

	leagueID := strings.TrimSpace(input.LeagueID)
	if leagueID == "" {
		return slot.Slot{}, fmt.Errorf("%w: league id is required", ErrInvalidScope)
	}

	division := strings.TrimSpace(input.Division)
	offeringTeamID := strings.TrimSpace(input.OfferingTeamID)
	gameDate := strings.TrimSpace(input.GameDate)
	startTime := strings.TrimSpace(input.StartTime)
	endTime := strings.TrimSpace(input.EndTime)
	rawKey := strings.TrimSpace(input.FieldKey)

	var missing []string
	if division == "" {
		missing = append(missing, "division")
	}
	if offeringTeamID == "" {
		missing = append(missing, "offeringTeamId")
	}
	if gameDate == "" {
		missing = append(missing, "gameDate")
	}
	if startTime == "" {
		missing = append(missing, "startTime")
	}
	if endTime == "" {
		missing = append(missing, "endTime")
	}
	if rawKey == "" {
		missing = append(missing, "fieldKey")
	}
	if len(missing) > 0 {
		return slot.Slot{}, fmt.Errorf("%w: required fields missing: %s", ErrInvalidInput, strings.Join(missing, ", "))
	}

	key, ok := field.ParseKeyFlexible(rawKey)
	if !ok {
		return slot.Slot{}, fmt.Errorf("%w: invalid field key %q (use park/field or park_field)", ErrInvalidInput, rawKey)
	}
	normalizedDate, err := schedule.ParseDate(gameDate)
	if err != nil {
		return slot.Slot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	startMinutes, err := schedule.ParseClock(startTime)
	if err != nil {
		return slot.Slot{}, fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}
	endMinutes, err := schedule.ParseClock(endTime)
	if err != nil {
		return slot.Slot{}, fmt.Errorf("%w: end time: %v", ErrInvalidInput, err)
	}
	if startMinutes >= endMinutes {
		return slot.Slot{}, fmt.Errorf("%w: start time %s must be before end time %s", ErrInvalidInput, startTime, endTime)
	}

	if err := s.checkScheduleConflict(ctx, leagueID, key.Normalized(), normalizedDate, startMinutes, endMinutes); err != nil {
		return slot.Slot{}, err
	}

	slotID, err := s.idGen.NewID()
	if err != nil {
		return slot.Slot{}, fmt.Errorf("generate slot id: %w", err)
	}

	now := s.now()
	record := slot.Slot{
		ID:             slotID,
		LeagueID:       leagueID,
		Division:       division,
		OfferingTeamID: offeringTeamID,
		GameDate:       normalizedDate,
		StartTime:      startTime,
		EndTime:        endTime,
		StartMinutes:   startMinutes,
		EndMinutes:     endMinutes,
		FieldKey:       key.Normalized(),
		ParkCode:       key.ParkCode,
		FieldCode:      key.FieldCode,
		Status:         slot.StatusOpen,
		ParkName:       input.ParkName,
		FieldName:      input.FieldName,
		OfferingEmail:  input.OfferingEmail,
		GameType:       input.GameType,
		Notes:          input.Notes,
		CreatedBy:      createdBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.slots.Insert(ctx, record); err != nil {
		return slot.Slot{}, fmt.Errorf("insert slot: %w", err)
	}

	s.publish(ctx, EventSlotCreated, record, createdBy)

	return record, nil
}

// ListSlots returns the league's slots after normalizing the filter through
// the same parsers the writes use.
func (s *SlotService) ListSlots(ctx context.Context, leagueID string, filter slot.ListFilter) ([]slot.Slot, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidScope)
	}

	filter.Division = strings.TrimSpace(filter.Division)

	if raw := strings.TrimSpace(string(filter.Status)); raw != "" {
		status, err := parseStatusFilter(raw)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	} else {
		filter.Status = ""
	}

	if raw := strings.TrimSpace(filter.FieldKey); raw != "" {
		key, ok := field.ParseKeyFlexible(raw)
		if !ok {
			return nil, fmt.Errorf("%w: invalid field key %q (use park/field or park_field)", ErrInvalidInput, raw)
		}
		filter.FieldKey = key.Normalized()
	} else {
		filter.FieldKey = ""
	}

	if raw := strings.TrimSpace(filter.GameDate); raw != "" {
		date, err := schedule.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.GameDate = date
	} else {
		filter.GameDate = ""
	}

	slots, err := s.slots.ListByLeague(ctx, leagueID, filter)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	return slots, nil
}

func (s *SlotService) GetSlot(ctx context.Context, leagueID, slotID string) (slot.Slot, error) {
	leagueID = strings.TrimSpace(leagueID)
	slotID = strings.TrimSpace(slotID)
	if slotID == "" {
		return slot.Slot{}, fmt.Errorf("%w: slot id is required", ErrInvalidInput)
	}

	record, found, err := s.slots.GetByID(ctx, leagueID, slotID)
	if err != nil {
		return slot.Slot{}, fmt.Errorf("get slot: %w", err)
	}
	if !found {
		return slot.Slot{}, fmt.Errorf("%w: slot %s", ErrNotFound, slotID)
	}

	return record, nil
}

// ClaimSlot marks an open slot as claimed by another team. A team cannot
// claim its own offering.
func (s *SlotService) ClaimSlot(ctx context.Context, leagueID, slotID, claimingTeamID, claimedBy string) (slot.Slot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SlotService.ClaimSlot")
	defer span.End()

	claimingTeamID = strings.TrimSpace(claimingTeamID)
	if claimingTeamID == "" {
		return slot.Slot{}, fmt.Errorf("%w: required fields missing: claimingTeamId", ErrInvalidInput)
	}

	record, err := s.GetSlot(ctx, leagueID, slotID)
	if err != nil {
		return slot.Slot{}, err
	}
	if record.Status != slot.StatusOpen {
		return slot.Slot{}, fmt.Errorf("%w: slot %s is %s", ErrSlotUnavailable, record.ID, record.Status)
	}
	if strings.EqualFold(claimingTeamID, record.OfferingTeamID) {
		return slot.Slot{}, fmt.Errorf("%w: team %s cannot claim its own slot", ErrInvalidInput, claimingTeamID)
	}

	record.Status = slot.StatusClaimed
	record.ClaimedByTeamID = claimingTeamID
	record.ClaimedBy = claimedBy
	record.UpdatedAt = s.now()

	if err := s.slots.Update(ctx, record); err != nil {
		return slot.Slot{}, fmt.Errorf("update slot: %w", err)
	}

	s.publish(ctx, EventSlotClaimed, record, claimedBy)

	return record, nil
}

// ReleaseSlot returns a claimed slot to the open pool.
func (s *SlotService) ReleaseSlot(ctx context.Context, leagueID, slotID, releasedBy string) (slot.Slot, error) {
	record, err := s.GetSlot(ctx, leagueID, slotID)
	if err != nil {
		return slot.Slot{}, err
	}
	if record.Status != slot.StatusClaimed {
		return slot.Slot{}, fmt.Errorf("%w: slot %s is %s, not claimed", ErrSlotUnavailable, record.ID, record.Status)
	}

	record.Status = slot.StatusOpen
	record.ClaimedByTeamID = ""
	record.ClaimedBy = ""
	record.UpdatedAt = s.now()

	if err := s.slots.Update(ctx, record); err != nil {
		return slot.Slot{}, fmt.Errorf("update slot: %w", err)
	}

	s.publish(ctx, EventSlotReleased, record, releasedBy)

	return record, nil
}

// CancelSlot withdraws a slot entirely; its window no longer blocks others.
func (s *SlotService) CancelSlot(ctx context.Context, leagueID, slotID, cancelledBy string) (slot.Slot, error) {
	record, err := s.GetSlot(ctx, leagueID, slotID)
	if err != nil {
		return slot.Slot{}, err
	}
	if record.Status == slot.StatusCancelled {
		return slot.Slot{}, fmt.Errorf("%w: slot %s is already cancelled", ErrSlotUnavailable, record.ID)
	}

	record.Status = slot.StatusCancelled
	record.UpdatedAt = s.now()

	if err := s.slots.Update(ctx, record); err != nil {
		return slot.Slot{}, fmt.Errorf("update slot: %w", err)
	}

	s.publish(ctx, EventSlotCancelled, record, cancelledBy)

	return record, nil
}

// checkScheduleConflict applies the half-open overlap rule against every slot
// already booked on the same field and date. Cancelled slots release their
// window; everything else holds it.
func (s *SlotService) checkScheduleConflict(ctx context.Context, leagueID, fieldKey, gameDate string, startMinutes, endMinutes int) error {
	existing, err := s.slots.ListByFieldDate(ctx, leagueID, fieldKey, gameDate)
	if err != nil {
		return fmt.Errorf("list slots for conflict check: %w", err)
	}

	windows := make([]schedule.Window, 0, len(existing))
	for _, item := range existing {
		if item.Status == slot.StatusCancelled {
			continue
		}
		windows = append(windows, schedule.Window{Start: item.StartMinutes, End: item.EndMinutes, Ref: item.ID})
	}

	if conflict, found := schedule.FirstConflict(startMinutes, endMinutes, windows); found {
		return fmt.Errorf("%w: %s on %s overlaps slot %s", ErrSlotConflict, fieldKey, gameDate, conflict.Ref)
	}

	return nil
}

func (s *SlotService) publish(ctx context.Context, eventType string, record slot.Slot, actor string) {
	if s.notifier == nil {
		return
	}

	s.notifier.SlotEvent(ctx, SlotEvent{
		Type:       eventType,
		LeagueID:   record.LeagueID,
		SlotID:     record.ID,
		Division:   record.Division,
		FieldKey:   record.FieldKey,
		GameDate:   record.GameDate,
		StartTime:  record.StartTime,
		EndTime:    record.EndTime,
		Actor:      actor,
		OccurredAt: s.now(),
	})
}

func parseStatusFilter(raw string) (slot.Status, error) {
	switch slot.Status(strings.ToLower(raw)) {
	case slot.StatusOpen, slot.StatusClosed, slot.StatusClaimed, slot.StatusCancelled:
		return slot.Status(strings.ToLower(raw)), nil
	default:
		return "", fmt.Errorf("%w: unknown status filter %q", ErrInvalidInput, raw)
	}
}
