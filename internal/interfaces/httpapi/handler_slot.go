package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/slotpitch/league-api/internal/domain/slot"
	"github.com/slotpitch/league-api/internal/usecase"
)

type createSlotRequest struct {
	Division       string `json:"division" validate:"max=60"`
	OfferingTeamID string `json:"offeringTeamId" validate:"max=120"`
	GameDate       string `json:"gameDate" validate:"max=10"`
	StartTime      string `json:"startTime" validate:"max=5"`
	EndTime        string `json:"endTime" validate:"max=5"`
	FieldKey       string `json:"fieldKey" validate:"max=200"`
	ParkName       string `json:"parkName" validate:"max=200"`
	FieldName      string `json:"fieldName" validate:"max=200"`
	OfferingEmail  string `json:"offeringEmail" validate:"omitempty,email"`
	GameType       string `json:"gameType" validate:"max=60"`
	Notes          string `json:"notes" validate:"max=2000"`
}

type claimSlotRequest struct {
	ClaimingTeamID string `json:"claimingTeamId" validate:"max=120"`
}

type slotDTO struct {
	ID              string     `json:"id"`
	LeagueID        string     `json:"leagueId"`
	Division        string     `json:"division"`
	OfferingTeamID  string     `json:"offeringTeamId"`
	GameDate        string     `json:"gameDate"`
	StartTime       string     `json:"startTime"`
	EndTime         string     `json:"endTime"`
	FieldKey        string     `json:"fieldKey"`
	ParkCode        string     `json:"parkCode"`
	FieldCode       string     `json:"fieldCode"`
	Status          string     `json:"status"`
	ParkName        string     `json:"parkName,omitempty"`
	FieldName       string     `json:"fieldName,omitempty"`
	OfferingEmail   string     `json:"offeringEmail,omitempty"`
	GameType        string     `json:"gameType,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedBy       string     `json:"createdBy,omitempty"`
	ClaimedByTeamID string     `json:"claimedByTeamId,omitempty"`
	ClaimedBy       string     `json:"claimedBy,omitempty"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

func slotToDTO(s slot.Slot) slotDTO {
	dto := slotDTO{
		ID:              s.ID,
		LeagueID:        s.LeagueID,
		Division:        s.Division,
		OfferingTeamID:  s.OfferingTeamID,
		GameDate:        s.GameDate,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		FieldKey:        s.FieldKey,
		ParkCode:        s.ParkCode,
		FieldCode:       s.FieldCode,
		Status:          string(s.Status),
		ParkName:        s.ParkName,
		FieldName:       s.FieldName,
		OfferingEmail:   s.OfferingEmail,
		GameType:        s.GameType,
		Notes:           s.Notes,
		CreatedBy:       s.CreatedBy,
		ClaimedByTeamID: s.ClaimedByTeamID,
		ClaimedBy:       s.ClaimedBy,
	}
	if !s.CreatedAt.IsZero() {
		createdAt := s.CreatedAt
		dto.CreatedAt = &createdAt
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		dto.UpdatedAt = &updatedAt
	}

	return dto
}

func (h *Handler) ListSlots(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSlots")
	defer span.End()

	leagueID, principal, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.guards.RequireMember(ctx, principal.UserID, leagueID); err != nil {
		writeError(ctx, w, err)
		return
	}

	filter := slot.ListFilter{
		Division: GetQueryParam(r, "division"),
		FieldKey: GetQueryParam(r, "fieldKey"),
		GameDate: GetQueryParam(r, "gameDate"),
		Status:   slot.Status(GetQueryParam(r, "status")),
	}

	slots, err := h.slotService.ListSlots(ctx, leagueID, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list slots failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]slotDTO, 0, len(slots))
	for _, s := range slots {
		items = append(items, slotToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetSlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSlot")
	defer span.End()

	leagueID, principal, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.guards.RequireMember(ctx, principal.UserID, leagueID); err != nil {
		writeError(ctx, w, err)
		return
	}

	slotID := strings.TrimSpace(r.PathValue("slotID"))
	record, err := h.slotService.GetSlot(ctx, leagueID, slotID)
	if err != nil {
		h.logger.WarnContext(ctx, "get slot failed", "league_id", leagueID, "slot_id", slotID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, slotToDTO(record))
}

func (h *Handler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSlot")
	defer span.End()

	leagueID, principal, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.guards.RequireMember(ctx, principal.UserID, leagueID); err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createSlotRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	record, err := h.slotService.CreateSlot(ctx, usecase.CreateSlotInput{
		LeagueID:       leagueID,
		Division:       req.Division,
		OfferingTeamID: req.OfferingTeamID,
		GameDate:       req.GameDate,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		FieldKey:       req.FieldKey,
		ParkName:       req.ParkName,
		FieldName:      req.FieldName,
		OfferingEmail:  req.OfferingEmail,
		GameType:       req.GameType,
		Notes:          req.Notes,
	}, principal.Email)
	if err != nil {
		h.logger.WarnContext(ctx, "create slot failed", "league_id", leagueID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, slotToDTO(record))
}

func (h *Handler) ClaimSlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClaimSlot")
	defer span.End()

	leagueID, principal, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.guards.RequireMember(ctx, principal.UserID, leagueID); err != nil {
		writeError(ctx, w, err)
		return
	}

	var req claimSlotRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	slotID := strings.TrimSpace(r.PathValue("slotID"))
	record, err := h.slotService.ClaimSlot(ctx, leagueID, slotID, req.ClaimingTeamID, principal.Email)
	if err != nil {
		h.logger.WarnContext(ctx, "claim slot failed", "league_id", leagueID, "slot_id", slotID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, slotToDTO(record))
}

func (h *Handler) ReleaseSlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReleaseSlot")
	defer span.End()

	leagueID, principal, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.guards.RequireMember(ctx, principal.UserID, leagueID); err != nil {
		writeError(ctx, w, err)
		return
	}

	slotID := strings.TrimSpace(r.PathValue("slotID"))
	record, err := h.slotService.ReleaseSlot(ctx, leagueID, slotID, principal.Email)
	if err != nil {
		h.logger.WarnContext(ctx, "release slot failed", "league_id", leagueID, "slot_id", slotID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, slotToDTO(record))
}

func (h *Handler) CancelSlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelSlot")
	defer span.End()

	leagueID, principal, err := requestScope(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.guards.RequireAdmin(ctx, principal.UserID); err != nil {
		writeError(ctx, w, err)
		return
	}

	slotID := strings.TrimSpace(r.PathValue("slotID"))
	record, err := h.slotService.CancelSlot(ctx, leagueID, slotID, principal.Email)
	if err != nil {
		h.logger.WarnContext(ctx, "cancel slot failed", "league_id", leagueID, "slot_id", slotID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, slotToDTO(record))
}
