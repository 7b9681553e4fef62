package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/slotpitch/league-api/internal/domain/membership"
	"github.com/slotpitch/league-api/internal/usecase"
)

type upsertMembershipRequest struct {
	UserID string `json:"userId" validate:"required,max=120"`
	Role   string `json:"role" validate:"max=60"`
}

type membershipDTO struct {
	UserID    string     `json:"userId"`
	LeagueID  string     `json:"leagueId"`
	Role      string     `json:"role,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func membershipToDTO(m membership.Membership) membershipDTO {
	dto := membershipDTO{
		UserID:   m.UserID,
		LeagueID: m.LeagueID,
		Role:     m.Role,
	}
	if !m.CreatedAt.IsZero() {
		createdAt := m.CreatedAt
		dto.CreatedAt = &createdAt
	}
	if !m.UpdatedAt.IsZero() {
		updatedAt := m.UpdatedAt
		dto.UpdatedAt = &updatedAt
	}

	return dto
}

// MyMemberships lists the caller's memberships across leagues. It is the one
// membership route that needs no league scope.
func (h *Handler) MyMemberships(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MyMemberships")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	mine, err := h.membershipService.MyMemberships(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list my memberships failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]membershipDTO, 0, len(mine))
	for _, m := range mine {
		items = append(items, membershipToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListMemberships(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMemberships")
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

	roster, err := h.membershipService.ListRoster(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list roster failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]membershipDTO, 0, len(roster))
	for _, m := range roster {
		items = append(items, membershipToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) UpsertMembership(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertMembership")
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

	var req upsertMembershipRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	record, err := h.membershipService.UpsertMembership(ctx, usecase.UpsertMembershipInput{
		UserID:   req.UserID,
		LeagueID: leagueID,
		Role:     req.Role,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "upsert membership failed", "league_id", leagueID, "target_user_id", req.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, membershipToDTO(record))
}

func (h *Handler) DeleteMembership(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMembership")
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

	userID := strings.TrimSpace(r.PathValue("userID"))
	if err := h.membershipService.RemoveMembership(ctx, leagueID, userID); err != nil {
		h.logger.WarnContext(ctx, "delete membership failed", "league_id", leagueID, "target_user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}
