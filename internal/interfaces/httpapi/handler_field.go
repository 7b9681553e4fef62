package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/slotpitch/league-api/internal/domain/field"
	"github.com/slotpitch/league-api/internal/usecase"
)

type fieldDTO struct {
	ID        string `json:"id"`
	LeagueID  string `json:"leagueId"`
	FieldKey  string `json:"fieldKey"`
	ParkCode  string `json:"parkCode"`
	FieldCode string `json:"fieldCode"`
	ParkName  string `json:"parkName,omitempty"`
	FieldName string `json:"fieldName,omitempty"`
	Active    bool   `json:"active"`
}

func fieldToDTO(def field.Definition) fieldDTO {
	return fieldDTO{
		ID:        def.ID,
		LeagueID:  def.LeagueID,
		FieldKey:  def.Key.Normalized(),
		ParkCode:  def.Key.ParkCode,
		FieldCode: def.Key.FieldCode,
		ParkName:  def.ParkName,
		FieldName: def.FieldName,
		Active:    def.Active,
	}
}

func (h *Handler) ListFields(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFields")
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

	activeOnly := false
	if raw := strings.TrimSpace(GetQueryParam(r, "activeOnly")); raw != "" {
		activeOnly, err = strconv.ParseBool(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid activeOnly value %q", usecase.ErrInvalidInput, raw))
			return
		}
	}

	defs, err := h.fieldService.ListFields(ctx, leagueID, activeOnly)
	if err != nil {
		h.logger.WarnContext(ctx, "list fields failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]fieldDTO, 0, len(defs))
	for _, def := range defs {
		items = append(items, fieldToDTO(def))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
