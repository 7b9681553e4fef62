package httpapi

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/slotpitch/league-api/internal/usecase"
)

// maxImportBodyBytes caps CSV uploads before row-count limits apply.
const maxImportBodyBytes = 8 << 20

func (h *Handler) ImportSlots(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportSlots")
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

	header, rows, err := readCSVBody(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	dryRun, err := parseDryRun(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.importService.ImportSlots(ctx, usecase.ImportSlotsInput{
		LeagueID:   leagueID,
		Header:     header,
		Rows:       rows,
		DryRun:     dryRun,
		ImportedBy: principal.Email,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "slot import failed", "league_id", leagueID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) ImportFields(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportFields")
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

	header, rows, err := readCSVBody(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	dryRun, err := parseDryRun(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.importService.ImportFields(ctx, usecase.ImportFieldsInput{
		LeagueID: leagueID,
		Header:   header,
		Rows:     rows,
		DryRun:   dryRun,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "field import failed", "league_id", leagueID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

// readCSVBody reads the upload as CSV and splits the header row from the data
// rows. Ragged rows are allowed; the importers treat short rows as absent
// cells.
func readCSVBody(w http.ResponseWriter, r *http.Request) ([]string, [][]string, error) {
	reader := csv.NewReader(http.MaxBytesReader(w, r.Body, maxImportBodyBytes))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("%w: csv body is empty", usecase.ErrInvalidInput)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read csv header: %v", usecase.ErrInvalidInput, err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: read csv row: %v", usecase.ErrInvalidInput, err)
		}
		rows = append(rows, row)
	}

	return header, rows, nil
}

func parseDryRun(r *http.Request) (bool, error) {
	raw := strings.TrimSpace(GetQueryParam(r, "dryRun"))
	if raw == "" {
		return false, nil
	}

	dryRun, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: invalid dryRun value %q", usecase.ErrInvalidInput, raw)
	}

	return dryRun, nil
}
