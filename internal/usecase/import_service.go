package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/slotpitch/league-api/internal/domain/field"
	"github.com/slotpitch/league-api/internal/domain/schedule"
	"github.com/slotpitch/league-api/internal/domain/slot"
	idgen "github.com/slotpitch/league-api/internal/platform/id"
	"github.com/slotpitch/league-api/internal/platform/logging"
	"github.com/slotpitch/league-api/internal/platform/tabular"
)

// CSV columns, matched by lower-cased trimmed header name so column order in
// the file never matters.
const (
	columnDivision       = "division"
	columnOfferingTeamID = "offeringteamid"
	columnGameDate       = "gamedate"
	columnStartTime      = "starttime"
	columnEndTime        = "endtime"
	columnFieldKey       = "fieldkey"
	columnStatus         = "status"
	columnActive         = "active"
	columnNotes          = "notes"
	columnParkName       = "parkname"
	columnFieldName      = "fieldname"
	columnOfferingEmail  = "offeringemail"
	columnGameType       = "gametype"
)

var requiredSlotColumns = []string{
	columnDivision,
	columnOfferingTeamID,
	columnGameDate,
	columnStartTime,
	columnEndTime,
	columnFieldKey,
}

// Per-row import outcomes.
const (
	RowStatusImported    = "imported"
	RowStatusWouldImport = "would_import"
	RowStatusRejected    = "rejected"
	RowStatusConflict    = "conflict"
)

const (
	defaultImportMaxRows = 5000
	defaultImportWorkers = 4
)

type ImportSlotsInput struct {
	LeagueID string
	Header   []string
	Rows     [][]string
	// DryRun validates and conflict-checks without writing.
	DryRun     bool
	ImportedBy string
}

type SlotRowResult struct {
	Line   int    `json:"line"`
	Status string `json:"status"`
	SlotID string `json:"slotId,omitempty"`
	Error  string `json:"error,omitempty"`
}

type ImportSlotsResult struct {
	RowCount      int             `json:"rowCount"`
	ImportedCount int             `json:"importedCount"`
	RejectedCount int             `json:"rejectedCount"`
	ConflictCount int             `json:"conflictCount"`
	WorkerCount   int             `json:"workerCount"`
	DryRun        bool            `json:"dryRun"`
	Rows          []SlotRowResult `json:"rows"`
}

type ImportFieldsInput struct {
	LeagueID string
	Header   []string
	Rows     [][]string
	DryRun   bool
}

type FieldRowResult struct {
	Line     int    `json:"line"`
	Status   string `json:"status"`
	FieldKey string `json:"fieldKey,omitempty"`
	Error    string `json:"error,omitempty"`
}

type ImportFieldsResult struct {
	RowCount      int              `json:"rowCount"`
	ImportedCount int              `json:"importedCount"`
	RejectedCount int              `json:"rejectedCount"`
	DryRun        bool             `json:"dryRun"`
	Rows          []FieldRowResult `json:"rows"`
}

// ImportService turns untrusted CSV uploads into validated slot and field
// records. Row validation is pure and fans out across a bounded worker pool;
// the write pass stays sequential so conflict checks see every row accepted
// earlier in the same file.
type ImportService struct {
	slots      slot.Repository
	fields     field.Repository
	idGen      idgen.Generator
	maxRows    int
	maxWorkers int
	logger     *logging.Logger
	now        func() time.Time
}

func NewImportService(
	slots slot.Repository,
	fields field.Repository,
	idGen idgen.Generator,
	maxRows int,
	maxWorkers int,
	logger *logging.Logger,
) *ImportService {
	if logger == nil {
		logger = logging.Default()
	}
	if maxRows <= 0 {
		maxRows = defaultImportMaxRows
	}
	if maxWorkers <= 0 {
		maxWorkers = defaultImportWorkers
	}

	return &ImportService{
		slots:      slots,
		fields:     fields,
		idGen:      idGen,
		maxRows:    maxRows,
		maxWorkers: maxWorkers,
		logger:     logger,
		now:        time.Now,
	}
}

// ImportSlots validates every row independently, then walks the survivors in
// file order checking schedule conflicts against stored slots and against
// rows accepted earlier in the same batch. Inserts are per-row, not
// transactional: a store failure aborts the import and already-written rows
// stay. Reported line numbers count the header as line 1.
func (s *ImportService) ImportSlots(ctx context.Context, input ImportSlotsInput) (ImportSlotsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.ImportSlots")
	defer span.End()

	leagueID := strings.TrimSpace(input.LeagueID)
	if leagueID == "" {
		return ImportSlotsResult{}, fmt.Errorf("%w: league id is required", ErrInvalidScope)
	}
	if len(input.Rows) == 0 {
		return ImportSlotsResult{}, fmt.Errorf("%w: csv has no data rows", ErrInvalidInput)
	}
	if len(input.Rows) > s.maxRows {
		return ImportSlotsResult{}, fmt.Errorf("%w: csv has %d data rows, limit is %d", ErrInvalidInput, len(input.Rows), s.maxRows)
	}

	idx := tabular.NewHeaderIndex(input.Header)
	if missing := missingColumns(idx, requiredSlotColumns); len(missing) > 0 {
		return ImportSlotsResult{}, fmt.Errorf("%w: missing required columns: %s", ErrInvalidInput, strings.Join(missing, ", "))
	}

	parsed, workerCount, err := s.parseSlotRowsParallel(input.Rows, idx)
	if err != nil {
		return ImportSlotsResult{}, err
	}

	result := ImportSlotsResult{
		RowCount:    len(input.Rows),
		WorkerCount: workerCount,
		DryRun:      input.DryRun,
		Rows:        make([]SlotRowResult, 0, len(parsed)),
	}

	// Windows already booked per field and date, loaded lazily, growing as
	// batch rows are accepted so rows in the same file collide with each
	// other too.
	type windowKey struct {
		fieldKey string
		gameDate string
	}
	booked := make(map[windowKey][]schedule.Window)

	for _, row := range parsed {
		if row.err != nil {
			result.RejectedCount++
			result.Rows = append(result.Rows, SlotRowResult{Line: row.line, Status: RowStatusRejected, Error: row.err.Error()})
			continue
		}

		record := row.record
		key := windowKey{fieldKey: record.FieldKey, gameDate: record.GameDate}
		windows, loaded := booked[key]
		if !loaded {
			existing, listErr := s.slots.ListByFieldDate(ctx, leagueID, record.FieldKey, record.GameDate)
			if listErr != nil {
				return ImportSlotsResult{}, fmt.Errorf("list slots for conflict check: %w", listErr)
			}
			windows = make([]schedule.Window, 0, len(existing))
			for _, item := range existing {
				if item.Status == slot.StatusCancelled {
					continue
				}
				windows = append(windows, schedule.Window{Start: item.StartMinutes, End: item.EndMinutes, Ref: item.ID})
			}
		}

		if conflict, found := schedule.FirstConflict(record.StartMinutes, record.EndMinutes, windows); found {
			result.ConflictCount++
			result.Rows = append(result.Rows, SlotRowResult{
				Line:   row.line,
				Status: RowStatusConflict,
				Error:  fmt.Sprintf("%s on %s overlaps slot %s", record.FieldKey, record.GameDate, conflict.Ref),
			})
			booked[key] = windows
			continue
		}

		slotID, idErr := s.idGen.NewID()
		if idErr != nil {
			return ImportSlotsResult{}, fmt.Errorf("generate slot id: %w", idErr)
		}

		now := s.now()
		record.ID = slotID
		record.LeagueID = leagueID
		record.CreatedBy = input.ImportedBy
		record.CreatedAt = now
		record.UpdatedAt = now

		status := RowStatusWouldImport
		if !input.DryRun {
			if insertErr := s.slots.Insert(ctx, record); insertErr != nil {
				return ImportSlotsResult{}, fmt.Errorf("insert slot line %d: %w", row.line, insertErr)
			}
			status = RowStatusImported
		}

		booked[key] = append(windows, schedule.Window{Start: record.StartMinutes, End: record.EndMinutes, Ref: record.ID})
		result.ImportedCount++
		result.Rows = append(result.Rows, SlotRowResult{Line: row.line, Status: status, SlotID: slotID})
	}

	s.logger.InfoContext(ctx, "slot import finished",
		"league_id", leagueID,
		"rows", result.RowCount,
		"imported", result.ImportedCount,
		"rejected", result.RejectedCount,
		"conflicts", result.ConflictCount,
		"dry_run", result.DryRun,
	)

	return result, nil
}

type parsedSlotRow struct {
	line   int
	record slot.Slot
	err    error
}

func (s *ImportService) parseSlotRowsParallel(rows [][]string, idx tabular.HeaderIndex) ([]parsedSlotRow, int, error) {
	workerCount := s.maxWorkers
	if workerCount > len(rows) {
		workerCount = len(rows)
	}

	results := make(chan parsedSlotRow, len(rows))

	var rejected atomic.Int32
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, 0, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, row := range rows {
		i, row := i, row
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			record, parseErr := parseSlotRow(row, idx)
			if parseErr != nil {
				rejected.Add(1)
			}
			results <- parsedSlotRow{line: i + 2, record: record, err: parseErr}
		}); err != nil {
			workers.Done()
			return nil, 0, fmt.Errorf("submit row to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	parsed := make([]parsedSlotRow, 0, len(rows))
	for row := range results {
		parsed = append(parsed, row)
	}
	sort.SliceStable(parsed, func(i, j int) bool { return parsed[i].line < parsed[j].line })

	return parsed, workerCount, nil
}

// parseSlotRow validates one CSV row against the header index. A required
// column that is absent or blank fails with a message naming every missing
// field; format failures come afterwards with their own shapes. A row is
// either fully valid or rejected whole.
func parseSlotRow(row []string, idx tabular.HeaderIndex) (slot.Slot, error) {
	values := make(map[string]string, len(requiredSlotColumns))
	var missing []string
	for _, column := range requiredSlotColumns {
		cell, present := idx.Cell(row, column)
		cell = strings.TrimSpace(cell)
		if !present || cell == "" {
			missing = append(missing, column)
			continue
		}
		values[column] = cell
	}
	if len(missing) > 0 {
		return slot.Slot{}, fmt.Errorf("required fields missing: %s", strings.Join(missing, ", "))
	}

	rawKey := values[columnFieldKey]
	key, ok := field.ParseKeyFlexible(rawKey)
	if !ok {
		return slot.Slot{}, fmt.Errorf("invalid field key %q (use park/field or park_field)", rawKey)
	}

	gameDate, err := schedule.ParseDate(values[columnGameDate])
	if err != nil {
		return slot.Slot{}, err
	}
	startMinutes, err := schedule.ParseClock(values[columnStartTime])
	if err != nil {
		return slot.Slot{}, fmt.Errorf("start time: %w", err)
	}
	endMinutes, err := schedule.ParseClock(values[columnEndTime])
	if err != nil {
		return slot.Slot{}, fmt.Errorf("end time: %w", err)
	}
	if startMinutes >= endMinutes {
		return slot.Slot{}, fmt.Errorf("start time %s must be before end time %s", values[columnStartTime], values[columnEndTime])
	}

	statusText, _ := idx.Cell(row, columnStatus)
	parkName, _ := idx.Cell(row, columnParkName)
	fieldName, _ := idx.Cell(row, columnFieldName)
	offeringEmail, _ := idx.Cell(row, columnOfferingEmail)
	gameType, _ := idx.Cell(row, columnGameType)
	notes, _ := idx.Cell(row, columnNotes)

	return slot.Slot{
		Division:       values[columnDivision],
		OfferingTeamID: values[columnOfferingTeamID],
		GameDate:       gameDate,
		StartTime:      values[columnStartTime],
		EndTime:        values[columnEndTime],
		StartMinutes:   startMinutes,
		EndMinutes:     endMinutes,
		FieldKey:       key.Normalized(),
		ParkCode:       key.ParkCode,
		FieldCode:      key.FieldCode,
		Status:         slot.ParseStatus(statusText),
		ParkName:       strings.TrimSpace(parkName),
		FieldName:      strings.TrimSpace(fieldName),
		OfferingEmail:  strings.TrimSpace(offeringEmail),
		GameType:       strings.TrimSpace(gameType),
		Notes:          strings.TrimSpace(notes),
	}, nil
}

// ImportFields upserts field catalog rows keyed by normalized field key.
// Catalogs are small, so rows are validated inline without the worker pool.
func (s *ImportService) ImportFields(ctx context.Context, input ImportFieldsInput) (ImportFieldsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.ImportFields")
	defer span.End()

	leagueID := strings.TrimSpace(input.LeagueID)
	if leagueID == "" {
		return ImportFieldsResult{}, fmt.Errorf("%w: league id is required", ErrInvalidScope)
	}
	if len(input.Rows) == 0 {
		return ImportFieldsResult{}, fmt.Errorf("%w: csv has no data rows", ErrInvalidInput)
	}
	if len(input.Rows) > s.maxRows {
		return ImportFieldsResult{}, fmt.Errorf("%w: csv has %d data rows, limit is %d", ErrInvalidInput, len(input.Rows), s.maxRows)
	}

	idx := tabular.NewHeaderIndex(input.Header)
	if missing := missingColumns(idx, []string{columnFieldKey}); len(missing) > 0 {
		return ImportFieldsResult{}, fmt.Errorf("%w: missing required columns: %s", ErrInvalidInput, strings.Join(missing, ", "))
	}

	result := ImportFieldsResult{
		RowCount: len(input.Rows),
		DryRun:   input.DryRun,
		Rows:     make([]FieldRowResult, 0, len(input.Rows)),
	}

	for i, row := range input.Rows {
		line := i + 2

		def, err := parseFieldRow(row, idx)
		if err != nil {
			result.RejectedCount++
			result.Rows = append(result.Rows, FieldRowResult{Line: line, Status: RowStatusRejected, Error: err.Error()})
			continue
		}
		def.LeagueID = leagueID

		existing, found, getErr := s.fields.GetByKey(ctx, leagueID, def.Key.Normalized())
		if getErr != nil {
			return ImportFieldsResult{}, fmt.Errorf("get field by key: %w", getErr)
		}

		now := s.now()
		if found {
			def.ID = existing.ID
			def.CreatedAt = existing.CreatedAt
		} else {
			fieldID, idErr := s.idGen.NewID()
			if idErr != nil {
				return ImportFieldsResult{}, fmt.Errorf("generate field id: %w", idErr)
			}
			def.ID = fieldID
			def.CreatedAt = now
		}
		def.UpdatedAt = now

		status := RowStatusWouldImport
		if !input.DryRun {
			if upsertErr := s.fields.Upsert(ctx, def); upsertErr != nil {
				return ImportFieldsResult{}, fmt.Errorf("upsert field line %d: %w", line, upsertErr)
			}
			status = RowStatusImported
		}

		result.ImportedCount++
		result.Rows = append(result.Rows, FieldRowResult{Line: line, Status: status, FieldKey: def.Key.Normalized()})
	}

	s.logger.InfoContext(ctx, "field import finished",
		"league_id", leagueID,
		"rows", result.RowCount,
		"imported", result.ImportedCount,
		"rejected", result.RejectedCount,
		"dry_run", result.DryRun,
	)

	return result, nil
}

func parseFieldRow(row []string, idx tabular.HeaderIndex) (field.Definition, error) {
	rawKey, present := idx.Cell(row, columnFieldKey)
	rawKey = strings.TrimSpace(rawKey)
	if !present || rawKey == "" {
		return field.Definition{}, fmt.Errorf("required fields missing: %s", columnFieldKey)
	}

	key, ok := field.ParseKeyFlexible(rawKey)
	if !ok {
		return field.Definition{}, fmt.Errorf("invalid field key %q (use park/field or park_field)", rawKey)
	}

	statusText, _ := idx.Cell(row, columnStatus)
	activeText, _ := idx.Cell(row, columnActive)
	parkName, _ := idx.Cell(row, columnParkName)
	fieldName, _ := idx.Cell(row, columnFieldName)

	return field.Definition{
		Key:       key,
		ParkName:  strings.TrimSpace(parkName),
		FieldName: strings.TrimSpace(fieldName),
		Active:    field.ParseActive(statusText, activeText),
	}, nil
}

func missingColumns(idx tabular.HeaderIndex, required []string) []string {
	var missing []string
	for _, column := range required {
		if !idx.Has(column) {
			missing = append(missing, column)
		}
	}

	return missing
}
