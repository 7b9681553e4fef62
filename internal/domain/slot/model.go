package slot

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a game slot.
type Status string

const (
	StatusOpen      Status = "open"
	StatusClosed    Status = "closed"
	StatusClaimed   Status = "claimed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus maps free-form status text onto the slot vocabulary. Blank
// defaults to open so an omitted status column publishes the slot; text
// containing "closed" closes it. Claimed and cancelled never come from
// imports, only from the claim lifecycle.
func ParseStatus(statusText string) Status {
	v := strings.TrimSpace(statusText)
	if v == "" {
		return StatusOpen
	}
	if strings.Contains(strings.ToLower(v), "closed") {
		return StatusClosed
	}

	return StatusOpen
}

// Slot is a published game window on a field that another team in the league
// can claim. GameDate is YYYY-MM-DD; StartTime/EndTime are HH:mm with the
// minute equivalents carried alongside for overlap checks.
type Slot struct {
	ID              string
	LeagueID        string
	Division        string
	OfferingTeamID  string
	GameDate        string
	StartTime       string
	EndTime         string
	StartMinutes    int
	EndMinutes      int
	FieldKey        string
	ParkCode        string
	FieldCode       string
	Status          Status
	ParkName        string
	FieldName       string
	OfferingEmail   string
	GameType        string
	Notes           string
	CreatedBy       string
	ClaimedByTeamID string
	ClaimedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (s Slot) Validate() error {
	if s.LeagueID == "" {
		return fmt.Errorf("slot league id is required")
	}
	if s.Division == "" {
		return fmt.Errorf("slot division is required")
	}
	if s.OfferingTeamID == "" {
		return fmt.Errorf("slot offering team id is required")
	}
	if s.GameDate == "" {
		return fmt.Errorf("slot game date is required")
	}
	if s.FieldKey == "" {
		return fmt.Errorf("slot field key is required")
	}
	if s.StartMinutes < 0 || s.EndMinutes <= s.StartMinutes {
		return fmt.Errorf("slot time window is invalid")
	}

	return nil
}
