package field

import (
	"fmt"
	"strings"
	"time"
)

// Definition is a catalog entry for a playing field within a league.
type Definition struct {
	ID        string
	LeagueID  string
	Key       Key
	ParkName  string
	FieldName string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (d Definition) Validate() error {
	if d.LeagueID == "" {
		return fmt.Errorf("field league id is required")
	}
	if d.Key.ParkCode == "" || d.Key.FieldCode == "" {
		return fmt.Errorf("field key is required")
	}

	return nil
}

// ParseActive interprets free-form status text as an active flag: any text
// containing "inactive" deactivates, anything else activates. A blank status
// falls through to fallback under the same rule, and both blank defaults to
// active so an omitted status column does not deactivate imported records.
func ParseActive(statusText, fallbackText string) bool {
	v := strings.TrimSpace(statusText)
	if v == "" {
		v = strings.TrimSpace(fallbackText)
	}
	if v == "" {
		return true
	}

	return !strings.Contains(strings.ToLower(v), "inactive")
}
