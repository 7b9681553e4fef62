package membership

import (
	"fmt"
	"strings"
	"time"
)

// RoleAdmin is the only role with special meaning; comparisons against it are
// case-insensitive. Everything else is free-form text.
const RoleAdmin = "Admin"

// Membership grants a user access to a league's data under a role.
type Membership struct {
	UserID    string
	LeagueID  string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin reports whether the membership role is Admin, ignoring case.
func (m Membership) IsAdmin() bool {
	return strings.EqualFold(strings.TrimSpace(m.Role), RoleAdmin)
}

func (m Membership) Validate() error {
	if strings.TrimSpace(m.UserID) == "" {
		return fmt.Errorf("membership user id is required")
	}
	if strings.TrimSpace(m.LeagueID) == "" {
		return fmt.Errorf("membership league id is required")
	}

	return nil
}
