package memory

import (
	"github.com/slotpitch/league-api/internal/domain/field"
	"github.com/slotpitch/league-api/internal/domain/membership"
	"github.com/slotpitch/league-api/internal/domain/slot"
)

const (
	LeagueIDCascade = "cascade-fall-2025"
	LeagueIDHarbor  = "harbor-spring-2026"
)

func SeedMemberships() []membership.Membership {
	return []membership.Membership{
		{UserID: "usr-diane", LeagueID: LeagueIDCascade, Role: membership.RoleAdmin},
		{UserID: "usr-marco", LeagueID: LeagueIDCascade, Role: "Manager"},
		{UserID: "usr-talia", LeagueID: LeagueIDCascade, Role: "Coach"},
		{UserID: "usr-diane", LeagueID: LeagueIDHarbor, Role: "Manager"},
		{UserID: "usr-priya", LeagueID: LeagueIDHarbor, Role: membership.RoleAdmin},
	}
}

func SeedFields() []field.Definition {
	return []field.Definition{
		{
			ID:        "fld-edgewater-1",
			LeagueID:  LeagueIDCascade,
			Key:       field.Key{ParkCode: "edgewater", FieldCode: "field-1"},
			ParkName:  "Edgewater Park",
			FieldName: "Field 1",
			Active:    true,
		},
		{
			ID:        "fld-edgewater-2",
			LeagueID:  LeagueIDCascade,
			Key:       field.Key{ParkCode: "edgewater", FieldCode: "field-2"},
			ParkName:  "Edgewater Park",
			FieldName: "Field 2",
			Active:    true,
		},
		{
			ID:        "fld-riverside-north",
			LeagueID:  LeagueIDCascade,
			Key:       field.Key{ParkCode: "riverside", FieldCode: "north-diamond"},
			ParkName:  "Riverside Park",
			FieldName: "North Diamond",
			Active:    false,
		},
		{
			ID:        "fld-bayshore-main",
			LeagueID:  LeagueIDHarbor,
			Key:       field.Key{ParkCode: "bayshore", FieldCode: "main"},
			ParkName:  "Bayshore Complex",
			FieldName: "Main",
			Active:    true,
		},
	}
}

func SeedSlots() []slot.Slot {
	return []slot.Slot{
		{
			ID:             "slot-0001",
			LeagueID:       LeagueIDCascade,
			Division:       "10U",
			OfferingTeamID: "team-hawks",
			GameDate:       "2025-09-06",
			StartTime:      "09:00",
			EndTime:        "11:00",
			StartMinutes:   540,
			EndMinutes:     660,
			FieldKey:       "edgewater/field-1",
			ParkCode:       "edgewater",
			FieldCode:      "field-1",
			Status:         slot.StatusOpen,
			ParkName:       "Edgewater Park",
			FieldName:      "Field 1",
			CreatedBy:      "diane@cascadeleague.org",
		},
		{
			ID:             "slot-0002",
			LeagueID:       LeagueIDCascade,
			Division:       "12U",
			OfferingTeamID: "team-otters",
			GameDate:       "2025-09-06",
			StartTime:      "11:30",
			EndTime:        "13:30",
			StartMinutes:   690,
			EndMinutes:     810,
			FieldKey:       "edgewater/field-1",
			ParkCode:       "edgewater",
			FieldCode:      "field-1",
			Status:         slot.StatusOpen,
			ParkName:       "Edgewater Park",
			FieldName:      "Field 1",
			CreatedBy:      "marco@cascadeleague.org",
		},
		{
			ID:              "slot-0003",
			LeagueID:        LeagueIDCascade,
			Division:        "10U",
			OfferingTeamID:  "team-hawks",
			GameDate:        "2025-09-07",
			StartTime:       "14:00",
			EndTime:         "16:00",
			StartMinutes:    840,
			EndMinutes:      960,
			FieldKey:        "edgewater/field-2",
			ParkCode:        "edgewater",
			FieldCode:       "field-2",
			Status:          slot.StatusClaimed,
			ParkName:        "Edgewater Park",
			FieldName:       "Field 2",
			CreatedBy:       "diane@cascadeleague.org",
			ClaimedByTeamID: "team-badgers",
			ClaimedBy:       "coach@badgers.example.com",
		},
	}
}
