package seeds

import (
	"time"

	"fieldops/internal/domain/ticket"
	vo "fieldops/internal/domain/ticket/valueobjects"
	"fieldops/internal/domain/user"
	"fieldops/internal/shared/authorization"
)

// Fixture is the demo dataset as domain objects, for stores that do not go
// through gorm (the local JSON store takes it as its injected seeder).
type Fixture struct{}

func NewFixture() *Fixture {
	return &Fixture{}
}

func (f *Fixture) Seed() ([]*ticket.Ticket, []*ticket.Activity, error) {
	created1 := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	created2 := time.Date(2026, 1, 14, 10, 30, 0, 0, time.UTC)
	created3 := time.Date(2026, 1, 10, 14, 0, 0, 0, time.UTC)

	assigned2 := time.Date(2026, 1, 14, 11, 0, 0, 0, time.UTC)
	assigned3 := time.Date(2026, 1, 10, 14, 30, 0, 0, time.UTC)
	resolved3 := time.Date(2026, 1, 12, 15, 0, 0, 0, time.UTC)
	verified3 := time.Date(2026, 1, 12, 16, 30, 0, 0, time.UTC)

	attrs := []ticket.TicketAttributes{
		{
			ID:             1,
			Number:         "TICK-20260115-0001",
			Title:          "Air Conditioning Unit Repair",
			Description:    "HVAC unit in Building A is not cooling properly. Temperature readings show 28C when it should be 22C.",
			TicketType:     vo.TypeMaintenance,
			Priority:       vo.PriorityHigh,
			Status:         vo.StatusOpen,
			Location:       "Building A - Floor 2",
			CreatorID:      1,
			EquipmentID:    "HVAC-A2",
			EquipmentName:  "HVAC Unit A-2",
			DueDate:        timePtr(time.Date(2026, 1, 17, 17, 0, 0, 0, time.UTC)),
			EstimatedHours: floatPtr(4),
			Version:        1,
			CreatedAt:      created1,
			UpdatedAt:      created1,
		},
		{
			ID:             2,
			Number:         "TICK-20260114-0001",
			Title:          "Elevator Inspection",
			Description:    "Monthly safety inspection for elevator in Building B.",
			TicketType:     vo.TypeInspection,
			Priority:       vo.PriorityMedium,
			Status:         vo.StatusInProgress,
			Location:       "Building B - Lobby",
			CreatorID:      2,
			AssigneeID:     uintPtr(3),
			EquipmentID:    "ELEV-B1",
			EquipmentName:  "Elevator B-1",
			AssignedAt:     &assigned2,
			DueDate:        timePtr(time.Date(2026, 1, 16, 15, 0, 0, 0, time.UTC)),
			EstimatedHours: floatPtr(2),
			ActualHours:    floatPtr(1.5),
			Version:        2,
			CreatedAt:      created2,
			UpdatedAt:      time.Date(2026, 1, 15, 8, 30, 0, 0, time.UTC),
		},
		{
			ID:             3,
			Number:         "TICK-20260110-0001",
			Title:          "Fire Safety System Check",
			Description:    "Quarterly fire safety system inspection and testing.",
			TicketType:     vo.TypeInspection,
			Priority:       vo.PriorityHigh,
			Status:         vo.StatusVerified,
			Location:       "Building C - All Floors",
			CreatorID:      1,
			AssigneeID:     uintPtr(3),
			VerifierID:     uintPtr(2),
			EquipmentID:    "FIRE-C",
			EquipmentName:  "Fire Panel C",
			AssignedAt:     &assigned3,
			ResolvedAt:     &resolved3,
			VerifiedAt:     &verified3,
			DueDate:        timePtr(time.Date(2026, 1, 15, 17, 0, 0, 0, time.UTC)),
			EstimatedHours: floatPtr(6),
			ActualHours:    floatPtr(5.5),
			Version:        4,
			CreatedAt:      created3,
			UpdatedAt:      verified3,
		},
	}

	tickets := make([]*ticket.Ticket, 0, len(attrs))
	for _, a := range attrs {
		tk, err := ticket.ReconstructTicket(a)
		if err != nil {
			return nil, nil, err
		}
		tickets = append(tickets, tk)
	}

	activityAttrs := []ticket.ActivityAttributes{
		{
			ID:           1,
			TicketID:     2,
			ActivityType: vo.ActivityAssignment,
			Content:      "Assigned to Field Engineer",
			AuthorID:     2,
			AuthorName:   "Supervisor User",
			Metadata:     map[string]string{"assignee_id": "3"},
			CreatedAt:    assigned2,
		},
		{
			ID:           2,
			TicketID:     3,
			ActivityType: vo.ActivityStatusChange,
			Content:      "Status changed from in_progress to resolved",
			AuthorID:     3,
			AuthorName:   "Field Engineer",
			Metadata:     map[string]string{"old_status": "in_progress", "new_status": "resolved"},
			CreatedAt:    resolved3,
		},
		{
			ID:           3,
			TicketID:     3,
			ActivityType: vo.ActivityStatusChange,
			Content:      "Status changed from resolved to verified",
			AuthorID:     2,
			AuthorName:   "Supervisor User",
			Metadata:     map[string]string{"old_status": "resolved", "new_status": "verified"},
			CreatedAt:    verified3,
		},
		{
			ID:           4,
			TicketID:     3,
			ActivityType: vo.ActivityComment,
			Content:      "All systems functioning properly. Minor sensor calibration performed.",
			AuthorID:     3,
			AuthorName:   "Field Engineer",
			CreatedAt:    resolved3,
		},
	}

	activities := make([]*ticket.Activity, 0, len(activityAttrs))
	for _, a := range activityAttrs {
		act, err := ticket.ReconstructActivity(a)
		if err != nil {
			return nil, nil, err
		}
		activities = append(activities, act)
	}

	return tickets, activities, nil
}

// Profiles returns the demo accounts as domain objects, mirroring
// SeedProfiles for stores that do not go through gorm.
func (f *Fixture) Profiles() ([]*user.Profile, error) {
	epoch := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

	attrs := []user.ProfileAttributes{
		{
			ID:        1,
			Email:     "admin@fieldops.test",
			Name:      "Admin User",
			Role:      authorization.RoleAdmin,
			Phone:     "+1-555-0100",
			Active:    true,
			CreatedAt: epoch,
			UpdatedAt: epoch,
		},
		{
			ID:        2,
			Email:     "supervisor@fieldops.test",
			Name:      "Supervisor User",
			Role:      authorization.RoleSupervisor,
			Phone:     "+1-555-0101",
			Active:    true,
			CreatedAt: epoch,
			UpdatedAt: epoch,
		},
		{
			ID:        3,
			Email:     "engineer@fieldops.test",
			Name:      "Field Engineer",
			Role:      authorization.RoleFieldEngineer,
			Phone:     "+1-555-0102",
			Active:    true,
			CreatedAt: epoch,
			UpdatedAt: epoch,
		},
		{
			ID:        4,
			Email:     "engineer2@fieldops.test",
			Name:      "Second Engineer",
			Role:      authorization.RoleFieldEngineer,
			Active:    true,
			CreatedAt: epoch,
			UpdatedAt: epoch,
		},
	}

	profiles := make([]*user.Profile, 0, len(attrs))
	for _, a := range attrs {
		p, err := user.ReconstructProfile(a)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func timePtr(t time.Time) *time.Time { return &t }
