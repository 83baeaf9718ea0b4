package seeds

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"fieldops/internal/infrastructure/persistence/models"
)

var seedEpoch = time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC).UnixMilli()

func millis(t time.Time) int64 { return t.UnixMilli() }

func millisPtr(t time.Time) *int64 {
	ms := t.UnixMilli()
	return &ms
}

func uintPtr(v uint) *uint        { return &v }
func floatPtr(v float64) *float64 { return &v }

// SeedTickets seeds a small demo dataset: one open fault, one in-progress
// inspection, one verified inspection with a full derived-timestamp trail.
func SeedTickets(db *gorm.DB) error {
	created1 := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	created2 := time.Date(2026, 1, 14, 10, 30, 0, 0, time.UTC)
	created3 := time.Date(2026, 1, 10, 14, 0, 0, 0, time.UTC)

	tickets := []models.TicketModel{
		{
			Number:         "TICK-20260115-0001",
			Title:          "Air Conditioning Unit Repair",
			Description:    "HVAC unit in Building A is not cooling properly. Temperature readings show 28C when it should be 22C.",
			Type:           "maintenance",
			Priority:       "high",
			Status:         "open",
			Location:       "Building A - Floor 2",
			CreatorID:      1,
			EquipmentID:    "HVAC-A2",
			EquipmentName:  "HVAC Unit A-2",
			DueDate:        millisPtr(time.Date(2026, 1, 17, 17, 0, 0, 0, time.UTC)),
			EstimatedHours: floatPtr(4),
			MediaURLs:      datatypes.JSON([]byte(`[]`)),
			Version:        1,
			CreatedAt:      millis(created1),
			UpdatedAt:      millis(created1),
		},
		{
			Number:         "TICK-20260114-0001",
			Title:          "Elevator Inspection",
			Description:    "Monthly safety inspection for elevator in Building B.",
			Type:           "inspection",
			Priority:       "medium",
			Status:         "in_progress",
			Location:       "Building B - Lobby",
			CreatorID:      2,
			AssigneeID:     uintPtr(3),
			EquipmentID:    "ELEV-B1",
			EquipmentName:  "Elevator B-1",
			AssignedAt:     millisPtr(time.Date(2026, 1, 14, 11, 0, 0, 0, time.UTC)),
			DueDate:        millisPtr(time.Date(2026, 1, 16, 15, 0, 0, 0, time.UTC)),
			EstimatedHours: floatPtr(2),
			ActualHours:    floatPtr(1.5),
			MediaURLs:      datatypes.JSON([]byte(`[]`)),
			Version:        2,
			CreatedAt:      millis(created2),
			UpdatedAt:      millis(time.Date(2026, 1, 15, 8, 30, 0, 0, time.UTC)),
		},
		{
			Number:         "TICK-20260110-0001",
			Title:          "Fire Safety System Check",
			Description:    "Quarterly fire safety system inspection and testing.",
			Type:           "inspection",
			Priority:       "high",
			Status:         "verified",
			Location:       "Building C - All Floors",
			CreatorID:      1,
			AssigneeID:     uintPtr(3),
			VerifierID:     uintPtr(2),
			EquipmentID:    "FIRE-C",
			EquipmentName:  "Fire Panel C",
			AssignedAt:     millisPtr(time.Date(2026, 1, 10, 14, 30, 0, 0, time.UTC)),
			ResolvedAt:     millisPtr(time.Date(2026, 1, 12, 15, 0, 0, 0, time.UTC)),
			VerifiedAt:     millisPtr(time.Date(2026, 1, 12, 16, 30, 0, 0, time.UTC)),
			DueDate:        millisPtr(time.Date(2026, 1, 15, 17, 0, 0, 0, time.UTC)),
			EstimatedHours: floatPtr(6),
			ActualHours:    floatPtr(5.5),
			MediaURLs:      datatypes.JSON([]byte(`[]`)),
			Version:        4,
			CreatedAt:      millis(created3),
			UpdatedAt:      millis(time.Date(2026, 1, 12, 16, 30, 0, 0, time.UTC)),
		},
	}

	for i := range tickets {
		var count int64
		if err := db.Model(&models.TicketModel{}).Where("number = ?", tickets[i].Number).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&tickets[i]).Error; err != nil {
			return err
		}
		if err := seedActivities(db, &tickets[i]); err != nil {
			return err
		}
	}

	return nil
}

func seedActivities(db *gorm.DB, tk *models.TicketModel) error {
	var activities []models.ActivityModel

	switch tk.Number {
	case "TICK-20260114-0001":
		activities = []models.ActivityModel{
			{
				TicketID:   tk.ID,
				Type:       "assignment",
				Content:    "Assigned to Field Engineer",
				AuthorID:   2,
				AuthorName: "Supervisor User",
				Metadata:   datatypes.JSON([]byte(`{"assignee_id":"3"}`)),
				CreatedAt:  *tk.AssignedAt,
			},
			{
				TicketID:   tk.ID,
				Type:       "comment",
				Content:    "Routine monthly inspection as per safety regulations.",
				AuthorID:   3,
				AuthorName: "Field Engineer",
				CreatedAt:  tk.UpdatedAt,
			},
		}
	case "TICK-20260110-0001":
		activities = []models.ActivityModel{
			{
				TicketID:   tk.ID,
				Type:       "status_change",
				Content:    "Status changed from in_progress to resolved",
				AuthorID:   3,
				AuthorName: "Field Engineer",
				Metadata:   datatypes.JSON([]byte(`{"old_status":"in_progress","new_status":"resolved"}`)),
				CreatedAt:  *tk.ResolvedAt,
			},
			{
				TicketID:   tk.ID,
				Type:       "status_change",
				Content:    "Status changed from resolved to verified",
				AuthorID:   2,
				AuthorName: "Supervisor User",
				Metadata:   datatypes.JSON([]byte(`{"old_status":"resolved","new_status":"verified"}`)),
				CreatedAt:  *tk.VerifiedAt,
			},
			{
				TicketID:   tk.ID,
				Type:       "comment",
				Content:    "All systems functioning properly. Minor sensor calibration performed.",
				AuthorID:   3,
				AuthorName: "Field Engineer",
				CreatedAt:  *tk.ResolvedAt,
			},
		}
	}

	for i := range activities {
		if err := db.Create(&activities[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
