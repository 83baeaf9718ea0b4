package models

import "gorm.io/datatypes"

type TicketModel struct {
	ID             uint   `gorm:"primaryKey"`
	Number         string `gorm:"uniqueIndex;size:50;not null"`
	Title          string `gorm:"size:200;not null"`
	Description    string `gorm:"type:text"`
	Type           string `gorm:"size:20;not null;index"`
	Priority       string `gorm:"size:20;not null;index"`
	Status         string `gorm:"size:20;not null;index"`
	Location       string `gorm:"size:300;not null"`
	Latitude       *float64
	Longitude      *float64
	CreatorID      uint  `gorm:"not null;index"`
	AssigneeID     *uint `gorm:"index"`
	VerifierID     *uint
	EquipmentID    string         `gorm:"size:100;index"`
	EquipmentName  string         `gorm:"size:200"`
	MediaURLs      datatypes.JSON `gorm:"column:media_urls"`
	DueDate        *int64         `gorm:"index"`
	EstimatedHours *float64
	ActualHours    *float64
	AssignedAt     *int64
	ResolvedAt     *int64
	VerifiedAt     *int64
	Version        int   `gorm:"not null;default:1"`
	CreatedAt      int64 `gorm:"not null;index"`
	UpdatedAt      int64 `gorm:"not null"`

	// No foreign key constraints or associations; relationships are managed
	// by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}

type ActivityModel struct {
	ID         uint           `gorm:"primaryKey"`
	TicketID   uint           `gorm:"not null;index"`
	Type       string         `gorm:"size:20;not null;index"`
	Content    string         `gorm:"type:text"`
	AuthorID   uint           `gorm:"not null;index"`
	AuthorName string         `gorm:"size:100"`
	Metadata   datatypes.JSON `gorm:"column:metadata"`
	CreatedAt  int64          `gorm:"not null;index"`
}

func (ActivityModel) TableName() string {
	return "ticket_activities"
}
