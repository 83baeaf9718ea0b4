package dto

import (
	"time"

	"fieldops/internal/domain/ticket"
	"fieldops/internal/domain/user"
	"fieldops/internal/shared/biztime"
)

type TicketDTO struct {
	ID             uint          `json:"id"`
	Number         string        `json:"number"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Type           string        `json:"type"`
	Priority       string        `json:"priority"`
	Status         string        `json:"status"`
	Location       string        `json:"location"`
	Latitude       *float64      `json:"latitude,omitempty"`
	Longitude      *float64      `json:"longitude,omitempty"`
	CreatorID      uint          `json:"creator_id"`
	CreatorName    string        `json:"creator_name,omitempty"`
	AssigneeID     *uint         `json:"assignee_id"`
	AssigneeName   string        `json:"assignee_name,omitempty"`
	VerifierID     *uint         `json:"verifier_id"`
	EquipmentID    string        `json:"equipment_id,omitempty"`
	EquipmentName  string        `json:"equipment_name,omitempty"`
	MediaURLs      []string      `json:"media_urls"`
	DueDate        *time.Time    `json:"due_date"`
	EstimatedHours *float64      `json:"estimated_hours"`
	ActualHours    *float64      `json:"actual_hours"`
	AssignedAt     *time.Time    `json:"assigned_at"`
	ResolvedAt     *time.Time    `json:"resolved_at"`
	VerifiedAt     *time.Time    `json:"verified_at"`
	IsOverdue      bool          `json:"is_overdue"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	Activities     []ActivityDTO `json:"activities,omitempty"`
}

type ActivityDTO struct {
	ID         uint              `json:"id"`
	TicketID   uint              `json:"ticket_id"`
	Type       string            `json:"type"`
	Content    string            `json:"content"`
	AuthorID   uint              `json:"author_id"`
	AuthorName string            `json:"author_name"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

type TicketListItemDTO struct {
	ID           uint       `json:"id"`
	Number       string     `json:"number"`
	Title        string     `json:"title"`
	Type         string     `json:"type"`
	Priority     string     `json:"priority"`
	Status       string     `json:"status"`
	Location     string     `json:"location"`
	CreatorID    uint       `json:"creator_id"`
	AssigneeID   *uint      `json:"assignee_id"`
	AssigneeName string     `json:"assignee_name,omitempty"`
	DueDate      *time.Time `json:"due_date"`
	IsOverdue    bool       `json:"is_overdue"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type ProfileDTO struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Phone     string `json:"phone,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Active    bool   `json:"active"`
}

func ToTicketDTO(t *ticket.Ticket, activities []*ticket.Activity) *TicketDTO {
	if t == nil {
		return nil
	}

	activityDTOs := make([]ActivityDTO, 0, len(activities))
	for _, a := range ticket.SortedActivities(activities) {
		activityDTOs = append(activityDTOs, ToActivityDTO(a))
	}

	return &TicketDTO{
		ID:             t.ID(),
		Number:         t.Number(),
		Title:          t.Title(),
		Description:    t.Description(),
		Type:           t.Type().String(),
		Priority:       t.Priority().String(),
		Status:         t.Status().String(),
		Location:       t.Location(),
		Latitude:       t.Latitude(),
		Longitude:      t.Longitude(),
		CreatorID:      t.CreatorID(),
		AssigneeID:     t.AssigneeID(),
		VerifierID:     t.VerifierID(),
		EquipmentID:    t.EquipmentID(),
		EquipmentName:  t.EquipmentName(),
		MediaURLs:      t.MediaURLs(),
		DueDate:        t.DueDate(),
		EstimatedHours: t.EstimatedHours(),
		ActualHours:    t.ActualHours(),
		AssignedAt:     t.AssignedAt(),
		ResolvedAt:     t.ResolvedAt(),
		VerifiedAt:     t.VerifiedAt(),
		IsOverdue:      t.IsOverdue(biztime.NowUTC()),
		CreatedAt:      t.CreatedAt(),
		UpdatedAt:      t.UpdatedAt(),
		Activities:     activityDTOs,
	}
}

func ToActivityDTO(a *ticket.Activity) ActivityDTO {
	return ActivityDTO{
		ID:         a.ID(),
		TicketID:   a.TicketID(),
		Type:       a.Type().String(),
		Content:    a.Content(),
		AuthorID:   a.AuthorID(),
		AuthorName: a.AuthorName(),
		Metadata:   a.Metadata(),
		CreatedAt:  a.CreatedAt(),
	}
}

func ToTicketListItemDTO(t *ticket.Ticket) TicketListItemDTO {
	return TicketListItemDTO{
		ID:         t.ID(),
		Number:     t.Number(),
		Title:      t.Title(),
		Type:       t.Type().String(),
		Priority:   t.Priority().String(),
		Status:     t.Status().String(),
		Location:   t.Location(),
		CreatorID:  t.CreatorID(),
		AssigneeID: t.AssigneeID(),
		DueDate:    t.DueDate(),
		IsOverdue:  t.IsOverdue(biztime.NowUTC()),
		CreatedAt:  t.CreatedAt(),
		UpdatedAt:  t.UpdatedAt(),
	}
}

func ToProfileDTO(p *user.Profile) *ProfileDTO {
	if p == nil {
		return nil
	}
	return &ProfileDTO{
		ID:        p.ID(),
		Email:     p.Email(),
		Name:      p.Name(),
		Role:      p.Role().String(),
		Phone:     p.Phone(),
		AvatarURL: p.AvatarURL(),
		Active:    p.IsActive(),
	}
}
