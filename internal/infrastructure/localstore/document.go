package localstore

import (
	"time"

	"fieldops/internal/domain/ticket"
	vo "fieldops/internal/domain/ticket/valueobjects"
)

// document is the on-disk shape. Timestamps are RFC3339 via time.Time's
// default JSON encoding so the file stays hand-inspectable.
type document struct {
	Tickets    []ticketDocument   `json:"tickets"`
	Activities []activityDocument `json:"activities"`
}

type ticketDocument struct {
	ID             uint       `json:"id"`
	Number         string     `json:"number"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Type           string     `json:"type"`
	Priority       string     `json:"priority"`
	Status         string     `json:"status"`
	Location       string     `json:"location"`
	Latitude       *float64   `json:"latitude,omitempty"`
	Longitude      *float64   `json:"longitude,omitempty"`
	CreatorID      uint       `json:"creator_id"`
	AssigneeID     *uint      `json:"assignee_id,omitempty"`
	VerifierID     *uint      `json:"verifier_id,omitempty"`
	EquipmentID    string     `json:"equipment_id,omitempty"`
	EquipmentName  string     `json:"equipment_name,omitempty"`
	MediaURLs      []string   `json:"media_urls,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
	ActualHours    *float64   `json:"actual_hours,omitempty"`
	AssignedAt     *time.Time `json:"assigned_at,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	VerifiedAt     *time.Time `json:"verified_at,omitempty"`
	Version        int        `json:"version"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type activityDocument struct {
	ID         uint              `json:"id"`
	TicketID   uint              `json:"ticket_id"`
	Type       string            `json:"type"`
	Content    string            `json:"content,omitempty"`
	AuthorID   uint              `json:"author_id"`
	AuthorName string            `json:"author_name,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

func newTicketDocument(tk *ticket.Ticket) ticketDocument {
	return ticketDocument{
		ID:             tk.ID(),
		Number:         tk.Number(),
		Title:          tk.Title(),
		Description:    tk.Description(),
		Type:           tk.Type().String(),
		Priority:       tk.Priority().String(),
		Status:         tk.Status().String(),
		Location:       tk.Location(),
		Latitude:       tk.Latitude(),
		Longitude:      tk.Longitude(),
		CreatorID:      tk.CreatorID(),
		AssigneeID:     tk.AssigneeID(),
		VerifierID:     tk.VerifierID(),
		EquipmentID:    tk.EquipmentID(),
		EquipmentName:  tk.EquipmentName(),
		MediaURLs:      tk.MediaURLs(),
		DueDate:        tk.DueDate(),
		EstimatedHours: tk.EstimatedHours(),
		ActualHours:    tk.ActualHours(),
		AssignedAt:     tk.AssignedAt(),
		ResolvedAt:     tk.ResolvedAt(),
		VerifiedAt:     tk.VerifiedAt(),
		Version:        tk.Version(),
		CreatedAt:      tk.CreatedAt(),
		UpdatedAt:      tk.UpdatedAt(),
	}
}

func (d *ticketDocument) toDomain() (*ticket.Ticket, error) {
	return ticket.ReconstructTicket(ticket.TicketAttributes{
		ID:             d.ID,
		Number:         d.Number,
		Title:          d.Title,
		Description:    d.Description,
		TicketType:     vo.TicketType(d.Type),
		Priority:       vo.Priority(d.Priority),
		Status:         vo.TicketStatus(d.Status),
		Location:       d.Location,
		Latitude:       d.Latitude,
		Longitude:      d.Longitude,
		CreatorID:      d.CreatorID,
		AssigneeID:     d.AssigneeID,
		VerifierID:     d.VerifierID,
		EquipmentID:    d.EquipmentID,
		EquipmentName:  d.EquipmentName,
		MediaURLs:      d.MediaURLs,
		DueDate:        d.DueDate,
		EstimatedHours: d.EstimatedHours,
		ActualHours:    d.ActualHours,
		AssignedAt:     d.AssignedAt,
		ResolvedAt:     d.ResolvedAt,
		VerifiedAt:     d.VerifiedAt,
		Version:        d.Version,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	})
}

func newActivityDocument(a *ticket.Activity) activityDocument {
	return activityDocument{
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

func (d *activityDocument) toDomain() (*ticket.Activity, error) {
	return ticket.ReconstructActivity(ticket.ActivityAttributes{
		ID:           d.ID,
		TicketID:     d.TicketID,
		ActivityType: vo.ActivityType(d.Type),
		Content:      d.Content,
		AuthorID:     d.AuthorID,
		AuthorName:   d.AuthorName,
		Metadata:     d.Metadata,
		CreatedAt:    d.CreatedAt,
	})
}
