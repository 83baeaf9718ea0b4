package ticket

import (
	"fmt"
	"time"

	"fieldops/internal/domain/shared/events"
)

const (
	EventTypeTicketCreated       = "ticket.created"
	EventTypeTicketUpdated       = "ticket.updated"
	EventTypeTicketStatusChanged = "ticket.status_changed"
	EventTypeTicketAssigned      = "ticket.assigned"
	EventTypeTicketUnassigned    = "ticket.unassigned"
	EventTypeTicketDeleted       = "ticket.deleted"
	EventTypeCommentAdded        = "ticket.comment_added"
	EventTypeMediaUploaded       = "ticket.media_uploaded"
)

// TicketCreatedEvent is emitted when a new ticket is persisted.
type TicketCreatedEvent struct {
	events.BaseEvent
	TicketID  uint   `json:"ticket_id"`
	Number    string `json:"number"`
	Title     string `json:"title"`
	Priority  string `json:"priority"`
	CreatorID uint   `json:"creator_id"`
}

func NewTicketCreatedEvent(ticketID uint, number, title, priority string, creatorID uint, occurredAt time.Time) TicketCreatedEvent {
	return TicketCreatedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: fmt.Sprintf("%d", ticketID),
			EventType:   EventTypeTicketCreated,
			OccurredAt:  occurredAt,
		},
		TicketID:  ticketID,
		Number:    number,
		Title:     title,
		Priority:  priority,
		CreatorID: creatorID,
	}
}

// TicketStatusChangedEvent is emitted on every status transition.
type TicketStatusChangedEvent struct {
	events.BaseEvent
	TicketID  uint   `json:"ticket_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	ChangedBy uint   `json:"changed_by"`
}

func NewTicketStatusChangedEvent(ticketID uint, oldStatus, newStatus string, changedBy uint, occurredAt time.Time) TicketStatusChangedEvent {
	return TicketStatusChangedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: fmt.Sprintf("%d", ticketID),
			EventType:   EventTypeTicketStatusChanged,
			OccurredAt:  occurredAt,
		},
		TicketID:  ticketID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ChangedBy: changedBy,
	}
}

// TicketAssignedEvent is emitted when a ticket gains an assignee.
type TicketAssignedEvent struct {
	events.BaseEvent
	TicketID   uint `json:"ticket_id"`
	AssigneeID uint `json:"assignee_id"`
	AssignedBy uint `json:"assigned_by"`
}

func NewTicketAssignedEvent(ticketID, assigneeID, assignedBy uint, occurredAt time.Time) TicketAssignedEvent {
	return TicketAssignedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: fmt.Sprintf("%d", ticketID),
			EventType:   EventTypeTicketAssigned,
			OccurredAt:  occurredAt,
		},
		TicketID:   ticketID,
		AssigneeID: assigneeID,
		AssignedBy: assignedBy,
	}
}

// TicketUnassignedEvent is emitted when an assignment is cleared.
type TicketUnassignedEvent struct {
	events.BaseEvent
	TicketID  uint `json:"ticket_id"`
	ChangedBy uint `json:"changed_by"`
}

func NewTicketUnassignedEvent(ticketID, changedBy uint, occurredAt time.Time) TicketUnassignedEvent {
	return TicketUnassignedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: fmt.Sprintf("%d", ticketID),
			EventType:   EventTypeTicketUnassigned,
			OccurredAt:  occurredAt,
		},
		TicketID:  ticketID,
		ChangedBy: changedBy,
	}
}

// TicketUpdatedEvent is emitted after a field-level update is persisted.
type TicketUpdatedEvent struct {
	events.BaseEvent
	TicketID  uint `json:"ticket_id"`
	UpdatedBy uint `json:"updated_by"`
}

func NewTicketUpdatedEvent(ticketID, updatedBy uint, occurredAt time.Time) TicketUpdatedEvent {
	return TicketUpdatedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: fmt.Sprintf("%d", ticketID),
			EventType:   EventTypeTicketUpdated,
			OccurredAt:  occurredAt,
		},
		TicketID:  ticketID,
		UpdatedBy: updatedBy,
	}
}

// TicketDeletedEvent is emitted after a ticket and its activities are removed.
type TicketDeletedEvent struct {
	events.BaseEvent
	TicketID  uint `json:"ticket_id"`
	DeletedBy uint `json:"deleted_by"`
}

func NewTicketDeletedEvent(ticketID, deletedBy uint, occurredAt time.Time) TicketDeletedEvent {
	return TicketDeletedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: fmt.Sprintf("%d", ticketID),
			EventType:   EventTypeTicketDeleted,
			OccurredAt:  occurredAt,
		},
		TicketID:  ticketID,
		DeletedBy: deletedBy,
	}
}

// CommentAddedEvent is emitted when a comment activity is appended.
type CommentAddedEvent struct {
	events.BaseEvent
	TicketID uint `json:"ticket_id"`
	AuthorID uint `json:"author_id"`
}

func NewCommentAddedEvent(ticketID, authorID uint, occurredAt time.Time) CommentAddedEvent {
	return CommentAddedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: fmt.Sprintf("%d", ticketID),
			EventType:   EventTypeCommentAdded,
			OccurredAt:  occurredAt,
		},
		TicketID: ticketID,
		AuthorID: authorID,
	}
}

// MediaUploadedEvent is emitted when a media reference is attached.
type MediaUploadedEvent struct {
	events.BaseEvent
	TicketID   uint   `json:"ticket_id"`
	MediaURL   string `json:"media_url"`
	UploadedBy uint   `json:"uploaded_by"`
}

func NewMediaUploadedEvent(ticketID uint, mediaURL string, uploadedBy uint, occurredAt time.Time) MediaUploadedEvent {
	return MediaUploadedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: fmt.Sprintf("%d", ticketID),
			EventType:   EventTypeMediaUploaded,
			OccurredAt:  occurredAt,
		},
		TicketID:   ticketID,
		MediaURL:   mediaURL,
		UploadedBy: uploadedBy,
	}
}
