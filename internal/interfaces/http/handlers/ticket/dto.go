package ticket

import (
	"time"

	"fieldops/internal/application/ticket/usecases"
	"fieldops/internal/shared/authorization"
)

type CreateTicketRequest struct {
	Title          string     `json:"title" binding:"required,min=1,max=200"`
	Description    string     `json:"description" binding:"max=5000"`
	Type           string     `json:"type" binding:"required,oneof=fault maintenance inspection upgrade"`
	Priority       string     `json:"priority" binding:"required,oneof=low medium high critical"`
	Location       string     `json:"location" binding:"required,min=1,max=200"`
	Latitude       *float64   `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude      *float64   `json:"longitude" binding:"omitempty,min=-180,max=180"`
	EquipmentID    string     `json:"equipment_id" binding:"max=100"`
	EquipmentName  string     `json:"equipment_name" binding:"max=200"`
	DueDate        *time.Time `json:"due_date"`
	EstimatedHours *float64   `json:"estimated_hours" binding:"omitempty,min=0"`
}

func (r *CreateTicketRequest) ToCommand(creatorID uint, creatorName string) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Title:          r.Title,
		Description:    r.Description,
		Type:           r.Type,
		Priority:       r.Priority,
		Location:       r.Location,
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
		EquipmentID:    r.EquipmentID,
		EquipmentName:  r.EquipmentName,
		DueDate:        r.DueDate,
		EstimatedHours: r.EstimatedHours,
		CreatorID:      creatorID,
		CreatorName:    creatorName,
	}
}

// UpdateTicketRequest carries a partial update. Nil fields are left untouched;
// ClearAssignee distinguishes "unassign" from "don't change the assignee".
type UpdateTicketRequest struct {
	Title          *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description    *string    `json:"description" binding:"omitempty,max=5000"`
	Type           *string    `json:"type" binding:"omitempty,oneof=fault maintenance inspection upgrade"`
	Priority       *string    `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	Status         *string    `json:"status" binding:"omitempty,oneof=open in_progress resolved verified closed"`
	Location       *string    `json:"location" binding:"omitempty,min=1,max=200"`
	Latitude       *float64   `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude      *float64   `json:"longitude" binding:"omitempty,min=-180,max=180"`
	EquipmentID    *string    `json:"equipment_id" binding:"omitempty,max=100"`
	EquipmentName  *string    `json:"equipment_name" binding:"omitempty,max=200"`
	DueDate        *time.Time `json:"due_date"`
	EstimatedHours *float64   `json:"estimated_hours" binding:"omitempty,min=0"`
	ActualHours    *float64   `json:"actual_hours" binding:"omitempty,min=0"`
	AssigneeID     *uint      `json:"assignee_id"`
	ClearAssignee  bool       `json:"clear_assignee"`
}

func (r *UpdateTicketRequest) ToCommand(ticketID, updatedBy uint, updatedByName string, role authorization.UserRole) usecases.UpdateTicketCommand {
	return usecases.UpdateTicketCommand{
		TicketID:       ticketID,
		Title:          r.Title,
		Description:    r.Description,
		Type:           r.Type,
		Priority:       r.Priority,
		Status:         r.Status,
		Location:       r.Location,
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
		EquipmentID:    r.EquipmentID,
		EquipmentName:  r.EquipmentName,
		DueDate:        r.DueDate,
		EstimatedHours: r.EstimatedHours,
		ActualHours:    r.ActualHours,
		AssigneeID:     r.AssigneeID,
		ClearAssignee:  r.ClearAssignee,
		UpdatedBy:      updatedBy,
		UpdatedByName:  updatedByName,
		Role:           role,
	}
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=open in_progress resolved verified closed"`
}

func (r *ChangeStatusRequest) ToCommand(ticketID, changedBy uint, changedByName string, role authorization.UserRole) usecases.ChangeStatusCommand {
	return usecases.ChangeStatusCommand{
		TicketID:      ticketID,
		NewStatus:     r.Status,
		ChangedBy:     changedBy,
		ChangedByName: changedByName,
		Role:          role,
	}
}

// AssignTicketRequest with a nil assignee_id unassigns the ticket.
type AssignTicketRequest struct {
	AssigneeID *uint `json:"assignee_id"`
}

func (r *AssignTicketRequest) ToCommand(ticketID, assignedBy uint, assignedByName string, role authorization.UserRole) usecases.AssignTicketCommand {
	return usecases.AssignTicketCommand{
		TicketID:       ticketID,
		AssigneeID:     r.AssigneeID,
		AssignedBy:     assignedBy,
		AssignedByName: assignedByName,
		Role:           role,
	}
}

type AddCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

func (r *AddCommentRequest) ToCommand(ticketID, authorID uint, authorName string, role authorization.UserRole) usecases.AddCommentCommand {
	return usecases.AddCommentCommand{
		TicketID:   ticketID,
		Content:    r.Content,
		AuthorID:   authorID,
		AuthorName: authorName,
		Role:       role,
	}
}

type AddMediaRequest struct {
	MediaURL string `json:"media_url" binding:"required,url,max=500"`
}

func (r *AddMediaRequest) ToCommand(ticketID, uploadedBy uint, uploadedByName string, role authorization.UserRole) usecases.AddMediaCommand {
	return usecases.AddMediaCommand{
		TicketID:       ticketID,
		MediaURL:       r.MediaURL,
		UploadedBy:     uploadedBy,
		UploadedByName: uploadedByName,
		Role:           role,
	}
}

type ListTicketsRequest struct {
	Status     string `form:"status" binding:"omitempty,oneof=open in_progress resolved verified closed"`
	Priority   string `form:"priority" binding:"omitempty,oneof=low medium high critical"`
	Type       string `form:"type" binding:"omitempty,oneof=fault maintenance inspection upgrade"`
	AssigneeID *uint  `form:"assignee_id"`
	Search     string `form:"search" binding:"max=200"`
	Overdue    bool   `form:"overdue"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	SortBy     string `form:"sort_by" binding:"omitempty,oneof=created updated priority"`
}

func (r *ListTicketsRequest) ToQuery(userID uint, role authorization.UserRole) usecases.ListTicketsQuery {
	return usecases.ListTicketsQuery{
		UserID:     userID,
		Role:       role,
		Status:     r.Status,
		Priority:   r.Priority,
		Type:       r.Type,
		AssigneeID: r.AssigneeID,
		Search:     r.Search,
		Overdue:    r.Overdue,
		Page:       r.Page,
		PageSize:   r.PageSize,
		SortBy:     r.SortBy,
	}
}
