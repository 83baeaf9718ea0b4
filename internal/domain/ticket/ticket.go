package ticket

import (
	"fmt"
	"time"

	"fieldops/internal/domain/shared/events"
	vo "fieldops/internal/domain/ticket/valueobjects"
	"fieldops/internal/shared/authorization"
	"fieldops/internal/shared/biztime"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 5000
	maxLocationLength    = 300
)

// Ticket is the aggregate root for a unit of reported equipment work.
// Lifecycle timestamps (assignedAt, resolvedAt, verifiedAt) are append-only:
// once set they survive any later status change, including reverts.
type Ticket struct {
	id             uint
	number         string
	title          string
	description    string
	ticketType     vo.TicketType
	priority       vo.Priority
	status         vo.TicketStatus
	location       string
	latitude       *float64
	longitude      *float64
	creatorID      uint
	assigneeID     *uint
	verifierID     *uint
	equipmentID    string
	equipmentName  string
	mediaURLs      []string
	dueDate        *time.Time
	estimatedHours *float64
	actualHours    *float64
	assignedAt     *time.Time
	resolvedAt     *time.Time
	verifiedAt     *time.Time
	version        int
	createdAt      time.Time
	updatedAt      time.Time

	events []events.DomainEvent
}

func NewTicket(
	title string,
	description string,
	ticketType vo.TicketType,
	priority vo.Priority,
	location string,
	creatorID uint,
) (*Ticket, error) {
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > maxTitleLength {
		return nil, fmt.Errorf("title exceeds maximum length of %d characters", maxTitleLength)
	}
	if len(description) > maxDescriptionLength {
		return nil, fmt.Errorf("description exceeds maximum length of %d characters", maxDescriptionLength)
	}
	if len(location) == 0 {
		return nil, fmt.Errorf("location is required")
	}
	if len(location) > maxLocationLength {
		return nil, fmt.Errorf("location exceeds maximum length of %d characters", maxLocationLength)
	}
	if !ticketType.IsValid() {
		return nil, fmt.Errorf("invalid ticket type")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}

	now := biztime.NowUTC()

	return &Ticket{
		title:       title,
		description: description,
		ticketType:  ticketType,
		priority:    priority,
		status:      vo.StatusOpen,
		location:    location,
		creatorID:   creatorID,
		mediaURLs:   []string{},
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// TicketAttributes carries every persisted field for rehydrating a Ticket
// from storage. Validation mirrors NewTicket but tolerates historic data.
type TicketAttributes struct {
	ID             uint
	Number         string
	Title          string
	Description    string
	TicketType     vo.TicketType
	Priority       vo.Priority
	Status         vo.TicketStatus
	Location       string
	Latitude       *float64
	Longitude      *float64
	CreatorID      uint
	AssigneeID     *uint
	VerifierID     *uint
	EquipmentID    string
	EquipmentName  string
	MediaURLs      []string
	DueDate        *time.Time
	EstimatedHours *float64
	ActualHours    *float64
	AssignedAt     *time.Time
	ResolvedAt     *time.Time
	VerifiedAt     *time.Time
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func ReconstructTicket(attrs TicketAttributes) (*Ticket, error) {
	if attrs.ID == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if len(attrs.Title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if !attrs.TicketType.IsValid() {
		return nil, fmt.Errorf("invalid ticket type")
	}
	if !attrs.Priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !attrs.Status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}
	if attrs.CreatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}

	mediaURLs := attrs.MediaURLs
	if mediaURLs == nil {
		mediaURLs = []string{}
	}
	version := attrs.Version
	if version < 1 {
		version = 1
	}

	return &Ticket{
		id:             attrs.ID,
		number:         attrs.Number,
		title:          attrs.Title,
		description:    attrs.Description,
		ticketType:     attrs.TicketType,
		priority:       attrs.Priority,
		status:         attrs.Status,
		location:       attrs.Location,
		latitude:       attrs.Latitude,
		longitude:      attrs.Longitude,
		creatorID:      attrs.CreatorID,
		assigneeID:     attrs.AssigneeID,
		verifierID:     attrs.VerifierID,
		equipmentID:    attrs.EquipmentID,
		equipmentName:  attrs.EquipmentName,
		mediaURLs:      mediaURLs,
		dueDate:        attrs.DueDate,
		estimatedHours: attrs.EstimatedHours,
		actualHours:    attrs.ActualHours,
		assignedAt:     attrs.AssignedAt,
		resolvedAt:     attrs.ResolvedAt,
		verifiedAt:     attrs.VerifiedAt,
		version:        version,
		createdAt:      attrs.CreatedAt,
		updatedAt:      attrs.UpdatedAt,
	}, nil
}

func (t *Ticket) ID() uint                 { return t.id }
func (t *Ticket) Number() string           { return t.number }
func (t *Ticket) Title() string            { return t.title }
func (t *Ticket) Description() string      { return t.description }
func (t *Ticket) Type() vo.TicketType      { return t.ticketType }
func (t *Ticket) Priority() vo.Priority    { return t.priority }
func (t *Ticket) Status() vo.TicketStatus  { return t.status }
func (t *Ticket) Location() string         { return t.location }
func (t *Ticket) Latitude() *float64       { return t.latitude }
func (t *Ticket) Longitude() *float64      { return t.longitude }
func (t *Ticket) CreatorID() uint          { return t.creatorID }
func (t *Ticket) AssigneeID() *uint        { return t.assigneeID }
func (t *Ticket) VerifierID() *uint        { return t.verifierID }
func (t *Ticket) EquipmentID() string      { return t.equipmentID }
func (t *Ticket) EquipmentName() string    { return t.equipmentName }
func (t *Ticket) DueDate() *time.Time      { return t.dueDate }
func (t *Ticket) EstimatedHours() *float64 { return t.estimatedHours }
func (t *Ticket) ActualHours() *float64    { return t.actualHours }
func (t *Ticket) AssignedAt() *time.Time   { return t.assignedAt }
func (t *Ticket) ResolvedAt() *time.Time   { return t.resolvedAt }
func (t *Ticket) VerifiedAt() *time.Time   { return t.verifiedAt }
func (t *Ticket) Version() int             { return t.version }
func (t *Ticket) CreatedAt() time.Time     { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time     { return t.updatedAt }

func (t *Ticket) MediaURLs() []string {
	urls := make([]string, len(t.mediaURLs))
	copy(urls, t.mediaURLs)
	return urls
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Ticket) SetNumber(number string) error {
	if len(t.number) > 0 {
		return fmt.Errorf("ticket number is already set")
	}
	if len(number) == 0 {
		return fmt.Errorf("ticket number cannot be empty")
	}
	t.number = number
	return nil
}

// SetCoordinates records the optional map position for the ticket location.
func (t *Ticket) SetCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude out of range: %f", lat)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude out of range: %f", lng)
	}
	t.latitude = &lat
	t.longitude = &lng
	return nil
}

// SetEquipment links the ticket to an external equipment record.
func (t *Ticket) SetEquipment(equipmentID, equipmentName string) {
	t.equipmentID = equipmentID
	t.equipmentName = equipmentName
}

func (t *Ticket) SetDueDate(due time.Time) {
	d := due.UTC()
	t.dueDate = &d
}

func (t *Ticket) SetEstimatedHours(hours float64) error {
	if hours < 0 {
		return fmt.Errorf("estimated hours cannot be negative")
	}
	t.estimatedHours = &hours
	return nil
}

// TicketUpdate is a sparse set of field changes. Nil fields are untouched;
// ClearAssignee distinguishes "unassign" from "leave assignment alone".
type TicketUpdate struct {
	Title          *string
	Description    *string
	TicketType     *vo.TicketType
	Priority       *vo.Priority
	Status         *vo.TicketStatus
	Location       *string
	Latitude       *float64
	Longitude      *float64
	EquipmentID    *string
	EquipmentName  *string
	DueDate        *time.Time
	EstimatedHours *float64
	ActualHours    *float64
	AssigneeID     *uint
	ClearAssignee  bool
}

// ApplyUpdate merges a sparse update into the ticket, refreshes updatedAt,
// and derives lifecycle timestamps from the resulting state rather than the
// delta, so field order inside the update cannot change the outcome.
func (t *Ticket) ApplyUpdate(u TicketUpdate, updatedBy uint, policy vo.TransitionPolicy) error {
	if updatedBy == 0 {
		return fmt.Errorf("updated by user ID is required")
	}

	if u.Title != nil {
		if len(*u.Title) == 0 {
			return fmt.Errorf("title cannot be empty")
		}
		if len(*u.Title) > maxTitleLength {
			return fmt.Errorf("title exceeds maximum length of %d characters", maxTitleLength)
		}
	}
	if u.Description != nil && len(*u.Description) > maxDescriptionLength {
		return fmt.Errorf("description exceeds maximum length of %d characters", maxDescriptionLength)
	}
	if u.Location != nil && len(*u.Location) == 0 {
		return fmt.Errorf("location cannot be empty")
	}
	if u.TicketType != nil && !u.TicketType.IsValid() {
		return fmt.Errorf("invalid ticket type")
	}
	if u.Priority != nil && !u.Priority.IsValid() {
		return fmt.Errorf("invalid priority")
	}
	if u.Status != nil {
		if !u.Status.IsValid() {
			return fmt.Errorf("invalid status: %s", *u.Status)
		}
		if *u.Status != t.status && !policy.CanTransition(t.status, *u.Status) {
			return fmt.Errorf("cannot transition from %s to %s", t.status, *u.Status)
		}
	}
	if u.EstimatedHours != nil && *u.EstimatedHours < 0 {
		return fmt.Errorf("estimated hours cannot be negative")
	}
	if u.ActualHours != nil && *u.ActualHours < 0 {
		return fmt.Errorf("actual hours cannot be negative")
	}

	if u.Title != nil {
		t.title = *u.Title
	}
	if u.Description != nil {
		t.description = *u.Description
	}
	if u.TicketType != nil {
		t.ticketType = *u.TicketType
	}
	if u.Priority != nil {
		t.priority = *u.Priority
	}
	if u.Status != nil {
		t.status = *u.Status
	}
	if u.Location != nil {
		t.location = *u.Location
	}
	if u.Latitude != nil {
		t.latitude = u.Latitude
	}
	if u.Longitude != nil {
		t.longitude = u.Longitude
	}
	if u.EquipmentID != nil {
		t.equipmentID = *u.EquipmentID
	}
	if u.EquipmentName != nil {
		t.equipmentName = *u.EquipmentName
	}
	if u.DueDate != nil {
		d := u.DueDate.UTC()
		t.dueDate = &d
	}
	if u.EstimatedHours != nil {
		t.estimatedHours = u.EstimatedHours
	}
	if u.ActualHours != nil {
		t.actualHours = u.ActualHours
	}
	if u.ClearAssignee {
		t.assigneeID = nil
	} else if u.AssigneeID != nil {
		t.assigneeID = u.AssigneeID
	}

	t.touch()
	t.deriveTimestamps(updatedBy)

	return nil
}

// ChangeStatus applies a status transition under the given policy. Derived
// timestamps are set once and never cleared by later transitions.
func (t *Ticket) ChangeStatus(newStatus vo.TicketStatus, changedBy uint, policy vo.TransitionPolicy) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid status: %s", newStatus)
	}
	if changedBy == 0 {
		return fmt.Errorf("changed by user ID is required")
	}

	if t.status == newStatus {
		return nil
	}

	if !policy.CanTransition(t.status, newStatus) {
		return fmt.Errorf("cannot transition from %s to %s", t.status, newStatus)
	}

	oldStatus := t.status
	t.status = newStatus
	t.touch()
	t.deriveTimestamps(changedBy)

	t.recordEvent(NewTicketStatusChangedEvent(t.id, oldStatus.String(), newStatus.String(), changedBy, t.updatedAt))

	return nil
}

// AssignTo hands the ticket to an engineer. An open ticket moves to
// in_progress; assignedAt is stamped only on the first assignment.
func (t *Ticket) AssignTo(assigneeID uint, assignedBy uint) error {
	if assigneeID == 0 {
		return fmt.Errorf("assignee ID cannot be zero")
	}
	if assignedBy == 0 {
		return fmt.Errorf("assigned by user ID is required")
	}

	t.assigneeID = &assigneeID
	if t.status.IsOpen() {
		t.status = vo.StatusInProgress
	}
	t.touch()
	t.deriveTimestamps(assignedBy)

	t.recordEvent(NewTicketAssignedEvent(t.id, assigneeID, assignedBy, t.updatedAt))

	return nil
}

// Unassign clears the assignee and reverts the ticket to open. The original
// assignedAt timestamp is retained.
func (t *Ticket) Unassign(changedBy uint) error {
	if changedBy == 0 {
		return fmt.Errorf("changed by user ID is required")
	}

	t.assigneeID = nil
	t.status = vo.StatusOpen
	t.touch()

	t.recordEvent(NewTicketUnassignedEvent(t.id, changedBy, t.updatedAt))

	return nil
}

// AddMediaURL attaches an uploaded photo or video reference.
func (t *Ticket) AddMediaURL(url string) error {
	if len(url) == 0 {
		return fmt.Errorf("media URL cannot be empty")
	}
	t.mediaURLs = append(t.mediaURLs, url)
	t.touch()
	return nil
}

// IsOverdue reports whether the ticket's due date has passed while field
// work is still outstanding.
func (t *Ticket) IsOverdue(now time.Time) bool {
	if t.dueDate == nil {
		return false
	}
	if t.status.IsTerminalWork() {
		return false
	}
	return t.dueDate.Before(now)
}

// CanBeViewedBy applies the role-based visibility rule: admins see every
// ticket, everyone else only what they created or are assigned to.
func (t *Ticket) CanBeViewedBy(userID uint, role authorization.UserRole) bool {
	if role.CanViewAllTickets() {
		return true
	}
	if t.creatorID == userID {
		return true
	}
	if t.assigneeID != nil && *t.assigneeID == userID {
		return true
	}
	return false
}

func (t *Ticket) Validate() error {
	if len(t.title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(t.location) == 0 {
		return fmt.Errorf("location is required")
	}
	if !t.ticketType.IsValid() {
		return fmt.Errorf("invalid ticket type")
	}
	if !t.priority.IsValid() {
		return fmt.Errorf("invalid priority")
	}
	if !t.status.IsValid() {
		return fmt.Errorf("invalid status")
	}
	if t.creatorID == 0 {
		return fmt.Errorf("creator ID is required")
	}
	if t.updatedAt.Before(t.createdAt) {
		return fmt.Errorf("updated time precedes creation time")
	}
	return nil
}

// GetEvents returns the events recorded since the last clear.
func (t *Ticket) GetEvents() []events.DomainEvent {
	evts := make([]events.DomainEvent, len(t.events))
	copy(evts, t.events)
	return evts
}

// ClearEvents drops recorded events after they have been published.
func (t *Ticket) ClearEvents() {
	t.events = nil
}

func (t *Ticket) recordEvent(event events.DomainEvent) {
	t.events = append(t.events, event)
}

func (t *Ticket) touch() {
	now := biztime.NowUTC()
	// Guard the createdAt <= updatedAt invariant against clock skew.
	if now.Before(t.createdAt) {
		now = t.createdAt
	}
	t.updatedAt = now
	t.version++
}

// deriveTimestamps stamps lifecycle times from the resulting state. Each is
// set at most once; reverting the status later never clears them.
func (t *Ticket) deriveTimestamps(actorID uint) {
	now := t.updatedAt

	if t.assigneeID != nil && t.assignedAt == nil {
		t.assignedAt = &now
	}
	if t.status.IsResolved() && t.resolvedAt == nil {
		t.resolvedAt = &now
	}
	if t.status.IsVerified() && t.verifiedAt == nil {
		t.verifiedAt = &now
		t.verifierID = &actorID
	}
}
