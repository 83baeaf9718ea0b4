package ticket

import (
	"fmt"
	"time"

	vo "fieldops/internal/domain/ticket/valueobjects"
	"fieldops/internal/shared/biztime"
)

const maxActivityContentLength = 2000

// Activity is one append-only audit-trail entry on a ticket. Activities are
// never edited or removed; corrections are made by appending new entries.
type Activity struct {
	id           uint
	ticketID     uint
	activityType vo.ActivityType
	content      string
	authorID     uint
	authorName   string
	metadata     map[string]string
	createdAt    time.Time
}

func newActivity(ticketID uint, activityType vo.ActivityType, content string, authorID uint, authorName string) (*Activity, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !activityType.IsValid() {
		return nil, fmt.Errorf("invalid activity type")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	if len(content) > maxActivityContentLength {
		return nil, fmt.Errorf("content exceeds maximum length of %d characters", maxActivityContentLength)
	}

	return &Activity{
		ticketID:     ticketID,
		activityType: activityType,
		content:      content,
		authorID:     authorID,
		authorName:   authorName,
		createdAt:    biztime.NowUTC(),
	}, nil
}

// NewComment creates a comment activity. Content must be non-empty.
func NewComment(ticketID uint, content string, authorID uint, authorName string) (*Activity, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("comment content cannot be empty")
	}
	return newActivity(ticketID, vo.ActivityComment, content, authorID, authorName)
}

// NewStatusChangeActivity records a status transition in the audit trail.
func NewStatusChangeActivity(ticketID uint, oldStatus, newStatus vo.TicketStatus, authorID uint, authorName string) (*Activity, error) {
	content := fmt.Sprintf("Status changed from %s to %s", oldStatus, newStatus)
	a, err := newActivity(ticketID, vo.ActivityStatusChange, content, authorID, authorName)
	if err != nil {
		return nil, err
	}
	a.metadata = map[string]string{
		"old_status": oldStatus.String(),
		"new_status": newStatus.String(),
	}
	return a, nil
}

// NewAssignmentActivity records an assignment change. A nil assignee means
// the ticket was unassigned.
func NewAssignmentActivity(ticketID uint, assigneeID *uint, assigneeName string, authorID uint, authorName string) (*Activity, error) {
	var content string
	metadata := map[string]string{}
	if assigneeID == nil {
		content = "Ticket unassigned"
	} else {
		content = fmt.Sprintf("Assigned to %s", assigneeName)
		metadata["assignee_id"] = fmt.Sprintf("%d", *assigneeID)
	}
	a, err := newActivity(ticketID, vo.ActivityAssignment, content, authorID, authorName)
	if err != nil {
		return nil, err
	}
	a.metadata = metadata
	return a, nil
}

// NewMediaUploadActivity records an uploaded photo or video reference.
func NewMediaUploadActivity(ticketID uint, mediaURL string, authorID uint, authorName string) (*Activity, error) {
	if len(mediaURL) == 0 {
		return nil, fmt.Errorf("media URL cannot be empty")
	}
	a, err := newActivity(ticketID, vo.ActivityMediaUpload, "Media uploaded", authorID, authorName)
	if err != nil {
		return nil, err
	}
	a.metadata = map[string]string{"media_url": mediaURL}
	return a, nil
}

// ActivityAttributes rehydrates a persisted activity.
type ActivityAttributes struct {
	ID           uint
	TicketID     uint
	ActivityType vo.ActivityType
	Content      string
	AuthorID     uint
	AuthorName   string
	Metadata     map[string]string
	CreatedAt    time.Time
}

func ReconstructActivity(attrs ActivityAttributes) (*Activity, error) {
	if attrs.ID == 0 {
		return nil, fmt.Errorf("activity ID cannot be zero")
	}
	if attrs.TicketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !attrs.ActivityType.IsValid() {
		return nil, fmt.Errorf("invalid activity type")
	}

	return &Activity{
		id:           attrs.ID,
		ticketID:     attrs.TicketID,
		activityType: attrs.ActivityType,
		content:      attrs.Content,
		authorID:     attrs.AuthorID,
		authorName:   attrs.AuthorName,
		metadata:     attrs.Metadata,
		createdAt:    attrs.CreatedAt,
	}, nil
}

func (a *Activity) ID() uint              { return a.id }
func (a *Activity) TicketID() uint        { return a.ticketID }
func (a *Activity) Type() vo.ActivityType { return a.activityType }
func (a *Activity) Content() string       { return a.content }
func (a *Activity) AuthorID() uint        { return a.authorID }
func (a *Activity) AuthorName() string    { return a.authorName }
func (a *Activity) CreatedAt() time.Time  { return a.createdAt }

func (a *Activity) Metadata() map[string]string {
	if a.metadata == nil {
		return nil
	}
	m := make(map[string]string, len(a.metadata))
	for k, v := range a.metadata {
		m[k] = v
	}
	return m
}

func (a *Activity) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("activity ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("activity ID cannot be zero")
	}
	a.id = id
	return nil
}

func (a *Activity) IsComment() bool {
	return a.activityType == vo.ActivityComment
}
