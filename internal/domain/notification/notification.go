package notification

import (
	"fmt"
	"time"

	vo "fieldops/internal/domain/notification/valueobjects"
	"fieldops/internal/shared/biztime"
)

// Notification is an in-app message produced from ticket events for one
// recipient.
type Notification struct {
	id               uint
	userID           uint
	notificationType vo.NotificationType
	title            string
	content          string
	ticketID         *uint
	readStatus       vo.ReadStatus
	readAt           *time.Time
	createdAt        time.Time
}

func NewNotification(
	userID uint,
	notificationType vo.NotificationType,
	title string,
	content string,
	ticketID *uint,
) (*Notification, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !notificationType.IsValid() {
		return nil, fmt.Errorf("invalid notification type")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if len(content) > 2000 {
		return nil, fmt.Errorf("content exceeds maximum length of 2000 characters")
	}

	return &Notification{
		userID:           userID,
		notificationType: notificationType,
		title:            title,
		content:          content,
		ticketID:         ticketID,
		readStatus:       vo.ReadStatusUnread,
		createdAt:        biztime.NowUTC(),
	}, nil
}

type NotificationAttributes struct {
	ID               uint
	UserID           uint
	NotificationType vo.NotificationType
	Title            string
	Content          string
	TicketID         *uint
	ReadStatus       vo.ReadStatus
	ReadAt           *time.Time
	CreatedAt        time.Time
}

func ReconstructNotification(attrs NotificationAttributes) (*Notification, error) {
	if attrs.ID == 0 {
		return nil, fmt.Errorf("notification ID cannot be zero")
	}
	if !attrs.NotificationType.IsValid() {
		return nil, fmt.Errorf("invalid notification type")
	}
	if !attrs.ReadStatus.IsValid() {
		return nil, fmt.Errorf("invalid read status")
	}

	return &Notification{
		id:               attrs.ID,
		userID:           attrs.UserID,
		notificationType: attrs.NotificationType,
		title:            attrs.Title,
		content:          attrs.Content,
		ticketID:         attrs.TicketID,
		readStatus:       attrs.ReadStatus,
		readAt:           attrs.ReadAt,
		createdAt:        attrs.CreatedAt,
	}, nil
}

func (n *Notification) ID() uint                  { return n.id }
func (n *Notification) UserID() uint              { return n.userID }
func (n *Notification) Type() vo.NotificationType { return n.notificationType }
func (n *Notification) Title() string             { return n.title }
func (n *Notification) Content() string           { return n.content }
func (n *Notification) TicketID() *uint           { return n.ticketID }
func (n *Notification) ReadStatus() vo.ReadStatus { return n.readStatus }
func (n *Notification) ReadAt() *time.Time        { return n.readAt }
func (n *Notification) CreatedAt() time.Time      { return n.createdAt }

func (n *Notification) SetID(id uint) error {
	if n.id != 0 {
		return fmt.Errorf("notification ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("notification ID cannot be zero")
	}
	n.id = id
	return nil
}

// MarkAsRead is idempotent; the first read timestamp wins.
func (n *Notification) MarkAsRead() {
	if n.readStatus.IsRead() {
		return
	}
	n.readStatus = vo.ReadStatusRead
	now := biztime.NowUTC()
	n.readAt = &now
}

func (n *Notification) IsUnread() bool {
	return !n.readStatus.IsRead()
}
