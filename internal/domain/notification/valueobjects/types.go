package valueobjects

import "fmt"

// NotificationType identifies what ticket event produced the notification.
type NotificationType string

const (
	TypeTicketAssigned      NotificationType = "ticket_assigned"
	TypeTicketStatusChanged NotificationType = "ticket_status_changed"
	TypeTicketCommented     NotificationType = "ticket_commented"
	TypeTicketCritical      NotificationType = "ticket_critical"
)

var validNotificationTypes = map[NotificationType]bool{
	TypeTicketAssigned:      true,
	TypeTicketStatusChanged: true,
	TypeTicketCommented:     true,
	TypeTicketCritical:      true,
}

func (n NotificationType) String() string {
	return string(n)
}

func (n NotificationType) IsValid() bool {
	return validNotificationTypes[n]
}

func NewNotificationType(s string) (NotificationType, error) {
	n := NotificationType(s)
	if !n.IsValid() {
		return "", fmt.Errorf("invalid notification type: %s", s)
	}
	return n, nil
}

// ReadStatus tracks whether the recipient has seen the notification.
type ReadStatus string

const (
	ReadStatusUnread ReadStatus = "unread"
	ReadStatusRead   ReadStatus = "read"
)

func (r ReadStatus) String() string {
	return string(r)
}

func (r ReadStatus) IsValid() bool {
	return r == ReadStatusUnread || r == ReadStatusRead
}

func (r ReadStatus) IsRead() bool {
	return r == ReadStatusRead
}
