package localstore

import (
	"context"
	"sort"
	"sync"

	"fieldops/internal/domain/notification"
	"fieldops/internal/shared/errors"
)

// NotificationStore keeps in-app notifications in memory for the local
// storage driver. Notifications are derived data; losing them on restart is
// acceptable offline, so they are not flushed to the JSON document.
type NotificationStore struct {
	mu            sync.RWMutex
	notifications map[uint]*notification.Notification
	nextID        uint
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{
		notifications: make(map[uint]*notification.Notification),
		nextID:        1,
	}
}

func (s *NotificationStore) Save(ctx context.Context, n *notification.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.ID() == 0 {
		if err := n.SetID(s.nextID); err != nil {
			return errors.NewInternalError("failed to assign notification ID", err.Error())
		}
	}
	if n.ID() >= s.nextID {
		s.nextID = n.ID() + 1
	}

	s.notifications[n.ID()] = n
	return nil
}

func (s *NotificationStore) Update(ctx context.Context, n *notification.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notifications[n.ID()]; !ok {
		return errors.NewNotFoundError("notification not found")
	}
	s.notifications[n.ID()] = n
	return nil
}

func (s *NotificationStore) FindByID(ctx context.Context, id uint) (*notification.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notifications[id], nil
}

func (s *NotificationStore) FindByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*notification.Notification, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*notification.Notification, 0)
	for _, n := range s.notifications {
		if n.UserID() == userID {
			matched = append(matched, n)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt().After(matched[j].CreatedAt())
	})

	total := int64(len(matched))
	start := (page - 1) * pageSize
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *NotificationStore) CountUnread(ctx context.Context, userID uint) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, n := range s.notifications {
		if n.UserID() == userID && n.IsUnread() {
			count++
		}
	}
	return count, nil
}

func (s *NotificationStore) MarkAllAsRead(ctx context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.notifications {
		if n.UserID() == userID && n.IsUnread() {
			n.MarkAsRead()
		}
	}
	return nil
}

var _ notification.NotificationRepository = (*NotificationStore)(nil)
