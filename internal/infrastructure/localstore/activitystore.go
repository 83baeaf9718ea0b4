package localstore

import (
	"context"

	"fieldops/internal/domain/ticket"
	"fieldops/internal/shared/errors"
)

// ActivityStore exposes the activity half of the shared document. It satisfies
// ticket.ActivityRepository.
type ActivityStore struct {
	store *Store
}

// Activities returns a view over the same document, so ticket and activity
// writes share one flush.
func (s *Store) Activities() *ActivityStore {
	return &ActivityStore{store: s}
}

func (a *ActivityStore) Save(ctx context.Context, activity *ticket.Activity) error {
	s := a.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if activity.ID() == 0 {
		if err := activity.SetID(s.nextActivityID); err != nil {
			return errors.NewPersistenceError("failed to assign activity id", err)
		}
	}
	if activity.ID() >= s.nextActivityID {
		s.nextActivityID = activity.ID() + 1
	}

	s.activities[activity.ID()] = activity
	return s.flushLocked()
}

func (a *ActivityStore) FindByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Activity, error) {
	s := a.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*ticket.Activity, 0)
	for _, act := range s.activities {
		if act.TicketID() == ticketID {
			matched = append(matched, act)
		}
	}
	return ticket.SortedActivities(matched), nil
}

func (a *ActivityStore) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	s := a.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, act := range s.activities {
		if act.TicketID() == ticketID {
			delete(s.activities, id)
		}
	}
	return s.flushLocked()
}
