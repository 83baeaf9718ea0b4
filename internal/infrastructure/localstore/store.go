// Package localstore is the offline-first persistence variant: the whole
// ticket dataset lives in a single JSON document on local disk. It implements
// the same repository interfaces as the gorm-backed store, so use cases do not
// know which one they run against.
package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fieldops/internal/domain/ticket"
	vo "fieldops/internal/domain/ticket/valueobjects"
	"fieldops/internal/shared/errors"
	"fieldops/internal/shared/logger"
)

// Seeder supplies the fixture dataset used when no document exists yet. It is
// injected rather than hardcoded so tests and demo builds can ship their own
// data.
type Seeder interface {
	Seed() ([]*ticket.Ticket, []*ticket.Activity, error)
}

// Store holds the full dataset in memory and flushes it to disk after every
// mutation. Reads never touch the file.
type Store struct {
	mu   sync.RWMutex
	path string
	log  logger.Interface

	tickets    map[uint]*ticket.Ticket
	activities map[uint]*ticket.Activity

	nextTicketID   uint
	nextActivityID uint
}

// NewStore loads the document at path. A missing document is populated from
// the seeder; a corrupt one is a LoadError so the caller can decide whether to
// keep a previous snapshot.
func NewStore(path string, seeder Seeder, log logger.Interface) (*Store, error) {
	s := &Store{
		path:           path,
		log:            log,
		tickets:        make(map[uint]*ticket.Ticket),
		activities:     make(map[uint]*ticket.Activity),
		nextTicketID:   1,
		nextActivityID: 1,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.NewLoadError("failed to read local store", err)
		}
		if seeder == nil {
			return s, nil
		}
		if err := s.seed(seeder); err != nil {
			return nil, err
		}
		log.Infow("local store seeded from fixtures", "path", path, "tickets", len(s.tickets))
		return s, nil
	}

	if err := s.restore(data); err != nil {
		return nil, err
	}
	log.Infow("local store loaded", "path", path, "tickets", len(s.tickets))
	return s, nil
}

func (s *Store) seed(seeder Seeder) error {
	tickets, activities, err := seeder.Seed()
	if err != nil {
		return errors.NewLoadError("failed to seed local store", err)
	}
	for _, tk := range tickets {
		id := tk.ID()
		if id == 0 {
			id = s.nextTicketID
			if err := tk.SetID(id); err != nil {
				return errors.NewLoadError("failed to seed local store", err)
			}
		}
		s.tickets[id] = tk
		if id >= s.nextTicketID {
			s.nextTicketID = id + 1
		}
	}
	for _, a := range activities {
		id := a.ID()
		if id == 0 {
			id = s.nextActivityID
			if err := a.SetID(id); err != nil {
				return errors.NewLoadError("failed to seed local store", err)
			}
		}
		s.activities[id] = a
		if id >= s.nextActivityID {
			s.nextActivityID = id + 1
		}
	}
	return s.flushLocked()
}

func (s *Store) restore(data []byte) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.NewLoadError("failed to decode local store", err)
	}

	for i := range doc.Tickets {
		tk, err := doc.Tickets[i].toDomain()
		if err != nil {
			return errors.NewLoadError("failed to revive ticket", err)
		}
		s.tickets[tk.ID()] = tk
		if tk.ID() >= s.nextTicketID {
			s.nextTicketID = tk.ID() + 1
		}
	}
	for i := range doc.Activities {
		a, err := doc.Activities[i].toDomain()
		if err != nil {
			return errors.NewLoadError("failed to revive activity", err)
		}
		s.activities[a.ID()] = a
		if a.ID() >= s.nextActivityID {
			s.nextActivityID = a.ID() + 1
		}
	}
	return nil
}

// flushLocked writes the document atomically: temp file in the same directory,
// then rename. Callers must hold at least a read lock.
func (s *Store) flushLocked() error {
	doc := document{
		Tickets:    make([]ticketDocument, 0, len(s.tickets)),
		Activities: make([]activityDocument, 0, len(s.activities)),
	}
	for _, tk := range ticket.SortedByCreatedAtDesc(s.ticketSliceLocked()) {
		doc.Tickets = append(doc.Tickets, newTicketDocument(tk))
	}
	for _, a := range s.activitySliceLocked() {
		doc.Activities = append(doc.Activities, newActivityDocument(a))
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.NewPersistenceError("failed to encode local store", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.NewPersistenceError("failed to create local store directory", err)
	}

	tmp, err := os.CreateTemp(dir, ".fieldops-*.json")
	if err != nil {
		return errors.NewPersistenceError("failed to stage local store write", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewPersistenceError("failed to write local store", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.NewPersistenceError("failed to write local store", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return errors.NewPersistenceError("failed to replace local store", err)
	}
	return nil
}

func (s *Store) ticketSliceLocked() []*ticket.Ticket {
	out := make([]*ticket.Ticket, 0, len(s.tickets))
	for _, tk := range s.tickets {
		out = append(out, tk)
	}
	return out
}

func (s *Store) activitySliceLocked() []*ticket.Activity {
	out := make([]*ticket.Activity, 0, len(s.activities))
	for _, a := range s.activities {
		out = append(out, a)
	}
	return ticket.SortedActivities(out)
}

// Save implements ticket.TicketRepository.
func (s *Store) Save(ctx context.Context, tk *ticket.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.tickets {
		if existing.Number() == tk.Number() {
			return errors.NewConflictError(fmt.Sprintf("ticket number %s already exists", tk.Number()))
		}
	}

	if tk.ID() == 0 {
		if err := tk.SetID(s.nextTicketID); err != nil {
			return errors.NewPersistenceError("failed to assign ticket id", err)
		}
	}
	if tk.ID() >= s.nextTicketID {
		s.nextTicketID = tk.ID() + 1
	}

	s.tickets[tk.ID()] = tk
	return s.flushLocked()
}

func (s *Store) Update(ctx context.Context, tk *ticket.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tickets[tk.ID()]; !ok {
		return errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", tk.ID()))
	}

	s.tickets[tk.ID()] = tk
	return s.flushLocked()
}

func (s *Store) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tickets, id)
	return s.flushLocked()
}

func (s *Store) FindByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tickets[id], nil
}

func (s *Store) FindByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, tk := range s.tickets {
		if tk.Number() == number {
			return tk, nil
		}
	}
	return nil, nil
}

func (s *Store) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*ticket.Ticket, 0, len(s.tickets))
	for _, tk := range s.tickets {
		if matchesFilter(tk, filter) {
			matched = append(matched, tk)
		}
	}
	switch filter.SortBy {
	case ticket.SortKeyUpdated:
		matched = ticket.SortedByUpdatedAtDesc(matched)
	case ticket.SortKeyPriority:
		matched = ticket.SortedByPriority(matched)
	default:
		matched = ticket.SortedByCreatedAtDesc(matched)
	}

	total := int64(len(matched))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	start := (page - 1) * pageSize
	if start >= len(matched) {
		return []*ticket.Ticket{}, total, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *Store) CountByStatus(ctx context.Context, visibleToUserID *uint) (map[vo.TicketStatus]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[vo.TicketStatus]int64)
	for _, tk := range s.tickets {
		if visibleToUserID != nil && !visibleToOwner(tk, *visibleToUserID) {
			continue
		}
		counts[tk.Status()]++
	}
	return counts, nil
}

func (s *Store) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	tk, err := s.FindByNumber(ctx, number)
	if err != nil {
		return false, err
	}
	return tk != nil, nil
}

func matchesFilter(tk *ticket.Ticket, filter ticket.TicketFilter) bool {
	if filter.Status != nil && tk.Status() != *filter.Status {
		return false
	}
	if filter.Priority != nil && tk.Priority() != *filter.Priority {
		return false
	}
	if filter.TicketType != nil && tk.Type() != *filter.TicketType {
		return false
	}
	if filter.CreatorID != nil && tk.CreatorID() != *filter.CreatorID {
		return false
	}
	if filter.AssigneeID != nil {
		if tk.AssigneeID() == nil || *tk.AssigneeID() != *filter.AssigneeID {
			return false
		}
	}
	if filter.VisibleToUserID != nil && !visibleToOwner(tk, *filter.VisibleToUserID) {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(tk.Title()), needle) &&
			!strings.Contains(strings.ToLower(tk.Number()), needle) &&
			!strings.Contains(strings.ToLower(tk.Location()), needle) {
			return false
		}
	}
	if filter.Overdue && !tk.IsOverdue(time.Now().UTC()) {
		return false
	}
	return true
}

func visibleToOwner(tk *ticket.Ticket, userID uint) bool {
	if tk.CreatorID() == userID {
		return true
	}
	return tk.AssigneeID() != nil && *tk.AssigneeID() == userID
}
