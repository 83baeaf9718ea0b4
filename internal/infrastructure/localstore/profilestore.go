package localstore

import (
	"context"
	"sort"
	"sync"

	"fieldops/internal/domain/user"
	"fieldops/internal/shared/errors"
)

// ProfileStore holds user profiles in memory for the local storage driver.
// Identity lives in the external provider either way; in offline mode the
// profile set is fixed to the injected fixtures for the process lifetime.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[uint]*user.Profile
	nextID   uint
}

func NewProfileStore(profiles []*user.Profile) *ProfileStore {
	s := &ProfileStore{
		profiles: make(map[uint]*user.Profile, len(profiles)),
		nextID:   1,
	}
	for _, p := range profiles {
		s.profiles[p.ID()] = p
		if p.ID() >= s.nextID {
			s.nextID = p.ID() + 1
		}
	}
	return s
}

func (s *ProfileStore) Save(ctx context.Context, p *user.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.profiles {
		if existing.Email() == p.Email() {
			return errors.NewConflictError("profile with this email already exists")
		}
	}

	if p.ID() == 0 {
		if err := p.SetID(s.nextID); err != nil {
			return errors.NewInternalError("failed to assign profile ID", err.Error())
		}
	}
	if p.ID() >= s.nextID {
		s.nextID = p.ID() + 1
	}

	s.profiles[p.ID()] = p
	return nil
}

func (s *ProfileStore) Update(ctx context.Context, p *user.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[p.ID()]; !ok {
		return errors.NewNotFoundError("profile not found")
	}
	s.profiles[p.ID()] = p
	return nil
}

func (s *ProfileStore) FindByID(ctx context.Context, id uint) (*user.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profiles[id], nil
}

func (s *ProfileStore) FindByEmail(ctx context.Context, email string) (*user.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.profiles {
		if p.Email() == email {
			return p, nil
		}
	}
	return nil, nil
}

func (s *ProfileStore) FindByIDs(ctx context.Context, ids []uint) ([]*user.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*user.Profile, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.profiles[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (s *ProfileStore) ListAssignable(ctx context.Context) ([]*user.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*user.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		if p.IsActive() {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result, nil
}

var _ user.ProfileRepository = (*ProfileStore)(nil)
