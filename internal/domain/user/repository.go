package user

import "context"

// ProfileRepository reads and caches identity records for this context.
type ProfileRepository interface {
	Save(ctx context.Context, p *Profile) error
	Update(ctx context.Context, p *Profile) error
	FindByID(ctx context.Context, id uint) (*Profile, error)
	FindByEmail(ctx context.Context, email string) (*Profile, error)
	FindByIDs(ctx context.Context, ids []uint) ([]*Profile, error)
	ListAssignable(ctx context.Context) ([]*Profile, error)
}
