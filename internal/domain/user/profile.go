package user

import (
	"fmt"
	"time"

	"fieldops/internal/shared/authorization"
	"fieldops/internal/shared/biztime"
)

// Profile is the identity record the ticketing context consumes. Accounts
// are provisioned by an external identity system; this context only reads
// and caches them for display names, assignment pickers and role checks.
type Profile struct {
	id        uint
	email     string
	name      string
	role      authorization.UserRole
	phone     string
	avatarURL string
	active    bool
	createdAt time.Time
	updatedAt time.Time
}

func NewProfile(email, name string, role authorization.UserRole) (*Profile, error) {
	if len(email) == 0 {
		return nil, fmt.Errorf("email is required")
	}
	if len(name) == 0 {
		return nil, fmt.Errorf("name is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	now := biztime.NowUTC()
	return &Profile{
		email:     email,
		name:      name,
		role:      role,
		active:    true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

type ProfileAttributes struct {
	ID        uint
	Email     string
	Name      string
	Role      authorization.UserRole
	Phone     string
	AvatarURL string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func ReconstructProfile(attrs ProfileAttributes) (*Profile, error) {
	if attrs.ID == 0 {
		return nil, fmt.Errorf("profile ID cannot be zero")
	}
	if !attrs.Role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", attrs.Role)
	}

	return &Profile{
		id:        attrs.ID,
		email:     attrs.Email,
		name:      attrs.Name,
		role:      attrs.Role,
		phone:     attrs.Phone,
		avatarURL: attrs.AvatarURL,
		active:    attrs.Active,
		createdAt: attrs.CreatedAt,
		updatedAt: attrs.UpdatedAt,
	}, nil
}

func (p *Profile) ID() uint                     { return p.id }
func (p *Profile) Email() string                { return p.email }
func (p *Profile) Name() string                 { return p.name }
func (p *Profile) Role() authorization.UserRole { return p.role }
func (p *Profile) Phone() string                { return p.phone }
func (p *Profile) AvatarURL() string            { return p.avatarURL }
func (p *Profile) IsActive() bool               { return p.active }
func (p *Profile) CreatedAt() time.Time         { return p.createdAt }
func (p *Profile) UpdatedAt() time.Time         { return p.updatedAt }

func (p *Profile) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("profile ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("profile ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Profile) SetPhone(phone string)   { p.phone = phone; p.touch() }
func (p *Profile) SetAvatarURL(url string) { p.avatarURL = url; p.touch() }

func (p *Profile) ChangeRole(role authorization.UserRole) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", role)
	}
	p.role = role
	p.touch()
	return nil
}

func (p *Profile) Deactivate() {
	p.active = false
	p.touch()
}

// CanBeAssigned reports whether tickets may be assigned to this user.
func (p *Profile) CanBeAssigned() bool {
	return p.active
}

func (p *Profile) touch() {
	p.updatedAt = biztime.NowUTC()
}
