package ticket

import (
	"context"

	vo "fieldops/internal/domain/ticket/valueobjects"
)

// TicketFilter narrows List and Count queries. Nil fields are unconstrained.
// VisibleToUserID restricts results to tickets the user created or is
// assigned to; it is left nil for admin queries.
// Sort keys accepted by TicketFilter.SortBy. An empty key means newest
// created first.
const (
	SortKeyCreated  = "created"
	SortKeyUpdated  = "updated"
	SortKeyPriority = "priority"
)

type TicketFilter struct {
	Status          *vo.TicketStatus
	Priority        *vo.Priority
	TicketType      *vo.TicketType
	CreatorID       *uint
	AssigneeID      *uint
	VisibleToUserID *uint
	Search          string
	// Overdue keeps only tickets past their due date with work outstanding.
	Overdue  bool
	SortBy   string
	Page     int
	PageSize int
}

// TicketRepository persists Ticket aggregates.
type TicketRepository interface {
	Save(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*Ticket, error)
	FindByNumber(ctx context.Context, number string) (*Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]*Ticket, int64, error)
	CountByStatus(ctx context.Context, visibleToUserID *uint) (map[vo.TicketStatus]int64, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
}

// ActivityRepository persists the append-only activity trail. There are no
// update or single-delete operations; DeleteByTicketID exists only to cascade
// a ticket deletion.
type ActivityRepository interface {
	Save(ctx context.Context, a *Activity) error
	FindByTicketID(ctx context.Context, ticketID uint) ([]*Activity, error)
	DeleteByTicketID(ctx context.Context, ticketID uint) error
}

// NumberGenerator produces unique human-readable ticket numbers.
type NumberGenerator interface {
	Generate(ctx context.Context) (string, error)
}
