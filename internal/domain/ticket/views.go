package ticket

import (
	"sort"
	"time"

	vo "fieldops/internal/domain/ticket/valueobjects"
	"fieldops/internal/shared/authorization"
)

// Pure in-memory projections over ticket slices. The offline store and the
// feed snapshot both filter on the client side, so these mirror the
// repository filters without touching storage.

// VisibleTo keeps the tickets the user may see under the role rule.
func VisibleTo(tickets []*Ticket, userID uint, role authorization.UserRole) []*Ticket {
	out := make([]*Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.CanBeViewedBy(userID, role) {
			out = append(out, t)
		}
	}
	return out
}

// ByStatus keeps tickets in the given status.
func ByStatus(tickets []*Ticket, status vo.TicketStatus) []*Ticket {
	out := make([]*Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.Status() == status {
			out = append(out, t)
		}
	}
	return out
}

// ByPriority keeps tickets at the given priority.
func ByPriority(tickets []*Ticket, priority vo.Priority) []*Ticket {
	out := make([]*Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.Priority() == priority {
			out = append(out, t)
		}
	}
	return out
}

// ByAssignee keeps tickets assigned to the given user.
func ByAssignee(tickets []*Ticket, assigneeID uint) []*Ticket {
	out := make([]*Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.AssigneeID() != nil && *t.AssigneeID() == assigneeID {
			out = append(out, t)
		}
	}
	return out
}

// Overdue keeps tickets past their due date that still have work outstanding.
func Overdue(tickets []*Ticket, now time.Time) []*Ticket {
	out := make([]*Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.IsOverdue(now) {
			out = append(out, t)
		}
	}
	return out
}

// SortedByPriority orders critical first, high next, and so on; ties fall
// back to newest created first. The input slice is not modified.
func SortedByPriority(tickets []*Ticket) []*Ticket {
	out := make([]*Ticket, len(tickets))
	copy(out, tickets)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Priority().Rank(), out[j].Priority().Rank()
		if ri != rj {
			return ri > rj
		}
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out
}

// SortedByCreatedAtDesc orders newest tickets first.
func SortedByCreatedAtDesc(tickets []*Ticket) []*Ticket {
	out := make([]*Ticket, len(tickets))
	copy(out, tickets)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out
}

// SortedByUpdatedAtDesc orders most recently touched tickets first.
func SortedByUpdatedAtDesc(tickets []*Ticket) []*Ticket {
	out := make([]*Ticket, len(tickets))
	copy(out, tickets)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt().After(out[j].UpdatedAt())
	})
	return out
}

// SortedActivities orders the audit trail most recent first, matching how it
// is rendered under a ticket.
func SortedActivities(activities []*Activity) []*Activity {
	out := make([]*Activity, len(activities))
	copy(out, activities)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out
}

// StatusCounts tallies tickets per status for dashboard summaries.
func StatusCounts(tickets []*Ticket) map[vo.TicketStatus]int64 {
	counts := make(map[vo.TicketStatus]int64, 5)
	for _, t := range tickets {
		counts[t.Status()]++
	}
	return counts
}
