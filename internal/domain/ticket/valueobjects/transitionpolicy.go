package valueobjects

// TransitionPolicy decides whether a status transition is allowed. The
// observed product behavior allows any transition (manual correction
// workflow, e.g. closed back to open), so the permissive policy is the
// default; deployments wanting a guarded workflow opt into the table-driven
// policy via configuration.
type TransitionPolicy interface {
	CanTransition(from, to TicketStatus) bool
}

// PermissivePolicy allows every transition between valid statuses.
type PermissivePolicy struct{}

func (PermissivePolicy) CanTransition(from, to TicketStatus) bool {
	return from.IsValid() && to.IsValid()
}

// GuardedPolicy enforces the forward workflow with explicit reopen edges.
type GuardedPolicy struct{}

var guardedTransitions = map[TicketStatus][]TicketStatus{
	StatusOpen: {
		StatusInProgress,
		StatusResolved,
		StatusClosed,
	},
	StatusInProgress: {
		StatusOpen,
		StatusResolved,
		StatusClosed,
	},
	StatusResolved: {
		StatusInProgress,
		StatusVerified,
		StatusClosed,
	},
	StatusVerified: {
		StatusClosed,
		StatusOpen,
	},
	StatusClosed: {
		StatusOpen,
	},
}

func (GuardedPolicy) CanTransition(from, to TicketStatus) bool {
	for _, allowed := range guardedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// NewTransitionPolicy returns the guarded table policy when strict is set,
// otherwise the permissive default.
func NewTransitionPolicy(strict bool) TransitionPolicy {
	if strict {
		return GuardedPolicy{}
	}
	return PermissivePolicy{}
}
