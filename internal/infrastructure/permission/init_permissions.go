package permission

import (
	"fmt"

	"fieldops/internal/shared/logger"
)

// InitTicketPermissions bootstraps the default role policy. AddPolicy is
// idempotent in casbin, so running this on every startup is safe.
//
// admin manages everything including delete; supervisor assigns, verifies and
// reads stats; field engineers work their own tickets. Row-level visibility
// is enforced again inside the use cases.
func InitTicketPermissions(e *Enforcer, log logger.Interface) error {
	policies := [][]string{
		{"admin", "tickets", "create"},
		{"admin", "tickets", "read"},
		{"admin", "tickets", "update"},
		{"admin", "tickets", "delete"},
		{"admin", "tickets", "assign"},
		{"admin", "tickets", "verify"},
		{"admin", "tickets", "status"},
		{"admin", "tickets", "comment"},
		{"admin", "tickets", "media"},
		{"admin", "stats", "read"},
		{"admin", "profiles", "read"},
		{"admin", "notifications", "read"},
		{"admin", "notifications", "update"},

		{"supervisor", "tickets", "create"},
		{"supervisor", "tickets", "read"},
		{"supervisor", "tickets", "update"},
		{"supervisor", "tickets", "assign"},
		{"supervisor", "tickets", "verify"},
		{"supervisor", "tickets", "status"},
		{"supervisor", "tickets", "comment"},
		{"supervisor", "tickets", "media"},
		{"supervisor", "stats", "read"},
		{"supervisor", "profiles", "read"},
		{"supervisor", "notifications", "read"},
		{"supervisor", "notifications", "update"},

		{"field_engineer", "tickets", "create"},
		{"field_engineer", "tickets", "read"},
		{"field_engineer", "tickets", "update"},
		{"field_engineer", "tickets", "status"},
		{"field_engineer", "tickets", "comment"},
		{"field_engineer", "tickets", "media"},
		{"field_engineer", "stats", "read"},
		{"field_engineer", "notifications", "read"},
		{"field_engineer", "notifications", "update"},
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, policy := range policies {
		if _, err := e.enforcer.AddPolicy(policy); err != nil {
			log.Errorw("failed to add ticket permission policy",
				"error", err,
				"role", policy[0],
				"resource", policy[1],
				"action", policy[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
	}

	if e.persisted {
		if err := e.enforcer.SavePolicy(); err != nil {
			log.Error("failed to save ticket permissions", "error", err)
			return fmt.Errorf("failed to save ticket permissions: %w", err)
		}
	}

	log.Info("ticket permissions initialized successfully")
	return nil
}
