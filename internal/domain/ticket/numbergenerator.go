package ticket

import (
	"context"
	"fmt"
	"sync"

	"fieldops/internal/shared/biztime"
)

// DefaultNumberGenerator issues TICK-YYYYMMDD-NNNN numbers with an in-memory
// per-day counter. Persistence-backed uniqueness is enforced separately via
// ExistsByNumber at creation time.
type DefaultNumberGenerator struct {
	mu       sync.Mutex
	counters map[string]int
}

func NewDefaultNumberGenerator() *DefaultNumberGenerator {
	return &DefaultNumberGenerator{
		counters: make(map[string]int),
	}
}

func (g *DefaultNumberGenerator) Generate(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	dateKey := biztime.NowUTC().Format("20060102")

	g.counters[dateKey]++

	return fmt.Sprintf("TICK-%s-%04d", dateKey, g.counters[dateKey]), nil
}
