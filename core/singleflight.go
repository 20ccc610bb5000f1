package orchestration

import (
	"sync"

	"github.com/google/uuid"
)

// flightGuard enforces single-flight per operation kind with an explicit
// in-flight token instead of an advisory busy boolean: a second acquisition
// is refused deterministically, and only the holder of the current token can
// release it.
type flightGuard struct {
	mu    sync.Mutex
	token string
}

// acquire claims the guard and returns the in-flight token, or refuses when
// an operation is already in flight.
func (g *flightGuard) acquire() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.token != "" {
		return "", false
	}
	g.token = uuid.NewString()
	return g.token, true
}

// release clears the guard. Releasing with a stale token is a no-op, so a
// late goroutine cannot free a guard it no longer owns.
func (g *flightGuard) release(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.token == token {
		g.token = ""
	}
}

func (g *flightGuard) inFlight() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.token != ""
}
