// Package idgen issues unique record identifiers for the state core.
//
// The portal used to derive ids straight from the wall clock, which collides
// under rapid successive calls. Generator keeps the time component for
// readability but adds a process-local counter and a random suffix, so two
// ids can never be equal even within the same millisecond or across two
// program instances sharing one database.
package idgen

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Generator produces unique identifiers. Stores receive it as a capability
// so tests can inject a deterministic implementation.
type Generator interface {
	NewID() string
}

// Prefixed is the production Generator: <prefix><millis base36>-<seq base36>-<rand>.
type Prefixed struct {
	prefix string

	mu  sync.Mutex
	seq uint64
}

// NewPrefixed returns a Generator whose ids start with prefix ("APP", "NTF", "USR").
func NewPrefixed(prefix string) *Prefixed {
	return &Prefixed{prefix: prefix}
}

func (g *Prefixed) NewID() string {
	g.mu.Lock()
	g.seq++
	n := g.seq
	g.mu.Unlock()

	millis := strconv.FormatInt(time.Now().UnixMilli(), 36)
	rand := strings.SplitN(uuid.NewString(), "-", 2)[0]

	return fmt.Sprintf("%s%s-%s-%s", g.prefix, strings.ToUpper(millis), strconv.FormatUint(n, 36), rand)
}

// Sequential is a deterministic Generator for tests: <prefix>1, <prefix>2, ...
type Sequential struct {
	prefix string

	mu sync.Mutex
	n  uint64
}

func NewSequential(prefix string) *Sequential {
	return &Sequential{prefix: prefix}
}

func (g *Sequential) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s%d", g.prefix, g.n)
}
