// Package doctorid generates the human-facing doctor identifiers of the form
// DOC-<year>-<4 digits>. The numeric suffix is random, so two identifiers can
// collide; callers that need uniqueness must check the store.
package doctorid

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"sync"
	"time"
)

const (
	prefix     = "DOC"
	suffixSpan = 10000
)

var pattern = regexp.MustCompile(`^DOC-\d{4}-\d{4}$`)

// Generator produces doctor identifiers from a clock and a random source.
type Generator struct {
	mu   sync.Mutex
	now  func() time.Time
	rand *rand.Rand
}

// Option customizes a Generator.
type Option func(*Generator)

// WithClock overrides the clock used for the year component.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithRand overrides the random source used for the numeric suffix.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		g.rand = r
	}
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		now:  time.Now,
		rand: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a new identifier. It performs no uniqueness check.
func (g *Generator) Generate() string {
	g.mu.Lock()
	n := g.rand.IntN(suffixSpan)
	g.mu.Unlock()

	return fmt.Sprintf("%s-%04d-%04d", prefix, g.now().Year(), n)
}

// Valid reports whether s has the doctor identifier format.
func Valid(s string) bool {
	return pattern.MatchString(s)
}
