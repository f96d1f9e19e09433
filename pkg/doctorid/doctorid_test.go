package doctorid

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerate_Format(t *testing.T) {
	g := NewGenerator()

	for i := 0; i < 200; i++ {
		id := g.Generate()
		assert.True(t, Valid(id), "unexpected id %q", id)
	}
}

func TestGenerate_UsesClockYearAndPadsSuffix(t *testing.T) {
	clock := func() time.Time { return time.Date(2031, time.March, 4, 0, 0, 0, 0, time.UTC) }
	g := NewGenerator(WithClock(clock), WithRand(rand.New(rand.NewPCG(1, 2))))

	id := g.Generate()

	assert.Regexp(t, `^DOC-2031-\d{4}$`, id)
}

func TestGenerate_DeterministicWithSeededSource(t *testing.T) {
	clock := func() time.Time { return time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC) }
	a := NewGenerator(WithClock(clock), WithRand(rand.New(rand.NewPCG(7, 7))))
	b := NewGenerator(WithClock(clock), WithRand(rand.New(rand.NewPCG(7, 7))))

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Generate(), b.Generate())
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("DOC-2026-0042"))
	assert.False(t, Valid("DOC-2026-42"))
	assert.False(t, Valid("doc-2026-0042"))
	assert.False(t, Valid("17"))
}
