// Package numbering generates session-frozen invoice numbers.
//
// A number is "<YYMMDD>-<NNN>": a Persian-calendar date code plus a
// persisted three-digit counter. Once peeked, the number stays frozen for
// the draft so it cannot silently change mid-edit when the session crosses
// a date boundary. Finalization advances the counter and clears the frozen
// value; it is triggered only by a successful export or explicit save.
package numbering

import (
	"fmt"
	"sync"
	"time"
)

// Generator is the number state machine:
//
//	Unset --Peek--> Frozen(number) --Finalize--> Unset, counter+1
//
// Peek while frozen returns the identical string; Finalize while unset is
// an idempotent no-op.
type Generator struct {
	mu      sync.Mutex
	frozen  string
	counter CounterStore
	coder   DateCoder
	now     func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithDateCoder overrides the calendar used for the date code.
func WithDateCoder(c DateCoder) Option {
	return func(g *Generator) { g.coder = c }
}

func NewGenerator(counter CounterStore, opts ...Option) *Generator {
	g := &Generator{
		counter: counter,
		coder:   PersianCoder{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Peek returns the invoice number for the current draft, freezing it on
// first call. It never fails.
func (g *Generator) Peek() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.frozen != "" {
		return g.frozen
	}
	g.frozen = fmt.Sprintf("%s-%03d", g.coder.DateCode(g.now()), g.counter.Load())
	return g.frozen
}

// Finalize locks in the current number: the persisted counter advances by
// exactly 1 and the frozen value is cleared so the next Peek computes a
// fresh number. Calling Finalize with nothing frozen does nothing.
func (g *Generator) Finalize() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.frozen == "" {
		return nil
	}
	if err := g.counter.Save(g.counter.Load() + 1); err != nil {
		return fmt.Errorf("advance invoice counter: %w", err)
	}
	g.frozen = ""
	return nil
}
