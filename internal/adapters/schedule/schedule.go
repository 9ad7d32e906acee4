// Package schedule fires periodic rescans from a cron expression using
// github.com/robfig/cron/v3.
//
// Expressions take five fields, an optional leading seconds field, or a
// descriptor such as "@hourly" or "@every 10m".
package schedule

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/corey/orgscan/internal/ports"
)

var parser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour |
	cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Parse validates expr.
func Parse(expr string) (cron.Schedule, error) {
	s, err := parser.Parse(expr)
	if err != nil {
		return nil, &ports.ConfigurationError{Source: "schedule", Err: fmt.Errorf("invalid cron expression %q: %w", expr, err)}
	}
	return s, nil
}

// Trigger calls fire on every tick of a cron schedule.
type Trigger struct {
	expr     string
	schedule cron.Schedule
	c        *cron.Cron
	id       cron.EntryID

	mu      sync.Mutex
	running bool
}

// New parses expr and registers fire. Nothing runs until Start.
// A tick that arrives while the previous fire is still running is skipped.
func New(expr string, fire func()) (*Trigger, error) {
	s, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	c := cron.New(cron.WithParser(parser), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	t := &Trigger{expr: expr, schedule: s, c: c}
	t.id = c.Schedule(s, cron.FuncJob(fire))
	return t, nil
}

// Expression returns the cron expression as given.
func (t *Trigger) Expression() string { return t.expr }

// Start begins firing in the background. Calling it twice is a no-op.
func (t *Trigger) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	t.running = true
	t.c.Start()
}

// Stop halts the schedule and waits for a running fire to return.
func (t *Trigger) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	t.running = false
	t.mu.Unlock()
	<-t.c.Stop().Done()
}

// Next returns the first activation after from.
func (t *Trigger) Next(from time.Time) time.Time {
	return t.schedule.Next(from)
}
