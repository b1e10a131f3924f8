package debug

import (
	"context"
	"time"

	"github.com/op/go-logging"
)

// Window is how long an enable request keeps debug mode on.
const Window = 10 * time.Minute

// Source names what produced a decision.
type Source string

const (
	SourceNone     Source = "none"
	SourceLocal    Source = "local"
	SourceRecord   Source = "record"
	SourceOverride Source = "override"
)

// Decision is the outcome of one evaluation. Degraded carries the reason when the
// persisted state could not be trusted; Healed is set when an expired record was
// rewritten as disabled during the evaluation.
type Decision struct {
	Enabled  bool
	Source   Source
	Degraded string
	Healed   bool
}

// Gate evaluates and mutates the persisted debug state.
type Gate struct {
	env    *Environment
	store  Store
	now    func() time.Time
	logger *logging.Logger
}

// Option customises a Gate.
type Option func(g *Gate)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) {
		if now != nil {
			g.now = now
		}
	}
}

// WithLogger overrides the diagnostic logger.
func WithLogger(logger *logging.Logger) Option {
	return func(g *Gate) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Decide computes the effective debug state for now. It reads the store on every
// call and, as a side effect, persists a disable when the stored expiry has passed.
// Malformed records are reported and treated as disabled but left untouched.
func (g *Gate) Decide(ctx context.Context, allowOverride bool) Decision {
	decision := Decision{Enabled: g.env != nil && g.env.IsLocal, Source: SourceNone}
	if decision.Enabled {
		decision.Source = SourceLocal
		return decision
	}

	record, err := g.store.Read(ctx)
	switch {
	case err != nil:
		decision.Degraded = "error reading the debug file: " + err.Error()
		g.logger.Errorf("Error reading the debug file: %v", err)
	case record.IsDisabled():
		decision.Enabled = false
	case record.IsEnabled():
		g.evaluateRecord(ctx, record, &decision)
	}

	if !decision.Enabled && allowOverride && g.env.Elevated() {
		decision.Enabled = true
		decision.Source = SourceOverride
	}
	return decision
}

func (g *Gate) evaluateRecord(ctx context.Context, record *Record, decision *Decision) {
	loc := g.env.location()
	if record.Expiry == "" {
		decision.Degraded = "debug file has no timestamp"
		g.logger.Warning(`The "debug" file does not contain a timestamp on the second line.`)
		return
	}
	expiresAt, ok := record.ExpiresAt(loc)
	if !ok {
		decision.Degraded = "debug file has an invalid timestamp: " + record.Expiry
		g.logger.Warningf(`The "debug" file contains an invalid timestamp on the second line: %v`, record.Expiry)
		return
	}
	if g.now().After(expiresAt) {
		decision.Healed = true
		if err := g.store.Write(ctx, DisabledRecord()); err != nil {
			decision.Degraded = "failed to reset debug file: " + err.Error()
			g.logger.Errorf("Error resetting the debug file: %v", err)
		}
		return
	}
	decision.Enabled = true
	decision.Source = SourceRecord
}

// Enabled unwraps Decide to the conservative boolean.
func (g *Gate) Enabled(ctx context.Context, allowOverride bool) bool {
	return g.Decide(ctx, allowOverride).Enabled
}

// SetMode enables debug mode for Window or disables it, returning a status line.
// The message reflects the request even when persisting it fails.
func (g *Gate) SetMode(ctx context.Context, enable bool) string {
	loc := g.env.location()
	limit := g.now().In(loc).Add(Window)

	record := DisabledRecord()
	if enable {
		record = EnabledRecord(limit, loc)
	}
	if err := g.store.Write(ctx, record); err != nil {
		g.logger.Errorf("Error writing to the debug file: %v", err)
	} else {
		g.logger.Infof("Debug mode set to: %v", record.Flag)
	}

	if enable {
		return "Debug mode enabled until " + limit.Format(ClockLayout) + "."
	}
	return "Debug mode disabled."
}

// New creates a gate over env and store. A nil store falls back to the
// .debug file in the working directory.
func New(env *Environment, store Store, opts ...Option) *Gate {
	if env == nil {
		env = &Environment{}
	}
	if store == nil {
		store = NewFileStore(nil, DefaultPath)
	}
	g := &Gate{
		env:    env,
		store:  store,
		now:    time.Now,
		logger: logging.MustGetLogger("debug"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}
