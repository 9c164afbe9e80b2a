package route

import "github.com/google/uuid"

// Attempt is the transient state of one Match call. Every call
// allocates a fresh Attempt owned entirely by its caller; nothing
// leaks between calls on the same Route, so concurrent matches cannot
// observe or corrupt each other's captures, score, or trail.
type Attempt struct {
	id       string
	matched  bool
	score    int
	failure  FailureKind
	trail    []string
	captures map[string]string
	params   map[string]any
}

func newAttempt() *Attempt {
	return &Attempt{
		id:       uuid.NewString(),
		failure:  FailNone,
		captures: make(map[string]string),
	}
}

// pass records a passed gate.
func (a *Attempt) pass() {
	a.score++
}

// fail records the failing gate's kind and a diagnostic entry. Only
// the first failure is recorded; the pipeline stops at it.
func (a *Attempt) fail(kind FailureKind, detail string) {
	a.failure = kind
	a.trail = append(a.trail, detail)
}

// ID returns the unique identifier of this attempt, usable to
// correlate log entries and traces.
func (a *Attempt) ID() string { return a.id }

// Matched reports whether all gates passed.
func (a *Attempt) Matched() bool { return a.matched }

// Score returns the number of gates that passed before the first
// failure, or the full gate count on success. The dispatcher uses it
// to rank near-miss candidates.
func (a *Attempt) Score() int { return a.score }

// FailureKind returns the reason the attempt failed, FailNone on
// success.
func (a *Attempt) FailureKind() FailureKind { return a.failure }

// DebugTrail returns the ordered diagnostic entries accumulated up to
// the failing gate.
func (a *Attempt) DebugTrail() []string {
	out := make([]string, len(a.trail))
	copy(out, a.trail)
	return out
}

// RawCaptures returns the undecoded captures produced by the path and
// context-constraint gates. The map is owned by the attempt's caller.
func (a *Attempt) RawCaptures() map[string]string { return a.captures }

// Params returns the resolved parameter map. It is populated only on a
// full match: defaults overlaid with decoded captures, the wildcard
// parameter always an ordered []string.
func (a *Attempt) Params() map[string]any { return a.params }

// FailedOnAccept reports whether content negotiation was the failing
// gate.
func (a *Attempt) FailedOnAccept() bool { return a.failure == FailAccept }

// FailedOnMethod reports whether the method gate was the failing gate.
func (a *Attempt) FailedOnMethod() bool { return a.failure == FailMethod }
