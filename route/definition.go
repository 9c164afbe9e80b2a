package route

import "regexp"

// SecureMode is the tri-state secure-transport requirement.
type SecureMode int

const (
	// SecureAny accepts both secure and insecure transport.
	SecureAny SecureMode = iota

	// SecureRequired only matches requests over secure transport.
	SecureRequired

	// SecureForbidden only matches requests over insecure transport.
	SecureForbidden
)

// Predicate is the custom-match hook: a function of the request
// context and the captures accumulated so far. A false result fails
// the attempt with FailCustom. Faults raised inside a predicate are
// programmer errors and propagate to the caller; the pipeline never
// swallows them.
type Predicate func(ctx Context, captures map[string]string) bool

// constraint is one precompiled context constraint: the anchored
// expression wraps the configured fragment in a capture group named
// after the context variable.
type constraint struct {
	name string
	re   *regexp.Regexp
}

// match evaluates the constraint against a context value and returns
// the named capture on success.
func (c constraint) match(value string) (string, bool) {
	m := c.re.FindStringSubmatch(value)
	if m == nil {
		return "", false
	}
	for i, name := range c.re.SubexpNames() {
		if name == c.name && i < len(m) {
			return m[i], true
		}
	}
	return "", false
}

// Definition is the immutable configuration record of a route. It is
// assembled once by a Builder and consumed read-only by the matching
// pipeline; no field changes after Build returns.
type Definition struct {
	name        string
	template    string
	defaults    map[string]any
	tokens      map[string]string
	methods     map[string]struct{}
	methodList  []string
	accept      []string
	secure      SecureMode
	constraints []constraint
	predicate   Predicate
	wildcard    string
	routable    bool
}

// Name returns the route's unique identifier.
func (d *Definition) Name() string { return d.name }

// Template returns the path template the route was built from.
func (d *Definition) Template() string { return d.template }

// Defaults returns a copy of the default parameter values.
func (d *Definition) Defaults() map[string]any {
	out := make(map[string]any, len(d.defaults))
	for k, v := range d.defaults {
		out[k] = v
	}
	return out
}

// Methods returns the allowed methods in configuration order; empty
// means any method is allowed.
func (d *Definition) Methods() []string {
	out := make([]string, len(d.methodList))
	copy(out, d.methodList)
	return out
}

// AcceptTypes returns the configured acceptable media types; empty
// means any.
func (d *Definition) AcceptTypes() []string {
	out := make([]string, len(d.accept))
	copy(out, d.accept)
	return out
}

// Secure returns the secure-transport requirement.
func (d *Definition) Secure() SecureMode { return d.secure }

// Wildcard returns the name of the trailing catch-all parameter, empty
// when none is configured.
func (d *Definition) Wildcard() string { return d.wildcard }

// Routable reports whether the route is eligible to match incoming
// requests at all.
func (d *Definition) Routable() bool { return d.routable }

// allowsMethod reports whether the definition allows the given
// (already upper-cased) method.
func (d *Definition) allowsMethod(method string) bool {
	if len(d.methods) == 0 {
		return true
	}
	_, ok := d.methods[method]
	return ok
}
