package route

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/gatewaykit/routecore/negotiate"
	"github.com/gatewaykit/routecore/observability"
	"github.com/gatewaykit/routecore/pattern"
)

// gateCount is the number of pipeline gates; a fully matched attempt
// has this score.
const gateCount = 7

// Route binds an immutable Definition to its compiled artifacts and
// the ambient instrumentation hooks. A Route is never mutated by
// Match, so a single instance serves any number of concurrent
// evaluations.
type Route struct {
	def      Definition
	compiled *pattern.Compiled
	accept   *negotiate.Matcher

	logger  observability.Logger
	metrics *observability.MatchMetrics
	tracer  trace.Tracer
}

// NewRoute creates a minimal route from an already compiled pattern.
// The route matches any method over any transport, accepts every media
// type, and is routable. Builder is the normal construction path; this
// constructor exists for callers that manage pattern compilation
// themselves.
func NewRoute(compiled *pattern.Compiled, template, name string) *Route {
	return &Route{
		def: Definition{
			name:     name,
			template: template,
			routable: true,
		},
		compiled: compiled,
		logger:   observability.NopLogger(),
	}
}

// Name returns the route's unique identifier.
func (r *Route) Name() string { return r.def.name }

// Template returns the path template.
func (r *Route) Template() string { return r.def.template }

// Definition returns the route's immutable configuration record.
func (r *Route) Definition() *Definition { return &r.def }

// Match runs the request through the gate pipeline and returns the
// attempt along with whether it fully matched. The attempt carries the
// score, failure kind, diagnostic trail, raw captures, and — on
// success — the resolved parameters; it is freshly allocated for every
// call and owned by the caller.
func (r *Route) Match(path string, ctx Context) (*Attempt, bool) {
	start := time.Now()

	a := newAttempt()
	r.runGates(path, ctx, a)
	if a.failure == FailNone {
		a.params = resolveParams(r.def.defaults, a.captures, r.def.wildcard)
		a.matched = true
	}

	r.observe(a, path, time.Since(start))
	return a, a.matched
}

// runGates executes the seven gates in their fixed order, stopping at
// the first failure. Captures produced by the path gate are visible to
// the context-constraint and predicate gates.
func (r *Route) runGates(path string, ctx Context, a *Attempt) {
	// Gate 1: routability.
	if !r.def.routable {
		a.fail(FailNotRoutable, fmt.Sprintf("route %q is not routable", r.def.name))
		return
	}
	a.pass()

	// Gate 2: secure transport.
	if r.def.secure != SecureAny {
		want := r.def.secure == SecureRequired
		if got := ctx.Secure(); got != want {
			a.fail(FailSecure, secureDetail(want, got))
			return
		}
	}
	a.pass()

	// Gate 3: path pattern.
	captures, ok := r.compiled.Evaluate(path)
	if !ok {
		a.fail(FailPath, fmt.Sprintf("path %q does not match template %q", path, r.def.template))
		return
	}
	for name, value := range captures {
		a.captures[name] = value
	}
	a.pass()

	// Gate 4: method.
	if method := ctx.Method(); !r.def.allowsMethod(method) {
		a.fail(FailMethod, fmt.Sprintf("method %q not allowed (allowed: %s)",
			method, strings.Join(r.def.methodList, ", ")))
		return
	}
	a.pass()

	// Gate 5: content negotiation.
	if header := ctx.Accept(); !r.accept.Accepts(header) {
		a.fail(FailAccept, fmt.Sprintf("no acceptable media type in %q (accepts: %s)",
			header, strings.Join(r.def.accept, ", ")))
		return
	}
	a.pass()

	// Gate 6: context constraints. Matched values merge into the raw
	// captures so the predicate gate observes them.
	for _, c := range r.def.constraints {
		value, ok := c.match(ctx[c.name])
		if !ok {
			a.fail(FailContext, fmt.Sprintf("context variable %q value %q does not match constraint",
				c.name, ctx[c.name]))
			return
		}
		a.captures[c.name] = value
	}
	a.pass()

	// Gate 7: custom predicate. Faults inside the predicate propagate;
	// they indicate a bug in route setup, not a request mismatch.
	if r.def.predicate != nil && !r.def.predicate(ctx, a.captures) {
		a.fail(FailCustom, "custom predicate rejected the request")
		return
	}
	a.pass()
}

// observe emits the ambient instrumentation for a finished attempt.
func (r *Route) observe(a *Attempt, path string, elapsed time.Duration) {
	result := observability.ResultFailed
	if a.matched {
		result = observability.ResultMatched
	}

	if r.metrics != nil {
		r.metrics.RecordAttempt(r.def.name, result, elapsed)
		if !a.matched {
			r.metrics.RecordFailure(r.def.name, a.failure.String())
		}
	}

	if r.tracer != nil {
		attrs := []attribute.KeyValue{
			attribute.String("route.name", r.def.name),
			attribute.String("route.path", path),
			attribute.String("route.attempt_id", a.id),
			attribute.Bool("route.matched", a.matched),
			attribute.Int("route.score", a.score),
		}
		if !a.matched {
			attrs = append(attrs, attribute.String("route.failure", a.failure.String()))
		}
		_, span := observability.StartSpan(context.Background(), r.tracer, "route.Match", attrs...)
		span.End()
	}

	if a.matched {
		r.logger.Debug("route matched",
			observability.String("route", r.def.name),
			observability.String("path", path),
			observability.String("attempt", a.id),
			observability.Int("score", a.score),
			observability.Duration("elapsed", elapsed),
		)
	} else {
		r.logger.Debug("route did not match",
			observability.String("route", r.def.name),
			observability.String("path", path),
			observability.String("attempt", a.id),
			observability.String("reason", a.failure.String()),
			observability.Int("score", a.score),
			observability.Strings("trail", a.trail),
		)
	}
}

// secureDetail renders the secure gate's trail entry.
func secureDetail(want, got bool) string {
	if want && !got {
		return "secure transport required but request is insecure"
	}
	return "insecure transport required but request is secure"
}
