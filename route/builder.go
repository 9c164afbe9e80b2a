package route

import (
	"fmt"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/gatewaykit/routecore/negotiate"
	"github.com/gatewaykit/routecore/observability"
	"github.com/gatewaykit/routecore/pattern"
)

// Builder assembles an immutable route definition through chained
// setters and compiles it with Build. A Builder is single-use and not
// safe for concurrent mutation; the Route it produces is.
type Builder struct {
	name        string
	template    string
	defaults    map[string]any
	tokens      map[string]string
	methods     []string
	accept      []string
	secure      SecureMode
	constraints []rawConstraint
	predicate   Predicate
	wildcard    string
	routable    bool

	logger  observability.Logger
	metrics *observability.MatchMetrics
	tracer  trace.Tracer
}

// rawConstraint holds a context constraint before compilation,
// preserving declaration order.
type rawConstraint struct {
	name     string
	fragment string
}

// NewBuilder starts a builder for a route with the given unique name
// and path template. The route is routable by default.
func NewBuilder(name, template string) *Builder {
	return &Builder{
		name:     name,
		template: template,
		defaults: make(map[string]any),
		tokens:   make(map[string]string),
		routable: true,
		logger:   observability.NopLogger(),
	}
}

// Defaults merges the given default parameter values.
func (b *Builder) Defaults(values map[string]any) *Builder {
	for k, v := range values {
		b.defaults[k] = v
	}
	return b
}

// Default sets a single default parameter value.
func (b *Builder) Default(name string, value any) *Builder {
	b.defaults[name] = value
	return b
}

// Token overrides the pattern fragment for a named token.
func (b *Builder) Token(name, fragment string) *Builder {
	b.tokens[name] = fragment
	return b
}

// Methods restricts the route to the given request methods. Methods
// are normalized to upper case; calling with no arguments leaves the
// route open to any method.
func (b *Builder) Methods(methods ...string) *Builder {
	b.methods = append(b.methods, methods...)
	return b
}

// Accept restricts the route to requests accepting one of the given
// media types.
func (b *Builder) Accept(types ...string) *Builder {
	b.accept = append(b.accept, types...)
	return b
}

// Secure sets the secure-transport requirement.
func (b *Builder) Secure(mode SecureMode) *Builder {
	b.secure = mode
	return b
}

// Constraint requires the named context variable to match the given
// regular expression fragment. Constraints are checked in declaration
// order.
func (b *Builder) Constraint(name, fragment string) *Builder {
	b.constraints = append(b.constraints, rawConstraint{name: name, fragment: fragment})
	return b
}

// Predicate installs the custom-match hook.
func (b *Builder) Predicate(p Predicate) *Builder {
	b.predicate = p
	return b
}

// Wildcard names the trailing catch-all parameter. The token with this
// name compiles to a greedy capture and always resolves to an ordered
// []string.
func (b *Builder) Wildcard(name string) *Builder {
	b.wildcard = name
	return b
}

// Routable sets whether the route may match incoming requests at all.
// Non-routable routes exist only as named entries for the surrounding
// system and fail every attempt.
func (b *Builder) Routable(routable bool) *Builder {
	b.routable = routable
	return b
}

// Logger sets the structured logger used by Match. Defaults to a nop.
func (b *Builder) Logger(l observability.Logger) *Builder {
	if l != nil {
		b.logger = l
	}
	return b
}

// Metrics sets the Prometheus match metrics recorded by Match.
func (b *Builder) Metrics(m *observability.MatchMetrics) *Builder {
	b.metrics = m
	return b
}

// Tracer sets the tracer Match records a span on per attempt.
func (b *Builder) Tracer(t trace.Tracer) *Builder {
	b.tracer = t
	return b
}

// Build compiles the path pattern, the content-negotiation matcher,
// and every context constraint, and returns the immutable Route. All
// configuration faults surface here as hard errors; once Build
// succeeds, matching can no longer fail on pattern syntax.
func (b *Builder) Build() (*Route, error) {
	compiled, err := pattern.Compile(b.template, b.tokens, b.wildcard)
	if err != nil {
		return nil, err
	}

	accept, err := negotiate.NewMatcher(b.accept)
	if err != nil {
		return nil, fmt.Errorf("route %q: %w", b.name, err)
	}

	constraints := make([]constraint, 0, len(b.constraints))
	for _, rc := range b.constraints {
		re, err := regexp.Compile(fmt.Sprintf("^(?P<%s>%s)$", rc.name, rc.fragment))
		if err != nil {
			return nil, &ConstraintError{Variable: rc.name, Fragment: rc.fragment, Cause: err}
		}
		constraints = append(constraints, constraint{name: rc.name, re: re})
	}

	methods := make(map[string]struct{}, len(b.methods))
	methodList := make([]string, 0, len(b.methods))
	for _, m := range b.methods {
		m = strings.ToUpper(m)
		if _, ok := methods[m]; ok {
			continue
		}
		methods[m] = struct{}{}
		methodList = append(methodList, m)
	}

	defaults := make(map[string]any, len(b.defaults))
	for k, v := range b.defaults {
		defaults[k] = v
	}

	tokens := make(map[string]string, len(b.tokens))
	for k, v := range b.tokens {
		tokens[k] = v
	}

	acceptTypes := make([]string, len(b.accept))
	copy(acceptTypes, b.accept)

	return &Route{
		def: Definition{
			name:        b.name,
			template:    b.template,
			defaults:    defaults,
			tokens:      tokens,
			methods:     methods,
			methodList:  methodList,
			accept:      acceptTypes,
			secure:      b.secure,
			constraints: constraints,
			predicate:   b.predicate,
			wildcard:    b.wildcard,
			routable:    b.routable,
		},
		compiled: compiled,
		accept:   accept,
		logger:   b.logger,
		metrics:  b.metrics,
		tracer:   b.tracer,
	}, nil
}

// MustBuild is like Build but panics on configuration faults.
func (b *Builder) MustBuild() *Route {
	r, err := b.Build()
	if err != nil {
		panic(err)
	}
	return r
}
