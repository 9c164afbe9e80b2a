// Package predicate builds custom-match hooks from CEL expressions.
//
// A route's custom predicate is an ordinary Go function; this package
// is the declarative alternative for deployments that configure
// predicates as text. Expressions see two variables: "context", the
// request's transport-attribute map, and "captures", the raw captures
// accumulated by the earlier gates.
package predicate

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/gatewaykit/routecore/route"
)

// FromCEL compiles expr into a route.Predicate. Compilation errors are
// configuration faults and are returned; evaluation faults at match
// time indicate a bug in the expression and panic rather than being
// folded into an ordinary non-match.
func FromCEL(expr string) (route.Predicate, error) {
	env, err := cel.NewEnv(
		cel.Variable("context", cel.MapType(cel.StringType, cel.StringType)),
		cel.Variable("captures", cel.MapType(cel.StringType, cel.StringType)),
	)
	if err != nil {
		return nil, fmt.Errorf("predicate: create environment: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("predicate: compile %q: %w", expr, issues.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("predicate: expression %q yields %s, want bool", expr, ast.OutputType())
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("predicate: program %q: %w", expr, err)
	}

	return func(ctx route.Context, captures map[string]string) bool {
		if ctx == nil {
			ctx = route.Context{}
		}
		if captures == nil {
			captures = map[string]string{}
		}
		out, _, err := program.Eval(map[string]any{
			"context":  map[string]string(ctx),
			"captures": captures,
		})
		if err != nil {
			panic(fmt.Sprintf("predicate: eval %q: %v", expr, err))
		}
		result, ok := out.Value().(bool)
		if !ok {
			panic(fmt.Sprintf("predicate: eval %q: non-boolean result %v", expr, out.Value()))
		}
		return result
	}, nil
}

// MustFromCEL is like FromCEL but panics on compilation errors.
func MustFromCEL(expr string) route.Predicate {
	p, err := FromCEL(expr)
	if err != nil {
		panic(err)
	}
	return p
}
