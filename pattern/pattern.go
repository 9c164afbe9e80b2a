// Package pattern compiles path templates with named tokens into
// immutable, reusable matching automata.
//
// A template mixes literal text with {name} placeholders. Each
// placeholder becomes a named capture group; a per-token regular
// expression fragment can override the default "one or more non-slash
// characters" pattern. A token designated as the wildcard compiles to
// a greedy capture that consumes the remainder of the path.
package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// defaultTokenPattern matches a single path segment.
	defaultTokenPattern = `[^/]+`

	// wildcardTokenPattern greedily consumes the rest of the path.
	wildcardTokenPattern = `.*`
)

// tokenNameRe restricts token names to what the regexp engine accepts
// as capture group names.
var tokenNameRe = regexp.MustCompile(`^\w+$`)

// Compiled is an anchored matching automaton derived from a path
// template. It holds no mutable state: a single Compiled may be
// evaluated concurrently from any number of goroutines, and every
// evaluation returns a capture map wholly owned by the caller.
type Compiled struct {
	template string
	re       *regexp.Regexp
	names    []string
}

// Compile turns a path template into a Compiled automaton.
//
// tokenPatterns overrides the default segment pattern per token name.
// wildcardName, when non-empty, designates the token that captures the
// remainder of the path; unless an explicit override exists for it, it
// compiles to a greedy pattern spanning slashes.
//
// Compilation is deterministic and is the only place pattern syntax
// errors surface; they are reported as *SyntaxError.
func Compile(template string, tokenPatterns map[string]string, wildcardName string) (*Compiled, error) {
	idxs, err := braceIndices(template)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteByte('^')

	names := make([]string, 0, len(idxs)/2)
	seen := make(map[string]bool, len(idxs)/2)

	var end int
	for i := 0; i < len(idxs); i += 2 {
		literal := template[end:idxs[i]]
		end = idxs[i+1]
		name := template[idxs[i]+1 : end-1]
		if !tokenNameRe.MatchString(name) {
			return nil, &SyntaxError{
				Template: template,
				Message:  fmt.Sprintf("invalid token name %q", name),
			}
		}

		frag, ok := tokenPatterns[name]
		if !ok {
			frag = defaultTokenPattern
			if name == wildcardName {
				frag = wildcardTokenPattern
			}
		}

		sb.WriteString(regexp.QuoteMeta(literal))
		fmt.Fprintf(&sb, "(?P<%s>%s)", name, frag)
		names = append(names, name)
		seen[name] = true
	}
	sb.WriteString(regexp.QuoteMeta(template[end:]))
	sb.WriteByte('$')

	// Every override must refer to a token that exists in the template.
	for name := range tokenPatterns {
		if !seen[name] {
			return nil, &SyntaxError{
				Template: template,
				Message:  fmt.Sprintf("token pattern refers to unknown token %q", name),
			}
		}
	}

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, &SyntaxError{
			Template: template,
			Message:  "invalid token pattern",
			Cause:    err,
		}
	}

	return &Compiled{template: template, re: re, names: names}, nil
}

// MustCompile is like Compile but panics on error. It simplifies the
// declaration of routes known to be valid at program start.
func MustCompile(template string, tokenPatterns map[string]string, wildcardName string) *Compiled {
	c, err := Compile(template, tokenPatterns, wildcardName)
	if err != nil {
		panic(err)
	}
	return c
}

// Evaluate matches path against the automaton. On success it returns a
// freshly allocated map of every named capture, including captures
// that matched the empty string. The returned map is owned by the
// caller; Evaluate never retains or mutates shared state.
func (c *Compiled) Evaluate(path string) (map[string]string, bool) {
	m := c.re.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}

	captures := make(map[string]string, len(c.names))
	for i, name := range c.re.SubexpNames() {
		if name != "" && i < len(m) {
			captures[name] = m[i]
		}
	}
	return captures, true
}

// Names returns the token names in template order.
func (c *Compiled) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Template returns the original path template.
func (c *Compiled) Template() string {
	return c.template
}

// String returns the underlying anchored expression, mainly for
// diagnostics.
func (c *Compiled) String() string {
	return c.re.String()
}

// braceIndices returns the start/end offsets of every top-level {...}
// group in s, or a *SyntaxError when the braces are unbalanced.
func braceIndices(s string) ([]int, error) {
	var level, idx int
	var idxs []int
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			if level++; level == 1 {
				idx = i
			}
		case '}':
			if level--; level == 0 {
				idxs = append(idxs, idx, i+1)
			} else if level < 0 {
				return nil, &SyntaxError{
					Template: s,
					Message:  "unbalanced braces",
				}
			}
		}
	}
	if level != 0 {
		return nil, &SyntaxError{
			Template: s,
			Message:  "unbalanced braces",
		}
	}
	return idxs, nil
}
