// Package negotiate compares an Accept-style request header against a
// route's configured acceptable media types.
//
// The policy is deliberately simple: a literal */* anywhere in the
// header satisfies any configuration, and the first configured type
// found in the header wins unless that entry carries the literal
// quality value 0.0, which marks it explicitly excluded. Quality
// ordering beyond the 0.0 exclusion is ignored.
package negotiate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Matcher holds the precompiled entry expressions for a route's
// acceptable media types. It is immutable and safe for concurrent use.
type Matcher struct {
	types   []string
	entries []*regexp.Regexp
}

// NewMatcher precompiles a matcher for the given acceptable types.
// Each type must be of the form type/subtype. An empty list yields a
// matcher that accepts every header.
func NewMatcher(acceptTypes []string) (*Matcher, error) {
	m := &Matcher{
		types:   make([]string, 0, len(acceptTypes)),
		entries: make([]*regexp.Regexp, 0, len(acceptTypes)),
	}
	for _, t := range acceptTypes {
		main, sub, ok := strings.Cut(t, "/")
		if !ok || main == "" || sub == "" {
			return nil, fmt.Errorf("negotiate: media type %q is not of the form type/subtype", t)
		}
		// Matches "type/subtype" or "type/*", optionally followed by a
		// quality parameter whose value is captured.
		expr := fmt.Sprintf(`(?i)%s/(?:%s|\*)(?:;q=([0-9.]+))?`,
			regexp.QuoteMeta(main), regexp.QuoteMeta(sub))
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("negotiate: media type %q: %w", t, err)
		}
		m.types = append(m.types, t)
		m.entries = append(m.entries, re)
	}
	return m, nil
}

// Accepts reports whether the request's accept header satisfies the
// configured types. An absent header always passes, as does a matcher
// with no configured types.
func (m *Matcher) Accepts(header string) bool {
	if m == nil || len(m.entries) == 0 || header == "" {
		return true
	}

	h := stripSpace(header)
	if strings.Contains(h, "*/*") {
		return true
	}

	for _, re := range m.entries {
		sub := re.FindStringSubmatch(h)
		if sub == nil {
			continue
		}
		if sub[1] == "0.0" {
			// Explicitly excluded by the client.
			continue
		}
		return true
	}
	return false
}

// Types returns the configured acceptable media types.
func (m *Matcher) Types() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.types))
	copy(out, m.types)
	return out
}

// stripSpace removes all whitespace from s.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
