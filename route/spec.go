package route

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"gopkg.in/yaml.v3"
)

// Spec is the declarative form of a single route definition, the
// record a configuration layer feeds to the builder. Field names
// mirror the builder setters; the custom predicate has no declarative
// form and is installed programmatically.
type Spec struct {
	Name     string            `yaml:"name" json:"name"`
	Path     string            `yaml:"path" json:"path"`
	Values   map[string]string `yaml:"values,omitempty" json:"values,omitempty"`
	Tokens   map[string]string `yaml:"tokens,omitempty" json:"tokens,omitempty"`
	Methods  []string          `yaml:"method,omitempty" json:"method,omitempty"`
	Accept   []string          `yaml:"accept,omitempty" json:"accept,omitempty"`
	Secure   string            `yaml:"secure,omitempty" json:"secure,omitempty"`
	Server   map[string]string `yaml:"server,omitempty" json:"server,omitempty"`
	Wildcard string            `yaml:"wildcard,omitempty" json:"wildcard,omitempty"`
	Routable *bool             `yaml:"routable,omitempty" json:"routable,omitempty"`
}

// Secure spellings accepted in a Spec.
const (
	secureRequired  = "required"
	secureForbidden = "forbidden"
)

// ParseSpec unmarshals a YAML route spec.
func ParseSpec(data []byte) (*Spec, error) {
	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("route spec: %w", err)
	}
	return &s, nil
}

// Validate checks the spec for structural problems before building.
func (s *Spec) Validate() error {
	if s.Name == "" {
		return &ConfigError{Field: "name", Message: "must not be empty"}
	}
	if s.Path == "" {
		return &ConfigError{Field: "path", Message: "must not be empty"}
	}
	switch s.Secure {
	case "", secureRequired, secureForbidden:
	default:
		return &ConfigError{
			Field:   "secure",
			Message: fmt.Sprintf("unknown value %q (want %q or %q)", s.Secure, secureRequired, secureForbidden),
		}
	}
	return nil
}

// Build turns the spec into a Route. It is equivalent to driving the
// builder by hand with the spec's fields.
func (s *Spec) Build() (*Route, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	b := NewBuilder(s.Name, s.Path)
	for k, v := range s.Values {
		b.Default(k, v)
	}
	for k, v := range s.Tokens {
		b.Token(k, v)
	}
	b.Methods(s.Methods...)
	b.Accept(s.Accept...)
	switch s.Secure {
	case secureRequired:
		b.Secure(SecureRequired)
	case secureForbidden:
		b.Secure(SecureForbidden)
	}
	// Sorted so constraint evaluation order is stable across runs.
	names := maps.Keys(s.Server)
	slices.Sort(names)
	for _, name := range names {
		b.Constraint(name, s.Server[name])
	}
	if s.Wildcard != "" {
		b.Wildcard(s.Wildcard)
	}
	if s.Routable != nil {
		b.Routable(*s.Routable)
	}
	return b.Build()
}
