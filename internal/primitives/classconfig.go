// ClassConfig is the declarative form of a composed class, as read from a
// class definition file. Validation ensures a name, unique non-empty mixin
// names, and non-empty predicate expressions.

package primitives

import (
	"errors"
	"fmt"
	"strings"
)

// ClassConfig defines a class by mixin names, predicate methods and defaults.
type ClassConfig struct {
	Version    string            `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
	Name       string            `json:"name" yaml:"name" toml:"name"`
	Mixins     []string          `json:"mixins" yaml:"mixins" toml:"mixins"`
	Predicates map[string]string `json:"predicates,omitempty" yaml:"predicates,omitempty" toml:"predicates,omitempty"`
	Defaults   map[string]any    `json:"defaults,omitempty" yaml:"defaults,omitempty" toml:"defaults,omitempty"`
}

// Validate validates the class configuration:
// - Non-empty Name
// - Mixin names non-empty and unique
// - Predicate names and expressions non-empty
// - Default attribute names non-empty
func (c *ClassConfig) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("class name is required")
	}

	seen := make(map[string]bool, len(c.Mixins))
	for i, m := range c.Mixins {
		if strings.TrimSpace(m) == "" {
			return fmt.Errorf("mixin %d has an empty name", i)
		}
		if seen[m] {
			return fmt.Errorf("mixin %q listed more than once", m)
		}
		seen[m] = true
	}

	for name, expr := range c.Predicates {
		if strings.TrimSpace(name) == "" {
			return errors.New("predicate name cannot be empty")
		}
		if strings.TrimSpace(expr) == "" {
			return fmt.Errorf("predicate %q has an empty expression", name)
		}
	}

	for name := range c.Defaults {
		if strings.TrimSpace(name) == "" {
			return errors.New("default attribute name cannot be empty")
		}
	}

	return nil
}
