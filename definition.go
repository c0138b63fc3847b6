package micromodel

import (
	"fmt"
	"sort"

	"github.com/comalice/micromodel/internal/core"
	"github.com/comalice/micromodel/internal/primitives"
	"github.com/comalice/micromodel/internal/production"
)

// ClassConfig is the declarative form of a class read from a definition file.
type ClassConfig = primitives.ClassConfig

var mixinRegistry = core.NewRegistry[Mixin]()

func init() {
	for _, mx := range []Mixin{WithModel, WithEventEmitter} {
		if err := mixinRegistry.Register(mx.Name, mx); err != nil {
			panic(err)
		}
	}
}

// RegisterMixin makes mx available to class definitions under mx.Name.
// "model" and "events" are registered already.
func RegisterMixin(mx Mixin) error {
	return mixinRegistry.Register(mx.Name, mx)
}

// RegisteredMixins returns the names usable in a definition's mixin list.
func RegisteredMixins() []string {
	return mixinRegistry.Names()
}

// LoadClass reads a class definition (.yaml, .yml, .toml or .json) and
// composes it. extra parts are applied after the definition's mixins.
//
// Example YAML:
//
//	name: Unit
//	mixins: [model, events]
//	predicates:
//	  isAlive: life > 0
//	defaults:
//	  life: 100
func LoadClass(path string, extra ...Part) (*Class, error) {
	cfg, err := production.LoadClassConfig(path)
	if err != nil {
		return nil, err
	}
	return ClassFromConfig(cfg, extra...)
}

// ClassFromConfig composes a class from a definition. Mixins are resolved by
// name through the registry; the version defaults to a fingerprint of cfg.
func ClassFromConfig(cfg ClassConfig, extra ...Part) (*Class, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidClass, err)
	}

	b := NewClassBuilder(cfg.Name)
	for _, name := range cfg.Mixins {
		mx, err := mixinRegistry.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %q", cfg.Name, ErrUnknownMixin, name)
		}
		b.Mixin(mx)
	}
	b.With(extra...)

	names := make([]string, 0, len(cfg.Predicates))
	for name := range cfg.Predicates {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.Predicate(name, cfg.Predicates[name])
	}

	for k, v := range cfg.Defaults {
		b.Default(k, v)
	}
	b.Version(primitives.ComputeVersion(&cfg))
	return b.Build()
}
