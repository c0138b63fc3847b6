package micromodel

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/comalice/micromodel/internal/extensibility"
	"github.com/comalice/micromodel/internal/primitives"
	"github.com/comalice/micromodel/internal/production"
)

// Method is an instance method in a class's method table.
type Method func(m *Model, args ...any) (any, error)

// Methods is a table of custom instance methods. Passed to Compose, its
// entries override every mixin method of the same name.
type Methods map[string]Method

// Mixin contributes one capability to a class: an initializer run at
// construction and a set of methods.
type Mixin struct {
	// Name is the capability name, unique within a class.
	Name string
	// Requires lists capabilities that must be applied before this one.
	Requires []string
	// Init runs at construction, in mixin order, before attributes are loaded.
	Init    func(m *Model) error
	Methods Methods
}

// EqualFunc reports whether two attribute values are equal for change
// detection.
type EqualFunc = primitives.EqualFunc

// Equal is the default EqualFunc: == for comparable values, structural
// comparison for slices and maps.
func Equal(a, b any) bool { return primitives.Equal(a, b) }

// DeepEqual is an EqualFunc that also compares pointers structurally.
func DeepEqual(a, b any) bool { return primitives.DeepEqual(a, b) }

// Part is one argument to Compose: a Mixin, a Methods table, or an option
// such as CompareWith or Defaults.
type Part interface {
	applyTo(s *classSpec)
}

type classSpec struct {
	mixins   []Mixin
	methods  []Methods
	equal    EqualFunc
	defaults Attributes
	version  string
}

func (mx Mixin) applyTo(s *classSpec)   { s.mixins = append(s.mixins, mx) }
func (ms Methods) applyTo(s *classSpec) { s.methods = append(s.methods, ms) }

type option func(s *classSpec)

func (o option) applyTo(s *classSpec) { o(s) }

// CompareWith replaces the class's change-detection equality.
func CompareWith(eq EqualFunc) Part {
	return option(func(s *classSpec) { s.equal = eq })
}

// Defaults sets attribute values every instance starts with. Initial
// attributes passed to New override them.
func Defaults(attrs Attributes) Part {
	return option(func(s *classSpec) {
		if s.defaults == nil {
			s.defaults = make(Attributes, len(attrs))
		}
		for k, v := range attrs {
			s.defaults[k] = v
		}
	})
}

func withVersion(v string) Part {
	return option(func(s *classSpec) { s.version = v })
}

// Class is a composed model type. Create one with Compose or ClassBuilder.
type Class struct {
	name       string
	version    string
	mixins     []Mixin
	caps       map[string]bool
	table      map[string]Method
	sources    map[string]string
	overridden map[string][]string
	equal      EqualFunc
	defaults   Attributes
}

// Compose builds a class named name from parts. Mixins are applied in order;
// Methods tables are applied after every mixin. name is for diagnostics only.
//
// Compose fails when a capability is applied twice or when a mixin's Requires
// names a capability not applied before it.
func Compose(name string, parts ...Part) (*Class, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: empty class name", ErrInvalidClass)
	}

	var spec classSpec
	for _, p := range parts {
		if p != nil {
			p.applyTo(&spec)
		}
	}

	c := &Class{
		name:       name,
		version:    spec.version,
		caps:       make(map[string]bool),
		table:      make(map[string]Method),
		sources:    make(map[string]string),
		overridden: make(map[string][]string),
		equal:      spec.equal,
		defaults:   spec.defaults,
	}

	for _, mx := range spec.mixins {
		if mx.Name == "" {
			return nil, fmt.Errorf("%s: %w: mixin without a capability name", name, ErrInvalidClass)
		}
		if c.caps[mx.Name] {
			return nil, fmt.Errorf("%s: %w: %q", name, ErrDuplicateCapability, mx.Name)
		}
		for _, req := range mx.Requires {
			if !c.caps[req] {
				return nil, fmt.Errorf("%s: mixin %q: %w: %q", name, mx.Name, ErrMissingCapability, req)
			}
		}
		c.caps[mx.Name] = true
		c.mixins = append(c.mixins, mx)
		for mname, fn := range mx.Methods {
			c.define(mname, fn, mx.Name)
		}
	}

	for _, ms := range spec.methods {
		for mname, fn := range ms {
			c.define(mname, fn, production.MethodSource)
		}
	}

	return c, nil
}

// MustCompose is like Compose but panics on error. It simplifies package-level
// class variables.
func MustCompose(name string, parts ...Part) *Class {
	c, err := Compose(name, parts...)
	if err != nil {
		panic(err)
	}
	return c
}

// define installs fn under name, last writer wins.
func (c *Class) define(name string, fn Method, source string) {
	if fn == nil {
		return
	}
	if prev, exists := c.sources[name]; exists {
		c.overridden[name] = append(c.overridden[name], prev)
	}
	c.table[name] = fn
	c.sources[name] = source
}

// New constructs an instance: mixin initializers run in order, then defaults
// and a copy of initial are loaded. Loading attributes does not emit events.
func (c *Class) New(initial Attributes) (*Model, error) {
	m := &Model{
		id:    uuid.New(),
		class: c,
		store: primitives.NewStore(c.equal),
	}
	for _, mx := range c.mixins {
		if mx.Init == nil {
			continue
		}
		if err := mx.Init(m); err != nil {
			return nil, fmt.Errorf("%s: init %q: %w", c.name, mx.Name, err)
		}
	}
	m.store.Load(c.defaults)
	m.store.Load(initial)
	return m, nil
}

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// String returns the class name.
func (c *Class) String() string { return c.name }

// Version returns the definition version, empty for classes built in code
// without one.
func (c *Class) Version() string { return c.version }

// Has reports whether the class was composed with the named capability.
func (c *Class) Has(capability string) bool { return c.caps[capability] }

// Capabilities returns capability names in application order.
func (c *Class) Capabilities() []string {
	names := make([]string, len(c.mixins))
	for i, mx := range c.mixins {
		names[i] = mx.Name
	}
	return names
}

// Methods returns the names in the merged method table, sorted.
func (c *Class) Methods() []string {
	names := make([]string, 0, len(c.table))
	for name := range c.table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MethodSource returns the capability that provides name, "methods" for
// entries of a Methods table, or "" when the class has no such method.
func (c *Class) MethodSource(name string) string { return c.sources[name] }

// ClassDescriptor is the introspection view returned by Class.Describe.
type ClassDescriptor = production.Descriptor

// Describe returns the class's capabilities and merged method table.
func (c *Class) Describe() ClassDescriptor {
	d := ClassDescriptor{Name: c.name, Version: c.version}
	for _, mx := range c.mixins {
		info := production.CapabilityInfo{
			Name:     mx.Name,
			Requires: append([]string(nil), mx.Requires...),
		}
		for mname := range mx.Methods {
			info.Methods = append(info.Methods, mname)
		}
		sort.Strings(info.Methods)
		d.Capabilities = append(d.Capabilities, info)
	}
	for _, name := range c.Methods() {
		d.Methods = append(d.Methods, production.MethodInfo{
			Name:       name,
			Source:     c.sources[name],
			Overridden: append([]string(nil), c.overridden[name]...),
		})
	}
	return d
}

// DOT renders the class composition as Graphviz DOT source.
func (c *Class) DOT() string {
	v := &production.DefaultVisualizer{}
	return v.ExportDOT(c.Describe())
}

// JSON renders the class descriptor as indented JSON.
func (c *Class) JSON() ([]byte, error) {
	v := &production.DefaultVisualizer{}
	return v.ExportJSON(c.Describe())
}

// Predicate adapts a boolean function over the model to a Method.
func Predicate(fn func(m *Model) bool) Method {
	return func(m *Model, _ ...any) (any, error) {
		return fn(m), nil
	}
}

var expressions = mustEvaluator()

func mustEvaluator() *extensibility.ExpressionEvaluator {
	e, err := extensibility.NewExpressionEvaluator(extensibility.DefaultCacheSize)
	if err != nil {
		panic(err)
	}
	return e
}

// Expr compiles a "key op value" expression such as "life > 0" into a
// predicate Method. A non-numeric attribute under an ordering operator makes
// the method fail with an *AttributeError.
func Expr(expr string) (Method, error) {
	x, err := expressions.Compile(expr)
	if err != nil {
		return nil, err
	}
	return func(m *Model, _ ...any) (any, error) {
		ok, err := x.Eval(m.Lookup)
		if errors.Is(err, extensibility.ErrNotNumeric) {
			return false, &AttributeError{Name: x.Key, Err: err}
		}
		return ok, err
	}, nil
}
