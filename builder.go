package micromodel

import (
	"errors"
	"fmt"
)

// ClassBuilder provides a fluent API for composing a class step by step.
// Errors are collected and reported by Build.
type ClassBuilder struct {
	name     string
	parts    []Part
	methods  Methods
	defaults Attributes
	version  string
	errs     []error
}

// NewClassBuilder creates a builder for a class named name.
func NewClassBuilder(name string) *ClassBuilder {
	return &ClassBuilder{
		name:     name,
		methods:  make(Methods),
		defaults: make(Attributes),
	}
}

// Mixin appends mixins in application order.
func (b *ClassBuilder) Mixin(mixins ...Mixin) *ClassBuilder {
	for _, mx := range mixins {
		b.parts = append(b.parts, mx)
	}
	return b
}

// With appends arbitrary parts, for example a Methods table or CompareWith.
func (b *ClassBuilder) With(parts ...Part) *ClassBuilder {
	b.parts = append(b.parts, parts...)
	return b
}

// Method adds a custom method. Custom methods override mixin methods.
func (b *ClassBuilder) Method(name string, fn Method) *ClassBuilder {
	if fn == nil {
		b.errs = append(b.errs, fmt.Errorf("%w: method %q is nil", ErrInvalidClass, name))
		return b
	}
	b.methods[name] = fn
	return b
}

// Predicate adds a method evaluating a "key op value" expression such as
// "life > 0".
func (b *ClassBuilder) Predicate(name, expr string) *ClassBuilder {
	fn, err := Expr(expr)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("predicate %q: %w", name, err))
		return b
	}
	b.methods[name] = fn
	return b
}

// Default sets a default attribute value.
func (b *ClassBuilder) Default(name string, value any) *ClassBuilder {
	b.defaults[name] = value
	return b
}

// CompareWith replaces the change-detection equality.
func (b *ClassBuilder) CompareWith(eq EqualFunc) *ClassBuilder {
	b.parts = append(b.parts, CompareWith(eq))
	return b
}

// Version labels the class, for example with a definition fingerprint.
func (b *ClassBuilder) Version(v string) *ClassBuilder {
	b.version = v
	return b
}

// Build validates the collected configuration and composes the class.
func (b *ClassBuilder) Build() (*Class, error) {
	if err := errors.Join(b.errs...); err != nil {
		return nil, fmt.Errorf("%s: %w", b.name, err)
	}

	parts := make([]Part, 0, len(b.parts)+3)
	parts = append(parts, b.parts...)
	parts = append(parts, b.methods, Defaults(b.defaults), withVersion(b.version))
	return Compose(b.name, parts...)
}
