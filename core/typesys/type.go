package typesys

import (
	"fmt"
	"reflect"
	"sync"
)

// Type describes a type of the host type system. Types are unique within their
// Universe, so two Type values denote the same type exactly when they are equal.
type Type interface {
	// Name returns the fully qualified type name.
	Name() string
	// IsInterface reports whether the type is an interface.
	IsInterface() bool
	// IsPrimitive reports whether the type is one of the primitive types.
	IsPrimitive() bool
	// Superclass returns the direct superclass, or nil for the universal base type,
	// interfaces and primitives.
	Superclass() Type
	// Interfaces returns the interfaces the type declares directly. For an interface
	// these are its superinterfaces.
	Interfaces() []Type
	// Methods returns the public methods of the type, including inherited ones, in
	// declaration order: own methods first, then the superclass chain, then the
	// interfaces. An inherited method overridden with the same signature is listed once.
	Methods() []*Method
	// Method returns the method with exactly the given name and parameter types.
	Method(name string, params ...Type) (*Method, error)
	// IsInstance reports whether v is a non-nil value of this type or one of its subtypes.
	IsInstance(v any) bool
	// IsAssignableFrom reports whether a value of type other can be used where this
	// type is expected.
	IsAssignableFrom(other Type) bool
	// GoType returns the Go type bound to this type, if any.
	GoType() reflect.Type
	// Universe returns the universe the type belongs to.
	Universe() *Universe

	fmt.Stringer
}

// Typed is implemented by values that know their own runtime type, such as proxies.
type Typed interface {
	RuntimeType() Type
}

type kind int

const (
	kindClass kind = iota
	kindInterface
	kindPrimitive
)

type descriptor struct {
	universe   *Universe
	name       string
	kind       kind
	prim       PrimitiveKind
	wrapper    bool
	super      Type
	interfaces []Type
	goType     reflect.Type

	// declare produces the methods declared by the type itself. It runs once, on
	// first use, so that types derived from Go method sets may refer to themselves.
	declare     func(self *descriptor) []*Method
	methodsOnce sync.Once
	methods     []*Method
}

func (d *descriptor) Name() string         { return d.name }
func (d *descriptor) String() string       { return d.name }
func (d *descriptor) IsInterface() bool    { return d.kind == kindInterface }
func (d *descriptor) IsPrimitive() bool    { return d.kind == kindPrimitive }
func (d *descriptor) Superclass() Type     { return d.super }
func (d *descriptor) GoType() reflect.Type { return d.goType }
func (d *descriptor) Universe() *Universe  { return d.universe }

func (d *descriptor) Interfaces() []Type {
	return append([]Type(nil), d.interfaces...)
}

func (d *descriptor) Methods() []*Method {
	d.methodsOnce.Do(func() {
		var methods []*Method
		if d.declare != nil {
			methods = d.declare(d)
		}

		inherit := func(from Type) {
			for _, m := range from.Methods() {
				if !containsSignature(methods, m) {
					methods = append(methods, m)
				}
			}
		}
		if d.super != nil {
			inherit(d.super)
		}
		for _, i := range d.interfaces {
			inherit(i)
		}

		d.methods = methods
	})

	return append([]*Method(nil), d.methods...)
}

func (d *descriptor) Method(name string, params ...Type) (*Method, error) {
	probe := &Method{name: name, params: params}
	for _, m := range d.Methods() {
		if m.sameSignature(probe) {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %s.%s", ErrNoSuchMethod, d.name, probe.Signature())
}

func (d *descriptor) IsInstance(v any) bool {
	if v == nil || d.kind == kindPrimitive {
		return false
	}
	return d.IsAssignableFrom(d.universe.TypeOf(v))
}

func (d *descriptor) IsAssignableFrom(other Type) bool {
	if other == nil {
		return false
	}
	if Type(d) == other {
		return true
	}
	if d.kind == kindPrimitive || other.IsPrimitive() {
		return false
	}
	if d == d.universe.object {
		return true
	}
	if isSubtype(other, d) {
		return true
	}

	// A Go interface binding is also satisfied structurally by any Go type that
	// implements it, as the Go compiler would accept the assignment.
	if d.structural() {
		og := other.GoType()
		return og != nil && og.Kind() != reflect.Interface && og.Implements(d.goType)
	}
	return false
}

func (d *descriptor) structural() bool {
	return d.kind == kindInterface && d.goType != nil && d.goType.Kind() == reflect.Interface
}

// isSubtype walks the superclass chain of t and, when target is an interface, the
// interfaces declared at every level.
func isSubtype(t Type, target *descriptor) bool {
	for c := t; c != nil; c = c.Superclass() {
		if c == Type(target) {
			return true
		}
		if target.kind != kindInterface {
			continue
		}
		for _, i := range c.Interfaces() {
			if isSubtype(i, target) {
				return true
			}
		}
	}
	return false
}

func containsSignature(methods []*Method, m *Method) bool {
	for _, existing := range methods {
		if existing.sameSignature(m) {
			return true
		}
	}
	return false
}
