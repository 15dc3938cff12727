package typesys

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Error types.
var (
	ErrDuplicateType = errors.New("type already declared")
	ErrInvalidDecl   = errors.New("invalid type declaration")
	ErrUnknownType   = errors.New("unknown type")
	ErrNoSuchMethod  = errors.New("no such method")
	ErrAlreadyBound  = errors.New("go type already bound")
)

// Names of the types every Universe declares.
const (
	ObjectName           = "Object"
	StringName           = "String"
	InvokerReferenceName = "InvokerReference"
)

// Decl declares a new type in a Universe.
type Decl struct {
	Name      string
	Interface bool
	// Extends is the superclass of a class. Nil means the universal base type.
	// Interfaces must leave it nil.
	Extends Type
	// Implements lists the directly implemented interfaces of a class, or the
	// superinterfaces of an interface.
	Implements []Type
	Methods    []MethodDecl
	// GoType optionally binds a Go type to the declared type, so that Go values of
	// that type report it as their runtime type.
	GoType reflect.Type
}

// MethodDecl declares a method of a type.
type MethodDecl struct {
	Name   string
	Params []Type
}

// Universe is a host type system: the set of declared types, the universal base
// type, the primitives with their wrappers, and the bindings from Go types.
// It is safe for concurrent use.
type Universe struct {
	mu     sync.RWMutex
	byName map[string]*descriptor
	byGo   map[reflect.Type]*descriptor

	object     *descriptor
	str        *descriptor
	invokerRef *descriptor
	primitives [numPrimitiveKinds]*descriptor
	wrappers   [numPrimitiveKinds]*descriptor
}

// NewUniverse creates a universe holding the builtin types.
func NewUniverse() *Universe {
	u := &Universe{
		byName: make(map[string]*descriptor),
		byGo:   make(map[reflect.Type]*descriptor),
	}

	u.object = u.register(&descriptor{name: ObjectName, kind: kindClass, goType: reflect.TypeFor[any]()})

	canonical := [numPrimitiveKinds]reflect.Type{
		Boolean: reflect.TypeFor[bool](),
		Byte:    reflect.TypeFor[int8](),
		Char:    reflect.TypeFor[uint16](),
		Short:   reflect.TypeFor[int16](),
		Int:     reflect.TypeFor[int32](),
		Long:    reflect.TypeFor[int64](),
		Float:   reflect.TypeFor[float32](),
		Double:  reflect.TypeFor[float64](),
	}
	for k := PrimitiveKind(0); k < numPrimitiveKinds; k++ {
		u.primitives[k] = u.register(&descriptor{
			name:   k.String(),
			kind:   kindPrimitive,
			prim:   k,
			goType: canonical[k],
		})
		u.wrappers[k] = u.register(&descriptor{
			name:    k.WrapperName(),
			kind:    kindClass,
			prim:    k,
			wrapper: true,
			super:   u.object,
			goType:  canonical[k],
		})
	}

	u.str = u.register(&descriptor{name: StringName, kind: kindClass, super: u.object, goType: reflect.TypeFor[string]()})
	u.invokerRef = u.register(&descriptor{name: InvokerReferenceName, kind: kindInterface})

	for goType, t := range map[reflect.Type]*descriptor{
		reflect.TypeFor[any]():     u.object,
		reflect.TypeFor[bool]():    u.wrappers[Boolean],
		reflect.TypeFor[int8]():    u.wrappers[Byte],
		reflect.TypeFor[uint16]():  u.wrappers[Char],
		reflect.TypeFor[int16]():   u.wrappers[Short],
		reflect.TypeFor[int]():     u.wrappers[Int],
		reflect.TypeFor[int32]():   u.wrappers[Int],
		reflect.TypeFor[int64]():   u.wrappers[Long],
		reflect.TypeFor[float32](): u.wrappers[Float],
		reflect.TypeFor[float64](): u.wrappers[Double],
		reflect.TypeFor[string]():  u.str,
	} {
		u.byGo[goType] = t
	}

	return u
}

func (u *Universe) register(d *descriptor) *descriptor {
	d.universe = u
	u.byName[d.name] = d
	return d
}

// Object returns the universal base type.
func (u *Universe) Object() Type { return u.object }

// StringType returns the builtin string class.
func (u *Universe) StringType() Type { return u.str }

// InvokerReference returns the reserved marker interface implemented by proxies
// for their own bookkeeping. It never appears in a capability set.
func (u *Universe) InvokerReference() Type { return u.invokerRef }

// Primitive returns the primitive type of kind k.
func (u *Universe) Primitive(k PrimitiveKind) Type { return u.primitives[k] }

// Wrapper returns the boxed wrapper class of kind k.
func (u *Universe) Wrapper(k PrimitiveKind) Type { return u.wrappers[k] }

// Lookup returns the type declared under name.
func (u *Universe) Lookup(name string) (Type, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	d, ok := u.byName[name]
	if !ok {
		return nil, false
	}
	return d, true
}

// MustDeclare is like Declare but panics on error.
func (u *Universe) MustDeclare(decl Decl) Type {
	t, err := u.Declare(decl)
	if err != nil {
		panic(err)
	}
	return t
}

// Declare adds a new class or interface to the universe.
func (u *Universe) Declare(decl Decl) (Type, error) {
	if err := u.validate(decl); err != nil {
		return nil, err
	}

	d := &descriptor{
		name:       decl.Name,
		kind:       kindClass,
		interfaces: append([]Type(nil), decl.Implements...),
		goType:     decl.GoType,
	}
	if decl.Interface {
		d.kind = kindInterface
	} else {
		d.super = decl.Extends
		if d.super == nil {
			d.super = u.object
		}
	}

	methods := append([]MethodDecl(nil), decl.Methods...)
	d.declare = func(self *descriptor) []*Method {
		out := make([]*Method, 0, len(methods))
		for _, md := range methods {
			out = append(out, NewMethod(self, md.Name, md.Params...))
		}
		return out
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if _, ok := u.byName[decl.Name]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateType, decl.Name)
	}
	if decl.GoType != nil {
		if bound, ok := u.byGo[decl.GoType]; ok {
			return nil, fmt.Errorf("%w: %s to %s", ErrAlreadyBound, decl.GoType, bound.name)
		}
		u.byGo[decl.GoType] = d
	}

	return u.register(d), nil
}

func (u *Universe) validate(decl Decl) error {
	if decl.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidDecl)
	}

	if decl.Extends != nil {
		switch {
		case decl.Interface:
			return fmt.Errorf("%w: interface %s cannot extend a class", ErrInvalidDecl, decl.Name)
		case decl.Extends.IsInterface() || decl.Extends.IsPrimitive():
			return fmt.Errorf("%w: %s cannot extend %s", ErrInvalidDecl, decl.Name, decl.Extends.Name())
		case decl.Extends.Universe() != u:
			return fmt.Errorf("%w: %s extends a type of another universe", ErrInvalidDecl, decl.Name)
		}
		if d, ok := decl.Extends.(*descriptor); ok && d.wrapper {
			return fmt.Errorf("%w: %s cannot extend %s", ErrInvalidDecl, decl.Name, d.name)
		}
	}

	seen := make(map[Type]struct{}, len(decl.Implements))
	for _, i := range decl.Implements {
		if i == nil || !i.IsInterface() {
			return fmt.Errorf("%w: %s implements a non-interface type %v", ErrInvalidDecl, decl.Name, i)
		}
		if i.Universe() != u {
			return fmt.Errorf("%w: %s implements a type of another universe", ErrInvalidDecl, decl.Name)
		}
		if _, ok := seen[i]; ok {
			return fmt.Errorf("%w: %s implements %s twice", ErrInvalidDecl, decl.Name, i.Name())
		}
		seen[i] = struct{}{}
	}

	for _, m := range decl.Methods {
		if m.Name == "" {
			return fmt.Errorf("%w: %s declares a method without a name", ErrInvalidDecl, decl.Name)
		}
		for _, p := range m.Params {
			if p == nil {
				return fmt.Errorf("%w: %s.%s has a nil parameter type", ErrInvalidDecl, decl.Name, m.Name)
			}
		}
		if decl.GoType == nil {
			continue
		}
		if _, ok := decl.GoType.MethodByName(m.Name); !ok {
			return fmt.Errorf("%w: go type %s has no method %s", ErrInvalidDecl, decl.GoType, m.Name)
		}
	}

	return nil
}

// Bind makes Go values of goType report t as their runtime type.
func (u *Universe) Bind(goType reflect.Type, t Type) error {
	d, ok := t.(*descriptor)
	if !ok || d.universe != u {
		return fmt.Errorf("%w: %v", ErrUnknownType, t)
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if bound, ok := u.byGo[goType]; ok {
		return fmt.Errorf("%w: %s to %s", ErrAlreadyBound, goType, bound.name)
	}
	u.byGo[goType] = d
	if d.goType == nil {
		d.goType = goType
	}

	return nil
}

// GoInterfaces returns the interfaces bound to Go interface types, sorted by name.
// Such an interface is implemented structurally by every Go type whose method set
// satisfies it.
func (u *Universe) GoInterfaces() []Type {
	u.mu.RLock()
	defer u.mu.RUnlock()

	seen := make(map[*descriptor]struct{})
	out := make([]Type, 0)
	for _, d := range u.byGo {
		if _, ok := seen[d]; ok || !d.structural() {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })

	return out
}

// TypeOf returns the runtime type of v, or nil when v is nil. Values implementing
// Typed report their own type. Go values of unbound types get an opaque class
// extending the universal base type whose methods mirror the Go method set.
func (u *Universe) TypeOf(v any) Type {
	if v == nil {
		return nil
	}
	if t, ok := v.(Typed); ok {
		return t.RuntimeType()
	}
	return u.typeFor(reflect.TypeOf(v), false)
}

// ParamTypeFor returns the type used for a Go parameter of type goType. Go basic
// kinds map to primitives, since Go parameters of those kinds can never be nil.
func (u *Universe) ParamTypeFor(goType reflect.Type) Type {
	return u.typeFor(goType, true)
}

func (u *Universe) typeFor(rt reflect.Type, param bool) Type {
	if param && rt.PkgPath() == "" {
		if k, ok := goKinds[rt.Kind()]; ok {
			return u.primitives[k]
		}
	}

	u.mu.RLock()
	d, ok := u.byGo[rt]
	u.mu.RUnlock()
	if ok {
		return d
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if d, ok := u.byGo[rt]; ok {
		return d
	}

	d = &descriptor{
		name:    rt.String(),
		kind:    kindClass,
		super:   u.object,
		goType:  rt,
		declare: u.goMethods(rt),
	}
	if rt.Kind() == reflect.Interface {
		d.kind = kindInterface
		d.super = nil
	}
	d.universe = u
	u.byGo[rt] = d
	if _, taken := u.byName[d.name]; !taken {
		u.byName[d.name] = d
	}

	return d
}

// goMethods derives the declared methods of an opaque type from its Go method set.
func (u *Universe) goMethods(rt reflect.Type) func(self *descriptor) []*Method {
	return func(self *descriptor) []*Method {
		receiver := 1
		if rt.Kind() == reflect.Interface {
			receiver = 0
		}

		methods := make([]*Method, 0, rt.NumMethod())
		for i := 0; i < rt.NumMethod(); i++ {
			gm := rt.Method(i)
			params := make([]Type, 0, gm.Type.NumIn()-receiver)
			for j := receiver; j < gm.Type.NumIn(); j++ {
				params = append(params, u.ParamTypeFor(gm.Type.In(j)))
			}
			methods = append(methods, NewMethod(self, gm.Name, params...))
		}
		return methods
	}
}
