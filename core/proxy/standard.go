package proxy

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/anoideaopen/hotswap/core/delegate"
	"github.com/anoideaopen/hotswap/core/logger"
	"github.com/anoideaopen/hotswap/core/reference"
	"github.com/anoideaopen/hotswap/core/telemetry"
	"github.com/anoideaopen/hotswap/core/typesys"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SwappableName is the name of the interface declared for Swappable in every
// universe a standard factory creates proxies in.
const SwappableName = "hotswap.Swappable"

const proxyClassPrefix = "$Proxy"

// StandardFactory creates proxies backed by a synthesized class of the universe.
type StandardFactory struct {
	u       *typesys.Universe
	log     *logrus.Entry
	tracing *telemetry.TracingHandler
	mode    *delegate.Mode

	tables sync.Map // tableKey -> *delegate.Table
}

type tableKey struct {
	class    typesys.Type
	delegate typesys.Type
}

var _ Factory = (*StandardFactory)(nil)

// NewStandardFactory returns a factory proxying types of u. With a nil universe,
// the universe of the first proxied type is used for each proxy.
func NewStandardFactory(u *typesys.Universe, opts ...Option) *StandardFactory {
	f := &StandardFactory{u: u}
	for _, opt := range opts {
		opt(f)
	}

	if f.log == nil {
		f.log = logrus.NewEntry(logger.Logger())
	}
	if f.tracing == nil {
		f.tracing = telemetry.NewTracingHandler(nil)
	}

	return f
}

// CanProxy reports whether t is an interface of the factory universe other than the
// InvokerReference marker.
func (f *StandardFactory) CanProxy(t typesys.Type) bool {
	if t == nil {
		return false
	}
	u := f.u
	if u == nil {
		u = t.Universe()
	}
	return canProxy(u, t)
}

// CreateProxy returns a proxy implementing every type of the list. Duplicate types
// are proxied once. The initial delegate, unless nil, must be an instance of every
// type in Direct mode and must satisfy every method of the types in Signature mode.
func (f *StandardFactory) CreateProxy(
	types []typesys.Type,
	ref *reference.Reference,
	mode delegate.Mode,
) (Proxy, error) {
	if len(types) == 0 {
		return nil, ErrNoTypes
	}
	if ref == nil {
		return nil, fmt.Errorf("%w: no reference", ErrNilDelegate)
	}

	u := f.u
	if u == nil && types[0] != nil {
		u = types[0].Universe()
	}
	for i, t := range types {
		if !canProxy(u, t) {
			return nil, fmt.Errorf("%w: %v at %d", ErrNotProxyable, t, i)
		}
	}

	if f.mode != nil {
		mode = *f.mode
	}
	if mode != delegate.Direct && mode != delegate.Signature {
		return nil, fmt.Errorf("%w: %d", delegate.ErrUnknownMode, int(mode))
	}

	swappable, err := swappableType(u)
	if err != nil {
		return nil, err
	}

	class, err := proxyClass(u, types, swappable)
	if err != nil {
		return nil, err
	}

	p := &proxy{
		id:        uuid.New(),
		factory:   f,
		class:     class,
		swappable: swappable,
		types:     append([]typesys.Type(nil), types...),
		ref:       ref,
		mode:      mode,
	}

	if err = p.accepts(ref.Get()); err != nil {
		return nil, err
	}

	p.log().WithField("types", typeNames(types)).Debug("proxy created")

	return p, nil
}

// table returns the requirements table of the proxied types of p for the delegate
// type dt. Tables are computed once per proxy class and delegate type.
func (f *StandardFactory) table(p *proxy, dt typesys.Type) (*delegate.Table, error) {
	key := tableKey{class: p.class, delegate: dt}
	if t, ok := f.tables.Load(key); ok {
		return t.(*delegate.Table), nil //nolint:forcetypeassert
	}

	t, err := delegate.NewTable(p.types, dt)
	if err != nil {
		return nil, err
	}

	actual, _ := f.tables.LoadOrStore(key, t)
	return actual.(*delegate.Table), nil //nolint:forcetypeassert
}

func canProxy(u *typesys.Universe, t typesys.Type) bool {
	return t != nil &&
		u != nil &&
		t.Universe() == u &&
		t.IsInterface() &&
		t != u.InvokerReference()
}

func swappableType(u *typesys.Universe) (typesys.Type, error) {
	return declareOnce(u, typesys.Decl{
		Name:      SwappableName,
		Interface: true,
		Methods: []typesys.MethodDecl{
			{Name: "Hotswap", Params: []typesys.Type{u.Object()}},
		},
		GoType: reflect.TypeFor[Swappable](),
	})
}

// proxyClass returns the class implementing types, Swappable and the
// InvokerReference marker. The class is declared on first use and shared by every
// proxy of the same type list.
func proxyClass(u *typesys.Universe, types []typesys.Type, swappable typesys.Type) (typesys.Type, error) {
	implements := make([]typesys.Type, 0, len(types)+2)
	seen := make(map[typesys.Type]struct{}, len(types))
	for _, t := range types {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		implements = append(implements, t)
	}

	name := proxyClassPrefix + "[" + strings.Join(typeNames(implements), ",") + "]"

	if _, ok := seen[swappable]; !ok {
		implements = append(implements, swappable)
	}
	implements = append(implements, u.InvokerReference())

	return declareOnce(u, typesys.Decl{
		Name:       name,
		Implements: implements,
	})
}

func declareOnce(u *typesys.Universe, decl typesys.Decl) (typesys.Type, error) {
	if t, ok := u.Lookup(decl.Name); ok {
		return t, nil
	}

	t, err := u.Declare(decl)
	if errors.Is(err, typesys.ErrDuplicateType) {
		if t, ok := u.Lookup(decl.Name); ok {
			return t, nil
		}
	}

	return t, err
}

func typeNames(types []typesys.Type) []string {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.Name())
	}
	return names
}
