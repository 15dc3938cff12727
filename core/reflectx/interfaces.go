package reflectx

import (
	"reflect"
	"sort"

	"github.com/anoideaopen/hotswap/core/typesys"
)

// Set is a set of types.
type Set map[typesys.Type]struct{}

// Add inserts t into the set.
func (s Set) Add(t typesys.Type) { s[t] = struct{}{} }

// Has reports whether t is in the set.
func (s Set) Has(t typesys.Type) bool {
	_, ok := s[t]
	return ok
}

// Slice returns the members sorted by name.
func (s Set) Slice() []typesys.Type {
	out := make([]typesys.Type, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// AllInterfaces returns every interface implemented by the runtime types of the given
// values. Nil values are skipped. The set may be empty.
func AllInterfaces(u *typesys.Universe, values ...any) Set {
	interfaces := make(Set)
	for _, v := range values {
		if t := u.TypeOf(v); t != nil {
			collectInterfaces(t, interfaces)
			collectGoInterfaces(t, interfaces)
		}
	}
	delete(interfaces, u.InvokerReference())
	return interfaces
}

// InterfacesOf returns every interface of the given type. For a class these are the
// interfaces implemented anywhere along its superclass chain, for an interface its
// superinterfaces and the interface itself. The set may be empty.
func InterfacesOf(t typesys.Type) Set {
	interfaces := make(Set)
	if t == nil {
		return interfaces
	}
	collectInterfaces(t, interfaces)
	collectGoInterfaces(t, interfaces)
	delete(interfaces, t.Universe().InvokerReference())
	return interfaces
}

// collectInterfaces walks the superclass chain, since a type only lists the
// interfaces it declares itself. Interfaces already in the set are not expanded
// again, so shared superinterfaces are visited once.
func collectInterfaces(t typesys.Type, interfaces Set) {
	if t.IsInterface() {
		interfaces.Add(t)
	}
	for ; t != nil; t = t.Superclass() {
		for _, implemented := range t.Interfaces() {
			if !interfaces.Has(implemented) {
				collectInterfaces(implemented, interfaces)
			}
		}
	}
}

// collectGoInterfaces adds the Go-bound interfaces the Go type of t satisfies
// without declaring them, since instance checks accept those too.
func collectGoInterfaces(t typesys.Type, interfaces Set) {
	goType := t.GoType()
	if t.IsInterface() || goType == nil || goType.Kind() == reflect.Interface {
		return
	}
	for _, i := range t.Universe().GoInterfaces() {
		if !interfaces.Has(i) && i.IsAssignableFrom(t) {
			collectInterfaces(i, interfaces)
		}
	}
}
