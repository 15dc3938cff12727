// Package typesys models the host type system that proxies are built over.
//
// Go has no class inheritance and reflection cannot recover how an interface was
// composed, so the hierarchy is declared explicitly in a [Universe]: classes with a
// single superclass, interfaces with superinterfaces, methods with ordered parameter
// types, and primitives with their boxed wrappers. Go types are bound to declared
// types so that a Go value reports its runtime [Type] through [Universe.TypeOf].
//
// # Example
//
//	u := typesys.NewUniverse()
//	animal := u.MustDeclare(typesys.Decl{
//	    Name:      "zoo.Animal",
//	    Interface: true,
//	    Methods:   []typesys.MethodDecl{{Name: "Speak"}},
//	})
//	u.MustDeclare(typesys.Decl{
//	    Name:       "zoo.Dog",
//	    Implements: []typesys.Type{animal},
//	    Methods:    []typesys.MethodDecl{{Name: "Speak"}},
//	    GoType:     reflect.TypeOf(Dog{}),
//	})
//
//	animal.IsInstance(Dog{}) // true
//
// Go values of types never declared still get a runtime type: an opaque class
// extending [Universe.Object] whose methods mirror the Go method set.
package typesys
