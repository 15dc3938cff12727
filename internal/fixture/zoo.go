// Package fixture declares a small type hierarchy shared by the package tests.
//
//	Animal { Speak() }      Named { Name() }
//	   |      \                 /
//	Walker     Pet ------------'
//	{ Walk(long) } \
//	        \       \
//	         Dog -----'        Cat implements Pet
//	          |
//	        Puppy
//
// Greeter, Robot and Calculator stand outside that hierarchy.
package fixture

import (
	"fmt"
	"reflect"

	"github.com/anoideaopen/hotswap/core/typesys"
)

// Dog barks and walks.
type Dog struct {
	Sound string
}

func (d *Dog) Speak() string {
	if d.Sound == "" {
		return "woof"
	}
	return d.Sound
}

func (d *Dog) Name() string { return "dog" }

func (d *Dog) Walk(steps int64) string { return fmt.Sprintf("walked %d steps", steps) }

// Puppy is a smaller Dog.
type Puppy struct {
	Dog
}

func (p *Puppy) Name() string { return "puppy" }

// Cat is a Pet that does not walk on command.
type Cat struct{}

func (*Cat) Speak() string { return "meow" }

func (*Cat) Name() string { return "cat" }

// Robot greets but is no Animal.
type Robot struct {
	Model string
}

func (r *Robot) Greet(name string) string { return "hello " + name + " from " + r.Model }

func (r *Robot) Speak() string { return "beep" }

// Calculator carries overloaded methods.
type Calculator struct{}

func (*Calculator) Add(v int64) string { return fmt.Sprintf("add %d", v) }

func (*Calculator) Put(v any) string { return fmt.Sprintf("put %v", v) }

func (*Calculator) Fail() error { return fmt.Errorf("calculator failed") }

// Zoo is the declared hierarchy.
type Zoo struct {
	U *typesys.Universe

	Animal  typesys.Type
	Named   typesys.Type
	Pet     typesys.Type
	Walker  typesys.Type
	Greeter typesys.Type

	Dog        typesys.Type
	Puppy      typesys.Type
	Cat        typesys.Type
	Robot      typesys.Type
	Calculator typesys.Type
}

// NewZoo declares the hierarchy in a fresh universe.
func NewZoo() *Zoo {
	u := typesys.NewUniverse()
	z := &Zoo{U: u}

	var (
		str  = u.StringType()
		obj  = u.Object()
		i32  = u.Primitive(typesys.Int)
		i64  = u.Primitive(typesys.Long)
		none = []typesys.Type(nil)
	)

	z.Animal = u.MustDeclare(typesys.Decl{
		Name:      "zoo.Animal",
		Interface: true,
		Methods:   []typesys.MethodDecl{{Name: "Speak", Params: none}},
	})
	z.Named = u.MustDeclare(typesys.Decl{
		Name:      "zoo.Named",
		Interface: true,
		Methods:   []typesys.MethodDecl{{Name: "Name"}},
	})
	z.Pet = u.MustDeclare(typesys.Decl{
		Name:       "zoo.Pet",
		Interface:  true,
		Implements: []typesys.Type{z.Animal, z.Named},
	})
	z.Walker = u.MustDeclare(typesys.Decl{
		Name:       "zoo.Walker",
		Interface:  true,
		Implements: []typesys.Type{z.Animal},
		Methods:    []typesys.MethodDecl{{Name: "Walk", Params: []typesys.Type{i64}}},
	})
	z.Greeter = u.MustDeclare(typesys.Decl{
		Name:      "zoo.Greeter",
		Interface: true,
		Methods:   []typesys.MethodDecl{{Name: "Greet", Params: []typesys.Type{str}}},
	})

	z.Dog = u.MustDeclare(typesys.Decl{
		Name:       "zoo.Dog",
		Implements: []typesys.Type{z.Pet, z.Walker},
		Methods: []typesys.MethodDecl{
			{Name: "Speak"},
			{Name: "Name"},
			{Name: "Walk", Params: []typesys.Type{i64}},
		},
		GoType: reflect.TypeOf(&Dog{}),
	})
	z.Puppy = u.MustDeclare(typesys.Decl{
		Name:    "zoo.Puppy",
		Extends: z.Dog,
		Methods: []typesys.MethodDecl{{Name: "Name"}},
		GoType:  reflect.TypeOf(&Puppy{}),
	})
	z.Cat = u.MustDeclare(typesys.Decl{
		Name:       "zoo.Cat",
		Implements: []typesys.Type{z.Pet},
		Methods:    []typesys.MethodDecl{{Name: "Speak"}, {Name: "Name"}},
		GoType:     reflect.TypeOf(&Cat{}),
	})
	z.Robot = u.MustDeclare(typesys.Decl{
		Name: "zoo.Robot",
		Methods: []typesys.MethodDecl{
			{Name: "Greet", Params: []typesys.Type{str}},
			{Name: "Speak"},
		},
		GoType: reflect.TypeOf(&Robot{}),
	})
	z.Calculator = u.MustDeclare(typesys.Decl{
		Name: "zoo.Calculator",
		Methods: []typesys.MethodDecl{
			{Name: "Add", Params: []typesys.Type{i32}},
			{Name: "Add", Params: []typesys.Type{i64}},
			{Name: "Put", Params: []typesys.Type{obj}},
			{Name: "Put", Params: []typesys.Type{str}},
			{Name: "Fail"},
		},
		GoType: reflect.TypeOf(&Calculator{}),
	})

	return z
}
