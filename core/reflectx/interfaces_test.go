package reflectx

import (
	"reflect"
	"testing"

	"github.com/anoideaopen/hotswap/core/typesys"
	"github.com/anoideaopen/hotswap/internal/fixture"
	"github.com/stretchr/testify/require"
)

func TestInterfacesOf(t *testing.T) {
	z := fixture.NewZoo()

	testCases := []struct {
		name     string
		typ      typesys.Type
		expected []typesys.Type
	}{
		{
			name:     "class with diamond inheritance",
			typ:      z.Dog,
			expected: []typesys.Type{z.Animal, z.Named, z.Pet, z.Walker},
		},
		{
			name:     "interfaces of the superclass",
			typ:      z.Puppy,
			expected: []typesys.Type{z.Animal, z.Named, z.Pet, z.Walker},
		},
		{
			name:     "interface includes itself",
			typ:      z.Pet,
			expected: []typesys.Type{z.Animal, z.Named, z.Pet},
		},
		{
			name:     "class without interfaces",
			typ:      z.Robot,
			expected: []typesys.Type{},
		},
		{
			name:     "universal base type",
			typ:      z.U.Object(),
			expected: []typesys.Type{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, InterfacesOf(tc.typ).Slice())
		})
	}
}

func TestAllInterfacesMatchesType(t *testing.T) {
	z := fixture.NewZoo()

	fromValue := AllInterfaces(z.U, &fixture.Dog{})
	fromType := InterfacesOf(z.Dog)
	require.Equal(t, fromType, fromValue)
	require.Len(t, fromValue, 4)
}

func TestAllInterfacesUnion(t *testing.T) {
	z := fixture.NewZoo()

	set := AllInterfaces(z.U, &fixture.Cat{}, nil, &fixture.Robot{})
	require.Equal(t, []typesys.Type{z.Animal, z.Named, z.Pet}, set.Slice())

	require.Empty(t, AllInterfaces(z.U))
	require.Empty(t, AllInterfaces(z.U, nil, nil))
}

func TestAllInterfacesDropsInvokerReference(t *testing.T) {
	z := fixture.NewZoo()

	proxyClass := z.U.MustDeclare(typesys.Decl{
		Name:       "zoo.$Proxy",
		Implements: []typesys.Type{z.Animal, z.U.InvokerReference()},
	})

	set := InterfacesOf(proxyClass)
	require.False(t, set.Has(z.U.InvokerReference()))
	require.Equal(t, []typesys.Type{z.Animal}, set.Slice())
}

type Speaker interface {
	Say() string
}

type parrot struct{}

func (parrot) Say() string { return "hello" }

func TestInterfacesOfGoBoundInterface(t *testing.T) {
	u := typesys.NewUniverse()
	speaker := u.MustDeclare(typesys.Decl{
		Name:      "talk.Speaker",
		Interface: true,
		Methods:   []typesys.MethodDecl{{Name: "Say"}},
		GoType:    reflect.TypeFor[Speaker](),
	})
	loud := u.MustDeclare(typesys.Decl{
		Name:       "talk.Loud",
		Interface:  true,
		Implements: []typesys.Type{speaker},
	})

	require.True(t, speaker.IsInstance(parrot{}))
	require.False(t, loud.IsInstance(parrot{}))

	require.Equal(t, []typesys.Type{speaker}, AllInterfaces(u, parrot{}).Slice())
	require.Equal(t, []typesys.Type{speaker}, InterfacesOf(u.TypeOf(parrot{})).Slice())
	require.Equal(t, []typesys.Type{speaker}, u.GoInterfaces())

	require.Empty(t, AllInterfaces(u, 42))
}
