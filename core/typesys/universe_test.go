package typesys_test

import (
	"reflect"
	"testing"

	"github.com/anoideaopen/hotswap/core/typesys"
	"github.com/anoideaopen/hotswap/internal/fixture"
	"github.com/stretchr/testify/require"
)

func TestBuiltinTypes(t *testing.T) {
	u := typesys.NewUniverse()

	require.Nil(t, u.Object().Superclass())
	require.False(t, u.Object().IsInterface())
	require.Equal(t, u.Object(), u.StringType().Superclass())
	require.True(t, u.InvokerReference().IsInterface())

	for k := typesys.Boolean; k <= typesys.Double; k++ {
		prim := u.Primitive(k)
		require.True(t, prim.IsPrimitive(), k.String())
		require.Nil(t, prim.Superclass())

		kind, ok := typesys.PrimitiveKindOf(prim)
		require.True(t, ok)
		require.Equal(t, k, kind)

		wrapper := u.Wrapper(k)
		require.False(t, wrapper.IsPrimitive())
		require.Equal(t, k.WrapperName(), wrapper.Name())

		boxed, ok := typesys.BoxedKindOf(wrapper)
		require.True(t, ok)
		require.Equal(t, k, boxed)
	}
}

func TestTypeOf(t *testing.T) {
	z := fixture.NewZoo()
	u := z.U

	testCases := []struct {
		name     string
		value    any
		expected typesys.Type
	}{
		{name: "nil", value: nil, expected: nil},
		{name: "int32 boxes to Integer", value: int32(1), expected: u.Wrapper(typesys.Int)},
		{name: "int boxes to Integer", value: 1, expected: u.Wrapper(typesys.Int)},
		{name: "int64 boxes to Long", value: int64(1), expected: u.Wrapper(typesys.Long)},
		{name: "float64 boxes to Double", value: 1.5, expected: u.Wrapper(typesys.Double)},
		{name: "bool boxes to Boolean", value: true, expected: u.Wrapper(typesys.Boolean)},
		{name: "string", value: "s", expected: u.StringType()},
		{name: "declared class", value: &fixture.Dog{}, expected: z.Dog},
		{name: "declared subclass", value: &fixture.Puppy{}, expected: z.Puppy},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, u.TypeOf(tc.value))
		})
	}
}

type unbound struct{}

func (unbound) Echo(s string, n int64, v any) string { return s }

func TestTypeOfUnboundGoType(t *testing.T) {
	u := typesys.NewUniverse()

	typ := u.TypeOf(unbound{})
	require.NotNil(t, typ)
	require.Equal(t, u.Object(), typ.Superclass())
	require.Same(t, typ, u.TypeOf(unbound{}))

	methods := typ.Methods()
	require.Len(t, methods, 1)
	require.Equal(t, "Echo", methods[0].Name())
	require.Equal(t,
		[]typesys.Type{u.StringType(), u.Primitive(typesys.Long), u.Object()},
		methods[0].Params(),
	)

	found, ok := u.Lookup(typ.Name())
	require.True(t, ok)
	require.Equal(t, typ, found)
}

func TestDeclareErrors(t *testing.T) {
	z := fixture.NewZoo()
	u := z.U

	testCases := []struct {
		name string
		decl typesys.Decl
		err  error
	}{
		{
			name: "empty name",
			decl: typesys.Decl{},
			err:  typesys.ErrInvalidDecl,
		},
		{
			name: "duplicate name",
			decl: typesys.Decl{Name: "zoo.Dog"},
			err:  typesys.ErrDuplicateType,
		},
		{
			name: "interface extending a class",
			decl: typesys.Decl{Name: "x.I", Interface: true, Extends: z.Dog},
			err:  typesys.ErrInvalidDecl,
		},
		{
			name: "class extending an interface",
			decl: typesys.Decl{Name: "x.C", Extends: z.Animal},
			err:  typesys.ErrInvalidDecl,
		},
		{
			name: "class extending a wrapper",
			decl: typesys.Decl{Name: "x.C", Extends: u.Wrapper(typesys.Int)},
			err:  typesys.ErrInvalidDecl,
		},
		{
			name: "implementing a class",
			decl: typesys.Decl{Name: "x.C", Implements: []typesys.Type{z.Dog}},
			err:  typesys.ErrInvalidDecl,
		},
		{
			name: "implementing an interface twice",
			decl: typesys.Decl{Name: "x.C", Implements: []typesys.Type{z.Animal, z.Animal}},
			err:  typesys.ErrInvalidDecl,
		},
		{
			name: "nil parameter",
			decl: typesys.Decl{Name: "x.C", Methods: []typesys.MethodDecl{{Name: "M", Params: []typesys.Type{nil}}}},
			err:  typesys.ErrInvalidDecl,
		},
		{
			name: "go type without the declared method",
			decl: typesys.Decl{
				Name:    "x.C",
				Methods: []typesys.MethodDecl{{Name: "Missing"}},
				GoType:  reflect.TypeOf(unbound{}),
			},
			err: typesys.ErrInvalidDecl,
		},
		{
			name: "go type bound twice",
			decl: typesys.Decl{Name: "x.C", GoType: reflect.TypeOf(&fixture.Dog{})},
			err:  typesys.ErrAlreadyBound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := u.Declare(tc.decl)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestBind(t *testing.T) {
	z := fixture.NewZoo()

	type plainDog struct{ fixture.Dog }

	require.NoError(t, z.U.Bind(reflect.TypeOf(plainDog{}), z.Dog))
	require.Equal(t, z.Dog, z.U.TypeOf(plainDog{}))
	require.ErrorIs(t, z.U.Bind(reflect.TypeOf(plainDog{}), z.Cat), typesys.ErrAlreadyBound)

	other := typesys.NewUniverse()
	require.ErrorIs(t, other.Bind(reflect.TypeOf(plainDog{}), z.Dog), typesys.ErrUnknownType)
}
