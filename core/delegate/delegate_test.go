package delegate

import (
	"reflect"
	"testing"

	"github.com/anoideaopen/hotswap/core/reflectx"
	"github.com/anoideaopen/hotswap/core/typesys"
	"github.com/anoideaopen/hotswap/internal/fixture"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	testCases := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{input: "direct", want: Direct},
		{input: "SIGNATURE", want: Signature},
		{input: " Signature ", want: Signature},
		{input: "duck", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseMode(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrUnknownMode)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestModeText(t *testing.T) {
	b, err := Signature.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "signature", string(b))

	var m Mode
	require.NoError(t, m.UnmarshalText([]byte("direct")))
	require.Equal(t, Direct, m)

	_, err = Mode(7).MarshalText()
	require.ErrorIs(t, err, ErrUnknownMode)
	require.Equal(t, "Mode(7)", Mode(7).String())
}

func TestNewTable(t *testing.T) {
	z := fixture.NewZoo()

	table, err := NewTable([]typesys.Type{z.Greeter, z.Animal}, z.Robot)
	require.NoError(t, err)
	require.Equal(t, z.Robot, table.DelegateType())

	rows := table.Requirements()
	require.Len(t, rows, 2)
	require.Equal(t, "zoo.Animal.Speak()", rows[0].Target.String())
	require.Equal(t, "zoo.Robot.Speak()", rows[0].Delegate.String())
	require.Equal(t, "zoo.Greeter.Greet(String)", rows[1].Target.String())
	require.Equal(t, "zoo.Robot.Greet(String)", rows[1].Delegate.String())

	greet, err := z.Greeter.Method("Greet", z.U.StringType())
	require.NoError(t, err)
	routed, err := table.Route(greet)
	require.NoError(t, err)
	require.Equal(t, "zoo.Robot.Greet(String)", routed.String())

	walk, err := z.Walker.Method("Walk", z.U.Primitive(typesys.Long))
	require.NoError(t, err)
	_, err = table.Route(walk)
	require.ErrorIs(t, err, ErrNoRoute)
}

func TestTableRoutesByFingerprint(t *testing.T) {
	z := fixture.NewZoo()

	table, err := NewTable([]typesys.Type{z.Greeter}, z.Robot)
	require.NoError(t, err)

	greet, err := z.Greeter.Method("Greet", z.U.StringType())
	require.NoError(t, err)
	key, err := reflectx.EncodeMethod(greet).Fingerprint()
	require.NoError(t, err)
	require.Contains(t, table.rows, key)

	// An equal method built elsewhere routes to the same row.
	rebuilt := typesys.NewMethod(z.Greeter, "Greet", z.U.StringType())
	require.NotSame(t, greet, rebuilt)
	routed, err := table.Route(rebuilt)
	require.NoError(t, err)
	require.Equal(t, "zoo.Robot.Greet(String)", routed.String())

	other := typesys.NewMethod(z.Greeter, "Greet", z.U.Object())
	_, err = table.Route(other)
	require.ErrorIs(t, err, ErrNoRoute)
}

func TestNewTableUnsatisfied(t *testing.T) {
	z := fixture.NewZoo()

	_, err := NewTable([]typesys.Type{z.Walker}, z.Cat)
	require.ErrorIs(t, err, ErrUnsatisfiedRequirement)
	require.Contains(t, err.Error(), "zoo.Walker.Walk(long)")
	require.NotContains(t, err.Error(), "Speak")

	_, err = NewTable([]typesys.Type{z.Animal}, nil)
	require.ErrorIs(t, err, ErrUnsatisfiedRequirement)
}

type wideWalker struct{}

func (wideWalker) Walk(steps float64) string { return "walked" }

type boxedWalker struct{}

func (boxedWalker) Walk(steps any) string { return "walked" }

type narrowWalker struct{}

func (narrowWalker) Walk(steps int16) string { return "walked" }

func TestNewTableParameterCoercion(t *testing.T) {
	z := fixture.NewZoo()
	walkOnly := z.U.MustDeclare(typesys.Decl{
		Name:      "zoo.WalkOnly",
		Interface: true,
		Methods:   []typesys.MethodDecl{{Name: "Walk", Params: []typesys.Type{z.U.Primitive(typesys.Long)}}},
	})

	testCases := []struct {
		name    string
		goType  reflect.Type
		wantErr bool
	}{
		{name: "wider primitive", goType: reflect.TypeOf(wideWalker{})},
		{name: "object parameter boxes", goType: reflect.TypeOf(boxedWalker{})},
		{name: "narrower primitive", goType: reflect.TypeOf(narrowWalker{}), wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			delegateType := z.U.TypeOf(reflect.New(tc.goType).Elem().Interface())
			_, err := NewTable([]typesys.Type{walkOnly}, delegateType)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrUnsatisfiedRequirement)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCall(t *testing.T) {
	z := fixture.NewZoo()

	walk, err := z.Dog.Method("Walk", z.U.Primitive(typesys.Long))
	require.NoError(t, err)

	out, err := Call(&fixture.Dog{}, walk, int32(3))
	require.NoError(t, err)
	require.Equal(t, []any{"walked 3 steps"}, out)

	fail, err := z.Calculator.Method("Fail")
	require.NoError(t, err)

	out, err = Call(&fixture.Calculator{}, fail)
	require.EqualError(t, err, "calculator failed")
	require.Nil(t, out)
}
