package reflectx

import (
	"bytes"
	"io"
	"testing"

	"github.com/anoideaopen/hotswap/core/typesys"
	"github.com/anoideaopen/hotswap/internal/fixture"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestMethodIdentityRoundTrip(t *testing.T) {
	z := fixture.NewZoo()

	for _, typ := range []typesys.Type{z.Dog, z.Puppy, z.Calculator, z.Pet, z.Walker} {
		for _, m := range typ.Methods() {
			t.Run(m.String(), func(t *testing.T) {
				id := EncodeMethod(m)

				b, err := id.EncodeToBytes()
				require.NoError(t, err)

				var decodedID MethodIdentity
				require.NoError(t, decodedID.DecodeFromBytes(b))

				decoded, err := DecodeMethod(z.U, decodedID)
				require.NoError(t, err)
				require.True(t, m.Equal(decoded))
				require.Same(t, m, decoded)
			})
		}
	}
}

func TestEncodeMethod(t *testing.T) {
	z := fixture.NewZoo()

	m, err := z.Calculator.Method("Put", z.U.StringType())
	require.NoError(t, err)

	require.Equal(t, MethodIdentity{
		Type:   "zoo.Calculator",
		Name:   "Put",
		Params: []string{"String"},
	}, EncodeMethod(m))
}

func TestDecodeMethodErrors(t *testing.T) {
	z := fixture.NewZoo()

	testCases := []struct {
		name     string
		id       MethodIdentity
		wantErrs []error
	}{
		{
			name:     "unknown declaring type",
			id:       MethodIdentity{Type: "zoo.Unicorn", Name: "Speak"},
			wantErrs: []error{ErrInvalidEncodedData, typesys.ErrUnknownType},
		},
		{
			name:     "unknown parameter type",
			id:       MethodIdentity{Type: "zoo.Dog", Name: "Walk", Params: []string{"zoo.Steps"}},
			wantErrs: []error{ErrInvalidEncodedData, typesys.ErrUnknownType},
		},
		{
			name:     "no exact parameter match",
			id:       MethodIdentity{Type: "zoo.Dog", Name: "Walk", Params: []string{"int"}},
			wantErrs: []error{ErrInvalidEncodedData, ErrMethodNotFound},
		},
		{
			name:     "no such name",
			id:       MethodIdentity{Type: "zoo.Dog", Name: "Fly"},
			wantErrs: []error{ErrInvalidEncodedData, ErrMethodNotFound},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeMethod(z.U, tc.id)
			for _, want := range tc.wantErrs {
				require.ErrorIs(t, err, want)
			}
		})
	}
}

func TestDecodeFromBytesMalformed(t *testing.T) {
	valid, err := MethodIdentity{Type: "zoo.Dog", Name: "Speak"}.EncodeToBytes()
	require.NoError(t, err)

	varintName := protowire.AppendTag(nil, fieldType, protowire.BytesType)
	varintName = protowire.AppendString(varintName, "zoo.Dog")
	varintName = protowire.AppendTag(varintName, fieldName, protowire.VarintType)
	varintName = protowire.AppendVarint(varintName, 7)

	noName := protowire.AppendTag(nil, fieldType, protowire.BytesType)
	noName = protowire.AppendString(noName, "zoo.Dog")

	testCases := []struct {
		name  string
		input []byte
	}{
		{name: "truncated", input: valid[:len(valid)-2]},
		{name: "garbage", input: []byte{0xff, 0xff, 0xff}},
		{name: "wrong wire type", input: varintName},
		{name: "missing name", input: noName},
		{name: "empty", input: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var id MethodIdentity
			require.ErrorIs(t, id.DecodeFromBytes(tc.input), ErrInvalidEncodedData)
		})
	}
}

func TestDecodeFromBytesSkipsUnknownFields(t *testing.T) {
	b, err := MethodIdentity{Type: "zoo.Dog", Name: "Walk", Params: []string{"long"}}.EncodeToBytes()
	require.NoError(t, err)

	b = protowire.AppendTag(b, 9, protowire.VarintType)
	b = protowire.AppendVarint(b, 42)

	var id MethodIdentity
	require.NoError(t, id.DecodeFromBytes(b))
	require.Equal(t, MethodIdentity{Type: "zoo.Dog", Name: "Walk", Params: []string{"long"}}, id)
}

func TestFingerprint(t *testing.T) {
	z := fixture.NewZoo()

	add32, err := z.Calculator.Method("Add", z.U.Primitive(typesys.Int))
	require.NoError(t, err)
	add64, err := z.Calculator.Method("Add", z.U.Primitive(typesys.Long))
	require.NoError(t, err)

	fp1, err := EncodeMethod(add32).Fingerprint()
	require.NoError(t, err)
	fp2, err := EncodeMethod(add32).Fingerprint()
	require.NoError(t, err)
	fp3, err := EncodeMethod(add64).Fingerprint()
	require.NoError(t, err)

	require.Equal(t, fp1, fp2)
	require.NotEqual(t, fp1, fp3)

	_, err = MethodIdentity{}.Fingerprint()
	require.ErrorIs(t, err, ErrInvalidEncodedData)
}

func TestWriteReadMethodStream(t *testing.T) {
	z := fixture.NewZoo()
	methods := z.Calculator.Methods()

	var buf bytes.Buffer
	for _, m := range methods {
		require.NoError(t, WriteMethod(&buf, m))
	}

	// io.MultiReader hides io.ByteReader, so both read paths are covered.
	readers := map[string]io.Reader{
		"byte reader":  bytes.NewReader(buf.Bytes()),
		"plain reader": io.MultiReader(bytes.NewReader(buf.Bytes())),
	}

	for name, r := range readers {
		t.Run(name, func(t *testing.T) {
			for _, want := range methods {
				got, err := ReadMethod(r, z.U)
				require.NoError(t, err)
				require.True(t, want.Equal(got), "want %s, got %s", want, got)
			}

			_, err := ReadMethod(r, z.U)
			require.ErrorIs(t, err, io.EOF)
		})
	}
}

func TestReadMethodTruncatedFrame(t *testing.T) {
	z := fixture.NewZoo()

	var buf bytes.Buffer
	require.NoError(t, WriteMethod(&buf, z.Dog.Methods()[0]))

	truncated := buf.Bytes()[:buf.Len()-1]
	_, err := ReadMethod(bytes.NewReader(truncated), z.U)
	require.ErrorIs(t, err, ErrInvalidEncodedData)
}
