package reflectx

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/anoideaopen/hotswap/core/typesys"
	"golang.org/x/crypto/sha3"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the MethodIdentity wire message.
const (
	fieldType  protowire.Number = 1
	fieldName  protowire.Number = 2
	fieldParam protowire.Number = 3
)

// maxFrameSize bounds a single length-delimited identity read by ReadMethod.
const maxFrameSize = 1 << 20

// MethodIdentity is the transportable form of a method: the declaring type name,
// the method name and the parameter type names. It carries no host-specific
// callable state and is re-resolved against a Universe on decode.
type MethodIdentity struct {
	Type   string   `json:"type"`
	Name   string   `json:"name"`
	Params []string `json:"params,omitempty"`
}

// EncodeMethod returns the identity of m.
func EncodeMethod(m *typesys.Method) MethodIdentity {
	params := make([]string, m.NumIn())
	for i := range params {
		params[i] = m.In(i).Name()
	}

	return MethodIdentity{
		Type:   m.DeclaringType().Name(),
		Name:   m.Name(),
		Params: params,
	}
}

// DecodeMethod relocates the method described by id in u. The declaring type and
// every parameter type must be known, and the declaring type must have a method
// with exactly that name and those parameter types.
//
// An unknown type name fails with ErrInvalidEncodedData. A method that cannot be
// relocated fails with an error matching both ErrMethodNotFound and
// ErrInvalidEncodedData.
func DecodeMethod(u *typesys.Universe, id MethodIdentity) (*typesys.Method, error) {
	typ, ok := u.Lookup(id.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %w: %s", ErrInvalidEncodedData, typesys.ErrUnknownType, id.Type)
	}

	params := make([]typesys.Type, len(id.Params))
	for i, name := range id.Params {
		if params[i], ok = u.Lookup(name); !ok {
			return nil, fmt.Errorf("%w: %w: %s", ErrInvalidEncodedData, typesys.ErrUnknownType, name)
		}
	}

	m, err := typ.Method(id.Name, params...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrInvalidEncodedData, ErrMethodNotFound, err)
	}

	return m, nil
}

// EncodeToBytes encodes the identity in protobuf wire format: field 1 holds the
// declaring type, field 2 the method name and repeated field 3 the parameter types.
func (id MethodIdentity) EncodeToBytes() ([]byte, error) {
	if id.Type == "" || id.Name == "" {
		return nil, fmt.Errorf("%w: identity without type or name", ErrInvalidEncodedData)
	}

	b := protowire.AppendTag(nil, fieldType, protowire.BytesType)
	b = protowire.AppendString(b, id.Type)
	b = protowire.AppendTag(b, fieldName, protowire.BytesType)
	b = protowire.AppendString(b, id.Name)
	for _, p := range id.Params {
		b = protowire.AppendTag(b, fieldParam, protowire.BytesType)
		b = protowire.AppendString(b, p)
	}

	return b, nil
}

// DecodeFromBytes decodes an identity written by EncodeToBytes. Unknown fields are
// skipped.
func (id *MethodIdentity) DecodeFromBytes(b []byte) error {
	var decoded MethodIdentity
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrInvalidEncodedData, protowire.ParseError(n))
		}
		b = b[n:]

		if num < fieldType || num > fieldParam {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return fmt.Errorf("%w: %w", ErrInvalidEncodedData, protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}

		if typ != protowire.BytesType {
			return fmt.Errorf("%w: field %d has wire type %d", ErrInvalidEncodedData, num, typ)
		}
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrInvalidEncodedData, protowire.ParseError(n))
		}
		b = b[n:]
		if !utf8.Valid(v) {
			return fmt.Errorf("%w: field %d is not valid UTF-8", ErrInvalidEncodedData, num)
		}

		switch num {
		case fieldType:
			decoded.Type = string(v)
		case fieldName:
			decoded.Name = string(v)
		case fieldParam:
			decoded.Params = append(decoded.Params, string(v))
		}
	}

	if decoded.Type == "" || decoded.Name == "" {
		return fmt.Errorf("%w: identity without type or name", ErrInvalidEncodedData)
	}

	*id = decoded
	return nil
}

// Fingerprint returns the SHA3-256 digest of the wire encoding. Equal identities
// have equal fingerprints.
func (id MethodIdentity) Fingerprint() ([32]byte, error) {
	b, err := id.EncodeToBytes()
	if err != nil {
		return [32]byte{}, err
	}
	return sha3.Sum256(b), nil
}

// WriteMethod writes the identity of m to w as a length-delimited frame, so that
// several methods can share one stream.
func WriteMethod(w io.Writer, m *typesys.Method) error {
	b, err := EncodeMethod(m).EncodeToBytes()
	if err != nil {
		return err
	}

	frame := protowire.AppendBytes(nil, b)
	if _, err = w.Write(frame); err != nil {
		return fmt.Errorf("writing method %s: %w", m, err)
	}

	return nil
}

// ReadMethod reads one frame written by WriteMethod and relocates the method in u.
// It returns io.EOF when the stream ends cleanly before a frame.
func ReadMethod(r io.Reader, u *typesys.Universe) (*typesys.Method, error) {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = byteReader{r}
	}

	size, err := binary.ReadUvarint(br)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: reading frame size: %w", ErrInvalidEncodedData, err)
	}
	if size > maxFrameSize {
		return nil, fmt.Errorf("%w: frame of %d bytes", ErrInvalidEncodedData, size)
	}

	b := make([]byte, size)
	if _, err = io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("%w: reading frame: %w", ErrInvalidEncodedData, err)
	}

	var id MethodIdentity
	if err = id.DecodeFromBytes(b); err != nil {
		return nil, err
	}

	return DecodeMethod(u, id)
}

// byteReader reads single bytes without buffering ahead, so the rest of the
// stream stays available to the caller.
type byteReader struct {
	r io.Reader
}

func (b byteReader) ReadByte() (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(b.r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}
