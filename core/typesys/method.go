package typesys

import "strings"

// Method is an immutable method signature: the declaring type, the method name and
// the ordered parameter types. Two methods are equal when all three match.
type Method struct {
	declaring Type
	name      string
	params    []Type
}

// NewMethod creates a method signature. The params slice is copied.
func NewMethod(declaring Type, name string, params ...Type) *Method {
	return &Method{
		declaring: declaring,
		name:      name,
		params:    append([]Type(nil), params...),
	}
}

// DeclaringType returns the type that declares the method.
func (m *Method) DeclaringType() Type { return m.declaring }

// Name returns the method name.
func (m *Method) Name() string { return m.name }

// NumIn returns the number of parameters.
func (m *Method) NumIn() int { return len(m.params) }

// In returns the i-th parameter type.
func (m *Method) In(i int) Type { return m.params[i] }

// Params returns a copy of the parameter types.
func (m *Method) Params() []Type { return append([]Type(nil), m.params...) }

// Equal reports whether m and other have the same declaring type, name and
// parameter types.
func (m *Method) Equal(other *Method) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.declaring == other.declaring && m.sameSignature(other)
}

// sameSignature compares name and parameters only, ignoring the declaring type.
func (m *Method) sameSignature(other *Method) bool {
	if m.name != other.name || len(m.params) != len(other.params) {
		return false
	}
	for i := range m.params {
		if m.params[i] != other.params[i] {
			return false
		}
	}
	return true
}

// Signature returns "name(p1, p2)".
func (m *Method) Signature() string {
	var sb strings.Builder
	sb.WriteString(m.name)
	sb.WriteByte('(')
	for i, p := range m.params {
		if i != 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name())
	}
	sb.WriteByte(')')
	return sb.String()
}

// String returns "Declaring.name(p1, p2)".
func (m *Method) String() string {
	if m.declaring == nil {
		return m.Signature()
	}
	return m.declaring.Name() + "." + m.Signature()
}
