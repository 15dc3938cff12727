package typesys

import "reflect"

// PrimitiveKind identifies one of the host primitive types. Every primitive has a
// boxed wrapper class in the Universe.
type PrimitiveKind int

// Primitive kinds.
const (
	Boolean PrimitiveKind = iota
	Byte
	Char
	Short
	Int
	Long
	Float
	Double

	numPrimitiveKinds
)

var primitiveNames = [numPrimitiveKinds]string{
	Boolean: "boolean",
	Byte:    "byte",
	Char:    "char",
	Short:   "short",
	Int:     "int",
	Long:    "long",
	Float:   "float",
	Double:  "double",
}

var wrapperNames = [numPrimitiveKinds]string{
	Boolean: "Boolean",
	Byte:    "Byte",
	Char:    "Character",
	Short:   "Short",
	Int:     "Integer",
	Long:    "Long",
	Float:   "Float",
	Double:  "Double",
}

// widening lists, for every kind, the kinds it can be widened to without an
// explicit conversion.
var widening = [numPrimitiveKinds][]PrimitiveKind{
	Byte:  {Short, Int, Long, Float, Double},
	Short: {Int, Long, Float, Double},
	Char:  {Int, Long, Float, Double},
	Int:   {Long, Float, Double},
	Long:  {Float, Double},
	Float: {Double},
}

// String returns the primitive type name.
func (k PrimitiveKind) String() string {
	if k < 0 || k >= numPrimitiveKinds {
		return "unknown"
	}
	return primitiveNames[k]
}

// WrapperName returns the name of the boxed wrapper class of k.
func (k PrimitiveKind) WrapperName() string {
	if k < 0 || k >= numPrimitiveKinds {
		return "unknown"
	}
	return wrapperNames[k]
}

// WidensTo reports whether a value of kind k can be widened to kind to.
// A kind does not widen to itself.
func (k PrimitiveKind) WidensTo(to PrimitiveKind) bool {
	if k < 0 || k >= numPrimitiveKinds {
		return false
	}
	for _, w := range widening[k] {
		if w == to {
			return true
		}
	}
	return false
}

// goKinds maps Go basic kinds onto primitive kinds. Values of these Go kinds are
// boxed wrappers at runtime and primitives in parameter position.
var goKinds = map[reflect.Kind]PrimitiveKind{
	reflect.Bool:    Boolean,
	reflect.Int8:    Byte,
	reflect.Uint16:  Char,
	reflect.Int16:   Short,
	reflect.Int:     Int,
	reflect.Int32:   Int,
	reflect.Int64:   Long,
	reflect.Float32: Float,
	reflect.Float64: Double,
}

// PrimitiveKindOf returns the primitive kind of t when t is a primitive type.
func PrimitiveKindOf(t Type) (PrimitiveKind, bool) {
	d, ok := t.(*descriptor)
	if !ok || d.kind != kindPrimitive {
		return 0, false
	}
	return d.prim, true
}

// BoxedKindOf returns the primitive kind wrapped by t when t is a boxed wrapper class.
func BoxedKindOf(t Type) (PrimitiveKind, bool) {
	d, ok := t.(*descriptor)
	if !ok || !d.wrapper {
		return 0, false
	}
	return d.prim, true
}
