package reflectx

import (
	"fmt"
	"reflect"
)

// valueOf adapts an argument to a reflect.Value of the specified parameter type.
//
// The function follows these steps:
//  1. A nil argument becomes the zero value of a nillable parameter type (pointer, interface,
//     slice, map, channel or function). Other parameter types reject nil.
//  2. An argument assignable to the parameter type is passed unchanged.
//  3. A numeric argument is converted to a numeric parameter type. This is how a boxed int
//     reaches a method that declares a wider long parameter.
//  4. Anything else is rejected with ErrInvalidArgumentValue.
func valueOf(arg any, t reflect.Type) (reflect.Value, error) {
	if arg == nil {
		if nillable(t.Kind()) {
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: nil for type '%s'", ErrInvalidArgumentValue, t.String())
	}

	argVal := reflect.ValueOf(arg)
	argType := argVal.Type()

	switch {
	case argType.AssignableTo(t):
		return argVal, nil
	case numeric(argType.Kind()) && numeric(t.Kind()) && argType.ConvertibleTo(t):
		return argVal.Convert(t), nil
	}

	return reflect.Value{}, fmt.Errorf("%w: '%v': for type '%s'", ErrInvalidArgumentValue, arg, t.String())
}

func nillable(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return true
	default:
		return false
	}
}

func numeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
