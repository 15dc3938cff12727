package reflectx

import (
	"errors"
	"fmt"
	"reflect"
)

// Error types.
var (
	ErrIncorrectArgumentCount = errors.New("incorrect number of arguments")
	ErrInvalidArgumentValue   = errors.New("invalid argument value")
	ErrMethodNotFound         = errors.New("method not found")
	ErrInvalidEncodedData     = errors.New("invalid encoded data")
)

// Call invokes a specified method on a given value using reflection. The method to be invoked is identified by its name.
// It checks whether the specified method exists on the value 'v' and if the number of provided arguments matches the
// method's expected input parameters. Each argument is then adapted to the parameter type: assignable values are passed
// as is, numeric values are converted to the numeric parameter kind, and nil becomes the zero value of a nillable
// parameter.
//
// The function returns a slice of any type representing the output from the called method, and an error if the method
// is not found, the number of arguments does not match, or if an argument cannot be adapted.
//
// Parameters:
//   - v: The value on which the method is to be invoked.
//   - method: The name of the method to invoke.
//   - args: The arguments for the method.
//
// Returns:
//   - []any: A slice containing the outputs of the method, or nil if an error occurs.
//   - error: An error if the method is not found, the number of arguments is incorrect, or an argument is invalid.
//
// Example:
//
//	type Counter struct {
//	    N int64
//	}
//
//	func (c *Counter) Add(n int64) int64 {
//	    c.N += n
//	    return c.N
//	}
//
//	func main() {
//	    output, err := Call(&Counter{}, "Add", int32(2))
//	    if err != nil {
//	        log.Fatalf("Error invoking method: %v", err)
//	    }
//	    fmt.Println(output[0]) // Output: 2
//	}
func Call(v any, method string, args ...any) ([]any, error) {
	inputVal := reflect.ValueOf(v)
	if !inputVal.IsValid() {
		return nil, fmt.Errorf("%w: %s on nil value", ErrMethodNotFound, method)
	}

	methodVal := inputVal.MethodByName(method)
	if !methodVal.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrMethodNotFound, method)
	}

	methodType := methodVal.Type()
	if methodType.NumIn() != len(args) {
		return nil, fmt.Errorf(
			"%w: found %d but expected %d: call %s",
			ErrIncorrectArgumentCount,
			len(args),
			methodType.NumIn(),
			method,
		)
	}

	var (
		in  = make([]reflect.Value, len(args))
		err error
	)
	for i, arg := range args {
		if in[i], err = valueOf(arg, methodType.In(i)); err != nil {
			return nil, fmt.Errorf("%w: call %s, argument %d", err, method, i)
		}
	}

	output := make([]any, methodType.NumOut())
	for i, res := range methodVal.Call(in) {
		output[i] = res.Interface()
	}

	return output, nil
}
