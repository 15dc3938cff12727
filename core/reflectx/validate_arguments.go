package reflectx

import (
	"fmt"
	"reflect"
)

// Validator is an interface that can be implemented by types that can validate themselves.
type Validator interface {
	Validate() error
}

// ValidateArguments validates the arguments for the specified method on the given value using reflection.
// It checks whether the specified method exists on the value 'v' and if the number of provided arguments matches
// the method's expected input parameters. Additionally, it checks that every argument can be adapted to its
// parameter type. If an argument implements the Validator interface, its Validate method is called.
//
// The function returns an error if the method is not found, the number of arguments is incorrect, or if an error
// occurs during argument adaptation or validation.
//
// Parameters:
//   - v: The value on which the method is to be validated.
//   - method: The name of the method to validate.
//   - args: The arguments for the method.
//
// Returns:
//   - error: An error if the method is not found, the number of arguments is incorrect, or any other issue during validation.
func ValidateArguments(v any, method string, args ...any) error {
	inputVal := reflect.ValueOf(v)
	if !inputVal.IsValid() {
		return fmt.Errorf("%w: %s on nil value", ErrMethodNotFound, method)
	}

	methodVal := inputVal.MethodByName(method)
	if !methodVal.IsValid() {
		return fmt.Errorf("%w: %s", ErrMethodNotFound, method)
	}

	methodType := methodVal.Type()
	if methodType.NumIn() != len(args) {
		return fmt.Errorf(
			"%w: found %d but expected %d: validate %s",
			ErrIncorrectArgumentCount,
			len(args),
			methodType.NumIn(),
			method,
		)
	}

	for i, arg := range args {
		if _, err := valueOf(arg, methodType.In(i)); err != nil {
			return fmt.Errorf("%w: validate %s, argument %d", err, method, i)
		}

		validator, ok := arg.(Validator)
		if !ok {
			continue
		}
		if err := validator.Validate(); err != nil {
			return fmt.Errorf(
				"%w: '%v': validation failed: '%v': validate %s, argument %d",
				ErrInvalidArgumentValue,
				arg,
				err.Error(),
				method,
				i,
			)
		}
	}

	return nil
}
