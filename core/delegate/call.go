package delegate

import (
	"github.com/anoideaopen/hotswap/core/reflectx"
	"github.com/anoideaopen/hotswap/core/typesys"
)

// Call invokes the Go method backing m on the delegate v. When the Go method
// returns an error as its last result, a non-nil error is returned as the call
// error and the error result is dropped from the outputs.
func Call(v any, m *typesys.Method, args ...any) ([]any, error) {
	result, err := reflectx.Call(v, m.Name(), args...)
	if err != nil {
		return nil, err
	}

	if reflectx.MethodReturnsError(v, m.Name()) {
		if errorValue := result[len(result)-1]; errorValue != nil {
			return nil, errorValue.(error) //nolint:forcetypeassert
		}

		result = result[:len(result)-1]
	}

	return result, nil
}
