package reflectx

import (
	"fmt"
	"strings"

	"github.com/anoideaopen/hotswap/core/typesys"
)

type match int

const (
	matchNone match = iota
	matchLoose
	matchExact
)

// MatchingMethod returns the method of the given type with the given name whose
// parameters accept the given arguments.
//
// A parameter matches exactly when the argument's runtime type is the parameter
// type, or when a primitive parameter receives its own boxed wrapper. It matches
// loosely when the argument is a subtype of the parameter, when a nil argument is
// passed for a non-primitive parameter, or when a primitive parameter receives a
// wrapper of a kind that widens to it. Anything else rules the method out.
//
// The first method in declaration order matching every argument exactly wins.
// Without one, some loosely matching method is returned; which one is not
// specified when several qualify.
//
// It returns ErrMethodNotFound, naming the method and the argument types, when no
// method matches.
func MatchingMethod(t typesys.Type, methodName string, args ...any) (*typesys.Method, error) {
	u := t.Universe()

	var loose *typesys.Method
	for _, m := range t.Methods() {
		if m.Name() != methodName || m.NumIn() != len(args) {
			continue
		}

		switch matchArguments(u, m, args) {
		case matchExact:
			return m, nil
		case matchLoose:
			if loose == nil {
				loose = m
			}
		case matchNone:
		}
	}

	if loose != nil {
		return loose, nil
	}

	argTypes := make([]string, len(args))
	for i, arg := range args {
		argTypes[i] = "null"
		if at := u.TypeOf(arg); at != nil {
			argTypes[i] = at.Name()
		}
	}

	return nil, fmt.Errorf("%w: %s.%s(%s)", ErrMethodNotFound, t.Name(), methodName, strings.Join(argTypes, ", "))
}

func matchArguments(u *typesys.Universe, m *typesys.Method, args []any) match {
	result := matchExact
	for i, arg := range args {
		switch matchParameter(u, m.In(i), arg) {
		case matchNone:
			return matchNone
		case matchLoose:
			result = matchLoose
		case matchExact:
		}
	}
	return result
}

func matchParameter(u *typesys.Universe, param typesys.Type, arg any) match {
	argType := u.TypeOf(arg)

	if kind, ok := typesys.PrimitiveKindOf(param); ok {
		boxed, ok := typesys.BoxedKindOf(argType)
		switch {
		case !ok:
			return matchNone
		case boxed == kind:
			return matchExact
		case boxed.WidensTo(kind):
			return matchLoose
		default:
			return matchNone
		}
	}

	switch {
	case argType == nil:
		return matchLoose
	case !param.IsAssignableFrom(argType):
		return matchNone
	case param == argType:
		return matchExact
	default:
		return matchLoose
	}
}
