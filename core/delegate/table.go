package delegate

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/anoideaopen/hotswap/core/reflectx"
	"github.com/anoideaopen/hotswap/core/typesys"
)

var (
	// ErrUnsatisfiedRequirement is returned when a delegate type has no method
	// compatible with a method required by a proxied type.
	ErrUnsatisfiedRequirement = errors.New("delegate does not satisfy requirement")

	// ErrNoRoute is returned when a table has no row for a method.
	ErrNoRoute = errors.New("no route for method")
)

// Requirement is one row of a Table: a method required by a proxied type and the
// delegate method that serves it.
type Requirement struct {
	Target   *typesys.Method
	Delegate *typesys.Method
}

// Table routes the methods of a list of proxied types to the methods of one
// delegate type when delegating by signature.
type Table struct {
	delegate typesys.Type
	rows     map[[32]byte]Requirement // target method fingerprint -> row
}

// NewTable computes the requirements of every method of the given types, including
// inherited ones, and resolves each against the methods of delegateType. A delegate
// method serves a requirement when it has the same name and arity and every one of
// its parameters accepts the corresponding required parameter. The first such
// method in declaration order is used.
//
// It returns ErrUnsatisfiedRequirement listing every requirement left unserved.
func NewTable(types []typesys.Type, delegateType typesys.Type) (*Table, error) {
	if delegateType == nil {
		return nil, fmt.Errorf("%w: no delegate type", ErrUnsatisfiedRequirement)
	}

	t := &Table{
		delegate: delegateType,
		rows:     make(map[[32]byte]Requirement),
	}

	var (
		candidates = delegateType.Methods()
		missing    []string
	)
	for _, typ := range types {
		for _, required := range typ.Methods() {
			key, err := fingerprint(required)
			if err != nil {
				return nil, err
			}
			if _, ok := t.rows[key]; ok {
				continue
			}

			served := serving(candidates, required)
			if served == nil {
				missing = append(missing, required.String())
				continue
			}

			t.rows[key] = Requirement{Target: required, Delegate: served}
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf(
			"%w: %s lacks %s",
			ErrUnsatisfiedRequirement,
			delegateType.Name(),
			strings.Join(missing, ", "),
		)
	}

	return t, nil
}

// DelegateType returns the delegate type the table was computed for.
func (t *Table) DelegateType() typesys.Type {
	return t.delegate
}

// Route returns the delegate method serving the required method m.
func (t *Table) Route(m *typesys.Method) (*typesys.Method, error) {
	key, err := fingerprint(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoRoute, err)
	}

	row, ok := t.rows[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoRoute, m)
	}
	return row.Delegate, nil
}

// Requirements returns every row sorted by the required method.
func (t *Table) Requirements() []Requirement {
	rows := make([]Requirement, 0, len(t.rows))
	for _, row := range t.rows {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Target.String() < rows[j].Target.String()
	})
	return rows
}

func fingerprint(m *typesys.Method) ([32]byte, error) {
	return reflectx.EncodeMethod(m).Fingerprint()
}

func serving(candidates []*typesys.Method, required *typesys.Method) *typesys.Method {
	for _, c := range candidates {
		if c.Name() != required.Name() || c.NumIn() != required.NumIn() {
			continue
		}

		compatible := true
		for i := 0; compatible && i < c.NumIn(); i++ {
			compatible = accepts(c.In(i), required.In(i))
		}
		if compatible {
			return c
		}
	}
	return nil
}

// accepts reports whether a delegate parameter of type param can receive every
// argument a proxied parameter of type arg accepts. Primitives and their wrappers
// are interchangeable, and primitive kinds may widen.
func accepts(param, arg typesys.Type) bool {
	pk, pPrim := primitiveKind(param)
	ak, aPrim := primitiveKind(arg)

	switch {
	case pPrim && aPrim:
		return pk == ak || ak.WidensTo(pk)
	case aPrim && arg.IsPrimitive():
		return param.IsAssignableFrom(arg.Universe().Wrapper(ak))
	default:
		return param.IsAssignableFrom(arg)
	}
}

func primitiveKind(t typesys.Type) (typesys.PrimitiveKind, bool) {
	if k, ok := typesys.PrimitiveKindOf(t); ok {
		return k, true
	}
	return typesys.BoxedKindOf(t)
}
