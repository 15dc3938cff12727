package reflectx

import "github.com/anoideaopen/hotswap/core/typesys"

// MostCommonSuperclass returns the most specific type all non-nil values are
// instances of. It returns the universal base type for no values or only nil values.
//
// The candidate starts as the runtime type of the first value. A value whose type
// is a supertype of the candidate replaces it with that more general type; a value
// of an unrelated type moves the candidate one level up and restarts the scan.
// Types no class dominates, such as primitives, resolve to the universal base type.
func MostCommonSuperclass(u *typesys.Universe, values ...any) typesys.Type {
	var (
		typ   typesys.Type
		found bool
	)
	for !found {
		found = true
		for _, v := range values {
			current := u.TypeOf(v)
			if current == nil {
				continue
			}
			if typ == nil {
				typ = current
			}
			if typ.IsAssignableFrom(current) {
				continue
			}
			if current.IsAssignableFrom(typ) {
				typ = current
				continue
			}

			if typ == u.Object() {
				return typ
			}

			typ = typ.Superclass()
			if typ == nil {
				typ = u.Object()
			}
			found = false
			break
		}
	}

	if typ == nil {
		typ = u.Object()
	}

	return typ
}
