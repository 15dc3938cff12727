package reflectx

import "github.com/anoideaopen/hotswap/core/typesys"

// TypesOf returns a new slice with the primary type first, followed by types.
// For a nil primary type, types is returned unchanged.
func TypesOf(primary typesys.Type, types []typesys.Type) []typesys.Type {
	if primary == nil {
		return types
	}

	out := make([]typesys.Type, 0, len(types)+1)
	out = append(out, primary)
	return append(out, types...)
}
