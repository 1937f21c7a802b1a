package fixture

import (
	"fmt"

	"github.com/getmockd/mockhttp/pkg/mapping"
)

// Apply registers fixtures on scope in order and returns their indices.
// On error, fixtures registered before the failing one stay registered.
func Apply(scope mapping.Scope, fixtures []Fixture) ([]int, error) {
	indices := make([]int, 0, len(fixtures))
	for _, f := range fixtures {
		m, r, err := f.Build()
		if err != nil {
			return indices, err
		}

		var idx int
		if _, ok := r.(mapping.Passthrough); ok {
			idx, err = scope.MapPassthrough(m)
		} else {
			idx, err = scope.Map(m, r)
		}
		if err != nil {
			return indices, fmt.Errorf("%s: %w", f.Label(), err)
		}
		indices = append(indices, idx)
	}
	return indices, nil
}
