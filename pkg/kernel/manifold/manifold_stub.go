//go:build !manifold

// Package manifold binds the Manifold mesh-boolean library. Without the
// "manifold" build tag only this stub is compiled and New reports
// ErrUnavailable.
//
// Build with: go build -tags=manifold
package manifold

import (
	"errors"

	"github.com/chazu/boardsolid/pkg/kernel"
)

// ErrUnavailable is returned by New when the binary was built without
// the manifold tag.
var ErrUnavailable = errors.New("manifold kernel not available: build with -tags=manifold")

// New reports ErrUnavailable.
func New() (kernel.Kernel, error) {
	return nil, ErrUnavailable
}
