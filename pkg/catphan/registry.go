package catphan

import (
	"fmt"

	"ctqa/pkg/phantom"
)

// Factory loads a phantom series from a zip archive using the geometry of
// one hardware model.
type Factory func(archivePath string) (*Phantom, error)

// Resolve maps a phantom kind to its analyzer factory. Values outside the
// closed enumeration fail with phantom.ErrUnsupportedPhantom. Resolve is a
// pure lookup with no side effects.
func Resolve(kind phantom.Kind) (Factory, error) {
	if _, ok := geometries[kind]; !ok {
		return nil, fmt.Errorf("%w: %v", phantom.ErrUnsupportedPhantom, kind)
	}

	k := kind
	return func(archivePath string) (*Phantom, error) {
		return newPhantom(k, archivePath)
	}, nil
}
