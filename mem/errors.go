package mem

import "errors"

var (
	// ErrOutOfBounds indicates an offset or byte range beyond a region's
	// tracked length. Accesses panic with an error wrapping this sentinel;
	// it is only ever produced in tracked builds.
	ErrOutOfBounds = errors.New("mem: access out of bounds")

	// ErrNegativeSize indicates an allocation or resize with a negative
	// byte length.
	ErrNegativeSize = errors.New("mem: negative size")
)
