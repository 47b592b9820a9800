package unmanaged

import "errors"

var (
	// ErrTypeMismatch indicates a buffer's stored element descriptor does
	// not match the type requested for reinterpretation.
	ErrTypeMismatch = errors.New("unmanaged: element type mismatch")

	// ErrDuplicateKey indicates an Add of a key the dictionary already
	// holds.
	ErrDuplicateKey = errors.New("unmanaged: duplicate key")

	// ErrKeyNotFound indicates a lookup or removal of an absent key.
	ErrKeyNotFound = errors.New("unmanaged: key not found")

	// ErrNegativeLength indicates a construction or resize with a negative
	// length or capacity.
	ErrNegativeLength = errors.New("unmanaged: negative length")
)
