package render

import "errors"

var (
	// ErrInvalidSize is returned when a rasterizer is configured with a
	// non-positive width or height.
	ErrInvalidSize = errors.New("render: invalid size")

	// ErrIndexCount is returned when an index list does not describe whole
	// triangles.
	ErrIndexCount = errors.New("render: index count not a multiple of 3")

	// ErrIndexRange is returned when an index does not address a vertex.
	ErrIndexRange = errors.New("render: index out of range")
)
