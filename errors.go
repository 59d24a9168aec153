package xarray

import "errors"

var (
	// ErrForeignBuffer is returned by structural mutators on an Array that
	// borrows its storage. Use Clone to get an owned, mutable copy.
	ErrForeignBuffer = errors.New("storage is a foreign buffer; clone first")
	ErrNegativeSize  = errors.New("xarray: negative size")
	ErrMisaligned    = errors.New("xarray: region is not aligned for the element type")
	ErrLength        = errors.New("xarray: invalid foreign region length")
	ErrNilArray      = errors.New("xarray: nil array")
)

// OpError records the mutator that was refused and why.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string { return "xarray: cannot " + e.Op + ": " + e.Err.Error() }

func (e *OpError) Unwrap() error { return e.Err }
