package xarray

import (
	"fmt"
	"unsafe"

	"fortio.org/safecast"
)

// UseForeignBuffer makes a borrow s without copying. Any owned storage is
// dropped first. Afterwards Size() == Cap() == len(s) and every structural
// mutator returns ErrForeignBuffer until the caller takes an owned copy with
// Clone. Element writes through Set, Ref or Data reach s directly.
//
// The caller keeps s alive and unchanged in length for as long as a uses it.
func (a *Array[T]) UseForeignBuffer(s []T) {
	a.Release()
	a.buf = s[:len(s):len(s)]
	a.size = len(s)
	a.foreign = true
}

// UseForeignPointer borrows n elements starting at p, typically a region
// described by a host or a file header.
func (a *Array[T]) UseForeignPointer(p *T, n uint64) error {
	length, err := safecast.Conv[int](n)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLength, err)
	}
	if length > maxCap[T]() {
		return fmt.Errorf("%w: %d elements", ErrLength, length)
	}
	if p == nil && length > 0 {
		return fmt.Errorf("%w: nil region with %d elements", ErrLength, length)
	}
	a.UseForeignBuffer(unsafe.Slice(p, length))
	return nil
}

// AdoptBytes borrows a serialized region in place, reinterpreting b as
// len(b)/sizeof(T) elements of T. b must start at an address aligned for T
// and its length must be a whole number of elements.
func (a *Array[T]) AdoptBytes(b []byte) error {
	var zero T
	sz := int(unsafe.Sizeof(zero))
	if sz == 0 {
		return fmt.Errorf("%w: zero-sized element type %T", ErrMisaligned, zero)
	}
	if len(b)%sz != 0 {
		return fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrMisaligned, len(b), sz)
	}
	if len(b) == 0 {
		a.UseForeignBuffer(nil)
		return nil
	}
	p := unsafe.Pointer(unsafe.SliceData(b))
	if uintptr(p)%unsafe.Alignof(zero) != 0 {
		return fmt.Errorf("%w: address %p, alignment %d", ErrMisaligned, p, unsafe.Alignof(zero))
	}
	a.UseForeignBuffer(unsafe.Slice((*T)(p), len(b)/sz))
	return nil
}

// Bytes returns the live elements as raw bytes, aliasing the storage. It is
// the in-place counterpart of AdoptBytes and is nil for an empty Array.
func (a *Array[T]) Bytes() []byte {
	if a.size == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(a.buf))), a.size*int(unsafe.Sizeof(zero)))
}
