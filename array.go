// Package xarray provides Array, a contiguous growable buffer for fixed-size
// element types. An Array either owns its storage, growing it geometrically,
// or borrows a region owned elsewhere (a memory-mapped model file, a buffer
// handed over by a host) without copying it.
//
// Elements are moved with plain copies, so T should be a pointer-free value
// type: integers, floats, bools and fixed-size structs of those.
//
// An Array is not safe for concurrent mutation. Any number of readers may
// share an Array as long as nothing mutates it.
package xarray

import (
	"iter"
	"math"
	"unsafe"

	"github.com/trickstertwo/xarray/diag"
)

// minCapacity is the capacity an empty owned Array grows to on first Append.
const minCapacity = 1

// Array is a contiguous buffer of T with an explicit live size.
//
// The zero value is an empty, owned Array with no storage.
type Array[T any] struct {
	buf     []T // len(buf) is the capacity
	size    int
	foreign bool
}

// New returns an empty owned Array.
func New[T any]() *Array[T] { return &Array[T]{} }

// NewWithCapacity returns an empty owned Array with room for n elements.
func NewWithCapacity[T any](n int) *Array[T] {
	a := &Array[T]{}
	if n > 0 {
		a.realloc(n)
	}
	return a
}

// Move transfers the storage of a into a new Array and leaves a empty and
// owned, ready for reuse. No memory is copied.
func (a *Array[T]) Move() *Array[T] {
	out := &Array[T]{buf: a.buf, size: a.size, foreign: a.foreign}
	*a = Array[T]{}
	return out
}

// MoveFrom drops the storage of a, takes over the storage of src and leaves
// src empty and owned.
func (a *Array[T]) MoveFrom(src *Array[T]) {
	if a == src {
		return
	}
	*a = *src
	*src = Array[T]{}
}

// Release drops the storage reference. Owned storage becomes garbage; a
// borrowed region is left untouched for its owner. Afterwards a is empty and
// owned.
func (a *Array[T]) Release() { *a = Array[T]{} }

// Size returns the number of live elements.
func (a *Array[T]) Size() int { return a.size }

// Cap returns the number of allocated element slots.
func (a *Array[T]) Cap() int { return len(a.buf) }

// Owned reports whether a allocated its storage itself. A foreign Array is
// read-only in structure: see UseForeignBuffer.
func (a *Array[T]) Owned() bool { return !a.foreign }

// Begin returns the address of the first slot, or nil without storage.
func (a *Array[T]) Begin() *T { return unsafe.SliceData(a.buf) }

// Data returns the live elements. The slice aliases the storage; its capacity
// is clipped to Size so appending to it never writes into a's dead tail.
func (a *Array[T]) Data() []T { return a.buf[:a.size:a.size] }

// Last returns the address of the last live element.
// The caller must ensure Size() > 0.
func (a *Array[T]) Last() *T { return &a.buf[a.size-1] }

// At returns the element at i. Only i < Cap() is enforced (by the runtime);
// the caller must ensure i < Size().
func (a *Array[T]) At(i int) T { return a.buf[i] }

// Ref returns the address of the element at i, with the same precondition as At.
func (a *Array[T]) Ref(i int) *T { return &a.buf[i] }

// Set stores v at i, with the same precondition as At. Writing an element is
// not a structural change, so Set works on foreign storage too.
func (a *Array[T]) Set(i int, v T) { a.buf[i] = v }

// Values iterates the live elements in order.
func (a *Array[T]) Values() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < a.size; i++ {
			if !yield(i, a.buf[i]) {
				return
			}
		}
	}
}

// Reserve ensures Cap() >= n, growing the storage to exactly n slots when
// needed. Resident slots, live or dead, are preserved.
func (a *Array[T]) Reserve(n int) error {
	if err := a.mutable("reserve"); err != nil {
		return err
	}
	if n > len(a.buf) {
		a.realloc(n)
	}
	return nil
}

// Resize sets the live size to n. Growing past the capacity doubles it,
// starting from 1, until it exceeds n.
//
// Shrinking keeps the capacity and does not clear anything: elements past n
// stay in memory and reappear if the Array grows back within its capacity.
// Do not rely on Resize to erase data.
func (a *Array[T]) Resize(n int) error {
	if err := a.mutable("resize"); err != nil {
		return err
	}
	if n < 0 {
		return ErrNegativeSize
	}
	a.growFor(n)
	a.size = n
	return nil
}

// ResizeFill is Resize that also stores v into every slot in [old size, n).
func (a *Array[T]) ResizeFill(n int, v T) error {
	old := a.size
	if err := a.Resize(n); err != nil {
		return err
	}
	for i := old; i < n; i++ {
		a.buf[i] = v
	}
	return nil
}

// Clear drops all live elements and keeps the capacity.
func (a *Array[T]) Clear() error {
	if err := a.mutable("clear"); err != nil {
		return err
	}
	a.size = 0
	return nil
}

// Append adds v at the end, doubling the capacity when it is exhausted.
func (a *Array[T]) Append(v T) error {
	if err := a.mutable("append"); err != nil {
		return err
	}
	if a.size == len(a.buf) {
		c := len(a.buf) * 2
		if c == 0 {
			c = minCapacity
		}
		a.realloc(c)
	}
	a.buf[a.size] = v
	a.size++
	return nil
}

// Extend appends all of vs with at most one reallocation and one bulk copy.
func (a *Array[T]) Extend(vs []T) error {
	if err := a.mutable("extend"); err != nil {
		return err
	}
	if len(vs) > math.MaxInt-a.size {
		overflow[T](math.MaxInt)
	}
	n := a.size + len(vs)
	a.growFor(n)
	copy(a.buf[a.size:n], vs)
	a.size = n
	return nil
}

// growFor makes room for n live elements using the doubling rule.
func (a *Array[T]) growFor(n int) {
	if n <= len(a.buf) {
		return
	}
	limit := maxCap[T]()
	c := len(a.buf)
	if c == 0 {
		c = 1
	}
	for c <= n {
		if c > limit/2 {
			overflow[T](n)
		}
		c *= 2
	}
	a.realloc(c)
}

// realloc replaces the storage with n slots, copying every resident slot the
// way realloc(3) would.
func (a *Array[T]) realloc(n int) {
	if n > maxCap[T]() {
		overflow[T](n)
	}
	nb := make([]T, n)
	copy(nb, a.buf)
	a.buf = nb
}

func (a *Array[T]) mutable(op string) error {
	if a.foreign {
		return &OpError{Op: op, Err: ErrForeignBuffer}
	}
	return nil
}

// maxAllocBytes bounds a single storage allocation.
const maxAllocBytes = math.MaxInt >> 1

func maxCap[T any]() int {
	var zero T
	sz := int(unsafe.Sizeof(zero))
	if sz == 0 {
		return math.MaxInt >> 1
	}
	return maxAllocBytes / sz
}

// overflow reports an unsatisfiable allocation and does not return.
func overflow[T any](n int) {
	var zero T
	diag.L().Fatal().
		Int("elements", n).
		Uint64("elem_size", uint64(unsafe.Sizeof(zero))).
		Msg("xarray: allocation failed: requested capacity too large")
}
