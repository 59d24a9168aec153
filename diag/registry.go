package diag

import (
	"sync"
	"sync/atomic"

	"github.com/trickstertwo/xarray/diag/adapter/console"
)

// Callback receives one fully formatted diagnostic line, without a trailing
// newline. It must not emit diagnostics through the same Logger
// synchronously.
type Callback func(msg string)

var (
	active atomic.Pointer[Callback]
	// regMu serializes registrations; lookups stay lock-free.
	regMu sync.Mutex

	defaultCallback Callback = console.Stderr()
)

// DefaultCallback returns the sink used while nothing is registered: each
// line goes to standard error.
func DefaultCallback() Callback { return defaultCallback }

// Active returns the registered Callback, or DefaultCallback if none is.
func Active() Callback {
	if p := active.Load(); p != nil {
		return *p
	}
	return defaultCallback
}

// Register replaces the active Callback. A nil cb restores the default.
// Hosts call it once during startup, before concurrent work begins; later
// calls are safe but racing emitters may still see the previous sink.
func Register(cb Callback) {
	Replace(cb)
}

// Replace is Register that also returns the previously active Callback, so
// a caller can put it back later.
func Replace(cb Callback) (prev Callback) {
	regMu.Lock()
	defer regMu.Unlock()
	prev = Active()
	if cb == nil {
		active.Store(nil)
	} else {
		active.Store(&cb)
	}
	return prev
}

// Emit hands an already formatted line to the active Callback.
func Emit(msg string) { Active()(msg) }
