package diag

import "errors"

var (
	ErrInvalidLevel  = errors.New("diag: invalid level")
	ErrUnknownOutput = errors.New("diag: unknown output")
)

// FatalError is the panic value raised after a Fatal diagnostic has been
// delivered to the sink. Msg is the formatted line the sink received.
type FatalError struct {
	Msg string
}

func (e *FatalError) Error() string { return e.Msg }
