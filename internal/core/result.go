package core

import (
	"errors"
	"fmt"
)

// Code is the closed set of failure tags an operation can carry. The two
// payment codes are reserved for the ledger integration and are never
// produced by the record services; they stay in the set so callers built
// against the full taxonomy keep working.
type Code string

const (
	CodeNotFound         Code = "NotFound"
	CodeInvalidPayload   Code = "InvalidPayload"
	CodeError            Code = "Error"
	CodePaymentFailed    Code = "PaymentFailed"
	CodePaymentCompleted Code = "PaymentCompleted"
)

// Fault is a tagged operation failure. Services return it for every domain
// outcome that is not a success; infrastructure errors surface untagged and
// map to CodeError at the boundary.
type Fault struct {
	Code    Code
	Message string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

// NotFoundf builds a CodeNotFound fault.
func NotFoundf(format string, args ...any) *Fault {
	return &Fault{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Invalidf builds a CodeInvalidPayload fault.
func Invalidf(format string, args ...any) *Fault {
	return &Fault{Code: CodeInvalidPayload, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the failure tag from err. Anything that is not a Fault
// counts as the generic CodeError.
func CodeOf(err error) Code {
	var f *Fault
	if errors.As(err, &f) {
		return f.Code
	}
	return CodeError
}

// IsCode reports whether err carries the given tag.
func IsCode(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}
