package model

import (
	"errors"
	"fmt"
)

// UnavailableReason is the machine-readable cause attached to a negative
// availability answer.  The calling UI keys off these values to redirect
// the customer (pick another date, another window, another product)
// instead of showing a generic failure.
type UnavailableReason string

const (
	ReasonLeadTime         UnavailableReason = "lead_time"
	ReasonBlackout         UnavailableReason = "blackout"
	ReasonUnitsExhausted   UnavailableReason = "units_exhausted"
	ReasonCrewExhausted    UnavailableReason = "crew_exhausted"
	ReasonVehicleExhausted UnavailableReason = "vehicle_exhausted"
)

// UnavailableError is the expected negative outcome of an availability
// query: no conflict-free combination exists.  It is an error only so it
// can travel through the usual return paths; handlers translate it into a
// 200 response with is_available=false.
type UnavailableError struct {
	Reason UnavailableReason
	Detail string
}

func (e *UnavailableError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("unavailable: %s", e.Reason)
	}
	return fmt.Sprintf("unavailable: %s (%s)", e.Reason, e.Detail)
}

// Unavailable builds an UnavailableError with an optional detail string.
func Unavailable(reason UnavailableReason, detail string) *UnavailableError {
	return &UnavailableError{Reason: reason, Detail: detail}
}

// AsUnavailable unwraps err into an UnavailableError when possible.
func AsUnavailable(err error) (*UnavailableError, bool) {
	var ue *UnavailableError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// ValidationError reports malformed input rejected before the store is
// touched.  Validation failures are never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// AsValidation unwraps err into a ValidationError when possible.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// ErrHoldConflict is returned when an atomic claim loses the race for a
// contested resource and interval.  Callers should re-run availability
// rather than retry the same candidate blindly.
var ErrHoldConflict = errors.New("hold conflict: slot just taken")
