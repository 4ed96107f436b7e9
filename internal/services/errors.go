package services

import (
	"errors"
	"fmt"

	"github.com/diewo77/product-organizer/validation"
)

// ErrNotFound is returned when a product, client or template does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports missing or malformed input. Nothing has been sent or written.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Violations.Error()
}

// TransportError reports a failed delivery. The client is not recorded and no receipt is made.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "failed to send email: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// RenderError reports a failed receipt. It never affects an email already sent.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string { return "failed to generate receipt: " + e.Err.Error() }
func (e *RenderError) Unwrap() error { return e.Err }

// StoreError wraps a database failure with the operation that caused it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("store %s: %v", e.Op, e.Err) }
func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
