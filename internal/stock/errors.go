package stock

import (
	"fmt"
)

// ValidationError reports a malformed or missing input value. Always
// caller-correctable.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports a referenced entity that does not exist
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// InvalidStateError reports an entity in a state that forbids the
// requested operation, e.g. a product without an inventory row.
type InvalidStateError struct {
	Message string
}

func (e *InvalidStateError) Error() string {
	return e.Message
}

// InsufficientStockError reports a deduction that would drive the
// inventory quantity negative. It names the offending product and the
// available vs. requested quantities.
type InsufficientStockError struct {
	ProductID   uint
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q (available %d, requested %d)",
		e.ProductName, e.Available, e.Requested)
}

// ConflictError reports a uniqueness or concurrent-modification conflict
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
