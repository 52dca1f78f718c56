package record

import (
	"errors"
	"fmt"
)

var (
	// ErrConstruction matches every *ConstructionError.
	ErrConstruction = errors.New("record: construction failed")
	// ErrTypeMismatch matches every *TypeMismatchError.
	ErrTypeMismatch = errors.New("record: type mismatch")
)

// ConstructionError reports that a typed object could not be built from a record.
type ConstructionError struct {
	Type  string
	Field string // empty when the failure is not tied to one field
	Err   error
}

func (e *ConstructionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("record: construct %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("record: construct %s: field %q: %v", e.Type, e.Field, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

func (e *ConstructionError) Is(target error) bool { return target == ErrConstruction }

// TypeMismatchError reports a record value that cannot be coerced to the declared field kind.
type TypeMismatchError struct {
	Type   string
	Field  string
	Column string
	Kind   Kind
	Value  any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("record: %s.%s (column %q): cannot use %T as %s", e.Type, e.Field, e.Column, e.Value, e.Kind)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

var (
	errNoConstructor = errors.New("no canonical constructor declared")
	errRequiredNull  = errors.New("required field resolved to null")
	errArgType       = errors.New("constructor read argument as an incompatible type")
)
