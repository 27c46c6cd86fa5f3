package calculator

import (
	"errors"
	"fmt"
)

var (
	ErrSchema     = errors.New("schema error")
	ErrDateParse  = errors.New("invoice date parse error")
	ErrEmptyInput = errors.New("empty input")
	ErrFieldParse = errors.New("field parse error")
)

// SchemaError reports a required column missing from the source table.
type SchemaError struct {
	Field string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("required field %q is missing", e.Field)
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

// DateParseError reports an invoice date that matches none of the known layouts.
// Row is the zero-based index of the transaction.
type DateParseError struct {
	Row   int
	Value string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("row %d: cannot parse invoice date %q", e.Row, e.Value)
}

func (e *DateParseError) Unwrap() error { return ErrDateParse }

// EmptyInputError is returned when a stage has no rows to reduce.
type EmptyInputError struct {
	Stage string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s: no rows", e.Stage)
}

func (e *EmptyInputError) Unwrap() error { return ErrEmptyInput }

// FieldParseError reports a non-numeric quantity or unit price.
type FieldParseError struct {
	Field string
	Row   int
	Value string
}

func (e *FieldParseError) Error() string {
	return fmt.Sprintf("row %d: invalid %s %q", e.Row, e.Field, e.Value)
}

func (e *FieldParseError) Unwrap() error { return ErrFieldParse }
