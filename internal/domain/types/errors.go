package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSourceNotFound   = errors.New("record source not found")
	ErrSchemaValidation = errors.New("schema validation failed")
	ErrNotLoaded        = errors.New("dataset not loaded: call Load first")

	ErrUnknownArtifact = errors.New("unknown artifact")
	ErrNotFound        = errors.New("requested item not found")
	ErrInvalidMode     = errors.New("invalid application mode")
)

// SourceNotFoundError is returned when the record source does not exist.
type SourceNotFoundError struct {
	Path string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrSourceNotFound.Error(), e.Path)
}

func (e *SourceNotFoundError) Unwrap() error {
	return ErrSourceNotFound
}

// SchemaValidationError lists the required columns absent from the source header.
type SchemaValidationError struct {
	Missing []string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("%s: missing columns: %s", ErrSchemaValidation.Error(), strings.Join(e.Missing, ", "))
}

func (e *SchemaValidationError) Unwrap() error {
	return ErrSchemaValidation
}
