package tagspace

import (
	"errors"
	"fmt"

	"github.com/DecAngel/tagspace/index"
	"github.com/DecAngel/tagspace/tag"
)

var (
	// ErrValidation is returned when a tag value violates a dimension's
	// constraint, a tag name is malformed, or a positional tagging call has
	// mismatched sequence lengths. The mutation that triggered it is never
	// applied.
	ErrValidation = errors.New("tag value failed validation")

	// ErrUnknownTag is returned when a tag name has no registered index, on
	// both query and removal paths, and on tagging paths in strict mode.
	ErrUnknownTag = errors.New("unknown tag name")

	// ErrTypeMismatch is returned by the untyped adapters when input is none
	// of the recognized shapes: a value, a collection of values, or a
	// predicate function.
	ErrTypeMismatch = errors.New("unsupported value or selector shape")

	// ErrReadOnly is returned when a mutation is attempted through a
	// read-only index handle.
	ErrReadOnly = index.ErrReadOnly
)

// translateError maps subpackage errors onto the package sentinels.
//
// The original underlying error can be accessed via errors.Unwrap.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var oor *tag.OutOfRangeError
	if errors.As(err, &oor) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	var cat *tag.CategoryError
	if errors.As(err, &cat) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	var lm *index.LengthMismatchError
	if errors.As(err, &lm) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	var ut *tag.UnsupportedTypeError
	if errors.As(err, &ut) {
		return fmt.Errorf("%w: %w", ErrTypeMismatch, err)
	}

	return err
}
