package bills

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is wrapped by a LoadError when a required field is absent.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidValue is wrapped by a LoadError when a field is present but unusable.
	ErrInvalidValue = errors.New("invalid value")
	// ErrUnsupportedFormat is returned for files that are neither JSON nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported bill file format")
)

// LoadError reports a region file that could not be turned into bills.
// Bill is -1 when the problem concerns the file as a whole.
type LoadError struct {
	Path  string
	Bill  int
	Field string
	Err   error
}

func (e *LoadError) Error() string {
	switch {
	case e.Bill >= 0 && e.Field != "":
		return fmt.Sprintf("bills: %s: bill %d: %s: %v", e.Path, e.Bill, e.Field, e.Err)
	case e.Field != "":
		return fmt.Sprintf("bills: %s: %s: %v", e.Path, e.Field, e.Err)
	case e.Bill >= 0:
		return fmt.Sprintf("bills: %s: bill %d: %v", e.Path, e.Bill, e.Err)
	default:
		return fmt.Sprintf("bills: %s: %v", e.Path, e.Err)
	}
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func fileError(path string, err error) *LoadError {
	return &LoadError{Path: path, Bill: -1, Err: err}
}

func fieldError(path string, bill int, field string, err error) *LoadError {
	return &LoadError{Path: path, Bill: bill, Field: field, Err: err}
}

// IsLoadError reports whether err (or anything it wraps) is a LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
