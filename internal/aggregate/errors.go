package aggregate

import (
	"errors"
	"fmt"
)

// ParseError reports a bill whose date could not be parsed.
type ParseError struct {
	Region       string
	IdentityHash string
	Value        string
	Err          error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("aggregate: region %s: bill %s: malformed date %q: %v", e.Region, e.IdentityHash, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError reports whether err (or anything it wraps) is a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
