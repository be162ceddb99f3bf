// Package errors provides standardized error values for optree
package errors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategoryContract   ErrorCategory = "CONTRACT"
	CategorySnapshot   ErrorCategory = "SNAPSHOT"
	CategoryValidation ErrorCategory = "VALIDATION"
	CategoryStorage    ErrorCategory = "STORAGE"
	CategorySystem     ErrorCategory = "SYSTEM"
)

// StandardError provides a consistent error format
type StandardError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Context  map[string]interface{}
	Caller   string
	Err      error
}

// Error implements the error interface
func (e *StandardError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s: %v (caller: %s)", e.Category, e.Code, e.Message, e.Err, e.Caller)
	}
	return fmt.Sprintf("[%s:%s] %s (caller: %s)", e.Category, e.Code, e.Message, e.Caller)
}

// Unwrap returns the underlying cause, if any.
func (e *StandardError) Unwrap() error { return e.Err }

// Is matches another StandardError by category and code.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Category == e.Category && (t.Code == "" || t.Code == e.Code)
}

// NewStandardError creates a new standardized error
func NewStandardError(category ErrorCategory, code, message string, context map[string]interface{}) *StandardError {
	return newError(2, category, code, message, context, nil)
}

// Wrap creates a standardized error around cause.
func Wrap(cause error, category ErrorCategory, code, message string, context map[string]interface{}) *StandardError {
	return newError(2, category, code, message, context, cause)
}

func newError(skip int, category ErrorCategory, code, message string, context map[string]interface{}, cause error) *StandardError {
	pc, _, _, ok := runtime.Caller(skip)
	caller := "unknown"
	if ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			caller = fn.Name()
		}
	}

	return &StandardError{
		Category: category,
		Code:     code,
		Message:  message,
		Context:  context,
		Caller:   caller,
		Err:      cause,
	}
}

// HasCategory reports whether err or anything it wraps is a StandardError of
// the given category.
func HasCategory(err error, category ErrorCategory) bool {
	var se *StandardError
	for err != nil {
		if !errors.As(err, &se) {
			return false
		}
		if se.Category == category {
			return true
		}
		err = se.Err
	}
	return false
}

// Common error constructors
func UnhandledConstruct(construct string) *StandardError {
	return NewStandardError(CategoryContract, "UNHANDLED_CONSTRUCT",
		fmt.Sprintf("No lowering for bound construct %s", construct),
		map[string]interface{}{"construct": construct})
}

func MalformedBoundTree(construct, detail string) *StandardError {
	return NewStandardError(CategoryContract, "MALFORMED_BOUND_TREE",
		fmt.Sprintf("Malformed %s: %s", construct, detail),
		map[string]interface{}{"construct": construct, "detail": detail})
}

func InvalidSnapshot(path, detail string) *StandardError {
	return NewStandardError(CategorySnapshot, "INVALID_SNAPSHOT",
		fmt.Sprintf("Invalid snapshot %s: %s", path, detail),
		map[string]interface{}{"path": path, "detail": detail})
}

func UnsupportedFormat(version, constraint string) *StandardError {
	return NewStandardError(CategorySnapshot, "UNSUPPORTED_FORMAT",
		fmt.Sprintf("Snapshot format %s does not satisfy %s", version, constraint),
		map[string]interface{}{"version": version, "constraint": constraint})
}

func VerificationFailed(region string, violations int) *StandardError {
	return NewStandardError(CategoryValidation, "VERIFICATION_FAILED",
		fmt.Sprintf("Operation tree for %s has %d violations", region, violations),
		map[string]interface{}{"region": region, "violations": violations})
}

func Storage(operation string, cause error) *StandardError {
	return Wrap(cause, CategoryStorage, "STORAGE_FAILURE",
		fmt.Sprintf("Golden store %s failed", operation),
		map[string]interface{}{"operation": operation})
}

func GoldenMissing(fingerprint, region string) *StandardError {
	return NewStandardError(CategoryValidation, "GOLDEN_MISSING",
		fmt.Sprintf("No recorded dump for %s in snapshot %s", region, fingerprint),
		map[string]interface{}{"fingerprint": fingerprint, "region": region})
}

func GoldenMismatch(region string, lines int) *StandardError {
	return NewStandardError(CategoryValidation, "GOLDEN_MISMATCH",
		fmt.Sprintf("Dump of %s differs from the recording in %d lines", region, lines),
		map[string]interface{}{"region": region, "lines": lines})
}
