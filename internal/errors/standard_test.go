package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestStandardErrorMatching(t *testing.T) {
	err := fmt.Errorf("lower Main: %w", UnhandledConstruct("BoundFoo"))

	if !errors.Is(err, &StandardError{Category: CategoryContract}) {
		t.Error("category match failed")
	}
	if !errors.Is(err, &StandardError{Category: CategoryContract, Code: "UNHANDLED_CONSTRUCT"}) {
		t.Error("code match failed")
	}
	if errors.Is(err, &StandardError{Category: CategoryContract, Code: "MALFORMED_BOUND_TREE"}) {
		t.Error("matched a different code")
	}
	if !HasCategory(err, CategoryContract) || HasCategory(err, CategoryStorage) {
		t.Error("HasCategory")
	}
	if HasCategory(errors.New("plain"), CategoryContract) {
		t.Error("plain error has a category")
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Storage("record", cause)

	if !errors.Is(err, cause) {
		t.Error("cause lost")
	}
	if !strings.Contains(err.Error(), "disk full") || !strings.Contains(err.Error(), "STORAGE_FAILURE") {
		t.Errorf("message %q", err.Error())
	}
}

func TestCallerIsRecorded(t *testing.T) {
	err := NewStandardError(CategorySystem, "X", "x", nil)
	if !strings.Contains(err.Caller, "TestCallerIsRecorded") {
		t.Errorf("caller = %q", err.Caller)
	}
}

func TestHasCategoryFollowsNestedErrors(t *testing.T) {
	inner := InvalidSnapshot("a.json", "bad node")
	outer := Wrap(inner, CategorySystem, "LOAD", "load failed", nil)

	if !HasCategory(outer, CategorySnapshot) {
		t.Error("nested category not found")
	}
	if !HasCategory(outer, CategorySystem) {
		t.Error("outer category not found")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		err      *StandardError
		category ErrorCategory
		code     string
	}{
		{MalformedBoundTree("call", "no method"), CategoryContract, "MALFORMED_BOUND_TREE"},
		{UnsupportedFormat("3.0.0", ">= 1.0.0"), CategorySnapshot, "UNSUPPORTED_FORMAT"},
		{VerificationFailed("Main", 2), CategoryValidation, "VERIFICATION_FAILED"},
		{GoldenMissing("abc", "Main"), CategoryValidation, "GOLDEN_MISSING"},
		{GoldenMismatch("Main", 3), CategoryValidation, "GOLDEN_MISMATCH"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if tt.err.Category != tt.category || tt.err.Code != tt.code {
				t.Errorf("got %s:%s, want %s:%s", tt.err.Category, tt.err.Code, tt.category, tt.code)
			}
			if tt.err.Unwrap() != nil {
				t.Error("constructor set a cause")
			}
		})
	}
}
