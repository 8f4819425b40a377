package pgnerrors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestSentinelErrors_Is(t *testing.T) {
	tests := []struct {
		name     string
		sentinel error
	}{
		{"ErrInvalidFEN", ErrInvalidFEN},
		{"ErrIllegalMove", ErrIllegalMove},
		{"ErrAmbiguousMove", ErrAmbiguousMove},
		{"ErrUnexpectedToken", ErrUnexpectedToken},
		{"ErrCannotStartRav", ErrCannotStartRav},
		{"ErrNoPendingRav", ErrNoPendingRav},
		{"ErrSANMissingFile", ErrSANMissingFile},
		{"ErrSANCheckAndCheckmate", ErrSANCheckAndCheckmate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.sentinel, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.sentinel, tt.sentinel)
			}
		})
	}
}

func TestPGNError_Error(t *testing.T) {
	err := NewPGNError(ErrIllegalMove, 42, "Nxe5 has no legal source")
	msg := err.Error()

	for _, want := range []string{"42", "Nxe5 has no legal source", "illegal move"} {
		if !containsIgnoreCase(msg, want) {
			t.Errorf("PGNError.Error() = %q, should contain %q", msg, want)
		}
	}
}

func TestPGNError_Unwrap(t *testing.T) {
	pgnErr := NewPGNError(ErrInvalidFEN, 1, "")

	if !errors.Is(pgnErr, ErrInvalidFEN) {
		t.Error("errors.Is(pgnErr, ErrInvalidFEN) = false, want true")
	}

	wrapped := fmt.Errorf("reading tags: %w", pgnErr)
	var extracted *PGNError
	if !errors.As(wrapped, &extracted) {
		t.Fatal("errors.As() could not extract PGNError")
	}
	if extracted.Line != 1 {
		t.Errorf("extracted.Line = %d, want 1", extracted.Line)
	}
}

func TestSANError_Error(t *testing.T) {
	err := NewSANError(ErrSANMissingFile, "Rd2")
	msg := err.Error()

	if !containsIgnoreCase(msg, "Rd2") {
		t.Errorf("SANError.Error() = %q, should contain the offending text", msg)
	}
	if !errors.Is(err, ErrSANMissingFile) {
		t.Error("errors.Is(err, ErrSANMissingFile) = false, want true")
	}
}

func TestPGNWarning_String(t *testing.T) {
	w := PGNWarning{Kind: WarningMoveMissingCapture, Line: 7, Message: "exd5 lacked x"}
	msg := w.String()

	for _, want := range []string{"7", "MoveMissingCapture", "exd5 lacked x"} {
		if !containsIgnoreCase(msg, want) {
			t.Errorf("PGNWarning.String() = %q, should contain %q", msg, want)
		}
	}
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
