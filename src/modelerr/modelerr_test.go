package modelerr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"bare sentinel", ErrInvalidEndpoint, KindValidation},
		{"wrapped in Error", At("installXover", ErrReciprocity, 3, "scaffold", 10, ""), KindConsistency},
		{"wrapped twice", fmt.Errorf("load: %w", New("parse", ErrMalformedDocument, "")), KindFormat},
		{"structural", New("trace", ErrCycleDetected, ""), KindStructural},
		{"foreign error", errors.New("disk full"), KindUnknown},
		{"nil", nil, KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorContext(t *testing.T) {
	err := At("removeXover", ErrNotACrossover, 4, "staple", 17, "")
	if !errors.Is(err, ErrNotACrossover) {
		t.Fatalf("errors.Is did not find the sentinel")
	}
	msg := err.Error()
	for _, want := range []string{"removeXover", "helix 4", "staple", "index 17"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error message %q is missing %q", msg, want)
		}
	}
	if err.Kind() != KindValidation {
		t.Fatalf("wrong kind: %v", err.Kind())
	}
	plain := New("load", ErrUnsupportedFormat, "no vstrands")
	if strings.Contains(plain.Error(), "helix") {
		t.Fatalf("error without base context should not mention a helix: %v", plain)
	}
}

func TestErrorNegativeIndex(t *testing.T) {
	err := At("installXover", ErrIndexOutOfRange, 1, "scaffold", -1, "helix has 42 bases")
	msg := err.Error()
	for _, want := range []string{"helix 1", "scaffold", "index -1"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error message %q is missing %q", msg, want)
		}
	}
	if !err.HasBase() {
		t.Fatal("base scoped error lost its base")
	}
	helixOnly := New("resizeHelix", ErrInvalidSize, "")
	helixOnly.Helix = 2
	if helixOnly.HasBase() || strings.Contains(helixOnly.Error(), "index") {
		t.Fatalf("helix scoped error should not report an index: %v", helixOnly)
	}
}
