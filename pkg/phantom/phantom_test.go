package phantom

import (
	"errors"
	"testing"
)

// TestKindsAreClosed verifies the enumeration contains exactly the four
// supported models, each with a distinct label.
func TestKindsAreClosed(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != 4 {
		t.Fatalf("Expected 4 phantom kinds, got %d", len(kinds))
	}

	seen := make(map[string]bool)
	for _, kind := range kinds {
		if !kind.Valid() {
			t.Errorf("Kind %d reported as invalid", int(kind))
		}

		label := kind.Label()
		if label == "" {
			t.Errorf("Kind %d has empty label", int(kind))
		}
		if seen[label] {
			t.Errorf("Duplicate label %q", label)
		}
		seen[label] = true
	}
}

// TestOutOfEnumerationKind verifies values outside the closed set are
// rejected.
func TestOutOfEnumerationKind(t *testing.T) {
	bogus := Kind(42)

	if bogus.Valid() {
		t.Error("Expected Kind(42) to be invalid")
	}

	if bogus.Label() == "" {
		t.Error("Expected placeholder label for invalid kind")
	}
}

// TestParseKind verifies the accepted spellings for each model.
func TestParseKind(t *testing.T) {
	cases := []struct {
		input string
		want  Kind
	}{
		{"CatPhan 504", CatPhan504},
		{"catphan504", CatPhan504},
		{"504", CatPhan504},
		{"catphan-503", CatPhan503},
		{"CATPHAN600", CatPhan600},
		{" 604 ", CatPhan604},
	}

	for _, tc := range cases {
		got, err := ParseKind(tc.input)
		if err != nil {
			t.Errorf("ParseKind(%q) returned error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

// TestParseKindRejectsUnknown verifies unknown names fail with
// ErrUnsupportedPhantom.
func TestParseKindRejectsUnknown(t *testing.T) {
	_, err := ParseKind("catphan700")
	if err == nil {
		t.Fatal("Expected error for unknown phantom name, got nil")
	}
	if !errors.Is(err, ErrUnsupportedPhantom) {
		t.Errorf("Expected ErrUnsupportedPhantom, got %v", err)
	}
}
