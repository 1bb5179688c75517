// Package phantom defines the closed set of CT phantom hardware models
// supported by the analysis pipeline. A phantom kind is selected by the user
// before a run and maps to a specific analyzer geometry.
package phantom

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedPhantom is returned when a value outside the closed
// enumeration reaches the registry. The enumeration is closed, so hitting
// this error indicates a configuration bug rather than a user mistake.
var ErrUnsupportedPhantom = errors.New("unsupported phantom kind")

// Kind identifies one of the supported CatPhan phantom models.
type Kind int

const (
	// CatPhan503 is the CatPhan 503 model. It carries no low-contrast
	// detectability module.
	CatPhan503 Kind = iota

	// CatPhan504 is the CatPhan 504 model.
	CatPhan504

	// CatPhan600 is the CatPhan 600 model.
	CatPhan600

	// CatPhan604 is the CatPhan 604 model.
	CatPhan604
)

// kindLabels maps each kind to its human-readable label as printed in
// summaries and reports.
var kindLabels = map[Kind]string{
	CatPhan503: "CatPhan 503",
	CatPhan504: "CatPhan 504",
	CatPhan600: "CatPhan 600",
	CatPhan604: "CatPhan 604",
}

// Kinds returns all supported phantom kinds in a fixed order.
func Kinds() []Kind {
	return []Kind{CatPhan503, CatPhan504, CatPhan600, CatPhan604}
}

// Label returns the human-readable label for the kind, or a placeholder for
// out-of-enumeration values.
func (k Kind) Label() string {
	if label, ok := kindLabels[k]; ok {
		return label
	}
	return fmt.Sprintf("unknown phantom (%d)", int(k))
}

// Valid reports whether the kind is part of the closed enumeration.
func (k Kind) Valid() bool {
	_, ok := kindLabels[k]
	return ok
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	return k.Label()
}

// ParseKind resolves a user-supplied name to a phantom kind. It accepts the
// display label ("CatPhan 504"), the compact form ("catphan504") and the bare
// model number ("504"), case-insensitively.
func ParseKind(name string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, " ", "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	normalized = strings.ReplaceAll(normalized, "_", "")

	for _, kind := range Kinds() {
		label := strings.ToLower(strings.ReplaceAll(kind.Label(), " ", ""))
		number := strings.TrimPrefix(label, "catphan")
		if normalized == label || normalized == number {
			return kind, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnsupportedPhantom, name)
}
