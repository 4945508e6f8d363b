package linediff

import (
	"encoding/json"
	"fmt"
)

// Kind classifies a diff line.
type Kind uint8

// Diff kinds.
const (
	Unchanged Kind = iota
	Added
	Removed
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Marker returns the single-character gutter marker for the kind.
func (k Kind) Marker() string {
	switch k {
	case Added:
		return "+"
	case Removed:
		return "-"
	default:
		return " "
	}
}

// MarshalJSON encodes the kind by name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a kind name.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("diff kind: %w", err)
	}
	switch name {
	case "unchanged":
		*k = Unchanged
	case "added":
		*k = Added
	case "removed":
		*k = Removed
	default:
		return fmt.Errorf("unknown diff kind %q", name)
	}
	return nil
}

// MarshalYAML encodes the kind by name.
func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}
