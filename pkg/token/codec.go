package token

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// MarshalJSON encodes the kind as its stable number.
func (k Kind) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatUint(uint64(k), 10)), nil
}

// UnmarshalJSON accepts either the numeric value or the wire name.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var num uint16
	if err := json.Unmarshal(data, &num); err == nil {
		return k.set(num)
	}

	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("token kind must be a number or a name: %w", err)
	}
	parsed, err := ParseKind(name)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalYAML encodes the kind as its stable number.
func (k Kind) MarshalYAML() (any, error) {
	return uint16(k), nil
}

// UnmarshalYAML accepts either the numeric value or the wire name.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: token kind must be a scalar", node.Line)
	}
	if num, err := strconv.ParseUint(node.Value, 10, 16); err == nil {
		return k.set(uint16(num))
	}
	parsed, err := ParseKind(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*k = parsed
	return nil
}

func (k *Kind) set(num uint16) error {
	kind := Kind(num)
	if !kind.IsValid() {
		return fmt.Errorf("unknown token kind %d", num)
	}
	*k = kind
	return nil
}
