// Package yamlutil wraps YAML parsing to isolate the external dependency.
// Callers never import the YAML library directly, including for ordered
// mappings.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrNonStringKey   = errors.New("yamlutil: mapping key is not a string")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Unmarshal decodes data into v, ignoring unknown fields.
func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

func Marshal(v any) ([]byte, error) {
	result, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return result, nil
}

// MapItem is one entry of an OrderedMap.
type MapItem struct {
	Key   string
	Value any
}

// OrderedMap is a YAML mapping that keeps the document's key order.
// Scalar values decode as bool, string, uint64, int64 or float64;
// sequences as []any.
type OrderedMap []MapItem

// UnmarshalYAML implements the YAML library's interface unmarshaler.
func (m *OrderedMap) UnmarshalYAML(unmarshal func(any) error) error {
	var slice yaml.MapSlice
	if err := unmarshal(&slice); err != nil {
		return err
	}
	out := make(OrderedMap, 0, len(slice))
	for _, item := range slice {
		key, ok := item.Key.(string)
		if !ok {
			return fmt.Errorf("%w: %v", ErrNonStringKey, item.Key)
		}
		out = append(out, MapItem{Key: key, Value: item.Value})
	}
	*m = out
	return nil
}

// MarshalYAML emits the entries in order.
func (m OrderedMap) MarshalYAML() (any, error) {
	slice := make(yaml.MapSlice, len(m))
	for i, item := range m {
		slice[i] = yaml.MapItem{Key: item.Key, Value: item.Value}
	}
	return slice, nil
}
