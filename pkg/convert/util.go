package convert

import (
	"encoding/json"
	"fmt"
)

// RefOf returns a pointer to the specified value.
func RefOf[T any](value T) *T {
	return &value
}

// ToValueWithDefault converts a pointer to a value type.
// If the ptr is nil returns the default value, otherwise the value of the pointer.
func ToValueWithDefault[T any](ptr *T, defaultValue T) T {
	if ptr == nil {
		return defaultValue
	}

	if str, ok := any(ptr).(*string); ok && *str == "" {
		return defaultValue
	}

	return *ptr
}

// ToMap converts the specified value to a map.
func ToMap(value any) (map[string]any, error) {
	if value == nil {
		return nil, nil
	}

	jsonValue, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to convert value to json: %w", err)
	}

	var mapValue map[string]any
	if err := json.Unmarshal(jsonValue, &mapValue); err != nil {
		return nil, fmt.Errorf("failed to convert value to map: %w", err)
	}

	return mapValue, nil
}
