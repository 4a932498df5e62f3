package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// RawCompletion is a completion value exactly as a client sent it. It carries
// no meaning until normalized; compare tasks by Task.Completed instead.
type RawCompletion struct {
	value any
	set   bool
}

// NewRawCompletion wraps a client-provided value.
func NewRawCompletion(v any) RawCompletion {
	return RawCompletion{value: v, set: true}
}

// IsSet reports whether the field was present in the input, including an explicit null.
func (r RawCompletion) IsSet() bool {
	return r.set
}

// Value returns the raw value.
func (r RawCompletion) Value() any {
	return r.value
}

// Normalize returns the canonical form. An absent value normalizes to false,
// so update paths must check IsSet first.
func (r RawCompletion) Normalize() (bool, error) {
	if !r.set {
		return false, nil
	}
	return NormalizeCompletion(r.value)
}

// UnmarshalJSON keeps the decoded value untouched. A JSON null still marks the field as set.
func (r *RawCompletion) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}

	r.value = v
	r.set = true
	return nil
}

// NormalizeCompletion maps a lenient completion input to a boolean.
//
// Truthy: true, 1, "yes", "true", "1". Falsy: false, 0, "no", "false", "0", "", nil.
// Strings are matched case-insensitively. Anything else is an invalid completion value.
func NormalizeCompletion(v any) (bool, error) {
	switch val := v.(type) {
	case nil:
		return false, nil
	case bool:
		return val, nil
	case string:
		switch strings.ToLower(val) {
		case "yes", "true", "1":
			return true, nil
		case "no", "false", "0", "":
			return false, nil
		}
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return numberCompletion(f, v)
		}
	case float64:
		return numberCompletion(val, v)
	case float32:
		return numberCompletion(float64(val), v)
	case int:
		return numberCompletion(float64(val), v)
	case int32:
		return numberCompletion(float64(val), v)
	case int64:
		return numberCompletion(float64(val), v)
	case uint:
		return numberCompletion(float64(val), v)
	case uint64:
		return numberCompletion(float64(val), v)
	}

	return false, NewInvalidCompletionError(v)
}

func numberCompletion(f float64, original any) (bool, error) {
	switch {
	case f == 1:
		return true, nil
	case f == 0:
		return false, nil
	}
	return false, NewInvalidCompletionError(original)
}
