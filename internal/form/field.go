package form

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnknownField is returned for a path that does not exist in the draft.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrInvalidValue is returned when a value does not fit the field type.
	ErrInvalidValue = errors.New("form: invalid value")
	// ErrImmutableField is returned when a locked field is edited.
	ErrImmutableField = errors.New("form: field is immutable")
	// ErrIndex is returned for an out of range list position.
	ErrIndex = errors.New("form: index out of range")
)

// SetField returns a copy of draft with the value at the dotted path
// replaced. Path segments address object keys by their JSON name and list
// items by index; an index equal to the list length appends. The input
// draft is left untouched.
func SetField[T any](draft T, path string, value interface{}) (T, error) {
	var zero T
	if path == "" {
		return zero, fmt.Errorf("%w: empty path", ErrUnknownField)
	}

	raw, err := json.Marshal(draft)
	if err != nil {
		return zero, fmt.Errorf("encode draft: %w", err)
	}
	var tree interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&tree); err != nil {
		return zero, fmt.Errorf("decode draft: %w", err)
	}

	tree, err = assign(tree, strings.Split(path, "."), value, path)
	if err != nil {
		return zero, err
	}

	raw, err = json.Marshal(tree)
	if err != nil {
		return zero, fmt.Errorf("%w: %s: %v", ErrInvalidValue, path, err)
	}
	var next T
	dec = json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&next); err != nil {
		return zero, fmt.Errorf("%w: %s: %v", ErrInvalidValue, path, err)
	}
	return next, nil
}

func assign(node interface{}, segs []string, value interface{}, path string) (interface{}, error) {
	if len(segs) == 0 {
		return value, nil
	}
	seg := segs[0]

	switch n := node.(type) {
	case map[string]interface{}:
		child, ok := n[seg]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, path)
		}
		v, err := assign(child, segs[1:], value, path)
		if err != nil {
			return nil, err
		}
		n[seg] = v
		return n, nil
	case []interface{}:
		i, err := strconv.Atoi(seg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, path)
		}
		if i < 0 || i > len(n) || (i == len(n) && len(segs) > 1) {
			return nil, fmt.Errorf("%w: %s", ErrIndex, path)
		}
		if i == len(n) {
			return append(n, value), nil
		}
		v, err := assign(n[i], segs[1:], value, path)
		if err != nil {
			return nil, err
		}
		n[i] = v
		return n, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, path)
	}
}

// Move returns a copy of items with the element at from placed at to.
func Move[T any](items []T, from, to int) ([]T, error) {
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return nil, fmt.Errorf("%w: move %d -> %d of %d", ErrIndex, from, to, len(items))
	}
	out := make([]T, 0, len(items))
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)
	moved := items[from]
	out = append(out[:to], append([]T{moved}, out[to:]...)...)
	return out, nil
}

// Remove returns a copy of items without the element at i.
func Remove[T any](items []T, i int) ([]T, error) {
	if i < 0 || i >= len(items) {
		return nil, fmt.Errorf("%w: remove %d of %d", ErrIndex, i, len(items))
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...), nil
}
