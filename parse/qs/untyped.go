package qs

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// =========================
// Safe Access Helpers
// =========================

// Get walks root along path. A path element selects a dict key by its string
// form, or an array slot by its decimal index.
func Get(root Value, path ...string) (Value, bool) {
	cur := root
	for _, p := range path {
		switch t := cur.(type) {
		case *Dict:
			v, ok := t.Get(StringKey(p))
			if !ok {
				n, isInt := canonicalInt(p)
				if !isInt {
					return nil, false
				}
				if v, ok = t.Get(IntKey(n)); !ok {
					return nil, false
				}
			}
			cur = v
		case *Array:
			i, err := strconv.Atoi(p)
			if err != nil {
				return nil, false
			}
			v, ok := t.Get(i)
			if !ok {
				return nil, false
			}
			cur = v
		default:
			return nil, false
		}
	}
	return cur, true
}

func GetUntyped(root Value, path ...string) (any, bool) {
	v, ok := Get(root, path...)
	if !ok {
		return nil, false
	}
	return ToUntyped(v), true
}

// ToUntyped converts v to plain Go values: map[string]any, []any, string,
// int64, bool and nil. Dict order is lost; holes become nil.
func ToUntyped(v Value) any {
	switch t := v.(type) {
	case *Dict:
		m := make(map[string]any, t.Len())
		for _, e := range t.entries {
			m[e.key.String()] = ToUntyped(e.value)
		}
		return m
	case *Array:
		out := make([]any, len(t.elems))
		for i, e := range t.elems {
			out[i] = ToUntyped(e)
		}
		return out
	case String:
		return string(t)
	case Int:
		return int64(t)
	case Bool:
		return bool(t)
	}
	return nil
}

// FromUntyped converts plain Go values into a tree. Map keys are sorted,
// since Go maps have no order. Integral numbers become Int, other numbers
// become their shortest String form.
func FromUntyped(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return t, nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(t), nil
	case int64:
		return Int(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return String(strconv.FormatUint(t, 10)), nil
		}
		return Int(t), nil
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1<<53 {
			return Int(int64(t)), nil
		}
		return String(strconv.FormatFloat(t, 'g', -1, 64)), nil
	case []any:
		out := make([]Value, len(t))
		for i, e := range t {
			v, err := FromUntyped(e)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = v
		}
		return NewArray(out...), nil
	case []string:
		out := make([]Value, len(t))
		for i, e := range t {
			out[i] = String(e)
		}
		return NewArray(out...), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		d := NewDict()
		for _, k := range keys {
			v, err := FromUntyped(t[k])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			d.set(StringKey(k), v)
		}
		return d, nil
	}
	return nil, fmt.Errorf("unsupported value of type %T", x)
}

func MustString(v Value) string {
	return string(v.(String))
}
