// Package parse bridges query string trees and the document formats the
// command line reads and writes.
//
// JSON and YAML documents are decoded with their key order intact, so a
// document stringifies to the same entry order it was written in.
package parse

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dzjyyds666/qs/parse/qs"
	"github.com/goccy/go-yaml"
)

// =========================
// Decoding
// =========================

// DecodeDocument reads a JSON or YAML document into a tree. JSON is read as
// YAML, which it is a subset of.
func DecodeDocument(data []byte) (qs.Value, error) {
	var doc any
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return fromDocument(doc)
}

func fromDocument(x any) (qs.Value, error) {
	switch t := x.(type) {
	case yaml.MapSlice:
		d := qs.NewDict()
		for _, item := range t {
			k, err := documentKey(item.Key)
			if err != nil {
				return nil, err
			}
			v, err := fromDocument(item.Value)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k.String(), err)
			}
			d.With(k, v)
		}
		return d, nil
	case []any:
		out := make([]qs.Value, len(t))
		for i, e := range t {
			v, err := fromDocument(e)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = v
		}
		return qs.NewArray(out...), nil
	}
	return qs.FromUntyped(x)
}

func documentKey(k any) (qs.Key, error) {
	switch t := k.(type) {
	case string:
		return qs.StringKey(t), nil
	case int:
		return qs.IntKey(int64(t)), nil
	case int64:
		return qs.IntKey(t), nil
	case uint64:
		return qs.IntKey(int64(t)), nil
	case bool:
		return qs.StringKey(strconv.FormatBool(t)), nil
	case float64:
		return qs.StringKey(strconv.FormatFloat(t, 'g', -1, 64)), nil
	case nil:
		return qs.StringKey("null"), nil
	}
	return qs.Key{}, fmt.Errorf("unsupported key of type %T", k)
}

// =========================
// Encoding
// =========================

// EncodeJSON writes v as indented JSON with dict order preserved.
func EncodeJSON(v qs.Value) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// EncodeYAML writes v as YAML with dict order preserved. Holes are written
// as null.
func EncodeYAML(v qs.Value) ([]byte, error) {
	return yaml.Marshal(toDocument(v))
}

func toDocument(v qs.Value) any {
	switch t := v.(type) {
	case *qs.Dict:
		ms := make(yaml.MapSlice, 0, t.Len())
		t.Each(func(k qs.Key, e qs.Value) bool {
			var key any = k.String()
			if n, ok := k.Int(); ok {
				key = n
			}
			ms = append(ms, yaml.MapItem{Key: key, Value: toDocument(e)})
			return true
		})
		return ms
	case *qs.Array:
		out := make([]any, t.Len())
		for i := range out {
			if e, ok := t.Get(i); ok {
				out[i] = toDocument(e)
			}
		}
		return out
	}
	return qs.ToUntyped(v)
}
