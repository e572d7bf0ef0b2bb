// Package qs converts URL query strings into nested, ordered value trees and
// back.
//
// Scope:
// - Bracket (a[b][c]) and dot (a.b.c) key chains
// - Arrays by index, by empty brackets and by comma
// - Sparse arrays with explicit holes
// - Depth, array index and parameter count limits
// - Deterministic stringify in four array formats
//
// Non-goals (by design):
// - Type inference of values (everything parsed is a String)
// - Mutation of a tree after it has been returned
//
// Parsing never fails on data. Malformed escapes, bad indices and
// over-deep keys degrade to well defined fallbacks.
package qs

import (
	"strconv"
	"strings"
)

// =========================
// Value Definitions
// =========================

type Kind string

var Kinds = struct {
	Null   Kind
	Bool   Kind
	Int    Kind
	String Kind
	Array  Kind
	Dict   Kind
}{
	Null:   "null",
	Bool:   "bool",
	Int:    "int",
	String: "string",
	Array:  "array",
	Dict:   "dict",
}

// Value is a node of a parsed tree. The set of implementations is closed:
// Null, Bool, Int, String, *Array and *Dict.
type Value interface {
	Kind() Kind
	String() string
	Equal(other Value) bool

	sealed()
}

// -------- Null --------

// Null is an explicit absence. It is distinct from the empty String and from
// a hole in an Array.
type Null struct{}

func (Null) Kind() Kind     { return Kinds.Null }
func (Null) String() string { return "null" }
func (Null) sealed()        {}

func (Null) Equal(other Value) bool {
	_, ok := other.(Null)
	return ok
}

// -------- Bool --------

type Bool bool

func (Bool) Kind() Kind       { return Kinds.Bool }
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }
func (Bool) sealed()          {}

func (b Bool) Equal(other Value) bool {
	o, ok := other.(Bool)
	return ok && o == b
}

// -------- Int --------

type Int int64

func (Int) Kind() Kind       { return Kinds.Int }
func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }
func (Int) sealed()          {}

func (i Int) Equal(other Value) bool {
	o, ok := other.(Int)
	return ok && o == i
}

// -------- String --------

type String string

func (String) Kind() Kind       { return Kinds.String }
func (s String) String() string { return string(s) }
func (String) sealed()          {}

func (s String) Equal(other Value) bool {
	o, ok := other.(String)
	return ok && o == s
}

// =========================
// Helpers
// =========================

// Equal reports whether a and b are deeply equal. Dict key order is
// significant and a hole only equals a hole.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// scalarText renders a leaf the way it is written into a query string.
func scalarText(v Value) (string, bool) {
	switch t := v.(type) {
	case String:
		return string(t), true
	case Int:
		return t.String(), true
	case Bool:
		return t.String(), true
	case Null:
		return "", true
	}
	return "", false
}

func quote(s string) string {
	return strconv.Quote(s)
}

func joinValues(vals []string) string {
	return "[" + strings.Join(vals, ",") + "]"
}
