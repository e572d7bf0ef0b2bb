package qs

import "strconv"

// Key is a Dict key: either a string or an integer. The zero Key is the
// empty string key.
type Key struct {
	str   string
	num   int64
	isInt bool
}

func StringKey(s string) Key { return Key{str: s} }

func IntKey(i int64) Key { return Key{num: i, isInt: true} }

func (k Key) IsInt() bool { return k.isInt }

// Int returns the integer form of k and whether k is an integer key.
func (k Key) Int() (int64, bool) { return k.num, k.isInt }

func (k Key) String() string {
	if k.isInt {
		return strconv.FormatInt(k.num, 10)
	}
	return k.str
}

// Value returns k as a tree value (Int or String).
func (k Key) Value() Value {
	if k.isInt {
		return Int(k.num)
	}
	return String(k.str)
}

// keyOf reports the Key form of a scalar that may serve as a dict key.
func keyOf(v Value) (Key, bool) {
	switch t := v.(type) {
	case String:
		return StringKey(string(t)), true
	case Int:
		return IntKey(int64(t)), true
	}
	return Key{}, false
}

// canonicalInt parses s as a base 10 integer whose canonical form is exactly
// s: no sign on zero, no leading zeros, no plus sign, no spaces.
func canonicalInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || strconv.FormatInt(n, 10) != s {
		return 0, false
	}
	return n, true
}
