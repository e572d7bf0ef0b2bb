package qs

import "strings"

// Dict is an ordered mapping from Key to Value. Keys are unique and keep
// their first insertion order.
type Dict struct {
	entries []dictEntry
	index   map[Key]int // key -> position in entries
}

type dictEntry struct {
	key   Key
	value Value
}

func NewDict() *Dict {
	return &Dict{index: map[Key]int{}}
}

// With sets key to v and returns d. It is meant for building literals:
//
//	qs.NewDict().With(qs.StringKey("a"), qs.String("b"))
//
// A Dict must not be modified with With after it has been shared.
func (d *Dict) With(key Key, v Value) *Dict {
	d.set(key, v)
	return d
}

// WithString is With for a string key.
func (d *Dict) WithString(key string, v Value) *Dict {
	return d.With(StringKey(key), v)
}

func (*Dict) Kind() Kind { return Kinds.Dict }
func (*Dict) sealed()    {}

func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

func (d *Dict) Get(key Key) (Value, bool) {
	if d == nil {
		return nil, false
	}
	i, ok := d.index[key]
	if !ok {
		return nil, false
	}
	return d.entries[i].value, true
}

func (d *Dict) Has(key Key) bool {
	_, ok := d.Get(key)
	return ok
}

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []Key {
	keys := make([]Key, d.Len())
	for i := range keys {
		keys[i] = d.entries[i].key
	}
	return keys
}

// Each calls fn for every entry in insertion order until fn returns false.
func (d *Dict) Each(fn func(Key, Value) bool) {
	if d == nil {
		return
	}
	for _, e := range d.entries {
		if !fn(e.key, e.value) {
			return
		}
	}
}

func (d *Dict) Equal(other Value) bool {
	o, ok := other.(*Dict)
	if !ok || o.Len() != d.Len() {
		return false
	}
	for i, e := range d.entries {
		oe := o.entries[i]
		if e.key != oe.key || !Equal(e.value, oe.value) {
			return false
		}
	}
	return true
}

func (d *Dict) String() string {
	parts := make([]string, 0, d.Len())
	for _, e := range d.entries {
		k := quote(e.key.String())
		if e.key.IsInt() {
			k = e.key.String()
		}
		parts = append(parts, k+":"+valueString(e.value))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// set inserts or replaces in place, keeping its position.
func (d *Dict) set(key Key, v Value) {
	if d.index == nil {
		d.index = map[Key]int{}
	}
	if i, ok := d.index[key]; ok {
		d.entries[i].value = v
		return
	}
	d.index[key] = len(d.entries)
	d.entries = append(d.entries, dictEntry{key: key, value: v})
}

func (d *Dict) clone() *Dict {
	out := &Dict{
		entries: make([]dictEntry, len(d.entries), len(d.entries)+1),
		index:   make(map[Key]int, len(d.entries)+1),
	}
	copy(out.entries, d.entries)
	for k, i := range d.index {
		out.index[k] = i
	}
	return out
}

// valueString renders v for debugging; holes print as "undefined".
func valueString(v Value) string {
	switch t := v.(type) {
	case nil:
		return "undefined"
	case String:
		return quote(string(t))
	default:
		return v.String()
	}
}
