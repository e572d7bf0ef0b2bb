package qs

// Compact returns v with every hole removed from every array, recursively.
// Dict keys and their order are kept. Leaves are returned as is.
//
// Compaction rules (applied recursively):
//  1. Array -> the non-hole elements in index order, each compacted
//  2. Dict  -> same keys in the same order, each value compacted
//  3. Anything else -> unchanged
func Compact(v Value) Value {
	switch t := v.(type) {
	case *Array:
		return compactArray(t)
	case *Dict:
		return compactDict(t)
	}
	return v
}

func compactArray(a *Array) *Array {
	out := make([]Value, 0, len(a.elems))
	for _, v := range a.elems {
		if v == nil {
			continue
		}
		out = append(out, Compact(v))
	}
	return &Array{elems: out}
}

func compactDict(d *Dict) *Dict {
	out := &Dict{
		entries: make([]dictEntry, len(d.entries)),
		index:   make(map[Key]int, len(d.entries)),
	}
	for i, e := range d.entries {
		out.entries[i] = dictEntry{key: e.key, value: Compact(e.value)}
		out.index[e.key] = i
	}
	return out
}
