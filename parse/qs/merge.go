package qs

// Merge combines two trees into a new one. It is defined for every pair of
// variants and never modifies a or b; untouched sub-trees are shared.
//
// Rules, in priority order:
//   - b absent (nil): a
//   - Dict + Array: the array is read as a dict of index -> value
//   - Array + Dict: a is read as a dict of index -> value
//   - Dict + Dict: a's entries, existing keys merged in place, new keys appended
//   - Dict + String/Int: the scalar is added as a key mapped to Bool(true)
//   - Array + Array: slot by slot, see mergeArrays
//   - otherwise: concatenation of both operands into one array
func Merge(a, b Value) Value {
	return merge(a, b, false)
}

// merge implements Merge. With owned set, a and everything below it belong
// to the caller and are updated in place instead of being copied; the parser
// uses this for the tree it is building, which nobody else can see yet.
func merge(a, b Value, owned bool) Value {
	if b == nil {
		return a
	}
	if a == nil {
		return b
	}

	switch t := a.(type) {
	case *Dict:
		switch s := b.(type) {
		case *Dict:
			return mergeDicts(t, s, owned)
		case *Array:
			return mergeDicts(t, s.toDict(), owned)
		case String, Int:
			k, _ := keyOf(s)
			out := t
			if !owned {
				out = t.clone()
			}
			out.set(k, Bool(true))
			return out
		}
	case *Array:
		switch s := b.(type) {
		case *Dict:
			return mergeDicts(t.toDict(), s, owned)
		case *Array:
			return mergeArrays(t, s, owned)
		}
	}
	return concat(a, b)
}

func mergeDicts(a, b *Dict, owned bool) *Dict {
	out := a
	if !owned {
		out = a.clone()
	}
	for _, e := range b.entries {
		if cur, ok := out.Get(e.key); ok {
			out.set(e.key, merge(cur, e.value, owned))
			continue
		}
		out.set(e.key, e.value)
	}
	return out
}

// mergeArrays walks b's slots in index order. An empty slot of the result
// takes b's value, two dicts at the same index are merged, and any other
// collision appends b's value at the end so nothing is dropped. The result
// grows while walking, so later indices see the appended values.
func mergeArrays(a, b *Array, owned bool) *Array {
	out := a.elems
	if !owned {
		out = make([]Value, len(a.elems), len(a.elems)+len(b.elems))
		copy(out, a.elems)
	}

	for i, v := range b.elems {
		if v == nil {
			continue
		}
		if i >= len(out) {
			for len(out) < i {
				out = append(out, nil)
			}
			out = append(out, v)
			continue
		}
		cur := out[i]
		if cur == nil {
			out[i] = v
			continue
		}
		cd, curIsDict := cur.(*Dict)
		vd, vIsDict := v.(*Dict)
		if curIsDict && vIsDict {
			out[i] = mergeDicts(cd, vd, owned)
			continue
		}
		out = append(out, v)
	}

	if owned {
		a.elems = out
		return a
	}
	return &Array{elems: out}
}

// concat joins both operands into one array, flattening array operands and
// keeping their holes.
func concat(a, b Value) *Array {
	out := make([]Value, 0, 2)
	for _, v := range []Value{a, b} {
		if arr, ok := v.(*Array); ok {
			out = append(out, arr.elems...)
			continue
		}
		out = append(out, v)
	}
	return &Array{elems: out}
}
