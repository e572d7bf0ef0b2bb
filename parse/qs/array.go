package qs

// Array is an ordered sequence of slots. A slot holds a Value or is a hole.
// Holes only appear while parsing (or with sparse parsing enabled) and are
// never handed out as Values: Get reports them with ok == false.
type Array struct {
	elems []Value // nil slot = hole
}

// NewArray returns a dense array holding vals. Nil entries become holes.
func NewArray(vals ...Value) *Array {
	elems := make([]Value, len(vals))
	copy(elems, vals)
	return &Array{elems: elems}
}

// SparseArray returns an array of length index+1 with v at index and holes
// below it.
func SparseArray(index int, v Value) *Array {
	elems := make([]Value, index+1)
	elems[index] = v
	return &Array{elems: elems}
}

func (*Array) Kind() Kind { return Kinds.Array }
func (*Array) sealed()    {}

// Len counts slots, holes included.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.elems)
}

// Get returns the value at i. ok is false for holes and out of range indices.
func (a *Array) Get(i int) (Value, bool) {
	if i < 0 || i >= a.Len() || a.elems[i] == nil {
		return nil, false
	}
	return a.elems[i], true
}

// IsSparse reports whether a has at least one hole.
func (a *Array) IsSparse() bool {
	for _, v := range a.elems {
		if v == nil {
			return true
		}
	}
	return false
}

// Values returns the non-hole elements in index order.
func (a *Array) Values() []Value {
	out := make([]Value, 0, a.Len())
	for _, v := range a.elems {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

// Each calls fn for every non-hole slot until fn returns false.
func (a *Array) Each(fn func(int, Value) bool) {
	for i, v := range a.elems {
		if v == nil {
			continue
		}
		if !fn(i, v) {
			return
		}
	}
}

func (a *Array) Equal(other Value) bool {
	o, ok := other.(*Array)
	if !ok || o.Len() != a.Len() {
		return false
	}
	for i, v := range a.elems {
		if !Equal(v, o.elems[i]) {
			return false
		}
	}
	return true
}

func (a *Array) String() string {
	parts := make([]string, len(a.elems))
	for i, v := range a.elems {
		parts[i] = valueString(v)
	}
	return joinValues(parts)
}

// toDict is the dict-of-index view used when an array meets a dict during
// merge. Holes are omitted.
func (a *Array) toDict() *Dict {
	d := &Dict{index: make(map[Key]int, len(a.elems))}
	for i, v := range a.elems {
		if v == nil {
			continue
		}
		d.set(IntKey(int64(i)), v)
	}
	return d
}
