package qs

import "strings"

// splitKeyChain splits a decoded key into its parent and at most depth
// bracket segments. Whatever is left is wrapped in one more pair of brackets
// and kept as a single opaque segment. The parent is dropped when empty.
//
//	a[b][c]          -> a, [b], [c]
//	a[b][c][d] (d=1) -> a, [b], [[c][d]]
func splitKeyChain(key string, depth int) (chain []string, folded bool) {
	idx := -1
	if depth > 0 {
		idx = strings.IndexByte(key, '[')
	}
	parent, rest := key, ""
	if idx >= 0 {
		parent, rest = key[:idx], key[idx:]
	}

	chain = make([]string, 0, min(depth, 8)+2)
	if parent != "" {
		chain = append(chain, parent)
	}
	for i := 0; i < depth && strings.HasPrefix(rest, "["); i++ {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			break
		}
		chain = append(chain, rest[:end+1])
		rest = rest[end+1:]
	}
	if rest != "" {
		chain = append(chain, "["+rest+"]")
		folded = true
	}
	return chain, folded
}

// rewriteDots turns dot notation into bracket notation. Dots inside a
// bracket segment are part of that segment and stay as they are:
//
//	a.b[c].d -> a[b][c][d]
//	a.b[c.d] -> a[b][c.d]
func rewriteDots(key string) string {
	if strings.IndexByte(key, '.') < 0 {
		return key
	}

	var b strings.Builder
	b.Grow(len(key) + 4)
	open := 0
	for i := 0; i < len(key); i++ {
		switch c := key[i]; {
		case c == '[':
			open++
			b.WriteByte(c)
		case c == ']':
			if open > 0 {
				open--
			}
			b.WriteByte(c)
		case c == '.' && open == 0:
			rest := key[i+1:]
			end := strings.IndexAny(rest, "[.")
			if end < 0 {
				end = len(rest)
			}
			b.WriteByte('[')
			b.WriteString(rest[:end])
			b.WriteByte(']')
			i += end
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// decompose builds the tree for a single key chain, innermost segment first.
// It returns nil for an empty chain.
func (p *Parser) decompose(key string, leaf Value) Value {
	if p.opts.AllowDots {
		key = rewriteDots(key)
	}
	chain, folded := splitKeyChain(key, p.opts.Depth)
	if folded && len(chain) > 0 {
		p.log.Debug("key deeper than limit, remainder kept as literal",
			"key", key, "depth", p.opts.Depth, "remainder", chain[len(chain)-1])
	}
	if len(chain) == 0 {
		return nil
	}

	cur := leaf
	for i := len(chain) - 1; i >= 0; i-- {
		cur = p.wrapSegment(chain[i], cur)
	}
	return cur
}

// wrapSegment places v under one segment of a key chain.
func (p *Parser) wrapSegment(seg string, v Value) Value {
	if seg == "[]" && p.opts.ParseArrays {
		// duplicate keys are grouped into an array before decomposition
		if arr, ok := v.(*Array); ok {
			return arr
		}
		return NewArray(v)
	}

	bracketed := len(seg) >= 2 && seg[0] == '[' && seg[len(seg)-1] == ']'
	content := seg
	if bracketed {
		content = seg[1 : len(seg)-1]
	}

	if content == "" && !p.opts.ParseArrays {
		return NewDict().With(IntKey(0), v)
	}

	n, isInt := canonicalInt(content)
	if isInt && bracketed && n >= 0 && p.opts.ParseArrays {
		if n <= int64(p.opts.ArrayLimit) {
			return SparseArray(int(n), v)
		}
		p.log.Debug("array index over limit, using dict key",
			"index", n, "limit", p.opts.ArrayLimit)
	}
	if isInt && p.opts.ParseIntKeys {
		return NewDict().With(IntKey(n), v)
	}
	return NewDict().With(StringKey(content), v)
}
