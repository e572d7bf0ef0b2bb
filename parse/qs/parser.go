package qs

import (
	"log/slog"
	"strings"
)

// =========================
// Public API
// =========================

// Parser turns query strings into trees. A Parser is immutable and safe for
// concurrent use.
type Parser struct {
	opts ParseOptions
	log  *slog.Logger
}

// NewParser validates opts and returns a Parser using them. A nil Decoder
// falls back to FormDecoder and a nil Logger discards everything.
func NewParser(opts ParseOptions) (*Parser, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Decoder == nil {
		opts.Decoder = FormDecoder{}
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Parser{opts: opts, log: log}, nil
}

// Options returns a copy of the parser configuration.
func (p *Parser) Options() ParseOptions { return p.opts }

var defaultParser, _ = NewParser(DefaultParseOptions())

// Parse parses s with the default options.
func Parse(s string) *Dict {
	return defaultParser.Parse(s)
}

// Parse parses a query string. The root is always a Dict; an empty input
// yields an empty Dict. Parsing does not fail: input that cannot be read
// structurally is kept literally.
func (p *Parser) Parse(s string) *Dict {
	root := NewDict()
	if s == "" {
		return root
	}

	for _, e := range p.parseValues(s).entries {
		frag := p.decompose(e.key.String(), e.value)
		switch t := frag.(type) {
		case *Dict:
			mergeDicts(root, t, true)
		case *Array:
			// a chain starting with [] or a bare index has no parent key
			mergeDicts(root, t.toDict(), true)
		}
	}

	if p.opts.AllowSparse {
		return root
	}
	return compactDict(root)
}

// =========================
// Parser Implementation
// =========================

// parseValues splits s into decoded key/value pairs. Pairs sharing a decoded
// key are grouped into one array value, in first-seen order.
func (p *Parser) parseValues(s string) *Dict {
	if p.opts.IgnoreQueryPrefix {
		s = strings.TrimPrefix(s, "?")
	}

	parts := p.split(s)
	if limit := p.opts.ParameterLimit; limit > 0 && len(parts) > limit {
		p.log.Debug("parameter limit reached, dropping entries",
			"limit", limit, "dropped", len(parts)-limit)
		parts = parts[:limit]
	}

	cs := p.opts.Charset
	if p.opts.CharsetSentinel {
		if found, ok := findCharsetSentinel(parts); ok {
			p.log.Debug("charset sentinel found", "charset", found)
			cs = found
		}
	}

	grouped := NewDict()
	for _, part := range parts {
		if strings.HasPrefix(part, sentinelPrefix) || strings.TrimSpace(part) == "" {
			continue
		}

		key, val := p.splitPart(part, cs)
		if key == "" {
			continue
		}
		if p.opts.InterpretNumericEntities && cs == ISO88591 {
			val = interpretEntities(val)
		}

		k := StringKey(key)
		if prev, ok := grouped.Get(k); ok {
			grouped.set(k, group(prev, val))
			continue
		}
		grouped.set(k, val)
	}
	return grouped
}

// group adds val to the values collected so far for one key. Every array
// involved was built by this parse, so it is extended in place.
func group(prev, val Value) Value {
	acc, ok := prev.(*Array)
	if !ok {
		return concat(prev, val)
	}
	if more, ok := val.(*Array); ok {
		acc.elems = append(acc.elems, more.elems...)
	} else {
		acc.elems = append(acc.elems, val)
	}
	return acc
}

func (p *Parser) split(s string) []string {
	if p.opts.DelimiterPattern != nil {
		return p.opts.DelimiterPattern.Split(s, -1)
	}
	return strings.Split(s, p.opts.Delimiter)
}

// splitPart cuts one entry at "]=" when present (so a[<=>]==23 keeps "=23"
// as its value), otherwise at the first '='. A part without '=' is a bare
// key.
func (p *Parser) splitPart(part string, cs Charset) (string, Value) {
	pos := strings.Index(part, "]=")
	if pos >= 0 {
		pos++
	} else {
		pos = strings.IndexByte(part, '=')
	}

	dec := p.opts.Decoder
	if pos < 0 {
		key := dec.Decode(part, cs, RoleKey)
		if p.opts.StrictNullHandling {
			return key, Null{}
		}
		return key, String("")
	}

	key := dec.Decode(part[:pos], cs, RoleKey)
	raw := part[pos+1:]
	if p.opts.Comma && strings.Contains(raw, ",") {
		tokens := strings.Split(raw, ",")
		vals := make([]Value, len(tokens))
		for i, tok := range tokens {
			vals[i] = String(dec.Decode(tok, cs, RoleValue))
		}
		return key, NewArray(vals...)
	}
	return key, String(dec.Decode(raw, cs, RoleValue))
}

func findCharsetSentinel(parts []string) (Charset, bool) {
	for _, part := range parts {
		switch part {
		case sentinelUTF8:
			return UTF8, true
		case sentinelLatin1:
			return ISO88591, true
		}
	}
	return UTF8, false
}

func interpretEntities(v Value) Value {
	switch t := v.(type) {
	case String:
		return String(interpretNumericEntities(string(t)))
	case *Array:
		out := make([]Value, len(t.elems))
		for i, e := range t.elems {
			out[i] = interpretEntities(e)
		}
		return &Array{elems: out}
	}
	return v
}
