package qs

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// =========================
// Charset
// =========================

type Charset int

const (
	UTF8 Charset = iota
	ISO88591
)

// ParseCharset accepts the usual spellings of the two supported charsets.
func ParseCharset(name string) (Charset, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8":
		return UTF8, nil
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		return ISO88591, nil
	}
	return UTF8, fmt.Errorf("%w: unknown charset %q", ErrInvalidOptions, name)
}

func (c Charset) String() string {
	switch c {
	case UTF8:
		return "utf-8"
	case ISO88591:
		return "iso-8859-1"
	}
	return "Charset(" + strconv.Itoa(int(c)) + ")"
}

// Set and Type make *Charset usable as a command line flag value.
func (c *Charset) Set(s string) error {
	v, err := ParseCharset(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (*Charset) Type() string { return "charset" }

func (c Charset) valid() bool { return c == UTF8 || c == ISO88591 }

// Charset sentinel parts, as produced by browsers submitting utf8=✓.
const (
	sentinelPrefix = "utf8="
	sentinelUTF8   = "utf8=%E2%9C%93"
	sentinelLatin1 = "utf8=%26%2310003%3B"
)

func sentinelFor(c Charset) string {
	if c == ISO88591 {
		return sentinelLatin1
	}
	return sentinelUTF8
}

// =========================
// Encoder / Decoder
// =========================

// Role tells a codec whether it is handling a key or a value.
type Role int

const (
	RoleKey Role = iota
	RoleValue
)

func (r Role) String() string {
	if r == RoleKey {
		return "key"
	}
	return "value"
}

// Decoder turns a raw query string segment into text. It must not fail:
// input it cannot decode is returned as is.
type Decoder interface {
	Decode(raw string, cs Charset, role Role) string
}

// Encoder turns text into a raw query string segment. It must not fail.
type Encoder interface {
	Encode(text string, cs Charset, role Role) string
}

type DecoderFunc func(raw string, cs Charset, role Role) string

func (f DecoderFunc) Decode(raw string, cs Charset, role Role) string { return f(raw, cs, role) }

type EncoderFunc func(text string, cs Charset, role Role) string

func (f EncoderFunc) Encode(text string, cs Charset, role Role) string { return f(text, cs, role) }

// FormDecoder decodes application/x-www-form-urlencoded text: '+' is a
// space and %XX escapes are bytes in the given charset. Malformed escapes,
// or bytes that are not valid UTF-8 in UTF-8 mode, leave the segment
// undecoded.
type FormDecoder struct{}

func (FormDecoder) Decode(raw string, cs Charset, _ Role) string {
	plain := strings.ReplaceAll(raw, "+", " ")
	if !strings.Contains(plain, "%") {
		return plain
	}
	b, err := url.PathUnescape(plain)
	if err != nil {
		return plain
	}
	if cs == ISO88591 {
		s, err := charmap.ISO8859_1.NewDecoder().String(b)
		if err != nil {
			return plain
		}
		return s
	}
	if !utf8.ValidString(b) {
		return plain
	}
	return b
}

// FormEncoder is the inverse of FormDecoder. In ISO-8859-1 mode runes
// outside Latin-1 are written as an escaped numeric entity (&#NNN;).
type FormEncoder struct{}

func (FormEncoder) Encode(text string, cs Charset, _ Role) string {
	if cs != ISO88591 {
		return url.QueryEscape(text)
	}
	var b strings.Builder
	for _, r := range text {
		c, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			b.WriteString("%26%23")
			b.WriteString(strconv.Itoa(int(r)))
			b.WriteString("%3B")
			continue
		}
		b.WriteString(url.QueryEscape(string([]byte{c})))
	}
	return b.String()
}

// interpretNumericEntities replaces &#NNN; sequences with the rune they
// name. Browsers emit these for characters outside ISO-8859-1.
func interpretNumericEntities(s string) string {
	if !strings.Contains(s, "&#") {
		return s
	}
	return numericEntity.ReplaceAllStringFunc(s, func(m string) string {
		n, err := strconv.Atoi(m[2 : len(m)-1])
		if err != nil || n > utf8.MaxRune || !utf8.ValidRune(rune(n)) {
			return m
		}
		return string(rune(n))
	})
}
