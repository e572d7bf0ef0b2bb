package qs

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// ErrInvalidOptions is wrapped by every configuration error.
var ErrInvalidOptions = errors.New("qs: invalid options")

var numericEntity = regexp.MustCompile(`&#[0-9]+;`)

// =========================
// Parse Options
// =========================

type ParseOptions struct {
	// Delimiter separates entries. Ignored when DelimiterPattern is set.
	Delimiter string
	// DelimiterPattern splits entries on a regular expression, e.g. `[;,] *`.
	DelimiterPattern *regexp.Regexp

	// Depth is the number of bracket segments decomposed after the parent.
	// Anything deeper is kept as one literal key.
	Depth int
	// ArrayLimit is the highest index turned into an array slot. Larger
	// indices become Int dict keys. A negative limit disables indexed arrays.
	ArrayLimit int
	// ParameterLimit caps the number of entries read. 0 means no limit.
	ParameterLimit int

	AllowDots   bool
	AllowSparse bool
	ParseArrays bool
	// ParseIntKeys turns canonical integer segments into Int keys.
	ParseIntKeys bool
	// StrictNullHandling parses a bare key (no '=') as Null instead of "".
	StrictNullHandling bool
	// Comma splits values containing ',' into arrays.
	Comma bool

	Charset Charset
	// CharsetSentinel lets a leading utf8=✓ entry select the charset.
	CharsetSentinel bool
	// InterpretNumericEntities decodes &#NNN; in ISO-8859-1 mode.
	InterpretNumericEntities bool
	IgnoreQueryPrefix        bool

	Decoder Decoder
	Logger  *slog.Logger
}

// DefaultParseOptions returns ParseOptions with default settings.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		Delimiter:      "&",
		Depth:          5,
		ArrayLimit:     20,
		ParameterLimit: 1000,
		ParseArrays:    true,
		ParseIntKeys:   true,
		Charset:        UTF8,
		Decoder:        FormDecoder{},
	}
}

func (o ParseOptions) Validate() error {
	if o.DelimiterPattern == nil && o.Delimiter == "" {
		return fmt.Errorf("%w: empty delimiter", ErrInvalidOptions)
	}
	if o.Depth < 0 {
		return fmt.Errorf("%w: negative depth %d", ErrInvalidOptions, o.Depth)
	}
	if o.ParameterLimit < 0 {
		return fmt.Errorf("%w: negative parameter limit %d", ErrInvalidOptions, o.ParameterLimit)
	}
	if !o.Charset.valid() {
		return fmt.Errorf("%w: unsupported charset %s", ErrInvalidOptions, o.Charset)
	}
	return nil
}

// CompileDelimiter sets DelimiterPattern from a regular expression.
func (o *ParseOptions) CompileDelimiter(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("%w: delimiter pattern: %v", ErrInvalidOptions, err)
	}
	o.DelimiterPattern = re
	return nil
}

// =========================
// Stringify Options
// =========================

// ArrayFormat selects how array membership is written into keys.
type ArrayFormat int

const (
	// Indices writes a[0]=b&a[1]=c.
	Indices ArrayFormat = iota
	// Brackets writes a[]=b&a[]=c.
	Brackets
	// Repeat writes a=b&a=c.
	Repeat
	// Comma writes a=b,c.
	Comma
)

var arrayFormatNames = []string{"indices", "brackets", "repeat", "comma"}

func ParseArrayFormat(name string) (ArrayFormat, error) {
	for i, n := range arrayFormatNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return ArrayFormat(i), nil
		}
	}
	return Indices, fmt.Errorf("%w: unknown array format %q", ErrInvalidOptions, name)
}

func (f ArrayFormat) String() string {
	if f < 0 || int(f) >= len(arrayFormatNames) {
		return fmt.Sprintf("ArrayFormat(%d)", int(f))
	}
	return arrayFormatNames[f]
}

// Set and Type make *ArrayFormat usable as a command line flag value.
func (f *ArrayFormat) Set(s string) error {
	v, err := ParseArrayFormat(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

func (*ArrayFormat) Type() string { return "format" }

type StringifyOptions struct {
	ArrayFormat ArrayFormat
	// Indices set to false turns the Indices format into Repeat.
	Indices bool
	// CommaRoundTrip appends [] to single element arrays in Comma format so
	// they parse back as arrays.
	CommaRoundTrip bool

	AllowDots      bool
	AddQueryPrefix bool
	Delimiter      string

	SkipNulls          bool
	StrictNullHandling bool

	Encode           bool
	EncodeValuesOnly bool
	Encoder          Encoder
	Charset          Charset
	CharsetSentinel  bool

	// DictPlaceholder stands in for a dict inside a Comma joined array.
	DictPlaceholder string
}

// DefaultStringifyOptions returns StringifyOptions with default settings.
func DefaultStringifyOptions() StringifyOptions {
	return StringifyOptions{
		ArrayFormat:     Indices,
		Indices:         true,
		Delimiter:       "&",
		Encode:          true,
		Encoder:         FormEncoder{},
		Charset:         UTF8,
		DictPlaceholder: "Dict",
	}
}

func (o StringifyOptions) Validate() error {
	if o.ArrayFormat < Indices || o.ArrayFormat > Comma {
		return fmt.Errorf("%w: unsupported array format %s", ErrInvalidOptions, o.ArrayFormat)
	}
	if o.Delimiter == "" {
		return fmt.Errorf("%w: empty delimiter", ErrInvalidOptions)
	}
	if !o.Charset.valid() {
		return fmt.Errorf("%w: unsupported charset %s", ErrInvalidOptions, o.Charset)
	}
	return nil
}

func (o StringifyOptions) format() ArrayFormat {
	if o.ArrayFormat == Indices && !o.Indices {
		return Repeat
	}
	return o.ArrayFormat
}
