// Package config loads an HCL profile holding default parse and stringify
// options for the command line:
//
//	parse {
//	  depth       = 10
//	  allow_dots  = true
//	}
//
//	stringify {
//	  array_format       = "brackets"
//	  encode_values_only = true
//	}
//
// Every attribute is optional; unset attributes keep the library defaults.
package config

import (
	"fmt"

	"github.com/dzjyyds666/qs/parse/qs"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

type Profile struct {
	Parse     *ParseBlock     `hcl:"parse,block"`
	Stringify *StringifyBlock `hcl:"stringify,block"`
}

type ParseBlock struct {
	Delimiter                *string `hcl:"delimiter,optional"`
	DelimiterPattern         *string `hcl:"delimiter_pattern,optional"`
	Depth                    *int    `hcl:"depth,optional"`
	ArrayLimit               *int    `hcl:"array_limit,optional"`
	ParameterLimit           *int    `hcl:"parameter_limit,optional"`
	AllowDots                *bool   `hcl:"allow_dots,optional"`
	AllowSparse              *bool   `hcl:"allow_sparse,optional"`
	ParseArrays              *bool   `hcl:"parse_arrays,optional"`
	ParseIntKeys             *bool   `hcl:"parse_int_keys,optional"`
	StrictNullHandling       *bool   `hcl:"strict_null_handling,optional"`
	Comma                    *bool   `hcl:"comma,optional"`
	Charset                  *string `hcl:"charset,optional"`
	CharsetSentinel          *bool   `hcl:"charset_sentinel,optional"`
	InterpretNumericEntities *bool   `hcl:"interpret_numeric_entities,optional"`
	IgnoreQueryPrefix        *bool   `hcl:"ignore_query_prefix,optional"`
}

type StringifyBlock struct {
	ArrayFormat        *string `hcl:"array_format,optional"`
	Indices            *bool   `hcl:"indices,optional"`
	CommaRoundTrip     *bool   `hcl:"comma_round_trip,optional"`
	AllowDots          *bool   `hcl:"allow_dots,optional"`
	AddQueryPrefix     *bool   `hcl:"add_query_prefix,optional"`
	Delimiter          *string `hcl:"delimiter,optional"`
	SkipNulls          *bool   `hcl:"skip_nulls,optional"`
	StrictNullHandling *bool   `hcl:"strict_null_handling,optional"`
	Encode             *bool   `hcl:"encode,optional"`
	EncodeValuesOnly   *bool   `hcl:"encode_values_only,optional"`
	Charset            *string `hcl:"charset,optional"`
	CharsetSentinel    *bool   `hcl:"charset_sentinel,optional"`
	DictPlaceholder    *string `hcl:"dict_placeholder,optional"`
}

// Load reads and decodes the profile at path.
func Load(path string) (*Profile, error) {
	file, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, diags
	}
	return decode(file)
}

// LoadBytes decodes a profile held in memory. filename is only used in
// diagnostics.
func LoadBytes(src []byte, filename string) (*Profile, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	return decode(file)
}

func decode(file *hcl.File) (*Profile, error) {
	var p Profile
	if diags := gohcl.DecodeBody(file.Body, nil, &p); diags.HasErrors() {
		return nil, diags
	}
	return &p, nil
}

// ApplyParse copies the attributes set in the parse block onto o.
func (p *Profile) ApplyParse(o *qs.ParseOptions) error {
	if p == nil || p.Parse == nil {
		return nil
	}
	b := p.Parse
	setString(&o.Delimiter, b.Delimiter)
	setInt(&o.Depth, b.Depth)
	setInt(&o.ArrayLimit, b.ArrayLimit)
	setInt(&o.ParameterLimit, b.ParameterLimit)
	setBool(&o.AllowDots, b.AllowDots)
	setBool(&o.AllowSparse, b.AllowSparse)
	setBool(&o.ParseArrays, b.ParseArrays)
	setBool(&o.ParseIntKeys, b.ParseIntKeys)
	setBool(&o.StrictNullHandling, b.StrictNullHandling)
	setBool(&o.Comma, b.Comma)
	setBool(&o.CharsetSentinel, b.CharsetSentinel)
	setBool(&o.InterpretNumericEntities, b.InterpretNumericEntities)
	setBool(&o.IgnoreQueryPrefix, b.IgnoreQueryPrefix)
	if b.DelimiterPattern != nil {
		if err := o.CompileDelimiter(*b.DelimiterPattern); err != nil {
			return fmt.Errorf("parse.delimiter_pattern: %w", err)
		}
	}
	if b.Charset != nil {
		cs, err := qs.ParseCharset(*b.Charset)
		if err != nil {
			return fmt.Errorf("parse.charset: %w", err)
		}
		o.Charset = cs
	}
	return nil
}

// ApplyStringify copies the attributes set in the stringify block onto o.
func (p *Profile) ApplyStringify(o *qs.StringifyOptions) error {
	if p == nil || p.Stringify == nil {
		return nil
	}
	b := p.Stringify
	setBool(&o.Indices, b.Indices)
	setBool(&o.CommaRoundTrip, b.CommaRoundTrip)
	setBool(&o.AllowDots, b.AllowDots)
	setBool(&o.AddQueryPrefix, b.AddQueryPrefix)
	setString(&o.Delimiter, b.Delimiter)
	setBool(&o.SkipNulls, b.SkipNulls)
	setBool(&o.StrictNullHandling, b.StrictNullHandling)
	setBool(&o.Encode, b.Encode)
	setBool(&o.EncodeValuesOnly, b.EncodeValuesOnly)
	setBool(&o.CharsetSentinel, b.CharsetSentinel)
	setString(&o.DictPlaceholder, b.DictPlaceholder)
	if b.ArrayFormat != nil {
		f, err := qs.ParseArrayFormat(*b.ArrayFormat)
		if err != nil {
			return fmt.Errorf("stringify.array_format: %w", err)
		}
		o.ArrayFormat = f
	}
	if b.Charset != nil {
		cs, err := qs.ParseCharset(*b.Charset)
		if err != nil {
			return fmt.Errorf("stringify.charset: %w", err)
		}
		o.Charset = cs
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
