package cmd

import (
	"fmt"
	"strconv"

	"github.com/dzjyyds666/qs/parse/qs"
	"github.com/spf13/pflag"
)

var (
	_ pflag.Value = (*qs.Charset)(nil)
	_ pflag.Value = (*qs.ArrayFormat)(nil)
)

// Option flags are registered for help and parsing only. Their values are
// read back by name once the profile is applied, so a flag given on the
// command line always wins over the profile.

func registerParseFlags(fs *pflag.FlagSet) {
	d := qs.DefaultParseOptions()
	fs.String("delimiter", d.Delimiter, "entry delimiter")
	fs.String("delimiter-pattern", "", "regular expression splitting entries, overrides --delimiter")
	fs.Int("depth", d.Depth, "bracket segments decomposed per key")
	fs.Int("array-limit", d.ArrayLimit, "highest index parsed as an array slot")
	fs.Int("parameter-limit", d.ParameterLimit, "entries read at most, 0 for no limit")
	fs.Bool("allow-dots", d.AllowDots, "read a.b as a[b]")
	fs.Bool("allow-sparse", d.AllowSparse, "keep holes in arrays")
	fs.Bool("parse-arrays", d.ParseArrays, "build arrays from [] and [n] segments")
	fs.Bool("parse-int-keys", d.ParseIntKeys, "use integer keys for numeric segments")
	fs.Bool("strict-null", d.StrictNullHandling, "bare keys are null instead of empty")
	fs.Bool("comma", d.Comma, "split comma separated values into arrays")
	cs := d.Charset
	fs.Var(&cs, "charset", "charset: utf-8 or iso-8859-1")
	fs.Bool("charset-sentinel", d.CharsetSentinel, "honor a utf8= sentinel entry")
	fs.Bool("numeric-entities", d.InterpretNumericEntities, "decode &#NNN; in iso-8859-1 mode")
	fs.Bool("ignore-query-prefix", d.IgnoreQueryPrefix, "drop a leading ?")
}

// registerStringifyFlags skips names already present, which lets roundtrip
// share delimiter and charset flags between both directions.
func registerStringifyFlags(fs *pflag.FlagSet) {
	d := qs.DefaultStringifyOptions()
	str := func(name, value, usage string) {
		if fs.Lookup(name) == nil {
			fs.String(name, value, usage)
		}
	}
	boolean := func(name string, value bool, usage string) {
		if fs.Lookup(name) == nil {
			fs.Bool(name, value, usage)
		}
	}

	af := d.ArrayFormat
	fs.Var(&af, "array-format", "array format: indices, brackets, repeat or comma")
	boolean("indices", d.Indices, "write array indices, false turns indices into repeat")
	boolean("comma-round-trip", d.CommaRoundTrip, "mark single element comma arrays with []")
	boolean("allow-dots", d.AllowDots, "write a.b instead of a[b]")
	boolean("add-query-prefix", d.AddQueryPrefix, "prepend ?")
	str("delimiter", d.Delimiter, "entry delimiter")
	boolean("skip-nulls", d.SkipNulls, "omit null values")
	boolean("strict-null", d.StrictNullHandling, "write null values as bare keys")
	boolean("encode", d.Encode, "percent encode output")
	boolean("encode-values-only", d.EncodeValuesOnly, "leave keys unencoded")
	if fs.Lookup("charset") == nil {
		cs := d.Charset
		fs.Var(&cs, "charset", "charset: utf-8 or iso-8859-1")
	}
	boolean("charset-sentinel", d.CharsetSentinel, "prepend a utf8= sentinel entry")
	str("dict-placeholder", d.DictPlaceholder, "text standing in for a dict in comma format")
}

type setter func(string) error

func parseSetters(o *qs.ParseOptions) map[string]setter {
	return map[string]setter{
		"delimiter":           setString(&o.Delimiter),
		"delimiter-pattern":   o.CompileDelimiter,
		"depth":               setInt(&o.Depth),
		"array-limit":         setInt(&o.ArrayLimit),
		"parameter-limit":     setInt(&o.ParameterLimit),
		"allow-dots":          setBool(&o.AllowDots),
		"allow-sparse":        setBool(&o.AllowSparse),
		"parse-arrays":        setBool(&o.ParseArrays),
		"parse-int-keys":      setBool(&o.ParseIntKeys),
		"strict-null":         setBool(&o.StrictNullHandling),
		"comma":               setBool(&o.Comma),
		"charset":             o.Charset.Set,
		"charset-sentinel":    setBool(&o.CharsetSentinel),
		"numeric-entities":    setBool(&o.InterpretNumericEntities),
		"ignore-query-prefix": setBool(&o.IgnoreQueryPrefix),
	}
}

func stringifySetters(o *qs.StringifyOptions) map[string]setter {
	return map[string]setter{
		"array-format":       o.ArrayFormat.Set,
		"indices":            setBool(&o.Indices),
		"comma-round-trip":   setBool(&o.CommaRoundTrip),
		"allow-dots":         setBool(&o.AllowDots),
		"add-query-prefix":   setBool(&o.AddQueryPrefix),
		"delimiter":          setString(&o.Delimiter),
		"skip-nulls":         setBool(&o.SkipNulls),
		"strict-null":        setBool(&o.StrictNullHandling),
		"encode":             setBool(&o.Encode),
		"encode-values-only": setBool(&o.EncodeValuesOnly),
		"charset":            o.Charset.Set,
		"charset-sentinel":   setBool(&o.CharsetSentinel),
		"dict-placeholder":   setString(&o.DictPlaceholder),
	}
}

// applyFlags copies every flag set on the command line through its setter.
func applyFlags(fs *pflag.FlagSet, setters map[string]setter) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		set, ok := setters[f.Name]
		if !ok || err != nil {
			return
		}
		if e := set(f.Value.String()); e != nil {
			err = fmt.Errorf("--%s: %w", f.Name, e)
		}
	})
	return err
}

func setString(dst *string) setter {
	return func(s string) error {
		*dst = s
		return nil
	}
}

func setInt(dst *int) setter {
	return func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*dst = n
		return nil
	}
}

func setBool(dst *bool) setter {
	return func(s string) error {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		*dst = b
		return nil
	}
}

func (e *runEnv) parseOptions(fs *pflag.FlagSet) (qs.ParseOptions, error) {
	opts := qs.DefaultParseOptions()
	if err := e.profile.ApplyParse(&opts); err != nil {
		return opts, err
	}
	if err := applyFlags(fs, parseSetters(&opts)); err != nil {
		return opts, err
	}
	opts.Logger = e.log
	return opts, nil
}

func (e *runEnv) stringifyOptions(fs *pflag.FlagSet) (qs.StringifyOptions, error) {
	opts := qs.DefaultStringifyOptions()
	if err := e.profile.ApplyStringify(&opts); err != nil {
		return opts, err
	}
	if err := applyFlags(fs, stringifySetters(&opts)); err != nil {
		return opts, err
	}
	return opts, nil
}
