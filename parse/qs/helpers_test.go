package qs

import "fmt"

// shouldEqualValue is a goconvey assertion comparing trees with Equal.
func shouldEqualValue(actual any, expected ...any) string {
	got, _ := actual.(Value)
	want, _ := expected[0].(Value)
	if Equal(got, want) {
		return ""
	}
	return fmt.Sprintf("Expected: %s\nActual:   %s", valueString(want), valueString(got))
}

// dict builds a Dict from alternating keys and values. A string key becomes
// a String key, an int key an Int key.
func dict(kv ...any) *Dict {
	d := NewDict()
	for i := 0; i+1 < len(kv); i += 2 {
		var k Key
		switch t := kv[i].(type) {
		case string:
			k = StringKey(t)
		case int:
			k = IntKey(int64(t))
		default:
			panic(fmt.Sprintf("bad key %T", kv[i]))
		}
		var v Value
		if kv[i+1] != nil {
			v = kv[i+1].(Value)
		}
		d.With(k, v)
	}
	return d
}

func arr(vals ...Value) *Array { return NewArray(vals...) }

func newTestParser(configure func(o *ParseOptions)) *Parser {
	o := DefaultParseOptions()
	if configure != nil {
		configure(&o)
	}
	p, err := NewParser(o)
	if err != nil {
		panic(err)
	}
	return p
}

func newTestStringifier(configure func(o *StringifyOptions)) *Stringifier {
	o := DefaultStringifyOptions()
	if configure != nil {
		configure(&o)
	}
	s, err := NewStringifier(o)
	if err != nil {
		panic(err)
	}
	return s
}
