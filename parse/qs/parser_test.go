package qs

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestParseSimpleStrings(t *testing.T) {
	convey.Convey("simple strings", t, func() {
		p := newTestParser(nil)
		snh := newTestParser(func(o *ParseOptions) { o.StrictNullHandling = true })

		convey.So(p.Parse("0=foo"), shouldEqualValue, dict(0, String("foo")))
		convey.So(p.Parse("foo=c++"), shouldEqualValue, dict("foo", String("c  ")))
		convey.So(p.Parse("a[>=]=23"), shouldEqualValue, dict("a", dict(">=", String("23"))))
		convey.So(p.Parse("a[<=>]==23"), shouldEqualValue, dict("a", dict("<=>", String("=23"))))
		convey.So(p.Parse("a[==]=23"), shouldEqualValue, dict("a", dict("==", String("23"))))
		convey.So(snh.Parse("foo"), shouldEqualValue, dict("foo", Null{}))
		convey.So(p.Parse("foo"), shouldEqualValue, dict("foo", String("")))
		convey.So(p.Parse("foo="), shouldEqualValue, dict("foo", String("")))
		convey.So(p.Parse("foo=bar"), shouldEqualValue, dict("foo", String("bar")))
		convey.So(p.Parse(" foo = bar = baz "), shouldEqualValue, dict(" foo ", String(" bar = baz ")))
		convey.So(p.Parse("foo=bar=baz"), shouldEqualValue, dict("foo", String("bar=baz")))
		convey.So(p.Parse("foo=bar&bar=baz"), shouldEqualValue,
			dict("foo", String("bar"), "bar", String("baz")))
		convey.So(p.Parse("foo2=bar2&baz2="), shouldEqualValue,
			dict("foo2", String("bar2"), "baz2", String("")))
		convey.So(snh.Parse("foo=bar&baz"), shouldEqualValue,
			dict("foo", String("bar"), "baz", Null{}))
		convey.So(p.Parse("foo=bar&baz"), shouldEqualValue,
			dict("foo", String("bar"), "baz", String("")))
		convey.So(p.Parse("cht=p3&chd=t:60,40&chs=250x100&chl=Hello|World"), shouldEqualValue,
			dict("cht", String("p3"), "chd", String("t:60,40"), "chs", String("250x100"), "chl", String("Hello|World")))
	})

	convey.Convey("empty input", t, func() {
		convey.So(Parse(""), shouldEqualValue, NewDict())
		convey.So(Parse("&&"), shouldEqualValue, NewDict())
		convey.So(Parse("_r=1&"), shouldEqualValue, dict("_r", String("1")))
		convey.So(Parse("=x&a=b"), shouldEqualValue, dict("a", String("b")))
	})
}

func TestParseArrays(t *testing.T) {
	convey.Convey("arrays on the same key", t, func() {
		p := newTestParser(nil)
		convey.So(p.Parse("a[]=b&a[]=c"), shouldEqualValue, dict("a", arr(String("b"), String("c"))))
		convey.So(p.Parse("a[0]=b&a[1]=c"), shouldEqualValue, dict("a", arr(String("b"), String("c"))))
		convey.So(p.Parse("a=b,c"), shouldEqualValue, dict("a", String("b,c")))
		convey.So(p.Parse("a=b&a=c"), shouldEqualValue, dict("a", arr(String("b"), String("c"))))
		convey.So(p.Parse("a[]=b&a[]=c&a[]=d"), shouldEqualValue,
			dict("a", arr(String("b"), String("c"), String("d"))))
	})

	convey.Convey("mixed simple and explicit arrays", t, func() {
		p := newTestParser(nil)
		zero := newTestParser(func(o *ParseOptions) { o.ArrayLimit = 0 })
		bc := dict("a", arr(String("b"), String("c")))

		convey.So(p.Parse("a=b&a[]=c"), shouldEqualValue, bc)
		convey.So(p.Parse("a[]=b&a=c"), shouldEqualValue, bc)
		convey.So(p.Parse("a[0]=b&a=c"), shouldEqualValue, bc)
		convey.So(p.Parse("a=b&a[0]=c"), shouldEqualValue, bc)
		convey.So(p.Parse("a[1]=b&a=c"), shouldEqualValue, bc)
		convey.So(p.Parse("a=b&a[1]=c"), shouldEqualValue, bc)
		convey.So(zero.Parse("a[]=b&a=c"), shouldEqualValue, bc)
		convey.So(zero.Parse("a=b&a[]=c"), shouldEqualValue, bc)
	})

	convey.Convey("nested arrays", t, func() {
		p := newTestParser(nil)
		convey.So(p.Parse("a[b][]=c&a[b][]=d"), shouldEqualValue,
			dict("a", dict("b", arr(String("c"), String("d")))))
		convey.So(p.Parse("a[][b]=c"), shouldEqualValue, dict("a", arr(dict("b", String("c")))))
		convey.So(p.Parse("a[0][b]=c"), shouldEqualValue, dict("a", arr(dict("b", String("c")))))
	})

	convey.Convey("explicit indices are ordered by index", t, func() {
		p := newTestParser(nil)
		zero := newTestParser(func(o *ParseOptions) { o.ArrayLimit = 0 })
		convey.So(p.Parse("a[1]=c&a[0]=b&a[2]=d"), shouldEqualValue,
			dict("a", arr(String("b"), String("c"), String("d"))))
		convey.So(p.Parse("a[1]=c&a[0]=b"), shouldEqualValue, dict("a", arr(String("b"), String("c"))))
		convey.So(p.Parse("a[1]=c"), shouldEqualValue, dict("a", arr(String("c"))))
		convey.So(zero.Parse("a[1]=c"), shouldEqualValue, dict("a", dict(1, String("c"))))
	})

	convey.Convey("indices above the array limit become int keys", t, func() {
		p := newTestParser(nil)
		convey.So(p.Parse("a[20]=a"), shouldEqualValue, dict("a", arr(String("a"))))
		convey.So(p.Parse("a[21]=a"), shouldEqualValue, dict("a", dict(21, String("a"))))
		convey.So(p.Parse("a[2]=b&a[99999999]=c"), shouldEqualValue,
			dict("a", dict(2, String("b"), 99999999, String("c"))))
	})

	convey.Convey("negative array limit disables indexed arrays", t, func() {
		p := newTestParser(func(o *ParseOptions) { o.ArrayLimit = -1 })
		convey.So(p.Parse("a[0]=b"), shouldEqualValue, dict("a", dict(0, String("b"))))
		convey.So(p.Parse("a[-1]=b"), shouldEqualValue, dict("a", dict(-1, String("b"))))
		convey.So(p.Parse("a[0]=b&a[1]=c"), shouldEqualValue,
			dict("a", dict(0, String("b"), 1, String("c"))))
	})

	convey.Convey("empty strings and nulls in arrays", t, func() {
		p := newTestParser(nil)
		snh := newTestParser(func(o *ParseOptions) { o.StrictNullHandling = true })
		snh0 := newTestParser(func(o *ParseOptions) {
			o.StrictNullHandling = true
			o.ArrayLimit = 0
		})

		convey.So(p.Parse("a[]=b&a[]=&a[]=c"), shouldEqualValue,
			dict("a", arr(String("b"), String(""), String("c"))))
		convey.So(snh.Parse("a[0]=b&a[1]&a[2]=c&a[19]="), shouldEqualValue,
			dict("a", arr(String("b"), Null{}, String("c"), String(""))))
		convey.So(snh0.Parse("a[]=b&a[]&a[]=c&a[]="), shouldEqualValue,
			dict("a", arr(String("b"), Null{}, String("c"), String(""))))
		convey.So(snh.Parse("a[0]=b&a[1]=&a[2]=c&a[19]"), shouldEqualValue,
			dict("a", arr(String("b"), String(""), String("c"), Null{})))
		convey.So(snh0.Parse("a[]=&a[]=b&a[]=c"), shouldEqualValue,
			dict("a", arr(String(""), String("b"), String("c"))))
	})

	convey.Convey("jquery param strings", t, func() {
		p := newTestParser(nil)
		q := "filter%5B0%5D%5B%5D=int1&filter%5B0%5D%5B%5D=%3D&filter%5B0%5D%5B%5D=77&" +
			"filter%5B%5D=and&filter%5B2%5D%5B%5D=int2&filter%5B2%5D%5B%5D=%3D&filter%5B2%5D%5B%5D=8"
		convey.So(p.Parse(q), shouldEqualValue, dict("filter", arr(
			arr(String("int1"), String("="), String("77")),
			String("and"),
			arr(String("int2"), String("="), String("8")),
		)))
	})

	convey.Convey("parse arrays off", t, func() {
		p := newTestParser(func(o *ParseOptions) { o.ParseArrays = false })
		convey.So(p.Parse("a[]=b"), shouldEqualValue, dict("a", dict(0, String("b"))))
		convey.So(p.Parse("a[1]=b"), shouldEqualValue, dict("a", dict(1, String("b"))))
	})

	convey.Convey("int keys off", t, func() {
		p := newTestParser(func(o *ParseOptions) {
			o.ParseIntKeys = false
			o.ArrayLimit = -1
		})
		convey.So(p.Parse("a[1]=b"), shouldEqualValue, dict("a", dict("1", String("b"))))
		convey.So(p.Parse("0=foo"), shouldEqualValue, dict("0", String("foo")))
	})
}

func TestParseArraysToDicts(t *testing.T) {
	convey.Convey("arrays meeting dict keys become dicts", t, func() {
		p := newTestParser(nil)
		convey.So(p.Parse("foo[0]=bar&foo[bad]=baz"), shouldEqualValue,
			dict("foo", dict(0, String("bar"), "bad", String("baz"))))
		convey.So(p.Parse("foo[bad]=baz&foo[0]=bar"), shouldEqualValue,
			dict("foo", dict("bad", String("baz"), 0, String("bar"))))
		convey.So(p.Parse("foo[bad]=baz&foo[]=bar"), shouldEqualValue,
			dict("foo", dict("bad", String("baz"), 0, String("bar"))))
		convey.So(p.Parse("foo[]=bar&foo[bad]=baz"), shouldEqualValue,
			dict("foo", dict(0, String("bar"), "bad", String("baz"))))
		convey.So(p.Parse("foo[bad]=baz&foo[]=bar&foo[]=foo"), shouldEqualValue,
			dict("foo", dict("bad", String("baz"), 0, String("bar"), 1, String("foo"))))
		convey.So(p.Parse("foo[0][a]=a&foo[0][b]=b&foo[1][a]=aa&foo[1][b]=bb"), shouldEqualValue,
			dict("foo", arr(
				dict("a", String("a"), "b", String("b")),
				dict("a", String("aa"), "b", String("bb")),
			)))
	})

	convey.Convey("grouped values after an indexed value keep their order", t, func() {
		convey.So(Parse("a[0]=z&a[]=x&a[]=y"), shouldEqualValue, dict("a", arr(String("z"), String("x"), String("y"))))
	})

	convey.Convey("a bare key meeting a dict", t, func() {
		convey.So(Parse("a[b]=c&a=d"), shouldEqualValue, dict("a", dict("b", String("c"), "d", Bool(true))))
		convey.So(Parse("a=d&a[b]=c"), shouldEqualValue, dict("a", arr(String("d"), dict("b", String("c")))))
		convey.So(Parse("a[b]=c&a=1&a[e]=f"), shouldEqualValue,
			dict("a", dict("b", String("c"), "1", Bool(true), "e", String("f"))))
	})

	convey.Convey("with dot notation", t, func() {
		p := newTestParser(func(o *ParseOptions) { o.AllowDots = true })
		convey.So(p.Parse("foo[0].baz=bar&fool.bad=baz"), shouldEqualValue, dict(
			"foo", arr(dict("baz", String("bar"))),
			"fool", dict("bad", String("baz"))))
		convey.So(p.Parse("foo[0].baz=bar&fool.bad.boo=baz"), shouldEqualValue, dict(
			"foo", arr(dict("baz", String("bar"))),
			"fool", dict("bad", dict("boo", String("baz")))))
		convey.So(p.Parse("foo[0][0].baz=bar&fool.bad=baz"), shouldEqualValue, dict(
			"foo", arr(arr(dict("baz", String("bar")))),
			"fool", dict("bad", String("baz"))))
		convey.So(p.Parse("foo[0].baz[0]=15&foo[0].bar=2"), shouldEqualValue, dict(
			"foo", arr(dict("baz", arr(String("15")), "bar", String("2")))))
		convey.So(p.Parse("foo[0].baz[0]=15&foo[0].baz[1]=16&foo[0].bar=2"), shouldEqualValue, dict(
			"foo", arr(dict("baz", arr(String("15"), String("16")), "bar", String("2")))))
		convey.So(p.Parse("foo.bad=baz&foo[0]=bar"), shouldEqualValue,
			dict("foo", dict("bad", String("baz"), 0, String("bar"))))
		convey.So(p.Parse("foo.bad=baz&foo[]=bar"), shouldEqualValue,
			dict("foo", dict("bad", String("baz"), 0, String("bar"))))
		convey.So(p.Parse("foo[]=bar&foo.bad=baz"), shouldEqualValue,
			dict("foo", dict(0, String("bar"), "bad", String("baz"))))
		convey.So(p.Parse("foo.bad=baz&foo[]=bar&foo[]=foo"), shouldEqualValue,
			dict("foo", dict("bad", String("baz"), 0, String("bar"), 1, String("foo"))))
	})
}

func TestParseKeys(t *testing.T) {
	convey.Convey("dot notation", t, func() {
		convey.So(Parse("a.b=c"), shouldEqualValue, dict("a.b", String("c")))
		p := newTestParser(func(o *ParseOptions) { o.AllowDots = true })
		convey.So(p.Parse("a.b=c"), shouldEqualValue, dict("a", dict("b", String("c"))))
	})

	convey.Convey("dots inside brackets belong to the segment", t, func() {
		p := newTestParser(func(o *ParseOptions) { o.AllowDots = true })
		convey.So(p.Parse("a[b.c]=d"), shouldEqualValue, dict("a", dict("b.c", String("d"))))
		convey.So(p.Parse("user[john.doe@x.com].role=admin"), shouldEqualValue,
			dict("user", dict("john.doe@x.com", dict("role", String("admin")))))
		convey.So(p.Parse("a.b[c.d]=e"), shouldEqualValue, dict("a", dict("b", dict("c.d", String("e")))))
	})

	convey.Convey("depth", t, func() {
		p := newTestParser(nil)
		d1 := newTestParser(func(o *ParseOptions) { o.Depth = 1 })
		d0 := newTestParser(func(o *ParseOptions) { o.Depth = 0 })

		convey.So(p.Parse("a[b]=c"), shouldEqualValue, dict("a", dict("b", String("c"))))
		convey.So(p.Parse("a[b][c]=d"), shouldEqualValue, dict("a", dict("b", dict("c", String("d")))))
		convey.So(p.Parse("a[b][c][d][e][f][g][h]=i"), shouldEqualValue,
			dict("a", dict("b", dict("c", dict("d", dict("e", dict("f", dict("[g][h]", String("i")))))))))
		convey.So(d1.Parse("a[b][c]=d"), shouldEqualValue, dict("a", dict("b", dict("[c]", String("d")))))
		convey.So(d1.Parse("a[b][c][d]=e"), shouldEqualValue, dict("a", dict("b", dict("[c][d]", String("e")))))
		convey.So(d0.Parse("a[0]=b&a[1]=c"), shouldEqualValue,
			dict("a[0]", String("b"), "a[1]", String("c")))
		convey.So(d0.Parse("a[0][0]=b&a[0][1]=c&a[1]=d&e=2"), shouldEqualValue,
			dict("a[0][0]", String("b"), "a[0][1]", String("c"), "a[1]", String("d"), "e", String("2")))
	})

	convey.Convey("odd keys", t, func() {
		p := newTestParser(nil)
		snh := newTestParser(func(o *ParseOptions) { o.StrictNullHandling = true })
		convey.So(p.Parse("a[12b]=c"), shouldEqualValue, dict("a", dict("12b", String("c"))))
		convey.So(p.Parse("a[01]=b"), shouldEqualValue, dict("a", dict("01", String("b"))))
		convey.So(p.Parse("he%3Dllo=th%3Dere"), shouldEqualValue, dict("he=llo", String("th=ere")))
		convey.So(p.Parse("a[b%20c]=d"), shouldEqualValue, dict("a", dict("b c", String("d"))))
		convey.So(p.Parse("a[b]=c%20d"), shouldEqualValue, dict("a", dict("b", String("c d"))))
		convey.So(p.Parse(`pets=["tobi"]`), shouldEqualValue, dict("pets", String(`["tobi"]`)))
		convey.So(p.Parse(`operators=[">=", "<="]`), shouldEqualValue,
			dict("operators", String(`[">=", "<="]`)))
		convey.So(p.Parse("[]=&a=b"), shouldEqualValue, dict(0, String(""), "a", String("b")))
		convey.So(snh.Parse("[]&a=b"), shouldEqualValue, dict(0, Null{}, "a", String("b")))
		convey.So(snh.Parse("[foo]=bar"), shouldEqualValue, dict("foo", String("bar")))
		convey.So(p.Parse("a[b=c"), shouldEqualValue, dict("a", dict("[b", String("c"))))
	})
}

func TestParseSparseArrays(t *testing.T) {
	convey.Convey("sparse arrays are compacted", t, func() {
		p := newTestParser(nil)
		convey.So(p.Parse("a[10]=1&a[2]=2"), shouldEqualValue, dict("a", arr(String("2"), String("1"))))
		convey.So(p.Parse("a[1][b][2][c]=1"), shouldEqualValue,
			dict("a", arr(dict("b", arr(dict("c", String("1")))))))
		convey.So(p.Parse("a[1][2][3][c]=1"), shouldEqualValue,
			dict("a", arr(arr(arr(dict("c", String("1")))))))
		convey.So(p.Parse("a[1][2][3][c][1]=1"), shouldEqualValue,
			dict("a", arr(arr(arr(dict("c", arr(String("1"))))))))
	})

	convey.Convey("sparse arrays are kept when allowed", t, func() {
		p := newTestParser(func(o *ParseOptions) { o.AllowSparse = true })
		convey.So(p.Parse("a[4]=1&a[1]=2"), shouldEqualValue,
			dict("a", arr(nil, String("2"), nil, nil, String("1"))))
		convey.So(p.Parse("a[1][b][2][c]=1"), shouldEqualValue,
			dict("a", arr(nil, dict("b", arr(nil, nil, dict("c", String("1")))))))
		convey.So(p.Parse("a[1][2][3][c]=1"), shouldEqualValue,
			dict("a", arr(nil, arr(nil, nil, arr(nil, nil, nil, dict("c", String("1")))))))
		convey.So(p.Parse("a[1][2][3][c][1]=1"), shouldEqualValue,
			dict("a", arr(nil, arr(nil, nil, arr(nil, nil, nil, dict("c", arr(nil, String("1"))))))))

		got := p.Parse("a[2]=x")
		v, _ := got.Get(StringKey("a"))
		a := v.(*Array)
		convey.So(a.IsSparse(), convey.ShouldBeTrue)
		_, ok := a.Get(0)
		convey.So(ok, convey.ShouldBeFalse)
		convey.So(a.Values(), convey.ShouldHaveLength, 1)
	})
}

func TestParseOptionsBehaviour(t *testing.T) {
	convey.Convey("alternative delimiters", t, func() {
		semi := newTestParser(func(o *ParseOptions) { o.Delimiter = ";" })
		convey.So(semi.Parse("a=b;c=d"), shouldEqualValue, dict("a", String("b"), "c", String("d")))

		re := newTestParser(func(o *ParseOptions) {
			convey.So(o.CompileDelimiter("[;,] *"), convey.ShouldBeNil)
		})
		convey.So(re.Parse("a=b; c=d"), shouldEqualValue, dict("a", String("b"), "c", String("d")))
	})

	convey.Convey("parameter limit", t, func() {
		one := newTestParser(func(o *ParseOptions) { o.ParameterLimit = 1 })
		convey.So(one.Parse("a=b&c=d"), shouldEqualValue, dict("a", String("b")))
		unlimited := newTestParser(func(o *ParseOptions) { o.ParameterLimit = 0 })
		convey.So(unlimited.Parse("a=b&c=d").Len(), convey.ShouldEqual, 2)
	})

	convey.Convey("query prefix", t, func() {
		p := newTestParser(func(o *ParseOptions) { o.IgnoreQueryPrefix = true })
		convey.So(p.Parse("?a=b"), shouldEqualValue, dict("a", String("b")))
		convey.So(Parse("?a=b"), shouldEqualValue, dict("?a", String("b")))
	})

	convey.Convey("comma separated values", t, func() {
		p := newTestParser(func(o *ParseOptions) { o.Comma = true })
		convey.So(p.Parse("a=b,c"), shouldEqualValue, dict("a", arr(String("b"), String("c"))))
		convey.So(p.Parse("a=b,"), shouldEqualValue, dict("a", arr(String("b"), String(""))))
		convey.So(p.Parse("a=b"), shouldEqualValue, dict("a", String("b")))
		convey.So(p.Parse("a[]=b,c"), shouldEqualValue, dict("a", arr(String("b"), String("c"))))
		convey.So(p.Parse("a=b,c&a=d"), shouldEqualValue,
			dict("a", arr(String("b"), String("c"), String("d"))))
		convey.So(p.Parse("a=b%2Cc"), shouldEqualValue, dict("a", String("b,c")))
	})

	convey.Convey("a very long array parses in one piece", t, func() {
		p := newTestParser(func(o *ParseOptions) { o.ParameterLimit = 0 })
		q := strings.Repeat("a[]=x&", 20000) + "a[]=y"
		got := p.Parse(q)
		v, ok := got.Get(StringKey("a"))
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(v.(*Array).Len(), convey.ShouldEqual, 20001)
	})

	convey.Convey("invalid options are rejected", t, func() {
		o := DefaultParseOptions()
		o.Delimiter = ""
		_, err := NewParser(o)
		convey.So(errors.Is(err, ErrInvalidOptions), convey.ShouldBeTrue)

		o = DefaultParseOptions()
		o.Depth = -1
		_, err = NewParser(o)
		convey.So(errors.Is(err, ErrInvalidOptions), convey.ShouldBeTrue)

		o = DefaultParseOptions()
		convey.So(errors.Is(o.CompileDelimiter("["), ErrInvalidOptions), convey.ShouldBeTrue)
	})

	convey.Convey("decisions are logged at debug level", t, func() {
		var buf bytes.Buffer
		p := newTestParser(func(o *ParseOptions) {
			o.Depth = 1
			o.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		})
		p.Parse("a[b][c]=d&x[99]=y")
		convey.So(buf.String(), convey.ShouldContainSubstring, "key deeper than limit")
		convey.So(buf.String(), convey.ShouldContainSubstring, "array index over limit")
	})
}

func TestParseCharsets(t *testing.T) {
	convey.Convey("iso-8859-1", t, func() {
		p := newTestParser(func(o *ParseOptions) { o.Charset = ISO88591 })
		convey.So(p.Parse("%A2=%BD"), shouldEqualValue, dict("¢", String("½")))
		convey.So(Parse("%A2=%BD"), shouldEqualValue, dict("%A2", String("%BD")))
	})

	convey.Convey("charset sentinel", t, func() {
		p := newTestParser(func(o *ParseOptions) {
			o.Charset = ISO88591
			o.CharsetSentinel = true
		})
		convey.So(p.Parse("utf8=%E2%9C%93&a=%C3%B8"), shouldEqualValue, dict("a", String("ø")))

		u := newTestParser(func(o *ParseOptions) { o.CharsetSentinel = true })
		convey.So(u.Parse("utf8=%26%2310003%3B&a=%F8"), shouldEqualValue, dict("a", String("ø")))
		convey.So(u.Parse("a=%C3%B8&utf8=%26%2310003%3B"), shouldEqualValue, dict("a", String("Ã¸")))
	})

	convey.Convey("utf8 entries are never part of the result", t, func() {
		convey.So(Parse("utf8=%E2%9C%93&a=b"), shouldEqualValue, dict("a", String("b")))
		convey.So(Parse("utf8=foo&a=b"), shouldEqualValue, dict("a", String("b")))
	})

	convey.Convey("numeric entities", t, func() {
		p := newTestParser(func(o *ParseOptions) {
			o.Charset = ISO88591
			o.InterpretNumericEntities = true
		})
		convey.So(p.Parse("foo=%26%239786%3B"), shouldEqualValue, dict("foo", String("☺")))
		convey.So(p.Parse("foo=x%26%239786%3By"), shouldEqualValue, dict("foo", String("x☺y")))

		off := newTestParser(func(o *ParseOptions) { o.Charset = ISO88591 })
		convey.So(off.Parse("foo=%26%239786%3B"), shouldEqualValue, dict("foo", String("&#9786;")))

		utf := newTestParser(func(o *ParseOptions) { o.InterpretNumericEntities = true })
		convey.So(utf.Parse("foo=%26%239786%3B"), shouldEqualValue, dict("foo", String("&#9786;")))
	})

	convey.Convey("malformed escapes are kept", t, func() {
		convey.So(Parse("foo=%:%}"), shouldEqualValue, dict("foo", String("%:%}")))
		convey.So(Parse("{%:%}="), shouldEqualValue, dict("{%:%}", String("")))
		convey.So(Parse("a=%FF"), shouldEqualValue, dict("a", String("%FF")))
	})

	convey.Convey("custom decoder", t, func() {
		p := newTestParser(func(o *ParseOptions) {
			o.Decoder = DecoderFunc(func(raw string, cs Charset, role Role) string {
				if role == RoleKey {
					return strings.ToUpper(raw)
				}
				return FormDecoder{}.Decode(raw, cs, role)
			})
		})
		convey.So(p.Parse("a[b]=c+d"), shouldEqualValue, dict("A", dict("B", String("c d"))))
	})
}
