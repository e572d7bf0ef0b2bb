package parse

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dzjyyds666/qs/parse/qs"
	"github.com/fatih/color"
)

// TreePrinter renders a tree one entry per line, children indented under
// their key. Array slots are shown as [i]; holes are kept visible.
type TreePrinter struct {
	Color  bool
	Indent string
}

type treeColors struct {
	key, str, num, null, hole *color.Color
}

func (p TreePrinter) colors() treeColors {
	c := treeColors{
		key:  color.New(color.FgCyan),
		str:  color.New(color.FgGreen),
		num:  color.New(color.FgYellow),
		null: color.New(color.FgMagenta),
		hole: color.New(color.Faint),
	}
	for _, cc := range []*color.Color{c.key, c.str, c.num, c.null, c.hole} {
		if p.Color {
			cc.EnableColor()
		} else {
			cc.DisableColor()
		}
	}
	return c
}

func (p TreePrinter) Fprint(w io.Writer, v qs.Value) error {
	indent := p.Indent
	if indent == "" {
		indent = "  "
	}
	var b strings.Builder
	writeTree(&b, p.colors(), indent, 0, "", v, true)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeTree(b *strings.Builder, c treeColors, indent string, depth int, label string, v qs.Value, present bool) {
	pad := strings.Repeat(indent, depth)
	head := pad
	if label != "" {
		head += c.key.Sprint(label) + ":"
	}

	if !present {
		fmt.Fprintf(b, "%s %s\n", head, c.hole.Sprint("<hole>"))
		return
	}

	switch t := v.(type) {
	case *qs.Dict:
		if label != "" {
			b.WriteString(head + "\n")
		}
		next := depth
		if label != "" {
			next++
		}
		t.Each(func(k qs.Key, e qs.Value) bool {
			writeTree(b, c, indent, next, k.String(), e, true)
			return true
		})
	case *qs.Array:
		b.WriteString(head + "\n")
		for i := 0; i < t.Len(); i++ {
			e, ok := t.Get(i)
			writeTree(b, c, indent, depth+1, "["+strconv.Itoa(i)+"]", e, ok)
		}
	case qs.String:
		fmt.Fprintf(b, "%s %s\n", head, c.str.Sprint(strconv.Quote(string(t))))
	case qs.Int, qs.Bool:
		fmt.Fprintf(b, "%s %s\n", head, c.num.Sprint(t.String()))
	case qs.Null:
		fmt.Fprintf(b, "%s %s\n", head, c.null.Sprint("null"))
	}
}
