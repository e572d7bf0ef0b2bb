package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dzjyyds666/qs/parse/qs"
	"github.com/dzjyyds666/qs/pkg"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
)

var errRoundtripChanged = errors.New("round trip changed the query")

type RoundtripParams struct {
	Input   string // 输入文件路径, "-" 表示标准输入
	Check   bool   // 输出与输入不同时返回错误
	NoColor bool   // 关闭 diff 的颜色
}

func newRoundtripCmd(root *RootParams) *cobra.Command {
	params := &RoundtripParams{}
	roundtripCmd := &cobra.Command{
		Use:   "roundtrip [query]",
		Short: "Parse a query string and write it back",
		Long: "Parse a query string and write it back, showing a diff when the result differs " +
			"from the input.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return roundtripRun(cmd, args, root, params)
		},
	}
	roundtripCmd.Flags().StringVarP(&params.Input, "input", "i", "", "input file path, - for stdin")
	roundtripCmd.Flags().BoolVar(&params.Check, "check", false, "fail when the output differs from the input")
	roundtripCmd.Flags().BoolVar(&params.NoColor, "no-color", false, "disable colors in the diff")
	registerParseFlags(roundtripCmd.Flags())
	registerStringifyFlags(roundtripCmd.Flags())
	return roundtripCmd
}

func roundtripRun(cmd *cobra.Command, args []string, root *RootParams, params *RoundtripParams) error {
	env, err := root.env(cmd)
	if err != nil {
		return err
	}
	popts, err := env.parseOptions(cmd.Flags())
	if err != nil {
		return err
	}
	sopts, err := env.stringifyOptions(cmd.Flags())
	if err != nil {
		return err
	}
	parser, err := qs.NewParser(popts)
	if err != nil {
		return err
	}
	stringifier, err := qs.NewStringifier(sopts)
	if err != nil {
		return err
	}

	query, err := pkg.ReadQuery(args, params.Input, cmd.InOrStdin())
	if err != nil {
		return err
	}
	result := stringifier.Stringify(parser.Parse(query))

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, result)
	if result == query {
		return nil
	}

	env.log.Debug("round trip differs", "input", query, "output", result)
	writeDiff(out, query, result, !params.NoColor && isTerminal(out))
	if params.Check {
		return errRoundtripChanged
	}
	return nil
}

// writeDiff prints a character diff between before and after. Without color
// deletions are shown as [-x-] and insertions as {+x+}.
func writeDiff(w io.Writer, before, after string, colored bool) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))
	if colored {
		fmt.Fprintln(w, dmp.DiffPrettyText(diffs))
		return
	}

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			b.WriteString("{+" + d.Text + "+}")
		default:
			b.WriteString(d.Text)
		}
	}
	fmt.Fprintln(w, b.String())
}
