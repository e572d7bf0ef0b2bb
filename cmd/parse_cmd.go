package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/dzjyyds666/qs/parse"
	"github.com/dzjyyds666/qs/parse/qs"
	"github.com/dzjyyds666/qs/pkg"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

type ParseParams struct {
	Input   string // 输入文件路径, "-" 表示标准输入
	Output  string // 输出格式: json, yaml, tree
	NoColor bool   // 关闭 tree 输出的颜色
}

func newParseCmd(root *RootParams) *cobra.Command {
	params := &ParseParams{}
	parseCmd := &cobra.Command{
		Use:   "parse [query]",
		Short: "Parse a query string into a nested value",
		Long: "Parse a query string into a nested value. The query is taken from the argument, " +
			"or from --input, or from stdin.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return parseRun(cmd, args, root, params)
		},
	}
	parseCmd.Flags().StringVarP(&params.Input, "input", "i", "", "input file path, - for stdin")
	parseCmd.Flags().StringVarP(&params.Output, "output", "o", "json", "output format: json, yaml or tree")
	parseCmd.Flags().BoolVar(&params.NoColor, "no-color", false, "disable colors in tree output")
	registerParseFlags(parseCmd.Flags())
	return parseCmd
}

func parseRun(cmd *cobra.Command, args []string, root *RootParams, params *ParseParams) error {
	env, err := root.env(cmd)
	if err != nil {
		return err
	}
	opts, err := env.parseOptions(cmd.Flags())
	if err != nil {
		return err
	}
	parser, err := qs.NewParser(opts)
	if err != nil {
		return err
	}

	query, err := pkg.ReadQuery(args, params.Input, cmd.InOrStdin())
	if err != nil {
		return err
	}
	tree := parser.Parse(query)
	env.log.Debug("query parsed", "keys", tree.Len())

	out := cmd.OutOrStdout()
	return writeValue(out, tree, params.Output, !params.NoColor && isTerminal(out))
}

// writeValue renders v in one of the parse output formats.
func writeValue(w io.Writer, v qs.Value, format string, colored bool) error {
	switch format {
	case "json":
		data, err := parse.EncodeJSON(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := parse.EncodeYAML(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "tree":
		return parse.TreePrinter{Color: colored}.Fprint(w, v)
	}
	return fmt.Errorf("unknown output format %q", format)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
