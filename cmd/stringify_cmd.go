package cmd

import (
	"fmt"

	"github.com/dzjyyds666/qs/parse"
	"github.com/dzjyyds666/qs/parse/qs"
	"github.com/dzjyyds666/qs/pkg"
	"github.com/spf13/cobra"
)

type StringifyParams struct {
	Input string // JSON 或 YAML 文档路径, "-" 表示标准输入
}

func newStringifyCmd(root *RootParams) *cobra.Command {
	params := &StringifyParams{}
	stringifyCmd := &cobra.Command{
		Use:   "stringify [document]",
		Short: "Write a JSON or YAML document as a query string",
		Long: "Write a JSON or YAML document as a query string. Key order is kept. The document " +
			"is taken from the argument, or from --input, or from stdin.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return stringifyRun(cmd, args, root, params)
		},
	}
	stringifyCmd.Flags().StringVarP(&params.Input, "input", "i", "-", "input file path, - for stdin")
	registerStringifyFlags(stringifyCmd.Flags())
	return stringifyCmd
}

func stringifyRun(cmd *cobra.Command, args []string, root *RootParams, params *StringifyParams) error {
	env, err := root.env(cmd)
	if err != nil {
		return err
	}
	opts, err := env.stringifyOptions(cmd.Flags())
	if err != nil {
		return err
	}
	stringifier, err := qs.NewStringifier(opts)
	if err != nil {
		return err
	}

	var data []byte
	if len(args) > 0 {
		data = []byte(args[0])
	} else if data, err = pkg.ReadInput(params.Input, cmd.InOrStdin()); err != nil {
		return err
	}
	doc, err := parse.DecodeDocument(data)
	if err != nil {
		return err
	}
	env.log.Debug("document decoded", "kind", doc.Kind())

	_, err = fmt.Fprintln(cmd.OutOrStdout(), stringifier.Stringify(doc))
	return err
}
