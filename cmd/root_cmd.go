package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dzjyyds666/qs/pkg"
	"github.com/dzjyyds666/qs/pkg/config"
	"github.com/spf13/cobra"
)

const version = "v0.1.0"

type RootParams struct {
	Config  string // HCL 配置文件路径
	Verbose bool   // 输出调试日志
}

func newRootCmd() *cobra.Command {
	params := &RootParams{}
	rootCmd := &cobra.Command{
		Use:   "qs",
		Short: "Qs converts query strings to nested values and back.",
		Long: "Qs converts application/x-www-form-urlencoded query strings such as a[b][0]=c " +
			"into nested values and writes nested values back as query strings.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&params.Config, "config", "c", "", "HCL profile with default options")
	rootCmd.PersistentFlags().BoolVarP(&params.Verbose, "verbose", "v", false, "log parser decisions to stderr")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newParseCmd(params))
	rootCmd.AddCommand(newStringifyCmd(params))
	rootCmd.AddCommand(newRoundtripCmd(params))
	return rootCmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of Qs",
		Long:  `All software has versions. This is Qs's`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Qs %s -- HEAD\n", version)
		},
	}
}

// runEnv holds what every subcommand needs before it can build options.
type runEnv struct {
	log     *slog.Logger
	profile *config.Profile
}

func (p *RootParams) env(cmd *cobra.Command) (*runEnv, error) {
	level := slog.LevelWarn
	if p.Verbose {
		level = slog.LevelDebug
	}
	env := &runEnv{
		log: slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})),
	}
	if p.Config == "" {
		return env, nil
	}

	exist, err := pkg.CheckFileExist(p.Config)
	if err != nil {
		return nil, fmt.Errorf("check config file: %w", err)
	}
	if !exist {
		return nil, fmt.Errorf("config file %q not exist", p.Config)
	}
	profile, err := config.Load(p.Config)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	env.log.Debug("profile loaded", "path", p.Config)
	env.profile = profile
	return env, nil
}
