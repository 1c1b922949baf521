package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/dszqbsm/rankedfilms/cmd/run"
	"github.com/dszqbsm/rankedfilms/version"
	"github.com/spf13/cobra"
)

// cmd.go借助cobra库定义了命令行界面，run子命令执行一次完整的抓取流程，version子命令打印版本信息

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print version.",
	Long:  "print version.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		version.Printer(cmd.OutOrStdout())
	},
}

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "films",
		Short:         "films scrapes the highly-ranked films page and stores the merged table.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(run.NewRunCmd(), versionCmd)
	return rootCmd
}

// 执行出错时打印错误并以状态码1退出
func Execute(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
