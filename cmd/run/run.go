package run

// run子命令：读取配置，初始化日志、采集器、表格提取器和存储，执行一次抓取流程

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dszqbsm/rankedfilms/collect"
	"github.com/dszqbsm/rankedfilms/config"
	"github.com/dszqbsm/rankedfilms/csvstorage"
	"github.com/dszqbsm/rankedfilms/engine"
	"github.com/dszqbsm/rankedfilms/log"
	"github.com/dszqbsm/rankedfilms/parse/htmltable"
	"github.com/dszqbsm/rankedfilms/proxy"
	"github.com/dszqbsm/rankedfilms/sqlstorage"
	"github.com/dszqbsm/rankedfilms/table"
	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var setupLog = log.Setup

type Flags struct {
	ConfigPath string
	Preview    bool // 在标准输出打印合并后的表格
	Stdout     bool // 日志同时输出到标准输出
}

func NewRunCmd() *cobra.Command {
	var flags Flags
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "scrape the configured page and save the merged table to csv and database.",
		Long:  "scrape the configured page and save the merged table to csv and database.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(flags.ConfigPath)
			if err != nil {
				return err
			}
			return Run(cmd.Context(), cfg, flags, cmd.OutOrStdout())
		},
	}
	runCmd.Flags().StringVar(&flags.ConfigPath, "config", "", "path to the yaml config, defaults are used when empty")
	runCmd.Flags().BoolVar(&flags.Preview, "preview", false, "print the merged table")
	runCmd.Flags().BoolVar(&flags.Stdout, "stdout", false, "also write logs to stdout")
	return runCmd
}

/*
输入一个上下文、配置、命令行参数和输出目标，输出一个error

表格数量不足时只记录日志并返回nil，进程正常退出；其他错误记录日志后返回；关闭日志文件失败的错误合并到返回值中
*/
func Run(ctx context.Context, cfg *config.Config, flags Flags, out io.Writer) (err error) {
	logger, closeLog, err := setupLog(log.Config{
		Level:  cfg.LogLevel,
		File:   cfg.LogFile,
		Stdout: flags.Stdout,
	})
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, closeLog())
	}()

	// set zap global logger
	defer zap.ReplaceGlobals(logger)()

	fetchOpts := []collect.Option{
		collect.WithLogger(logger),
		collect.WithTimeout(cfg.Source.Timeout),
	}
	if cfg.Source.UserAgent != "" {
		fetchOpts = append(fetchOpts, collect.WithUserAgent(cfg.Source.UserAgent))
	}
	if len(cfg.Source.Proxy) > 0 {
		p, err := proxy.RoundRobinProxySwitcher(cfg.Source.Proxy...)
		if err != nil {
			logger.Error("RoundRobinProxySwitcher failed", zap.Error(err))
			return err
		}
		fetchOpts = append(fetchOpts, collect.WithProxy(p))
	}

	extractor, err := htmltable.New(htmltable.ParserType(cfg.Source.Parser))
	if err != nil {
		logger.Error("create extractor failed", zap.Error(err))
		return err
	}

	db := cfg.Database
	sqlStore, err := sqlstorage.New(
		sqlstorage.WithDialect(db.Driver),
		sqlstorage.WithSqlUrl(db.DSN(true)),
		sqlstorage.WithServerUrl(db.DSN(false)),
		sqlstorage.WithDatabase(db.Name),
		sqlstorage.WithTable(db.Table),
		sqlstorage.WithLogger(logger),
	)
	if err != nil {
		logger.Error("create sqlstorage failed", zap.Error(err))
		return err
	}

	sel := cfg.Selection
	e := engine.NewEngine(
		engine.WithLogger(logger),
		engine.WithURL(cfg.Source.URL),
		engine.WithFetcher(collect.New(fetchOpts...)),
		engine.WithExtractor(extractor),
		engine.WithMinTables(cfg.Source.MinTables),
		engine.WithRows(sel.Rows),
		engine.WithKey(sel.Key),
		engine.WithSlices(
			engine.Slice{Table: sel.Left.Table, Columns: sel.Left.Columns},
			engine.Slice{Table: sel.Right.Table, Columns: sel.Right.Columns},
		),
		engine.WithStorages(
			csvstorage.New(cfg.Output.CSV, csvstorage.WithLogger(logger)),
			sqlStore,
		),
	)

	merged, err := e.Run(ctx)
	if errors.Is(err, engine.ErrTooFewTables) {
		return nil
	}
	if err != nil {
		logger.Error("process failed", zap.Error(err))
		return err
	}

	if flags.Preview {
		Preview(out, merged)
	}
	fmt.Fprintf(out, "Data processed and saved to '%s' database in %s!\n", db.Name, db.Driver)
	return nil
}

// 以表格形式打印
func Preview(out io.Writer, t *table.Table) {
	w := prettytable.NewWriter()
	w.SetOutputMirror(out)

	header := prettytable.Row{}
	for _, name := range t.Names() {
		header = append(header, name)
	}
	w.AppendHeader(header)

	for _, r := range t.Rows {
		row := prettytable.Row{}
		for _, v := range r {
			row = append(row, v)
		}
		w.AppendRow(row)
	}

	w.SetStyle(prettytable.StyleRounded)
	w.Render()
}
