package engine

// 抓取流程：获取网页 -> 提取表格 -> 截取行列 -> 追加序号列并内连接 -> 写入存储，每一步只执行一次

import (
	"context"
	"errors"
	"fmt"

	"github.com/dszqbsm/rankedfilms/collect"
	"github.com/dszqbsm/rankedfilms/parse/htmltable"
	"github.com/dszqbsm/rankedfilms/table"
	"go.uber.org/zap"
)

// 网页中的表格数量少于要求时返回，此时不会写入任何存储
var ErrTooFewTables = errors.New("too few tables found on the webpage")

// 定义了存储引擎的统一规范
type Storage interface {
	Save(ctx context.Context, t *table.Table) error
}

type Crawler struct {
	options
}

/*
输入一个或多个Option实例，输出一个Crawler实例

未指定采集器和表格提取器时分别使用collect.BaseFetch和css提取器
*/
func NewEngine(opts ...Option) *Crawler {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	if options.Fetcher == nil {
		options.Fetcher = collect.New(collect.WithLogger(options.Logger))
	}
	if options.Extractor == nil {
		options.Extractor, _ = htmltable.New(htmltable.CSSParser)
	}
	return &Crawler{options: options}
}

/*
输入一个上下文，输出合并后的表格和一个error

表格数量不足时记录错误日志并返回ErrTooFewTables；其他错误直接返回，已经写入的存储不会回滚
*/
func (c *Crawler) Run(ctx context.Context) (*table.Table, error) {
	c.Logger.Info("Fetching the webpage", zap.String("url", c.URL))
	body, err := c.Fetcher.Get(ctx, c.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", c.URL, err)
	}

	c.Logger.Info("Extracting tables from the webpage")
	tables, err := c.Extractor.Extract(body)
	if err != nil {
		return nil, fmt.Errorf("extract tables: %w", err)
	}
	c.Logger.Info("Number of tables extracted", zap.Int("tables", len(tables)))

	if len(tables) < c.MinTables {
		c.Logger.Error(fmt.Sprintf("Less than %d tables found on the webpage. Exiting the process", c.MinTables),
			zap.Int("tables", len(tables)))
		return nil, ErrTooFewTables
	}

	c.Logger.Info(fmt.Sprintf("Extracting relevant columns and first %d rows from the first table", c.Rows))
	left, err := c.slice(tables, c.Left)
	if err != nil {
		return nil, fmt.Errorf("first table: %w", err)
	}
	c.logShape(fmt.Sprintf("Table 1 (first %d rows)", c.Rows), left)

	c.Logger.Info(fmt.Sprintf("Extracting relevant columns and first %d rows from the second table", c.Rows))
	right, err := c.slice(tables, c.Right)
	if err != nil {
		return nil, fmt.Errorf("second table: %w", err)
	}
	c.logShape(fmt.Sprintf("Table 2 (first %d rows)", c.Rows), right)

	c.Logger.Info(fmt.Sprintf("Merging the two tables on the '%s' column", c.Key))
	merged, err := Merge(left, right, c.Key)
	if err != nil {
		return nil, err
	}
	c.logShape("Merged dataframe shape", merged)

	for _, s := range c.Storages {
		if err := s.Save(ctx, merged); err != nil {
			return merged, err
		}
	}

	c.Logger.Info("Process completed successfully")
	return merged, nil
}

func (c *Crawler) slice(tables []*table.Table, s Slice) (*table.Table, error) {
	if s.Table < 0 || s.Table >= len(tables) {
		return nil, fmt.Errorf("table index %d out of range, %d tables found", s.Table, len(tables))
	}
	return table.Select(tables[s.Table], c.Rows, s.Columns...)
}

func (c *Crawler) logShape(msg string, t *table.Table) {
	rows, cols := t.Shape()
	c.Logger.Info(msg, zap.Int("rows", rows), zap.Int("columns", cols))
}

/*
输入两个切片后的表格和序号列名，输出合并后的表格和一个error

两张表格各自追加1..N的序号列，在序号列上内连接后删除序号列；该连接只依赖行的位置，不校验两张表格的行是否真正对应
*/
func Merge(left, right *table.Table, key string) (*table.Table, error) {
	joined, err := table.InnerJoin(table.WithSequence(left, key), table.WithSequence(right, key), key)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	return table.Drop(joined, key)
}
