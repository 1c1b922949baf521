package engine

import (
	"github.com/dszqbsm/rankedfilms/collect"
	"github.com/dszqbsm/rankedfilms/parse/htmltable"
	"go.uber.org/zap"
)

type Option func(opts *options)

// 从第Table张表格中选取的列
type Slice struct {
	Table   int
	Columns []int
}

// 抓取流程配置选项
type options struct {
	URL       string              // 目标网页
	MinTables int                 // 网页中至少需要的表格数量
	Rows      int                 // 每张表格保留的行数
	Key       string              // 合成连接键的列名
	Left      Slice               // 左表
	Right     Slice               // 右表
	Fetcher   collect.Fetcher     // 采集器
	Extractor htmltable.Extractor // 表格提取器
	Storages  []Storage           // 按顺序写入的存储
	Logger    *zap.Logger         // 日志
}

var defaultOptions = options{
	MinTables: 3,
	Rows:      17,
	Key:       "Number",
	Left:      Slice{Table: 0, Columns: []int{0, 1, 2}},
	Right:     Slice{Table: 2, Columns: []int{1}},
	Logger:    zap.NewNop(),
}

func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.Logger = logger
	}
}

func WithURL(url string) Option {
	return func(opts *options) {
		opts.URL = url
	}
}

func WithFetcher(fetcher collect.Fetcher) Option {
	return func(opts *options) {
		opts.Fetcher = fetcher
	}
}

func WithExtractor(e htmltable.Extractor) Option {
	return func(opts *options) {
		opts.Extractor = e
	}
}

func WithMinTables(n int) Option {
	return func(opts *options) {
		opts.MinTables = n
	}
}

func WithRows(rows int) Option {
	return func(opts *options) {
		opts.Rows = rows
	}
}

func WithKey(key string) Option {
	return func(opts *options) {
		opts.Key = key
	}
}

func WithSlices(left, right Slice) Option {
	return func(opts *options) {
		opts.Left = left
		opts.Right = right
	}
}

func WithStorages(storages ...Storage) Option {
	return func(opts *options) {
		opts.Storages = storages
	}
}
