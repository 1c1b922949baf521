package sqlstorage

// 用于配置sql存储相关的选项

import (
	"github.com/dszqbsm/rankedfilms/sqldb"
	"go.uber.org/zap"
)

type options struct {
	logger    *zap.Logger
	dialect   string
	sqlUrl    string // 指向目标数据库的连接字符串
	serverUrl string // 指向数据库服务器的连接字符串，用于建库
	database  string
	table     string
	schema    []sqldb.Field // 预先声明的表结构
}

// 默认选项
var defaultOptions = options{
	logger:  zap.NewNop(),
	dialect: "postgres",
	table:   "resulting_table",
	schema:  DeclaredSchema,
}

type Option func(opts *options)

// 配置日志器
func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

func WithDialect(name string) Option {
	return func(opts *options) {
		opts.dialect = name
	}
}

// 配置数据库的链接url
func WithSqlUrl(sqlUrl string) Option {
	return func(opts *options) {
		opts.sqlUrl = sqlUrl
	}
}

func WithServerUrl(serverUrl string) Option {
	return func(opts *options) {
		opts.serverUrl = serverUrl
	}
}

func WithDatabase(name string) Option {
	return func(opts *options) {
		opts.database = name
	}
}

func WithTable(name string) Option {
	return func(opts *options) {
		opts.table = name
	}
}

func WithSchema(fields []sqldb.Field) Option {
	return func(opts *options) {
		opts.schema = fields
	}
}
