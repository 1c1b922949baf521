package sqlstorage

// 定义了SqlStore结构体及其方法，把合并后的表格写入数据库：不存在时建库，按声明的表结构建表，再用表格内容整体替换目标表

import (
	"context"
	"fmt"

	"github.com/dszqbsm/rankedfilms/sqldb"
	"github.com/dszqbsm/rankedfilms/table"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// 四个文本列加一个整数主键列，主键列与合并时删除的序号列同名
var DeclaredSchema = []sqldb.Field{
	{Title: "Movie Title", Kind: table.Text},
	{Title: "Average Rank", Kind: table.Text},
	{Title: "Year", Kind: table.Text},
	{Title: "Genre", Kind: table.Text},
	{Title: "Number", Kind: table.Int, PrimaryKey: true},
}

type SqlStore struct {
	options
	dialect sqldb.Dialect
	// 用于测试时注入数据库连接
	open func(ctx context.Context) (sqldb.DBer, error)
}

// SqlStore的构造函数，只校验配置，数据库连接在Save时才建立
func New(opts ...Option) (*SqlStore, error) {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	d, err := sqldb.Lookup(options.dialect)
	if err != nil {
		return nil, err
	}
	s := &SqlStore{options: options, dialect: d}
	s.open = s.openDB
	return s, nil
}

func (s *SqlStore) openDB(ctx context.Context) (sqldb.DBer, error) {
	return sqldb.New(ctx,
		sqldb.WithDialect(s.dialect),
		sqldb.WithConnURL(s.sqlUrl),
		sqldb.WithLogger(s.logger),
	)
}

/*
输入一个上下文和合并后的表格，输出一个error

依次执行：连接数据库服务器并在数据库不存在时创建；按声明的表结构建表(已存在则跳过)；删除目标表，按表格的列重新建表并插入全部数据。
写入数据库的表结构因此以表格的列为准，而不是声明的表结构
*/
func (s *SqlStore) Save(ctx context.Context, t *table.Table) (err error) {
	s.logger.Info("Connecting to the database", zap.String("driver", s.dialect.Name()), zap.String("database", s.database))
	created, err := sqldb.EnsureDatabase(ctx, s.dialect, s.serverUrl, s.database)
	if err != nil {
		return fmt.Errorf("ensure database: %w", err)
	}
	if created {
		s.logger.Info("Database does not exist, created a new one", zap.String("database", s.database))
	}

	db, err := s.open(ctx)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		err = multierr.Append(err, db.Close())
	}()

	s.logger.Info("Defining the table schema", zap.String("table", s.table), zap.Int("columns", len(s.schema)))
	declared := sqldb.TableData{
		TableName:   s.table,
		ColumnNames: s.schema,
	}

	s.logger.Info("Creating the table in the database")
	if err := db.CreateTable(ctx, declared); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	s.logger.Info("Loading the dataframe into the database", zap.Int("rows", len(t.Rows)))
	data := tableData(s.table, t)
	if err := db.DropTable(ctx, data); err != nil {
		return fmt.Errorf("drop table: %w", err)
	}
	if err := db.CreateTable(ctx, data); err != nil {
		return fmt.Errorf("recreate table: %w", err)
	}
	if err := db.Insert(ctx, data); err != nil {
		return fmt.Errorf("insert rows: %w", err)
	}
	return nil
}

// 把表格转换为TableData，单元格按列类型转换为数据库参数
func tableData(name string, t *table.Table) sqldb.TableData {
	fields := make([]sqldb.Field, len(t.Columns))
	for i, c := range t.Columns {
		fields[i] = sqldb.Field{Title: c.Name, Kind: c.Kind}
	}
	args := make([]interface{}, 0, len(t.Rows)*len(t.Columns))
	for _, r := range t.Rows {
		for i, c := range t.Columns {
			args = append(args, table.Value(c.Kind, r[i]))
		}
	}
	return sqldb.TableData{
		TableName:   name,
		ColumnNames: fields,
		Args:        args,
		DataCount:   len(t.Rows),
	}
}
