package sqldb

// 定义了与关系型数据库交互的功能，包括建库、建表、删表、插入数据

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dszqbsm/rankedfilms/table"
	"go.uber.org/zap"
)

// 为数据库操作统一了规范，包括创建表、删除表、插入数据
type DBer interface {
	/*
	   输入一个TableData实例，输出一个error

	   表已存在时不做任何修改
	*/
	CreateTable(ctx context.Context, t TableData) error
	// 表不存在时不报错
	DropTable(ctx context.Context, t TableData) error
	/*
	   输入一个TableData实例，输出一个error

	   用一条语句插入全部数据，形如INSERT INTO users(id,name,age) VALUES (?,?,?),(?,?,?);，多少个占位符取决于有多少列
	*/
	Insert(ctx context.Context, t TableData) error
	Close() error
}

// sql数据库实例
type Sqldb struct {
	options
	db *sql.DB
}

// 表示数据库表中的一个字段，包含字段名和字段类型
type Field struct {
	Title      string
	Kind       table.Kind
	PrimaryKey bool
}

// 表示要操作的数据库表的数据
type TableData struct {
	TableName   string
	ColumnNames []Field       // 标题字段
	Args        []interface{} // 数据
	DataCount   int           // 插入数据的数量
}

/*
输入一个或多个Option实例，输出一个Sqldb实例和一个error

创建Sqldb实例并打开数据库连接
*/
func New(ctx context.Context, opts ...Option) (*Sqldb, error) {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	d := &Sqldb{}
	d.options = options
	if err := d.OpenDB(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// 打开数据库连接，通过ping测试连接是否正常；单次运行只需要一个连接
func (d *Sqldb) OpenDB(ctx context.Context) error {
	db, err := sql.Open(d.dialect.DriverName(), d.sqlUrl)
	if err != nil {
		return err
	}
	db.SetMaxOpenConns(1)
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return err
	}
	d.db = db
	return nil
}

func (d *Sqldb) DB() *sql.DB {
	return d.db
}

func (d *Sqldb) Dialect() Dialect {
	return d.dialect
}

func (d *Sqldb) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

func (d *Sqldb) CreateTable(ctx context.Context, t TableData) error {
	if len(t.ColumnNames) == 0 {
		return errors.New("column can not be empty")
	}
	sql := `CREATE TABLE IF NOT EXISTS ` + d.dialect.Quote(t.TableName) + " ("
	for _, f := range t.ColumnNames {
		sql += d.dialect.Quote(f.Title) + ` ` + d.dialect.ColumnType(f.Kind)
		if f.PrimaryKey {
			sql += ` NOT NULL PRIMARY KEY`
		}
		sql += `,`
	}
	sql = sql[:len(sql)-1] + `)` + d.dialect.TableOptions()

	d.logger.Debug("create table", zap.String("sql", sql))

	_, err := d.db.ExecContext(ctx, sql)
	return err
}

func (d *Sqldb) DropTable(ctx context.Context, t TableData) error {
	sql := `DROP TABLE IF EXISTS ` + d.dialect.Quote(t.TableName)

	d.logger.Debug("drop table", zap.String("sql", sql))

	_, err := d.db.ExecContext(ctx, sql)
	return err
}

func (d *Sqldb) Insert(ctx context.Context, t TableData) error {
	if len(t.ColumnNames) == 0 {
		return errors.New("empty column")
	}
	if t.DataCount == 0 {
		return nil
	}
	if len(t.Args) != t.DataCount*len(t.ColumnNames) {
		return errors.New("args count does not match columns and data count")
	}

	var b strings.Builder
	b.WriteString(`INSERT INTO ` + d.dialect.Quote(t.TableName) + `(`) // 初始化一个sql插入语句的前缀
	for i, v := range t.ColumnNames {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(d.dialect.Quote(v.Title))
	}
	b.WriteString(`) VALUES `)

	// postgres的占位符带序号，所以逐个生成
	n := 1
	for row := 0; row < t.DataCount; row++ {
		if row > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('(')
		for col := range t.ColumnNames {
			if col > 0 {
				b.WriteByte(',')
			}
			b.WriteString(d.dialect.Placeholder(n))
			n++
		}
		b.WriteByte(')')
	}

	sql := b.String()
	d.logger.Debug("insert table", zap.String("sql", sql))
	_, err := d.db.ExecContext(ctx, sql, t.Args...)
	return err
}

/*
输入一个Dialect、服务器连接字符串和数据库名，输出是否新建了数据库和一个error

连接到数据库服务器，数据库不存在时创建；没有独立服务器的数据库直接返回
*/
func EnsureDatabase(ctx context.Context, dialect Dialect, serverURL, name string) (bool, error) {
	if !dialect.HasServer() {
		return false, nil
	}
	db, err := sql.Open(dialect.DriverName(), serverURL)
	if err != nil {
		return false, err
	}
	defer db.Close()

	exists, err := dialect.DatabaseExists(ctx, db, name)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if err := dialect.CreateDatabase(ctx, db, name); err != nil {
		return false, err
	}
	return true, nil
}
