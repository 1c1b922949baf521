package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/dszqbsm/rankedfilms/table"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// 屏蔽不同数据库在驱动、标识符引用、占位符、列类型和建库语句上的差异
type Dialect interface {
	Name() string
	DriverName() string
	Quote(ident string) string
	Placeholder(n int) string // n从1开始
	ColumnType(k table.Kind) string
	TableOptions() string
	// 是否存在独立的数据库服务器，sqlite为否，不需要建库
	HasServer() bool
	DatabaseExists(ctx context.Context, db *sql.DB, name string) (bool, error)
	CreateDatabase(ctx context.Context, db *sql.DB, name string) error
}

// 根据名称获取Dialect
func Lookup(name string) (Dialect, error) {
	switch name {
	case "postgres":
		return postgres{}, nil
	case "mysql":
		return mysqlDialect{}, nil
	case "sqlite":
		return sqlite{}, nil
	default:
		return nil, fmt.Errorf("unsupported sql dialect: %q", name)
	}
}

func quoteWith(ident string, q string) string {
	return q + strings.ReplaceAll(ident, q, q+q) + q
}

type postgres struct{}

func (postgres) Name() string              { return "postgres" }
func (postgres) DriverName() string        { return "pgx" }
func (postgres) Quote(ident string) string { return quoteWith(ident, `"`) }
func (postgres) Placeholder(n int) string  { return "$" + strconv.Itoa(n) }
func (postgres) TableOptions() string      { return "" }
func (postgres) HasServer() bool           { return true }

func (postgres) ColumnType(k table.Kind) string {
	switch k {
	case table.Int:
		return "BIGINT"
	case table.Float:
		return "DOUBLE PRECISION"
	default:
		return "TEXT"
	}
}

func (postgres) DatabaseExists(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`, name).Scan(&exists)
	return exists, err
}

// postgres的CREATE DATABASE不支持IF NOT EXISTS和参数占位符
func (p postgres) CreateDatabase(ctx context.Context, db *sql.DB, name string) error {
	_, err := db.ExecContext(ctx, `CREATE DATABASE `+p.Quote(name))
	return err
}

type mysqlDialect struct{}

func (mysqlDialect) Name() string              { return "mysql" }
func (mysqlDialect) DriverName() string        { return "mysql" }
func (mysqlDialect) Quote(ident string) string { return quoteWith(ident, "`") }
func (mysqlDialect) Placeholder(int) string    { return "?" }
func (mysqlDialect) TableOptions() string      { return " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4" }
func (mysqlDialect) HasServer() bool           { return true }

func (mysqlDialect) ColumnType(k table.Kind) string {
	switch k {
	case table.Int:
		return "BIGINT"
	case table.Float:
		return "DOUBLE"
	default:
		return "TEXT"
	}
}

func (mysqlDialect) DatabaseExists(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?`, name).Scan(&count)
	return count > 0, err
}

func (m mysqlDialect) CreateDatabase(ctx context.Context, db *sql.DB, name string) error {
	_, err := db.ExecContext(ctx, `CREATE DATABASE IF NOT EXISTS `+m.Quote(name))
	return err
}

type sqlite struct{}

func (sqlite) Name() string              { return "sqlite" }
func (sqlite) DriverName() string        { return "sqlite" }
func (sqlite) Quote(ident string) string { return quoteWith(ident, `"`) }
func (sqlite) Placeholder(int) string    { return "?" }
func (sqlite) TableOptions() string      { return "" }
func (sqlite) HasServer() bool           { return false }

func (sqlite) ColumnType(k table.Kind) string {
	switch k {
	case table.Int:
		return "INTEGER"
	case table.Float:
		return "REAL"
	default:
		return "TEXT"
	}
}

func (sqlite) DatabaseExists(context.Context, *sql.DB, string) (bool, error) { return true, nil }
func (sqlite) CreateDatabase(context.Context, *sql.DB, string) error       { return nil }
