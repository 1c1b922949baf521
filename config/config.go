package config

// 定义了抓取任务的全部配置：数据源、表格选择、输出文件与数据库连接，配置从yaml文件读取并与默认值合并

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"dario.cat/mergo"
	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// 覆盖数据库连接参数的环境变量，可以写在.env文件中
const (
	UserEnv     = "FILMS_DB_USER"
	PasswordEnv = "FILMS_DB_PASSWORD"
	HostEnv     = "FILMS_DB_HOST"
	PortEnv     = "FILMS_DB_PORT"
)

type Config struct {
	LogLevel  string          `yaml:"logLevel"`
	LogFile   string          `yaml:"logFile"`
	Source    SourceConfig    `yaml:"source"`
	Selection SelectionConfig `yaml:"selection"`
	Output    OutputConfig    `yaml:"output"`
	Database  DatabaseConfig  `yaml:"database"`
}

type SourceConfig struct {
	URL       string        `yaml:"url"`
	Parser    string        `yaml:"parser"` // css或xpath
	MinTables int           `yaml:"minTables"`
	Timeout   time.Duration `yaml:"timeout"` // 0表示不设置超时
	Proxy     []string      `yaml:"proxy"`
	UserAgent string        `yaml:"userAgent"`
}

type SelectionConfig struct {
	Rows  int         `yaml:"rows"`
	Key   string      `yaml:"key"` // 合成的连接键列名
	Left  SliceConfig `yaml:"left"`
	Right SliceConfig `yaml:"right"`
}

// 从第Table张表格中选取的列下标
type SliceConfig struct {
	Table   int   `yaml:"table"`
	Columns []int `yaml:"columns"`
}

type OutputConfig struct {
	CSV string `yaml:"csv"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // postgres、mysql或sqlite
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Name     string `yaml:"name"` // sqlite时为数据库文件路径
	Table    string `yaml:"table"`
}

// 默认配置
func Default() Config {
	return Config{
		LogLevel: "INFO",
		LogFile:  "Highlyrankedfilm_process_log.txt",
		Source: SourceConfig{
			URL:       "https://web.archive.org/web/20230902185655/https://en.everybodywiki.com/100_Most_Highly-Ranked_Films",
			Parser:    "css",
			MinTables: 3,
		},
		Selection: SelectionConfig{
			Rows:  17,
			Key:   "Number",
			Left:  SliceConfig{Table: 0, Columns: []int{0, 1, 2}},
			Right: SliceConfig{Table: 2, Columns: []int{1}},
		},
		Output: OutputConfig{
			CSV: "merged_tables.csv",
		},
		Database: DatabaseConfig{
			Driver:   "postgres",
			User:     "postgres",
			Password: "postgres",
			Host:     "localhost",
			Port:     "5432",
			Name:     "Films_db",
			Table:    "resulting_table",
		},
	}
}

/*
输入一个配置文件路径，输出一个配置实例和一个error

路径为空时只使用默认配置；yaml解码到默认配置之上，文件中未出现的字段保留默认值，显式写出的零值同样生效。
之后加载当前目录下的.env文件，非空的FILMS_DB_*环境变量覆盖数据库连接参数，最后校验配置
*/
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := mergo.Merge(&cfg.Database, envDatabase(), mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("merge env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// 从环境变量读取数据库连接参数，未设置的字段为空，不会覆盖已有配置
func envDatabase() DatabaseConfig {
	return DatabaseConfig{
		User:     os.Getenv(UserEnv),
		Password: os.Getenv(PasswordEnv),
		Host:     os.Getenv(HostEnv),
		Port:     os.Getenv(PortEnv),
	}
}

func (c *Config) Validate() error {
	if c.Source.URL == "" {
		return errors.New("source.url is required")
	}
	if _, err := url.ParseRequestURI(c.Source.URL); err != nil {
		return fmt.Errorf("source.url is invalid: %w", err)
	}
	if c.Source.Parser != "css" && c.Source.Parser != "xpath" {
		return fmt.Errorf("source.parser must be css or xpath, got %q", c.Source.Parser)
	}
	if c.Source.MinTables < 1 {
		return errors.New("source.minTables must be positive")
	}
	if c.Selection.Rows < 1 {
		return errors.New("selection.rows must be positive")
	}
	for name, s := range map[string]SliceConfig{"left": c.Selection.Left, "right": c.Selection.Right} {
		if s.Table < 0 {
			return fmt.Errorf("selection.%s.table must not be negative", name)
		}
		if len(s.Columns) == 0 {
			return fmt.Errorf("selection.%s.columns is required", name)
		}
	}
	if c.Output.CSV == "" {
		return errors.New("output.csv is required")
	}
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("database.driver must be postgres, mysql or sqlite, got %q", c.Database.Driver)
	}
	if c.Database.Name == "" {
		return errors.New("database.name is required")
	}
	if c.Database.Table == "" {
		return errors.New("database.table is required")
	}
	return nil
}

/*
输入是否包含数据库名，输出连接字符串

不包含数据库名的连接字符串用于连接到数据库服务器以创建数据库；postgres连接到维护库postgres，mysql不指定库；sqlite的连接字符串即为文件路径
*/
func (d DatabaseConfig) DSN(withDB bool) string {
	switch d.Driver {
	case "mysql":
		c := mysql.NewConfig()
		c.User = d.User
		c.Passwd = d.Password
		c.Net = "tcp"
		c.Addr = net.JoinHostPort(d.Host, d.Port)
		if withDB {
			c.DBName = d.Name
		}
		return c.FormatDSN()
	case "sqlite":
		return d.Name
	default:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(d.User, d.Password),
			Host:   net.JoinHostPort(d.Host, d.Port),
			Path:   "/postgres",
		}
		if withDB {
			u.Path = "/" + d.Name
		}
		return u.String()
	}
}
