package csvstorage

// 把合并后的表格写入csv文件，文件已存在时覆盖，第一行为表头，不输出行号列

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/dszqbsm/rankedfilms/table"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type CsvStore struct {
	logger *zap.Logger
	path   string
}

type Option func(s *CsvStore)

func WithLogger(logger *zap.Logger) Option {
	return func(s *CsvStore) {
		s.logger = logger
	}
}

func New(path string, opts ...Option) *CsvStore {
	s := &CsvStore{logger: zap.NewNop(), path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CsvStore) Path() string {
	return s.path
}

func (s *CsvStore) Save(_ context.Context, t *table.Table) (err error) {
	s.logger.Info("Saving the resulting dataframe to a CSV file", zap.String("path", s.path))

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	return Write(f, t)
}

// 按表头加数据行的顺序写出表格
func Write(out io.Writer, t *table.Table) error {
	w := csv.NewWriter(out)
	if err := w.Write(t.Names()); err != nil {
		return err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
