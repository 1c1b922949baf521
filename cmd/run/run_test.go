package run

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dszqbsm/rankedfilms/config"
	"github.com/dszqbsm/rankedfilms/log"
	"github.com/dszqbsm/rankedfilms/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func page(tables int) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for n := 0; n < tables; n++ {
		b.WriteString("<table><tr><th>Average Rank</th><th>Movie Title</th><th>Year</th></tr>")
		for i := 1; i <= 20; i++ {
			fmt.Fprintf(&b, "<tr><td>%d</td><td>Film %d</td><td>%d</td></tr>", i, i, 1960+i)
		}
		b.WriteString("</table>")
	}
	b.WriteString("</body></html>")
	return b.String()
}

func testConfig(t *testing.T, tables int) *config.Config {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page(tables)))
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	cfg := config.Default()
	cfg.LogFile = filepath.Join(dir, "process_log.txt")
	cfg.Source.URL = srv.URL
	cfg.Output.CSV = filepath.Join(dir, "merged_tables.csv")
	cfg.Database.Driver = "sqlite"
	cfg.Database.Name = filepath.Join(dir, "films.db")
	require.NoError(t, cfg.Validate())
	return &cfg
}

func logLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestRun(t *testing.T) {
	cfg := testConfig(t, 3)
	var out bytes.Buffer

	require.NoError(t, Run(context.Background(), cfg, Flags{Preview: true}, &out))
	assert.Contains(t, out.String(), "Film 17")
	assert.NotContains(t, out.String(), "Film 18")
	assert.Contains(t, out.String(), "Data processed and saved to")

	data, err := os.ReadFile(cfg.Output.CSV)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 18)
	// 第三张表格的第二列与第一张表格的列同名，按_x/_y区分
	assert.Equal(t, "Average Rank,Movie Title_x,Year,Movie Title_y", lines[0])
	assert.Equal(t, "1,Film 1,1961,Film 1", lines[1])

	logs := logLines(t, cfg.LogFile)
	assert.Contains(t, logs[0], "\tINFO\tFetching the webpage")
	assert.Contains(t, logs[len(logs)-1], "\tINFO\tProcess completed successfully")
	joined := strings.Join(logs, "\n")
	assert.Contains(t, joined, "Number of tables extracted\t{\"tables\": 3}")
	assert.Contains(t, joined, "Merged dataframe shape\t{\"rows\": 17, \"columns\": 4}")
}

func TestRun_TooFewTables(t *testing.T) {
	cfg := testConfig(t, 2)
	var out bytes.Buffer

	require.NoError(t, Run(context.Background(), cfg, Flags{}, &out))
	assert.Empty(t, out.String())

	_, err := os.Stat(cfg.Output.CSV)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(cfg.Database.Name)
	assert.True(t, os.IsNotExist(err))

	logs := logLines(t, cfg.LogFile)
	assert.Contains(t, logs[len(logs)-1], "\tERROR\tLess than 3 tables found on the webpage. Exiting the process")
}

func TestRun_Failure(t *testing.T) {
	cfg := testConfig(t, 3)
	cfg.Output.CSV = filepath.Join(t.TempDir(), "missing", "out.csv")

	err := Run(context.Background(), cfg, Flags{}, &bytes.Buffer{})
	require.Error(t, err)

	logs := logLines(t, cfg.LogFile)
	assert.Contains(t, logs[len(logs)-1], "\tERROR\tprocess failed")
}

func TestRun_BadLevel(t *testing.T) {
	cfg := testConfig(t, 3)
	cfg.LogLevel = "LOUD"
	assert.Error(t, Run(context.Background(), cfg, Flags{}, &bytes.Buffer{}))
}

func TestRun_CloseLogError(t *testing.T) {
	closeErr := errors.New("sync log file: disk full")
	old := setupLog
	setupLog = func(log.Config) (*zap.Logger, func() error, error) {
		return zap.NewNop(), func() error { return closeErr }, nil
	}
	t.Cleanup(func() { setupLog = old })

	cfg := testConfig(t, 3)
	err := Run(context.Background(), cfg, Flags{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, closeErr)

	// 表格数量不足时同样返回关闭日志的错误
	cfg = testConfig(t, 2)
	err = Run(context.Background(), cfg, Flags{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, closeErr)
}

func TestRunCmd_Config(t *testing.T) {
	cfg := testConfig(t, 3)
	path := filepath.Join(t.TempDir(), "films.yaml")
	content := fmt.Sprintf("logFile: %s\nsource:\n  url: %s\noutput:\n  csv: %s\ndatabase:\n  driver: sqlite\n  name: %s\n",
		cfg.LogFile, cfg.Source.URL, cfg.Output.CSV, cfg.Database.Name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	var out bytes.Buffer
	cmd := NewRunCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", path})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "Data processed and saved to")

	_, err := os.Stat(cfg.Output.CSV)
	assert.NoError(t, err)
}

func TestPreview(t *testing.T) {
	tb := table.New("Movie Title", "Genre")
	_ = tb.Append("Casablanca", "Romance")

	var out bytes.Buffer
	Preview(&out, tb)
	assert.Contains(t, out.String(), "Casablanca")
	assert.Contains(t, out.String(), "Romance")
}
