package postgres

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"finance/config"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newCapturingLogger(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}

	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: level})), buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		entry := map[string]any{}
		require.NoError(t, json.Unmarshal(line, &entry))
		entries = append(entries, entry)
	}

	return entries
}

func sqlFn(sql string) func() (string, int64) {
	return func() (string, int64) { return sql, 1 }
}

func TestNewGormSlogLogger_Defaults(t *testing.T) {
	l := newGormSlogLogger(slog.Default(), &config.Config{})

	assert.Equal(t, logger.Warn, l.level)
	assert.Equal(t, defaultGormSlowThreshold, l.slowThreshold)
	assert.False(t, l.showParams)
}

func TestNewGormSlogLogger_DebugAndThreshold(t *testing.T) {
	cfg := &config.Config{Postgres: &config.PostgresConfig{SlowQueryThreshold: time.Second}}
	cfg.Env.Debug = true

	l := newGormSlogLogger(slog.Default(), cfg)

	assert.Equal(t, logger.Info, l.level)
	assert.Equal(t, time.Second, l.slowThreshold)
	assert.True(t, l.showParams)
}

func TestGormSlogLogger_ParamsFilter(t *testing.T) {
	l := newGormSlogLogger(slog.Default(), &config.Config{})

	sql, params := l.ParamsFilter(context.Background(), "SELECT 1 WHERE email = $1", "ada@example.com")
	assert.Equal(t, "SELECT 1 WHERE email = $1", sql)
	assert.Nil(t, params)

	l.showParams = true
	_, params = l.ParamsFilter(context.Background(), "SELECT 1 WHERE email = $1", "ada@example.com")
	assert.Equal(t, []any{"ada@example.com"}, params)
}

func TestGormSlogLogger_Trace(t *testing.T) {
	t.Run("error is logged", func(t *testing.T) {
		base, buf := newCapturingLogger(slog.LevelDebug)
		l := newGormSlogLogger(base, nil)

		l.Trace(context.Background(), time.Now(), sqlFn("INSERT"), errors.New("boom"))

		entries := decodeLines(t, buf)
		require.Len(t, entries, 1)
		assert.Equal(t, "query failed", entries[0]["msg"])
		assert.Equal(t, "boom", entries[0]["error"])
		assert.Equal(t, "INSERT", entries[0]["sql"])
	})

	t.Run("record not found is ignored", func(t *testing.T) {
		base, buf := newCapturingLogger(slog.LevelDebug)
		l := newGormSlogLogger(base, nil)

		l.Trace(context.Background(), time.Now(), sqlFn("SELECT"), gorm.ErrRecordNotFound)

		assert.Empty(t, buf.String())
	})

	t.Run("slow query warns", func(t *testing.T) {
		base, buf := newCapturingLogger(slog.LevelDebug)
		l := newGormSlogLogger(base, nil)
		l.slowThreshold = time.Millisecond

		l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn("SELECT"), nil)

		entries := decodeLines(t, buf)
		require.Len(t, entries, 1)
		assert.Equal(t, "slow query", entries[0]["msg"])
		assert.Equal(t, "WARN", entries[0]["level"])
	})

	t.Run("fast query silent at warn level", func(t *testing.T) {
		base, buf := newCapturingLogger(slog.LevelDebug)
		l := newGormSlogLogger(base, nil)

		l.Trace(context.Background(), time.Now(), sqlFn("SELECT"), nil)

		assert.Empty(t, buf.String())
	})

	t.Run("silent mode logs nothing", func(t *testing.T) {
		base, buf := newCapturingLogger(slog.LevelDebug)
		l := newGormSlogLogger(base, nil).LogMode(logger.Silent)

		l.Trace(context.Background(), time.Now(), sqlFn("SELECT"), errors.New("boom"))

		assert.Empty(t, buf.String())
	})
}
