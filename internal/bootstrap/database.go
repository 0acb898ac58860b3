package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/GregMSThompson/finance-tracker/internal/store"
	"github.com/GregMSThompson/finance-tracker/pkg/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// Dialector picks the gorm driver for a DATABASE_URL. sqlite URLs follow
// the three-slash convention: sqlite:///rel.db is relative, sqlite:////abs.db
// is absolute, and sqlite://name.db is accepted as relative.
func Dialector(databaseURL string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(databaseURL, "sqlite://"):
		path := strings.TrimPrefix(databaseURL, "sqlite://")
		path = strings.TrimPrefix(path, "/")
		if path == "" {
			return nil, errors.New("sqlite DATABASE_URL has no path")
		}
		return sqlite.Open(path), nil
	case strings.HasPrefix(databaseURL, "postgresql://"), strings.HasPrefix(databaseURL, "postgres://"):
		return postgres.Open(databaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported DATABASE_URL %q", redact(databaseURL))
	}
}

func InitDatabase(databaseURL string, log *slog.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(databaseURL)
	if err != nil {
		return nil, err
	}
	return store.Open(dialector, NewGormLogger(log))
}

// redact keeps the scheme only; URLs may carry credentials.
func redact(databaseURL string) string {
	if i := strings.Index(databaseURL, "://"); i >= 0 {
		return databaseURL[:i] + "://..."
	}
	return "..."
}

// gormLogger routes gorm's logging through slog, preferring the request
// logger carried on the context.
type gormLogger struct {
	log   *slog.Logger
	level gormlogger.LogLevel
	slow  time.Duration
}

func NewGormLogger(log *slog.Logger) gormlogger.Interface {
	return &gormLogger{log: log, level: gormlogger.Warn, slow: slowQueryThreshold}
}

func (l *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *gormLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		l.from(ctx).Info(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		l.from(ctx).Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		l.from(ctx).Error(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.from(ctx).Error("query failed", "error", err, "sql", sql, "rows", rows, "duration_ms", elapsed.Milliseconds())
	case elapsed > l.slow && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.from(ctx).Warn("slow query", "sql", sql, "rows", rows, "duration_ms", elapsed.Milliseconds())
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.from(ctx).Debug("query", "sql", sql, "rows", rows, "duration_ms", elapsed.Milliseconds())
	}
}

func (l *gormLogger) from(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if log := logger.FromContext(ctx); log != slog.Default() {
			return log
		}
	}
	return l.log
}
