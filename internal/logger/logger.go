package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

// Options configures the root logger.
type Options struct {
	ServiceName string
	Level       string
	Format      string
	Output      io.Writer
}

// Logger wraps zerolog with request-scoped field helpers.
type Logger struct {
	base zerolog.Logger
}

// New builds a Logger. Format "console" switches to the human readable writer.
func New(opts Options) *Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if strings.EqualFold(opts.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	base := zerolog.New(out).Level(level).With().Timestamp().Logger()
	if opts.ServiceName != "" {
		base = base.With().Str("service", opts.ServiceName).Logger()
	}
	return &Logger{base: base}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{base: zerolog.Nop()}
}

// WithContext attaches fields to the logger carried by ctx.
func (l *Logger) WithContext(ctx context.Context, fields map[string]any) context.Context {
	current := l.from(ctx)
	if len(fields) == 0 {
		return context.WithValue(ctx, ctxKey{}, current)
	}
	enriched := current.With().Fields(fields).Logger()
	return context.WithValue(ctx, ctxKey{}, enriched)
}

// WithField is WithContext for a single key.
func (l *Logger) WithField(ctx context.Context, key string, value any) context.Context {
	return l.WithContext(ctx, map[string]any{key: value})
}

func (l *Logger) Debug(ctx context.Context, msg string) {
	lg := l.from(ctx)
	ev := lg.Debug()
	ev.Msg(msg)
}

func (l *Logger) Info(ctx context.Context, msg string) {
	lg := l.from(ctx)
	ev := lg.Info()
	ev.Msg(msg)
}

// InfoFields logs msg with extra structured fields.
func (l *Logger) InfoFields(ctx context.Context, msg string, fields map[string]any) {
	lg := l.from(ctx)
	ev := lg.Info().Fields(fields)
	ev.Msg(msg)
}

func (l *Logger) Warn(ctx context.Context, msg string, err error) {
	lg := l.from(ctx)
	ev := lg.Warn()
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Msg(msg)
}

func (l *Logger) Error(ctx context.Context, msg string, err error) {
	lg := l.from(ctx)
	ev := lg.Error()
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Msg(msg)
}

// Zerolog exposes the underlying logger for libraries that want one.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.base
}

func (l *Logger) from(ctx context.Context) zerolog.Logger {
	if ctx != nil {
		if scoped, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
			return scoped
		}
	}
	return l.base
}
