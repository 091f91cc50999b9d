package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// loggerCtxKey is the unexported type for the context key holding a
// *Logger, keeping it collision-proof against other packages' keys.
type loggerCtxKey struct{}

var levelByName = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// Config controls how a Logger renders its output.
type Config struct {
	// Level is the minimum level that reaches Output ("debug", "info",
	// "warn"/"warning", "error"; unrecognized values fall back to info).
	Level string
	// Output is the destination writer; os.Stdout when nil.
	Output io.Writer
	// Pretty selects a human-readable text handler instead of JSON.
	Pretty bool
	// IncludeCaller adds the call site (file:line) to each record.
	IncludeCaller bool
}

// DefaultConfig returns JSON output to stdout at info level.
func DefaultConfig() Config {
	return Config{Level: "info", Output: os.Stdout}
}

// Logger wraps a *slog.Logger with a fixed vocabulary of scheduler
// identifiers — execution, node, edge — so the dispatch loop and
// anything it calls can stamp every record with the same identity
// without re-deriving slog.Attr values at each call site.
type Logger struct {
	base *slog.Logger
}

// New builds a Logger from cfg, choosing a JSON or text handler per
// cfg.Pretty and defaulting Output to os.Stdout.
func New(cfg Config) *Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: cfg.IncludeCaller,
	}

	var handler slog.Handler
	if cfg.Pretty {
		handler = slog.NewTextHandler(output, opts)
	} else {
		handler = slog.NewJSONHandler(output, opts)
	}
	return &Logger{base: slog.New(handler)}
}

func parseLevel(level string) slog.Level {
	if l, ok := levelByName[level]; ok {
		return l
	}
	return slog.LevelInfo
}

// WithContext stashes l on ctx for retrieval by FromContext.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, l)
}

// FromContext returns the Logger stashed by WithContext, or a default
// Logger (JSON, info, stdout) when ctx carries none.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerCtxKey{}).(*Logger); ok {
		return l
	}
	return New(DefaultConfig())
}

// with returns a new Logger with args merged into its attribute set;
// every With* helper below is a thin, named call onto this.
func (l *Logger) with(args ...any) *Logger {
	return &Logger{base: l.base.With(args...)}
}

// WithExecutionID scopes subsequent records to one Execute call.
func (l *Logger) WithExecutionID(executionID string) *Logger {
	return l.with(slog.String("execution_id", executionID))
}

// WithNodeID scopes subsequent records to one node's dispatch.
func (l *Logger) WithNodeID(nodeID string) *Logger {
	return l.with(slog.String("node_id", nodeID))
}

// WithEdgeID scopes subsequent records to one edge's data transfer.
func (l *Logger) WithEdgeID(edgeID string) *Logger {
	return l.with(slog.String("edge_id", edgeID))
}

// WithField attaches one caller-chosen key/value pair.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.with(slog.Any(key, value))
}

// WithFields attaches a batch of caller-chosen key/value pairs. Map
// iteration order is unspecified, so the order in which these keys appear
// in a rendered record can differ from call to call.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return l.with(args...)
}

// WithError attaches err under the "error" key.
func (l *Logger) WithError(err error) *Logger {
	return l.with(slog.Any("error", err))
}

// logf formats and emits at the given level; the four level-specific
// formatted methods below are named wrappers over this one spot.
func (l *Logger) logf(level slog.Level, format string, args ...interface{}) {
	l.base.Log(context.Background(), level, fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(msg string) { l.base.Debug(msg) }
func (l *Logger) Info(msg string)  { l.base.Info(msg) }
func (l *Logger) Warn(msg string)  { l.base.Warn(msg) }
func (l *Logger) Error(msg string) { l.base.Error(msg) }

func (l *Logger) Debugf(format string, args ...interface{}) { l.logf(slog.LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.logf(slog.LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.logf(slog.LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.logf(slog.LevelError, format, args...) }

// Raw exposes the underlying *slog.Logger for callers that need slog's
// full attribute/group API beyond what the With* helpers cover.
func (l *Logger) Raw() *slog.Logger {
	return l.base
}
