package logging

import (
	"context"
	"os"
	"sync/atomic"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// Logger is a thin structured logger over zap with sugared key/value pairs
// and trace-id enrichment from context.
type Logger struct {
	zap   *zap.Logger
	sugar *zap.SugaredLogger
}

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(NewNop())
}

func NewJSON(level Level) *Logger {
	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stdout),
		level,
	)

	return FromZap(zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)))
}

func NewNop() *Logger {
	return FromZap(zap.NewNop())
}

func FromZap(z *zap.Logger) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{zap: z, sugar: z.Sugar()}
}

func Default() *Logger {
	return defaultLogger.Load()
}

func SetDefault(l *Logger) {
	if l == nil {
		l = NewNop()
	}
	defaultLogger.Store(l)
}

func (l *Logger) Sync() {
	_ = l.zap.Sync()
}

func (l *Logger) With(kv ...any) *Logger {
	sugar := l.sugar.With(kv...)
	return &Logger{zap: sugar.Desugar(), sugar: sugar}
}

func (l *Logger) Debug(msg string, kv ...any) { l.sugar.Debugw(msg, kv...) }
func (l *Logger) Info(msg string, kv ...any)  { l.sugar.Infow(msg, kv...) }
func (l *Logger) Warn(msg string, kv ...any)  { l.sugar.Warnw(msg, kv...) }
func (l *Logger) Error(msg string, kv ...any) { l.sugar.Errorw(msg, kv...) }

func (l *Logger) DebugContext(ctx context.Context, msg string, kv ...any) {
	l.sugar.Debugw(msg, withTrace(ctx, kv)...)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, kv ...any) {
	l.sugar.Infow(msg, withTrace(ctx, kv)...)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, kv ...any) {
	l.sugar.Warnw(msg, withTrace(ctx, kv)...)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, kv ...any) {
	l.sugar.Errorw(msg, withTrace(ctx, kv)...)
}

func withTrace(ctx context.Context, kv []any) []any {
	if ctx == nil {
		return kv
	}
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return kv
	}
	out := make([]any, 0, len(kv)+4)
	out = append(out, kv...)
	out = append(out, "trace_id", spanCtx.TraceID().String(), "span_id", spanCtx.SpanID().String())
	return out
}
