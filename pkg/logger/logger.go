// Package logger is the structured logger hosts, runners and the CLI
// take as a dependency. Contract console output never goes through it;
// that belongs to the invocation result.
package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// Logger is backed by a zap.SugaredLogger. Components take one and name
// it after themselves, e.g. lggr.Named("wasm").
type Logger interface {
	Name() string
	Named(name string) Logger
	With(keysAndValues ...any) Logger

	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)

	Sync() error
}

// New returns a human readable console logger on stderr, without stack
// traces, at lvl.
func New(lvl zapcore.Level) (Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return wrap(zl), nil
}

// ParseLevel accepts zap level names ("debug", "info", ...).
func ParseLevel(s string) (zapcore.Level, error) {
	return zapcore.ParseLevel(s)
}

// Test logs everything through tb so output shows up only for failing
// or verbose tests.
func Test(tb testing.TB) Logger {
	tb.Helper()
	return wrap(zaptest.NewLogger(tb, zaptest.Level(zapcore.DebugLevel)))
}

// TestObserved is Test plus a record of entries at lvl and above, for
// asserting on what was logged.
func TestObserved(tb testing.TB, lvl zapcore.Level) (Logger, *observer.ObservedLogs) {
	tb.Helper()
	core, logs := observer.New(lvl)
	zl := zaptest.NewLogger(tb, zaptest.WrapOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, core)
	})))
	return wrap(zl), logs
}

func Nop() Logger {
	return wrap(zap.NewNop())
}

type logger struct {
	*zap.SugaredLogger
}

func wrap(zl *zap.Logger) *logger {
	return &logger{zl.Sugar()}
}

func (l *logger) Name() string {
	return l.Desugar().Name()
}

func (l *logger) Named(name string) Logger {
	return &logger{l.SugaredLogger.Named(name)}
}

func (l *logger) With(keysAndValues ...any) Logger {
	return &logger{l.SugaredLogger.With(keysAndValues...)}
}
