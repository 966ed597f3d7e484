package calculation

import "go.uber.org/zap"

// Logger is a minimal logging interface for the calculation engine.
// Implementations should be fast; the default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// ZapLogger adapts a zap logger to Logger.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger wraps l. A nil logger yields a ZapLogger that discards everything.
func NewZapLogger(l *zap.Logger) ZapLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return ZapLogger{sugar: l.Named("calculation").Sugar()}
}

func (z ZapLogger) Debugf(format string, args ...any) { z.sugar.Debugf(format, args...) }
func (z ZapLogger) Infof(format string, args ...any)  { z.sugar.Infof(format, args...) }
func (z ZapLogger) Warnf(format string, args ...any)  { z.sugar.Warnf(format, args...) }
func (z ZapLogger) Errorf(format string, args ...any) { z.sugar.Errorf(format, args...) }
