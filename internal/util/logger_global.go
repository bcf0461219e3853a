package util

import (
	"sync"
)

var (
	globalLogger LoggerInterface
	loggerMu     sync.RWMutex
)

// InitLogger installs the global logger. Later calls replace it and close
// the previous one.
func InitLogger(opts LoggerOptions) error {
	logger, err := NewLogger(opts)
	if err != nil {
		return err
	}

	loggerMu.Lock()
	previous := globalLogger
	globalLogger = logger
	loggerMu.Unlock()

	if previous != nil {
		_ = previous.Close()
	}
	return nil
}

// SetLogger installs an existing logger, mainly for tests
func SetLogger(logger LoggerInterface) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	globalLogger = logger
}

// CloseLogger flushes and closes the global logger
func CloseLogger() error {
	loggerMu.Lock()
	logger := globalLogger
	globalLogger = nil
	loggerMu.Unlock()

	if logger == nil {
		return nil
	}
	return logger.Close()
}

func current() LoggerInterface {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return globalLogger
}

// Named returns a component logger backed by the global logger. It is safe
// to call before InitLogger; entries are dropped until a logger exists.
func Named(component string) LoggerInterface {
	return &componentLogger{component: component}
}

// LogInfo convenience functions for logging
func LogInfo(msg string, fields ...Field) {
	if l := current(); l != nil {
		l.Info(msg, fields...)
	}
}

func LogInfof(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.Infof(format, args...)
	}
}

func LogDebug(msg string, fields ...Field) {
	if l := current(); l != nil {
		l.Debug(msg, fields...)
	}
}

func LogDebugf(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.Debugf(format, args...)
	}
}

func LogWarn(msg string, fields ...Field) {
	if l := current(); l != nil {
		l.Warn(msg, fields...)
	}
}

func LogWarnf(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.Warnf(format, args...)
	}
}

func LogError(msg string, fields ...Field) {
	if l := current(); l != nil {
		l.Error(msg, fields...)
	}
}

func LogErrorf(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.Errorf(format, args...)
	}
}

// componentLogger resolves the global logger on every call so packages can
// hold one from init time on.
type componentLogger struct {
	component string
	fields    []Field
}

func (c *componentLogger) target() LoggerInterface {
	l := current()
	if l == nil {
		return nil
	}
	return l.Named(c.component).With(c.fields...)
}

func (c *componentLogger) Debug(msg string, fields ...Field) {
	if l := c.target(); l != nil {
		l.Debug(msg, fields...)
	}
}

func (c *componentLogger) Debugf(format string, args ...interface{}) {
	if l := c.target(); l != nil {
		l.Debugf(format, args...)
	}
}

func (c *componentLogger) Info(msg string, fields ...Field) {
	if l := c.target(); l != nil {
		l.Info(msg, fields...)
	}
}

func (c *componentLogger) Infof(format string, args ...interface{}) {
	if l := c.target(); l != nil {
		l.Infof(format, args...)
	}
}

func (c *componentLogger) Warn(msg string, fields ...Field) {
	if l := c.target(); l != nil {
		l.Warn(msg, fields...)
	}
}

func (c *componentLogger) Warnf(format string, args ...interface{}) {
	if l := c.target(); l != nil {
		l.Warnf(format, args...)
	}
}

func (c *componentLogger) Error(msg string, fields ...Field) {
	if l := c.target(); l != nil {
		l.Error(msg, fields...)
	}
}

func (c *componentLogger) Errorf(format string, args ...interface{}) {
	if l := c.target(); l != nil {
		l.Errorf(format, args...)
	}
}

func (c *componentLogger) With(fields ...Field) LoggerInterface {
	merged := make([]Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &componentLogger{component: c.component, fields: merged}
}

func (c *componentLogger) Named(component string) LoggerInterface {
	return &componentLogger{component: component, fields: c.fields}
}

func (c *componentLogger) SetLevel(level LogLevel) {
	if l := current(); l != nil {
		l.SetLevel(level)
	}
}

func (c *componentLogger) AddOutput(output Output) {
	if l := current(); l != nil {
		l.AddOutput(output)
	}
}

func (c *componentLogger) Close() error {
	return nil
}
