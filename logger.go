package smpp

import "github.com/sirupsen/logrus"

// Logger is the logging seam a Session accepts (see WithLogger),
// grounded on ajankovic/smpp/session.go's Logger interface (InfoF/ErrorF)
// generalized to the four standard severity levels logrus exposes.
// Connection takes no Logger. A Session takes a Logger rather than reach
// for a package-global one so multiple sessions in one process can be
// configured independently.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// logrusLogger adapts a *logrus.Logger (or any *logrus.Entry) to Logger.
type logrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger wraps log, defaulting to logrus.StandardLogger() if
// log is nil.
func NewLogrusLogger(log *logrus.Logger) Logger {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &logrusLogger{entry: logrus.NewEntry(log)}
}

func (l *logrusLogger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *logrusLogger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *logrusLogger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *logrusLogger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

// noopLogger discards everything; it is the default when no Logger is
// supplied.
type noopLogger struct{}

func (noopLogger) Debugf(string, ...interface{}) {}
func (noopLogger) Infof(string, ...interface{})  {}
func (noopLogger) Warnf(string, ...interface{})  {}
func (noopLogger) Errorf(string, ...interface{}) {}

func defaultLogger(l Logger) Logger {
	if l == nil {
		return noopLogger{}
	}
	return l
}
