package calendar_unlink

import "context"

type CalendarLinker interface {
	Unlink(ctx context.Context) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
