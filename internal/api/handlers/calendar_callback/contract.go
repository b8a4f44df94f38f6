package calendar_callback

import "context"

type StateVerifier interface {
	VerifyState(state string) error
}

type CalendarLinker interface {
	Exchange(ctx context.Context, code string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
