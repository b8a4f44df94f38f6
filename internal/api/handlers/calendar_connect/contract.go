package calendar_connect

type StateIssuer interface {
	IssueState() (string, error)
}

type CalendarLinker interface {
	AuthCodeURL(state string) string
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
