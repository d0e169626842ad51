package catalogservice

// Logger is the narrow logging surface the client needs.
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
