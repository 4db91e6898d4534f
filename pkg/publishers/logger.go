package publishers

// Logger is the subset of the application logger that sinks write to:
// per-delivery debug records and delivery failures.
type Logger interface {
	DebugObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

type noopLogger struct{}

func (noopLogger) DebugObj(string, string, interface{}) {}
func (noopLogger) ErrorObj(string, string, interface{}) {}

func ensureLogger(log Logger) Logger {
	if log != nil {
		return log
	}
	return noopLogger{}
}
