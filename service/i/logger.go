package i

// Logger is the leveled logger consumed across services. Messages are
// expected to be fully formatted by the caller.
type Logger interface {
	// Info records a normal operational message.
	Info(string)

	// Warning records a recoverable anomaly.
	Warning(string)

	// Error records a failure.
	Error(string)
}
