package types

// Logger is the structured logger used throughout peopledao.
//
// keysAndValues are alternating key/value pairs, the convention used by
// zap.SugaredLogger and log/slog. contrib/logging/zerologadapter provides an
// adapter for zerolog.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}
