// Package zerologadapter implements types.Logger on top of github.com/rs/zerolog.
//
//	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
//	dao, _ := peopledao.NewPersonDAO(dialer, cfg,
//	    peopledao.WithLogger(zerologadapter.New(logger)),
//	)
package zerologadapter

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/arloliu/peopledao/types"
)

// Adapter implements types.Logger using zerolog.
type Adapter struct {
	logger zerolog.Logger
}

var _ types.Logger = (*Adapter)(nil)

// New creates an adapter wrapping an existing zerolog.Logger.
func New(logger zerolog.Logger) *Adapter {
	return &Adapter{logger: logger}
}

// NewConsole creates an adapter writing human-readable output to stderr.
func NewConsole(level zerolog.Level) *Adapter {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}

	return New(zerolog.New(output).Level(level).With().Timestamp().Logger())
}

// Debug logs a debug-level message.
func (a *Adapter) Debug(msg string, keysAndValues ...any) {
	write(a.logger.Debug(), msg, keysAndValues)
}

// Info logs an info-level message.
func (a *Adapter) Info(msg string, keysAndValues ...any) {
	write(a.logger.Info(), msg, keysAndValues)
}

// Warn logs a warning-level message.
func (a *Adapter) Warn(msg string, keysAndValues ...any) {
	write(a.logger.Warn(), msg, keysAndValues)
}

// Error logs an error-level message.
func (a *Adapter) Error(msg string, keysAndValues ...any) {
	write(a.logger.Error(), msg, keysAndValues)
}

// Logger returns the underlying zerolog.Logger.
func (a *Adapter) Logger() zerolog.Logger {
	return a.logger
}

func write(event *zerolog.Event, msg string, keysAndValues []any) {
	// Disabled levels return a nil event.
	if event == nil {
		return
	}

	for i := 0; i < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		if i+1 == len(keysAndValues) {
			event = event.Str("!BADKEY", key)
			break
		}
		event = addField(event, key, keysAndValues[i+1])
	}
	event.Msg(msg)
}

func addField(event *zerolog.Event, key string, value any) *zerolog.Event {
	switch v := value.(type) {
	case string:
		return event.Str(key, v)
	case int:
		return event.Int(key, v)
	case int64:
		return event.Int64(key, v)
	case uint64:
		return event.Uint64(key, v)
	case float64:
		return event.Float64(key, v)
	case bool:
		return event.Bool(key, v)
	case time.Duration:
		return event.Dur(key, v)
	case error:
		return event.AnErr(key, v)
	case fmt.Stringer:
		return event.Stringer(key, v)
	default:
		return event.Interface(key, v)
	}
}
