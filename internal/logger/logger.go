package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Logger is the process-wide root logger. Request handlers derive child
// loggers from it via WithRequestID.
var Logger zerolog.Logger

func Init() {
	InitWithWriter(os.Stdout)
}

// InitWithWriter configures the root logger from LOG_LEVEL and LOG_FORMAT
// ("json" or "console", console by default) and installs it as the zerolog
// global so package-level zlog calls land in the same stream.
func InitWithWriter(w io.Writer) {
	Logger = zerolog.New(outputFor(w)).
		With().Timestamp().Logger().
		Level(levelFromEnv())
	zlog.Logger = Logger
}

func levelFromEnv() zerolog.Level {
	raw := os.Getenv("LOG_LEVEL")
	if raw == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(raw)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func outputFor(w io.Writer) io.Writer {
	if os.Getenv("LOG_FORMAT") == "json" {
		return w
	}
	return zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
}

// WithRequestID returns a child logger tagged with the request id.
func WithRequestID(requestID string) zerolog.Logger {
	if requestID == "" {
		return Logger
	}
	return Logger.With().Str("request_id", requestID).Logger()
}
