package observability

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs a console logger writing to out as the global logger.
// Program output goes to stdout, so callers pass stderr here.
func InitLogger(app string, out io.Writer, debug bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Str("app", app).Logger()
	log.Logger = logger
	return logger
}
