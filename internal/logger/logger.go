package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup builds the root logger. format "pretty" gives a colored console
// writer for local runs; anything else emits JSON lines for collectors.
// Unknown levels fall back to info rather than failing startup.
func Setup(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	var log zerolog.Logger
	switch format {
	case "pretty":
		cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		log = zerolog.New(cw)
	default:
		log = zerolog.New(os.Stdout)
	}

	return log.With().Timestamp().Caller().Logger()
}
