package terminal

import (
	"fmt"
	"io"
	"time"

	"github.com/de-tools/storage-audit/pkg/services/config"
	"github.com/rs/zerolog"
)

// NewLogger builds the root logger. Logs go to w (stderr in production) so the
// report tables on stdout stay clean.
func NewLogger(cfg config.LogConfig, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("%w: log level: %w", config.ErrInvalidConfig, err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.Format == config.LogFormatConsole {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
