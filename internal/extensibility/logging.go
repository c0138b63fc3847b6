package extensibility

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/comalice/micromodel/internal/core"
)

// LoggingListener wraps inner and logs before and after each call.
// Failures are logged at warn level; everything else at debug.
func LoggingListener(logger zerolog.Logger, event string, inner core.Listener) core.Listener {
	return func(args ...any) error {
		logger.Debug().Str("event", event).Int("args", len(args)).Msg("dispatching listener")
		start := time.Now()
		err := inner(args...)
		if err != nil {
			logger.Warn().Err(err).Str("event", event).Dur("took", time.Since(start)).Msg("listener failed")
			return err
		}
		logger.Debug().Str("event", event).Dur("took", time.Since(start)).Msg("listener completed")
		return nil
	}
}
