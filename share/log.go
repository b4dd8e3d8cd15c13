package share

import (
	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetLogLevel applies a level name, falling back to info.
func SetLogLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	return level
}

// Report sends err to sentry and logs it with its stack. Closed contexts are ignored.
func Report(err error) {
	if err == nil || IsContextClosedError(err) {
		return
	}
	sentry.CaptureException(err)
	log.Error().Msgf("%+v", errors.WithStack(err))
}
