package share

import (
	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/log"
)

// initSentry starts the sentry client. Without a DSN captures are dropped.
func initSentry(dsn string) {
	err := sentry.Init(
		sentry.ClientOptions{
			Dsn:           dsn,
			HTTPTransport: HTTPClient.Transport,
			Release:       "wcl_check",
		},
	)
	if err != nil {
		log.Error().Err(err).Msg("sentry")
	}
}
