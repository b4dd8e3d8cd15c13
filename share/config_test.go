package share

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	env := map[string]string{}
	getenv := func(k string) string { return env[k] }

	c := LoadConfig(getenv)
	assert.Equal(t, "https://www.warcraftlogs.com:443/v1", c.WCLAPIURL)
	assert.Equal(t, "127.0.0.1:5555", c.ListenAddr)
	assert.Equal(t, "./cached", c.CacheDir)
	assert.Equal(t, time.Hour, c.CacheTTL)
	assert.Equal(t, 256, c.CacheMaxEntries)
	assert.Positive(t, c.SweepWorkers)

	env["CACHE_DIR"] = "-"
	env["CACHE_TTL"] = "90s"
	env["CACHE_MAX_ENTRIES"] = "nope"
	env["SWEEP_WORKERS"] = "3"
	env["WCL_API_KEY"] = "key"

	c = LoadConfig(getenv)
	assert.Equal(t, "", c.CacheDir)
	assert.Equal(t, 90*time.Second, c.CacheTTL)
	assert.Equal(t, 256, c.CacheMaxEntries)
	assert.Equal(t, 3, c.SweepWorkers)
	assert.Equal(t, "key", c.WCLAPIKey)
}

func TestSetLogLevel(t *testing.T) {
	defer SetLogLevel(Config.LogLevel)

	assert.Equal(t, zerolog.DebugLevel, SetLogLevel("debug"))
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	assert.Equal(t, zerolog.InfoLevel, SetLogLevel("loud"))
	assert.Equal(t, zerolog.InfoLevel, SetLogLevel(""))
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestInitTransport(t *testing.T) {
	defer initTransport(Config.DebugProxy)

	initTransport("http://127.0.0.1:50000")
	tr, ok := HTTPClient.Transport.(*http.Transport)
	if assert.True(t, ok) && assert.NotNil(t, tr.Proxy) {
		u, err := tr.Proxy(&http.Request{URL: &url.URL{Scheme: "https", Host: "example.com"}})
		assert.NoError(t, err)
		assert.Equal(t, "127.0.0.1:50000", u.Host)
	}

	initTransport("")
	tr = HTTPClient.Transport.(*http.Transport)
	assert.Nil(t, tr.Proxy)
}

func TestIsContextClosedError(t *testing.T) {
	assert.True(t, IsContextClosedError(context.Canceled))
	assert.True(t, IsContextClosedError(errors.WithStack(context.DeadlineExceeded)))
	assert.True(t, IsContextClosedError(&url.Error{Op: "Get", URL: "x", Err: context.Canceled}))
	assert.False(t, IsContextClosedError(errors.New("boom")))
}

func TestSortedStrings(t *testing.T) {
	s := NewSortedStrings("Vem", "Lord Kri", "Vem", "Princess Yauj")
	assert.Equal(t, SortedStrings{"Lord Kri", "Princess Yauj", "Vem"}, s)
	assert.True(t, s.Contains("Vem"))
	assert.False(t, s.Contains("Ouro"))
	assert.False(t, SortedStrings(nil).Contains(""))
}
