package share

import (
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Configuration struct {
	WCLAPIKey string
	WCLAPIURL string

	ListenAddr string
	SentryDSN  string
	LogLevel   string

	CacheDir        string
	CacheTTL        time.Duration
	CacheMaxEntries int

	SweepWorkers int

	RecaptchaSecret string

	// DebugProxy is an HTTP proxy for upstream calls, e.g. fiddler on 127.0.0.1:50000
	DebugProxy string
}

var Config Configuration

func init() {
	godotenv.Load(".env")

	Config = LoadConfig(os.Getenv)

	SetLogLevel(Config.LogLevel)
	initTransport(Config.DebugProxy)
	initSentry(Config.SentryDSN)
}

// LoadConfig reads the configuration through getenv, falling back to defaults.
func LoadConfig(getenv func(string) string) Configuration {
	str := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}
	num := func(key string, def int) int {
		if v, err := strconv.Atoi(getenv(key)); err == nil && v > 0 {
			return v
		}
		return def
	}
	dur := func(key string, def time.Duration) time.Duration {
		if v, err := time.ParseDuration(getenv(key)); err == nil && v >= 0 {
			return v
		}
		return def
	}

	cacheDir, ok := lookup(getenv, "CACHE_DIR")
	if !ok {
		cacheDir = "./cached"
	}

	return Configuration{
		WCLAPIKey:       getenv("WCL_API_KEY"),
		WCLAPIURL:       str("WCL_API_URL", "https://www.warcraftlogs.com:443/v1"),
		ListenAddr:      str("LISTEN_ADDR", "127.0.0.1:5555"),
		SentryDSN:       getenv("SENTRY_DSN"),
		LogLevel:        str("LOG_LEVEL", "info"),
		CacheDir:        cacheDir,
		CacheTTL:        dur("CACHE_TTL", time.Hour),
		CacheMaxEntries: num("CACHE_MAX_ENTRIES", 256),
		SweepWorkers:    num("SWEEP_WORKERS", runtime.NumCPU()),
		RecaptchaSecret: getenv("GOOGLE_RECAPTCHA_V3_SECRET"),
		DebugProxy:      getenv("HTTP_DEBUG_PROXY"),
	}
}

// lookup tells an empty variable apart from a missing one; "-" also means empty.
func lookup(getenv func(string) string, key string) (string, bool) {
	v := getenv(key)
	switch v {
	case "":
		return "", false
	case "-":
		return "", true
	}
	return v, true
}
