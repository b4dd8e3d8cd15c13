package main

import (
	"path/filepath"

	"wcl_check/analysispool"
	"wcl_check/cache"
	"wcl_check/share"
	"wcl_check/wcl"

	"github.com/dpapathanasiou/go-recaptcha"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := share.Config

	if cfg.WCLAPIKey == "" {
		log.Warn().Msg("WCL_API_KEY is not set")
	}
	if cfg.RecaptchaSecret != "" {
		recaptcha.Init(cfg.RecaptchaSecret)
	}

	var resultsDir string
	if cfg.CacheDir != "" {
		resultsDir = filepath.Join(cfg.CacheDir, "results")
	}

	reports := cache.NewStorage(cfg.CacheDir, cfg.CacheTTL, cfg.CacheMaxEntries)
	results := cache.NewStorage(resultsDir, cfg.CacheTTL, cfg.CacheMaxEntries)

	client := wcl.New(cfg.WCLAPIKey, cfg.WCLAPIURL, reports)
	pool := analysispool.New(client, results, cfg.SweepWorkers)

	gin.SetMode(gin.ReleaseMode)
	g := gin.New()
	newServer(client, pool, cfg.SweepWorkers).route(g)

	log.Info().Str("addr", cfg.ListenAddr).Msg("listen")
	err := g.Run(cfg.ListenAddr)
	if err != nil {
		log.Fatal().Err(err).Msg("listen")
	}
}
