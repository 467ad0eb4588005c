package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/saraHmercha/topsearch/internal/api"
	"github.com/saraHmercha/topsearch/internal/config"
	"github.com/saraHmercha/topsearch/internal/history"
	"github.com/saraHmercha/topsearch/internal/i18n"
	"github.com/saraHmercha/topsearch/internal/logger"
	"github.com/saraHmercha/topsearch/internal/search"
)

// env is everything a command needs to talk to the search service.
type env struct {
	cfg     *config.Config
	log     *zap.Logger
	client  *api.Client
	history *history.Store
	svc     *search.Service
}

func (e *env) Close() {
	if e.history != nil {
		e.history.Close()
	}
	if e.log != nil {
		_ = e.log.Sync()
	}
}

// loadConfig reads the config file and applies persistent flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagLang != "" {
		cfg.Language = flagLang
	}
	if flagAPIURL != "" {
		cfg.API.BaseURL = flagAPIURL
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openEnv() (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.NewLogger(cfg.Log.Level, config.LogPath())
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	e := &env{cfg: cfg, log: log}

	e.client, err = api.New(cfg.API.BaseURL, cfg.TimeoutDuration())
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("creating api client: %w", err)
	}

	// A nil *history.Store must not end up inside the Recorder interface.
	var rec search.Recorder
	if cfg.History.Enabled {
		store, err := history.Open(config.HistoryPath())
		if err != nil {
			// History is a convenience; searching still works without it.
			log.Warn("opening search history", zap.Error(err))
		} else {
			e.history = store
			rec = store
			if _, err := store.Prune(cfg.RetentionDuration()); err != nil {
				log.Warn("pruning search history", zap.Error(err))
			}
		}
	}

	e.svc = search.NewService(e.client, i18n.For(cfg.Language), log, rec)
	log.Debug("environment ready",
		zap.String("api", e.client.BaseURL()),
		zap.String("language", cfg.Language),
		zap.Bool("history", e.history != nil),
	)
	return e, nil
}
