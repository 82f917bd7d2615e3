package main

import (
	"fmt"

	"github.com/yourusername/friday/internal/config"
	"github.com/yourusername/friday/internal/logging"
	"github.com/yourusername/friday/internal/proxy"
	"github.com/yourusername/friday/internal/ui"
	"github.com/yourusername/friday/internal/voice"
)

// app holds what every subcommand needs
type app struct {
	cfg *config.Config
	log *logging.Logger
}

func setup(console bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	dir, err := config.GetDataDir()
	if err != nil {
		return nil, err
	}

	log, err := logging.New(logging.Config{
		File:    cfg.Log.File,
		Dir:     dir,
		Level:   cfg.Log.Level,
		Console: console,
	})
	if err != nil {
		return nil, fmt.Errorf("opening log: %w", err)
	}

	a := &app{cfg: cfg, log: log}
	a.watch()
	return a, nil
}

// watch logs edits to config.yaml; running sessions keep the settings they started with
func (a *app) watch() {
	l := a.log.Component("config")
	a.cfg.Watch(func(cfg *config.Config, err error) {
		if err != nil {
			l.Warn().Err(err).Msg("config changed but could not be read")
			return
		}
		l.Info().Str("model", cfg.LLM.Model).Str("proxy", cfg.Proxy.URL).Msg("config changed, restart to apply")
	})
}

// deps wires the proxy client and the optional voice session for a UI
func (a *app) deps() ui.Deps {
	d := ui.Deps{
		Config:   a.cfg,
		Prompter: proxy.NewClient(a.cfg.Proxy.URL, a.cfg.Proxy.Timeout),
		Logger:   a.log.Component("ui"),
	}

	if a.cfg.Voice.AssistantID == "" {
		l := a.log.Component("voice")
		l.Info().Msg("no voice assistant configured, voice disabled")
		return d
	}

	agent := voice.NewWSAgent(a.cfg.Voice.URL, a.log.Component("voice.ws"))
	d.Voice = voice.NewSession(agent, a.cfg.Voice.AssistantID, a.log.Component("voice"))
	d.Speaker = agent
	return d
}

func (a *app) close() {
	_ = a.log.Close()
}
