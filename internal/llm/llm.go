// Package llm selects the model that answers conversational prompts.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yourusername/friday/internal/config"
	"github.com/yourusername/friday/internal/llm/gemini"
	"github.com/yourusername/friday/internal/llm/ollama"
)

// Generator turns a prompt into reply text
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Providers
const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// New builds the generator named by cfg.Provider
func New(ctx context.Context, cfg config.LLMConfig, log zerolog.Logger) (Generator, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderGemini, "":
		return gemini.New(ctx, cfg.APIKey, cfg.Model, cfg.Temperature)

	case ProviderOllama:
		model := cfg.Model
		if model == "" || strings.HasPrefix(model, "gemini") {
			model = "llama3"
		}
		c := ollama.NewClient(cfg.Host, model, cfg.Temperature, log)
		c.Debug = cfg.Debug
		if err := c.CheckConnection(ctx); err != nil {
			log.Warn().Err(err).Str("host", cfg.Host).Msg("ollama not reachable yet")
		}
		return c, nil

	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
