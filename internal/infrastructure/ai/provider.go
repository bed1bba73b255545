package ai

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Perfumeria-api/internal/application/ports"
	"github.com/jhoicas/Perfumeria-api/pkg/config"
)

// ErrNotConfigured alias local de ports.ErrAIUnavailable.
var ErrNotConfigured = ports.ErrAIUnavailable

// NewFormulaSuggester elige el adaptador según AI_PROVIDER (anthropic por defecto).
func NewFormulaSuggester(cfg config.AIConfig) (ports.FormulaSuggester, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "anthropic":
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil
	case "gemini":
		return NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel), nil
	default:
		return nil, fmt.Errorf("AI_PROVIDER desconocido: %q", cfg.Provider)
	}
}
