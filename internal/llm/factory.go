package llm

import (
	"fmt"
	"strings"

	"github.com/skonate/griot/internal/model"
)

// NewProvider creates the configured generation provider.
func NewProvider(cfg model.LLMConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIProvider(cfg)

	case "huggingface", "hf":
		return NewHuggingFaceProvider(cfg)

	case "anthropic", "claude":
		return NewAnthropicProvider(cfg)

	case "ollama":
		return NewOllamaProvider(cfg)

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, huggingface, anthropic, ollama)", cfg.Provider)
	}
}
