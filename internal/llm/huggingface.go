package llm

import (
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"

	"github.com/skonate/griot/internal/model"
)

// huggingFaceBaseURL is the HuggingFace router, which speaks the OpenAI
// chat completions wire format.
const huggingFaceBaseURL = "https://router.huggingface.co/v1"

// NewHuggingFaceProvider creates a provider backed by the HuggingFace
// router. The token comes from the config, or from HF_TOKEN or
// HUGGINGFACE_TOKEN in the environment.
func NewHuggingFaceProvider(cfg model.LLMConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("HF_TOKEN")
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("HUGGINGFACE_TOKEN")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm: HuggingFace token is required (set HF_TOKEN or HUGGINGFACE_TOKEN)")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = huggingFaceBaseURL
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		name:   "huggingface",
		cfg:    cfg,
	}, nil
}
