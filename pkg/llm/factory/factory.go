package factory

import (
	"fmt"

	"clinivoice-be/internal/config"
	"clinivoice-be/pkg/llm"
	"clinivoice-be/pkg/llm/groq"
	"clinivoice-be/pkg/llm/ollama"
)

func NewLLMProvider(cfg config.AIConfig) (llm.LLMProvider, error) {
	switch cfg.LLMProvider {
	case "groq":
		if cfg.GroqAPIKey == "" {
			return nil, fmt.Errorf("groq provider requires GROQ_API_KEY")
		}
		return groq.NewGroqProvider(cfg.GroqBaseURL, cfg.GroqAPIKey, cfg.LLMModel), nil
	case "ollama":
		baseURL := cfg.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.LLMModel), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}
}
