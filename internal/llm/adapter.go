package llm

import (
	"context"
	"encoding/json"
)

// Adapter is the interface all LLM adapters must implement. It extends
// core.Generator with an availability probe for CLI feedback.
type Adapter interface {
	// Name returns the adapter identifier for logging.
	Name() string

	// IsAvailable checks if this adapter can be used (API key set, etc.)
	IsAvailable() bool

	// Generate sends prompts to the LLM and returns the raw structured
	// result satisfying outputSchema.
	Generate(ctx context.Context, systemPrompt, userPrompt string, outputSchema map[string]any) (json.RawMessage, error)
}

// Config holds configuration for LLM adapters.
type Config struct {
	// Model specifies which model to use (optional, adapter chooses default).
	Model string

	// APIKey for direct API access (falls back to ANTHROPIC_API_KEY).
	APIKey string

	// MaxTokens limits response length.
	MaxTokens int

	// ReasoningEffort optionally enables extended thinking:
	// "low", "medium", or "high". Empty disables it.
	ReasoningEffort string
}

// DefaultModel is used when no model is configured.
const DefaultModel = "claude-sonnet-4-5-20250929"

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Model:     DefaultModel,
		MaxTokens: 16384,
	}
}

// ThinkingBudget maps the reasoning effort hint to a thinking token budget.
// Zero means thinking stays off.
func (c Config) ThinkingBudget() int64 {
	switch c.ReasoningEffort {
	case "low":
		return 2048
	case "medium":
		return 8192
	case "high":
		return 16384
	default:
		return 0
	}
}
