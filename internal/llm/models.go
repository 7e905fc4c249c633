package llm

// ModelInfo describes a selectable model.
type ModelInfo struct {
	ID          string // Model identifier (e.g., "claude-sonnet-4-5-20250929")
	Name        string // Human-readable name (e.g., "Claude Sonnet 4.5")
	Description string // Brief description
}

// AllModels lists the models offered by the setup wizard and the --model
// flag help. Updated: 2026-01-30 from https://docs.anthropic.com/en/docs/about-claude/models
func AllModels() []ModelInfo {
	return []ModelInfo{
		{ID: "claude-opus-4-5-20251101", Name: "Claude Opus 4.5", Description: "Premium model, maximum intelligence ($5/$25 per MTok)"},
		{ID: "claude-sonnet-4-5-20250929", Name: "Claude Sonnet 4.5", Description: "Best balance of speed and capability ($3/$15 per MTok)"},
		{ID: "claude-haiku-4-5-20251001", Name: "Claude Haiku 4.5", Description: "Fastest, most cost-effective ($1/$5 per MTok)"},
		{ID: "claude-opus-4-1-20250805", Name: "Claude Opus 4.1", Description: "Previous premium model ($15/$75 per MTok)"},
		{ID: "claude-sonnet-4-20250514", Name: "Claude Sonnet 4", Description: "Previous balanced model ($3/$15 per MTok)"},
	}
}

// ReasoningEffortInfo describes a reasoning effort level.
type ReasoningEffortInfo struct {
	ID          string
	Name        string
	Description string
}

// ReasoningEfforts lists the extended-thinking levels the adapter maps to
// token budgets.
func ReasoningEfforts() []ReasoningEffortInfo {
	return []ReasoningEffortInfo{
		{ID: "", Name: "Off", Description: "No extended thinking, forced structured output"},
		{ID: "low", Name: "Low", Description: "Small thinking budget (2k tokens)"},
		{ID: "medium", Name: "Medium", Description: "Moderate thinking budget (8k tokens)"},
		{ID: "high", Name: "High", Description: "Large thinking budget (16k tokens)"},
	}
}
