package llm

import "testing"

func TestThinkingBudget(t *testing.T) {
	tests := []struct {
		name     string
		effort   string
		expected int64
	}{
		{"off", "", 0},
		{"low", "low", 2048},
		{"medium", "medium", 8192},
		{"high", "high", 16384},
		{"unknown stays off", "extreme", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{ReasoningEffort: tt.effort}
			if got := c.ThinkingBudget(); got != tt.expected {
				t.Errorf("ThinkingBudget() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.Model != DefaultModel {
		t.Errorf("Model = %q, want %q", c.Model, DefaultModel)
	}
	if c.MaxTokens <= 0 {
		t.Errorf("MaxTokens = %d, want positive", c.MaxTokens)
	}
}

func TestAllModelsHaveMetadata(t *testing.T) {
	models := AllModels()
	if len(models) == 0 {
		t.Fatal("AllModels() is empty")
	}
	seen := make(map[string]bool, len(models))
	defaultFound := false
	for _, m := range models {
		if m.ID == "" || m.Name == "" || m.Description == "" {
			t.Errorf("model %+v has empty metadata", m)
		}
		if seen[m.ID] {
			t.Errorf("duplicate model id %q", m.ID)
		}
		seen[m.ID] = true
		if m.ID == DefaultModel {
			defaultFound = true
		}
	}
	if !defaultFound {
		t.Errorf("default model %q not offered by AllModels()", DefaultModel)
	}
}

func TestReasoningEffortsMatchBudgets(t *testing.T) {
	for _, e := range ReasoningEfforts() {
		c := Config{ReasoningEffort: e.ID}
		budget := c.ThinkingBudget()
		if e.ID == "" && budget != 0 {
			t.Errorf("effort %q maps to budget %d, want 0", e.ID, budget)
		}
		if e.ID != "" && budget == 0 {
			t.Errorf("effort %q maps to no budget", e.ID)
		}
	}
}
