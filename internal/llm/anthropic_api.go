package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/tbruckner/ce-intake/internal/core"
)

// analysisToolName is the forced tool whose input carries the structured
// result.
const analysisToolName = "record_analysis"

// AnthropicAPIAdapter calls the Anthropic Messages API and constrains the
// output by forcing a single tool whose input schema is the result schema.
type AnthropicAPIAdapter struct {
	client         anthropic.Client
	model          string
	maxTokens      int
	thinkingBudget int64
}

// NewAnthropicAPIAdapter creates an Anthropic API adapter.
func NewAnthropicAPIAdapter(config Config) (*AnthropicAPIAdapter, error) {
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	model := config.Model
	if model == "" {
		model = DefaultModel
	}

	maxTokens := config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 16384
	}

	return &AnthropicAPIAdapter{
		client:         client,
		model:          model,
		maxTokens:      maxTokens,
		thinkingBudget: config.ThinkingBudget(),
	}, nil
}

func (a *AnthropicAPIAdapter) Name() string {
	return "anthropic-api"
}

func (a *AnthropicAPIAdapter) IsAvailable() bool {
	return os.Getenv("ANTHROPIC_API_KEY") != ""
}

// Generate performs one model call. The tool-use input block is the result;
// if the model answered in plain text instead (possible with extended
// thinking, which rejects forced tool choice), JSON is extracted from the
// text as a fallback.
func (a *AnthropicAPIAdapter) Generate(ctx context.Context, systemPrompt, userPrompt string, outputSchema map[string]any) (json.RawMessage, error) {
	properties, _ := outputSchema["properties"].(map[string]any)
	required, _ := outputSchema["required"].([]string)

	tool := anthropic.ToolParam{
		Name:        analysisToolName,
		Description: anthropic.String("Übermittelt die strukturierte Compliance-Auswertung."),
		InputSchema: anthropic.ToolInputSchemaParam{
			Properties: properties,
			Required:   required,
		},
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: int64(a.maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
		Tools: []anthropic.ToolUnionParam{
			{OfTool: &tool},
		},
	}

	if a.thinkingBudget > 0 {
		// Forced tool choice is rejected when extended thinking is on;
		// the system instruction still demands the tool call.
		params.Thinking = anthropic.ThinkingConfigParamUnion{
			OfEnabled: &anthropic.ThinkingConfigEnabledParam{BudgetTokens: a.thinkingBudget},
		}
		params.ToolChoice = anthropic.ToolChoiceUnionParam{
			OfAuto: &anthropic.ToolChoiceAutoParam{},
		}
	} else {
		params.ToolChoice = anthropic.ToolChoiceUnionParam{
			OfTool: &anthropic.ToolChoiceToolParam{Name: analysisToolName},
		}
	}

	resp, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.ToolUseBlock:
			if variant.Name != analysisToolName {
				continue
			}
			raw := json.RawMessage(variant.JSON.Input.Raw())
			if len(raw) > 0 && string(raw) != "null" {
				return raw, nil
			}
		case anthropic.TextBlock:
			text += variant.Text
		}
	}

	if jsonStr := ExtractJSON(text); jsonStr != "" {
		return json.RawMessage(jsonStr), nil
	}

	return nil, core.ErrNoStructuredOutput
}
