package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tbruckner/ce-intake/internal/schema"
)

// ErrorKind classifies an analysis failure for the caller. The boundary
// maps kinds to status codes; the core does not retry or log.
type ErrorKind string

const (
	ErrorKindConfig      ErrorKind = "config"
	ErrorKindInput       ErrorKind = "input"
	ErrorKindRateLimited ErrorKind = "rate_limited"
	ErrorKindUpstream    ErrorKind = "upstream"
	ErrorKindEmptyResult ErrorKind = "empty_result"
	ErrorKindValidation  ErrorKind = "validation"
)

// AnalysisError is a classified failure of one analysis run.
type AnalysisError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// ErrNoStructuredOutput is returned by adapters when the model produced a
// response without any structured result in it. Distinct from transport
// failures.
var ErrNoStructuredOutput = errors.New("model returned no structured output")

// Generator is what the analysis service needs from an LLM adapter. The
// schema parameter is the strict JSON Schema the output must satisfy.
type Generator interface {
	Name() string
	Generate(ctx context.Context, systemPrompt, userPrompt string, outputSchema map[string]any) (json.RawMessage, error)
}

// AnalyzeOptions configures one analysis run.
type AnalyzeOptions struct {
	// Adapter performs the model call.
	Adapter Generator

	// Model is recorded into meta.model of the normalized result.
	Model string
}

// RunAnalysis performs one full analysis: validate surveys, build the
// prompt, call the model, validate the raw result against the schema,
// decode, normalize. Not idempotent; ctx cancels the model call.
func RunAnalysis(ctx context.Context, role *RoleSurvey, product *ProductSurvey, opts AnalyzeOptions) (*AnalysisResult, error) {
	if role == nil || product == nil {
		return nil, &AnalysisError{Kind: ErrorKindInput, Message: "role survey and product survey are required"}
	}
	if opts.Adapter == nil {
		return nil, &AnalysisError{Kind: ErrorKindConfig, Message: "no LLM adapter configured"}
	}
	if err := role.Validate(); err != nil {
		return nil, &AnalysisError{Kind: ErrorKindInput, Message: "invalid role survey", Err: err}
	}
	if err := product.Validate(); err != nil {
		return nil, &AnalysisError{Kind: ErrorKindInput, Message: "invalid product survey", Err: err}
	}

	userPrompt := BuildAnalyzePrompt(role, product)
	node := schema.AnalysisResult()

	raw, err := opts.Adapter.Generate(ctx, SystemInstruction, userPrompt, node.JSONSchema())
	if err != nil {
		if errors.Is(err, ErrNoStructuredOutput) {
			return nil, &AnalysisError{Kind: ErrorKindEmptyResult, Message: "analysis returned no structured output", Err: err}
		}
		return nil, &AnalysisError{Kind: ErrorKindUpstream, Message: "analysis call failed", Err: err}
	}
	if len(raw) == 0 {
		return nil, &AnalysisError{Kind: ErrorKindEmptyResult, Message: "analysis returned no structured output"}
	}

	if err := node.ValidateJSON(raw); err != nil {
		return nil, &AnalysisError{Kind: ErrorKindValidation, Message: "analysis result failed schema validation", Err: err}
	}

	var result AnalysisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &AnalysisError{Kind: ErrorKindValidation, Message: "analysis result failed to decode", Err: err}
	}

	return Normalize(&result, opts.Model)
}
