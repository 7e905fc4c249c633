package core

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// fakeGenerator returns canned output and records what it was asked.
type fakeGenerator struct {
	raw          json.RawMessage
	err          error
	systemPrompt string
	userPrompt   string
	outputSchema map[string]any
}

func (f *fakeGenerator) Name() string { return "fake" }

func (f *fakeGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string, outputSchema map[string]any) (json.RawMessage, error) {
	f.systemPrompt = systemPrompt
	f.userPrompt = userPrompt
	f.outputSchema = outputSchema
	return f.raw, f.err
}

const validRawResult = `{
  "meta": {
    "createdAt": "2026-08-01T10:00:00Z",
    "model": "self-reported",
    "jurisdictionFocus": "EU",
    "disclaimer": "Keine Rechtsberatung."
  },
  "roleDetermination": {
    "byMarket": [
      {
        "market": "EU",
        "roles": [{"role": "Hersteller", "confidence": "high", "reasons": ["A2_firstPlacing = our_company"]}],
        "missingInfo": [],
        "contradictions": []
      },
      {
        "market": "EU",
        "roles": [{"role": "Softwarehersteller", "confidence": "low", "reasons": []}],
        "missingInfo": ["Pflegeumfang der Software"],
        "contradictions": []
      }
    ]
  },
  "productSummary": {
    "productName": "Batteriemodul",
    "keyClassifications": ["Industriebatterie"],
    "keyRiskDrivers": ["Hochvolt"],
    "assumptions": []
  },
  "regulations": {
    "applicable": [
      {"id": "eu-2023-1542", "title": "Batterien", "type": "Verordnung", "jurisdiction": "EU", "whyApplicable": ["Batterie"], "notes": [], "confidence": "high", "sources": [], "harmonisedStandards": []},
      {"id": "eu-2014-35", "title": "LVD", "type": "Richtlinie", "jurisdiction": "EU", "whyApplicable": ["400V"], "notes": [], "confidence": "high", "sources": [], "harmonisedStandards": []},
      {"id": "eu-2014-30", "title": "EMV", "type": "Richtlinie", "jurisdiction": "EU", "whyApplicable": ["Elektronik"], "notes": [], "confidence": "medium", "sources": [], "harmonisedStandards": []}
    ],
    "notApplicable": [
      {"id": "eu-2014-53", "title": "RED", "jurisdiction": "EU", "whyNotApplicable": ["kein Funk"]},
      {"id": "eu-2017-745", "title": "MDR", "jurisdiction": "EU", "whyNotApplicable": ["keine medizinische Zweckbestimmung"]},
      {"id": "eu-2014-34", "title": "ATEX", "jurisdiction": "EU", "whyNotApplicable": ["keine Ex-Umgebung"]}
    ],
    "needsClarification": []
  },
  "compliancePlans": [
    {
      "regulationId": "eu-2023-1542",
      "regulationTitle": "Verordnung (EU) 2023/1542 (Batterien)",
      "jurisdiction": "EU",
      "applicable": true,
      "scopeSummary": ["Einstufung: Industriebatterie"],
      "checklist": [
        {
          "sectionCode": "SEC-1",
          "sectionTitle": "Sicherheit",
          "items": [
            {"id": "SEC-1-1", "requirement": "Risikoanalyse", "evidenceExamples": [], "ownerRoleSuggested": "Hersteller", "statusDefault": "todo", "tailoring": {"applicable": true, "tailoringReason": null}}
          ]
        }
      ],
      "outTailoredSections": []
    }
  ],
  "reportHtml": "<h1>Bericht</h1>"
}`

func TestRunAnalysisSuccess(t *testing.T) {
	gen := &fakeGenerator{raw: json.RawMessage(validRawResult)}

	result, err := RunAnalysis(context.Background(), ExampleRoleSurvey(), ExampleProductSurvey(), AnalyzeOptions{
		Adapter: gen,
		Model:   "requested-model",
	})
	if err != nil {
		t.Fatalf("RunAnalysis() error: %v", err)
	}

	if gen.systemPrompt != SystemInstruction {
		t.Error("system prompt not passed through")
	}
	if !strings.Contains(gen.userPrompt, `"A1_productName"`) {
		t.Error("user prompt missing survey JSON")
	}
	if gen.outputSchema["type"] != "object" {
		t.Errorf("output schema root = %v, want object", gen.outputSchema["type"])
	}

	if result.Meta.Model != "requested-model" {
		t.Errorf("Meta.Model = %q, want the requested model, not the self-report", result.Meta.Model)
	}
	if len(result.RoleDetermination.ByMarket) != 1 {
		t.Errorf("got %d markets, want duplicate EU entries merged into 1", len(result.RoleDetermination.ByMarket))
	}
	if len(result.CompliancePlans) != 1 {
		t.Errorf("got %d plans, want 1", len(result.CompliancePlans))
	}
}

func TestRunAnalysisErrorKinds(t *testing.T) {
	tests := []struct {
		name     string
		role     *RoleSurvey
		product  *ProductSurvey
		opts     AnalyzeOptions
		wantKind ErrorKind
	}{
		{
			name:     "nil surveys",
			role:     nil,
			product:  nil,
			opts:     AnalyzeOptions{Adapter: &fakeGenerator{}},
			wantKind: ErrorKindInput,
		},
		{
			name:     "missing adapter",
			role:     ExampleRoleSurvey(),
			product:  ExampleProductSurvey(),
			opts:     AnalyzeOptions{},
			wantKind: ErrorKindConfig,
		},
		{
			name: "invalid role survey",
			role: func() *RoleSurvey {
				s := ExampleRoleSurvey()
				s.FirstPlacing = "invalid"
				return s
			}(),
			product:  ExampleProductSurvey(),
			opts:     AnalyzeOptions{Adapter: &fakeGenerator{}},
			wantKind: ErrorKindInput,
		},
		{
			name:     "upstream failure",
			role:     ExampleRoleSurvey(),
			product:  ExampleProductSurvey(),
			opts:     AnalyzeOptions{Adapter: &fakeGenerator{err: errors.New("api: overloaded")}},
			wantKind: ErrorKindUpstream,
		},
		{
			name:     "no structured output",
			role:     ExampleRoleSurvey(),
			product:  ExampleProductSurvey(),
			opts:     AnalyzeOptions{Adapter: &fakeGenerator{err: ErrNoStructuredOutput}},
			wantKind: ErrorKindEmptyResult,
		},
		{
			name:     "empty raw result",
			role:     ExampleRoleSurvey(),
			product:  ExampleProductSurvey(),
			opts:     AnalyzeOptions{Adapter: &fakeGenerator{raw: json.RawMessage("")}},
			wantKind: ErrorKindEmptyResult,
		},
		{
			name:     "schema violation",
			role:     ExampleRoleSurvey(),
			product:  ExampleProductSurvey(),
			opts:     AnalyzeOptions{Adapter: &fakeGenerator{raw: json.RawMessage(`{"meta": {}}`)}},
			wantKind: ErrorKindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RunAnalysis(context.Background(), tt.role, tt.product, tt.opts)
			if err == nil {
				t.Fatal("RunAnalysis() = nil error, want failure")
			}
			var aerr *AnalysisError
			if !errors.As(err, &aerr) {
				t.Fatalf("error has type %T, want *AnalysisError", err)
			}
			if aerr.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", aerr.Kind, tt.wantKind)
			}
		})
	}
}

func TestAnalysisErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &AnalysisError{Kind: ErrorKindUpstream, Message: "call failed", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("errors.Is does not reach the wrapped error")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("Error() = %q, want wrapped message included", err.Error())
	}
}
