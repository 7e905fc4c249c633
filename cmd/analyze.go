package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tbruckner/ce-intake/internal/core"
	"github.com/tbruckner/ce-intake/internal/llm"
	"github.com/tbruckner/ce-intake/internal/tui"
)

var (
	analyzeRoleFile    string
	analyzeProductFile string
	analyzeExample     bool
	analyzeModel       string
	analyzeReasoning   string
	analyzeOut         string
	analyzeConfigFile  string
)

// AnalyzeCmd represents the analyze command.
var AnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the compliance analysis for a role and product survey",
	Long: `Run the guided-questionnaire compliance analysis.

Both surveys are sent to the model with a strict output schema. The result
contains the per-market role determination, the adjudicated EU regulations,
tailored compliance checklists, and a German HTML report.

Surveys are JSON files matching the intake questionnaire; use --example to
run the built-in prefilled example instead.`,
	RunE: runAnalyze,
}

func init() {
	AnalyzeCmd.Flags().StringVar(&analyzeRoleFile, "role", "", "Role survey JSON file")
	AnalyzeCmd.Flags().StringVar(&analyzeProductFile, "product", "", "Product survey JSON file")
	AnalyzeCmd.Flags().BoolVar(&analyzeExample, "example", false, "Use the built-in example surveys")
	AnalyzeCmd.Flags().StringVarP(&analyzeModel, "model", "m", "", "Model to use")
	AnalyzeCmd.Flags().StringVar(&analyzeReasoning, "reasoning", "", "Reasoning effort (low/medium/high)")
	AnalyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Write the result JSON to a file (default: stdout)")
	AnalyzeCmd.Flags().StringVar(&analyzeConfigFile, "config", "", "Config file (default: .ce-intake.yaml)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	configPath := findConfigFile(analyzeConfigFile)
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if configPath != "" {
		fmt.Printf("Loaded config from: %s\n", configPath)
	}

	// Flags override config file values
	if !cmd.Flags().Changed("model") && cfg.Model != "" {
		analyzeModel = cfg.Model
	}
	if !cmd.Flags().Changed("reasoning") && cfg.ReasoningEffort != "" {
		analyzeReasoning = cfg.ReasoningEffort
	}
	if analyzeModel == "" {
		analyzeModel = llm.DefaultModel
	}

	role, product, err := loadSurveys(analyzeRoleFile, analyzeProductFile, analyzeExample)
	if err != nil {
		return err
	}

	adapter, err := llm.NewAnthropicAPIAdapter(llm.Config{
		Model:           analyzeModel,
		MaxTokens:       cfg.MaxTokens,
		ReasoningEffort: analyzeReasoning,
	})
	if err != nil {
		return fmt.Errorf("failed to create LLM adapter: %w", err)
	}
	fmt.Printf("Using LLM: %s\n", adapter.Name())

	inputChars := len(core.SystemInstruction) + len(core.BuildAnalyzePrompt(role, product))
	fmt.Println(tui.RenderRunStart(analyzeModel, inputChars))

	// Keep the terminal alive during the long model call
	start := time.Now()
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				elapsed := time.Since(start).Truncate(time.Second)
				fmt.Printf("    Still analyzing... (%s elapsed)\n", elapsed)
			}
		}
	}()

	result, err := core.RunAnalysis(context.Background(), role, product, core.AnalyzeOptions{
		Adapter: adapter,
		Model:   analyzeModel,
	})
	close(done)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	fmt.Println(tui.RenderRunComplete(tui.RunInfo{
		Model:       analyzeModel,
		InputChars:  inputChars,
		OutputChars: len(data),
		StartTime:   start,
		EndTime:     time.Now(),
		IsComplete:  true,
	}))

	printSummary(result)

	if analyzeOut != "" {
		if err := os.WriteFile(analyzeOut, data, 0644); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
		fmt.Printf("Saved result to: %s\n", analyzeOut)
		return nil
	}
	fmt.Println(string(data))
	return nil
}

// loadSurveys resolves the survey pair from flags.
func loadSurveys(roleFile, productFile string, useExample bool) (*core.RoleSurvey, *core.ProductSurvey, error) {
	if useExample {
		return core.ExampleRoleSurvey(), core.ExampleProductSurvey(), nil
	}
	if roleFile == "" || productFile == "" {
		return nil, nil, fmt.Errorf("both --role and --product are required (or use --example)")
	}

	role := core.DefaultRoleSurvey()
	if err := readJSONFile(roleFile, role); err != nil {
		return nil, nil, fmt.Errorf("failed to load role survey: %w", err)
	}
	product := core.DefaultProductSurvey()
	if err := readJSONFile(productFile, product); err != nil {
		return nil, nil, fmt.Errorf("failed to load product survey: %w", err)
	}
	return role, product, nil
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func printSummary(result *core.AnalysisResult) {
	fmt.Println()
	fmt.Println(tui.TitleStyle.Render("--- Auswertung ---"))
	for _, market := range result.RoleDetermination.ByMarket {
		roles := make([]string, 0, len(market.Roles))
		for _, r := range market.Roles {
			roles = append(roles, fmt.Sprintf("%s (%s)", r.Role, r.Confidence))
		}
		fmt.Printf("%s: %s\n", tui.StepStyle.Render(market.Market), joinOr(roles, "keine Rolle bestimmt"))
	}
	fmt.Printf("Anwendbar: %d  Nicht anwendbar: %d  Klärungsbedarf: %d\n",
		len(result.Regulations.Applicable),
		len(result.Regulations.NotApplicable),
		len(result.Regulations.NeedsClarification),
	)
	for _, reg := range result.Regulations.Applicable {
		fmt.Printf("  • %s (%s)\n", reg.Title, reg.Confidence)
	}
	fmt.Printf("Compliance-Pläne: %d\n", len(result.CompliancePlans))
	fmt.Println()
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	out := values[0]
	for _, v := range values[1:] {
		out += ", " + v
	}
	return out
}
