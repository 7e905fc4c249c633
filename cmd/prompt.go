package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tbruckner/ce-intake/internal/core"
	"github.com/tbruckner/ce-intake/internal/tui"
)

var (
	promptRoleFile    string
	promptProductFile string
	promptExample     bool
	promptShowSystem  bool
)

// PromptCmd represents the prompt command.
var PromptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Preview the analysis prompt without calling the model",
	Long: `Render the deterministic analysis prompt for a survey pair.

Useful for reviewing exactly what the model is asked before spending
tokens. The prompt is byte-identical for identical surveys.`,
	RunE: runPrompt,
}

func init() {
	PromptCmd.Flags().StringVar(&promptRoleFile, "role", "", "Role survey JSON file")
	PromptCmd.Flags().StringVar(&promptProductFile, "product", "", "Product survey JSON file")
	PromptCmd.Flags().BoolVar(&promptExample, "example", false, "Use the built-in example surveys")
	PromptCmd.Flags().BoolVar(&promptShowSystem, "system", false, "Include the system instruction")
}

func runPrompt(cmd *cobra.Command, args []string) error {
	role, product, err := loadSurveys(promptRoleFile, promptProductFile, promptExample)
	if err != nil {
		return err
	}
	if err := role.Validate(); err != nil {
		return err
	}
	if err := product.Validate(); err != nil {
		return err
	}

	if promptShowSystem {
		fmt.Println(tui.TitleStyle.Render("=== System ==="))
		fmt.Println(core.SystemInstruction)
		fmt.Println()
		fmt.Println(tui.TitleStyle.Render("=== User ==="))
	}
	fmt.Println(core.BuildAnalyzePrompt(role, product))
	return nil
}
