package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tbruckner/ce-intake/internal/export"
)

var (
	exportRoleFile    string
	exportProductFile string
	exportExample     bool
)

// ExportCmd represents the export command.
var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render surveys as German checkbox text",
	Long: `Render a survey pair as plain German text with checkbox markers,
suitable for pasting into documents or emails.`,
	RunE: runExport,
}

func init() {
	ExportCmd.Flags().StringVar(&exportRoleFile, "role", "", "Role survey JSON file")
	ExportCmd.Flags().StringVar(&exportProductFile, "product", "", "Product survey JSON file")
	ExportCmd.Flags().BoolVar(&exportExample, "example", false, "Use the built-in example surveys")
}

func runExport(cmd *cobra.Command, args []string) error {
	role, product, err := loadSurveys(exportRoleFile, exportProductFile, exportExample)
	if err != nil {
		return err
	}

	fmt.Println(export.RoleSurveyText(role))
	fmt.Println()
	fmt.Println(export.ProductSurveyText(product))
	return nil
}
