package version

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tbruckner/ce-intake/internal/tui"
)

// IsFirstRun returns true if this appears to be the first run.
// Checks for existence of config file or first-run marker.
func IsFirstRun() bool {
	home, err := os.UserHomeDir()
	if err != nil {
		return false
	}

	configPath := filepath.Join(home, ".ce-intake.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return false
	}

	markerPath := filepath.Join(home, ".ce-intake", ".initialized")
	if _, err := os.Stat(markerPath); err == nil {
		return false
	}

	return true
}

// MarkInitialized creates the first-run marker.
func MarkInitialized() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}

	dir := filepath.Join(home, ".ce-intake")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return
	}

	_ = os.WriteFile(filepath.Join(dir, ".initialized"), []byte{}, 0644)
}

// PrintFirstRunNotice prints a welcome message for first-time users.
func PrintFirstRunNotice() {
	fmt.Println()
	fmt.Printf("%s Welcome to ce-intake!\n", tui.TitleStyle.Render("*"))
	fmt.Println()
	fmt.Println("  Quick start:")
	fmt.Printf("    1. Run %s to pick a model and reasoning effort\n", tui.ModelStyle.Render("ce-intake setup"))
	fmt.Printf("    2. Try the example intake: %s\n", tui.ModelStyle.Render("ce-intake analyze --example"))
	fmt.Printf("    3. Start the API server: %s\n", tui.ModelStyle.Render("ce-intake serve"))
	fmt.Println()
	fmt.Printf("  %s\n", tui.HelpStyle.Render("Run 'ce-intake --help' for all options"))
	fmt.Println()

	MarkInitialized()
}
