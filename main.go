package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tbruckner/ce-intake/cmd"
	"github.com/tbruckner/ce-intake/internal/version"
)

var appVersion = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:     "ce-intake",
		Short:   "Guided CE-compliance intake and analysis",
		Version: appVersion,
	}

	rootCmd.AddCommand(cmd.AnalyzeCmd)
	rootCmd.AddCommand(cmd.PromptCmd)
	rootCmd.AddCommand(cmd.ExportCmd)
	rootCmd.AddCommand(cmd.ServeCmd)
	rootCmd.AddCommand(cmd.SetupCmd)

	if version.IsFirstRun() {
		version.PrintFirstRunNotice()
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	version.PrintUpdateNotice(version.CheckForUpdate(appVersion))
}
