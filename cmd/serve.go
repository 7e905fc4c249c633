package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tbruckner/ce-intake/internal/core"
	"github.com/tbruckner/ce-intake/internal/llm"
	"github.com/tbruckner/ce-intake/internal/server"
	"github.com/tbruckner/ce-intake/internal/tui"
)

var (
	serveAddr        string
	serveModel       string
	serveReasoning   string
	serveRateLimit   time.Duration
	serveMaxSessions int
	serveConfigFile  string
)

// ServeCmd represents the serve command.
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the intake API server",
	Long: `Run the HTTP API: sessions, checklist overlays, survey export, and
the rate-limited analyze endpoint.

Configuration comes from flags, .ce-intake.yaml, and the environment
(ANTHROPIC_API_KEY, CE_INTAKE_MODEL, CE_INTAKE_REASONING_EFFORT). A .env
file in the working directory is loaded first.`,
	RunE: runServe,
}

func init() {
	ServeCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	ServeCmd.Flags().StringVarP(&serveModel, "model", "m", "", "Model to use")
	ServeCmd.Flags().StringVar(&serveReasoning, "reasoning", "", "Reasoning effort (low/medium/high)")
	ServeCmd.Flags().DurationVar(&serveRateLimit, "rate-limit", 5*time.Second, "Minimum interval between analyses per session")
	ServeCmd.Flags().IntVar(&serveMaxSessions, "max-sessions", 4096, "Rate limiter session capacity")
	ServeCmd.Flags().StringVar(&serveConfigFile, "config", "", "Config file (default: .ce-intake.yaml)")
}

func runServe(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := loadConfigFile(findConfigFile(serveConfigFile))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Precedence: flag, then config file, then environment, then default.
	if !cmd.Flags().Changed("model") && cfg.Model != "" {
		serveModel = cfg.Model
	}
	if serveModel == "" {
		serveModel = os.Getenv("CE_INTAKE_MODEL")
	}
	if serveModel == "" {
		serveModel = llm.DefaultModel
	}
	if !cmd.Flags().Changed("reasoning") && cfg.ReasoningEffort != "" {
		serveReasoning = cfg.ReasoningEffort
	}
	if serveReasoning == "" {
		serveReasoning = os.Getenv("CE_INTAKE_REASONING_EFFORT")
	}
	if !cmd.Flags().Changed("addr") && cfg.Addr != "" {
		serveAddr = cfg.Addr
	}

	var generator core.Generator
	adapter, err := llm.NewAnthropicAPIAdapter(llm.Config{
		Model:           serveModel,
		MaxTokens:       cfg.MaxTokens,
		ReasoningEffort: serveReasoning,
	})
	if err != nil {
		// Run without an adapter; the analyze endpoint reports the
		// missing key per request.
		fmt.Printf("%s %v - analyze requests will fail\n", tui.WarningStyle.Render("!"), err)
	} else {
		generator = adapter
	}

	limiter, err := server.NewIntervalLimiter(serveRateLimit, serveMaxSessions)
	if err != nil {
		return fmt.Errorf("failed to create rate limiter: %w", err)
	}

	srv := server.New(server.NewSessionStore(), limiter, generator, serveModel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("%s ce-intake API listening on %s\n", tui.SuccessStyle.Render("✓"), serveAddr)
	fmt.Printf("  Model: %s\n", tui.ModelStyle.Render(serveModel))
	fmt.Println("  Endpoints:")
	fmt.Println("    POST  /api/analyze")
	fmt.Println("    POST  /api/sessions")
	fmt.Println("    GET   /api/sessions/{id}")
	fmt.Println("    PUT   /api/sessions/{id}")
	fmt.Println("    GET   /api/sessions/{id}/checklist")
	fmt.Println("    PATCH /api/sessions/{id}/checklist/{key}")
	fmt.Println("    GET   /api/sessions/{id}/export")

	return srv.ListenAndServe(ctx, serveAddr)
}
