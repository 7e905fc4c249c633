package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// RunInfo holds progress data for one analysis call.
type RunInfo struct {
	Model       string
	InputChars  int
	OutputChars int
	StartTime   time.Time
	EndTime     time.Time
	IsComplete  bool
}

// AnalysisProgress is a Bubble Tea model showing a spinner with elapsed
// time while the analysis call is in flight.
type AnalysisProgress struct {
	spinner  spinner.Model
	run      RunInfo
	quitting bool
}

// NewAnalysisProgress creates a progress display for one run.
func NewAnalysisProgress(model string, inputChars int) *AnalysisProgress {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return &AnalysisProgress{
		spinner: s,
		run: RunInfo{
			Model:      model,
			InputChars: inputChars,
			StartTime:  time.Now(),
		},
	}
}

// Complete marks the run finished.
func (p *AnalysisProgress) Complete(outputChars int) {
	p.run.IsComplete = true
	p.run.EndTime = time.Now()
	p.run.OutputChars = outputChars
	p.quitting = true
}

// Init implements tea.Model.
func (p *AnalysisProgress) Init() tea.Cmd {
	return p.spinner.Tick
}

// Update implements tea.Model.
func (p *AnalysisProgress) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			p.quitting = true
			return p, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd
	}

	return p, nil
}

// View implements tea.Model.
func (p *AnalysisProgress) View() string {
	if p.quitting {
		return RenderRunComplete(p.run)
	}

	elapsed := time.Since(p.run.StartTime).Truncate(time.Second)
	return fmt.Sprintf("%s %s  %s  %s  ~%s input",
		p.spinner.View(),
		StepStyle.Render("Analyse"),
		ModelStyle.Render(p.run.Model),
		HelpStyle.Render(elapsed.String()),
		FormatTokens(EstimateTokens(p.run.InputChars)),
	)
}

// RenderRunStart returns the start line for non-interactive mode.
func RenderRunStart(model string, inputChars int) string {
	return fmt.Sprintf("%s %s  %s  ~%s input tokens",
		SpinnerStyle.Render("→"),
		StepStyle.Render("Analyse"),
		ModelStyle.Render(model),
		FormatTokens(EstimateTokens(inputChars)),
	)
}

// RenderRunComplete returns the completion summary line.
func RenderRunComplete(run RunInfo) string {
	inputTokens := EstimateTokens(run.InputChars)
	outputTokens := EstimateTokens(run.OutputChars)
	cost := EstimateCost(run.Model, inputTokens, outputTokens)

	duration := time.Duration(0)
	if run.IsComplete {
		duration = run.EndTime.Sub(run.StartTime)
	}

	return fmt.Sprintf("%s %s  %s  ~%s tokens  %s",
		SuccessStyle.Render("✓"),
		StepStyle.Render("Analyse"),
		HelpStyle.Render(duration.Truncate(time.Second).String()),
		FormatTokens(inputTokens+outputTokens),
		CostStyle.Render(FormatCost(cost)),
	)
}
