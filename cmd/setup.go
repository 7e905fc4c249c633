package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tbruckner/ce-intake/internal/llm"
	"github.com/tbruckner/ce-intake/internal/tui"
)

var resetConfig bool

// SetupCmd represents the setup command.
var SetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive configuration wizard",
	Long: `Configure ce-intake with an interactive wizard.

The wizard picks the analysis model and the reasoning effort level.
Configuration is saved to ~/.ce-intake.yaml`,
	RunE: runSetup,
}

func init() {
	SetupCmd.Flags().BoolVar(&resetConfig, "reset", false, "Reset configuration to defaults")
}

func runSetup(cmd *cobra.Command, args []string) error {
	configPath := defaultConfigPath()

	if resetConfig {
		if err := os.Remove(configPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove config: %w", err)
		}
		fmt.Println(tui.SuccessStyle.Render("✓") + " Configuration reset to defaults")
		fmt.Printf("  Removed: %s\n", configPath)
		return nil
	}

	p := tea.NewProgram(newSetupModel())
	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}

	final := m.(setupModel)
	if final.cancelled {
		fmt.Println("Setup cancelled")
		return nil
	}

	config := configFileData{
		Model:           final.selectedModel,
		ReasoningEffort: final.selectedEffort,
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	effort := config.ReasoningEffort
	if effort == "" {
		effort = "off"
	}
	fmt.Println()
	fmt.Println(tui.SuccessStyle.Render("✓") + " Configuration saved to " + configPath)
	fmt.Println()
	fmt.Printf("  Model:     %s\n", tui.ModelStyle.Render(config.Model))
	fmt.Printf("  Reasoning: %s\n", tui.ModelStyle.Render(effort))

	return nil
}

// Bubble Tea model for the setup wizard

type setupModel struct {
	step           int // 0=model, 1=reasoning effort
	lists          []list.Model
	selectedModel  string
	selectedEffort string
	cancelled      bool
}

type choiceItem struct {
	id          string
	name        string
	description string
}

func (c choiceItem) Title() string       { return c.name }
func (c choiceItem) Description() string { return c.description }
func (c choiceItem) FilterValue() string { return c.name }

func newSetupModel() setupModel {
	models := llm.AllModels()
	modelItems := make([]list.Item, len(models))
	for i, m := range models {
		modelItems[i] = choiceItem{id: m.ID, name: m.Name, description: m.Description}
	}

	efforts := llm.ReasoningEfforts()
	effortItems := make([]list.Item, len(efforts))
	for i, e := range efforts {
		effortItems[i] = choiceItem{id: e.ID, name: e.Name, description: e.Description}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(lipgloss.Color("#9b59b6"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(lipgloss.Color("#95a5a6"))

	modelList := list.New(modelItems, delegate, 60, 14)
	modelList.Title = "Select Analysis Model"
	effortList := list.New(effortItems, delegate, 60, 14)
	effortList.Title = "Select Reasoning Effort"

	lists := []list.Model{modelList, effortList}
	for i := range lists {
		lists[i].SetShowStatusBar(false)
		lists[i].SetFilteringEnabled(false)
		lists[i].Styles.Title = tui.TitleStyle
	}

	return setupModel{lists: lists}
}

func (m setupModel) Init() tea.Cmd {
	return nil
}

func (m setupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		for i := range m.lists {
			m.lists[i].SetWidth(msg.Width)
			m.lists[i].SetHeight(msg.Height - 4)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			if item, ok := m.lists[m.step].SelectedItem().(choiceItem); ok {
				if m.step == 0 {
					m.selectedModel = item.id
				} else {
					m.selectedEffort = item.id
				}
			}

			m.step++
			if m.step >= len(m.lists) {
				return m, tea.Quit
			}
			return m, nil

		case "left", "h":
			if m.step > 0 {
				m.step--
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.lists[m.step], cmd = m.lists[m.step].Update(msg)
	return m, cmd
}

func (m setupModel) View() string {
	if m.cancelled {
		return ""
	}

	steps := []string{"Model", "Reasoning"}
	progress := "\n  "
	for i, s := range steps {
		switch {
		case i == m.step:
			progress += tui.SelectedStyle.Render(fmt.Sprintf("[%s]", s))
		case i < m.step:
			progress += tui.SuccessStyle.Render(fmt.Sprintf("✓ %s", s))
		default:
			progress += tui.UnselectedStyle.Render(fmt.Sprintf("○ %s", s))
		}
		if i < len(steps)-1 {
			progress += " → "
		}
	}
	progress += "\n\n"

	help := tui.HelpStyle.Render("\n  ↑/↓: navigate • enter: select • ←: back • q: quit")

	return progress + m.lists[m.step].View() + help
}
