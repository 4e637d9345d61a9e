package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/initializ/stepper/process"
)

// StepListStyles are the styles a StepList renders with.
type StepListStyles struct {
	Title   lipgloss.Style
	Pending lipgloss.Style
	Active  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style

	BadgePending    lipgloss.Style
	BadgeProcessing lipgloss.Style
	BadgeCompleted  lipgloss.Style
	BadgeFailed     lipgloss.Style
}

// StepList renders the pipeline steps with a spinner on the ones in flight.
type StepList struct {
	spinner spinner.Model
	styles  StepListStyles
}

// NewStepList creates a step list display.
func NewStepList(styles StepListStyles, accentColor lipgloss.Color) StepList {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	return StepList{spinner: sp, styles: styles}
}

// Init starts the spinner.
func (l StepList) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner.
func (l StepList) Update(msg tea.Msg) (StepList, tea.Cmd) {
	if msg, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		l.spinner, cmd = l.spinner.Update(msg)
		return l, cmd
	}
	return l, nil
}

// View renders one row per step: position badge, title, status label.
func (l StepList) View(steps []process.Step) string {
	var out string

	for i, step := range steps {
		var (
			badge      lipgloss.Style
			icon       string
			labelStyle lipgloss.Style
		)

		switch step.Status {
		case process.StatusProcessing:
			badge = l.styles.BadgeProcessing
			icon = l.spinner.View()
			labelStyle = l.styles.Active
		case process.StatusCompleted:
			badge = l.styles.BadgeCompleted
			icon = l.styles.Success.Render("✓")
			labelStyle = l.styles.Success
		case process.StatusFailed:
			badge = l.styles.BadgeFailed
			icon = l.styles.Error.Render("✗")
			labelStyle = l.styles.Error
		default:
			badge = l.styles.BadgePending
			icon = l.styles.Pending.Render("·")
			labelStyle = l.styles.Pending
		}

		out += fmt.Sprintf("  %s  %s\n", badge.Render(fmt.Sprintf("%d", i+1)), l.styles.Title.Render(step.Title))
		out += fmt.Sprintf("       %s %s\n\n", icon, labelStyle.Render(step.Status.Label()))
	}

	return out
}
