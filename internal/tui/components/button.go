package components

import "github.com/charmbracelet/lipgloss"

// Button is the action control. It only renders; key handling lives with
// the owning model.
type Button struct {
	Label         string
	Enabled       bool
	EnabledStyle  lipgloss.Style
	DisabledStyle lipgloss.Style
}

// View renders the button in its current state.
func (b Button) View() string {
	style := b.DisabledStyle
	if b.Enabled {
		style = b.EnabledStyle
	}
	return lipgloss.NewStyle().MarginLeft(2).Render(style.Render(b.Label))
}
