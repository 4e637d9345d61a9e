package components

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// KbdHint renders a horizontal keyboard shortcut hint bar from key bindings.
// Disabled bindings are left out.
type KbdHint struct {
	Bindings []key.Binding
	help     help.Model
}

// NewKbdHint creates a KbdHint with the given styles.
func NewKbdHint(keyStyle, descStyle lipgloss.Style) KbdHint {
	h := help.New()
	h.ShortSeparator = "    "
	h.Styles.ShortKey = keyStyle
	h.Styles.ShortDesc = descStyle
	h.Styles.ShortSeparator = lipgloss.NewStyle()
	return KbdHint{help: h}
}

// SetWidth truncates the bar to width columns; zero means unbounded.
func (k *KbdHint) SetWidth(width int) {
	k.help.Width = width
}

// View renders the enabled bindings.
func (k KbdHint) View() string {
	return "  " + k.help.ShortHelpView(k.Bindings)
}
