package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TermTheme holds all color values for a TUI theme.
type TermTheme struct {
	Name string

	// Brand
	Accent    lipgloss.Color
	AccentDim lipgloss.Color

	// Semantic
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// Text
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Dim       lipgloss.Color

	// Surfaces
	Border       lipgloss.Color
	ActiveBorder lipgloss.Color
}

// DarkTheme is the default dark terminal theme.
var DarkTheme = TermTheme{
	Name:         "dark",
	Accent:       lipgloss.Color("#38bdf8"),
	AccentDim:    lipgloss.Color("#0369a1"),
	Success:      lipgloss.Color("#22c55e"),
	Warning:      lipgloss.Color("#eab308"),
	Error:        lipgloss.Color("#ef4444"),
	Primary:      lipgloss.Color("#e0e0e8"),
	Secondary:    lipgloss.Color("#888888"),
	Dim:          lipgloss.Color("#5a5a70"),
	Border:       lipgloss.Color("#2a2a3a"),
	ActiveBorder: lipgloss.Color("#38bdf8"),
}

// LightTheme is the light terminal theme.
var LightTheme = TermTheme{
	Name:         "light",
	Accent:       lipgloss.Color("#0369a1"),
	AccentDim:    lipgloss.Color("#0c4a6e"),
	Success:      lipgloss.Color("#15803d"),
	Warning:      lipgloss.Color("#a16207"),
	Error:        lipgloss.Color("#b91c1c"),
	Primary:      lipgloss.Color("#0f172a"),
	Secondary:    lipgloss.Color("#374151"),
	Dim:          lipgloss.Color("#4b5563"),
	Border:       lipgloss.Color("#d1d5db"),
	ActiveBorder: lipgloss.Color("#0369a1"),
}

var themesByName = map[string]TermTheme{
	"dark":  DarkTheme,
	"light": LightTheme,
}

// DetectTheme resolves the configured theme name. The config layer has
// already folded the --theme flag and STEPPER_THEME into preference; "auto"
// or "" falls back to the terminal background reported in COLORFGBG.
func DetectTheme(preference string) TermTheme {
	if t, ok := themesByName[strings.ToLower(preference)]; ok {
		return t
	}
	if lightBackground(os.Getenv("COLORFGBG")) {
		return LightTheme
	}
	return DarkTheme
}

// lightBackground reads the "fg;bg" (or "fg;other;bg") COLORFGBG value.
// Only white (7, 15) counts as light.
func lightBackground(colorfgbg string) bool {
	i := strings.LastIndexByte(colorfgbg, ';')
	if i < 0 {
		return false
	}
	switch colorfgbg[i+1:] {
	case "7", "15":
		return true
	}
	return false
}

// StyleSet contains pre-computed lipgloss styles derived from a theme.
type StyleSet struct {
	Theme TermTheme

	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	AccentTxt    lipgloss.Style
	DimTxt       lipgloss.Style
	SuccessTxt   lipgloss.Style
	ErrorTxt     lipgloss.Style
	PrimaryTxt   lipgloss.Style
	SecondaryTxt lipgloss.Style

	// Kbd hint
	KbdKey  lipgloss.Style
	KbdDesc lipgloss.Style

	Banner      lipgloss.Style
	VersionPill lipgloss.Style

	// Step number badges, one per status
	BadgePending    lipgloss.Style
	BadgeProcessing lipgloss.Style
	BadgeCompleted  lipgloss.Style
	BadgeFailed     lipgloss.Style

	// Action control
	ButtonEnabled  lipgloss.Style
	ButtonDisabled lipgloss.Style

	ErrorBox lipgloss.Style
}

// NewStyleSet creates a StyleSet from a theme.
func NewStyleSet(theme TermTheme) *StyleSet {
	badge := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	button := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)

	return &StyleSet{
		Theme: theme,

		Title:        lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
		Subtitle:     lipgloss.NewStyle().Foreground(theme.Secondary),
		AccentTxt:    lipgloss.NewStyle().Foreground(theme.Accent),
		DimTxt:       lipgloss.NewStyle().Foreground(theme.Dim),
		SuccessTxt:   lipgloss.NewStyle().Foreground(theme.Success),
		ErrorTxt:     lipgloss.NewStyle().Foreground(theme.Error),
		PrimaryTxt:   lipgloss.NewStyle().Foreground(theme.Primary),
		SecondaryTxt: lipgloss.NewStyle().Foreground(theme.Secondary),

		KbdKey: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Background(theme.Dim).
			Padding(0, 1),
		KbdDesc: lipgloss.NewStyle().
			Foreground(theme.Dim),

		Banner: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),
		VersionPill: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),

		BadgePending: badge.
			Background(theme.Border).
			Foreground(theme.Secondary),
		BadgeProcessing: badge.
			Background(theme.Accent).
			Foreground(lipgloss.Color("#ffffff")),
		BadgeCompleted: badge.
			Background(theme.Success).
			Foreground(lipgloss.Color("#ffffff")),
		BadgeFailed: badge.
			Background(theme.Error).
			Foreground(lipgloss.Color("#ffffff")),

		ButtonEnabled: button.
			BorderForeground(theme.ActiveBorder).
			Foreground(theme.Primary).
			Bold(true),
		ButtonDisabled: button.
			BorderForeground(theme.Border).
			Foreground(theme.Dim),

		ErrorBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Error).
			Foreground(theme.Error).
			Padding(0, 1),
	}
}
