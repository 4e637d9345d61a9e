package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// runPhase summarizes the display for the header pill.
type runPhase int

const (
	phaseIdle runPhase = iota
	phaseRunning
	phaseDone
	phaseFailed
)

var phaseLabels = map[runPhase]string{
	phaseIdle:    "siap",
	phaseRunning: "berjalan",
	phaseDone:    "selesai",
	phaseFailed:  "gagal",
}

// bannerInfo is what the header shows about the current run.
type bannerInfo struct {
	version   string
	endpoint  string
	sessionID string
	phase     runPhase
}

// renderBanner returns the header: name, version, run phase, then the
// endpoint and the short id of the current or last session.
func renderBanner(styles *StyleSet, info bannerInfo, width int) string {
	version := info.version
	if version == "" {
		version = "dev"
	}

	var pill lipgloss.Style
	switch info.phase {
	case phaseRunning:
		pill = styles.BadgeProcessing
	case phaseDone:
		pill = styles.BadgeCompleted
	case phaseFailed:
		pill = styles.BadgeFailed
	default:
		pill = styles.BadgePending
	}

	head := styles.Banner.Render("▸  S T E P P E R") + "  " +
		styles.VersionPill.Render("v"+version) + "  " +
		pill.Render(phaseLabels[info.phase])

	meta := styles.Subtitle.Render(info.endpoint)
	if id := shortSessionID(info.sessionID); id != "" {
		meta += "  " + styles.DimTxt.Render("#"+id)
	}

	rule := lipgloss.NewStyle().
		Foreground(styles.Theme.Border).
		Render(strings.Repeat("─", min(max(width-4, 20), 60)))

	block := lipgloss.JoinVertical(lipgloss.Left, head, meta, rule)
	return lipgloss.NewStyle().MarginLeft(2).Render(block) + "\n\n"
}

func shortSessionID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
