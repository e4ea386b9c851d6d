package report

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles defines the visual theme for terminal report output.
// Lipgloss automatically degrades to no-color when output is not a TTY.
type Styles struct {
	// Header is used for per-file section headers.
	Header lipgloss.Style

	// Location styles line:col positions.
	Location lipgloss.Style

	// Finding styles the finding message.
	Finding lipgloss.Style

	// Pass styles the clean-run summary.
	Pass lipgloss.Style

	// Fail styles the findings-present summary.
	Fail lipgloss.Style

	// Muted is used for de-emphasized text.
	Muted lipgloss.Style
}

// DefaultStyles returns the default color scheme for terminal reports.
func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Location: lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		Finding:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		Pass:     lipgloss.NewStyle().Foreground(lipgloss.Color("40")).Bold(true),
		Fail:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
