// ABOUTME: Shared lipgloss styles for the console screens
// ABOUTME: Colors, borders, and the alert strip styles

package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tbenali/captrack/internal/alert"
)

var (
	// Core palette
	Primary = lipgloss.Color("#0EA5E9") // Sky blue
	Success = lipgloss.Color("#10B981") // Green
	Warning = lipgloss.Color("#F59E0B") // Amber
	Danger  = lipgloss.Color("#EF4444") // Red
	Info    = lipgloss.Color("#3B82F6") // Blue
	Muted   = lipgloss.Color("#6B7280") // Gray
	Text    = lipgloss.Color("#F9FAFB") // Light

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			MarginBottom(1)

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(1, 2)

	ActivePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	Help = lipgloss.NewStyle().
		Foreground(Muted).
		MarginTop(1)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	StatusOK = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	StatusCritical = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	alertSuccess = lipgloss.NewStyle().Foreground(Success).Bold(true)
	alertError   = lipgloss.NewStyle().Foreground(Danger).Bold(true)
	alertWarning = lipgloss.NewStyle().Foreground(Warning).Bold(true)
	alertInfo    = lipgloss.NewStyle().Foreground(Info).Bold(true)
)

// AlertStyle returns the style for an alert kind.
func AlertStyle(kind alert.Kind) lipgloss.Style {
	switch kind {
	case alert.KindSuccess:
		return alertSuccess
	case alert.KindError:
		return alertError
	case alert.KindWarning:
		return alertWarning
	default:
		return alertInfo
	}
}
