package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	colorPrimary   = lipgloss.Color("#7B68EE") // Night-sky violet
	colorSecondary = lipgloss.Color("#87CEEB") // Sky blue
	colorStar      = lipgloss.Color("#FFD93D") // Star gold
	colorDanger    = lipgloss.Color("#FF6B6B") // Red for failures
	colorSuccess   = lipgloss.Color("#6BCF7F") // Green
	colorMuted     = lipgloss.Color("#6C757D") // Gray
	colorBorder    = lipgloss.Color("#4A4E69") // Border slate

	// Title styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	// Pane styles
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	activePaneStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(colorPrimary)

	// Tab bar
	tabStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary).
			Bold(true).
			Padding(0, 1)

	// Card styles
	cardStyle = lipgloss.NewStyle().
			Padding(0, 1)

	selectedCardStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(lipgloss.Color("#2D2A4A")).
				Bold(true)

	favoriteMarkStyle = lipgloss.NewStyle().
				Foreground(colorStar)

	eventBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#B497F2"))

	// Pagination
	pageButtonStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Padding(0, 1)

	currentPageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(colorPrimary).
				Bold(true).
				Padding(0, 1)

	ellipsisStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Detail panel
	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	// Status surfaces
	noticeStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	degradedStyle = lipgloss.NewStyle().
			Foreground(colorStar).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorStar)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	// Help text style
	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(1, 0, 0, 0)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)
