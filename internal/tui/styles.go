package tui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
			Bold(true)
	headerDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#9893a5", Dark: "#6e6a86"})

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#cecacd", Dark: "#403d52"}).
			Padding(0, 1)
	activePaneStyle = paneStyle.
			BorderForeground(lipgloss.AdaptiveColor{Light: "#b4637a", Dark: "#ebbcba"})

	cursorRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#faf4ed", Dark: "#191724"}).
			Background(lipgloss.AdaptiveColor{Light: "#b4637a", Dark: "#ebbcba"})
	matchRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#ea9d34", Dark: "#f6c177"})
	rankColStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#9893a5", Dark: "#6e6a86"})

	fitPerfectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})
	fitGoodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#ea9d34", Dark: "#f6c177"})
	fitExtremeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#b4637a", Dark: "#eb6f92"})

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
			Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"}).
			Padding(0, 1)
	badgeActiveStyle = badgeStyle.
				Foreground(lipgloss.AdaptiveColor{Light: "#faf4ed", Dark: "#191724"}).
				Background(lipgloss.AdaptiveColor{Light: "#56949f", Dark: "#31748f"})

	menuStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#ea9d34", Dark: "#f6c177"}).
			Padding(1, 2)
	menuLetterStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#b4637a", Dark: "#ebbcba"})

	searchPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#56949f", Dark: "#9ccfd8"})
	noDataStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#9893a5", Dark: "#6e6a86"}).
			Italic(true)
)
