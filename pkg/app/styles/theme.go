package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	Primary    = lipgloss.Color("#FFE81F")
	Secondary  = lipgloss.Color("#4BD5EE")
	Success    = lipgloss.Color("#C3E88D")
	Warning    = lipgloss.Color("#FFCB6B")
	Error      = lipgloss.Color("#FF5F56")
	Info       = lipgloss.Color("#82AAFF")
	Muted      = lipgloss.Color("#546E7A")
	Faint      = lipgloss.Color("#37474F")
	Background = lipgloss.Color("#10141A")
	Foreground = lipgloss.Color("#EEFFFF")

	RoundedBorder = lipgloss.RoundedBorder()
	ThickBorder   = lipgloss.ThickBorder()
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Italic(true)

	TextStyle = lipgloss.NewStyle().
			Foreground(Foreground)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	CardStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Secondary).
			Padding(1, 2).
			MarginBottom(1)

	StatusLoading = lipgloss.NewStyle().
			Foreground(Info).
			Bold(true)

	StatusCompleted = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	StatusError = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Banner at the bottom of a screen
	BannerStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Background(lipgloss.Color("#5C2B29")).
			Padding(0, 1)

	RetryStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Border(RoundedBorder).
			BorderForeground(Primary).
			Padding(0, 2)

	RetryPulseStyle = RetryStyle.
			Bold(true).
			BorderStyle(ThickBorder)

	RetryFadeStyle = RetryStyle.
			Foreground(Muted).
			BorderForeground(Faint)

	ProgressBarStyle = lipgloss.NewStyle().
				Foreground(Primary)

	ProgressEmptyStyle = lipgloss.NewStyle().
				Foreground(Muted)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(Background).
			Background(Primary).
			Padding(0, 2).
			Bold(true)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(Muted).
				Padding(0, 2)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Primary)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true).
			MarginTop(1)

	FocusedInputStyle = lipgloss.NewStyle().
				Border(RoundedBorder).
				BorderForeground(Primary).
				Padding(0, 1)
)

func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "listing", "fetching", "processing", "loading":
		return StatusLoading
	case "complete", "loaded":
		return StatusCompleted
	case "error":
		return StatusError
	default:
		return MutedStyle
	}
}
