package tui

import "github.com/charmbracelet/lipgloss"

func (m Model) renderBanner() string {
	logo := `
██████╗  █████╗ ███╗   ██╗██╗  ██╗
██╔══██╗██╔══██╗████╗  ██║██║ ██╔╝
██║  ██║███████║██╔██╗ ██║█████╔╝
██║  ██║██╔══██║██║╚██╗██║██╔═██╗
██████╔╝██║  ██║██║ ╚████║██║  ██╗
╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═══╝╚═╝  ╚═╝ `

	theme := PurpleTheme()
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Primary)).
		Bold(true).
		Align(lipgloss.Center)

	// Small terminals only get the title line.
	if m.height > 0 && m.height < 36 {
		return style.Render("dankimage " + m.version)
	}

	subtitle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Subtle)).
		MarginBottom(1).
		Render("image builder " + m.version)

	return lipgloss.JoinVertical(lipgloss.Center, style.Render(logo), subtitle)
}
