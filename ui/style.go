package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Colorize applies the given color to the text using lipgloss.
// color is the decimal RGB value Discord embeds use.
func Colorize(text string, color int) string {
	hexColor := fmt.Sprintf("#%06x", color)

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor))

	return style.Render(text)
}
