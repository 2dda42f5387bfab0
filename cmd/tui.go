package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"curseforge-mod-tracker/db"
	"curseforge-mod-tracker/discord"
	"curseforge-mod-tracker/logger"
	"curseforge-mod-tracker/tracker"
	"curseforge-mod-tracker/ui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	Long:  `Launch an interactive TUI showing tracked mods and recent activity.`,
	Run: func(_ *cobra.Command, _ []string) {
		runTUI()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// modRow is the dashboard's view of a tracked mod
type modRow struct {
	ID           uint
	CurseforgeID int64
	Name         string
	Game         string
	LastUpdated  string
	WebhookCount int
}

// Model represents the state of the TUI
type Model struct {
	t             *tracker.Tracker
	mods          []modRow
	activities    []db.Activity
	selectedIndex int
	loading       bool
	checking      bool
	error         string
	message       string
	spinner       spinner.Model
	width         int
	height        int
}

func initialModel(t *tracker.Tracker) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		t:       t,
		loading: true,
		spinner: s,
		width:   80,
		height:  24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadData(),
	)
}

// Message types
type dataLoadedMsg struct {
	mods       []modRow
	activities []db.Activity
}

type errorMsg string

type checkDoneMsg struct {
	message string
}

type clearMessageMsg struct{}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case dataLoadedMsg:
		m.mods = msg.mods
		m.activities = msg.activities
		m.loading = false
		if m.selectedIndex >= len(m.mods) {
			m.selectedIndex = 0
		}
	case errorMsg:
		m.error = string(msg)
		m.loading = false
		m.checking = false
	case checkDoneMsg:
		m.checking = false
		m.message = msg.message
		return m, tea.Batch(
			m.loadData(),
			tea.Tick(3*time.Second, func(time.Time) tea.Msg {
				return clearMessageMsg{}
			}),
		)
	case clearMessageMsg:
		m.message = ""
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case "down", "j":
		if m.selectedIndex < len(m.mods)-1 {
			m.selectedIndex++
		}
	case "r":
		m.loading = true
		return m, m.loadData()
	case "c":
		if !m.checking && len(m.mods) > 0 {
			m.checking = true
			return m, m.checkMod(m.mods[m.selectedIndex].ID)
		}
	case "a":
		if !m.checking {
			m.checking = true
			return m, m.checkAllMods()
		}
	}
	return m, nil
}

func (m Model) loadData() tea.Cmd {
	return func() tea.Msg {
		mods, err := m.t.Mods()
		if err != nil {
			return errorMsg(fmt.Sprintf("Failed to load mods: %v", err))
		}
		activities, err := m.t.Activities(8)
		if err != nil {
			return errorMsg(fmt.Sprintf("Failed to load activities: %v", err))
		}

		rows := make([]modRow, len(mods))
		for i, mod := range mods {
			rows[i] = modRow{
				ID:           mod.ID,
				CurseforgeID: mod.CurseforgeID,
				Name:         mod.Name,
				Game:         mod.GameName,
				LastUpdated:  discord.FormatReleaseDate(mod.LastUpdated),
				WebhookCount: len(mod.WebhookIDs),
			}
		}
		return dataLoadedMsg{mods: rows, activities: activities}
	}
}

func (m Model) checkMod(modID uint) tea.Cmd {
	return func() tea.Msg {
		update, err := m.t.CheckModUpdate(modID)
		if err != nil {
			return errorMsg(fmt.Sprintf("Update check failed: %v", err))
		}
		if update == nil {
			return checkDoneMsg{message: "Mod is up to date"}
		}
		if err := m.t.NotifyUpdate(*update); err != nil {
			return checkDoneMsg{message: fmt.Sprintf("Update found for %s, but notification failed: %v", update.Name, err)}
		}
		return checkDoneMsg{message: fmt.Sprintf("Update found for %s, webhooks notified", update.Name)}
	}
}

func (m Model) checkAllMods() tea.Cmd {
	return func() tea.Msg {
		updates, err := m.t.CheckAllMods()
		if err != nil {
			return errorMsg(fmt.Sprintf("Update check failed: %v", err))
		}
		notified := 0
		for _, update := range updates {
			if err := m.t.NotifyUpdate(update); err == nil {
				notified++
			}
		}
		return checkDoneMsg{message: fmt.Sprintf("Checked all mods: %d updates, %d notified", len(updates), notified)}
	}
}

func (m Model) View() string {
	if m.loading {
		return fmt.Sprintf("\n %s Loading...\n", m.spinner.View())
	}

	if m.error != "" {
		return fmt.Sprintf("Error: %s\n", m.error)
	}

	var output string
	output += renderHeader()
	output += "\n"

	if len(m.mods) == 0 {
		output += "  No mods tracked yet. Use 'track <curseforge-mod-id>' to add one.\n"
	}
	for i, mod := range m.mods {
		output += m.renderModRow(i, mod)
		output += "\n"
	}

	output += "\n" + renderActivityHeader() + "\n"
	if len(m.activities) == 0 {
		output += "  No activity recorded yet.\n"
	}
	for _, activity := range m.activities {
		output += fmt.Sprintf("  %s  %s\n",
			activity.Timestamp.Format("2006-01-02 15:04"),
			truncate(activity.Description, 70),
		)
	}

	output += "\n" + renderFooter()

	if m.checking {
		output += "\n" + fmt.Sprintf("%s Checking for updates...", m.spinner.View())
	}
	if m.message != "" {
		output += "\n" + ui.Colorize(m.message, discord.DefaultColor)
	}

	return output
}

func renderHeader() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Padding(0, 1)

	return headerStyle.Render(fmt.Sprintf("%-5s %-35s %-20s %-30s %s", "ID", "Mod Name", "Game", "Last Release", "Webhooks"))
}

func renderActivityHeader() string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Padding(0, 1).
		Render("Recent Activity")
}

func renderFooter() string {
	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Italic(true)

	return footerStyle.Render("↑/k: up  ↓/j: down  c: check selected  a: check all  r: refresh  q: quit")
}

func (m Model) renderModRow(index int, mod modRow) string {
	rowStyle := lipgloss.NewStyle().Padding(0, 1)
	if index == m.selectedIndex {
		rowStyle = rowStyle.
			Background(lipgloss.Color("8")).
			Bold(true)
	}

	row := fmt.Sprintf("%-5d %-35s %-20s %-30s %d",
		mod.ID,
		truncate(mod.Name, 33),
		truncate(mod.Game, 18),
		truncate(mod.LastUpdated, 28),
		mod.WebhookCount,
	)

	return rowStyle.Render(row)
}

func truncate(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}

func runTUI() {
	_, t, _ := bootstrap(".")

	m := initialModel(t)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Log.Fatalw("Failed to run dashboard", zap.Error(err))
	}
}
