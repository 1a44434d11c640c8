/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dpaq7/forge-steel-summoner-sub001/internal/engine"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/parser"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/session"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/summoner"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	stateBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(1, 2)

	logBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1)

	autocompleteStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#F25D94"))
)

type suggestion string

func (s suggestion) Title() string       { return string(s) }
func (s suggestion) Description() string { return "" }
func (s suggestion) FilterValue() string { return string(s) }

type replModel struct {
	app         *session.Session
	textInput   textinput.Model
	viewport    viewport.Model
	suggestions list.Model
	history     []string
	historyIdx  int
	logContent  string
	width       int
	height      int
	heroID      string
	showList    bool
}

func newREPLModel(app *session.Session, heroID string) replModel {
	ti := textinput.New()
	ti.Placeholder = "Enter command (e.g., summon demon_razor)..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60

	vp := viewport.New(0, 0)
	vp.SetContent("Type 'hint' for what to do next, 'help' for commands, 'exit' to quit.")

	// Configure a minimalist list for autocomplete
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetHeight(1)
	delegate.SetSpacing(0)
	sugList := list.New([]list.Item{}, delegate, 50, 7) // Show up to 7 items
	sugList.SetShowTitle(false)
	sugList.SetShowStatusBar(false)
	sugList.SetFilteringEnabled(false) // We filter manually
	sugList.SetShowHelp(false)

	return replModel{
		app:         app,
		textInput:   ti,
		viewport:    vp,
		suggestions: sugList,
		history:     []string{},
		historyIdx:  -1,
		logContent:  "Type 'hint' for what to do next, 'help' for commands, 'exit' to quit.",
		heroID:      heroID,
	}
}

func (m *replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *replModel) updateSuggestions() {
	var items []list.Item
	val := m.textInput.Value()
	m.app.View(func(state *engine.GameState) {
		for _, c := range completions(val, state) {
			items = append(items, suggestion(c))
		}
	})

	m.suggestions.SetItems(items)
	m.showList = len(items) > 0
	if m.showList {
		h := len(items)
		if h > 10 {
			h = 10
		}
		if h < 4 {
			h = 4
		}
		m.suggestions.SetHeight(h)
		m.suggestions.ResetSelected()
	}
}

// completions proposes whole input lines: keywords first, then the ids that
// fit the keyword's next argument.
func completions(val string, state *engine.GameState) []string {
	if strings.TrimSpace(val) == "" {
		return nil
	}
	fields := strings.Fields(strings.ToLower(val))
	trailing := strings.HasSuffix(val, " ")

	var out []string
	if len(fields) == 1 && !trailing {
		for _, k := range append(parser.Keywords(), "exit", "quit") {
			if strings.HasPrefix(k, fields[0]) && k != fields[0] {
				out = append(out, k+" ")
			}
		}
		return out
	}

	prefix := ""
	base := val
	if !trailing {
		prefix = fields[len(fields)-1]
		base = val[:len(val)-len(prefix)]
	}
	for _, c := range argumentCandidates(fields, trailing, state) {
		if strings.HasPrefix(strings.ToLower(c), prefix) && !strings.EqualFold(c, prefix) {
			out = append(out, base+c)
		}
	}
	return out
}

func argumentCandidates(fields []string, trailing bool, state *engine.GameState) []string {
	if state == nil || state.Hero == nil {
		return nil
	}
	pos := len(fields)
	if !trailing {
		pos--
	}
	c := state.Hero

	templates := func() []string {
		var ids []string
		for _, t := range state.Portfolio.Templates() {
			ids = append(ids, t.ID)
		}
		return ids
	}
	squads := func() []string {
		var ids []string
		for _, s := range c.Squads {
			ids = append(ids, s.ID)
		}
		return ids
	}
	minions := func() []string {
		var ids []string
		for _, s := range c.Squads {
			for _, mm := range s.Members {
				if mm.IsAlive {
					ids = append(ids, mm.ID)
				}
			}
		}
		return ids
	}

	switch fields[0] {
	case "summon", "check", "show":
		if pos == 1 {
			return templates()
		}
		if fields[0] == "summon" && pos == 2 {
			return []string{"into ", "free"}
		}
		if fields[0] == "summon" && pos == 3 && fields[2] == "into" {
			return squads()
		}
	case "damage", "heal":
		if pos == 1 {
			return append(squads(), "champion", "fixture")
		}
	case "sacrifice":
		return minions()
	case "mark":
		if pos == 1 {
			return []string{"act ", "move "}
		}
		if pos == 2 {
			return minions()
		}
	case "champion":
		if pos == 1 {
			return []string{"summon", "recovery", "action", "temp "}
		}
	case "fixture":
		if pos == 1 {
			return []string{"summon", "dismiss"}
		}
	case "combat":
		if pos == 1 {
			return []string{"start", "end"}
		}
		if pos == 2 {
			return templates()
		}
	case "turn":
		if pos == 1 {
			return templates()
		}
	case "formation":
		if pos == 1 {
			var names []string
			for _, f := range summoner.Formations {
				names = append(names, string(f))
			}
			return names
		}
	case "ooc":
		if pos == 1 {
			return []string{"summon ", "dismiss ", "task "}
		}
		if pos == 2 && fields[1] == "summon" {
			return templates()
		}
		if pos == 2 {
			var ids []string
			for _, mm := range c.OutOfCombat.Minions {
				ids = append(ids, mm.ID)
			}
			return ids
		}
	case "help":
		if pos == 1 {
			return parser.Keywords()
		}
	}
	return nil
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		lsCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyUp:
			if m.showList {
				m.suggestions, lsCmd = m.suggestions.Update(msg)
			} else {
				if len(m.history) > 0 {
					if m.historyIdx == -1 {
						m.historyIdx = len(m.history) - 1
					} else if m.historyIdx > 0 {
						m.historyIdx--
					}
					m.textInput.SetValue(m.history[m.historyIdx])
					m.updateSuggestions()
				}
			}

		case tea.KeyDown:
			if m.showList {
				m.suggestions, lsCmd = m.suggestions.Update(msg)
			} else {
				if len(m.history) > 0 && m.historyIdx != -1 {
					if m.historyIdx < len(m.history)-1 {
						m.historyIdx++
						m.textInput.SetValue(m.history[m.historyIdx])
					} else {
						m.historyIdx = -1
						m.textInput.SetValue("")
					}
					m.updateSuggestions()
				}
			}

		case tea.KeyTab:
			if m.showList {
				if i, ok := m.suggestions.SelectedItem().(suggestion); ok {
					m.textInput.SetValue(string(i))
					m.textInput.SetCursor(len(string(i)))
					m.updateSuggestions()
				}
			}

		case tea.KeyEnter:
			val := strings.TrimSpace(m.textInput.Value())
			if val == "exit" || val == "quit" {
				return m, tea.Quit
			}

			if val != "" {
				// Prevent duplicate history entries
				if len(m.history) == 0 || m.history[len(m.history)-1] != val {
					m.history = append(m.history, val)
				}
				m.historyIdx = -1
				m.textInput.SetValue("")
				m.updateSuggestions()

				m.logContent += fmt.Sprintf("\n\n> %s\n", val)
				evt, err := m.app.Execute(val)
				if err != nil {
					m.logContent += fmt.Sprintf("Error: %v", err)
				} else if evt != nil {
					m.logContent += evt.Message() + "\n"
				}

				m.viewport.SetContent(m.logContent)
				m.viewport.GotoBottom()
			}
		default:
			// Normal typing
			m.textInput, tiCmd = m.textInput.Update(msg)
			m.updateSuggestions()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 30 // Initial conservative estimate
		if m.viewport.Height < 5 {
			m.viewport.Height = 5
		}
		m.suggestions.SetWidth(msg.Width - 6)
	}

	m.viewport, vpCmd = m.viewport.Update(msg)

	// Calculate accurate heights for dynamic components
	titleH := lipgloss.Height(titleStyle.Render("Dummy"))
	stateH := lipgloss.Height(m.renderState())
	inputH := 1

	listAreaHeight := 0
	if m.showList {
		listAreaHeight = m.suggestions.Height() + 2 // +2 for autocompleteStyle borders
	}

	infoH := lipgloss.Height(infoStyle.Render("Dummy"))
	paddingH := 7

	// Total fixed overhead: title + state + input + listArea + info + padding + spacing
	overhead := titleH + stateH + inputH + listAreaHeight + infoH + paddingH + 4

	m.viewport.Height = m.height - overhead
	if m.viewport.Height < 4 {
		m.viewport.Height = 4
	}

	return m, tea.Batch(tiCmd, vpCmd, lsCmd)
}

func (m *replModel) renderState() string {
	var text string
	m.app.View(func(state *engine.GameState) {
		text = armySummary(state)
	})
	return stateBoxStyle.Width(m.width - 4).Render(text)
}

// armySummary renders the hero line, essence and every summoned unit.
func armySummary(state *engine.GameState) string {
	if state == nil || state.Hero == nil {
		return "No hero loaded."
	}
	c := state.Hero

	var b strings.Builder
	fmt.Fprintf(&b, "%s  L%d %s (%s)  Stamina %d/%d\n", c.Name, c.Level, c.Circle, c.Formation, c.CurrentStamina, c.MaxStamina)
	if c.InCombat {
		fmt.Fprintf(&b, "Round %d  Essence %d★", c.Round, c.Ledger.Balance)
		if state.PendingReduction > 0 {
			fmt.Fprintf(&b, " (-%d on next summon)", state.PendingReduction)
		}
		b.WriteString("\n")
	} else {
		fmt.Fprintf(&b, "Out of combat  Victories %d  XP %d\n", c.Victories, c.XP)
	}

	if len(c.Squads) == 0 {
		b.WriteString("\nNo squads.")
	}
	for _, s := range c.Squads {
		var ids []string
		for _, mm := range s.Members {
			mark := ""
			if mm.HasActed {
				mark += "*"
			}
			if mm.HasMoved {
				mark += "~"
			}
			ids = append(ids, mm.ID+mark)
		}
		fmt.Fprintf(&b, "\n - %s (%s): %d/%d [%s]", s.ID, s.TemplateID, s.CurrentStamina, s.MaxStamina, strings.Join(ids, ", "))
	}
	if f := c.Fixture; f != nil && f.IsActive {
		fmt.Fprintf(&b, "\n Fixture %s: %d/%d", f.TemplateID, f.CurrentStamina, f.MaxStamina)
	}
	if ch := c.Champion; ch != nil && ch.IsAlive {
		fmt.Fprintf(&b, "\n Champion %s: %d/%d", ch.Name, ch.CurrentStamina, ch.MaxStamina)
		if ch.TemporaryStamina > 0 {
			fmt.Fprintf(&b, " +%d temp", ch.TemporaryStamina)
		}
	}
	for _, mm := range c.OutOfCombat.Minions {
		fmt.Fprintf(&b, "\n Out of combat %s (%s)", mm.ID, mm.Name)
		if mm.Task != "" {
			fmt.Fprintf(&b, ": %s", mm.Task)
		}
	}

	return b.String()
}

func (m *replModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	title := titleStyle.Render(fmt.Sprintf(" Summoner | %s ", m.heroID))
	stateBox := m.renderState()
	logBox := logBoxStyle.Width(m.width - 4).Render(m.viewport.View())

	var inputArea string
	if m.showList {
		inputArea = fmt.Sprintf("%s\n%s", m.textInput.View(), autocompleteStyle.Render(m.suggestions.View()))
	} else {
		inputArea = m.textInput.View()
	}

	mainView := lipgloss.JoinVertical(lipgloss.Left,
		title,
		stateBox,
		logBox,
		"\n",
		inputArea,
		infoStyle.Render("(esc to quit, tab to complete, up/down history)"),
	)

	return mainView + strings.Repeat("\n", 7)
}

// RunTUI drives a hero session from an interactive terminal.
func RunTUI(app *session.Session, heroID string) error {
	m := newREPLModel(app, heroID)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
