// Package tui renders the snake in the terminal with bubbletea and lets the
// viewer change the speed or toggle the cell grid while it runs.
package tui

import (
	"fmt"
	"strings"
	"time"

	"snake-hamiltonian/game"
	"snake-hamiltonian/game/types"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type keyMap struct {
	Fast key.Binding
	Slow key.Binding
	Grid key.Binding
	Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fast, k.Slow, k.Grid, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultKeys = keyMap{
	Fast: key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "fast/normal")),
	Slow: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "slow/normal")),
	Grid: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grid")),
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

var (
	boardStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	headStyle  = lipgloss.NewStyle().Background(lipgloss.Color("10"))
	skipStyle  = lipgloss.NewStyle().Background(lipgloss.Color("11"))
	bodyStyle  = lipgloss.NewStyle().Background(lipgloss.Color("2"))
	tailStyle  = lipgloss.NewStyle().Background(lipgloss.Color("22"))
	goalStyle  = lipgloss.NewStyle().Background(lipgloss.Color("9"))
	gridStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	scoreStyle = lipgloss.NewStyle().Bold(true)
	winStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	loseStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

type tickMsg time.Time

// Model is the bubbletea model driving one game.
type Model struct {
	game     *game.Game
	speed    int
	drawGrid bool
	keys     keyMap
	help     help.Model
	last     game.Outcome
	err      error
}

func NewModel(g *game.Game, speed int, drawGrid bool) Model {
	return Model{
		game:     g,
		speed:    speed,
		drawGrid: drawGrid,
		keys:     defaultKeys,
		help:     help.New(),
		last:     g.Outcome(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(game.TickInterval(m.speed), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Fast):
			m.speed = game.ToggleFast(m.speed)
		case key.Matches(msg, m.keys.Slow):
			m.speed = game.ToggleSlow(m.speed)
		case key.Matches(msg, m.keys.Grid):
			m.drawGrid = !m.drawGrid
		}
		return m, nil

	case tickMsg:
		if m.last.Over {
			return m, nil
		}
		out, err := m.game.Tick()
		if err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.last = out
		if out.Over {
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  tick %d  speed %d  skips %d\n",
		scoreStyle.Render(fmt.Sprintf("Score: %d", m.last.Score)),
		m.last.Tick, m.speed, m.game.Skips())
	b.WriteString(boardStyle.Render(m.board()))
	b.WriteString("\n")

	if m.last.Over {
		if m.last.Reason == game.EndWin {
			b.WriteString(winStyle.Render("YOU WON!"))
		} else {
			b.WriteString(loseStyle.Render("GAME HAS ENDED"))
		}
		fmt.Fprintf(&b, " (%s)\n", m.last.Reason)
		sum := m.game.Stats().Summarize(game.EndWin.String())
		fmt.Fprintf(&b, "games %d  wins %d  best %d  avg %.1f\n",
			sum.Games, sum.Wins, sum.MaxScore, sum.AverageScore)
	}
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m Model) board() string {
	grid := m.game.Grid
	occupied := make(map[types.Point]lipgloss.Style, len(m.last.Body))
	for i, p := range m.last.Body {
		switch {
		case i == 0 && m.last.Skipped:
			occupied[p] = skipStyle
		case i == 0:
			occupied[p] = headStyle
		case i == len(m.last.Body)-1:
			occupied[p] = tailStyle
		default:
			occupied[p] = bodyStyle
		}
	}

	rows := make([]string, 0, grid.Height)
	for y := 0; y < grid.Height; y++ {
		var row strings.Builder
		for x := 0; x < grid.Width; x++ {
			p := types.Point{X: x, Y: y}
			if style, ok := occupied[p]; ok {
				row.WriteString(style.Render("  "))
				continue
			}
			if m.last.HasGoal && p == m.last.Goal {
				row.WriteString(goalStyle.Render("  "))
				continue
			}
			if m.drawGrid {
				row.WriteString(gridStyle.Render(" ·"))
			} else {
				row.WriteString("  ")
			}
		}
		rows = append(rows, row.String())
	}
	return strings.Join(rows, "\n")
}

// Err is the error that stopped the model, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) Speed() int {
	return m.speed
}

func (m Model) DrawGrid() bool {
	return m.drawGrid
}
