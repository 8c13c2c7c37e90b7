// Package tui renders a running engine as a live text-grid view,
// grounded on the teacher's internal/tui/interactive.go (bubbletea
// tea.Model, tea.Tick-driven update loop, lipgloss-styled header/
// footer) — body positions are plotted as grid markers rather than the
// teacher's per-model hand-drawn pendulum/cartpole/drone glyphs, since
// the engine only knows generic rigid bodies.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rbody2d/engine/internal/engine"
)

const (
	gridWidth  = 70
	gridHeight = 20
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	bodyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is a tea.Model driving one engine's ticks and rendering its
// bodies on a fixed text grid centered on the origin.
type Model struct {
	eng         *engine.Engine
	name        string
	scale       float64
	paused      bool
	tickCount   int
	collisions  int
	warnings    int
	lastTickErr error
}

// NewModel constructs a live view over eng, scaling world units to grid
// cells by scale (grid cells per world unit).
func NewModel(name string, eng *engine.Engine, scale float64) Model {
	return Model{eng: eng, name: name, scale: scale}
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		}
		return m, nil
	case tickMsg:
		if !m.paused && m.lastTickErr == nil {
			events, err := m.eng.Tick()
			if err != nil {
				m.lastTickErr = err
			} else {
				m.tickCount++
				m.collisions += len(events.Collisions)
				m.warnings += len(events.Warnings)
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	grid := make([][]rune, gridHeight)
	for i := range grid {
		grid[i] = make([]rune, gridWidth)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	cx, cy := gridWidth/2, gridHeight/2
	for _, s := range m.eng.State() {
		col := cx + int(s.X*m.scale)
		row := cy - int(s.Y*m.scale)
		if row >= 0 && row < gridHeight && col >= 0 && col < gridWidth {
			grid[row][col] = runeForName(s.Name)
		}
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf(" rbody2d — %s ", m.name)))
	sb.WriteString("\n")
	for _, row := range grid {
		sb.WriteString(bodyStyle.Render(string(row)))
		sb.WriteString("\n")
	}

	status := fmt.Sprintf("tick %d  collisions %d", m.tickCount, m.collisions)
	sb.WriteString(dimStyle.Render(status))
	if m.warnings > 0 {
		sb.WriteString("  " + warnStyle.Render(fmt.Sprintf("warnings %d", m.warnings)))
	}
	if m.lastTickErr != nil {
		sb.WriteString("  " + warnStyle.Render("fatal: "+m.lastTickErr.Error()))
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("space: pause   q: quit"))
	sb.WriteString("\n")
	return sb.String()
}

func runeForName(name string) rune {
	if len(name) == 0 {
		return 'o'
	}
	return rune(name[0])
}
