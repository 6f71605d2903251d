// Package tui provides a terminal live view that replays a completed
// three-variant run, streaming the coherence and purity traces.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// Run holds the precomputed traces the viewer replays.
type Run struct {
	Times             []float64
	BaselineCoherence []float64
	SDCRCoherence     []float64
	Purity            []float64
}

type model struct {
	run    Run
	idx    int
	paused bool
	speed  int // points advanced per tick
	width  int
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// NewProgram wraps the run in a bubbletea program.
func NewProgram(run Run) *tea.Program {
	return tea.NewProgram(model{run: run, speed: 2, width: 80})
}

func (m model) Init() tea.Cmd { return tick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.idx = 0
			m.paused = false
		case "+", "=":
			if m.speed < 16 {
				m.speed *= 2
			}
		case "-":
			if m.speed > 1 {
				m.speed /= 2
			}
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tickMsg:
		if !m.paused && m.idx < len(m.run.Times)-1 {
			m.idx += m.speed
			if m.idx > len(m.run.Times)-1 {
				m.idx = len(m.run.Times) - 1
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m model) View() string {
	if len(m.run.Times) == 0 {
		return "no data\n"
	}

	var b strings.Builder
	b.WriteString(cyan.Render("sdcr live view") + "\n\n")

	end := m.idx + 1
	width := m.width - 10
	if width < 20 {
		width = 20
	}
	if width > 90 {
		width = 90
	}

	graph := asciigraph.Plot(window(m.run.BaselineCoherence[:end], width),
		asciigraph.Height(8),
		asciigraph.Width(width),
		asciigraph.Caption("coherence |rho01| (baseline)"),
	)
	b.WriteString(graph + "\n\n")

	graph = asciigraph.Plot(window(m.run.SDCRCoherence[:end], width),
		asciigraph.Height(8),
		asciigraph.Width(width),
		asciigraph.Caption("coherence |rho01| (sdcr)"),
	)
	b.WriteString(graph + "\n\n")

	i := m.idx
	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		dim.Render("t:"), green.Render(fmt.Sprintf("%6.3f", m.run.Times[i])),
		dim.Render("purity:"), green.Render(fmt.Sprintf("%.6f", m.run.Purity[i])),
		dim.Render("speed:"), yellow.Render(fmt.Sprintf("%dx", m.speed)),
	))
	status := "running"
	if m.paused {
		status = "paused"
	}
	if i == len(m.run.Times)-1 {
		status = "done"
	}
	b.WriteString(dim.Render(fmt.Sprintf("[%s]  space pause · r restart · +/- speed · q quit", status)) + "\n")
	return b.String()
}

// window keeps the last w samples so the graph scrolls once full.
func window(values []float64, w int) []float64 {
	if len(values) <= w {
		return values
	}
	return values[len(values)-w:]
}
