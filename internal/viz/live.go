// Package viz animates a relaxation in the terminal: bubbles drift toward
// their axis targets frame by frame while a side pane tracks convergence.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"bubbleplot/internal/chart"
	"bubbleplot/internal/force"
)

const (
	canvasCols      = 72
	canvasRows      = 22
	stepsPerFrame   = 3
	historyCapacity = 240
)

var (
	canvasStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(34)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(11)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model steps the relaxation a few ticks per frame and renders the
// bubbles on a rune canvas.
type Model struct {
	title   string
	c       *chart.Chart
	cfg     force.Config
	stepper *chart.Stepper
	canvas  *Canvas
	fps     int
	running bool
	history []float64
	err     error
}

func NewModel(title string, c *chart.Chart, cfg force.Config, fps int) (Model, error) {
	stepper, err := c.Stepper(cfg)
	if err != nil {
		return Model{}, err
	}
	if fps <= 0 {
		fps = 30
	}
	return Model{
		title:   title,
		c:       c,
		cfg:     cfg,
		stepper: stepper,
		canvas:  NewCanvas(canvasCols, canvasRows, c.Width(), c.Height()),
		fps:     fps,
		running: true,
		history: make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.restart()
		}
		return m, nil

	case TickMsg:
		if m.running && !m.stepper.Done() {
			moved := 0.0
			for i := 0; i < stepsPerFrame && !m.stepper.Done(); i++ {
				d, _ := m.stepper.Step()
				moved += d
			}
			if len(m.history) == historyCapacity {
				m.history = m.history[1:]
			}
			m.history = append(m.history, moved)
		}
		return m, m.tick()
	}
	return m, nil
}

// restart puts every bubble back at the viewport center and begins a
// fresh relaxation, superseding the current one.
func (m *Model) restart() {
	m.c.SetRecords(m.c.Records())
	stepper, err := m.c.Stepper(m.cfg)
	if err != nil {
		m.err = err
		return
	}
	m.stepper = stepper
	m.history = m.history[:0]
	m.running = true
}

func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}

	m.canvas.Clear()
	for _, p := range m.c.Points() {
		m.canvas.DrawCircle(p.X, p.Y, p.R, bubbleRune(p))
	}

	header := headerStyle.Render(fmt.Sprintf("bubbleplot · %s", m.title))
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(m.statsView()),
	)
	help := helpStyle.Render("space pause · r restart · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.traceView(), help)
}

func (m Model) statsView() string {
	sel := m.c.Selections()
	rows := []struct {
		label, value string
	}{
		{"points", fmt.Sprintf("%d", len(m.c.Points()))},
		{"tick", fmt.Sprintf("%d", m.stepper.Ticks())},
		{"alpha", fmt.Sprintf("%.4f", m.stepper.Alpha())},
		{"size", sel.Size},
		{"color", sel.Color},
		{"x axis", sel.XAxis},
		{"y axis", sel.YAxis},
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(labelStyle.Render(row.label))
		sb.WriteString(valueStyle.Render(row.value))
		sb.WriteByte('\n')
	}
	if m.stepper.Done() {
		sb.WriteString(doneStyle.Render("settled"))
	} else if !m.running {
		sb.WriteString(valueStyle.Render("paused"))
	}
	return sb.String()
}

func (m Model) traceView() string {
	if len(m.history) < 2 {
		return ""
	}
	graph := asciigraph.Plot(m.history,
		asciigraph.Height(6),
		asciigraph.Width(90),
		asciigraph.Caption("movement per frame"),
	)
	return graphStyle.Render(graph)
}

// bubbleRune picks the glyph for one bubble: its label's first rune when
// present.
func bubbleRune(p *chart.Point) rune {
	for _, r := range p.Label {
		return r
	}
	return '●'
}
