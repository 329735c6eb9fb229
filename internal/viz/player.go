package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/dpendulum/internal/dynamo"
	"github.com/san-kum/dpendulum/internal/physics"
)

const (
	canvasCols = 60
	canvasRows = 24
	trailLen   = 150
	frameRate  = 60
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// PlayerModel animates precomputed trajectory samples.
type PlayerModel struct {
	samples  []dynamo.State
	energy   []float64
	interval float64
	idx      int
	running  bool
	canvas   *Canvas
}

// NewPlayerModel plays samples taken every interval seconds.
func NewPlayerModel(samples []dynamo.State, interval float64, c dynamo.Constants) PlayerModel {
	energy := make([]float64, len(samples))
	for k, s := range samples {
		energy[k] = physics.Energy(s, c)
	}
	return PlayerModel{
		samples:  samples,
		energy:   energy,
		interval: interval,
		running:  len(samples) > 0,
		canvas:   NewCanvas(canvasCols, canvasRows),
	}
}

func (m PlayerModel) Init() tea.Cmd {
	return tick()
}

func (m PlayerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			if m.running && m.idx >= len(m.samples)-1 {
				m.idx = 0
			}
		case "r":
			m.idx = 0
			m.running = len(m.samples) > 0
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		}
	case TickMsg:
		if m.running {
			m.idx++
			if m.idx >= len(m.samples)-1 {
				m.idx = max(0, len(m.samples)-1)
				m.running = false
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *PlayerModel) scrub(dir int) {
	if m.running {
		return
	}
	m.idx = max(0, min(m.idx+dir*frameRate, len(m.samples)-1))
}

// bobs returns the dot coordinates of both bobs for s.
func (m PlayerModel) bobs(s dynamo.State) (x1, y1, x2, y2 int) {
	w, h := m.canvas.Size()
	cx, cy := w/2, h/2
	length := float64(h)/4 - 1
	fx1 := float64(cx) + length*math.Sin(s.Theta1)
	fy1 := float64(cy) + length*math.Cos(s.Theta1)
	fx2 := fx1 + length*math.Sin(s.Theta2)
	fy2 := fy1 + length*math.Cos(s.Theta2)
	return int(math.Round(fx1)), int(math.Round(fy1)), int(math.Round(fx2)), int(math.Round(fy2))
}

func (m PlayerModel) draw() {
	m.canvas.Clear()
	if len(m.samples) == 0 {
		return
	}
	for k := max(0, m.idx-trailLen); k < m.idx; k++ {
		_, _, x2, y2 := m.bobs(m.samples[k])
		m.canvas.Set(x2, y2)
	}

	w, h := m.canvas.Size()
	cx, cy := w/2, h/2
	x1, y1, x2, y2 := m.bobs(m.samples[m.idx])
	m.canvas.DrawLine(cx, cy, x1, y1)
	m.canvas.DrawLine(x1, y1, x2, y2)
	m.canvas.DrawBob(x1, y1)
	m.canvas.DrawBob(x2, y2)
}

func (m PlayerModel) View() string {
	m.draw()
	canvasView := lipgloss.NewStyle().Padding(1, 2).Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(Title.Render("DOUBLE PENDULUM") + "\n\n")
	switch {
	case m.running:
		s.WriteString(StatusRunning.Render("PLAYING") + "\n\n")
	default:
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.samples) > 0 {
		x := m.samples[m.idx]
		rows := []Row{
			{"time", fmt.Sprintf("%.2fs", float64(m.idx)*m.interval)},
			{"theta1", fmt.Sprintf("%.3f", x.Theta1)},
			{"theta2", fmt.Sprintf("%.3f", x.Theta2)},
			{"p1", fmt.Sprintf("%.3f", x.P1)},
			{"p2", fmt.Sprintf("%.3f", x.P2)},
			{"energy", fmt.Sprintf("%.4f", m.energy[m.idx])},
		}
		for _, r := range rows {
			s.WriteString(MetricLabel.Render(r.Label) + MetricValue.Render(r.Value) + "\n")
		}
		if x.Flipped() {
			s.WriteString(StatusFailed.Render("flipped") + "\n")
		}
		s.WriteString("\n" + Sparkline(m.energy[:m.idx+1], 30) + "\n")
	}

	s.WriteString("\n" + KeyHint.Render("SP:Pause R:Restart\n[ ]:Scrub Q:Quit"))
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, s.String())
}
