package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RowDoneMsg reports that done of total grid rows are finished.
type RowDoneMsg struct {
	Done, Total int
}

// ScanDoneMsg ends the scan view. Summary is shown when Err is nil.
type ScanDoneMsg struct {
	Err     error
	Summary []Row
}

// ScanModel shows the progress of a grid scan fed by RowDoneMsg.
type ScanModel struct {
	title    string
	total    int
	done     int
	started  time.Time
	last     time.Time
	rowTimes []float64
	finished bool
	err      error
	summary  []Row
	cancel   context.CancelFunc
	now      func() time.Time
}

// NewScanModel creates a progress view for total rows. cancel, if not nil,
// is called when the user quits before the scan ends.
func NewScanModel(title string, total int, cancel context.CancelFunc) ScanModel {
	now := time.Now()
	return ScanModel{
		title:   title,
		total:   total,
		started: now,
		last:    now,
		cancel:  cancel,
		now:     time.Now,
	}
}

// ProgressSender adapts a running program to a grid scan progress callback.
func ProgressSender(p *tea.Program) func(done, total int) {
	return func(done, total int) {
		p.Send(RowDoneMsg{Done: done, Total: total})
	}
}

func (m ScanModel) Init() tea.Cmd {
	return nil
}

func (m ScanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if !m.finished && m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	case RowDoneMsg:
		t := m.now()
		m.rowTimes = append(m.rowTimes, t.Sub(m.last).Seconds())
		m.last = t
		m.done = msg.Done
		if msg.Total > 0 {
			m.total = msg.Total
		}
	case ScanDoneMsg:
		m.finished = true
		m.err = msg.Err
		m.summary = msg.Summary
		return m, tea.Quit
	}
	return m, nil
}

func (m ScanModel) fraction() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

func (m ScanModel) View() string {
	var s strings.Builder
	s.WriteString(Title.Render(m.title) + "\n\n")

	switch {
	case m.err != nil:
		s.WriteString(StatusFailed.Render("FAILED") + " " + m.err.Error() + "\n")
	case m.finished:
		s.WriteString(StatusRunning.Render("DONE") + "\n")
	default:
		s.WriteString(StatusPaused.Render("SCANNING") + "\n")
	}

	s.WriteString(ProgressBar(m.fraction(), 40))
	s.WriteString(fmt.Sprintf(" %d/%d rows\n", m.done, m.total))
	s.WriteString(MetricLabel.Render("elapsed") + MetricValue.Render(m.last.Sub(m.started).Round(time.Millisecond).String()) + "\n")
	s.WriteString(MetricLabel.Render("row time") + Sparkline(m.rowTimes, 40) + "\n")

	if m.finished && m.err == nil && len(m.summary) > 0 {
		s.WriteString("\n" + Summary("Result", m.summary) + "\n")
	}
	if !m.finished {
		s.WriteString("\n" + KeyHint.Render("q: cancel"))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(s.String())
}
