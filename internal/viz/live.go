package viz

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"orbitsearch/internal/optim"
	"orbitsearch/internal/spectral"
)

const (
	canvasWidth  = 60
	canvasHeight = 22
	historyCap   = 600
)

// SnapshotMsg carries one optimizer iteration into the UI loop.
type SnapshotMsg optim.Snapshot

// DoneMsg reports the finished search.
type DoneMsg struct {
	Result optim.Result
	Err    error
}

// Model is the live search monitor: a phase portrait of the current
// candidate orbit next to the descent statistics and residual history.
type Model struct {
	system     string
	xDim, yDim int

	msgs      chan tea.Msg
	canvas    *Canvas
	residuals []float64
	latest    optim.Snapshot
	haveSnap  bool
	done      *DoneMsg
}

func NewModel(system string, xDim, yDim int) *Model {
	return &Model{
		system: system,
		xDim:   xDim,
		yDim:   yDim,
		msgs:   make(chan tea.Msg, 64),
		canvas: NewCanvas(canvasWidth, canvasHeight),
	}
}

// Observer adapts the model to optim.Options.Observer. When the UI cannot
// keep up, frames are dropped instead of stalling the search.
func (m *Model) Observer() func(optim.Snapshot) {
	return func(s optim.Snapshot) {
		select {
		case m.msgs <- SnapshotMsg(s):
		default:
		}
	}
}

// Finish hands the completed search result to the UI. The queue may still
// hold unread frames after the user quits, so stale snapshots are discarded
// until the done message fits; Finish never blocks the search goroutine.
func (m *Model) Finish(result optim.Result, err error) {
	msg := DoneMsg{Result: result, Err: err}
	for {
		select {
		case m.msgs <- msg:
			return
		default:
		}
		select {
		case <-m.msgs:
		default:
		}
	}
}

func (m *Model) listen() tea.Cmd {
	return func() tea.Msg { return <-m.msgs }
}

func (m *Model) Init() tea.Cmd {
	return m.listen()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		}
	case SnapshotMsg:
		m.latest = optim.Snapshot(msg)
		m.haveSnap = true
		m.residuals = append(m.residuals, logResidual(m.latest.GlobalResidual))
		if len(m.residuals) > historyCap {
			m.residuals = m.residuals[1:]
		}
		return m, m.listen()
	case DoneMsg:
		m.done = &msg
		if msg.Err == nil {
			m.latest = optim.Snapshot{
				Iteration:      msg.Result.Iterations,
				Trajectory:     msg.Result.Trajectory,
				Freq:           msg.Result.Freq,
				GlobalResidual: msg.Result.Residual,
			}
			m.haveSnap = true
		}
		return m, m.listen()
	}
	return m, nil
}

func (m *Model) View() string {
	m.canvas.Clear()
	if m.haveSnap && m.latest.Trajectory.Dim() > 0 {
		curve := spectral.ToTimeDomain(m.latest.Trajectory)
		m.canvas.PlotClosedCurve(curve, m.xDim, m.yDim)
	}
	canvasView := CanvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(HeaderStyle.Render(strings.ToUpper(m.system)+" ORBIT SEARCH") + "\n")
	s.WriteString(m.status() + "\n\n")

	if len(m.residuals) > 1 {
		chart := asciigraph.Plot(m.residuals,
			asciigraph.Height(5), asciigraph.Width(32), asciigraph.Caption("log10 residual"))
		s.WriteString(GraphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(LabelStyle.Render("Iteration") + ValueStyle.Render(fmt.Sprintf("%d", m.latest.Iteration)) + "\n")
	s.WriteString(LabelStyle.Render("Residual") + ValueStyle.Render(fmt.Sprintf("%.3e", m.latest.GlobalResidual)) + "\n")
	s.WriteString(LabelStyle.Render("Grad norm") + ValueStyle.Render(fmt.Sprintf("%.3e", m.latest.GradientNorm())) + "\n")
	s.WriteString(LabelStyle.Render("Frequency") + ValueStyle.Render(fmt.Sprintf("%.6f", m.latest.Freq)) + "\n")
	if m.haveSnap && m.latest.Freq != 0 {
		s.WriteString(LabelStyle.Render("Period") + ValueStyle.Render(fmt.Sprintf("%.6f", 2*math.Pi/m.latest.Freq)) + "\n")
	}
	s.WriteString(HelpStyle.Render("\n" + Separator(20) + "\nQ:Quit"))

	statsView := StatsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

func (m *Model) status() string {
	if m.done == nil {
		return StatusRunning.Render("SEARCHING")
	}
	if m.done.Err != nil {
		return StatusFailed.Render("FAILED: " + m.done.Err.Error())
	}
	switch m.done.Result.Status {
	case optim.Converged:
		return StatusDone.Render("CONVERGED")
	case optim.IterationLimit:
		return StatusFailed.Render("ITERATION LIMIT")
	default:
		return StatusFailed.Render("SOLVER FAILURE")
	}
}

func logResidual(v float64) float64 {
	if v <= 0 {
		return -16
	}
	return math.Log10(v)
}
