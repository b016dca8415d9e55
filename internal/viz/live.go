package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/ElliottSullingeFarrall/Solar-Sym/internal/orbit"
	"github.com/ElliottSullingeFarrall/Solar-Sym/internal/render"
	"github.com/ElliottSullingeFarrall/Solar-Sym/internal/sim"
)

const (
	canvasWidth     = 60
	canvasHeight    = 24
	historyCapacity = 600
	trailCapacity   = 400
)

type TickMsg time.Time

type point struct{ x, y int }

// Model drives the live terminal view: it owns the system, steps it a
// batch at a time on every tick, and draws bodies with orbit trails on a
// braille canvas.
type Model struct {
	sys     *orbit.System
	initial []orbit.Body // by-value copies for reset
	dt      float64
	batch   int // steps per tick

	canvas        *Canvas
	scale         float64 // canvas half-width, meters
	trails        map[string][]point
	energyHistory []float64
	running       bool
	showHelp      bool

	recording bool
	recorder  *render.Renderer
	gifPath   string
	saved     string
}

// NewModel builds the live view around an existing system. scale is the
// half-width of the visible region in meters.
func NewModel(sys *orbit.System, dt float64, stepsPerTick int, scale float64, gifPath string) Model {
	initial := make([]orbit.Body, 0, sys.Len())
	for _, st := range sys.Positions() {
		initial = append(initial, *sys.Body(st.Name))
	}
	return Model{
		sys:           sys,
		initial:       initial,
		dt:            dt,
		batch:         stepsPerTick,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		scale:         scale,
		trails:        make(map[string][]point),
		energyHistory: make([]float64, 0, historyCapacity),
		running:       true,
		gifPath:       gifPath,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
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
			m.reset()
		case "g":
			m.toggleRecording()
		case "+", "=":
			m.scale /= 1.5
			m.clearTrails()
		case "-", "_":
			m.scale *= 1.5
			m.clearTrails()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			for i := 0; i < m.batch; i++ {
				m.sys.Step(m.dt)
			}
			m.observe()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// observe records history and feeds the GIF recorder after a batch.
func (m *Model) observe() {
	m.energyHistory = append(m.energyHistory, m.sys.Energy())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}

	for _, b := range m.sys.Positions() {
		x, y := m.project(b.X)
		trail := append(m.trails[b.Name], point{x, y})
		if len(trail) > trailCapacity {
			trail = trail[1:]
		}
		m.trails[b.Name] = trail
	}

	if m.recording {
		m.recorder.OnFrame(sim.Frame{Time: m.sys.Time(), Bodies: m.sys.Positions()})
	}
}

func (m *Model) reset() {
	bodies := make([]*orbit.Body, len(m.initial))
	for i := range m.initial {
		b := m.initial[i]
		bodies[i] = &b
	}
	sys, err := orbit.New(bodies...)
	if err != nil {
		return
	}
	m.sys = sys
	m.energyHistory = m.energyHistory[:0]
	m.clearTrails()
}

func (m *Model) clearTrails() {
	for k := range m.trails {
		delete(m.trails, k)
	}
}

func (m *Model) toggleRecording() {
	if m.recording {
		if m.recorder.Frames() > 0 {
			if err := m.recorder.Save(m.gifPath); err == nil {
				m.saved = m.gifPath
			}
		}
		m.recording = false
		m.recorder = nil
		return
	}
	opts := render.DefaultOptions()
	opts.CanvasSize = m.scale
	m.recorder = render.New(opts)
	m.recording = true
	m.saved = ""
}

// project maps simulation coordinates to canvas sub-pixels, y up.
func (m *Model) project(v orbit.Vec) (int, int) {
	cw, ch := canvasWidth*2, canvasHeight*4
	x := (v.X/m.scale + 1) / 2 * float64(cw)
	y := (1 - v.Y/m.scale) / 2 * float64(ch)
	return int(x), int(y)
}

func (m *Model) draw() {
	m.canvas.Clear()
	for _, b := range m.sys.Positions() {
		for _, pt := range m.trails[b.Name] {
			m.canvas.Set(pt.x, pt.y)
		}
	}
	for _, b := range m.sys.Positions() {
		x, y := m.project(b.X)
		r := 0
		if b.Name == "sun" {
			r = 2
		}
		m.canvas.FillCircle(x, y, r)
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("SOLAR SYSTEM") + "\n")
	if m.running {
		s.WriteString("RUNNING\n\n")
	} else {
		s.WriteString("PAUSED\n\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(4),
			asciigraph.Width(28),
			asciigraph.Caption("total energy"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Day") + valueStyle.Render(fmt.Sprintf("%.0f", m.sys.Time()/sim.Day)) + "\n")
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d", m.sys.Len())) + "\n")
	s.WriteString(labelStyle.Render("View") + valueStyle.Render(fmt.Sprintf("%.0f Gm", m.scale/1e9)) + "\n")
	if m.recording {
		s.WriteString(labelStyle.Render("Recording") + valueStyle.Render(fmt.Sprintf("%d frames", m.recorder.Frames())) + "\n")
	} else if m.saved != "" {
		s.WriteString(labelStyle.Render("Saved") + valueStyle.Render(m.saved) + "\n")
	}

	s.WriteString(helpStyle.Render("\nSP:Pause R:Reset Q:Quit\nG:Record +/-:Zoom ?:Help"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔═══════════════════════════════════╗
║         KEYBOARD SHORTCUTS        ║
╠═══════════════════════════════════╣
║  Space  - Pause/Resume            ║
║  R      - Reset to initial state  ║
║  G      - Toggle GIF recording    ║
║  + / -  - Zoom in / out           ║
║  ?      - Toggle this help        ║
║  Q      - Quit                    ║
╚═══════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
