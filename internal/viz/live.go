package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/embersim/internal/camera"
	"github.com/san-kum/embersim/internal/palette"
	"github.com/san-kum/embersim/internal/render"
	"github.com/san-kum/embersim/internal/sim"
)

const (
	PanelWidth      = 40
	historyCapacity = 600

	// FrameInterval throttles canvas redraws; the clock still ticks at its
	// own interval.
	FrameInterval = 33 * time.Millisecond

	energyStep = 0.05
	rotateStep = 10.0
)

type TickMsg time.Time

// Model is the bubbletea live view of a running fire.
type Model struct {
	clock    *sim.Clock
	camera   *camera.Camera
	renderer *render.Renderer
	surface  *TerminalSurface
	history  *sim.SeriesRecorder

	width, height      int
	homePitch, homeYaw float64
	running            bool
	lastTick           time.Time
	lastFrame          time.Time
	frame              string
	spawnHistory       []float64
	lastSpawned        uint64
}

func NewModel(clock *sim.Clock, cam *camera.Camera) *Model {
	m := &Model{
		clock:     clock,
		camera:    cam,
		renderer:  render.New(),
		surface:   NewTerminalSurface(80, 30),
		history:   sim.NewSeriesRecorder(historyCapacity),
		width:     80 + PanelWidth,
		height:    32,
		homePitch: cam.Pitch,
		homeYaw:   cam.Yaw,
		running:   true,
	}
	clock.AddObserver(m.history)
	return m
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.clock.Interval(), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.clock.Reset()
			m.lastSpawned = 0
		case "c":
			m.camera.Pitch, m.camera.Yaw = m.homePitch, m.homeYaw
		case "up":
			m.clock.SetEnergy(m.clock.Energy() + energyStep)
		case "down":
			m.clock.SetEnergy(m.clock.Energy() - energyStep)
		case "left", "h":
			m.camera.OnDragDelta(-rotateStep, 0)
		case "right", "l":
			m.camera.OnDragDelta(rotateStep, 0)
		case "k":
			m.camera.OnDragDelta(0, -rotateStep)
		case "j":
			m.camera.OnDragDelta(0, rotateStep)
		}
		m.redraw()
	case TickMsg:
		m.Advance(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

// Advance pumps the clock with the wall time since the previous tick and
// redraws when a frame is due.
func (m *Model) Advance(now time.Time) {
	if m.lastTick.IsZero() {
		m.lastTick = now
	}
	elapsed := now.Sub(m.lastTick)
	m.lastTick = now

	if m.running {
		m.clock.Pump(elapsed)
	}
	if now.Sub(m.lastFrame) >= FrameInterval {
		m.lastFrame = now
		m.sampleSpawns()
		m.redraw()
	}
}

func (m *Model) sampleSpawns() {
	spawned := m.clock.System().Spawned()
	m.spawnHistory = append(m.spawnHistory, float64(spawned-m.lastSpawned))
	if len(m.spawnHistory) > historyCapacity {
		m.spawnHistory = m.spawnHistory[len(m.spawnHistory)-historyCapacity:]
	}
	m.lastSpawned = spawned
}

func (m *Model) Resize(w, h int) {
	m.width, m.height = w, h
	cw := max(w-PanelWidth-4, 10)
	ch := max(h-2, 5)
	m.surface.Resize(cw, ch)
	m.redraw()
}

func (m *Model) redraw() {
	m.renderer.Draw(m.surface, m.camera, m.clock.System(), m.clock.Energy())
	m.frame = m.surface.Canvas.String()
}

func (m *Model) View() string {
	if m.frame == "" {
		m.redraw()
	}
	canvasView := canvasStyle.Render(m.frame)

	sys := m.clock.System()
	e := m.clock.Energy()
	pal := palette.At(e)

	var s strings.Builder
	s.WriteString(GradientText("EMBERSIM", pal.Hot, pal.Tip) + "\n")
	if m.running {
		s.WriteString(StatusRunning.Render("BURNING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.2f", e)) + "\n")
	s.WriteString(EnergyBar(e, PanelWidth-6) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d / %d", sys.Len(), sys.MaxParticles())) + "\n")
	s.WriteString(labelStyle.Render("Spawned") + valueStyle.Render(fmt.Sprintf("%d", sys.Spawned())) + "\n")
	s.WriteString(labelStyle.Render("Camera") + valueStyle.Render(fmt.Sprintf("%.1f / %.1f", m.camera.Pitch, m.camera.Yaw)) + "\n")

	if len(m.history.Series) > 1 {
		chart := asciigraph.Plot(m.history.Series, asciigraph.Height(5), asciigraph.Width(PanelWidth-12), asciigraph.Caption("Population"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	s.WriteString(labelStyle.Render("Spawns") + SparklineChart(m.spawnHistory, PanelWidth-18) + "\n")

	s.WriteString(helpStyle.Render("─────────────────────\n↑↓:Energy ←→/hjkl:Rotate\nSP:Pause R:Reset C:Camera Q:Quit"))
	panel := panelStyle.Render(s.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panel)
}

// Run starts the live view and blocks until the user quits.
func Run(clock *sim.Clock, cam *camera.Camera) error {
	_, err := tea.NewProgram(NewModel(clock, cam), tea.WithAltScreen()).Run()
	return err
}
