package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl32"

	"oceansandbox/internal/events"
	"oceansandbox/internal/gadgets"
	"oceansandbox/internal/ocean"
	"oceansandbox/internal/params"
	"oceansandbox/internal/world"
)

const (
	eventLines       = 4
	chromeLines      = 3
	panStep          = float32(10)
	snapHalfWidth    = float32(20)
	heatBurstSeconds = float32(1)
	heatRate         = float32(20000)
	toolRadius       = float32(1)
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5fa8e8"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#cccccc"))
	eventStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0a030"))
	footerStyle = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#888888"))
)

var gadgetKeys = map[string]gadgets.Type{
	"1": gadgets.TypeImpactBomb,
	"2": gadgets.TypeTimerBomb,
	"3": gadgets.TypeRCBomb,
	"4": gadgets.TypeAntiMatterBomb,
	"5": gadgets.TypePhysicsProbe,
}

type tickMsg time.Time

// eventLog keeps the newest event lines. It is shared by every copy of the
// model so bus handlers can append to it.
type eventLog struct {
	lines []string
	probe string
}

func (l *eventLog) add(line string) {
	l.lines = append(l.lines, line)
	if len(l.lines) > eventLines {
		l.lines = l.lines[len(l.lines)-eventLines:]
	}
}

type model struct {
	world   *world.World
	feed    *eventLog
	width   int
	height  int
	centerX float32
	cursor  mgl32.Vec2
	gadget  gadgets.Type
	paused  bool
	waving  bool
	ready   bool
}

func newModel(w *world.World) model {
	l := &eventLog{}
	w.Bus().SubscribeAll(func(e events.Event) {
		if e.Kind == events.KindPhysicsProbeReading {
			l.probe = e.String()
			return
		}
		l.add(fmt.Sprintf("%7.2fs %s", w.SimulationTime(), e))
	})
	log.Printf("TUI model created")
	return model{
		world:  w,
		feed:   l,
		cursor: mgl32.Vec2{0, 1},
		gadget: gadgets.TypeTimerBomb,
	}
}

func (m model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/64, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		log.Printf("Window resized: %dx%d", m.width, m.height)

	case tickMsg:
		m.step(time.Time(msg))
		return m, tickCmd()
	}
	return m, nil
}

// step advances the world one fixed step unless paused.
func (m *model) step(now time.Time) {
	if m.paused {
		return
	}
	if m.waving {
		pos := m.cursor
		m.world.AdjustOceanSurfaceTo(&pos)
	}
	m.world.Update(now)
}

func (m model) handleKey(key string) (tea.Model, tea.Cmd) {
	if kind, ok := gadgetKeys[key]; ok {
		m.gadget = kind
		return m, nil
	}
	switch key {
	case "q", "ctrl+c", "esc":
		log.Printf("User requested quit via key: %s", key)
		return m, tea.Quit
	case " ":
		m.paused = !m.paused
	case "left", "h":
		m.cursor[0] -= toolRadius
	case "right", "l":
		m.cursor[0] += toolRadius
	case "up", "k":
		m.cursor[1] += toolRadius
	case "down", "j":
		m.cursor[1] -= toolRadius
	case "[":
		m.centerX -= panStep
	case "]":
		m.centerX += panStep
	case "enter":
		var result gadgets.ToggleResult
		if m.gadget == gadgets.TypePhysicsProbe {
			result = m.world.TogglePhysicsProbeAt(m.cursor)
		} else {
			result = m.world.ToggleGadgetAt(m.gadget, m.cursor)
		}
		if result == gadgets.ToggleNoOp {
			m.feed.add(fmt.Sprintf("no ship point near (%.0f, %.0f)", m.cursor.X(), m.cursor.Y()))
		}
	case "t":
		m.world.TriggerTsunami()
	case "r":
		m.world.TriggerRogueWave()
	case "g":
		m.world.TriggerStorm()
	case "d":
		m.world.DetonateRCBombs()
	case "a":
		m.world.DetonateAntiMatterBombs()
	case "x":
		m.world.DestroyAt(m.cursor, toolRadius)
	case "f":
		m.world.HeatBlasterAt(m.cursor, 2*toolRadius, heatRate*heatBurstSeconds/params.SimulationStepTimeDuration)
	case "s":
		m.world.ApplyThanosSnap(m.cursor.X()-snapHalfWidth, m.cursor.X()+snapHalfWidth)
	case "w":
		m.waving = !m.waving
		if !m.waving {
			m.world.AdjustOceanSurfaceTo(nil)
		}
	}
	return m, nil
}

func (m model) View() string {
	if !m.ready || m.width == 0 {
		return "Starting ocean..."
	}

	c := newCanvas(m.width, max(m.height-chromeLines-eventLines, 3), m.centerX)
	left, right := c.visibleX()
	m.world.Upload(world.RenderSinks{Ocean: c, Ship: c, Gadgets: c}, left, right, ocean.RenderDetailBasic)
	c.markCursor(m.cursor)

	var b strings.Builder
	b.WriteString(titleStyle.Render("ocean sandbox"))
	b.WriteString("  ")
	b.WriteString(statusStyle.Render(m.status()))
	b.WriteByte('\n')
	b.WriteString(c.render())
	b.WriteByte('\n')
	for i := 0; i < eventLines; i++ {
		line := ""
		if i < len(m.feed.lines) {
			line = m.feed.lines[i]
		}
		b.WriteString(eventStyle.Render(line))
		b.WriteByte('\n')
	}
	b.WriteString(footerStyle.Render("q quit | space pause | 1-5 gadget, enter toggle | arrows cursor | [ ] pan | t r g waves | d a detonate | x smash f heat s snap w wave"))
	return b.String()
}

func (m model) status() string {
	w := m.world
	s := fmt.Sprintf("t=%.1fs  gadget: %s  wind %.0f km/h  gadgets %d  broken %d",
		w.SimulationTime(), m.gadget, w.Wind().CurrentSpeed().X(),
		w.Ship().Gadgets().Count(), w.Ship().BrokenSprings())
	if w.Wind().IsStorming() {
		s += "  storm"
	}
	if w.Ocean().HasTsunami() {
		s += "  tsunami"
	}
	if w.Ocean().HasRogueWave() {
		s += "  rogue wave"
	}
	if n := w.OceanDisturbances(); n > 0 {
		s += fmt.Sprintf("  tsunamis %d", n)
	}
	if m.paused {
		s += "  PAUSED"
	}
	if w.Ship().Gadgets().HasPhysicsProbe() && m.feed.probe != "" {
		s += "  " + m.feed.probe
	}
	return s
}
