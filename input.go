package main

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"oceansandbox/internal/gadgets"
)

// tool is what the left mouse button does.
type tool int

const (
	toolImpactBomb tool = iota
	toolTimerBomb
	toolRCBomb
	toolAntiMatterBomb
	toolPhysicsProbe
	toolWave
	toolDestroy
	toolHeatBlaster
	toolThanosSnap
	toolCount
)

var toolNames = [toolCount]string{
	"impact bomb",
	"timer bomb",
	"RC bomb",
	"anti-matter bomb",
	"physics probe",
	"wave maker",
	"smash",
	"heat blaster",
	"thanos snap",
}

var toolKeys = [toolCount]ebiten.Key{
	ebiten.KeyDigit1,
	ebiten.KeyDigit2,
	ebiten.KeyDigit3,
	ebiten.KeyDigit4,
	ebiten.KeyDigit5,
	ebiten.KeyDigit6,
	ebiten.KeyDigit7,
	ebiten.KeyDigit8,
	ebiten.KeyDigit9,
}

func (t tool) String() string { return toolNames[t] }

// gadgetType returns the gadget a toggle tool places.
func (t tool) gadgetType() (gadgets.Type, bool) {
	switch t {
	case toolImpactBomb:
		return gadgets.TypeImpactBomb, true
	case toolTimerBomb:
		return gadgets.TypeTimerBomb, true
	case toolRCBomb:
		return gadgets.TypeRCBomb, true
	case toolAntiMatterBomb:
		return gadgets.TypeAntiMatterBomb, true
	case toolPhysicsProbe:
		return gadgets.TypePhysicsProbe, true
	}
	return 0, false
}

const (
	thanosSnapGrowth    = float32(1.0)
	thanosSnapMaxSpread = float32(60.0)
)

// mouseState is one frame of pointer input, real or scripted.
type mouseState struct {
	pos          mgl32.Vec2
	pressed      bool
	justPressed  bool
	justReleased bool
}

// handleInput processes keyboard shortcuts and applies the current tool.
func (g *Game) handleInput() {
	for t, key := range toolKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.selectTool(tool(t))
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		g.world.TriggerTsunami()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.world.TriggerRogueWave()
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		g.world.TriggerStorm()
	case inpututil.IsKeyJustPressed(ebiten.KeyQ):
		g.world.DetonateRCBombs()
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		g.world.DetonateAntiMatterBombs()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.camera.X, g.camera.Y = 0, 0
	}

	g.handleCamera()
	g.handleDebugControls()

	var m mouseState
	if g.autoplay {
		m = g.autoplayMouse()
	} else {
		m = g.manualMouse()
	}
	g.cursor = m.pos
	g.applyTool(m)
}

func (g *Game) selectTool(t tool) {
	if g.tool == toolWave && t != toolWave {
		g.world.AdjustOceanSurfaceTo(nil)
	}
	g.tool = t
	g.snap = thanosSnap{}
}

func (g *Game) handleCamera() {
	dx, dy := float32(0), float32(0)
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		dx -= panSpeedMeters
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		dx += panSpeedMeters
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		dy += panSpeedMeters
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		dy -= panSpeedMeters
	}
	g.camera.pan(dx, dy)

	if _, wheel := ebiten.Wheel(); wheel > 0 {
		g.camera.zoomBy(zoomStep)
	} else if wheel < 0 {
		g.camera.zoomBy(1 / zoomStep)
	}
}

// manualMouse reads the real pointer.
func (g *Game) manualMouse() mouseState {
	x, y := ebiten.CursorPosition()
	return mouseState{
		pos:          g.camera.screenToWorld(float32(x), float32(y)),
		pressed:      ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		justPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		justReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
}

// applyTool performs the current tool's action for this frame.
func (g *Game) applyTool(m mouseState) {
	if kind, ok := g.tool.gadgetType(); ok {
		if !m.justPressed {
			return
		}
		if kind == gadgets.TypePhysicsProbe {
			g.world.TogglePhysicsProbeAt(m.pos)
		} else {
			g.world.ToggleGadgetAt(kind, m.pos)
		}
		return
	}

	switch g.tool {
	case toolWave:
		if m.pressed {
			pos := m.pos
			g.world.AdjustOceanSurfaceTo(&pos)
		} else if m.justReleased {
			g.world.AdjustOceanSurfaceTo(nil)
		}
	case toolDestroy:
		if m.pressed {
			g.world.DestroyAt(m.pos, toolDestroyRadius)
		}
	case toolHeatBlaster:
		if m.pressed {
			g.world.HeatBlasterAt(m.pos, 2*toolDestroyRadius, toolHeatRate)
		}
	case toolThanosSnap:
		if m.justPressed {
			g.snap = thanosSnap{active: true, center: m.pos.X()}
		}
		if !m.pressed {
			g.snap = thanosSnap{}
			return
		}
		if left, right, ok := g.snap.grow(); ok {
			g.world.ApplyThanosSnap(left, right)
		}
	}
}

// thanosSnap is a pair of fronts moving apart from where the button went
// down, stopping at thanosSnapMaxSpread.
type thanosSnap struct {
	active bool
	center float32
	spread float32
}

func (s *thanosSnap) grow() (float32, float32, bool) {
	if !s.active || s.spread >= thanosSnapMaxSpread {
		return 0, 0, false
	}
	s.spread = min(s.spread+thanosSnapGrowth, thanosSnapMaxSpread)
	return s.center - s.spread, s.center + s.spread, true
}

// handleDebugControls processes simulation speed hotkeys.
func (g *Game) handleDebugControls() {
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.adjustSimMultiplier(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.adjustSimMultiplier(1)
	}
}

// adjustSimMultiplier clamps the steps-per-frame delta within bounds.
func (g *Game) adjustSimMultiplier(delta int) {
	g.simStepMultiplier = min(max(g.simStepMultiplier+delta, minSimMultiplier), maxSimMultiplier)
}

// enableAutoplay schedules a scripted tool session for a limited duration.
func (g *Game) enableAutoplay(duration time.Duration) {
	g.autoplay = true
	g.autoplayDeadline = time.Now().Add(duration)
	g.autoplayFrameCount = 0
}

// autoplayMouse picks a random tool and target every autoplayToolInterval
// frames, holding the button in between so continuous tools keep working.
func (g *Game) autoplayMouse() mouseState {
	g.autoplayFrameCount--
	if g.autoplayFrameCount > 0 {
		return mouseState{pos: g.cursor, pressed: true}
	}
	g.autoplayFrameCount = autoplayToolInterval

	g.selectTool(tool(g.autoplayRand.Intn(int(toolCount))))
	switch g.autoplayRand.Intn(8) {
	case 0:
		g.world.TriggerRogueWave()
	case 1:
		g.world.DetonateRCBombs()
	case 2:
		g.world.DetonateAntiMatterBombs()
	}

	target := g.randomShipPoint()
	return mouseState{pos: target, pressed: true, justPressed: true}
}

// randomShipPoint returns a spot on or near the ship.
func (g *Game) randomShipPoint() mgl32.Vec2 {
	s := g.world.Ship()
	if n := s.Count(); n > 0 {
		p := s.Position(gadgets.PointIndex(g.autoplayRand.Intn(n)))
		angle := g.autoplayRand.Float64() * 2 * math.Pi
		return p.Add(mgl32.Vec2{float32(math.Cos(angle)), float32(math.Sin(angle))})
	}
	return mgl32.Vec2{}
}
