package main

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/basicfont"

	"oceansandbox/internal/events"
	"oceansandbox/internal/gadgets"
	"oceansandbox/internal/ocean"
	"oceansandbox/internal/params"
	"oceansandbox/internal/ship"
	"oceansandbox/internal/world"
)

// Palette. Ocean planes are blended from the front colour towards the sky
// so the back planes read as further away.
var (
	skyCalm        = colorful.MustParseHex("#8fc4e8")
	skyStorm       = colorful.MustParseHex("#3d4650")
	oceanFront     = colorful.MustParseHex("#14508c")
	oceanDeep      = colorful.MustParseHex("#06213d")
	springCold     = colorful.MustParseHex("#8a6a44")
	springHot      = colorful.MustParseHex("#ffd25a")
	explosionColor = colorful.MustParseHex("#ff8a1e")
	hudColor       = color.RGBA{0xf0, 0xf0, 0xf0, 0xff}

	gadgetColors = map[gadgets.Type]colorful.Color{
		gadgets.TypeImpactBomb:     colorful.MustParseHex("#d94a38"),
		gadgets.TypeTimerBomb:      colorful.MustParseHex("#e0a030"),
		gadgets.TypeRCBomb:         colorful.MustParseHex("#4ab04a"),
		gadgets.TypeAntiMatterBomb: colorful.MustParseHex("#a050e0"),
		gadgets.TypePhysicsProbe:   colorful.MustParseHex("#40c8d8"),
	}
)

// incandescenceTemperature is where springs reach their hottest colour.
const incandescenceTemperature = float32(1500.0)

type oceanColumn struct {
	x, back, mid, front float32
}

type springSegment struct {
	a, b        mgl32.Vec2
	temperature float32
}

type loosePoint struct {
	pos         mgl32.Vec2
	temperature float32
}

type explosionSprite struct {
	center           mgl32.Vec2
	radius, progress float32
}

// renderer collects one frame of geometry from the world's upload sinks and
// draws it with ebiten. Geometry is kept in world units until drawn.
type renderer struct {
	oceanBasic    []mgl32.Vec2
	oceanDetailed []oceanColumn

	springs    []springSegment
	points     []loosePoint
	explosions []explosionSprite
	sprites    []gadgets.Sprite

	probe events.Event

	white    *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
	face     *text.GoXFace
}

func newRenderer() *renderer {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &renderer{
		white: white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		face:  text.NewGoXFace(basicfont.Face7x13),
	}
}

var (
	_ ocean.RenderSink   = (*renderer)(nil)
	_ ship.RenderSink    = (*renderer)(nil)
	_ gadgets.RenderSink = (*renderer)(nil)
)

func (r *renderer) UploadOceanBasicStart(slices int) {
	r.oceanBasic = r.oceanBasic[:0]
	r.oceanDetailed = r.oceanDetailed[:0]
}

func (r *renderer) UploadOceanBasic(x, y float32) {
	r.oceanBasic = append(r.oceanBasic, mgl32.Vec2{x, y})
}

func (r *renderer) UploadOceanBasicEnd() {}

func (r *renderer) UploadOceanDetailedStart(slices int) {
	r.oceanBasic = r.oceanBasic[:0]
	r.oceanDetailed = r.oceanDetailed[:0]
}

func (r *renderer) UploadOceanDetailed(x, yBack, yMid, yFront float32) {
	r.oceanDetailed = append(r.oceanDetailed, oceanColumn{x: x, back: yBack, mid: yMid, front: yFront})
}

func (r *renderer) UploadOceanDetailedEnd() {}

func (r *renderer) UploadSpring(_ gadgets.PlaneID, a, b mgl32.Vec2, temperature float32) {
	r.springs = append(r.springs, springSegment{a: a, b: b, temperature: temperature})
}

func (r *renderer) UploadPoint(_ gadgets.PlaneID, pos mgl32.Vec2, temperature float32) {
	r.points = append(r.points, loosePoint{pos: pos, temperature: temperature})
}

func (r *renderer) UploadExplosion(_ gadgets.PlaneID, center mgl32.Vec2, radius, progress float32) {
	r.explosions = append(r.explosions, explosionSprite{center: center, radius: radius, progress: progress})
}

func (r *renderer) UploadGadget(_ gadgets.ShipID, s gadgets.Sprite) {
	r.sprites = append(r.sprites, s)
}

func (r *renderer) setProbeReading(e events.Event) {
	r.probe = e
}

// collect resets the per-frame buffers and uploads the visible world.
func (r *renderer) collect(w *world.World, cam *camera) {
	r.springs = r.springs[:0]
	r.points = r.points[:0]
	r.explosions = r.explosions[:0]
	r.sprites = r.sprites[:0]

	detail := ocean.RenderDetailBasic
	if *detailedOceanFlag {
		detail = ocean.RenderDetailDetailed
	}
	left, right := cam.visibleX()
	w.Upload(world.RenderSinks{Ocean: r, Ship: r, Gadgets: r}, left, right, detail)
}

// Draw renders the sky, ship, ocean planes, gadgets and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	r := g.renderer
	r.collect(g.world, &g.camera)

	sky := skyCalm
	if g.world.Wind().IsStorming() {
		sky = skyCalm.BlendLab(skyStorm, 0.7)
	}
	screen.Fill(sky.Clamped())

	if len(r.oceanDetailed) > 0 {
		r.drawOceanPlane(screen, &g.camera, func(c oceanColumn) float32 { return c.back }, oceanFront.BlendLab(sky, 0.55))
		r.drawOceanPlane(screen, &g.camera, func(c oceanColumn) float32 { return c.mid }, oceanFront.BlendLab(sky, 0.3))
	}

	r.drawShip(screen, &g.camera)
	r.drawGadgets(screen, &g.camera)

	if len(r.oceanDetailed) > 0 {
		r.drawOceanPlane(screen, &g.camera, func(c oceanColumn) float32 { return c.front }, oceanFront)
	} else {
		r.drawBasicOcean(screen, &g.camera)
	}

	r.drawExplosions(screen, &g.camera)
	g.drawCursor(screen)
	g.drawHUD(screen)
}

// drawOceanPlane fills the area under one detailed plane.
func (r *renderer) drawOceanPlane(screen *ebiten.Image, cam *camera, height func(oceanColumn) float32, top colorful.Color) {
	r.vertices = r.vertices[:0]
	for _, c := range r.oceanDetailed {
		r.appendColumn(cam, mgl32.Vec2{c.x, height(c)}, top)
	}
	r.fillColumns(screen)
}

func (r *renderer) drawBasicOcean(screen *ebiten.Image, cam *camera) {
	r.vertices = r.vertices[:0]
	for _, p := range r.oceanBasic {
		r.appendColumn(cam, p, oceanFront)
	}
	r.fillColumns(screen)
}

// appendColumn adds the surface vertex at p and the matching vertex at the
// bottom of the screen, shaded towards the deep colour.
func (r *renderer) appendColumn(cam *camera, p mgl32.Vec2, top colorful.Color) {
	sx, sy := cam.worldToScreen(p)
	bottom := top.BlendLab(oceanDeep, 0.8)
	r.vertices = append(r.vertices,
		vertexAt(sx, sy, top, 0.92),
		vertexAt(sx, cam.Height, bottom, 0.97),
	)
}

// fillColumns triangulates the column pairs left to right.
func (r *renderer) fillColumns(screen *ebiten.Image) {
	columns := len(r.vertices) / 2
	if columns < 2 {
		return
	}
	r.indices = r.indices[:0]
	for i := 0; i < columns-1; i++ {
		top, bottom := uint16(2*i), uint16(2*i+1)
		nextTop, nextBottom := top+2, bottom+2
		r.indices = append(r.indices, top, bottom, nextTop, nextTop, bottom, nextBottom)
	}
	screen.DrawTriangles(r.vertices, r.indices, r.white, &ebiten.DrawTrianglesOptions{})
}

func vertexAt(x, y float32, c colorful.Color, alpha float32) ebiten.Vertex {
	c = c.Clamped()
	return ebiten.Vertex{
		DstX:   x,
		DstY:   y,
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(c.R),
		ColorG: float32(c.G),
		ColorB: float32(c.B),
		ColorA: alpha,
	}
}

// heatColor maps a temperature to the spring palette.
func heatColor(temperature float32) colorful.Color {
	t := clampF32((temperature-params.AmbientTemperature)/(incandescenceTemperature-params.AmbientTemperature), 0, 1)
	return springCold.BlendLab(springHot, float64(t)).Clamped()
}

func (r *renderer) drawShip(screen *ebiten.Image, cam *camera) {
	width := max(1, 0.3*cam.scale())
	for _, s := range r.springs {
		x0, y0 := cam.worldToScreen(s.a)
		x1, y1 := cam.worldToScreen(s.b)
		vector.StrokeLine(screen, x0, y0, x1, y1, width, heatColor(s.temperature), true)
	}
	for _, p := range r.points {
		x, y := cam.worldToScreen(p.pos)
		vector.DrawFilledCircle(screen, x, y, width, heatColor(p.temperature), true)
	}
}

func (r *renderer) drawGadgets(screen *ebiten.Image, cam *camera) {
	for _, s := range r.sprites {
		x, y := cam.worldToScreen(s.Position)
		radius := 0.5 * s.Scale * cam.scale()
		base := gadgetColors[s.Frame.Group]
		// Odd frames are the lit variants (RC pings, fuse sparks).
		if s.Frame.Index%2 == 1 {
			base = base.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.5)
		}
		vector.DrawFilledCircle(screen, x, y, radius, withAlpha(base, s.Alpha), true)

		dir := rotate(s.RotationBase, s.RotationOffset)
		vector.StrokeLine(screen, x, y, x+dir.X()*radius*1.6, y-dir.Y()*radius*1.6, 2, withAlpha(base, s.Alpha), true)
	}
}

// rotate composes two unit rotations given as (cos, sin) pairs.
func rotate(a, b mgl32.Vec2) mgl32.Vec2 {
	if b.Len() == 0 {
		return a
	}
	return mgl32.Vec2{
		a.X()*b.X() - a.Y()*b.Y(),
		a.X()*b.Y() + a.Y()*b.X(),
	}
}

func (r *renderer) drawExplosions(screen *ebiten.Image, cam *camera) {
	for _, e := range r.explosions {
		x, y := cam.worldToScreen(e.center)
		radius := e.radius * (0.4 + e.progress) * cam.scale()
		vector.DrawFilledCircle(screen, x, y, radius, withAlpha(explosionColor, 1-e.progress), true)
	}
}

// withAlpha converts c to a premultiplied colour with the given opacity.
func withAlpha(c colorful.Color, alpha float32) color.RGBA {
	c = c.Clamped()
	a := clampF32(alpha, 0, 1)
	return color.RGBA{
		R: uint8(float32(c.R) * a * 255),
		G: uint8(float32(c.G) * a * 255),
		B: uint8(float32(c.B) * a * 255),
		A: uint8(a * 255),
	}
}

func (g *Game) drawCursor(screen *ebiten.Image) {
	x, y := g.camera.worldToScreen(g.cursor)
	radius := g.params.ToolSearchRadius * g.camera.scale()
	switch g.tool {
	case toolDestroy:
		radius = toolDestroyRadius * g.camera.scale()
	case toolHeatBlaster:
		radius = 2 * toolDestroyRadius * g.camera.scale()
	case toolThanosSnap:
		if g.snap.active {
			for _, fx := range []float32{g.snap.center - g.snap.spread, g.snap.center + g.snap.spread} {
				sx, _ := g.camera.worldToScreen(mgl32.Vec2{fx, 0})
				vector.StrokeLine(screen, sx, 0, sx, g.camera.Height, 1, hudColor, false)
			}
		}
	}
	vector.StrokeCircle(screen, x, y, radius, 1, hudColor, true)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	w := g.world
	s := w.Ship()
	var b strings.Builder
	fmt.Fprintf(&b, "t=%.1fs  tool [1-9]: %s", w.SimulationTime(), g.tool)
	if g.paused {
		b.WriteString("  PAUSED")
	}
	fmt.Fprintf(&b, "\nwind %.0f km/h", w.Wind().CurrentSpeed().X())
	if w.Wind().IsStorming() {
		b.WriteString(" (storm)")
	}
	if w.Ocean().HasTsunami() {
		b.WriteString("  tsunami")
	}
	if w.Ocean().HasRogueWave() {
		b.WriteString("  rogue wave")
	}
	if n := w.OceanDisturbances(); n > 0 {
		fmt.Fprintf(&b, "  tsunamis so far: %d", n)
	}
	fmt.Fprintf(&b, "\ngadgets %d  broken springs %d  loose points %d",
		s.Gadgets().Count(), s.BrokenSprings(), s.DetachedPoints())
	if s.Gadgets().HasPhysicsProbe() && g.renderer.probe.Kind == events.KindPhysicsProbeReading {
		fmt.Fprintf(&b, "\n%s", g.renderer.probe)
	}
	b.WriteString("\n")
	for _, line := range g.events.lines {
		fmt.Fprintf(&b, "\n%s", line)
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.ColorScale.ScaleWithColor(hudColor)
	op.LineSpacing = hudLineHeight
	text.Draw(screen, b.String(), g.renderer.face, op)

	if *debugFlag {
		msg := fmt.Sprintf("FPS: %.1f  TPS: %.1f\nSim: %.2f ms (x%d, +/-)\nSolver: %s",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.lastSimDuration.Seconds()*1000,
			g.simStepMultiplier, w.Ocean().SolverName())
		ebitenutil.DebugPrintAt(screen, msg, screenWidth-220, 8)
	}
}
