package main

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl32"

	"oceansandbox/internal/gadgets"
	"oceansandbox/internal/ocean"
	"oceansandbox/internal/params"
	"oceansandbox/internal/ship"
)

// World units covered by one terminal cell. Cells are roughly twice as
// tall as they are wide.
const (
	metersPerColumn = float32(0.5)
	metersPerRow    = float32(1.0)
	hotTemperature  = params.AmbientTemperature + 100
)

type cellKind uint8

const (
	cellSky cellKind = iota
	cellWater
	cellSurface
	cellShip
	cellHot
	cellGadget
	cellExplosion
	cellCursor
	cellKindCount
)

var cellStyles = [cellKindCount]lipgloss.Style{
	cellSky:       lipgloss.NewStyle(),
	cellWater:     lipgloss.NewStyle().Foreground(lipgloss.Color("#1d4f8a")),
	cellSurface:   lipgloss.NewStyle().Foreground(lipgloss.Color("#5fa8e8")).Bold(true),
	cellShip:      lipgloss.NewStyle().Foreground(lipgloss.Color("#b08850")),
	cellHot:       lipgloss.NewStyle().Foreground(lipgloss.Color("#ffb040")).Bold(true),
	cellGadget:    lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).Bold(true),
	cellExplosion: lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd700")).Bold(true),
	cellCursor:    lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Reverse(true),
}

var gadgetGlyphs = map[gadgets.Type]rune{
	gadgets.TypeImpactBomb:     'I',
	gadgets.TypeTimerBomb:      'T',
	gadgets.TypeRCBomb:         'R',
	gadgets.TypeAntiMatterBomb: 'A',
	gadgets.TypePhysicsProbe:   'P',
}

type cell struct {
	glyph rune
	kind  cellKind
}

// canvas rasterizes one frame of world geometry into terminal cells. It is
// the upload sink for the ocean, the ship and its gadgets. The world point
// (centerX, 0) maps to the middle column of the sea-level row.
type canvas struct {
	width, height int
	centerX       float32
	seaRow        int
	cells         []cell
}

var (
	_ ocean.RenderSink   = (*canvas)(nil)
	_ ship.RenderSink    = (*canvas)(nil)
	_ gadgets.RenderSink = (*canvas)(nil)
)

func newCanvas(width, height int, centerX float32) *canvas {
	c := &canvas{
		width:   max(width, 1),
		height:  max(height, 1),
		centerX: centerX,
	}
	c.seaRow = c.height * 2 / 3
	c.cells = make([]cell, c.width*c.height)
	for i := range c.cells {
		c.cells[i] = cell{glyph: ' ', kind: cellSky}
	}
	return c
}

// visibleX returns the world X range covered by the canvas.
func (c *canvas) visibleX() (float32, float32) {
	half := float32(c.width) / 2 * metersPerColumn
	return c.centerX - half, c.centerX + half
}

// toCell converts a world position to a column and row.
func (c *canvas) toCell(p mgl32.Vec2) (int, int) {
	col := int(math.Floor(float64((p.X()-c.centerX)/metersPerColumn + float32(c.width)/2)))
	row := c.seaRow - int(roundF(p.Y()/metersPerRow))
	return col, row
}

// toWorld is the centre of the cell at col, row.
func (c *canvas) toWorld(col, row int) mgl32.Vec2 {
	return mgl32.Vec2{
		(float32(col)-float32(c.width)/2+0.5)*metersPerColumn + c.centerX,
		float32(c.seaRow-row) * metersPerRow,
	}
}

func roundF(v float32) float32 {
	if v < 0 {
		return -float32(int(-v + 0.5))
	}
	return float32(int(v + 0.5))
}

func (c *canvas) set(col, row int, glyph rune, kind cellKind) {
	if col < 0 || col >= c.width || row < 0 || row >= c.height {
		return
	}
	c.cells[row*c.width+col] = cell{glyph: glyph, kind: kind}
}

func (c *canvas) at(col, row int) cell {
	return c.cells[row*c.width+col]
}

func (c *canvas) UploadOceanBasicStart(int) {}

// UploadOceanBasic fills the column under x with water.
func (c *canvas) UploadOceanBasic(x, y float32) {
	col, top := c.toCell(mgl32.Vec2{x, y})
	if col < 0 || col >= c.width {
		return
	}
	c.set(col, top, '~', cellSurface)
	for row := max(top+1, 0); row < c.height; row++ {
		c.set(col, row, '░', cellWater)
	}
}

func (c *canvas) UploadOceanBasicEnd() {}

func (c *canvas) UploadOceanDetailedStart(int) {}

func (c *canvas) UploadOceanDetailed(x, _, _, yFront float32) {
	c.UploadOceanBasic(x, yFront)
}

func (c *canvas) UploadOceanDetailedEnd() {}

// UploadSpring draws the spring's endpoints and midpoint.
func (c *canvas) UploadSpring(_ gadgets.PlaneID, a, b mgl32.Vec2, temperature float32) {
	glyph, kind := '#', cellShip
	if temperature > hotTemperature {
		glyph, kind = '*', cellHot
	}
	for _, p := range []mgl32.Vec2{a, a.Add(b).Mul(0.5), b} {
		col, row := c.toCell(p)
		c.set(col, row, glyph, kind)
	}
}

func (c *canvas) UploadPoint(_ gadgets.PlaneID, pos mgl32.Vec2, temperature float32) {
	kind := cellShip
	if temperature > hotTemperature {
		kind = cellHot
	}
	col, row := c.toCell(pos)
	c.set(col, row, '.', kind)
}

// UploadExplosion draws a ring whose size follows the blast progress.
func (c *canvas) UploadExplosion(_ gadgets.PlaneID, center mgl32.Vec2, radius, progress float32) {
	r := radius * (0.4 + progress)
	steps := 16
	for i := 0; i < steps; i++ {
		angle := float32(2*math.Pi) * float32(i) / float32(steps)
		offset := mgl32.Rotate2D(angle).Mul2x1(mgl32.Vec2{r, 0})
		col, row := c.toCell(center.Add(offset))
		c.set(col, row, '@', cellExplosion)
	}
	col, row := c.toCell(center)
	c.set(col, row, '@', cellExplosion)
}

func (c *canvas) UploadGadget(_ gadgets.ShipID, s gadgets.Sprite) {
	glyph, ok := gadgetGlyphs[s.Frame.Group]
	if !ok {
		glyph = '?'
	}
	if s.Alpha < 0.5 {
		glyph = '+'
	}
	col, row := c.toCell(s.Position)
	c.set(col, row, glyph, cellGadget)
}

// markCursor highlights the cell under pos.
func (c *canvas) markCursor(pos mgl32.Vec2) {
	col, row := c.toCell(pos)
	if col < 0 || col >= c.width || row < 0 || row >= c.height {
		return
	}
	current := c.at(col, row)
	glyph := current.glyph
	if glyph == ' ' {
		glyph = '+'
	}
	c.set(col, row, glyph, cellCursor)
}

// plain returns the canvas as unstyled text, one line per row.
func (c *canvas) plain() string {
	var b strings.Builder
	for row := 0; row < c.height; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < c.width; col++ {
			b.WriteRune(c.at(col, row).glyph)
		}
	}
	return b.String()
}

// render returns the canvas styled with lipgloss, grouping runs of cells
// of the same kind into a single styled span.
func (c *canvas) render() string {
	var b strings.Builder
	var run strings.Builder
	for row := 0; row < c.height; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		kind := c.at(0, row).kind
		for col := 0; col < c.width; col++ {
			cl := c.at(col, row)
			if cl.kind != kind {
				b.WriteString(cellStyles[kind].Render(run.String()))
				run.Reset()
				kind = cl.kind
			}
			run.WriteRune(cl.glyph)
		}
		b.WriteString(cellStyles[kind].Render(run.String()))
		run.Reset()
	}
	return b.String()
}
