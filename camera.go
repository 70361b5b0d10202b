package main

import "github.com/go-gl/mathgl/mgl32"

// camera maps world metres (Y up) to screen pixels (Y down). The world
// point (X, Y) is drawn at the horizontal centre, at the height given by
// seaLevelScreenFraction.
type camera struct {
	X, Y          float32
	Zoom          float32
	Width, Height float32
}

func newCamera(width, height int) camera {
	return camera{Zoom: 1, Width: float32(width), Height: float32(height)}
}

func (c *camera) scale() float32 {
	return pixelsPerMeter * c.Zoom
}

// worldToScreen converts a world position to screen coordinates.
func (c *camera) worldToScreen(p mgl32.Vec2) (float32, float32) {
	s := c.scale()
	sx := (p.X()-c.X)*s + c.Width/2
	sy := c.Height*seaLevelScreenFraction - (p.Y()-c.Y)*s
	return sx, sy
}

// screenToWorld is the inverse of worldToScreen.
func (c *camera) screenToWorld(sx, sy float32) mgl32.Vec2 {
	s := c.scale()
	return mgl32.Vec2{
		(sx-c.Width/2)/s + c.X,
		(c.Height*seaLevelScreenFraction-sy)/s + c.Y,
	}
}

// visibleX returns the world X range covered by the screen.
func (c *camera) visibleX() (float32, float32) {
	return c.screenToWorld(0, 0).X(), c.screenToWorld(c.Width, 0).X()
}

func (c *camera) zoomBy(factor float32) {
	c.Zoom = clampF32(c.Zoom*factor, minZoom, maxZoom)
}

func (c *camera) pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
}

// clampF32 constrains v to lie within the inclusive [lo, hi] range.
func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
