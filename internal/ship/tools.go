package ship

import (
	"github.com/go-gl/mathgl/mgl32"

	"oceansandbox/internal/gadgets"
	"oceansandbox/internal/params"
)

// DestroyAt tears loose every point within radius of pos and returns how
// many were still attached.
func (s *Ship) DestroyAt(pos mgl32.Vec2, radius float32) int {
	squareRadius := radius * radius
	detached := 0
	for i := range s.points {
		d := s.points[i].pos.Sub(pos)
		if d.Dot(d) < squareRadius && s.detachPoint(gadgets.PointIndex(i)) {
			detached++
		}
	}
	return detached
}

// HeatBlasterAt heats the points within radius of pos for one simulation
// step at heatRate KJ/s. A negative rate cools them.
func (s *Ship) HeatBlasterAt(pos mgl32.Vec2, radius, heatRate float32) {
	s.heatAround(pos, radius, heatRate*params.SimulationStepTimeDuration)
}

// RenderSink consumes the ship's structure for drawing.
type RenderSink interface {
	UploadSpring(plane gadgets.PlaneID, a, b mgl32.Vec2, temperature float32)
	UploadPoint(plane gadgets.PlaneID, pos mgl32.Vec2, temperature float32)
	UploadExplosion(plane gadgets.PlaneID, center mgl32.Vec2, radius, progress float32)
}

// Upload sends intact springs, loose points and live explosions to sink.
func (s *Ship) Upload(sink RenderSink) {
	for i := range s.springs {
		spr := &s.springs[i]
		if spr.deleted {
			continue
		}
		a, b := &s.points[spr.a], &s.points[spr.b]
		sink.UploadSpring(a.plane, a.pos, b.pos, (a.temperature+b.temperature)/2)
	}
	for i := range s.points {
		pt := &s.points[i]
		if len(pt.springs) == 0 {
			sink.UploadPoint(pt.plane, pt.pos, pt.temperature)
		}
	}
	for _, e := range s.explosions {
		sink.UploadExplosion(e.plane, e.center, e.radius*explosionForceRadiusFactor, e.progress)
	}
}
