package gadgets

import (
	"time"

	"oceansandbox/internal/params"
)

const (
	physicsProbeMass            = float32(1)
	physicsProbeReadingInterval = 250 * time.Millisecond
)

// PhysicsProbe reports the velocity, temperature and depth of the point it
// is attached to. It never expires on its own.
type PhysicsProbe struct {
	base

	lastReading time.Time
}

func newPhysicsProbe(d deps, id ID, point PointIndex) *PhysicsProbe {
	return &PhysicsProbe{base: newBase(d, id, TypePhysicsProbe, point, physicsProbeMass)}
}

func (g *PhysicsProbe) Update(now time.Time, _ float32, _ *params.Parameters) bool {
	if g.lastReading.IsZero() || now.Sub(g.lastReading) >= physicsProbeReadingInterval {
		pos := g.Position()
		g.events.OnPhysicsProbeReading(
			g.points.Velocity(g.point),
			g.points.Temperature(g.point),
			g.env.DepthAt(pos))
		g.lastReading = now
	}
	return true
}

func (g *PhysicsProbe) MayBeRemoved() bool { return true }

func (g *PhysicsProbe) OnExternallyRemoved() {}

func (g *PhysicsProbe) OnNeighborhoodDisturbed() {}

func (g *PhysicsProbe) Upload(sink RenderSink) {
	g.upload(sink, g.sprite(0, g.Position(), g.planeID(), 1))
}
