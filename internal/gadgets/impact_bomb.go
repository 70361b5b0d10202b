package gadgets

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"oceansandbox/internal/params"
)

type impactBombState int

const (
	impactBombIdle impactBombState = iota
	impactBombTriggeringExplosion
	impactBombExploding
	impactBombExpired
)

// ImpactBomb explodes when it is shaken loose or gets too hot.
type ImpactBomb struct {
	base

	state            impactBombState
	fadeoutCounter   int
	explosionPos     mgl32.Vec2
	explosionPlaneID PlaneID
}

const impactBombMass = float32(5000)

func newImpactBomb(d deps, id ID, point PointIndex) *ImpactBomb {
	return &ImpactBomb{base: newBase(d, id, TypeImpactBomb, point, impactBombMass)}
}

func (g *ImpactBomb) Update(_ time.Time, t float32, p *params.Parameters) bool {
	switch g.state {
	case impactBombIdle:
		if g.points.Temperature(g.point) > params.BombsTemperatureTrigger {
			g.state = impactBombTriggeringExplosion
		}
		return true

	case impactBombTriggeringExplosion:
		// Freeze the blast where it started, the ship keeps moving.
		g.explosionPos = g.Position()
		g.explosionPlaneID = g.planeID()

		radius, strength, heat := blast(p)
		g.physics.StartExplosion(t, g.explosionPlaneID, g.explosionPos, radius, strength, heat, ExplosionDeflagration, p)
		g.events.OnBombExplosion(TypeImpactBomb, g.isUnderwater(g.explosionPos), 1)

		g.state = impactBombExploding
		return true

	case impactBombExploding:
		g.fadeoutCounter++
		if g.fadeoutCounter >= ExplosionFadeoutStepsCount {
			g.detach()
			g.state = impactBombExpired
		}
		return true
	}
	return false
}

func (g *ImpactBomb) MayBeRemoved() bool {
	return g.state == impactBombIdle
}

func (g *ImpactBomb) OnExternallyRemoved() {}

func (g *ImpactBomb) OnNeighborhoodDisturbed() {
	if g.state == impactBombIdle {
		g.state = impactBombTriggeringExplosion
	}
}

// OnTrackedSpringDestroyed sets the bomb off: losing its spring is as
// violent as a nearby break.
func (g *ImpactBomb) OnTrackedSpringDestroyed() {
	g.base.OnTrackedSpringDestroyed()
	if g.state == impactBombIdle {
		g.state = impactBombTriggeringExplosion
	}
}

func (g *ImpactBomb) Upload(sink RenderSink) {
	switch g.state {
	case impactBombIdle, impactBombTriggeringExplosion:
		g.upload(sink, g.sprite(0, g.Position(), g.planeID(), 1))
	case impactBombExploding:
		progress := float32(g.fadeoutCounter+1) / ExplosionFadeoutStepsCount
		g.upload(sink, g.sprite(0, g.explosionPos, g.explosionPlaneID, 1-progress))
	}
}
