package gadgets

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"oceansandbox/internal/params"
)

type antiMatterBombState int

const (
	antiMatterBombContained antiMatterBombState = iota
	antiMatterBombPreImploding
	antiMatterBombPreImplosionPause
	antiMatterBombImploding
	antiMatterBombExploding
	antiMatterBombExpired
)

const (
	antiMatterBombMass = float32(10000)

	antiMatterPreImplosionSeconds   = float32(1.0)
	antiMatterPreImplosionPause     = float32(0.5)
	antiMatterImplosionSeconds      = float32(4.0)
	antiMatterPreImplosionMaxRadius = float32(30)

	antiMatterContainedFrameCount = 8
)

// AntiMatterBomb stays contained until detonated. It then warps space
// outwards, pauses, pulls everything in and finally blows it apart.
type AntiMatterBomb struct {
	base

	state      antiMatterBombState
	phaseStart float32
	phaseFresh bool

	containedFrame  int
	center          mgl32.Vec2
	centerPlaneID   PlaneID
	explosionStep   int
	currentProgress float32
}

func newAntiMatterBomb(d deps, id ID, point PointIndex) *AntiMatterBomb {
	g := &AntiMatterBomb{base: newBase(d, id, TypeAntiMatterBomb, point, antiMatterBombMass)}
	g.events.OnAntiMatterBombContained(id, true)
	return g
}

func (g *AntiMatterBomb) Update(_ time.Time, t float32, p *params.Parameters) bool {
	if g.phaseFresh {
		g.phaseFresh = false
		g.phaseStart = t
	}
	elapsed := t - g.phaseStart

	switch g.state {
	case antiMatterBombContained:
		g.containedFrame = (g.containedFrame + 1) % antiMatterContainedFrameCount
		return true

	case antiMatterBombPreImploding:
		progress := min(elapsed/antiMatterPreImplosionSeconds, 1)
		g.currentProgress = progress
		g.physics.DoAntiMatterBombPreimplosion(g.center, progress, 0.1+progress*antiMatterPreImplosionMaxRadius, p)
		if progress >= 1 {
			g.enter(antiMatterBombPreImplosionPause, t)
		}
		return true

	case antiMatterBombPreImplosionPause:
		if elapsed >= antiMatterPreImplosionPause {
			g.enter(antiMatterBombImploding, t)
			g.events.OnAntiMatterBombImploding()
		}
		return true

	case antiMatterBombImploding:
		progress := min(elapsed/antiMatterImplosionSeconds, 1)
		g.currentProgress = progress
		g.physics.DoAntiMatterBombImplosion(g.center, progress, p)
		if progress >= 1 {
			g.enter(antiMatterBombExploding, t)
			g.events.OnBombExplosion(TypeAntiMatterBomb, g.isUnderwater(g.center), 1)
		}
		return true

	case antiMatterBombExploding:
		progress := float32(g.explosionStep) / ExplosionFadeoutStepsCount
		g.currentProgress = progress
		g.physics.DoAntiMatterBombExplosion(g.center, progress, p)
		g.explosionStep++
		if g.explosionStep >= ExplosionFadeoutStepsCount {
			g.detach()
			g.state = antiMatterBombExpired
		}
		return true
	}
	return false
}

// enter switches to state s; its clock starts at t.
func (g *AntiMatterBomb) enter(s antiMatterBombState, t float32) {
	g.state = s
	g.phaseStart = t
}

// Detonate freezes the bomb's position and starts the pre-implosion on
// the next update. Only a contained bomb can be detonated.
func (g *AntiMatterBomb) Detonate() {
	if g.state != antiMatterBombContained {
		return
	}
	g.center = g.Position()
	g.centerPlaneID = g.planeID()
	g.state = antiMatterBombPreImploding
	g.phaseFresh = true
	g.events.OnAntiMatterBombContained(g.id, false)
	g.events.OnAntiMatterBombPreImploding()
}

func (g *AntiMatterBomb) MayBeRemoved() bool {
	return g.state == antiMatterBombContained
}

func (g *AntiMatterBomb) OnExternallyRemoved() {
	if g.state == antiMatterBombContained {
		g.events.OnAntiMatterBombContained(g.id, false)
	}
}

// OnNeighborhoodDisturbed is ignored: containment does not break.
func (g *AntiMatterBomb) OnNeighborhoodDisturbed() {}

func (g *AntiMatterBomb) Upload(sink RenderSink) {
	switch g.state {
	case antiMatterBombContained:
		g.upload(sink, g.sprite(g.containedFrame, g.Position(), g.planeID(), 1))
	case antiMatterBombPreImploding, antiMatterBombPreImplosionPause, antiMatterBombImploding:
		g.upload(sink, g.sprite(antiMatterContainedFrameCount, g.center, g.centerPlaneID, 1))
	case antiMatterBombExploding:
		g.upload(sink, g.sprite(antiMatterContainedFrameCount+1, g.center, g.centerPlaneID, 1-g.currentProgress))
	}
}
