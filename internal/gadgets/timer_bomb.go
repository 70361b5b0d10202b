package gadgets

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"oceansandbox/internal/params"
)

type timerBombState int

const (
	timerBombSlowFuseBurning timerBombState = iota
	timerBombFastFuseBurning
	timerBombDetonationLeadIn
	timerBombExploding
	timerBombDefused
	timerBombExpired
)

const (
	timerBombMass              = float32(5000)
	timerBombFastFuseFactor    = 4
	timerBombLeadInSeconds     = float32(1.5)
	timerBombFuseFramesCount   = 4
	timerBombDefusedFrameIndex = timerBombFuseFramesCount
)

// TimerBomb burns a fuse for TimerBombInterval and then explodes. Shaking
// it speeds the fuse up, dunking it in water defuses it.
type TimerBomb struct {
	base

	state        timerBombState
	fuseProgress float32 // [0, 1]
	lastUpdate   float32
	started      bool
	leadInStart  float32

	fadeoutCounter   int
	explosionPos     mgl32.Vec2
	explosionPlaneID PlaneID
}

func newTimerBomb(d deps, id ID, point PointIndex) *TimerBomb {
	g := &TimerBomb{base: newBase(d, id, TypeTimerBomb, point, timerBombMass)}
	g.events.OnTimerBombFuse(id, FuseSlow)
	return g
}

func (g *TimerBomb) Update(_ time.Time, t float32, p *params.Parameters) bool {
	dt := float32(0)
	if g.started {
		dt = t - g.lastUpdate
	}
	g.started = true
	g.lastUpdate = t

	switch g.state {
	case timerBombSlowFuseBurning, timerBombFastFuseBurning:
		if g.isUnderwater(g.Position()) {
			g.events.OnTimerBombFuse(g.id, FuseStopped)
			g.events.OnTimerBombDefused(true, 1)
			g.state = timerBombDefused
			return true
		}
		if g.points.Temperature(g.point) > params.BombsTemperatureTrigger {
			g.events.OnTimerBombFuse(g.id, FuseStopped)
			g.explode(t, p)
			return true
		}

		rate := 1 / float32(p.TimerBombInterval.Seconds())
		if g.state == timerBombFastFuseBurning {
			rate *= timerBombFastFuseFactor
		}
		g.fuseProgress = min(g.fuseProgress+dt*rate, 1)
		if g.fuseProgress >= 1 {
			g.events.OnTimerBombFuse(g.id, FuseStopped)
			g.leadInStart = t
			g.state = timerBombDetonationLeadIn
		}
		return true

	case timerBombDetonationLeadIn:
		if t-g.leadInStart >= timerBombLeadInSeconds ||
			g.points.Temperature(g.point) > params.BombsTemperatureTrigger {
			g.explode(t, p)
		}
		return true

	case timerBombExploding:
		g.fadeoutCounter++
		if g.fadeoutCounter >= ExplosionFadeoutStepsCount {
			g.detach()
			g.state = timerBombExpired
		}
		return true

	case timerBombDefused:
		return true
	}
	return false
}

func (g *TimerBomb) explode(t float32, p *params.Parameters) {
	g.explosionPos = g.Position()
	g.explosionPlaneID = g.planeID()

	radius, strength, heat := blast(p)
	g.physics.StartExplosion(t, g.explosionPlaneID, g.explosionPos, radius, strength, heat, ExplosionDeflagration, p)
	g.events.OnBombExplosion(TypeTimerBomb, g.isUnderwater(g.explosionPos), 1)

	g.state = timerBombExploding
}

func (g *TimerBomb) MayBeRemoved() bool {
	switch g.state {
	case timerBombSlowFuseBurning, timerBombFastFuseBurning, timerBombDefused:
		return true
	}
	return false
}

func (g *TimerBomb) OnExternallyRemoved() {
	if g.state == timerBombSlowFuseBurning || g.state == timerBombFastFuseBurning {
		g.events.OnTimerBombFuse(g.id, FuseStopped)
	}
}

func (g *TimerBomb) OnNeighborhoodDisturbed() {
	if g.state == timerBombSlowFuseBurning {
		g.state = timerBombFastFuseBurning
		g.events.OnTimerBombFuse(g.id, FuseFast)
	}
}

func (g *TimerBomb) Upload(sink RenderSink) {
	switch g.state {
	case timerBombSlowFuseBurning, timerBombFastFuseBurning, timerBombDetonationLeadIn:
		frame := min(int(g.fuseProgress*timerBombFuseFramesCount), timerBombFuseFramesCount-1)
		g.upload(sink, g.sprite(frame, g.Position(), g.planeID(), 1))
	case timerBombDefused:
		g.upload(sink, g.sprite(timerBombDefusedFrameIndex, g.Position(), g.planeID(), 1))
	case timerBombExploding:
		progress := float32(g.fadeoutCounter+1) / ExplosionFadeoutStepsCount
		g.upload(sink, g.sprite(0, g.explosionPos, g.explosionPlaneID, 1-progress))
	}
}
