package gadgets

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"oceansandbox/internal/params"
)

type rcBombState int

const (
	rcBombIdlePingOff rcBombState = iota
	rcBombIdlePingOn
	rcBombDetonationLeadIn
	rcBombExploding
	rcBombExpired
)

const (
	rcBombMass                  = float32(5000)
	rcBombPingInterval          = float32(1.0)
	rcBombPingOnDuration        = float32(0.2)
	rcBombLeadInPingInterval    = float32(0.15)
	rcBombLeadInDuration        = float32(1.0)
	rcBombPingOffFrameIndex     = 0
	rcBombPingOnFrameIndex      = 1
	rcBombExplosionFrameIndex   = 2
	rcBombLeadInPingOnThreshold = rcBombLeadInPingInterval / 2
)

// RCBomb pings until it is detonated by remote control, shaken, or heated.
type RCBomb struct {
	base

	state         rcBombState
	started       bool
	phaseStart    float32
	lastPing      float32
	leadInPending bool
	leadInPingOn  bool

	fadeoutCounter   int
	explosionPos     mgl32.Vec2
	explosionPlaneID PlaneID
}

func newRCBomb(d deps, id ID, point PointIndex) *RCBomb {
	return &RCBomb{base: newBase(d, id, TypeRCBomb, point, rcBombMass)}
}

func (g *RCBomb) Update(_ time.Time, t float32, p *params.Parameters) bool {
	if !g.started {
		g.started = true
		g.phaseStart = t
		g.lastPing = t
	}
	if g.leadInPending {
		g.leadInPending = false
		g.phaseStart = t
		g.lastPing = t
		g.ping()
	}

	switch g.state {
	case rcBombIdlePingOff, rcBombIdlePingOn:
		if g.points.Temperature(g.point) > params.BombsTemperatureTrigger {
			g.explode(t, p)
			return true
		}
		if g.state == rcBombIdlePingOff && t-g.lastPing >= rcBombPingInterval {
			g.lastPing = t
			g.state = rcBombIdlePingOn
			g.ping()
		} else if g.state == rcBombIdlePingOn && t-g.lastPing >= rcBombPingOnDuration {
			g.state = rcBombIdlePingOff
		}
		return true

	case rcBombDetonationLeadIn:
		if t-g.phaseStart >= rcBombLeadInDuration {
			g.explode(t, p)
			return true
		}
		if t-g.lastPing >= rcBombLeadInPingInterval {
			g.lastPing = t
			g.ping()
		}
		g.leadInPingOn = t-g.lastPing < rcBombLeadInPingOnThreshold
		return true

	case rcBombExploding:
		g.fadeoutCounter++
		if g.fadeoutCounter >= ExplosionFadeoutStepsCount {
			g.detach()
			g.state = rcBombExpired
		}
		return true
	}
	return false
}

func (g *RCBomb) ping() {
	g.events.OnRCBombPing(g.isUnderwater(g.Position()), 1)
}

func (g *RCBomb) explode(t float32, p *params.Parameters) {
	g.explosionPos = g.Position()
	g.explosionPlaneID = g.planeID()

	radius, strength, heat := blast(p)
	g.physics.StartExplosion(t, g.explosionPlaneID, g.explosionPos, radius, strength, heat, ExplosionDeflagration, p)
	g.events.OnBombExplosion(TypeRCBomb, g.isUnderwater(g.explosionPos), 1)

	g.state = rcBombExploding
}

// Detonate starts the lead-in. It is ignored once the bomb is past idling.
func (g *RCBomb) Detonate() {
	if g.state == rcBombIdlePingOff || g.state == rcBombIdlePingOn {
		g.state = rcBombDetonationLeadIn
		g.leadInPending = true
	}
}

func (g *RCBomb) MayBeRemoved() bool {
	return g.state == rcBombIdlePingOff || g.state == rcBombIdlePingOn
}

func (g *RCBomb) OnExternallyRemoved() {}

func (g *RCBomb) OnNeighborhoodDisturbed() {
	g.Detonate()
}

func (g *RCBomb) Upload(sink RenderSink) {
	switch g.state {
	case rcBombIdlePingOff:
		g.upload(sink, g.sprite(rcBombPingOffFrameIndex, g.Position(), g.planeID(), 1))
	case rcBombIdlePingOn:
		g.upload(sink, g.sprite(rcBombPingOnFrameIndex, g.Position(), g.planeID(), 1))
	case rcBombDetonationLeadIn:
		frame := rcBombPingOffFrameIndex
		if g.leadInPingOn {
			frame = rcBombPingOnFrameIndex
		}
		g.upload(sink, g.sprite(frame, g.Position(), g.planeID(), 1))
	case rcBombExploding:
		progress := float32(g.fadeoutCounter+1) / ExplosionFadeoutStepsCount
		g.upload(sink, g.sprite(rcBombExplosionFrameIndex, g.explosionPos, g.explosionPlaneID, 1-progress))
	}
}
