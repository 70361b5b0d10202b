package ship

import (
	"github.com/go-gl/mathgl/mgl32"

	"oceansandbox/internal/gadgets"
	"oceansandbox/internal/params"
)

const (
	explosionDuration = float32(1.0)
	// The blast pushes points within this multiple of the blast radius.
	explosionForceRadiusFactor = float32(8)
	explosionForceScale        = float32(1000)
	// Heat reaches this multiple of the blast radius.
	explosionHeatRadiusFactor = float32(4)

	preimplosionStrength        = float32(130000)
	preimplosionThickness       = float32(10)
	implosionStrengthScale      = float32(10000)
	antiMatterExplosionStrength = float32(30000)
)

// explosion is a blast in progress. Its first step tears loose the points
// within the blast radius and shoves the rest; it keeps heating its
// surroundings until it fades.
type explosion struct {
	start    float32
	plane    gadgets.PlaneID
	center   mgl32.Vec2
	radius   float32
	strength float32
	heat     float32
	kind     gadgets.ExplosionType
	started  bool
	progress float32
}

type forceFieldKind int

const (
	forceFieldSpaceWarp forceFieldKind = iota
	forceFieldImplosion
	forceFieldRadialExplosion
)

type forceField struct {
	kind     forceFieldKind
	center   mgl32.Vec2
	radius   float32
	strength float32
}

// StartExplosion queues a blast; it takes effect at the next ship update.
func (s *Ship) StartExplosion(t float32, plane gadgets.PlaneID, center mgl32.Vec2, blastRadius, blastStrength, blastHeat float32, kind gadgets.ExplosionType, _ *params.Parameters) {
	s.explosions = append(s.explosions, explosion{
		start:    t,
		plane:    plane,
		center:   center,
		radius:   blastRadius,
		strength: blastStrength,
		heat:     blastHeat,
		kind:     kind,
	})
}

func (s *Ship) DoAntiMatterBombPreimplosion(center mgl32.Vec2, _, radius float32, p *params.Parameters) {
	strength := preimplosionStrength
	if p.IsUltraViolentMode {
		strength *= 5
	}
	s.forceFields = append(s.forceFields, forceField{forceFieldSpaceWarp, center, radius, strength})
}

func (s *Ship) DoAntiMatterBombImplosion(center mgl32.Vec2, progress float32, p *params.Parameters) {
	strength := progress * progress * progress * p.AntiMatterBombImplosionStrength * implosionStrengthScale
	if p.IsUltraViolentMode {
		strength *= 50
	}
	s.forceFields = append(s.forceFields, forceField{kind: forceFieldImplosion, center: center, strength: strength})
}

// DoAntiMatterBombExplosion blasts once, at the start of the sequence.
func (s *Ship) DoAntiMatterBombExplosion(center mgl32.Vec2, progress float32, p *params.Parameters) {
	if progress != 0 {
		return
	}
	strength := antiMatterExplosionStrength
	if p.IsUltraViolentMode {
		strength *= 50
	}
	s.forceFields = append(s.forceFields, forceField{kind: forceFieldRadialExplosion, center: center, strength: strength})
}

// Explosions returns the number of blasts still fading.
func (s *Ship) Explosions() int {
	return len(s.explosions)
}

func (s *Ship) updateExplosions(t float32, p *params.Parameters) {
	live := s.explosions[:0]
	for _, e := range s.explosions {
		if !e.started {
			e.started = true
			e.start = t
			s.blast(&e, p)
		}
		e.progress = (t - e.start) / explosionDuration
		if e.progress >= 1 {
			continue
		}
		s.heatAround(e.center, e.radius*explosionHeatRadiusFactor, e.heat*params.SimulationStepTimeDuration)
		live = append(live, e)
	}
	clear(s.explosions[len(live):])
	s.explosions = live
}

// blast detaches the points at the core of the explosion and pushes the
// ones around it.
func (s *Ship) blast(e *explosion, p *params.Parameters) {
	squareRadius := e.radius * e.radius
	forceRadius := e.radius * explosionForceRadiusFactor
	squareForceRadius := forceRadius * forceRadius
	strength := e.strength * explosionForceScale

	for i := range s.points {
		pt := &s.points[i]
		d := pt.pos.Sub(e.center)
		sq := d.Dot(d)
		if sq >= squareForceRadius {
			continue
		}
		if sq < squareRadius {
			s.detachPoint(gadgets.PointIndex(i))
		}
		dist := max(sqrt32(sq), 0.1)
		pt.nonSpringForce = pt.nonSpringForce.Add(d.Mul(strength / (dist * max(dist, 1))))
	}
}

// heatAround adds energy (KJ) to every point within radius.
func (s *Ship) heatAround(center mgl32.Vec2, radius, energy float32) {
	squareRadius := radius * radius
	for i := range s.points {
		d := s.points[i].pos.Sub(center)
		if d.Dot(d) < squareRadius {
			s.heatPoint(i, energy)
		}
	}
}

func (s *Ship) applyForceFields() {
	for _, ff := range s.forceFields {
		for i := range s.points {
			pt := &s.points[i]
			d := pt.pos.Sub(ff.center)
			dist := sqrt32(d.Dot(d))
			if dist == 0 {
				continue
			}
			dir := d.Mul(1 / dist)

			switch ff.kind {
			case forceFieldSpaceWarp:
				off := abs32(dist - ff.radius)
				if off < preimplosionThickness {
					pt.nonSpringForce = pt.nonSpringForce.Add(dir.Mul(ff.strength * (1 - off/preimplosionThickness)))
				}
			case forceFieldImplosion:
				pt.nonSpringForce = pt.nonSpringForce.Sub(dir.Mul(ff.strength / max(sqrt32(dist), 1)))
			case forceFieldRadialExplosion:
				pt.nonSpringForce = pt.nonSpringForce.Add(dir.Mul(ff.strength / max(dist, 1) * pt.totalMass()))
			}
		}
	}
	clear(s.forceFields)
	s.forceFields = s.forceFields[:0]
}
