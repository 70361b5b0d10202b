package ship

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"oceansandbox/internal/gadgets"
	"oceansandbox/internal/params"
)

const (
	mechanicalIterations = 4

	// Fraction of the critical stiffness each spring gets.
	springReductionFraction = float32(0.4)
	springDampingFraction   = float32(0.03)
	globalDamping           = float32(0.9996)

	// Buoyancy per point, as a multiple of its own weight when submerged.
	waterBuoyancyFactor  = float32(2.0)
	waterDragCoefficient = float32(0.6)

	// 1/2 rho for air, with km/h converted to m/s.
	windForceFactor = float32(0.5 * 1.2 * (1000.0 / 3600.0) * (1000.0 / 3600.0))

	splashFactor = float32(0.05)

	specificHeat         = float32(2.0) // KJ/(kg*K)
	heatConductivity     = float32(0.15)
	ambientCoolingFactor = float32(0.05)
)

// Update advances the ship by one simulation step at time t.
func (s *Ship) Update(t float32, ocean Ocean, wind mgl32.Vec2, p *params.Parameters) {
	s.updateExplosions(t, p)
	s.applyWorldForces(ocean, wind, p)
	s.applyForceFields()

	dt := params.SimulationStepTimeDuration / mechanicalIterations
	for iter := 0; iter < mechanicalIterations; iter++ {
		s.pool.Run(len(s.points), func(start, end int) {
			s.applySpringForces(start, end, dt, p)
		})
		s.pool.Run(len(s.points), func(start, end int) {
			s.integrate(start, end, dt)
		})
	}
	for i := range s.points {
		s.points[i].nonSpringForce = mgl32.Vec2{}
	}

	s.trimForWorldBounds()
	s.splash(ocean)
	s.updateStrains(p)
	s.propagateHeat(p)
}

// applyWorldForces adds gravity, buoyancy, water drag and wind.
func (s *Ship) applyWorldForces(ocean Ocean, wind mgl32.Vec2, p *params.Parameters) {
	windForce := mgl32.Vec2{
		wind.X() * abs32(wind.X()) * windForceFactor,
		wind.Y() * abs32(wind.Y()) * windForceFactor,
	}
	drag := waterDragCoefficient * p.WaterDragAdjustment

	for i := range s.points {
		pt := &s.points[i]
		m := pt.totalMass()
		f := mgl32.Vec2{0, -params.GravityMagnitude * m}

		depth := ocean.HeightAt(pt.pos.X()) - pt.pos.Y()
		if depth > 0 {
			f[1] += waterBuoyancyFactor * params.GravityMagnitude * pt.mass * min(depth, 1)
			f = f.Sub(pt.vel.Mul(drag * m))
		} else {
			f = f.Add(windForce)
		}
		pt.nonSpringForce = pt.nonSpringForce.Add(f)
	}
}

// applySpringForces computes each point's spring force from its own
// springs, so chunks never write to each other's points.
func (s *Ship) applySpringForces(start, end int, dt float32, p *params.Parameters) {
	for i := start; i < end; i++ {
		pt := &s.points[i]
		var f mgl32.Vec2
		for _, sp := range pt.springs {
			spr := &s.springs[sp]
			other := &s.points[spr.b]
			if int(spr.a) != i {
				other = &s.points[spr.a]
			}
			d := other.pos.Sub(pt.pos)
			length := d.Len()
			if length == 0 {
				continue
			}
			dir := d.Mul(1 / length)

			massFactor := pt.totalMass() * other.totalMass() / (pt.totalMass() + other.totalMass())
			stiffness := springReductionFraction * massFactor / (dt * dt) * p.SpringStiffnessAdjustment
			damping := springDampingFraction * massFactor / dt

			relVel := other.vel.Sub(pt.vel).Dot(dir)
			f = f.Add(dir.Mul((length-spr.restLength)*stiffness + relVel*damping))
		}
		pt.springForce = f
	}
}

func (s *Ship) integrate(start, end int, dt float32) {
	for i := start; i < end; i++ {
		pt := &s.points[i]
		a := pt.springForce.Add(pt.nonSpringForce).Mul(1 / pt.totalMass())
		pt.vel = pt.vel.Add(a.Mul(dt)).Mul(globalDamping)
		pt.pos = pt.pos.Add(pt.vel.Mul(dt))
	}
}

func (s *Ship) trimForWorldBounds() {
	for i := range s.points {
		pt := &s.points[i]
		if x := pt.pos.X(); x < -params.HalfMaxWorldWidth || x > params.HalfMaxWorldWidth {
			pt.pos[0] = clamp32(x, -params.HalfMaxWorldWidth, params.HalfMaxWorldWidth)
			pt.vel[0] = 0
		}
		if y := pt.pos.Y(); y < -params.HalfMaxWorldHeight || y > params.HalfMaxWorldHeight {
			pt.pos[1] = clamp32(y, -params.HalfMaxWorldHeight, params.HalfMaxWorldHeight)
			pt.vel[1] = 0
		}
	}
}

// splash pushes the ocean surface where points cross it.
func (s *Ship) splash(ocean Ocean) {
	for i := range s.points {
		pt := &s.points[i]
		underwater := pt.pos.Y() < ocean.HeightAt(pt.pos.X())
		if underwater != pt.underwater {
			ocean.DisplaceAt(pt.pos.X(), pt.vel.Y()*splashFactor)
			pt.underwater = underwater
		}
	}
}

// updateStrains breaks the springs stretched or squashed beyond their
// strength.
func (s *Ship) updateStrains(p *params.Parameters) {
	for i := range s.springs {
		spr := &s.springs[i]
		if spr.deleted {
			continue
		}
		length := s.points[spr.a].pos.Sub(s.points[spr.b].pos).Len()
		strain := abs32(length-spr.restLength) / spr.restLength
		if strain > spr.strength*p.SpringStrengthAdjustment {
			s.destroySpring(gadgets.SpringIndex(i))
		}
	}
}

// propagateHeat diffuses temperature along springs and lets every point
// cool towards the ambient temperature.
func (s *Ship) propagateHeat(p *params.Parameters) {
	dt := params.SimulationStepTimeDuration
	k := heatConductivity * p.ThermalConductivityAdjustment * dt
	for i := range s.springs {
		spr := &s.springs[i]
		if spr.deleted {
			continue
		}
		a, b := &s.points[spr.a], &s.points[spr.b]
		flow := (b.temperature - a.temperature) * k
		a.temperature += flow
		b.temperature -= flow
	}
	cooling := 1 - float32(math.Exp(float64(-ambientCoolingFactor*dt)))
	for i := range s.points {
		pt := &s.points[i]
		pt.temperature += (params.AmbientTemperature - pt.temperature) * cooling
	}
}

// heatPoint adds energy (KJ) to a point.
func (s *Ship) heatPoint(i int, energy float32) {
	pt := &s.points[i]
	pt.temperature += energy / (pt.totalMass() * specificHeat)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

func clamp32(v, lo, hi float32) float32 {
	return max(lo, min(v, hi))
}
