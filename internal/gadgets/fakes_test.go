package gadgets

import (
	"github.com/go-gl/mathgl/mgl32"

	"oceansandbox/internal/params"
)

type fakeSpring struct{ a, b PointIndex }

// fakeMesh is a tiny mass-spring mesh with settable temperatures.
type fakeMesh struct {
	pos         []mgl32.Vec2
	temperature []float32
	springs     []fakeSpring
	attached    map[PointIndex]float32
}

func newFakeMesh(pos ...mgl32.Vec2) *fakeMesh {
	m := &fakeMesh{
		pos:         pos,
		temperature: make([]float32, len(pos)),
		attached:    map[PointIndex]float32{},
	}
	for i := range m.temperature {
		m.temperature[i] = params.AmbientTemperature
	}
	return m
}

func (m *fakeMesh) connect(a, b PointIndex) SpringIndex {
	m.springs = append(m.springs, fakeSpring{a, b})
	return SpringIndex(len(m.springs) - 1)
}

func (m *fakeMesh) Count() int                           { return len(m.pos) }
func (m *fakeMesh) Position(p PointIndex) mgl32.Vec2     { return m.pos[p] }
func (m *fakeMesh) Velocity(PointIndex) mgl32.Vec2       { return mgl32.Vec2{1, -2} }
func (m *fakeMesh) Temperature(p PointIndex) float32     { return m.temperature[p] }
func (m *fakeMesh) PlaneID(p PointIndex) PlaneID         { return PlaneID(p) }
func (m *fakeMesh) IsGadgetAttached(p PointIndex) bool   { _, ok := m.attached[p]; return ok }
func (m *fakeMesh) AttachGadget(p PointIndex, w float32) { m.attached[p] = w }
func (m *fakeMesh) DetachGadget(p PointIndex)            { delete(m.attached, p) }

func (m *fakeMesh) ConnectedSprings(p PointIndex) []SpringIndex {
	var out []SpringIndex
	for i, s := range m.springs {
		if s.a == p || s.b == p {
			out = append(out, SpringIndex(i))
		}
	}
	return out
}

func (m *fakeMesh) OtherEndpoint(s SpringIndex, p PointIndex) PointIndex {
	if m.springs[s].a == p {
		return m.springs[s].b
	}
	return m.springs[s].a
}

func (m *fakeMesh) SpringMidpoint(s SpringIndex) mgl32.Vec2 {
	return m.pos[m.springs[s].a].Add(m.pos[m.springs[s].b]).Mul(0.5)
}

type explosion struct {
	center   mgl32.Vec2
	plane    PlaneID
	radius   float32
	strength float32
	heat     float32
}

type fakePhysics struct {
	explosions    []explosion
	preimplosions []float32 // radii
	implosions    []float32 // progress
	antiMatter    []float32 // explosion progress
}

func (f *fakePhysics) StartExplosion(_ float32, plane PlaneID, center mgl32.Vec2, radius, strength, heat float32, _ ExplosionType, _ *params.Parameters) {
	f.explosions = append(f.explosions, explosion{center, plane, radius, strength, heat})
}

func (f *fakePhysics) DoAntiMatterBombPreimplosion(_ mgl32.Vec2, _, radius float32, _ *params.Parameters) {
	f.preimplosions = append(f.preimplosions, radius)
}

func (f *fakePhysics) DoAntiMatterBombImplosion(_ mgl32.Vec2, progress float32, _ *params.Parameters) {
	f.implosions = append(f.implosions, progress)
}

func (f *fakePhysics) DoAntiMatterBombExplosion(_ mgl32.Vec2, progress float32, _ *params.Parameters) {
	f.antiMatter = append(f.antiMatter, progress)
}

// seaLevel puts everything below y=0 under water.
type seaLevel struct{}

func (seaLevel) IsUnderwater(pos mgl32.Vec2) bool { return pos.Y() < 0 }
func (seaLevel) DepthAt(pos mgl32.Vec2) float32   { return -pos.Y() }

type removal struct {
	id    ID
	kind  Type
	sound RemovalSound
}

type reading struct {
	velocity    mgl32.Vec2
	temperature float32
	depth       float32
}

type recordedEvents struct {
	placed     []ID
	removed    []removal
	explosions []Type
	fuses      []FuseState
	defused    int
	pings      int
	contained  []bool
	preImplode int
	implode    int
	readings   []reading
}

func (r *recordedEvents) OnGadgetPlaced(id ID, _ Type, _ bool) { r.placed = append(r.placed, id) }
func (r *recordedEvents) OnGadgetRemoved(id ID, t Type, s RemovalSound) {
	r.removed = append(r.removed, removal{id, t, s})
}
func (r *recordedEvents) OnBombExplosion(t Type, _ bool, _ int) {
	r.explosions = append(r.explosions, t)
}
func (r *recordedEvents) OnTimerBombFuse(_ ID, f FuseState) { r.fuses = append(r.fuses, f) }
func (r *recordedEvents) OnTimerBombDefused(bool, int)      { r.defused++ }
func (r *recordedEvents) OnRCBombPing(bool, int)            { r.pings++ }
func (r *recordedEvents) OnAntiMatterBombContained(_ ID, c bool) {
	r.contained = append(r.contained, c)
}
func (r *recordedEvents) OnAntiMatterBombPreImploding() { r.preImplode++ }
func (r *recordedEvents) OnAntiMatterBombImploding()    { r.implode++ }
func (r *recordedEvents) OnPhysicsProbeReading(v mgl32.Vec2, t, d float32) {
	r.readings = append(r.readings, reading{v, t, d})
}

type recordingSink struct {
	sprites []Sprite
}

func (s *recordingSink) UploadGadget(_ ShipID, sp Sprite) { s.sprites = append(s.sprites, sp) }

type harness struct {
	mesh    *fakeMesh
	physics *fakePhysics
	events  *recordedEvents
	gadgets *Gadgets
	params  params.Parameters
}

func newHarness(mesh *fakeMesh) *harness {
	h := &harness{
		mesh:    mesh,
		physics: &fakePhysics{},
		events:  &recordedEvents{},
		params:  params.Default(),
	}
	h.gadgets = New(7, mesh, h.physics, seaLevel{}, h.events)
	return h
}

// pairMesh returns two points joined by one spring, above water.
func pairMesh() *fakeMesh {
	m := newFakeMesh(mgl32.Vec2{0, 10}, mgl32.Vec2{1, 10})
	m.connect(0, 1)
	return m
}
