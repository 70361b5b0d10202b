package gadgets

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oceansandbox/internal/params"
)

// tick returns the simulation time of step i.
func tick(i int) float32 {
	return float32(i) * params.SimulationStepTimeDuration
}

var epoch = time.Unix(1_700_000_000, 0)

func TestTogglePhysicsProbeWithoutPointsIsNoOp(t *testing.T) {
	h := newHarness(newFakeMesh())
	assert.Equal(t, ToggleNoOp, h.gadgets.TogglePhysicsProbeAt(mgl32.Vec2{0, 0}, &h.params))
	assert.False(t, h.gadgets.HasPhysicsProbe())
}

func TestTogglePhysicsProbeIgnoresIsolatedPoints(t *testing.T) {
	h := newHarness(newFakeMesh(mgl32.Vec2{0, 0}))
	assert.Equal(t, ToggleNoOp, h.gadgets.TogglePhysicsProbeAt(mgl32.Vec2{0, 0}, &h.params))
	assert.Empty(t, h.mesh.attached)
}

func TestTogglePhysicsProbePlacesThenRemoves(t *testing.T) {
	h := newHarness(pairMesh())
	pos := mgl32.Vec2{0.1, 10}

	require.Equal(t, TogglePlaced, h.gadgets.TogglePhysicsProbeAt(pos, &h.params))
	assert.True(t, h.gadgets.HasPhysicsProbe())
	assert.Equal(t, physicsProbeMass, h.mesh.attached[0])
	assert.Len(t, h.events.placed, 1)
	assert.Zero(t, h.gadgets.Count())

	require.Equal(t, ToggleRemoved, h.gadgets.TogglePhysicsProbeAt(pos, &h.params))
	assert.False(t, h.gadgets.HasPhysicsProbe())
	assert.Empty(t, h.mesh.attached)
	require.Len(t, h.events.removed, 1)
	assert.Equal(t, RemovalAboveWater, h.events.removed[0].sound)
}

func TestTogglePhysicsProbeRelocatesSilently(t *testing.T) {
	m := newFakeMesh(mgl32.Vec2{0, 10}, mgl32.Vec2{1, 10}, mgl32.Vec2{20, -5}, mgl32.Vec2{21, -5})
	m.connect(0, 1)
	m.connect(2, 3)
	h := newHarness(m)

	require.Equal(t, TogglePlaced, h.gadgets.TogglePhysicsProbeAt(mgl32.Vec2{0, 10}, &h.params))
	assert.Equal(t, TogglePlaced, h.gadgets.TogglePhysicsProbeAt(mgl32.Vec2{20, -5}, &h.params))

	assert.True(t, h.gadgets.HasPhysicsProbe())
	assert.Len(t, h.events.placed, 2)
	assert.Empty(t, h.events.removed)
	assert.False(t, m.IsGadgetAttached(0))
	assert.True(t, m.IsGadgetAttached(2))
}

func TestToggleGadgetPlacesOnNearestFreePoint(t *testing.T) {
	h := newHarness(pairMesh())
	require.Equal(t, TogglePlaced, placeProbe(t, h))

	require.Equal(t, TogglePlaced, h.gadgets.ToggleGadgetAt(TypeImpactBomb, mgl32.Vec2{0, 10}, &h.params))
	g := h.gadgets.All()[0]
	assert.Equal(t, PointIndex(1), g.PointIndex(), "point 0 carries the probe")
	assert.Equal(t, impactBombMass, h.mesh.attached[1])
	assert.Equal(t, ID{Ship: 7, Local: 1}, g.ID())
}

// placeProbe puts the probe on point 0 of a pair mesh.
func placeProbe(t *testing.T, h *harness) ToggleResult {
	t.Helper()
	return h.gadgets.TogglePhysicsProbeAt(mgl32.Vec2{0, 10}, &h.params)
}

func TestToggleGadgetRemovesGadgetInRange(t *testing.T) {
	h := newHarness(pairMesh())
	require.Equal(t, TogglePlaced, h.gadgets.ToggleGadgetAt(TypeTimerBomb, mgl32.Vec2{0, 10}, &h.params))
	require.Equal(t, ToggleRemoved, h.gadgets.ToggleGadgetAt(TypeTimerBomb, mgl32.Vec2{0.5, 10}, &h.params))

	assert.Zero(t, h.gadgets.Count())
	assert.Empty(t, h.mesh.attached)
	assert.Equal(t, []FuseState{FuseSlow, FuseStopped}, h.events.fuses)
	require.Len(t, h.events.removed, 1)
	assert.Equal(t, TypeTimerBomb, h.events.removed[0].kind)
}

func TestToggleGadgetBlockedByBusyGadget(t *testing.T) {
	h := newHarness(pairMesh())
	require.Equal(t, TogglePlaced, h.gadgets.ToggleGadgetAt(TypeImpactBomb, mgl32.Vec2{0, 10}, &h.params))

	h.mesh.temperature[0] = params.BombsTemperatureTrigger + 1
	h.gadgets.Update(epoch, tick(0), &h.params)

	assert.Equal(t, ToggleNoOp, h.gadgets.ToggleGadgetAt(TypeImpactBomb, mgl32.Vec2{0, 10}, &h.params))
	assert.Equal(t, 1, h.gadgets.Count())
}

// lineMesh returns n points ten units apart, each joined to the next.
func lineMesh(n int) *fakeMesh {
	pos := make([]mgl32.Vec2, n)
	for i := range pos {
		pos[i] = mgl32.Vec2{float32(i) * 10, 10}
	}
	m := newFakeMesh(pos...)
	for i := 0; i+1 < n; i++ {
		m.connect(PointIndex(i), PointIndex(i+1))
	}
	return m
}

func TestToggleGadgetEvictsOldestAtCapacity(t *testing.T) {
	h := newHarness(lineMesh(params.MaxGadgets + 1))
	for i := 0; i < params.MaxGadgets; i++ {
		require.Equal(t, TogglePlaced, h.gadgets.ToggleGadgetAt(TypeImpactBomb, h.mesh.pos[i], &h.params))
	}
	require.Equal(t, params.MaxGadgets, h.gadgets.Count())

	require.Equal(t, TogglePlaced, h.gadgets.ToggleGadgetAt(TypeImpactBomb, h.mesh.pos[params.MaxGadgets], &h.params))
	assert.Equal(t, params.MaxGadgets, h.gadgets.Count())
	require.Len(t, h.events.removed, 1)
	assert.Equal(t, h.events.placed[0], h.events.removed[0].id)
	assert.False(t, h.mesh.IsGadgetAttached(0))
}

func TestToggleGadgetAtCapacityWithNothingRemovable(t *testing.T) {
	h := newHarness(lineMesh(params.MaxGadgets + 1))
	for i := 0; i < params.MaxGadgets; i++ {
		require.Equal(t, TogglePlaced, h.gadgets.ToggleGadgetAt(TypeImpactBomb, h.mesh.pos[i], &h.params))
		h.mesh.temperature[i] = params.BombsTemperatureTrigger + 1
	}
	h.gadgets.Update(epoch, tick(0), &h.params)

	assert.Equal(t, ToggleNoOp, h.gadgets.ToggleGadgetAt(TypeImpactBomb, h.mesh.pos[params.MaxGadgets], &h.params))
	assert.Empty(t, h.events.removed)
}

func TestExpiredGadgetIsRemovedSilently(t *testing.T) {
	h := newHarness(pairMesh())
	require.Equal(t, TogglePlaced, h.gadgets.ToggleGadgetAt(TypeImpactBomb, mgl32.Vec2{0, 10}, &h.params))
	h.mesh.temperature[0] = params.BombsTemperatureTrigger + 1

	// Trigger, explode, then fade out.
	for i := 0; i < 2+ExplosionFadeoutStepsCount; i++ {
		h.gadgets.Update(epoch, tick(i), &h.params)
	}
	assert.Equal(t, 1, h.gadgets.Count())
	assert.False(t, h.mesh.IsGadgetAttached(0), "detached before expiring")
	assert.Empty(t, h.events.removed)

	h.gadgets.Update(epoch, tick(10), &h.params)
	assert.Zero(t, h.gadgets.Count())
	require.Len(t, h.events.removed, 1)
	assert.Equal(t, RemovalSilent, h.events.removed[0].sound)
	assert.Equal(t, []Type{TypeImpactBomb}, h.events.explosions)
}

func TestSpringDestroyedDisturbsNeighborhood(t *testing.T) {
	m := newFakeMesh(mgl32.Vec2{0, 10}, mgl32.Vec2{1, 10}, mgl32.Vec2{50, 10}, mgl32.Vec2{51, 10})
	near := m.connect(0, 1)
	m.connect(2, 3)
	h := newHarness(m)
	require.Equal(t, TogglePlaced, h.gadgets.ToggleGadgetAt(TypeImpactBomb, m.pos[0], &h.params))
	require.Equal(t, TogglePlaced, h.gadgets.ToggleGadgetAt(TypeImpactBomb, m.pos[2], &h.params))

	h.gadgets.OnSpringDestroyed(near)

	all := h.gadgets.All()
	_, tracking := all[0].TrackedSpring()
	assert.False(t, tracking)
	assert.False(t, all[0].MayBeRemoved(), "near bomb triggered")
	assert.True(t, all[1].MayBeRemoved(), "far bomb untouched")

	h.gadgets.Update(epoch, tick(0), &h.params)
	require.Len(t, h.physics.explosions, 1)
	assert.Equal(t, m.pos[0], h.physics.explosions[0].center)
}

func TestPointDetachedSpeedsUpTimerFuse(t *testing.T) {
	h := newHarness(pairMesh())
	require.Equal(t, TogglePlaced, h.gadgets.ToggleGadgetAt(TypeTimerBomb, mgl32.Vec2{0, 10}, &h.params))

	h.gadgets.OnPointDetached(1)
	assert.Equal(t, []FuseState{FuseSlow, FuseFast}, h.events.fuses)
}

func TestDetonateOnlyReachesMatchingType(t *testing.T) {
	m := newFakeMesh(mgl32.Vec2{0, 10}, mgl32.Vec2{1, 10}, mgl32.Vec2{50, 10}, mgl32.Vec2{51, 10})
	m.connect(0, 1)
	m.connect(2, 3)
	h := newHarness(m)
	require.Equal(t, TogglePlaced, h.gadgets.ToggleGadgetAt(TypeRCBomb, m.pos[0], &h.params))
	require.Equal(t, TogglePlaced, h.gadgets.ToggleGadgetAt(TypeAntiMatterBomb, m.pos[2], &h.params))
	all := h.gadgets.All()

	h.gadgets.DetonateAntiMatterBombs()
	assert.True(t, all[0].MayBeRemoved())
	assert.False(t, all[1].MayBeRemoved())
	assert.Equal(t, []bool{true, false}, h.events.contained)
	assert.Equal(t, 1, h.events.preImplode)

	h.gadgets.DetonateRCBombs()
	assert.False(t, all[0].MayBeRemoved())
}

func TestPhysicsProbeReadingsAreThrottled(t *testing.T) {
	h := newHarness(pairMesh())
	require.Equal(t, TogglePlaced, placeProbe(t, h))

	h.gadgets.Update(epoch, tick(0), &h.params)
	h.gadgets.Update(epoch.Add(100*time.Millisecond), tick(1), &h.params)
	h.gadgets.Update(epoch.Add(250*time.Millisecond), tick(2), &h.params)

	require.Len(t, h.events.readings, 2)
	assert.Equal(t, reading{mgl32.Vec2{1, -2}, params.AmbientTemperature, -10}, h.events.readings[0])
}

func TestRemoveAllDetachesEverything(t *testing.T) {
	h := newHarness(lineMesh(4))
	for i := 0; i < 3; i++ {
		require.Equal(t, TogglePlaced, h.gadgets.ToggleGadgetAt(TypeRCBomb, h.mesh.pos[i], &h.params))
	}
	require.Equal(t, TogglePlaced, h.gadgets.TogglePhysicsProbeAt(h.mesh.pos[3], &h.params))

	h.gadgets.RemoveAll()
	assert.Zero(t, h.gadgets.Count())
	assert.False(t, h.gadgets.HasPhysicsProbe())
	assert.Empty(t, h.mesh.attached)
	assert.Len(t, h.events.removed, 4)
}

func TestUploadSendsProbeLast(t *testing.T) {
	h := newHarness(lineMesh(3))
	require.Equal(t, TogglePlaced, h.gadgets.TogglePhysicsProbeAt(h.mesh.pos[0], &h.params))
	require.Equal(t, TogglePlaced, h.gadgets.ToggleGadgetAt(TypeAntiMatterBomb, h.mesh.pos[1], &h.params))

	var sink recordingSink
	h.gadgets.Upload(&sink)
	require.Len(t, sink.sprites, 2)
	assert.Equal(t, TypeAntiMatterBomb, sink.sprites[0].Frame.Group)
	assert.Equal(t, TypePhysicsProbe, sink.sprites[1].Frame.Group)
	assert.Equal(t, mgl32.Vec2{1, 0}, sink.sprites[1].RotationBase)
}
