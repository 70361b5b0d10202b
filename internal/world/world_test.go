package world

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oceansandbox/internal/events"
	"oceansandbox/internal/gadgets"
	"oceansandbox/internal/ocean"
	"oceansandbox/internal/params"
	"oceansandbox/internal/ship"
)

var epoch = time.Unix(1_700_000_000, 0)

func newTestWorld(t *testing.T) (*World, *[]events.Event) {
	t.Helper()
	p := params.Default()
	p.TsunamiRate = 0
	p.RogueWaveRate = 0

	w, err := New(Config{Seed: 3, Workers: 2, Raft: ship.DefaultRaft()}, &p, epoch)
	require.NoError(t, err)
	t.Cleanup(w.Close)

	var got []events.Event
	w.Bus().SubscribeAll(func(e events.Event) { got = append(got, e) })
	return w, &got
}

// run advances the world n steps of wall clock in lockstep with
// simulation time.
func run(w *World, n int) {
	for i := 0; i < n; i++ {
		now := epoch.Add(time.Duration(float64(w.SimulationTime()+params.SimulationStepTimeDuration) * float64(time.Second)))
		w.Update(now)
	}
}

func kinds(got []events.Event) []events.Kind {
	var out []events.Kind
	for _, e := range got {
		out = append(out, e.Kind)
	}
	return out
}

func TestNewRejectsInvalidParameters(t *testing.T) {
	p := params.Default()
	p.ToolSearchRadius = 0
	_, err := New(Config{Raft: ship.DefaultRaft()}, &p, epoch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid parameters")
}

func TestUpdateAdvancesSimulationTime(t *testing.T) {
	w, _ := newTestWorld(t)
	run(w, 64)
	assert.Equal(t, float32(1), w.SimulationTime())
	assert.Equal(t, "CPU", w.Ocean().SolverName())
}

func TestToolsPublishEvents(t *testing.T) {
	w, got := newTestWorld(t)

	require.Equal(t, gadgets.TogglePlaced, w.ToggleGadgetAt(gadgets.TypeRCBomb, mgl32.Vec2{0, 0}))
	require.Equal(t, gadgets.TogglePlaced, w.TogglePhysicsProbeAt(mgl32.Vec2{5, 0}))
	w.TriggerTsunami()

	assert.Equal(t, []events.Kind{events.KindGadgetPlaced, events.KindGadgetPlaced, events.KindTsunami}, kinds(*got))
	assert.Equal(t, gadgets.TypePhysicsProbe, (*got)[1].GadgetType)
	assert.True(t, w.Ocean().HasTsunami())
	assert.Equal(t, 1, w.OceanDisturbances())

	run(w, 1)
	assert.Contains(t, kinds(*got), events.KindPhysicsProbeReading)
}

func TestStormAndRogueWave(t *testing.T) {
	w, _ := newTestWorld(t)
	calm := w.Wind().BaseAndStormSpeedMagnitude()

	w.TriggerStorm()
	w.TriggerRogueWave()
	assert.True(t, w.Ocean().HasRogueWave())
	run(w, 64*5)

	assert.True(t, w.Wind().IsStorming())
	assert.Greater(t, w.Wind().BaseAndStormSpeedMagnitude(), calm)
}

func TestInteractiveWaveTool(t *testing.T) {
	w, _ := newTestWorld(t)
	w.AdjustOceanSurfaceTo(&mgl32.Vec2{100, 20})
	assert.True(t, w.Ocean().HasInteractiveWave())
	w.AdjustOceanSurfaceTo(nil)
	run(w, 1)
	w.ApplyThanosSnap(-50, 50)
}

func TestAntiMatterBombTearsTheRaft(t *testing.T) {
	w, got := newTestWorld(t)
	require.Equal(t, gadgets.TogglePlaced, w.ToggleGadgetAt(gadgets.TypeAntiMatterBomb, mgl32.Vec2{0, 0}))

	w.DetonateAntiMatterBombs()
	run(w, 400)

	assert.Zero(t, w.Ship().Gadgets().Count())
	var exploded bool
	for _, e := range *got {
		if e.Kind == events.KindBombExplosion {
			exploded = true
			assert.Equal(t, gadgets.TypeAntiMatterBomb, e.GadgetType)
		}
	}
	assert.True(t, exploded)
	assert.Positive(t, w.Ship().BrokenSprings())
}

func TestDestroyAndHeatTools(t *testing.T) {
	w, _ := newTestWorld(t)
	assert.Equal(t, 1, w.DestroyAt(mgl32.Vec2{0, 0}, 0.5))
	assert.Equal(t, 1, w.Ship().DetachedPoints())

	p, ok := w.Ship().NearestPointAt(mgl32.Vec2{3, 1}, 0.5)
	require.True(t, ok)
	w.HeatBlasterAt(mgl32.Vec2{3, 1}, 0.5, 64000)
	assert.Greater(t, w.Ship().Temperature(p), params.AmbientTemperature)
}

type countingSinks struct {
	oceanStarts, oceanVertices int
	springs, points, sprites   int
}

func (c *countingSinks) UploadOceanBasicStart(int)         { c.oceanStarts++ }
func (c *countingSinks) UploadOceanBasic(float32, float32) { c.oceanVertices++ }
func (c *countingSinks) UploadOceanBasicEnd()              {}
func (c *countingSinks) UploadOceanDetailedStart(int)      { c.oceanStarts++ }
func (c *countingSinks) UploadOceanDetailed(float32, float32, float32, float32) {
	c.oceanVertices++
}
func (c *countingSinks) UploadOceanDetailedEnd() {}

func (c *countingSinks) UploadSpring(gadgets.PlaneID, mgl32.Vec2, mgl32.Vec2, float32) {
	c.springs++
}
func (c *countingSinks) UploadPoint(gadgets.PlaneID, mgl32.Vec2, float32) { c.points++ }
func (c *countingSinks) UploadExplosion(gadgets.PlaneID, mgl32.Vec2, float32, float32) {
}
func (c *countingSinks) UploadGadget(gadgets.ShipID, gadgets.Sprite) { c.sprites++ }

func TestUploadFeedsEverySink(t *testing.T) {
	w, _ := newTestWorld(t)
	require.Equal(t, gadgets.TogglePlaced, w.ToggleGadgetAt(gadgets.TypeTimerBomb, mgl32.Vec2{0, 0}))
	run(w, 1)

	var c countingSinks
	w.Upload(RenderSinks{Ocean: &c, Ship: &c, Gadgets: &c}, -100, 100, ocean.RenderDetailBasic)
	assert.Equal(t, 1, c.oceanStarts)
	assert.Positive(t, c.oceanVertices)
	assert.Equal(t, w.Ship().SpringCount(), c.springs)
	assert.Zero(t, c.points)
	assert.Equal(t, 1, c.sprites)

	w.Upload(RenderSinks{}, -100, 100, ocean.RenderDetailDetailed)
}
