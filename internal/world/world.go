// Package world ties the ocean, the wind, the ship and its gadgets into one
// fixed-step simulation and exposes the interactive tools that act on them.
package world

import (
	"fmt"
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"oceansandbox/internal/events"
	"oceansandbox/internal/gadgets"
	"oceansandbox/internal/ocean"
	"oceansandbox/internal/params"
	"oceansandbox/internal/rng"
	"oceansandbox/internal/ship"
	"oceansandbox/internal/wind"
)

// Config selects how a World is built.
type Config struct {
	Seed      uint64
	Workers   int
	Raft      ship.Raft
	UseOpenCL bool
}

// World owns every simulated subsystem. It is not safe for concurrent use.
type World struct {
	params  *params.Parameters
	simTime float32

	bus    *events.Bus
	random rng.Source
	wind   *wind.Wind
	ocean  *ocean.Surface
	pool   *ship.TaskPool
	ship   *ship.Ship

	oceanDisturbances int
}

// New builds a world at rest. p is read on every update, so callers may
// tune it between ticks.
func New(cfg Config, p *params.Parameters, now time.Time) (*World, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	w := &World{
		params: p,
		bus:    events.NewBus(),
		random: rng.NewEngine(cfg.Seed),
		wind:   wind.New(int64(cfg.Seed)),
		pool:   ship.NewTaskPool(cfg.Workers),
	}
	dispatcher := events.NewDispatcher(w.bus)

	w.ocean = ocean.New(dispatcher, w.random, now, ocean.WithDisturbanceHandler(w.disturbOcean))
	if cfg.UseOpenCL {
		if err := w.ocean.UseOpenCL(); err != nil {
			log.Printf("world: %v; stepping the ocean on the CPU", err)
		}
	}
	w.ship = ship.New(0, cfg.Raft, w.random, w.ocean, dispatcher, w.pool)

	w.wind.Update(w.simTime, p)
	w.ocean.Update(now, w.simTime, w.wind, p)
	log.Printf("world: raft with %d points and %d springs, ocean solver %s, %d workers",
		w.ship.Count(), w.ship.SpringCount(), w.ocean.SolverName(), w.pool.Workers())
	return w, nil
}

// Close releases the solver and stops the workers.
func (w *World) Close() {
	w.ocean.Close()
	w.pool.Close()
}

// Update advances the simulation by one step. now drives the wall-clock
// schedules of abnormal waves and probe readings.
func (w *World) Update(now time.Time) {
	w.simTime += params.SimulationStepTimeDuration

	w.wind.Update(w.simTime, w.params)
	w.ocean.Update(now, w.simTime, w.wind, w.params)
	w.ship.Update(w.simTime, w.ocean, w.wind.CurrentSpeed(), w.params)
	w.ship.Gadgets().Update(now, w.simTime, w.params)
}

func (w *World) disturbOcean() {
	w.oceanDisturbances++
}

// Bus returns the event bus every notification is published on.
func (w *World) Bus() *events.Bus { return w.bus }

func (w *World) Ocean() *ocean.Surface { return w.ocean }

func (w *World) Ship() *ship.Ship { return w.ship }

func (w *World) Wind() *wind.Wind { return w.wind }

func (w *World) Params() *params.Parameters { return w.params }

// SimulationTime returns the seconds simulated so far.
func (w *World) SimulationTime() float32 { return w.simTime }

// OceanDisturbances counts the tsunamis that shook the whole ocean.
func (w *World) OceanDisturbances() int { return w.oceanDisturbances }

// AdjustOceanSurfaceTo drags the ocean towards pos; nil lets go.
func (w *World) AdjustOceanSurfaceTo(pos *mgl32.Vec2) {
	w.ocean.AdjustTo(pos, w.simTime)
}

// ApplyThanosSnap depresses the ocean between the two X fronts.
func (w *World) ApplyThanosSnap(leftFrontX, rightFrontX float32) {
	w.ocean.ApplyThanosSnap(leftFrontX, rightFrontX)
}

func (w *World) TriggerTsunami() {
	w.ocean.TriggerTsunami(w.simTime)
	w.disturbOcean()
}

func (w *World) TriggerRogueWave() {
	w.ocean.TriggerRogueWave(w.simTime, w.wind)
}

func (w *World) TriggerStorm() {
	w.wind.TriggerStorm(w.simTime)
	log.Printf("world: storm at t=%.1fs", w.simTime)
}

// ToggleGadgetAt places or removes a gadget of the given type near pos.
func (w *World) ToggleGadgetAt(kind gadgets.Type, pos mgl32.Vec2) gadgets.ToggleResult {
	return w.ship.Gadgets().ToggleGadgetAt(kind, pos, w.params)
}

func (w *World) TogglePhysicsProbeAt(pos mgl32.Vec2) gadgets.ToggleResult {
	return w.ship.Gadgets().TogglePhysicsProbeAt(pos, w.params)
}

func (w *World) DetonateRCBombs() {
	w.ship.Gadgets().DetonateRCBombs()
}

func (w *World) DetonateAntiMatterBombs() {
	w.ship.Gadgets().DetonateAntiMatterBombs()
}

// DestroyAt tears loose the ship points within radius of pos.
func (w *World) DestroyAt(pos mgl32.Vec2, radius float32) int {
	return w.ship.DestroyAt(pos, radius)
}

// HeatBlasterAt heats (or, with a negative rate, cools) the ship around
// pos for one step.
func (w *World) HeatBlasterAt(pos mgl32.Vec2, radius, heatRate float32) {
	w.ship.HeatBlasterAt(pos, radius, heatRate)
}

// RenderSinks are the consumers of one frame's upload.
type RenderSinks struct {
	Ocean   ocean.RenderSink
	Ship    ship.RenderSink
	Gadgets gadgets.RenderSink
}

// Upload sends the visible world to the sinks; nil sinks are skipped.
func (w *World) Upload(sinks RenderSinks, visibleLeft, visibleRight float32, detail ocean.RenderDetail) {
	if sinks.Ocean != nil {
		w.ocean.Upload(sinks.Ocean, visibleLeft, visibleRight, detail)
	}
	if sinks.Ship != nil {
		w.ship.Upload(sinks.Ship)
	}
	if sinks.Gadgets != nil {
		w.ship.Gadgets().Upload(sinks.Gadgets)
	}
}
