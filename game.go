package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"oceansandbox/internal/events"
	"oceansandbox/internal/params"
	"oceansandbox/internal/world"
)

const (
	defaultSimMultiplier = 1
	minSimMultiplier     = 1
	maxSimMultiplier     = 8
)

// Game owns the simulated world plus the camera, tool and HUD state of the
// window showing it.
type Game struct {
	world  *world.World
	params *params.Parameters

	camera camera
	tool   tool
	cursor mgl32.Vec2
	snap   thanosSnap
	paused bool

	lastSimDuration   time.Duration
	simStepMultiplier int

	autoplay           bool
	autoplayDeadline   time.Time
	autoplayRand       *rand.Rand
	autoplayFrameCount int
	profile            *sessionProfile

	events   *eventLog
	renderer *renderer
	audio    *eventAudio
}

// newGame builds the world from cfg and p and wires the front end to its
// event bus.
func newGame(cfg world.Config, p params.Parameters) (*Game, error) {
	g := &Game{
		params:            &p,
		camera:            newCamera(screenWidth, screenHeight),
		tool:              toolTimerBomb,
		simStepMultiplier: defaultSimMultiplier,
		events:            newEventLog(hudEventLines),
		autoplayRand:      rand.New(rand.NewSource(time.Now().UnixNano() + 2)),
	}
	w, err := world.New(cfg, g.params, time.Now())
	if err != nil {
		return nil, fmt.Errorf("creating world: %w", err)
	}
	g.world = w
	g.renderer = newRenderer()

	bus := w.Bus()
	bus.SubscribeAll(func(e events.Event) {
		if e.Kind == events.KindPhysicsProbeReading {
			g.renderer.setProbeReading(e)
			return
		}
		g.events.add(w.SimulationTime(), e.String())
	})

	if *enableAudioFlag {
		a, err := newEventAudio(bus, *explosionWAVFlag)
		if err != nil {
			log.Printf("Audio disabled: %v", err)
		} else {
			g.audio = a
		}
	}
	return g, nil
}

// close releases the world's workers and the audio player.
func (g *Game) close() {
	if g.audio != nil {
		g.audio.close()
	}
	g.profile.stop(g.world.SimulationTime())
	g.world.Close()
}

// Update applies input and advances the simulation by simStepMultiplier
// fixed steps.
func (g *Game) Update() error {
	if g.autoplay && time.Now().After(g.autoplayDeadline) {
		g.autoplay = false
		if g.profile != nil {
			g.profile.stop(g.world.SimulationTime())
			return ebiten.Termination
		}
	}

	g.handleInput()
	if g.paused {
		return nil
	}

	simStart := time.Now()
	for i := 0; i < g.simStepMultiplier; i++ {
		g.world.Update(time.Now())
	}
	g.lastSimDuration = time.Since(simStart)
	return nil
}

// Layout reports the logical screen size used by Ebiten.
func (g *Game) Layout(_, _ int) (int, int) { return screenWidth, screenHeight }

// eventLog keeps the most recent event lines for the HUD.
type eventLog struct {
	lines []string
	limit int
}

func newEventLog(limit int) *eventLog {
	return &eventLog{limit: limit}
}

func (l *eventLog) add(t float32, line string) {
	l.lines = append(l.lines, fmt.Sprintf("%7.2fs %s", t, line))
	if len(l.lines) > l.limit {
		l.lines = l.lines[len(l.lines)-l.limit:]
	}
}
