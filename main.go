package main

import (
	"errors"
	"flag"
	"log"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"

	"oceansandbox/internal/ship"
	"oceansandbox/internal/world"
)

func main() {
	flag.Parse()
	runtime.GOMAXPROCS(runtime.NumCPU())

	workers := *workersFlag
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	cfg := world.Config{
		Seed:      *seedFlag,
		Workers:   workers,
		Raft:      ship.DefaultRaft(),
		UseOpenCL: *openCLFlag,
	}

	g, err := newGame(cfg, parametersFromFlags())
	if err != nil {
		log.Fatalf("Startup failed: %v", err)
	}
	defer g.close()

	switch {
	case *recordDefaultPGO:
		profile, err := startSessionProfile("default.pgo", 0)
		if err != nil {
			log.Fatalf("Recording default.pgo: %v", err)
		}
		g.profile = profile
		g.enableAutoplay(pgoRecordDuration)
		log.Printf("Recording default.pgo for %s", pgoRecordDuration)
	case *cpuProfileFlag != "":
		profile, err := startSessionProfile(*cpuProfileFlag, 0)
		if err != nil {
			log.Fatalf("Recording %s: %v", *cpuProfileFlag, err)
		}
		g.profile = profile
	}

	ebiten.SetWindowSize(screenWidth*windowScale, screenHeight*windowScale)
	ebiten.SetWindowTitle("Ocean Sandbox")
	ebiten.SetTPS(defaultTPS)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Printf("Game exited: %v", err)
	}
}
