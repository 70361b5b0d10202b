// Command oceantui runs the ocean sandbox in a terminal.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"oceansandbox/internal/params"
	"oceansandbox/internal/ship"
	"oceansandbox/internal/world"
)

var (
	seedFlag    = flag.Uint64("seed", 1, "random seed for waves, wind and raft generation")
	workersFlag = flag.Int("workers", 0, "ship integration workers (0 = NumCPU)")
	logFlag     = flag.String("log", "oceantui.log", "file receiving log output while the UI is running")
	calmFlag    = flag.Bool("calm", false, "disable automatic tsunamis and rogue waves")
)

func main() {
	flag.Parse()

	f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening log: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()
	log.SetOutput(f)
	log.Printf("=== oceantui started ===")

	workers := *workersFlag
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	p := params.Default()
	if *calmFlag {
		p.TsunamiRate = 0
		p.RogueWaveRate = 0
	}

	w, err := world.New(world.Config{
		Seed:    *seedFlag,
		Workers: workers,
		Raft:    ship.DefaultRaft(),
	}, &p, time.Now())
	if err != nil {
		log.Printf("Startup failed: %v", err)
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}
	defer w.Close()

	prog := tea.NewProgram(newModel(w), tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		log.Printf("TUI exited: %v", err)
		fmt.Fprintf(os.Stderr, "oceantui: %v\n", err)
	}
	log.Printf("=== oceantui stopped ===")
}
