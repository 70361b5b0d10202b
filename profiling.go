package main

import (
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"sync"
	"time"
)

// sessionProfile is a CPU profile covering part of a sandbox session.
type sessionProfile struct {
	path    string
	file    *os.File
	started time.Time
	startAt float32 // simulation time when recording began
	once    sync.Once
}

// startSessionProfile starts CPU profiling into path. simTime is the
// simulation clock at the start, used to report the simulated span.
func startSessionProfile(path string, simTime float32) (*sessionProfile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("session profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("session profile %s: %w", path, err)
	}
	return &sessionProfile{path: path, file: f, started: time.Now(), startAt: simTime}, nil
}

// stop ends recording. Later calls do nothing.
func (p *sessionProfile) stop(simTime float32) {
	if p == nil {
		return
	}
	p.once.Do(func() {
		pprof.StopCPUProfile()
		if err := p.file.Close(); err != nil {
			log.Printf("Closing %s: %v", p.path, err)
			return
		}
		log.Printf("Wrote %s: %s wall clock, %.1fs simulated",
			p.path, time.Since(p.started).Round(time.Millisecond), simTime-p.startAt)
	})
}
