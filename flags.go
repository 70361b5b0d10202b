package main

import (
	"flag"

	"oceansandbox/internal/params"
)

// Command-line flags. The tunables start from params.Default and are copied
// into a Parameters value by parametersFromFlags.
var (
	// seedFlag fixes the random sequence driving waves, wind and the raft.
	seedFlag = flag.Uint64("seed", 1, "random seed for waves, wind and raft generation")

	// workersFlag sizes the ship's task pool; zero uses every CPU.
	workersFlag = flag.Int("workers", 0, "ship integration workers (0 = NumCPU)")

	// openCLFlag asks for the OpenCL shallow-water solver when built with -tags opencl.
	openCLFlag = flag.Bool("opencl", false, "integrate the ocean on an OpenCL device when available")

	// recordDefaultPGO triggers a scripted tool session to produce default.pgo.
	recordDefaultPGO = flag.Bool("record-default-pgo", false, "use tools randomly for 15s while capturing default.pgo")

	cpuProfileFlag = flag.String("cpuprofile", "", "write a CPU profile to this file")

	// debugFlag enables the FPS and simulation overlay.
	debugFlag = flag.Bool("debug", false, "show FPS and simulation timing overlay")

	detailedOceanFlag = flag.Bool("detailed-ocean", true, "draw three parallax ocean planes instead of one")

	// enableAudioFlag toggles event sounds (explosions, pings, fuses).
	enableAudioFlag = flag.Bool("enable-audio", false, "play gadget event sounds")

	// explosionWAVFlag replaces the synthesized explosion with a WAV sample.
	explosionWAVFlag = flag.String("explosion-wav", "", "WAV file played for bomb explosions")

	waveHeightFlag    = flag.Float64("wave-height", float64(params.Default().BasalWaveHeightAdjustment), "basal wave height adjustment")
	waveLengthFlag    = flag.Float64("wave-length", float64(params.Default().BasalWaveLengthAdjustment), "basal wave length adjustment")
	waveSpeedFlag     = flag.Float64("wave-speed", float64(params.Default().BasalWaveSpeedAdjustment), "basal wave speed adjustment")
	tsunamiRateFlag   = flag.Duration("tsunami-rate", params.Default().TsunamiRate, "mean time between automatic tsunamis (0 disables)")
	rogueWaveRateFlag = flag.Duration("rogue-wave-rate", params.Default().RogueWaveRate, "mean time between automatic rogue waves (0 disables)")
	windSpeedFlag     = flag.Float64("wind-speed", float64(params.Default().WindSpeedBase), "base wind speed in km/h, negative blows left")
	modulateWindFlag  = flag.Bool("modulate-wind", params.Default().DoModulateWind, "add gusts to the base wind")
	blastRadiusFlag   = flag.Float64("blast-radius", float64(params.Default().BombBlastRadius), "bomb blast radius in metres")
	timerBombFlag     = flag.Duration("timer-bomb-interval", params.Default().TimerBombInterval, "timer bomb fuse length")
	ultraViolentFlag  = flag.Bool("ultra-violent", false, "multiply bomb radius, force and heat")
)

// parametersFromFlags builds the simulation parameters from the parsed flags.
func parametersFromFlags() params.Parameters {
	p := params.Default()
	p.BasalWaveHeightAdjustment = float32(*waveHeightFlag)
	p.BasalWaveLengthAdjustment = float32(*waveLengthFlag)
	p.BasalWaveSpeedAdjustment = float32(*waveSpeedFlag)
	p.TsunamiRate = *tsunamiRateFlag
	p.RogueWaveRate = *rogueWaveRateFlag
	p.WindSpeedBase = float32(*windSpeedFlag)
	p.DoModulateWind = *modulateWindFlag
	p.BombBlastRadius = float32(*blastRadiusFlag)
	p.TimerBombInterval = *timerBombFlag
	p.IsUltraViolentMode = *ultraViolentFlag
	return p
}
