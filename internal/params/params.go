// Package params holds the simulation-wide constants and the tunable
// parameters shared by the ocean, wind, ship and gadget subsystems.
package params

import (
	"errors"
	"fmt"
	"time"
)

// World and integration constants.
const (
	SimulationStepTimeDuration = float32(1.0 / 64.0)
	GravityMagnitude           = float32(9.80)
	MaxWorldWidth              = float32(5000.0)
	HalfMaxWorldWidth          = MaxWorldWidth / 2.0
	MaxWorldHeight             = float32(40000.0)
	HalfMaxWorldHeight         = MaxWorldHeight / 2.0
)

// Gadget constants.
const (
	// BombsTemperatureTrigger is the point temperature (K) above which
	// heat-sensitive bombs go off.
	BombsTemperatureTrigger = float32(373.0)
	MaxGadgets              = 64
	AmbientTemperature      = float32(298.15)
)

// Parameters are the user-tunable knobs read by every subsystem on each
// tick. A zero Parameters is not valid; start from Default.
type Parameters struct {
	// Ocean
	BasalWaveHeightAdjustment float32
	BasalWaveLengthAdjustment float32
	BasalWaveSpeedAdjustment  float32
	TsunamiRate               time.Duration // zero disables automatic tsunamis
	RogueWaveRate             time.Duration // zero disables automatic rogue waves

	// Wind
	WindSpeedBase      float32 // km/h, signed: negative blows leftwards
	WindSpeedMaxFactor float32
	DoModulateWind     bool

	// Tools
	ToolSearchRadius float32

	// Bombs
	BombBlastRadius                 float32
	BombBlastForceAdjustment        float32
	BombBlastHeat                   float32 // KJ/s
	AntiMatterBombImplosionStrength float32
	TimerBombInterval               time.Duration
	IsUltraViolentMode              bool

	// Ship
	SpringStiffnessAdjustment     float32
	SpringStrengthAdjustment      float32
	WaterDragAdjustment           float32
	ThermalConductivityAdjustment float32
}

// Default returns the parameter set the simulation starts with.
func Default() Parameters {
	return Parameters{
		BasalWaveHeightAdjustment: 1.0,
		BasalWaveLengthAdjustment: 1.0,
		BasalWaveSpeedAdjustment:  1.0,
		TsunamiRate:               15 * time.Minute,
		RogueWaveRate:             2 * time.Minute,

		WindSpeedBase:      20.0,
		WindSpeedMaxFactor: 2.5,
		DoModulateWind:     true,

		ToolSearchRadius: 2.0,

		BombBlastRadius:                 0.5,
		BombBlastForceAdjustment:        1.0,
		BombBlastHeat:                   400000.0,
		AntiMatterBombImplosionStrength: 3.0,
		TimerBombInterval:               10 * time.Second,
		IsUltraViolentMode:              false,

		SpringStiffnessAdjustment:     1.0,
		SpringStrengthAdjustment:      1.0,
		WaterDragAdjustment:           1.0,
		ThermalConductivityAdjustment: 1.0,
	}
}

// Validate reports parameter combinations that would make the simulation
// divide by zero or run away.
func (p *Parameters) Validate() error {
	var errs []error
	if p.BasalWaveHeightAdjustment < 0 || p.BasalWaveHeightAdjustment > 100 {
		errs = append(errs, fmt.Errorf("basal wave height adjustment %.3f out of range [0, 100]", p.BasalWaveHeightAdjustment))
	}
	if p.BasalWaveLengthAdjustment <= 0 {
		errs = append(errs, fmt.Errorf("basal wave length adjustment must be positive, got %.3f", p.BasalWaveLengthAdjustment))
	}
	if p.BasalWaveSpeedAdjustment <= 0 {
		errs = append(errs, fmt.Errorf("basal wave speed adjustment must be positive, got %.3f", p.BasalWaveSpeedAdjustment))
	}
	if p.TsunamiRate < 0 || p.RogueWaveRate < 0 {
		errs = append(errs, errors.New("abnormal wave rates must not be negative"))
	}
	if p.WindSpeedMaxFactor < 1 {
		errs = append(errs, fmt.Errorf("wind speed max factor must be at least 1, got %.3f", p.WindSpeedMaxFactor))
	}
	if p.ToolSearchRadius <= 0 {
		errs = append(errs, fmt.Errorf("tool search radius must be positive, got %.3f", p.ToolSearchRadius))
	}
	if p.BombBlastRadius <= 0 {
		errs = append(errs, fmt.Errorf("bomb blast radius must be positive, got %.3f", p.BombBlastRadius))
	}
	if p.TimerBombInterval <= 0 {
		errs = append(errs, fmt.Errorf("timer bomb interval must be positive, got %s", p.TimerBombInterval))
	}
	if p.SpringStiffnessAdjustment <= 0 || p.SpringStrengthAdjustment <= 0 {
		errs = append(errs, errors.New("spring adjustments must be positive"))
	}
	return errors.Join(errs...)
}
