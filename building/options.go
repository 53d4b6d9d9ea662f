package building

import (
	"fmt"
	"math"

	"github.com/specialistvlad/singlezone/construction"
	"github.com/specialistvlad/singlezone/geometry"
	"github.com/specialistvlad/singlezone/material"
)

// Options describe a single-zone test building.
type Options struct {
	// Construction lists the wall layers from outside to inside.
	Construction []material.Selector

	// Optical properties applied to every layer.
	Emissivity       float64
	SolarAbsorptance float64

	SurfaceWidth  float64 // m
	SurfaceHeight float64 // m
	WindowWidth   float64 // m, 0 for no window
	WindowHeight  float64 // m, 0 for no window

	// Orientation is the azimuth the wall faces, in degrees. 0 is south and
	// angles grow clockwise.
	Orientation float64

	InfiltrationRate float64 // m³/s
	HeatingPower     float64 // W, 0 adds no heater
	LightingPower    float64 // W, 0 adds no luminaire
	ZoneVolume       float64 // m³
}

// DefaultOptions returns the baseline reference building: a 3 m × 3 m south
// wall of 20 cm concrete, no window, a 40 m³ zone, no infiltration and no
// loads.
func DefaultOptions() Options {
	return Options{
		Construction:     []material.Selector{material.NewConcrete(0.2)},
		Emissivity:       0.84,
		SolarAbsorptance: 0.7,
		SurfaceWidth:     3,
		SurfaceHeight:    3,
		WindowWidth:      0,
		WindowHeight:     0,
		Orientation:      0,
		InfiltrationRate: 0,
		HeatingPower:     0,
		LightingPower:    0,
		ZoneVolume:       40,
	}
}

// Validate runs every check Assemble performs before it touches a model.
func (o Options) Validate() error {
	_, err := o.plan()
	return err
}

// plan holds everything derived from the options ahead of entity creation.
type plan struct {
	construction construction.Construction
	areas        geometry.Areas
	azimuth      float64
	surfaceLoop  geometry.Loop
	windowLoop   geometry.Loop
}

func (o Options) plan() (plan, error) {
	layers, err := material.ResolveAll(o.Construction)
	if err != nil {
		return plan{}, err
	}
	c, err := construction.Build(ConstructionName, layers, o.Emissivity, o.SolarAbsorptance)
	if err != nil {
		return plan{}, err
	}

	areas, err := geometry.Compute(o.SurfaceWidth, o.SurfaceHeight, o.WindowWidth, o.WindowHeight)
	if err != nil {
		return plan{}, err
	}
	azimuth, err := geometry.Azimuth(o.Orientation)
	if err != nil {
		return plan{}, err
	}
	surfaceLoop, err := geometry.SurfaceLoop(o.SurfaceWidth, o.SurfaceHeight, o.Orientation)
	if err != nil {
		return plan{}, err
	}
	windowLoop, err := geometry.WindowLoop(o.SurfaceWidth, o.SurfaceHeight, o.WindowWidth, o.WindowHeight, o.Orientation)
	if err != nil {
		return plan{}, err
	}

	if !finite(o.ZoneVolume) || o.ZoneVolume <= 0 {
		return plan{}, fmt.Errorf("%w: %g", ErrInvalidZoneVolume, o.ZoneVolume)
	}
	if !finite(o.InfiltrationRate) || o.InfiltrationRate < 0 {
		return plan{}, fmt.Errorf("%w: %g", ErrNegativeInfiltration, o.InfiltrationRate)
	}
	if err := checkPower("heating", o.HeatingPower); err != nil {
		return plan{}, err
	}
	if err := checkPower("lighting", o.LightingPower); err != nil {
		return plan{}, err
	}

	return plan{
		construction: c,
		areas:        areas,
		azimuth:      azimuth,
		surfaceLoop:  surfaceLoop,
		windowLoop:   windowLoop,
	}, nil
}

func checkPower(what string, power float64) error {
	if !finite(power) || power < 0 {
		return fmt.Errorf("%w: %s power %g", ErrNegativePower, what, power)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
