package optionsfile

import (
	"fmt"

	"github.com/specialistvlad/singlezone/building"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// scalars mirrors the numeric fields of building.Options under their file
// attribute names.
type scalars struct {
	ZoneVolume       float64 `cty:"zone_volume"`
	SurfaceWidth     float64 `cty:"surface_width"`
	SurfaceHeight    float64 `cty:"surface_height"`
	WindowWidth      float64 `cty:"window_width"`
	WindowHeight     float64 `cty:"window_height"`
	Orientation      float64 `cty:"orientation"`
	InfiltrationRate float64 `cty:"infiltration_rate"`
	HeatingPower     float64 `cty:"heating_power"`
	LightingPower    float64 `cty:"lighting_power"`
	Emissivity       float64 `cty:"emissivity"`
	SolarAbsorptance float64 `cty:"solar_absorptance"`
}

// attributeOrder is the order attributes are written in.
var attributeOrder = []string{
	"zone_volume",
	"surface_width",
	"surface_height",
	"window_width",
	"window_height",
	"orientation",
	"infiltration_rate",
	"heating_power",
	"lighting_power",
	"emissivity",
	"solar_absorptance",
}

func scalarsOf(o building.Options) scalars {
	return scalars{
		ZoneVolume:       o.ZoneVolume,
		SurfaceWidth:     o.SurfaceWidth,
		SurfaceHeight:    o.SurfaceHeight,
		WindowWidth:      o.WindowWidth,
		WindowHeight:     o.WindowHeight,
		Orientation:      o.Orientation,
		InfiltrationRate: o.InfiltrationRate,
		HeatingPower:     o.HeatingPower,
		LightingPower:    o.LightingPower,
		Emissivity:       o.Emissivity,
		SolarAbsorptance: o.SolarAbsorptance,
	}
}

// toCty converts the scalar options into a cty object keyed by attribute name.
func (s scalars) toCty() (cty.Value, error) {
	ty, err := gocty.ImpliedType(s)
	if err != nil {
		return cty.NilVal, fmt.Errorf("could not imply cty type for options: %w", err)
	}
	val, err := gocty.ToCtyValue(s, ty)
	if err != nil {
		return cty.NilVal, fmt.Errorf("could not convert options to cty: %w", err)
	}
	return val, nil
}

// overrides holds the attributes a file actually set.
type overrides struct {
	ZoneVolume       *float64 `yaml:"zone_volume"`
	SurfaceWidth     *float64 `yaml:"surface_width"`
	SurfaceHeight    *float64 `yaml:"surface_height"`
	WindowWidth      *float64 `yaml:"window_width"`
	WindowHeight     *float64 `yaml:"window_height"`
	Orientation      *float64 `yaml:"orientation"`
	InfiltrationRate *float64 `yaml:"infiltration_rate"`
	HeatingPower     *float64 `yaml:"heating_power"`
	LightingPower    *float64 `yaml:"lighting_power"`
	Emissivity       *float64 `yaml:"emissivity"`
	SolarAbsorptance *float64 `yaml:"solar_absorptance"`
}

func (ov overrides) apply(o *building.Options) {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&o.ZoneVolume, ov.ZoneVolume)
	set(&o.SurfaceWidth, ov.SurfaceWidth)
	set(&o.SurfaceHeight, ov.SurfaceHeight)
	set(&o.WindowWidth, ov.WindowWidth)
	set(&o.WindowHeight, ov.WindowHeight)
	set(&o.Orientation, ov.Orientation)
	set(&o.InfiltrationRate, ov.InfiltrationRate)
	set(&o.HeatingPower, ov.HeatingPower)
	set(&o.LightingPower, ov.LightingPower)
	set(&o.Emissivity, ov.Emissivity)
	set(&o.SolarAbsorptance, ov.SolarAbsorptance)
}
