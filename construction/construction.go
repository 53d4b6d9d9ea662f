// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package construction stacks resolved material layers into a named
// construction. Layer 0 faces the outside environment; the last layer faces
// the zone.
package construction

import (
	"errors"
	"fmt"
	"math"

	"github.com/specialistvlad/singlezone/material"
)

var (
	// ErrEmptyConstruction is returned when no layers are supplied.
	ErrEmptyConstruction = errors.New("construction: at least one layer is required")

	// ErrInvalidOpticalProperty is returned when emissivity or solar
	// absorptance lies outside [0,1].
	ErrInvalidOpticalProperty = errors.New("construction: optical property out of range")
)

// Construction is an ordered stack of layers, outside to inside.
type Construction struct {
	Name             string
	Layers           []material.Layer
	Emissivity       float64
	SolarAbsorptance float64
}

// Build copies the layers into a new construction and applies the
// building-wide optical properties to every layer.
func Build(name string, layers []material.Layer, emissivity, solarAbsorptance float64) (Construction, error) {
	if len(layers) == 0 {
		return Construction{}, ErrEmptyConstruction
	}
	if !unitInterval(emissivity) {
		return Construction{}, fmt.Errorf("%w: emissivity %g", ErrInvalidOpticalProperty, emissivity)
	}
	if !unitInterval(solarAbsorptance) {
		return Construction{}, fmt.Errorf("%w: solar absorptance %g", ErrInvalidOpticalProperty, solarAbsorptance)
	}

	stack := make([]material.Layer, len(layers))
	for i, l := range layers {
		l.Emissivity = emissivity
		l.SolarAbsorptance = solarAbsorptance
		stack[i] = l
	}

	return Construction{
		Name:             name,
		Layers:           stack,
		Emissivity:       emissivity,
		SolarAbsorptance: solarAbsorptance,
	}, nil
}

func unitInterval(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

// Outside returns the layer exposed to the exterior.
func (c Construction) Outside() material.Layer {
	return c.Layers[0]
}

// Inside returns the layer exposed to the zone.
func (c Construction) Inside() material.Layer {
	return c.Layers[len(c.Layers)-1]
}

// Thickness is the total thickness of all layers, in m.
func (c Construction) Thickness() float64 {
	var t float64
	for _, l := range c.Layers {
		t += l.Thickness
	}
	return t
}

// ThermalResistance sums layer resistances, in m²·K/W. Surface films are
// not included.
func (c Construction) ThermalResistance() float64 {
	var r float64
	for _, l := range c.Layers {
		r += l.ThermalResistance()
	}
	return r
}

// UValue is the inverse of ThermalResistance, in W/(m²·K).
func (c Construction) UValue() float64 {
	return 1 / c.ThermalResistance()
}

// HeatCapacity sums the areal heat capacity of all layers, in J/(m²·K).
func (c Construction) HeatCapacity() float64 {
	var hc float64
	for _, l := range c.Layers {
		hc += l.HeatCapacity()
	}
	return hc
}
