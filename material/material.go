// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package material

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidThickness is returned when a layer thickness is not a finite,
	// strictly positive number of meters.
	ErrInvalidThickness = errors.New("material: thickness must be positive")

	// ErrUnknownKind is returned for a material kind outside the catalog.
	ErrUnknownKind = errors.New("material: unknown kind")
)

// Kind identifies one of the supported test materials.
type Kind int

// The material catalog.
const (
	Air          Kind = iota // still air gap
	Concrete                 // dense cast concrete
	Glass                    // float glass pane
	Polyurethane             // rigid foam insulation
)

var kindNames = map[Kind]string{
	Air:          "air",
	Concrete:     "concrete",
	Glass:        "glass",
	Polyurethane: "polyurethane",
}

// String returns the lower-case name used in options files.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a case-insensitive material name to its Kind.
func ParseKind(name string) (Kind, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == needle {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Selector picks a material kind at a given thickness. It is a value type
// and cannot be changed once built.
type Selector struct {
	kind      Kind
	thickness float64
}

// New returns a selector for the given kind and thickness in meters. The
// thickness is checked when the selector is resolved.
func New(kind Kind, thickness float64) Selector {
	return Selector{kind: kind, thickness: thickness}
}

// NewAir returns an air gap of the given thickness.
func NewAir(thickness float64) Selector { return New(Air, thickness) }

// NewConcrete returns a concrete layer of the given thickness.
func NewConcrete(thickness float64) Selector { return New(Concrete, thickness) }

// NewGlass returns a glass layer of the given thickness.
func NewGlass(thickness float64) Selector { return New(Glass, thickness) }

// NewPolyurethane returns a polyurethane layer of the given thickness.
func NewPolyurethane(thickness float64) Selector { return New(Polyurethane, thickness) }

// Kind reports the selected material.
func (s Selector) Kind() Kind { return s.kind }

// Thickness reports the requested thickness in meters, unchecked.
func (s Selector) Thickness() float64 { return s.thickness }

// String formats the selector as kind(thickness m), e.g. "glass(0.006m)".
func (s Selector) String() string { return fmt.Sprintf("%s(%gm)", s.kind, s.thickness) }

// Properties are the thickness-independent constants of a material kind.
type Properties struct {
	Conductivity float64 // W/(m·K)
	Density      float64 // kg/m³
	SpecificHeat float64 // J/(kg·K)
}

var catalog = map[Kind]Properties{
	Air:          {Conductivity: 0.0257, Density: 1.225, SpecificHeat: 1006},
	Concrete:     {Conductivity: 0.816, Density: 1700, SpecificHeat: 800},
	Glass:        {Conductivity: 1.0, Density: 2500, SpecificHeat: 840},
	Polyurethane: {Conductivity: 0.0252, Density: 17.5, SpecificHeat: 2400},
}

// Lookup returns the constants for a kind.
func Lookup(k Kind) (Properties, error) {
	p, ok := catalog[k]
	if !ok {
		return Properties{}, fmt.Errorf("%w: %s", ErrUnknownKind, k)
	}
	return p, nil
}

// Layer is a resolved construction layer.
type Layer struct {
	Kind         Kind
	Thickness    float64 // m
	Conductivity float64 // W/(m·K)
	Density      float64 // kg/m³
	SpecificHeat float64 // J/(kg·K)

	// Set by the construction builder from building-wide options.
	Emissivity       float64
	SolarAbsorptance float64
}

// ThermalResistance is thickness over conductivity, in m²·K/W.
func (l Layer) ThermalResistance() float64 {
	return l.Thickness / l.Conductivity
}

// HeatCapacity is the areal heat capacity of the layer, in J/(m²·K).
func (l Layer) HeatCapacity() float64 {
	return l.Density * l.SpecificHeat * l.Thickness
}

// Resolve looks up the selector's kind and returns the layer it describes.
func Resolve(sel Selector) (Layer, error) {
	t := sel.thickness
	if math.IsNaN(t) || math.IsInf(t, 0) || t <= 0 {
		return Layer{}, fmt.Errorf("%w: %s has thickness %g", ErrInvalidThickness, sel.kind, t)
	}
	p, err := Lookup(sel.kind)
	if err != nil {
		return Layer{}, err
	}
	return Layer{
		Kind:         sel.kind,
		Thickness:    t,
		Conductivity: p.Conductivity,
		Density:      p.Density,
		SpecificHeat: p.SpecificHeat,
	}, nil
}

// ResolveAll resolves selectors in order and stops at the first error.
func ResolveAll(sels []Selector) ([]Layer, error) {
	layers := make([]Layer, 0, len(sels))
	for i, sel := range sels {
		l, err := Resolve(sel)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		layers = append(layers, l)
	}
	return layers, nil
}
