// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package simmodel is an in-memory simulation model: the owner of zones,
// surfaces, windows, constructions and loads that a thermal engine steps
// through. Entities are addressed by the index returned when they are added.
// Additions are append-only; nothing is ever replaced or removed.
package simmodel

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/google/uuid"
	"github.com/specialistvlad/singlezone/construction"
	"github.com/specialistvlad/singlezone/geometry"
	"github.com/specialistvlad/singlezone/stateregistry"
)

var (
	ErrUnknownReference = errors.New("simmodel: unknown reference")
	ErrInvalidEntity    = errors.New("simmodel: invalid entity")
	ErrDuplicateName    = errors.New("simmodel: duplicate name")
)

// Zone is a thermally lumped air volume.
type Zone struct {
	Name   string
	Volume float64 // m³
}

// Surface is an opaque exterior wall. Area is the net opaque area; the
// window, if any, is already subtracted.
type Surface struct {
	Name         string
	Zone         int
	Construction int
	Width        float64
	Height       float64
	Area         float64 // m²
	Azimuth      float64 // degrees, 0 = south, clockwise
	Loop         geometry.Loop
}

// GrossArea is the wall area before the window was cut out.
func (s Surface) GrossArea() float64 {
	return s.Width * s.Height
}

// Window is a fenestration inset into a surface.
type Window struct {
	Name         string
	Surface      int
	Construction int
	Width        float64
	Height       float64
	Area         float64 // m²
	Loop         geometry.Loop
}

// LoadKind classifies the quantities that feed the zone balance.
type LoadKind int

const (
	LoadInfiltration LoadKind = iota
	LoadHeater
	LoadLuminaire
)

func (k LoadKind) String() string {
	switch k {
	case LoadInfiltration:
		return "infiltration"
	case LoadHeater:
		return "heater"
	case LoadLuminaire:
		return "luminaire"
	default:
		return fmt.Sprintf("load(%d)", int(k))
	}
}

// Load binds a zone to the state variable that drives it.
type Load struct {
	Name     string
	Kind     LoadKind
	Zone     int
	Variable stateregistry.Variable
}

// Model implements the creation APIs consumed by the building assembler.
type Model struct {
	mu            sync.RWMutex
	id            uuid.UUID
	name          string
	zones         []Zone
	surfaces      []Surface
	windows       []Window
	constructions []construction.Construction
	loads         []Load
	names         map[string]struct{}
	log           *slog.Logger
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sends the model's debug logs to l instead of slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.log = l }
}

// New creates an empty model with a fresh identity.
func New(name string, opts ...Option) *Model {
	m := &Model{
		id:    uuid.New(),
		name:  name,
		names: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Model) logger() *slog.Logger {
	if m.log == nil {
		return slog.Default()
	}
	return m.log
}

func (m *Model) ID() uuid.UUID { return m.id }
func (m *Model) Name() string { return m.name }

// claim reserves an entity name. Callers hold the write lock.
func (m *Model) claim(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%w: %s name is empty", ErrInvalidEntity, kind)
	}
	key := kind + "/" + name
	if _, exists := m.names[key]; exists {
		return fmt.Errorf("%w: %s %q", ErrDuplicateName, kind, name)
	}
	m.names[key] = struct{}{}
	return nil
}

// AddConstruction stores a construction and returns its index.
func (m *Model) AddConstruction(c construction.Construction) (int, error) {
	if len(c.Layers) == 0 {
		return 0, fmt.Errorf("%w: construction %q has no layers", ErrInvalidEntity, c.Name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.claim("construction", c.Name); err != nil {
		return 0, err
	}
	m.constructions = append(m.constructions, c)
	m.logger().Debug("Model construction added.", "model", m.id, "name", c.Name, "layers", len(c.Layers))
	return len(m.constructions) - 1, nil
}

// AddZone stores a zone and returns its index.
func (m *Model) AddZone(z Zone) (int, error) {
	if math.IsNaN(z.Volume) || math.IsInf(z.Volume, 0) || z.Volume <= 0 {
		return 0, fmt.Errorf("%w: zone %q volume %g", ErrInvalidEntity, z.Name, z.Volume)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.claim("zone", z.Name); err != nil {
		return 0, err
	}
	m.zones = append(m.zones, z)
	m.logger().Debug("Model zone added.", "model", m.id, "name", z.Name, "volume", z.Volume)
	return len(m.zones) - 1, nil
}

// AddSurface stores a surface bounding an existing zone.
func (m *Model) AddSurface(s Surface) (int, error) {
	if s.Area < 0 || s.Area > s.GrossArea() {
		return 0, fmt.Errorf("%w: surface %q area %g outside [0, %g]", ErrInvalidEntity, s.Name, s.Area, s.GrossArea())
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if s.Zone < 0 || s.Zone >= len(m.zones) {
		return 0, fmt.Errorf("%w: surface %q zone %d", ErrUnknownReference, s.Name, s.Zone)
	}
	if s.Construction < 0 || s.Construction >= len(m.constructions) {
		return 0, fmt.Errorf("%w: surface %q construction %d", ErrUnknownReference, s.Name, s.Construction)
	}
	if err := m.claim("surface", s.Name); err != nil {
		return 0, err
	}
	m.surfaces = append(m.surfaces, s)
	m.logger().Debug("Model surface added.", "model", m.id, "name", s.Name, "area", s.Area, "azimuth", s.Azimuth)
	return len(m.surfaces) - 1, nil
}

// AddWindow stores a window on an existing surface.
func (m *Model) AddWindow(w Window) (int, error) {
	if w.Area <= 0 {
		return 0, fmt.Errorf("%w: window %q area %g", ErrInvalidEntity, w.Name, w.Area)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if w.Surface < 0 || w.Surface >= len(m.surfaces) {
		return 0, fmt.Errorf("%w: window %q surface %d", ErrUnknownReference, w.Name, w.Surface)
	}
	if w.Construction < 0 || w.Construction >= len(m.constructions) {
		return 0, fmt.Errorf("%w: window %q construction %d", ErrUnknownReference, w.Name, w.Construction)
	}
	host := m.surfaces[w.Surface]
	if w.Width > host.Width || w.Height > host.Height {
		return 0, fmt.Errorf("%w: window %q larger than surface %q", ErrInvalidEntity, w.Name, host.Name)
	}
	if err := m.claim("window", w.Name); err != nil {
		return 0, err
	}
	m.windows = append(m.windows, w)
	m.logger().Debug("Model window added.", "model", m.id, "name", w.Name, "surface", host.Name, "area", w.Area)
	return len(m.windows) - 1, nil
}

// AddLoad attaches a state-driven load to an existing zone.
func (m *Model) AddLoad(l Load) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l.Zone < 0 || l.Zone >= len(m.zones) {
		return 0, fmt.Errorf("%w: load %q zone %d", ErrUnknownReference, l.Name, l.Zone)
	}
	if err := m.claim("load", l.Name); err != nil {
		return 0, err
	}
	m.loads = append(m.loads, l)
	m.logger().Debug("Model load added.", "model", m.id, "name", l.Name, "kind", l.Kind.String(), "variable", l.Variable.Name())
	return len(m.loads) - 1, nil
}

// Zones returns a copy of all zones in index order.
func (m *Model) Zones() []Zone {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Zone(nil), m.zones...)
}

// Surfaces returns a copy of all surfaces in index order.
func (m *Model) Surfaces() []Surface {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Surface(nil), m.surfaces...)
}

// Windows returns a copy of all windows in index order.
func (m *Model) Windows() []Window {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Window(nil), m.windows...)
}

// Constructions returns a copy of all constructions in index order.
func (m *Model) Constructions() []construction.Construction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]construction.Construction(nil), m.constructions...)
}

// Loads returns a copy of all loads in index order.
func (m *Model) Loads() []Load {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Load(nil), m.loads...)
}

// LoadsOf returns the loads of the given kind.
func (m *Model) LoadsOf(kind LoadKind) []Load {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Load
	for _, l := range m.loads {
		if l.Kind == kind {
			out = append(out, l)
		}
	}
	return out
}

// Empty reports whether no entity has been added.
func (m *Model) Empty() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.zones)+len(m.surfaces)+len(m.windows)+len(m.constructions)+len(m.loads) == 0
}
