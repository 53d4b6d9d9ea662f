package building

import (
	"context"

	"github.com/specialistvlad/singlezone/construction"
	"github.com/specialistvlad/singlezone/geometry"
	"github.com/specialistvlad/singlezone/internal/ctxlog"
	"github.com/specialistvlad/singlezone/simmodel"
	"github.com/specialistvlad/singlezone/stateregistry"
)

// Names given to the entities of a test building.
const (
	ModelName        = "single zone test building"
	ZoneName         = "zone"
	SurfaceName      = "wall"
	WindowName       = "window"
	ConstructionName = "wall construction"
)

// Model is the part of a simulation model the assembler writes into.
type Model interface {
	AddConstruction(c construction.Construction) (int, error)
	AddZone(z simmodel.Zone) (int, error)
	AddSurface(s simmodel.Surface) (int, error)
	AddWindow(w simmodel.Window) (int, error)
	AddLoad(l simmodel.Load) (int, error)
	Zones() []simmodel.Zone
}

// StateRegistry is the part of a simulation state registry the assembler
// registers variables into.
type StateRegistry interface {
	Register(addr stateregistry.Address, kind stateregistry.Kind, initial float64) (stateregistry.Variable, error)
	Lookup(name string) (stateregistry.Variable, bool)
}

// Assembly reports what Assemble created.
type Assembly struct {
	Construction int
	Zone         int
	Surface      int
	Window       int // -1 when the building has no window

	Areas        geometry.Areas
	Azimuth      float64
	Infiltration stateregistry.Variable

	// Loads holds the heater and luminaire variables added from the options,
	// in that order.
	Loads []stateregistry.Variable
}

// HasWindow reports whether a window was created.
func (a Assembly) HasWindow() bool {
	return a.Window >= 0
}

// GetSingleZoneTestBuilding assembles a test building into a new model and
// registry.
func GetSingleZoneTestBuilding(ctx context.Context, opts Options) (*simmodel.Model, *stateregistry.Registry, error) {
	logger := ctxlog.FromContext(ctx)
	model := simmodel.New(ModelName, simmodel.WithLogger(logger))
	registry := stateregistry.New(stateregistry.WithLogger(logger))
	if _, err := Assemble(ctx, model, registry, opts); err != nil {
		return nil, nil, err
	}
	return model, registry, nil
}

// Assemble validates opts and then creates, in order, the construction, the
// zone, the wall, the window (when its area is positive), the infiltration
// variable and any heater or luminaire the options ask for.
func Assemble(ctx context.Context, m Model, r StateRegistry, opts Options) (Assembly, error) {
	logger := ctxlog.FromContext(ctx)

	p, err := opts.plan()
	if err != nil {
		logger.Debug("Building options rejected.", "error", err)
		return Assembly{}, err
	}
	logger.Debug("Building options validated.",
		"layers", len(p.construction.Layers),
		"opaque_area", p.areas.Opaque,
		"window_area", p.areas.Window,
		"azimuth", p.azimuth,
	)

	out := Assembly{Window: -1, Areas: p.areas, Azimuth: p.azimuth}

	if out.Construction, err = m.AddConstruction(p.construction); err != nil {
		return Assembly{}, collaboratorErr("add construction", err)
	}

	if out.Zone, err = m.AddZone(simmodel.Zone{Name: ZoneName, Volume: opts.ZoneVolume}); err != nil {
		return Assembly{}, collaboratorErr("add zone", err)
	}
	logger.Debug("Zone created.", "zone", ZoneName, "volume", opts.ZoneVolume)

	out.Surface, err = m.AddSurface(simmodel.Surface{
		Name:         SurfaceName,
		Zone:         out.Zone,
		Construction: out.Construction,
		Width:        opts.SurfaceWidth,
		Height:       opts.SurfaceHeight,
		Area:         p.areas.Opaque,
		Azimuth:      p.azimuth,
		Loop:         p.surfaceLoop,
	})
	if err != nil {
		return Assembly{}, collaboratorErr("add surface", err)
	}

	if p.areas.Window > 0 {
		out.Window, err = m.AddWindow(simmodel.Window{
			Name:         WindowName,
			Surface:      out.Surface,
			Construction: out.Construction,
			Width:        opts.WindowWidth,
			Height:       opts.WindowHeight,
			Area:         p.areas.Window,
			Loop:         p.windowLoop,
		})
		if err != nil {
			return Assembly{}, collaboratorErr("add window", err)
		}
		logger.Debug("Window created.", "area", p.areas.Window)
	}

	out.Infiltration, err = registerInfiltration(m, r, out.Zone, opts.InfiltrationRate)
	if err != nil {
		return Assembly{}, err
	}

	if opts.HeatingPower > 0 {
		v, err := AddHeater(ctx, m, r, opts.HeatingPower)
		if err != nil {
			return Assembly{}, err
		}
		out.Loads = append(out.Loads, v)
	}
	if opts.LightingPower > 0 {
		v, err := AddLuminaire(ctx, m, r, opts.LightingPower)
		if err != nil {
			return Assembly{}, err
		}
		out.Loads = append(out.Loads, v)
	}

	logger.Info("Single-zone test building assembled.",
		"opaque_area", p.areas.Opaque,
		"window_area", p.areas.Window,
		"zone_volume", opts.ZoneVolume,
		"u_value", p.construction.UValue(),
		"state_variables", 1+len(out.Loads),
	)
	return out, nil
}

// registerInfiltration exposes the infiltration flow as a state variable so
// the engine may drive it like any other load.
func registerInfiltration(m Model, r StateRegistry, zone int, rate float64) (stateregistry.Variable, error) {
	addr := stateregistry.ZoneAddress(ZoneName, simmodel.LoadInfiltration.String())
	v, err := r.Register(addr, stateregistry.KindInfiltration, rate)
	if err != nil {
		return stateregistry.Variable{}, collaboratorErr("register infiltration", err)
	}
	if _, err := m.AddLoad(simmodel.Load{Name: v.Name(), Kind: simmodel.LoadInfiltration, Zone: zone, Variable: v}); err != nil {
		return stateregistry.Variable{}, collaboratorErr("add infiltration load", err)
	}
	return v, nil
}
