package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/singlezone/building"
	"github.com/specialistvlad/singlezone/internal/ctxlog"
	"github.com/specialistvlad/singlezone/internal/optionsfile"
	"github.com/specialistvlad/singlezone/simmodel"
	"github.com/specialistvlad/singlezone/stateregistry"
)

// ErrUnknownBuilding is returned when the selected building is not in the
// options file.
var ErrUnknownBuilding = errors.New("building not found in options file")

// Run loads the options file and assembles the selected building, or every
// building when none is selected. It stops at the first failure.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	buildings, err := optionsfile.Load(ctx, a.config.OptionsPath)
	if err != nil {
		return fmt.Errorf("failed to load options: %w", err)
	}

	selected, err := a.selectBuildings(buildings)
	if err != nil {
		return err
	}

	for _, b := range selected {
		for _, assignment := range a.config.Assignments {
			if b.Options, err = optionsfile.Assign(b.Options, assignment); err != nil {
				return fmt.Errorf("building %q: %w", b.Name, err)
			}
		}
		if err := a.assemble(ctx, b); err != nil {
			return fmt.Errorf("building %q: %w", b.Name, err)
		}
	}

	a.logger.Debug("App.Run method finished.", "buildings", len(selected))
	return nil
}

func (a *App) selectBuildings(all []optionsfile.Building) ([]optionsfile.Building, error) {
	if a.config.Building == "" {
		return all, nil
	}
	for _, b := range all {
		if b.Name == a.config.Building {
			return []optionsfile.Building{b}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q in %s", ErrUnknownBuilding, a.config.Building, a.config.OptionsPath)
}

func (a *App) assemble(ctx context.Context, b optionsfile.Building) error {
	model := simmodel.New(b.Name, simmodel.WithLogger(a.logger))
	registry := stateregistry.New(stateregistry.WithLogger(a.logger))

	asm, err := building.Assemble(ctx, model, registry, b.Options)
	if err != nil {
		return err
	}

	cons := model.Constructions()[asm.Construction]
	a.logger.Info("Building ready.",
		"building", b.Name,
		"model_id", model.ID().String(),
		"zone_volume", model.Zones()[asm.Zone].Volume,
		"opaque_area", asm.Areas.Opaque,
		"window_area", asm.Areas.Window,
		"azimuth", asm.Azimuth,
		"u_value", cons.UValue(),
		"heat_capacity", cons.HeatCapacity(),
	)

	values := registry.Values()
	for _, v := range registry.Variables() {
		a.logger.Info("State variable.",
			"building", b.Name,
			"index", v.Index,
			"name", v.Name(),
			"kind", v.Kind.String(),
			"unit", v.Kind.Unit(),
			"value", values[v.Index],
		)
	}
	return nil
}
