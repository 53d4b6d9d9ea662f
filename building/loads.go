package building

import (
	"context"

	"github.com/specialistvlad/singlezone/internal/ctxlog"
	"github.com/specialistvlad/singlezone/simmodel"
	"github.com/specialistvlad/singlezone/stateregistry"
)

// AddHeater registers an electric heater of the given power on the model's
// zone and returns its state variable.
func AddHeater(ctx context.Context, m Model, r StateRegistry, power float64) (stateregistry.Variable, error) {
	return addLoad(ctx, m, r, simmodel.LoadHeater, stateregistry.KindHeaterPower, power)
}

// AddLuminaire registers a luminaire of the given power on the model's zone
// and returns its state variable.
func AddLuminaire(ctx context.Context, m Model, r StateRegistry, power float64) (stateregistry.Variable, error) {
	return addLoad(ctx, m, r, simmodel.LoadLuminaire, stateregistry.KindLuminairePower, power)
}

func addLoad(ctx context.Context, m Model, r StateRegistry, kind simmodel.LoadKind, varKind stateregistry.Kind, power float64) (stateregistry.Variable, error) {
	if err := checkPower(kind.String(), power); err != nil {
		return stateregistry.Variable{}, err
	}

	zones := m.Zones()
	if len(zones) == 0 {
		return stateregistry.Variable{}, collaboratorErr("find zone", ErrNoZone)
	}
	// A test building has a single zone.
	const zoneIndex = 0
	zone := zones[zoneIndex]

	addr := nextFreeAddress(r, zone.Name, kind.String())
	v, err := r.Register(addr, varKind, power)
	if err != nil {
		return stateregistry.Variable{}, collaboratorErr("register "+kind.String(), err)
	}
	if _, err := m.AddLoad(simmodel.Load{Name: v.Name(), Kind: kind, Zone: zoneIndex, Variable: v}); err != nil {
		return stateregistry.Variable{}, collaboratorErr("add "+kind.String()+" load", err)
	}

	ctxlog.FromContext(ctx).Debug("Load registered.", "kind", kind.String(), "variable", v.Name(), "index", v.Index, "power", power)
	return v, nil
}

// nextFreeAddress returns `<zone>.<quantity>[i]` for the lowest i not yet
// registered.
func nextFreeAddress(r StateRegistry, zone, quantity string) stateregistry.Address {
	for i := 0; ; i++ {
		addr := stateregistry.IndexedZoneAddress(zone, quantity, i)
		if _, taken := r.Lookup(addr.String()); !taken {
			return addr
		}
	}
}
