package optionsfile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/singlezone/building"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

var (
	ErrInvalidAssignment = errors.New("optionsfile: assignment must look like attribute=expression")
	ErrUnknownAttribute  = errors.New("optionsfile: unknown attribute")
)

// Assign evaluates one `attribute=expression` override against opts and
// returns the updated copy. The expression sees `baseline.<attr>` for the
// default options and `self.<attr>` for the options being changed, so
// `surface_width=self.surface_width*2` doubles the current wall.
func Assign(opts building.Options, assignment string) (building.Options, error) {
	name, src, ok := strings.Cut(assignment, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" || strings.TrimSpace(src) == "" {
		return opts, fmt.Errorf("%w: %q", ErrInvalidAssignment, assignment)
	}
	dst := field(&opts, name)
	if dst == nil {
		return opts, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}

	expr, diags := hclsyntax.ParseExpression([]byte(src), "<"+name+">", hcl.InitialPos)
	if diags.HasErrors() {
		return opts, fmt.Errorf("failed to parse expression for %s: %w", name, diags)
	}

	evalCtx, err := evalContext()
	if err != nil {
		return opts, err
	}
	self, err := scalarsOf(opts).toCty()
	if err != nil {
		return opts, err
	}
	evalCtx.Variables["self"] = self

	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return opts, fmt.Errorf("failed to evaluate expression for %s: %w", name, diags)
	}
	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return opts, fmt.Errorf("%s must be a number: %w", name, err)
	}
	if num.IsNull() || !num.IsKnown() {
		return opts, fmt.Errorf("%s must be a known number", name)
	}
	if err := gocty.FromCtyValue(num, dst); err != nil {
		return opts, fmt.Errorf("%s: %w", name, err)
	}
	return opts, nil
}

// field returns the option field stored under a file attribute name.
func field(o *building.Options, name string) *float64 {
	switch name {
	case "zone_volume":
		return &o.ZoneVolume
	case "surface_width":
		return &o.SurfaceWidth
	case "surface_height":
		return &o.SurfaceHeight
	case "window_width":
		return &o.WindowWidth
	case "window_height":
		return &o.WindowHeight
	case "orientation":
		return &o.Orientation
	case "infiltration_rate":
		return &o.InfiltrationRate
	case "heating_power":
		return &o.HeatingPower
	case "lighting_power":
		return &o.LightingPower
	case "emissivity":
		return &o.Emissivity
	case "solar_absorptance":
		return &o.SolarAbsorptance
	default:
		return nil
	}
}
