package optionsfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/singlezone/building"
	"github.com/specialistvlad/singlezone/internal/ctxlog"
	"github.com/specialistvlad/singlezone/internal/fsutil"
	"github.com/specialistvlad/singlezone/material"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoBuildings       = errors.New("optionsfile: no building defined")
	ErrDuplicateBuilding = errors.New("optionsfile: duplicate building name")
	ErrUnsupportedFormat = errors.New("optionsfile: unsupported file extension")
)

// Building is one named set of options read from a file.
type Building struct {
	Name    string
	Source  string
	Options building.Options
}

// Load reads all buildings from path. A file is parsed according to its
// extension: .hcl, .yaml or .yml. A directory is searched recursively for
// such files and building names must be unique across all of them.
func Load(ctx context.Context, path string) ([]Building, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Options loader started.", "path", path)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error reading options path %s: %w", path, err)
	}

	var buildings []Building
	if info.IsDir() {
		files, err := fsutil.FindFiles(path, ".hcl", ".yaml", ".yml")
		if err != nil {
			return nil, fmt.Errorf("error searching options directory %s: %w", path, err)
		}
		logger.Debug("Options files found.", "path", path, "files", len(files))
		for _, f := range files {
			found, err := loadFile(f)
			if err != nil {
				return nil, err
			}
			buildings = append(buildings, found...)
		}
		if buildings, err = checkNames(path, buildings); err != nil {
			return nil, err
		}
	} else if buildings, err = loadFile(path); err != nil {
		return nil, err
	}

	logger.Debug("Options loaded.", "path", path, "buildings", len(buildings))
	return buildings, nil
}

func loadFile(path string) ([]Building, error) {
	var parse func(string, []byte) ([]Building, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		parse = ParseHCL
	case ".yaml", ".yml":
		parse = ParseYAML
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading options file %s: %w", path, err)
	}
	return parse(path, src)
}

type hclFile struct {
	Buildings []*hclBuilding `hcl:"building,block"`
}

type hclBuilding struct {
	Name string `hcl:"name,label"`

	ZoneVolume       *float64 `hcl:"zone_volume,optional"`
	SurfaceWidth     *float64 `hcl:"surface_width,optional"`
	SurfaceHeight    *float64 `hcl:"surface_height,optional"`
	WindowWidth      *float64 `hcl:"window_width,optional"`
	WindowHeight     *float64 `hcl:"window_height,optional"`
	Orientation      *float64 `hcl:"orientation,optional"`
	InfiltrationRate *float64 `hcl:"infiltration_rate,optional"`
	HeatingPower     *float64 `hcl:"heating_power,optional"`
	LightingPower    *float64 `hcl:"lighting_power,optional"`
	Emissivity       *float64 `hcl:"emissivity,optional"`
	SolarAbsorptance *float64 `hcl:"solar_absorptance,optional"`

	Layers []*hclLayer `hcl:"layer,block"`
}

type hclLayer struct {
	Material  string  `hcl:"material,label"`
	Thickness float64 `hcl:"thickness"`
}

func (b *hclBuilding) overrides() overrides {
	return overrides{
		ZoneVolume:       b.ZoneVolume,
		SurfaceWidth:     b.SurfaceWidth,
		SurfaceHeight:    b.SurfaceHeight,
		WindowWidth:      b.WindowWidth,
		WindowHeight:     b.WindowHeight,
		Orientation:      b.Orientation,
		InfiltrationRate: b.InfiltrationRate,
		HeatingPower:     b.HeatingPower,
		LightingPower:    b.LightingPower,
		Emissivity:       b.Emissivity,
		SolarAbsorptance: b.SolarAbsorptance,
	}
}

// evalContext exposes the baseline options to expressions.
func evalContext() (*hcl.EvalContext, error) {
	baseline, err := scalarsOf(building.DefaultOptions()).toCty()
	if err != nil {
		return nil, err
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"baseline": baseline},
	}, nil
}

// ParseHCL decodes building blocks from HCL source.
func ParseHCL(filename string, src []byte) ([]Building, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	evalCtx, err := evalContext()
	if err != nil {
		return nil, err
	}

	var root hclFile
	if diags := gohcl.DecodeBody(file.Body, evalCtx, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	out := make([]Building, 0, len(root.Buildings))
	for _, b := range root.Buildings {
		opts := building.DefaultOptions()
		b.overrides().apply(&opts)

		if len(b.Layers) > 0 {
			sels := make([]material.Selector, 0, len(b.Layers))
			for _, l := range b.Layers {
				kind, err := material.ParseKind(l.Material)
				if err != nil {
					return nil, fmt.Errorf("building %q in %s: %w", b.Name, filename, err)
				}
				sels = append(sels, material.New(kind, l.Thickness))
			}
			opts.Construction = sels
		}
		out = append(out, Building{Name: b.Name, Source: filename, Options: opts})
	}
	return checkNames(filename, out)
}

type yamlFile struct {
	Buildings []yamlBuilding `yaml:"buildings"`
}

type yamlBuilding struct {
	Name         string       `yaml:"name"`
	Construction *[]yamlLayer `yaml:"construction"`
	overrides    `yaml:",inline"`
}

type yamlLayer struct {
	Material  string  `yaml:"material"`
	Thickness float64 `yaml:"thickness"`
}

// ParseYAML decodes a `buildings` list from YAML source.
func ParseYAML(filename string, src []byte) ([]Building, error) {
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)

	var root yamlFile
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", filename, err)
	}

	out := make([]Building, 0, len(root.Buildings))
	for i, b := range root.Buildings {
		if b.Name == "" {
			return nil, fmt.Errorf("building #%d in %s has no name", i, filename)
		}
		opts := building.DefaultOptions()
		b.overrides.apply(&opts)

		if b.Construction != nil {
			sels := make([]material.Selector, 0, len(*b.Construction))
			for _, l := range *b.Construction {
				kind, err := material.ParseKind(l.Material)
				if err != nil {
					return nil, fmt.Errorf("building %q in %s: %w", b.Name, filename, err)
				}
				sels = append(sels, material.New(kind, l.Thickness))
			}
			opts.Construction = sels
		}
		out = append(out, Building{Name: b.Name, Source: filename, Options: opts})
	}
	return checkNames(filename, out)
}

func checkNames(filename string, buildings []Building) ([]Building, error) {
	if len(buildings) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoBuildings, filename)
	}
	seen := make(map[string]struct{}, len(buildings))
	for _, b := range buildings {
		if _, dup := seen[b.Name]; dup {
			return nil, fmt.Errorf("%w: %q in %s", ErrDuplicateBuilding, b.Name, filename)
		}
		seen[b.Name] = struct{}{}
	}
	return buildings, nil
}
