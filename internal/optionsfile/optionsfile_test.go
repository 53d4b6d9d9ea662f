package optionsfile

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/singlezone/building"
	"github.com/specialistvlad/singlezone/internal/testutil"
	"github.com/specialistvlad/singlezone/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpSelectors = cmp.AllowUnexported(material.Selector{})

func TestParseHCL_DefaultsAndOverrides(t *testing.T) {
	src := `
building "baseline" {}

building "insulated" {
  surface_width  = 4
  window_width   = 1
  window_height  = baseline.surface_height - 2
  heating_power  = 1500

  layer "concrete" {
    thickness = 0.2
  }
  layer "Polyurethane" {
    thickness = 0.1
  }
}
`
	buildings, err := ParseHCL("test.hcl", []byte(src))
	require.NoError(t, err)
	require.Len(t, buildings, 2)

	assert.Equal(t, "baseline", buildings[0].Name)
	assert.Equal(t, "test.hcl", buildings[0].Source)
	if diff := cmp.Diff(building.DefaultOptions(), buildings[0].Options, cmpSelectors); diff != "" {
		t.Errorf("baseline options mismatch (-want +got):\n%s", diff)
	}

	want := building.DefaultOptions()
	want.SurfaceWidth = 4
	want.WindowWidth = 1
	want.WindowHeight = 1
	want.HeatingPower = 1500
	want.Construction = []material.Selector{
		material.NewConcrete(0.2),
		material.NewPolyurethane(0.1),
	}
	if diff := cmp.Diff(want, buildings[1].Options, cmpSelectors); diff != "" {
		t.Errorf("insulated options mismatch (-want +got):\n%s", diff)
	}
}

func TestParseYAML(t *testing.T) {
	src := `
buildings:
  - name: baseline
  - name: glazed
    window_width: 1
    window_height: 1
    orientation: 90
    construction:
      - material: glass
        thickness: 0.006
`
	buildings, err := ParseYAML("test.yaml", []byte(src))
	require.NoError(t, err)
	require.Len(t, buildings, 2)

	if diff := cmp.Diff(building.DefaultOptions(), buildings[0].Options, cmpSelectors); diff != "" {
		t.Errorf("baseline options mismatch (-want +got):\n%s", diff)
	}

	want := building.DefaultOptions()
	want.WindowWidth = 1
	want.WindowHeight = 1
	want.Orientation = 90
	want.Construction = []material.Selector{material.NewGlass(0.006)}
	if diff := cmp.Diff(want, buildings[1].Options, cmpSelectors); diff != "" {
		t.Errorf("glazed options mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		parse   func(string, []byte) ([]Building, error)
		src     string
		wantErr error
	}{
		{
			name:    "hcl empty file",
			parse:   ParseHCL,
			src:     ``,
			wantErr: ErrNoBuildings,
		},
		{
			name:    "hcl duplicate name",
			parse:   ParseHCL,
			src:     "building \"a\" {}\nbuilding \"a\" {}\n",
			wantErr: ErrDuplicateBuilding,
		},
		{
			name:    "hcl unknown material",
			parse:   ParseHCL,
			src:     "building \"a\" {\n  layer \"wood\" {\n    thickness = 0.1\n  }\n}\n",
			wantErr: material.ErrUnknownKind,
		},
		{
			name:    "yaml empty document",
			parse:   ParseYAML,
			src:     ``,
			wantErr: ErrNoBuildings,
		},
		{
			name:    "yaml duplicate name",
			parse:   ParseYAML,
			src:     "buildings:\n  - name: a\n  - name: a\n",
			wantErr: ErrDuplicateBuilding,
		},
		{
			name:    "yaml unknown material",
			parse:   ParseYAML,
			src:     "buildings:\n  - name: a\n    construction:\n      - material: wood\n        thickness: 0.1\n",
			wantErr: material.ErrUnknownKind,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.parse("test", []byte(tc.src))
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestParse_MalformedInput(t *testing.T) {
	testCases := []struct {
		name  string
		parse func(string, []byte) ([]Building, error)
		src   string
	}{
		{"hcl syntax error", ParseHCL, `building "a" {`},
		{"hcl unknown attribute", ParseHCL, "building \"a\" {\n  colour = 1\n}\n"},
		{"hcl missing thickness", ParseHCL, "building \"a\" {\n  layer \"glass\" {}\n}\n"},
		{"yaml unknown field", ParseYAML, "buildings:\n  - name: a\n    colour: 1\n"},
		{"yaml missing name", ParseYAML, "buildings:\n  - zone_volume: 10\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.parse("test", []byte(tc.src))
			require.Error(t, err)
		})
	}
}

func TestLoad_DispatchesOnExtension(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"a.hcl":  `building "from-hcl" { zone_volume = 10 }`,
		"b.yml":  "buildings:\n  - name: from-yaml\n    zone_volume: 20\n",
		"c.json": `{}`,
	})
	ctx := context.Background()

	got, err := Load(ctx, filepath.Join(dir, "a.hcl"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "from-hcl", got[0].Name)
	assert.Equal(t, 10.0, got[0].Options.ZoneVolume)

	got, err = Load(ctx, filepath.Join(dir, "b.yml"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "from-yaml", got[0].Name)
	assert.Equal(t, 20.0, got[0].Options.ZoneVolume)

	_, err = Load(ctx, filepath.Join(dir, "c.json"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(ctx, filepath.Join(dir, "missing.hcl"))
	assert.Error(t, err)
}

func TestEncode_RoundTrip(t *testing.T) {
	opts := building.DefaultOptions()
	opts.Construction = []material.Selector{
		material.NewConcrete(0.15),
		material.NewPolyurethane(0.05),
	}
	opts.SurfaceWidth = 4.5
	opts.WindowWidth = 1.25
	opts.WindowHeight = 0.75
	opts.Orientation = 270
	opts.InfiltrationRate = 0.01
	opts.HeatingPower = 1500
	opts.LightingPower = 300

	src, err := Encode("roundtrip", opts)
	require.NoError(t, err)
	assert.Contains(t, string(src), `building "roundtrip"`)
	assert.Contains(t, string(src), `layer "polyurethane"`)

	buildings, err := ParseHCL("encoded.hcl", src)
	require.NoError(t, err, "encoded output:\n%s", src)
	require.Len(t, buildings, 1)
	assert.Equal(t, "roundtrip", buildings[0].Name)
	if diff := cmp.Diff(opts, buildings[0].Options, cmpSelectors); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_RejectsEmptyConstruction(t *testing.T) {
	testCases := []struct {
		name         string
		construction []material.Selector
	}{
		{name: "nil", construction: nil},
		{name: "empty slice", construction: []material.Selector{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts := building.DefaultOptions()
			opts.Construction = tc.construction

			src, err := Encode("bare", opts)
			require.ErrorIs(t, err, building.ErrEmptyConstruction)
			assert.Nil(t, src)
		})
	}
}

func TestLoad_Directory(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"a.hcl":              `building "one" {}`,
		"nested/b.yaml":      "buildings:\n  - name: two\n",
		"nested/notes.txt":   "ignored",
		"nested/config.json": `{}`,
	})

	got, err := Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "one", got[0].Name)
	assert.Equal(t, filepath.Join(dir, "a.hcl"), got[0].Source)
	assert.Equal(t, "two", got[1].Name)
	assert.Equal(t, filepath.Join(dir, "nested", "b.yaml"), got[1].Source)
}

func TestLoad_DirectoryErrors(t *testing.T) {
	ctx := context.Background()

	dup := testutil.WriteFiles(t, map[string]string{
		"a.hcl":  `building "same" {}`,
		"b.yaml": "buildings:\n  - name: same\n",
	})
	_, err := Load(ctx, dup)
	assert.ErrorIs(t, err, ErrDuplicateBuilding)

	empty := testutil.WriteFiles(t, map[string]string{"notes.txt": "nothing here"})
	_, err = Load(ctx, empty)
	assert.ErrorIs(t, err, ErrNoBuildings)
}

func TestAssign(t *testing.T) {
	base := building.DefaultOptions()

	testCases := []struct {
		name       string
		assignment string
		check      func(t *testing.T, got building.Options)
	}{
		{
			name:       "literal",
			assignment: "heating_power=1500",
			check: func(t *testing.T, got building.Options) {
				assert.Equal(t, 1500.0, got.HeatingPower)
			},
		},
		{
			name:       "baseline reference",
			assignment: " window_width = baseline.surface_width - 2 ",
			check: func(t *testing.T, got building.Options) {
				assert.Equal(t, 1.0, got.WindowWidth)
			},
		},
		{
			name:       "self reference",
			assignment: "zone_volume=self.zone_volume/2",
			check: func(t *testing.T, got building.Options) {
				assert.Equal(t, 20.0, got.ZoneVolume)
			},
		},
		{
			name:       "string converted to number",
			assignment: `orientation="90"`,
			check: func(t *testing.T, got building.Options) {
				assert.Equal(t, 90.0, got.Orientation)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Assign(base, tc.assignment)
			require.NoError(t, err)
			tc.check(t, got)
		})
	}

	assert.Equal(t, 0.0, base.HeatingPower, "input options must not change")
}

func TestAssign_Errors(t *testing.T) {
	testCases := []struct {
		name       string
		assignment string
		wantErr    error
	}{
		{"no equals sign", "heating_power", ErrInvalidAssignment},
		{"empty expression", "heating_power=", ErrInvalidAssignment},
		{"unknown attribute", "roof_pitch=30", ErrUnknownAttribute},
		{"syntax error", "heating_power=(", nil},
		{"unknown variable", "heating_power=other.value", nil},
		{"not a number", `heating_power="lots"`, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Assign(building.DefaultOptions(), tc.assignment)
			require.Error(t, err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}
