// Package optionsfile reads named building options from HCL or YAML files and
// writes them back as HCL.
//
// An HCL file holds one or more blocks:
//
//	building "baseline" {
//	  zone_volume    = 40
//	  surface_width  = 3
//	  surface_height = baseline.surface_height
//
//	  layer "concrete" {
//	    thickness = 0.2
//	  }
//	}
//
// Every attribute is optional and falls back to building.DefaultOptions.
// The baseline values are also exposed to expressions as `baseline.<attr>`.
// Omitting all layer blocks keeps the baseline construction.
//
// The YAML form is a `buildings` list with the same attribute names and a
// `construction` list of `{material, thickness}` entries.
//
// Load also accepts a directory and reads every option file beneath it.
// Assign applies command-line style `attribute=expression` overrides after
// loading.
package optionsfile
