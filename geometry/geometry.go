// Package geometry derives the dimensions of the single exterior wall and its
// optional window.
//
// The wall is a width × height rectangle standing on z=0 and centred on the
// vertical axis. Its facing is given as an azimuth in degrees: 0 faces south
// and angles grow clockwise seen from above, so 90 faces west.
package geometry

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrWindowExceedsSurface is returned when a window side is larger than the
	// matching side of its host surface.
	ErrWindowExceedsSurface = errors.New("geometry: window exceeds surface")

	// ErrInvalidDimension is returned for a non-positive surface side or a
	// negative window side. Non-finite values are rejected too.
	ErrInvalidDimension = errors.New("geometry: invalid dimension")

	// ErrInvalidOrientation is returned for a non-finite orientation.
	ErrInvalidOrientation = errors.New("geometry: orientation must be finite")
)

// Areas holds the split of the gross wall area.
type Areas struct {
	Opaque float64 // m²
	Window float64 // m²
}

// Gross is the full wall area including the window.
func (a Areas) Gross() float64 {
	return a.Opaque + a.Window
}

// Compute returns the net opaque and window areas of a wall. Both are
// non-negative on success and Opaque+Window equals surfaceWidth*surfaceHeight
// exactly in float64.
func Compute(surfaceWidth, surfaceHeight, windowWidth, windowHeight float64) (Areas, error) {
	if err := checkDimensions(surfaceWidth, surfaceHeight, windowWidth, windowHeight); err != nil {
		return Areas{}, err
	}
	gross := surfaceWidth * surfaceHeight
	window := windowWidth * windowHeight
	return split(gross, window), nil
}

// split divides gross into an opaque part and a window part whose float64 sum
// is gross. Requires 0 <= window <= gross.
//
// Subtracting the larger share from gross is exact (Sterbenz lemma), so the
// smaller share is the one that absorbs rounding. A large window keeps its
// own area; a small one is rederived as gross-opaque and may move by one ulp.
func split(gross, window float64) Areas {
	if window >= gross/2 {
		return Areas{Opaque: gross - window, Window: window}
	}
	opaque := gross - window
	return Areas{Opaque: opaque, Window: gross - opaque}
}

func checkDimensions(sw, sh, ww, wh float64) error {
	if !finite(sw) || sw <= 0 {
		return fmt.Errorf("%w: surface width %g", ErrInvalidDimension, sw)
	}
	if !finite(sh) || sh <= 0 {
		return fmt.Errorf("%w: surface height %g", ErrInvalidDimension, sh)
	}
	if !finite(ww) || ww < 0 {
		return fmt.Errorf("%w: window width %g", ErrInvalidDimension, ww)
	}
	if !finite(wh) || wh < 0 {
		return fmt.Errorf("%w: window height %g", ErrInvalidDimension, wh)
	}
	if ww > sw {
		return fmt.Errorf("%w: window width %g > surface width %g", ErrWindowExceedsSurface, ww, sw)
	}
	if wh > sh {
		return fmt.Errorf("%w: window height %g > surface height %g", ErrWindowExceedsSurface, wh, sh)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Azimuth normalises an orientation in degrees into [0, 360).
func Azimuth(orientation float64) (float64, error) {
	if !finite(orientation) {
		return 0, fmt.Errorf("%w: %g", ErrInvalidOrientation, orientation)
	}
	a := math.Mod(orientation, 360)
	if a < 0 {
		a += 360
	}
	return a, nil
}

// Point is a position in model space, in meters. X points east, Y north and
// Z up.
type Point struct {
	X, Y, Z float64
}

func (p Point) sub(o Point) Point {
	return Point{p.X - o.X, p.Y - o.Y, p.Z - o.Z}
}

func (p Point) cross(o Point) Point {
	return Point{
		X: p.Y*o.Z - p.Z*o.Y,
		Y: p.Z*o.X - p.X*o.Z,
		Z: p.X*o.Y - p.Y*o.X,
	}
}

// Loop is a closed rectangle, counter-clockwise seen from outside the wall.
type Loop [4]Point

// Normal returns the unnormalised outward normal of the loop.
func (l Loop) Normal() Point {
	return l[1].sub(l[0]).cross(l[2].sub(l[1]))
}

// Normal returns the outward unit normal of a wall with the given
// orientation.
func Normal(orientation float64) (Point, error) {
	a, err := Azimuth(orientation)
	if err != nil {
		return Point{}, err
	}
	rad := a * math.Pi / 180
	return Point{X: -math.Sin(rad), Y: -math.Cos(rad)}, nil
}

// horizontal is the in-plane unit vector pointing right for an observer
// facing the wall from outside.
func horizontal(rad float64) Point {
	return Point{X: math.Cos(rad), Y: -math.Sin(rad)}
}

func rect(rad, left, right, bottom, top float64) Loop {
	u := horizontal(rad)
	at := func(s, z float64) Point {
		return Point{X: s * u.X, Y: s * u.Y, Z: z}
	}
	return Loop{at(left, bottom), at(right, bottom), at(right, top), at(left, top)}
}

// SurfaceLoop returns the wall outline.
func SurfaceLoop(width, height, orientation float64) (Loop, error) {
	if err := checkDimensions(width, height, 0, 0); err != nil {
		return Loop{}, err
	}
	a, err := Azimuth(orientation)
	if err != nil {
		return Loop{}, err
	}
	rad := a * math.Pi / 180
	return rect(rad, -width/2, width/2, 0, height), nil
}

// WindowLoop returns the outline of a window centred in the wall.
func WindowLoop(surfaceWidth, surfaceHeight, windowWidth, windowHeight, orientation float64) (Loop, error) {
	if err := checkDimensions(surfaceWidth, surfaceHeight, windowWidth, windowHeight); err != nil {
		return Loop{}, err
	}
	a, err := Azimuth(orientation)
	if err != nil {
		return Loop{}, err
	}
	rad := a * math.Pi / 180
	bottom := (surfaceHeight - windowHeight) / 2
	return rect(rad, -windowWidth/2, windowWidth/2, bottom, bottom+windowHeight), nil
}
