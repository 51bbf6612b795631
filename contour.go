// Package contour decodes digital elevation model (DEM) raster tiles into
// elevation grids and traces vector contour lines (isolines) from them using
// the orb geometry library. It supports the Mapbox Terrain-RGB and Terrarium
// pixel encodings, border-aware grid assembly from neighboring tiles, and
// FlatGeobuf export of traced contours.
package contour

import (
	"errors"
	"fmt"
)

// Common errors returned by this package.
var (
	ErrUnknownEncoding = errors.New("contour: unknown encoding")
	ErrShortBuffer     = errors.New("contour: pixel buffer shorter than width*height*4")
	ErrGridBounds      = errors.New("contour: grid access out of bounds")
	ErrNonRectangular  = errors.New("contour: elevation rows have differing lengths")
	ErrDegenerateLevel = errors.New("contour: contour level is not finite")
	ErrNoContours      = errors.New("contour: no contours to write")
)

// Encoding selects the channel-to-elevation formula of a DEM raster provider.
type Encoding int

const (
	// Mapbox is the Mapbox Terrain-RGB encoding:
	// elevation = -10000 + (R*65536 + G*256 + B) * 0.1
	Mapbox Encoding = iota

	// Terrarium is the Mapzen/Terrarium encoding:
	// elevation = R*256 + G + B/256 - 32768
	Terrarium
)

// ParseEncoding maps the identifiers "mapbox" and "terrarium" to their
// Encoding. Unrecognized identifiers fail with ErrUnknownEncoding.
func ParseEncoding(s string) (Encoding, error) {
	switch s {
	case "mapbox":
		return Mapbox, nil
	case "terrarium":
		return Terrarium, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownEncoding, s)
	}
}

// String returns the identifier accepted by ParseEncoding.
func (e Encoding) String() string {
	switch e {
	case Mapbox:
		return "mapbox"
	case Terrarium:
		return "terrarium"
	default:
		return fmt.Sprintf("encoding(%d)", int(e))
	}
}

// valid reports whether e is one of the supported encodings.
func (e Encoding) valid() bool {
	return e == Mapbox || e == Terrarium
}

// Elevation applies the encoding formula to one pixel's first three channels.
// The mapping is total: every byte triple yields a finite elevation. Alpha is
// ignored by both supported encodings.
func (e Encoding) Elevation(r, g, b byte) float64 {
	switch e {
	case Terrarium:
		return float64(r)*256 + float64(g) + float64(b)/256 - 32768
	default: // Mapbox
		return -10000 + float64(uint32(r)<<16|uint32(g)<<8|uint32(b))*0.1
	}
}

// CRS represents a coordinate reference system for exported contours.
type CRS struct {
	Code        int    // EPSG code (e.g., 4326 for WGS84)
	Name        string // CRS name
	Description string // CRS description
}

// WGS84 returns the standard WGS84 CRS (EPSG:4326).
func WGS84() *CRS {
	return &CRS{
		Code: 4326,
		Name: "WGS 84",
	}
}

// WebMercator returns the Web Mercator CRS (EPSG:3857) used by tiled web maps.
func WebMercator() *CRS {
	return &CRS{
		Code: 3857,
		Name: "WGS 84 / Pseudo-Mercator",
	}
}

// Options configures FlatGeobuf contour export.
type Options struct {
	Name         string // Layer name
	Description  string // Layer description
	IncludeIndex bool   // Include spatial index (default: true)
	CRS          *CRS   // Coordinate reference system (optional)
}

// DefaultOptions returns default options for writing contour FlatGeobuf files.
func DefaultOptions() *Options {
	return &Options{
		IncludeIndex: true,
	}
}
