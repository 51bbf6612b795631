package contour

import (
	"context"

	"github.com/paulmach/orb"
)

// Direction identifies one of a tile's eight neighbors.
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var directionNames = [...]string{"north", "northeast", "east", "southeast", "south", "southwest", "west", "northwest"}

func (d Direction) String() string {
	if d < North || d > NorthWest {
		return "direction(?)"
	}
	return directionNames[d]
}

// NeighborSource supplies the decoded interior grids of adjacent tiles for
// border assembly. It is typically backed by a tile cache or fetcher with its
// own retry and timeout policy; returning ok=false (for any reason, including
// ctx expiry) makes Assemble fall back to clamped replication for that side.
type NeighborSource interface {
	Neighbor(ctx context.Context, dir Direction) (*Grid, bool)
}

// NeighborFunc adapts a function to the NeighborSource interface.
type NeighborFunc func(ctx context.Context, dir Direction) (*Grid, bool)

func (f NeighborFunc) Neighbor(ctx context.Context, dir Direction) (*Grid, bool) {
	return f(ctx, dir)
}

// Assemble surrounds a tile's interior grid with a one-cell border so that
// contours traced near the tile edge line up with the neighboring tiles'
// contours. Cardinal borders take the neighbor's nearest interior row or
// column; diagonal corners take the neighbor's nearest corner sample.
//
// Missing neighbors never fail the assembly: any side whose neighbor is
// unavailable, dimensionally incompatible, or too late (ctx expired) is
// filled by replicating the tile's own nearest edge value. A nil source
// clamps every side. The deadline governing how long neighbor lookups may
// take belongs to ctx; Assemble itself never blocks beyond the source calls.
func Assemble(ctx context.Context, interior *Grid, src NeighborSource) *Grid {
	if interior == nil || interior.Empty() {
		return &Grid{}
	}
	w, h := interior.width, interior.height

	g := newGrid(w, h, 1)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			g.set(r, c, interior.At(r, c))
		}
	}

	// Clamped fallback everywhere first; neighbor data overwrites below.
	for c := -1; c <= w; c++ {
		cc := interior.clampCol(c)
		g.set(-1, c, interior.At(0, cc))
		g.set(h, c, interior.At(h-1, cc))
	}
	for r := -1; r <= h; r++ {
		rr := interior.clampRow(r)
		g.set(r, -1, interior.At(rr, 0))
		g.set(r, w, interior.At(rr, w-1))
	}

	if src == nil {
		return g
	}

	if n, ok := neighbor(ctx, src, North); ok && n.width == w {
		for c := 0; c < w; c++ {
			g.set(-1, c, n.At(n.height-1, c))
		}
	}
	if n, ok := neighbor(ctx, src, South); ok && n.width == w {
		for c := 0; c < w; c++ {
			g.set(h, c, n.At(0, c))
		}
	}
	if n, ok := neighbor(ctx, src, West); ok && n.height == h {
		for r := 0; r < h; r++ {
			g.set(r, -1, n.At(r, n.width-1))
		}
	}
	if n, ok := neighbor(ctx, src, East); ok && n.height == h {
		for r := 0; r < h; r++ {
			g.set(r, w, n.At(r, 0))
		}
	}
	if n, ok := neighbor(ctx, src, NorthWest); ok {
		g.set(-1, -1, n.At(n.height-1, n.width-1))
	}
	if n, ok := neighbor(ctx, src, NorthEast); ok {
		g.set(-1, w, n.At(n.height-1, 0))
	}
	if n, ok := neighbor(ctx, src, SouthWest); ok {
		g.set(h, -1, n.At(0, n.width-1))
	}
	if n, ok := neighbor(ctx, src, SouthEast); ok {
		g.set(h, w, n.At(0, 0))
	}

	return g
}

// neighbor queries the source, discarding results that arrive after ctx has
// expired and any empty grid.
func neighbor(ctx context.Context, src NeighborSource, dir Direction) (*Grid, bool) {
	if ctx.Err() != nil {
		return nil, false
	}
	n, ok := src.Neighbor(ctx, dir)
	if !ok || n == nil || n.Empty() || ctx.Err() != nil {
		return nil, false
	}
	return n, true
}

// DecodeAndTrace is the combined entry point for a full tile request: decode
// the tile's pixels, assemble the bordered grid from whatever neighbors the
// source can supply, and trace the requested levels. With no levels the trace
// step is skipped and only the grid is returned.
func DecodeAndTrace(ctx context.Context, px PixelBuffer, enc Encoding, src NeighborSource, levels []float64) (*Grid, map[float64][]orb.LineString, error) {
	interior, err := Decode(px, enc)
	if err != nil {
		return nil, nil, err
	}
	g := Assemble(ctx, interior, src)
	if len(levels) == 0 {
		return g, nil, nil
	}
	// Trace handles the empty grid itself, and its level validation applies
	// to empty tiles too.
	lines, err := Trace(g, levels)
	if err != nil {
		return nil, nil, err
	}
	return g, lines, nil
}
