package contour

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// edgeKey identifies one grid edge by its lesser endpoint and orientation.
// A horizontal edge runs from (row,col) to (row,col+1); a vertical edge from
// (row,col) to (row+1,col). Both cells sharing an edge derive the same key,
// and the crossing point is computed once per key from the same operands in
// the same order, so polyline joins across cells are exact rather than
// tolerance-based.
type edgeKey struct {
	row, col int
	vert     bool
}

// segment is one contour piece inside a single cell, running between two
// crossed cell edges.
type segment struct {
	a, b edgeKey
}

// levelState accumulates the segments and crossing points of one level while
// the cell pass runs.
type levelState struct {
	level float64
	segs  []segment
	pts   map[edgeKey]orb.Point
}

// point interpolates the crossing of level on edge k and memoizes it.
// t is clamped to [0,1]; a degenerate edge (equal endpoint elevations) never
// classifies as crossed, so clamping only guards the extremes.
func (st *levelState) point(g *Grid, k edgeKey) {
	if _, ok := st.pts[k]; ok {
		return
	}
	v0 := float64(g.At(k.row, k.col))
	var v1 float64
	if k.vert {
		v1 = float64(g.At(k.row+1, k.col))
	} else {
		v1 = float64(g.At(k.row, k.col+1))
	}
	t := (st.level - v0) / (v1 - v0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	if k.vert {
		st.pts[k] = orb.Point{float64(k.col), float64(k.row) + t}
	} else {
		st.pts[k] = orb.Point{float64(k.col) + t, float64(k.row)}
	}
}

func (st *levelState) emit(g *Grid, a, b edgeKey) {
	st.point(g, a)
	st.point(g, b)
	st.segs = append(st.segs, segment{a, b})
}

// Trace extracts contour polylines from a grid at the given elevation levels
// using marching squares over every 1x1 cell, border ring included. Points
// are grid-local fractional (x=column, y=row) coordinates; with a border,
// border samples sit at -1 and Width/Height.
//
// A corner counts as above its level when corner >= level. Ambiguous saddle
// cells (diagonally opposite corners above) connect through the cell when the
// mean of the four corners is at or above the level, and around the isolated
// corners otherwise; the rule is fixed, so identical input always yields
// identical topology and identical output bytes.
//
// Per level, polylines appear in the order their first cell was visited in the
// row-major scan. Closed contours repeat their first point at the end; open
// contours end where the (bordered) grid boundary was reached. Levels are
// treated as a set: duplicates collapse, and a level crossing nothing has no
// map entry. An empty or single-sample grid yields an empty map. Non-finite
// levels fail with ErrDegenerateLevel.
func Trace(g *Grid, levels []float64) (map[float64][]orb.LineString, error) {
	for _, l := range levels {
		if math.IsNaN(l) || math.IsInf(l, 0) {
			return nil, fmt.Errorf("%w: %v", ErrDegenerateLevel, l)
		}
	}

	result := make(map[float64][]orb.LineString)
	if g == nil {
		return result, nil
	}
	b := g.border
	if g.width+2*b < 2 || g.height+2*b < 2 {
		return result, nil
	}

	states := make([]*levelState, 0, len(levels))
	for _, l := range levels {
		if _, dup := result[l]; dup {
			continue
		}
		result[l] = nil
		states = append(states, &levelState{level: l, pts: make(map[edgeKey]orb.Point)})
	}

	// One pass over the cells shared by all levels: the four corner reads
	// happen once per cell, classification once per cell per level.
	for r := -b; r < g.height+b-1; r++ {
		for c := -b; c < g.width+b-1; c++ {
			v00 := float64(g.At(r, c))
			v01 := float64(g.At(r, c+1))
			v10 := float64(g.At(r+1, c))
			v11 := float64(g.At(r+1, c+1))

			for _, st := range states {
				l := st.level
				idx := 0
				if v00 >= l {
					idx |= 1
				}
				if v01 >= l {
					idx |= 2
				}
				if v11 >= l {
					idx |= 4
				}
				if v10 >= l {
					idx |= 8
				}
				if idx == 0 || idx == 15 {
					continue
				}

				top := edgeKey{row: r, col: c}
				bottom := edgeKey{row: r + 1, col: c}
				left := edgeKey{row: r, col: c, vert: true}
				right := edgeKey{row: r, col: c + 1, vert: true}

				switch idx {
				case 1, 14:
					st.emit(g, top, left)
				case 2, 13:
					st.emit(g, top, right)
				case 3, 12:
					st.emit(g, left, right)
				case 4, 11:
					st.emit(g, right, bottom)
				case 6, 9:
					st.emit(g, top, bottom)
				case 7, 8:
					st.emit(g, left, bottom)
				case 5:
					// Saddle, above corners on the main diagonal.
					if (v00+v01+v10+v11)/4 >= l {
						st.emit(g, top, right)
						st.emit(g, left, bottom)
					} else {
						st.emit(g, top, left)
						st.emit(g, right, bottom)
					}
				case 10:
					// Saddle, above corners on the anti-diagonal.
					if (v00+v01+v10+v11)/4 >= l {
						st.emit(g, top, left)
						st.emit(g, right, bottom)
					} else {
						st.emit(g, top, right)
						st.emit(g, left, bottom)
					}
				}
			}
		}
	}

	for _, st := range states {
		if len(st.segs) == 0 {
			delete(result, st.level)
			continue
		}
		result[st.level] = stitch(st.segs, st.pts)
	}
	return result, nil
}

// stitch joins per-cell segments into polylines by exact endpoint identity.
// Every edge key touches at most two segments (one per adjacent cell), so
// chains and rings are unambiguous. Each polyline is emitted when its
// earliest segment comes up in scan order, which fixes the output order.
func stitch(segs []segment, pts map[edgeKey]orb.Point) []orb.LineString {
	adj := make(map[edgeKey][]int, len(pts))
	for i, s := range segs {
		adj[s.a] = append(adj[s.a], i)
		adj[s.b] = append(adj[s.b], i)
	}

	used := make([]bool, len(segs))
	var lines []orb.LineString

	for i := range segs {
		if used[i] {
			continue
		}
		used[i] = true
		start, end := segs[i].a, segs[i].b
		chain := []edgeKey{start, end}
		closed := false

		for {
			si := nextUnused(adj, used, end)
			if si < 0 {
				break
			}
			used[si] = true
			if segs[si].a == end {
				end = segs[si].b
			} else {
				end = segs[si].a
			}
			chain = append(chain, end)
			if end == start {
				closed = true
				break
			}
		}

		if !closed {
			var back []edgeKey
			for {
				si := nextUnused(adj, used, start)
				if si < 0 {
					break
				}
				used[si] = true
				if segs[si].a == start {
					start = segs[si].b
				} else {
					start = segs[si].a
				}
				back = append(back, start)
			}
			if len(back) > 0 {
				joined := make([]edgeKey, 0, len(back)+len(chain))
				for j := len(back) - 1; j >= 0; j-- {
					joined = append(joined, back[j])
				}
				chain = append(joined, chain...)
			}
		}

		line := make(orb.LineString, len(chain))
		for j, k := range chain {
			line[j] = pts[k]
		}
		lines = append(lines, line)
	}
	return lines
}

func nextUnused(adj map[edgeKey][]int, used []bool, at edgeKey) int {
	for _, si := range adj[at] {
		if !used[si] {
			return si
		}
	}
	return -1
}

// Closed reports whether a traced polyline is a ring (first point equal to
// its last point).
func Closed(line orb.LineString) bool {
	return len(line) >= 4 && line[0] == line[len(line)-1]
}

// Ring converts a closed traced polyline to an orb.Ring. The second return
// is false for open polylines.
func Ring(line orb.LineString) (orb.Ring, bool) {
	if !Closed(line) {
		return nil, false
	}
	return orb.Ring(line), true
}
