package contour

import (
	"encoding/binary"
	"io"
	"math"
	"sort"

	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/flatgeobuf/flatgeobuf/src/go/writer"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/paulmach/orb"
)

// Exported property schema: column 0 is the contour level (Double), column 1
// reports whether the polyline is a closed ring (Bool).
const (
	colLevel = iota
	colClosed
)

// WriteFGB serializes traced contours to FlatGeobuf as LineString features.
// Levels are written in ascending order, each level's polylines in traced
// order, so the byte output for a given trace result is deterministic. Every
// feature carries "level" and "closed" properties.
//
// Writing an empty contour set fails with ErrNoContours.
func WriteFGB(w io.Writer, contours map[float64][]orb.LineString, opts *Options) error {
	if opts == nil {
		opts = DefaultOptions()
	}

	levels := make([]float64, 0, len(contours))
	for l := range contours {
		levels = append(levels, l)
	}
	sort.Float64s(levels)

	entries := make([]contourEntry, 0)
	for _, l := range levels {
		for _, line := range contours[l] {
			if len(line) < 2 {
				continue
			}
			entries = append(entries, contourEntry{level: l, line: line})
		}
	}
	if len(entries) == 0 {
		return ErrNoContours
	}

	builder := flatbuffers.NewBuilder(4096)

	header := writer.NewHeader(builder)
	header.SetGeometryType(flattypes.GeometryTypeLineString)
	// The upstream writer only fills the count in its index branch; set it
	// here so unindexed output reports it too.
	header.SetFeaturesCount(uint64(len(entries)))
	if opts.Name != "" {
		header.SetName(opts.Name)
	}
	if opts.Description != "" {
		header.SetDescription(opts.Description)
	}
	header.SetColumns(contourColumns(builder))

	if opts.CRS != nil {
		crs := writer.NewCrs(builder)
		crs.SetOrg("EPSG")
		if opts.CRS.Code > 0 {
			crs.SetCode(int32(opts.CRS.Code))
		}
		if opts.CRS.Name != "" {
			crs.SetName(opts.CRS.Name)
		}
		if opts.CRS.Description != "" {
			crs.SetDescription(opts.CRS.Description)
		}
		header.SetCrs(crs)
	}

	gen := &contourFeatureGenerator{entries: entries}
	fgbWriter := writer.NewWriter(header, opts.IncludeIndex, gen, nil)
	_, err := fgbWriter.Write(w)
	return err
}

// contourColumns builds the fixed two-column schema. The schema never varies
// between exports, so no type inference is involved.
func contourColumns(builder *flatbuffers.Builder) []*writer.Column {
	level := writer.NewColumn(builder)
	level.SetName("level")
	level.SetTitle("level")
	level.SetType(flattypes.ColumnTypeDouble)
	level.SetNullable(false)

	closed := writer.NewColumn(builder)
	closed.SetName("closed")
	closed.SetTitle("closed")
	closed.SetType(flattypes.ColumnTypeBool)
	closed.SetNullable(false)

	return []*writer.Column{level, closed}
}

type contourEntry struct {
	level float64
	line  orb.LineString
}

// contourFeatureGenerator feeds the FlatGeobuf writer one contour per call.
type contourFeatureGenerator struct {
	entries []contourEntry
	index   int
}

func (g *contourFeatureGenerator) Generate() *writer.Feature {
	if g.index >= len(g.entries) {
		return nil
	}
	e := g.entries[g.index]
	g.index++

	builder := flatbuffers.NewBuilder(1024)

	geom := writer.NewGeometry(builder)
	geom.SetType(flattypes.GeometryTypeLineString)
	xy := make([]float64, 0, len(e.line)*2)
	for _, p := range e.line {
		xy = append(xy, p[0], p[1])
	}
	geom.SetXY(xy)

	feature := writer.NewFeature(builder)
	feature.SetGeometry(geom)
	feature.SetProperties(encodeContourProperties(e.level, Closed(e.line)))

	return feature
}

// encodeContourProperties packs the two properties in FlatGeobuf binary
// property format: a little-endian uint16 column index followed by the raw
// value bytes, repeated per property.
func encodeContourProperties(level float64, closed bool) []byte {
	buf := make([]byte, 0, 13)

	var idx [2]byte
	var val [8]byte

	binary.LittleEndian.PutUint16(idx[:], colLevel)
	buf = append(buf, idx[:]...)
	binary.LittleEndian.PutUint64(val[:], math.Float64bits(level))
	buf = append(buf, val[:]...)

	binary.LittleEndian.PutUint16(idx[:], colClosed)
	buf = append(buf, idx[:]...)
	if closed {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}

	return buf
}
