package main

import (
	"bytes"
	"context"
	"log"
	"math"
	"net/http"
	"time"

	contour "github.com/tingold/orb-contour"
)

// synthesizeTile encodes a synthetic volcano-shaped terrain as a Mapbox
// Terrain-RGB pixel buffer, standing in for a fetched DEM tile.
func synthesizeTile(size int) contour.PixelBuffer {
	pix := make([]byte, size*size*4)
	center := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float64(x) - center) / center
			dy := (float64(y) - center) / center
			d := math.Sqrt(dx*dx + dy*dy)
			elevation := 1200*math.Exp(-4*d*d) - 150*math.Exp(-80*d*d)

			// Invert the Mapbox formula: value = (elevation + 10000) * 10
			v := uint32((elevation + 10000) * 10)
			i := (y*size + x) * 4
			pix[i] = byte(v >> 16)
			pix[i+1] = byte(v >> 8)
			pix[i+2] = byte(v)
			pix[i+3] = 255
		}
	}
	return contour.PixelBuffer{Width: size, Height: size, Pix: pix}
}

func main() {
	px := synthesizeTile(256)

	levels := make([]float64, 0, 12)
	for l := 100.0; l <= 1200; l += 100 {
		levels = append(levels, l)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// No neighbor source here: a lone tile gets clamped borders.
	_, lines, err := contour.DecodeAndTrace(ctx, px, contour.Mapbox, nil, levels)
	if err != nil {
		log.Fatalf("Failed to trace contours: %v", err)
	}

	var buf bytes.Buffer
	opts := &contour.Options{
		Name:         "demo_contours",
		Description:  "Contours of a synthetic volcano at 100m intervals",
		IncludeIndex: false,
		CRS:          contour.WebMercator(),
	}
	if err := contour.WriteFGB(&buf, lines, opts); err != nil {
		log.Fatalf("Failed to create FlatGeobuf: %v", err)
	}
	flatgeobufData := buf.Bytes()

	http.HandleFunc("/contours.fgb", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Write(flatgeobufData)
	})

	log.Println("Server starting on http://localhost:8080")
	log.Printf("Traced %d levels; serving /contours.fgb (%d bytes)", len(lines), len(flatgeobufData))
	log.Fatal(http.ListenAndServe(":8080", nil))
}
