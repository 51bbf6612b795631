package contour

import (
	"image"
)

// PixelBuffer holds one decoded raster tile as 4-channel RGBA byte samples,
// row-major with origin at the top-left. The buffer is owned by the caller
// and only read by this package.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []byte // RGBA, 4 bytes per pixel, len >= Width*Height*4
}

// PixelBufferFromImage copies an image produced by a platform codec into a
// PixelBuffer. This is a convenience for callers whose tile source yields a
// stdlib image; the copy keeps the buffer independent of the source image.
func PixelBufferFromImage(img image.Image) PixelBuffer {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]byte, w*h*4)

	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == w*4 && b.Min == (image.Point{}) {
		copy(pix, rgba.Pix)
		return PixelBuffer{Width: w, Height: h, Pix: pix}
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			pix[i] = byte(r >> 8)
			pix[i+1] = byte(g >> 8)
			pix[i+2] = byte(bl >> 8)
			pix[i+3] = byte(a >> 8)
			i += 4
		}
	}
	return PixelBuffer{Width: w, Height: h, Pix: pix}
}

// Decode converts a pixel buffer into a border-free elevation grid by applying
// the encoding formula to every pixel exactly once. Pixels are independent, so
// the loop carries no data dependency between iterations.
//
// An empty buffer decodes to a zero-size grid, not an error. A buffer shorter
// than Width*Height*4 bytes fails with ErrShortBuffer.
func Decode(px PixelBuffer, enc Encoding) (*Grid, error) {
	if !enc.valid() {
		return nil, ErrUnknownEncoding
	}
	w, h := px.Width, px.Height
	if w <= 0 || h <= 0 {
		return &Grid{}, nil
	}
	if len(px.Pix) < w*h*4 {
		return nil, ErrShortBuffer
	}

	g := newGrid(w, h, 0)
	i := 0
	if enc == Terrarium {
		for p := range g.data {
			r, gg, b := px.Pix[i], px.Pix[i+1], px.Pix[i+2]
			g.data[p] = float32(float64(r)*256 + float64(gg) + float64(b)/256 - 32768)
			i += 4
		}
	} else {
		for p := range g.data {
			r, gg, b := px.Pix[i], px.Pix[i+1], px.Pix[i+2]
			g.data[p] = float32(-10000 + float64(uint32(r)<<16|uint32(gg)<<8|uint32(b))*0.1)
			i += 4
		}
	}
	return g, nil
}
