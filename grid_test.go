package contour

import (
	"context"
	"errors"
	"testing"
)

func TestNewGrid(t *testing.T) {
	g, err := NewGrid([][]float32{
		{1, 2, 3},
		{4, 5, 6},
	})
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	if g.Width() != 3 || g.Height() != 2 {
		t.Fatalf("got %dx%d; want 3x2", g.Width(), g.Height())
	}
	if got := g.At(1, 2); got != 6 {
		t.Errorf("At(1,2) = %v; want 6", got)
	}
}

func TestNewGrid_DeepCopies(t *testing.T) {
	rows := [][]float32{{1, 2}, {3, 4}}
	g, err := NewGrid(rows)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	rows[0][0] = 99
	if got := g.At(0, 0); got != 1 {
		t.Errorf("At(0,0) = %v after caller mutation; want 1", got)
	}
}

func TestNewGrid_Empty(t *testing.T) {
	for _, rows := range [][][]float32{nil, {}, {{}}} {
		g, err := NewGrid(rows)
		if err != nil {
			t.Fatalf("NewGrid(%v) failed: %v", rows, err)
		}
		if !g.Empty() {
			t.Errorf("NewGrid(%v): expected empty grid", rows)
		}
	}
}

func TestNewGrid_NonRectangular(t *testing.T) {
	_, err := NewGrid([][]float32{{1, 2}, {3}})
	if !errors.Is(err, ErrNonRectangular) {
		t.Errorf("error = %v; want ErrNonRectangular", err)
	}
}

func TestGridAt_OutOfBounds(t *testing.T) {
	g, err := NewGrid([][]float32{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	cases := [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}}
	for _, rc := range cases {
		func() {
			defer func() {
				r := recover()
				if r == nil {
					t.Errorf("At(%d,%d) did not panic", rc[0], rc[1])
					return
				}
				err, ok := r.(error)
				if !ok || !errors.Is(err, ErrGridBounds) {
					t.Errorf("At(%d,%d) panic = %v; want ErrGridBounds", rc[0], rc[1], r)
				}
			}()
			g.At(rc[0], rc[1])
		}()
	}
}

func TestGridAt_BorderExtent(t *testing.T) {
	interior, err := NewGrid([][]float32{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	g := Assemble(context.Background(), interior, nil)

	if g.Border() != 1 {
		t.Fatalf("Border() = %d; want 1", g.Border())
	}
	// The full bordered extent is readable.
	for r := -1; r <= 2; r++ {
		for c := -1; c <= 2; c++ {
			g.At(r, c)
		}
	}
	// One past the border is not.
	defer func() {
		if recover() == nil {
			t.Error("At(-2,0) did not panic")
		}
	}()
	g.At(-2, 0)
}
