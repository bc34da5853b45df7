package viz

import (
	"math"
	"strings"
	"testing"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Set(0, 0)
	if c.Grid[0][0] == 0x2800 {
		t.Error("pixel not set")
	}

	// Out-of-range coordinates must be ignored.
	c.Set(-1, 2)
	c.Set(2, -1)
	c.Set(1000, 1000)

	c.Clear()
	for i := range c.Grid {
		for j := range c.Grid[i] {
			if c.Grid[i][j] != 0x2800 {
				t.Fatalf("cell (%d,%d) not cleared", i, j)
			}
		}
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawLine(0, 0, 30, 30)
	if c.Grid[0][0] == 0x2800 {
		t.Error("line start not drawn")
	}
	if c.Grid[30/4][30/2] == 0x2800 {
		t.Error("line end not drawn")
	}
}

func TestPlotClosedCurve(t *testing.T) {
	c := NewCanvas(40, 16)

	n := 64
	curve := make([][]float64, 2)
	curve[0] = make([]float64, n)
	curve[1] = make([]float64, n)
	for j := 0; j < n; j++ {
		theta := 2 * math.Pi * float64(j) / float64(n)
		curve[0][j] = 2 * math.Cos(theta)
		curve[1][j] = 3 * math.Sin(theta)
	}
	c.PlotClosedCurve(curve, 0, 1)

	if !strings.ContainsFunc(c.String(), func(r rune) bool { return r > 0x2800 && r <= 0x28FF }) {
		t.Error("nothing plotted")
	}

	// Degenerate input must not panic or draw.
	c.Clear()
	c.PlotClosedCurve(curve, 0, 5)
	for i := range c.Grid {
		for j := range c.Grid[i] {
			if c.Grid[i][j] != 0x2800 {
				t.Fatal("out-of-range projection drew pixels")
			}
		}
	}
}
