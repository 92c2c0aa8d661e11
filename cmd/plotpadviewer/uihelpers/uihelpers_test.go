package uihelpers

import (
	"math"
	"testing"
)

func TestComputeChartDimensions(t *testing.T) {
	cases := []struct {
		inW, inH     int
		wantW, wantH int
	}{
		{100, 100, 480, 320},
		{479, 319, 480, 320},
		{480, 320, 480, 320},
		{1600, 900, 1600, 900},
		{9000, 9000, 4096, 2400},
	}
	for _, c := range cases {
		w, h := ComputeChartDimensions(c.inW, c.inH)
		if w != c.wantW || h != c.wantH {
			t.Fatalf("input %dx%d => %dx%d want %dx%d", c.inW, c.inH, w, h, c.wantW, c.wantH)
		}
	}
}

func TestComputeContainRect(t *testing.T) {
	// wide view, square image: image scales to view height and centers horizontally
	x, y, w, h, scale := ComputeContainRect(100, 100, 400, 200)
	if scale != 2 {
		t.Fatalf("scale %v want 2", scale)
	}
	if w != 200 || h != 200 {
		t.Fatalf("drawn size %vx%v want 200x200", w, h)
	}
	if x != 100 || y != 0 {
		t.Fatalf("drawn origin (%v,%v) want (100,0)", x, y)
	}

	// degenerate inputs fall back to a unit transform
	_, _, w, h, scale = ComputeContainRect(0, 100, 400, 200)
	if w != 0 || h != 0 || scale != 1 {
		t.Fatalf("degenerate input not neutral: w=%v h=%v scale=%v", w, h, scale)
	}
}

func TestZoomDomain(t *testing.T) {
	dom := [2]float64{-10, 10}

	in := ZoomDomain(dom, 0, 0.5)
	if in != [2]float64{-5, 5} {
		t.Fatalf("zoom in around 0: %v", in)
	}

	out := ZoomDomain(dom, 0, 2)
	if out != [2]float64{-20, 20} {
		t.Fatalf("zoom out around 0: %v", out)
	}

	// off-center zoom keeps the center's relative position
	off := ZoomDomain(dom, 5, 0.5)
	if math.Abs(off[0]-(-2.5)) > 1e-12 || math.Abs(off[1]-7.5) > 1e-12 {
		t.Fatalf("off-center zoom: %v", off)
	}

	// invalid factor and collapsed spans leave the domain untouched
	if got := ZoomDomain(dom, 0, 0); got != dom {
		t.Fatalf("zero factor should be a no-op: %v", got)
	}
	tiny := [2]float64{1, 1 + 1e-12}
	if got := ZoomDomain(tiny, 1, 0.5); got != tiny {
		t.Fatalf("collapsed span should be a no-op: %v", got)
	}
}
