package uihelpers

// ComputeChartDimensions applies the width/height clamp rules used for the
// rendered plot raster. Input: measured canvas size in pixels. Returns the
// clamped raster size handed to the render coordinator.
func ComputeChartDimensions(rawW, rawH int) (int, int) {
	w := rawW
	if w < 480 {
		w = 480
	}
	if w > 4096 {
		w = 4096
	}
	h := rawH
	if h < 320 {
		h = 320
	}
	if h > 2400 {
		h = 2400
	}
	return w, h
}

// ComputeContainRect returns the drawn rectangle and scale of an image
// displayed with contain fit inside a view of the given size.
func ComputeContainRect(imgW, imgH, viewW, viewH float32) (x, y, w, h, scale float32) {
	if imgW <= 0 || imgH <= 0 || viewW <= 0 || viewH <= 0 {
		return 0, 0, 0, 0, 1
	}
	sx := viewW / imgW
	sy := viewH / imgH
	scale = sx
	if sy < sx {
		scale = sy
	}
	w = imgW * scale
	h = imgH * scale
	x = (viewW - w) / 2
	y = (viewH - h) / 2
	return x, y, w, h, scale
}

// ZoomDomain rescales a domain around a center point. factor < 1 zooms in,
// factor > 1 zooms out. The center keeps its relative position so the point
// under the cursor stays put.
func ZoomDomain(dom [2]float64, center, factor float64) [2]float64 {
	if factor <= 0 {
		return dom
	}
	lo := center - (center-dom[0])*factor
	hi := center + (dom[1]-center)*factor
	const minSpan = 1e-9
	if hi-lo < minSpan {
		return dom
	}
	return [2]float64{lo, hi}
}
