package input

import (
	stdmath "math"
)

const (
	LaserLength   = 1.0
	LaserDiameter = 0.01

	// laser vertex layout: x, y, z, u, v
	laserVertexFloats = 5
	laserVertexStride = laserVertexFloats * 4
)

const (
	CursorRadius               = 0.005
	CursorShadowRadius         = 0.008
	CursorShadowInnerLuminance = 0.5
	CursorShadowOuterLuminance = 0.0
	CursorShadowInnerOpacity   = 0.75
	CursorShadowOuterOpacity   = 0.0
	CursorOpacity              = 0.9
	CursorSegments             = 16

	// cursor vertex layout: x, y, luminance, opacity
	cursorVertexFloats = 4
	cursorVertexStride = cursorVertexFloats * 4

	minCursorSegments = 3
	maxCursorSegments = stdmath.MaxUint16 / 3
)

// LaserGeometry returns the beam mesh: four quads crossing along the -Z
// axis from the origin to -LaserLength, so the beam reads as a line from
// any angle. V runs from 1 at the origin to 0 at the far end; U crosses the
// beam for the ramp texture.
func LaserGeometry() ([]float32, []uint16) {
	lr := float32(LaserDiameter * 0.5)
	ll := float32(LaserLength)

	verts := []float32{
		//X    Y    Z    U    V
		0.0, lr, 0.0, 0.0, 1.0,
		0.0, lr, -ll, 0.0, 0.0,
		0.0, -lr, 0.0, 1.0, 1.0,
		0.0, -lr, -ll, 1.0, 0.0,

		lr, 0.0, 0.0, 0.0, 1.0,
		lr, 0.0, -ll, 0.0, 0.0,
		-lr, 0.0, 0.0, 1.0, 1.0,
		-lr, 0.0, -ll, 1.0, 0.0,

		0.0, -lr, 0.0, 0.0, 1.0,
		0.0, -lr, -ll, 0.0, 0.0,
		0.0, lr, 0.0, 1.0, 1.0,
		0.0, lr, -ll, 1.0, 0.0,

		-lr, 0.0, 0.0, 0.0, 1.0,
		-lr, 0.0, -ll, 0.0, 0.0,
		lr, 0.0, 0.0, 1.0, 1.0,
		lr, 0.0, -ll, 1.0, 0.0,
	}
	indices := []uint16{
		0, 1, 2, 1, 3, 2,
		4, 5, 6, 5, 7, 6,
		8, 9, 10, 9, 11, 10,
		12, 13, 14, 13, 15, 14,
	}
	return verts, indices
}

// CursorGeometry returns a filled disc of the given segment count followed
// by a skirt ring that fades from half-bright to transparent. Positions are
// in clip-space units; the cursor material billboards them.
//
// segments is clamped to [3, 21845] so indices fit in uint16.
func CursorGeometry(segments int) ([]float32, []uint16) {
	if segments < minCursorSegments {
		segments = minCursorSegments
	}
	if segments > maxCursorSegments {
		segments = maxCursorSegments
	}

	verts := make([]float32, 0, 3*segments*cursorVertexFloats)
	indices := make([]uint16, 0, 3*(segments-2)+6*segments)

	segRad := 2.0 * stdmath.Pi / float64(segments)

	// center fan
	for i := 0; i < segments; i++ {
		x, y := circlePoint(float64(i) * segRad)
		verts = append(verts, x*CursorRadius, y*CursorRadius, 1.0, CursorOpacity)

		if i > 1 {
			indices = append(indices, 0, uint16(i-1), uint16(i))
		}
	}

	offset := segments

	// skirt: inner/outer vertex pairs
	for i := 0; i < segments; i++ {
		x, y := circlePoint(float64(i) * segRad)
		verts = append(verts,
			x*CursorRadius, y*CursorRadius, CursorShadowInnerLuminance, CursorShadowInnerOpacity,
			x*CursorShadowRadius, y*CursorShadowRadius, CursorShadowOuterLuminance, CursorShadowOuterOpacity,
		)

		if i > 0 {
			idx := uint16(offset + i*2)
			indices = append(indices, idx-2, idx-1, idx)
			indices = append(indices, idx-1, idx+1, idx)
		}
	}

	last := uint16(offset + segments*2)
	first := uint16(offset)
	indices = append(indices, last-2, last-1, first)
	indices = append(indices, last-1, first+1, first)

	return verts, indices
}

func circlePoint(rad float64) (float32, float32) {
	return float32(stdmath.Cos(rad)), float32(stdmath.Sin(rad))
}
