package bramble

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

func translateMatrix(x, y float64) [6]float64 { return [6]float64{1, 0, 0, 1, x, y} }

func scaleMatrix(sx, sy float64) [6]float64 { return [6]float64{sx, 0, 0, sy, 0, 0} }

func rotateMatrix(radians float64) [6]float64 {
	sin, cos := math.Sincos(radians)
	return [6]float64{cos, sin, -sin, cos, 0, 0}
}

// transformRect returns the axis-aligned bounds of r after applying m.
func transformRect(m [6]float64, r Rect) Rect {
	x0, y0 := float64(r.X), float64(r.Y)
	x1, y1 := float64(r.Right()), float64(r.Bottom())
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		tx, ty := transformPoint(m, p[0], p[1])
		minX, minY = math.Min(minX, tx), math.Min(minY, ty)
		maxX, maxY = math.Max(maxX, tx), math.Max(maxY, ty)
	}
	left, top := int(math.Floor(minX)), int(math.Floor(minY))
	return Rect{X: left, Y: top, Width: int(math.Ceil(maxX)) - left, Height: int(math.Ceil(maxY)) - top}
}

// geoM converts a [6]float64 transform into an ebiten.GeoM.
func geoM(t [6]float64) ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, t[0])
	m.SetElement(1, 0, t[1])
	m.SetElement(0, 1, t[2])
	m.SetElement(1, 1, t[3])
	m.SetElement(0, 2, t[4])
	m.SetElement(1, 2, t[5])
	return m
}
