package state

import (
	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/geom"
)

// hitSlop is the pick tolerance of ElementAt, in canvas units.
const hitSlop = 6.0

// ellipseHitSegments is how finely ellipses are flattened for hit tests.
const ellipseHitSegments = 24

// elementHit reports whether p lands on el within slop units. Stroked shapes
// test their outline, filled and textual ones their interior too.
func elementHit(el Element, p geom.Point, slop float64) bool {
	b := el.Bounds()
	if p.X < b.MinX-slop || p.X > b.MaxX+slop ||
		p.Y < b.MinY-slop || p.Y > b.MaxY+slop {
		return false
	}
	tol := slop + el.StrokeWidth/2
	switch el.Type {
	case TypeFreehand:
		return polylineHit(el.Points, p, tol, false)
	case TypeLine, TypeArrow:
		return geom.DistanceToSegment(p, el.Start, el.End) <= tol
	case TypeRectangle:
		if el.FillColor != Transparent {
			return true
		}
		return polylineHit(RectangleOutline(b), p, tol, true)
	case TypeEllipse:
		return outlineHit(EllipseOutline(b, ellipseHitSegments), el, p, tol)
	case TypeDiamond:
		return outlineHit(DiamondVertices(b), el, p, tol)
	case TypeTriangle:
		return outlineHit(TriangleVertices(el), el, p, tol)
	case TypeStar:
		return outlineHit(StarVertices(el), el, p, tol)
	case TypeText:
		return true
	}
	return true
}

func outlineHit(outline []geom.Point, el Element, p geom.Point, tol float64) bool {
	if el.FillColor != Transparent && geom.PointInPolygon(p, outline) {
		return true
	}
	return polylineHit(outline, p, tol, true)
}

// polylineHit reports whether p is within tol of any segment of the chain.
func polylineHit(points []geom.Point, p geom.Point, tol float64, closed bool) bool {
	if len(points) == 0 {
		return false
	}
	if len(points) == 1 {
		return geom.Distance(points[0], p) <= tol
	}
	for i := 0; i+1 < len(points); i++ {
		if geom.DistanceToSegment(p, points[i], points[i+1]) <= tol {
			return true
		}
	}
	return closed && geom.DistanceToSegment(p, points[len(points)-1], points[0]) <= tol
}
