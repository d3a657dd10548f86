package state

import (
	"math"

	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/geom"
)

// Outline generators shared by hit-testing, the exporters and the renderer,
// so that what you can click is exactly what gets drawn.

// RectangleOutline returns the four corners of b clockwise from the top-left.
func RectangleOutline(b geom.Box) []geom.Point {
	return []geom.Point{
		geom.Pt(b.MinX, b.MinY),
		geom.Pt(b.MaxX, b.MinY),
		geom.Pt(b.MaxX, b.MaxY),
		geom.Pt(b.MinX, b.MaxY),
	}
}

// DiamondVertices returns the four edge midpoints of b, top first.
func DiamondVertices(b geom.Box) []geom.Point {
	return []geom.Point{
		geom.Pt(b.CenterX(), b.MinY),
		geom.Pt(b.MaxX, b.CenterY()),
		geom.Pt(b.CenterX(), b.MaxY),
		geom.Pt(b.MinX, b.CenterY()),
	}
}

// TriangleVertices returns the element's stored vertices when recognition
// provided them, otherwise an isoceles triangle filling the bounds, apex up.
func TriangleVertices(el Element) []geom.Point {
	if len(el.Points) >= 3 {
		return []geom.Point{el.Points[0], el.Points[1], el.Points[2]}
	}
	b := el.Bounds()
	return []geom.Point{
		geom.Pt(b.CenterX(), b.MinY),
		geom.Pt(b.MaxX, b.MaxY),
		geom.Pt(b.MinX, b.MaxY),
	}
}

// StarVertices returns the 2n outline vertices of a star filling the
// element's bounds, first point up, alternating outer and inner radius.
func StarVertices(el Element) []geom.Point {
	n := el.PointCount
	if n < 2 {
		n = DefaultStarPoints
	}
	ratio := el.InnerRadiusRatio
	if ratio <= 0 || ratio >= 1 {
		ratio = DefaultStarRatio
	}
	b := el.Bounds()
	cx, cy := b.CenterX(), b.CenterY()
	rx, ry := b.Width/2, b.Height/2
	pts := make([]geom.Point, 0, 2*n)
	for i := 0; i < 2*n; i++ {
		a := -math.Pi/2 + math.Pi*float64(i)/float64(n)
		r := 1.0
		if i%2 == 1 {
			r = ratio
		}
		pts = append(pts, geom.Pt(cx+rx*r*math.Cos(a), cy+ry*r*math.Sin(a)))
	}
	return pts
}

// EllipseOutline flattens the ellipse inscribed in b into a polygon.
func EllipseOutline(b geom.Box, segments int) []geom.Point {
	if segments < 8 {
		segments = 8
	}
	cx, cy := b.CenterX(), b.CenterY()
	rx, ry := b.Width/2, b.Height/2
	pts := make([]geom.Point, 0, segments)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts = append(pts, geom.Pt(cx+rx*math.Cos(a), cy+ry*math.Sin(a)))
	}
	return pts
}

// ArrowHead returns the two barb points of an arrowhead of the given size for
// a shaft ending at end. A zero-length shaft collapses both barbs onto end.
func ArrowHead(start, end geom.Point, size float64) (geom.Point, geom.Point) {
	dx, dy := end.X-start.X, end.Y-start.Y
	l := math.Hypot(dx, dy)
	if l < 1e-9 {
		return end, end
	}
	ux, uy := dx/l, dy/l
	bx, by := end.X-size*ux, end.Y-size*uy
	half := size / 2
	return geom.Pt(bx-half*uy, by+half*ux), geom.Pt(bx+half*uy, by-half*ux)
}
