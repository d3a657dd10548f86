// Package shape turns raw freehand strokes into primitive shape hypotheses.
//
// Detection is a fixed cascade: line, ellipse, diamond, triangle, rectangle.
// Each detector either accepts the stroke with fitted geometry or declines,
// and the first acceptance wins. A stroke no detector claims is reported as
// None and the caller keeps the raw polyline.
package shape

import (
	"math"

	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/geom"
)

// Kind is the detected shape class.
type Kind int

const (
	None Kind = iota
	Line
	Ellipse
	Diamond
	Triangle
	Rectangle
)

func (k Kind) String() string {
	switch k {
	case Line:
		return "line"
	case Ellipse:
		return "ellipse"
	case Diamond:
		return "diamond"
	case Triangle:
		return "triangle"
	case Rectangle:
		return "rectangle"
	default:
		return "none"
	}
}

// Result is the accepted hypothesis. Only the fields belonging to Kind are
// meaningful: Start/End for lines, Center and radii for ellipses, Box for
// diamonds and rectangles, V1..V3 for triangles.
type Result struct {
	Kind Kind

	Start geom.Point
	End   geom.Point

	CenterX float64
	CenterY float64
	RadiusX float64
	RadiusY float64

	Box geom.Box

	V1 geom.Point
	V2 geom.Point
	V3 geom.Point
}

const (
	// minPoints is the floor below which no detector runs.
	minPoints = 5

	// A line must cover some distance and barely wander off the chord.
	minLineLength    = 20.0
	maxLineWandering = 1.15

	// Closure tolerances, as fractions of the bounding-box diagonal.
	ellipseClosure   = 0.25
	diamondClosure   = 0.30
	triangleClosure  = 0.30
	rectangleClosure = 0.25

	// Ellipse fitting: the stroke length must sit near the Ramanujan
	// perimeter estimate, and the radial spread around the centroid must be
	// small relative to the mean radius.
	minEllipsePoints   = 10
	perimeterTolerance = 0.30
	maxRoundness       = 0.25

	// Corner thresholds in radians, loosest for triangles.
	diamondCornerAngle   = 0.5
	triangleCornerAngle  = 0.4
	rectangleCornerAngle = 0.6

	// Diamonds want detected corners near the bounding-box edge midpoints.
	midpointTolerance = 0.20

	// Triangles and rectangles below this bounding-box dimension are noise.
	minShapeSize = 15.0

	minTrianglePoints  = 8
	minRectanglePoints = 10

	// A rectangle stroke encloses most of its own bounding box.
	minAreaRatio = 0.70
)

// Recognize runs the detector cascade over a stroke. The input slice is not
// modified. Calling it twice with the same points yields the same Result.
func Recognize(points []geom.Point) Result {
	if len(points) < minPoints {
		return Result{Kind: None}
	}
	if r, ok := detectLine(points); ok {
		return r
	}
	if r, ok := detectEllipse(points); ok {
		return r
	}
	if r, ok := detectDiamond(points); ok {
		return r
	}
	if r, ok := detectTriangle(points); ok {
		return r
	}
	if r, ok := detectRectangle(points); ok {
		return r
	}
	return Result{Kind: None}
}

func detectLine(points []geom.Point) (Result, bool) {
	first, last := points[0], points[len(points)-1]
	direct := geom.Distance(first, last)
	if direct < minLineLength {
		return Result{}, false
	}
	if geom.PathLength(points)/direct >= maxLineWandering {
		return Result{}, false
	}
	return Result{Kind: Line, Start: first, End: last}, true
}

// isClosed reports whether the stroke ends near where it started, scaled by
// the bounding-box diagonal.
func isClosed(points []geom.Point, box geom.Box, tolerance float64) bool {
	return geom.Distance(points[0], points[len(points)-1]) <= tolerance*box.Diagonal()
}

func detectEllipse(points []geom.Point) (Result, bool) {
	if len(points) < minEllipsePoints {
		return Result{}, false
	}
	box := geom.BoundingBox(points)
	if !isClosed(points, box, ellipseClosure) {
		return Result{}, false
	}
	rx, ry := box.Width/2, box.Height/2
	// Ramanujan's perimeter approximation.
	expected := math.Pi * (3*(rx+ry) - math.Sqrt((3*rx+ry)*(rx+3*ry)))
	if expected <= 0 || math.IsNaN(expected) {
		return Result{}, false
	}
	if math.Abs(geom.PathLength(points)-expected) > perimeterTolerance*expected {
		return Result{}, false
	}
	center := geom.Centroid(points)
	var sum, sumSq float64
	for _, p := range points {
		d := geom.Distance(center, p)
		sum += d
		sumSq += d * d
	}
	n := float64(len(points))
	mean := sum / n
	if mean < 1e-9 {
		return Result{}, false
	}
	// Radial variance over mean radius. Only near-circular strokes pass;
	// closed rectangles and diamonds score an order of magnitude higher.
	variance := sumSq/n - mean*mean
	if variance/mean >= maxRoundness {
		return Result{}, false
	}
	return Result{
		Kind:    Ellipse,
		CenterX: box.CenterX(),
		CenterY: box.CenterY(),
		RadiusX: rx,
		RadiusY: ry,
	}, true
}

func detectDiamond(points []geom.Point) (Result, bool) {
	box := geom.BoundingBox(points)
	if !isClosed(points, box, diamondClosure) {
		return Result{}, false
	}
	corners := geom.FindCorners(points, diamondCornerAngle)
	if len(corners) < 4 || len(corners) > 6 {
		return Result{}, false
	}
	midpoints := [4]geom.Point{
		geom.Pt(box.CenterX(), box.MinY),
		geom.Pt(box.MaxX, box.CenterY()),
		geom.Pt(box.CenterX(), box.MaxY),
		geom.Pt(box.MinX, box.CenterY()),
	}
	tolerance := midpointTolerance * box.Diagonal()
	hits := 0
	for _, m := range midpoints {
		for _, ci := range corners {
			if geom.Distance(points[ci], m) <= tolerance {
				hits++
				break
			}
		}
	}
	if hits < 3 {
		return Result{}, false
	}
	return Result{Kind: Diamond, Box: box}, true
}

func detectTriangle(points []geom.Point) (Result, bool) {
	if len(points) < minTrianglePoints {
		return Result{}, false
	}
	box := geom.BoundingBox(points)
	if math.Min(box.Width, box.Height) < minShapeSize {
		return Result{}, false
	}
	if !isClosed(points, box, triangleClosure) {
		return Result{}, false
	}
	corners := geom.FindCorners(points, triangleCornerAngle)
	if len(corners) < 3 || len(corners) > 5 {
		return Result{}, false
	}
	// Vertices are picked at fixed thirds of the corner list, endpoints
	// included, so they can sit a little off the true extremes.
	return Result{
		Kind: Triangle,
		V1:   points[corners[0]],
		V2:   points[corners[len(corners)/3]],
		V3:   points[corners[2*len(corners)/3]],
	}, true
}

func detectRectangle(points []geom.Point) (Result, bool) {
	if len(points) < minRectanglePoints {
		return Result{}, false
	}
	box := geom.BoundingBox(points)
	if math.Min(box.Width, box.Height) < minShapeSize {
		return Result{}, false
	}
	if !isClosed(points, box, rectangleClosure) {
		return Result{}, false
	}
	corners := geom.FindCorners(points, rectangleCornerAngle)
	if len(corners) < 4 || len(corners) > 7 {
		return Result{}, false
	}
	if box.Area() < 1e-9 {
		return Result{}, false
	}
	if geom.PolygonArea(points)/box.Area() <= minAreaRatio {
		return Result{}, false
	}
	return Result{Kind: Rectangle, Box: box}, true
}
