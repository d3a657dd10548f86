// Package geom implements the computational geometry the sketch engine is
// built on: distances, bounding boxes, path measurements, and corner
// detection over sampled pointer paths. Everything here is a pure function;
// degenerate input produces degenerate output (an empty path has a zero
// bounding box) rather than an error.
package geom

import "math"

// DefaultPressure is assigned to points captured from devices that do not
// report pressure.
const DefaultPressure = 0.5

// Point is a single sampled position on the canvas. Pressure rides along for
// freehand rendering and is ignored by every geometric query.
type Point struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Pressure float64 `json:"pressure"`
}

// Pt returns a Point at (x, y) with DefaultPressure.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y, Pressure: DefaultPressure}
}

// Box is an axis-aligned bounding box. Width and Height are never negative.
type Box struct {
	MinX   float64
	MinY   float64
	MaxX   float64
	MaxY   float64
	Width  float64
	Height float64
}

// Diagonal returns the length of the box diagonal.
func (b Box) Diagonal() float64 {
	return math.Hypot(b.Width, b.Height)
}

// Area returns Width times Height.
func (b Box) Area() float64 {
	return b.Width * b.Height
}

// CenterX returns the horizontal centre of the box.
func (b Box) CenterX() float64 {
	return (b.MinX + b.MaxX) / 2
}

// CenterY returns the vertical centre of the box.
func (b Box) CenterY() float64 {
	return (b.MinY + b.MaxY) / 2
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// BoundingBox returns the smallest axis-aligned box containing every point.
// An empty slice yields the zero Box.
func BoundingBox(points []Point) Box {
	if len(points) == 0 {
		return Box{}
	}
	b := Box{MinX: points[0].X, MinY: points[0].Y, MaxX: points[0].X, MaxY: points[0].Y}
	for _, p := range points[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	b.Width = b.MaxX - b.MinX
	b.Height = b.MaxY - b.MinY
	return b
}

// PathLength returns the summed length of the polyline through points.
func PathLength(points []Point) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}
	return total
}

// Centroid returns the arithmetic mean of points, or the zero Point for an
// empty slice.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))
	return Point{X: sx / n, Y: sy / n}
}

// PolygonArea returns the area enclosed by the polygon through points, via
// the shoelace formula. The path is treated as closed whether or not the
// last point repeats the first.
func PolygonArea(points []Point) float64 {
	if len(points) < 3 {
		return 0
	}
	var sum float64
	for i, p := range points {
		q := points[(i+1)%len(points)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(sum) / 2
}

// PointInPolygon reports whether p lies inside the polygon, by even-odd ray
// casting. Points exactly on an edge may land on either side.
func PointInPolygon(p Point, polygon []Point) bool {
	if len(polygon) < 3 {
		return false
	}
	inside := false
	for i, j := 0, len(polygon)-1; i < len(polygon); j, i = i, i+1 {
		a, b := polygon[i], polygon[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// FindCorners returns the indices where the path turns more sharply than
// angleThreshold (radians). The turn at an index is measured between the
// incoming and outgoing direction across a window of max(1, n/20) samples,
// and a new corner must lie more than n/8 samples past the previous one.
// Index 0 and the last index are always included. Zero-length window vectors
// (repeated samples) are skipped.
func FindCorners(points []Point, angleThreshold float64) []int {
	n := len(points)
	if n == 0 {
		return nil
	}
	corners := []int{0}
	if n == 1 {
		return corners
	}
	window := n / 20
	if window < 1 {
		window = 1
	}
	minGap := float64(n) / 8
	last := 0
	for i := window; i < n-window; i++ {
		inX, inY := points[i].X-points[i-window].X, points[i].Y-points[i-window].Y
		outX, outY := points[i+window].X-points[i].X, points[i+window].Y-points[i].Y
		inLen := math.Hypot(inX, inY)
		outLen := math.Hypot(outX, outY)
		if inLen == 0 || outLen == 0 {
			continue
		}
		cos := (inX*outX + inY*outY) / (inLen * outLen)
		cos = math.Max(-1, math.Min(1, cos))
		if math.Acos(cos) > angleThreshold && float64(i-last) > minGap {
			corners = append(corners, i)
			last = i
		}
	}
	return append(corners, n-1)
}

// DistanceToSegment returns the distance from p to the closest point on the
// segment ab.
func DistanceToSegment(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return Distance(p, a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}
