package state

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/geom"
)

func fp(v float64) *float64 { return &v }

func sp(v string) *string { return &v }

func bp(v bool) *bool { return &v }

func pp(p geom.Point) *geom.Point { return &p }

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestElementBoundsNormalisesNegativeSize(t *testing.T) {
	el := Element{Type: TypeRectangle, X: 100, Y: 100, Width: -40, Height: -30}

	b := el.Bounds()
	assert.Equal(t, 60.0, b.MinX)
	assert.Equal(t, 70.0, b.MinY)
	assert.Equal(t, 40.0, b.Width)
	assert.Equal(t, 30.0, b.Height)

	// The stored size keeps the drag direction.
	assert.Equal(t, -40.0, el.Width)
	assert.Equal(t, -30.0, el.Height)
}

func TestElementBoundsLineFromEndpoints(t *testing.T) {
	el := Element{Type: TypeLine, Start: geom.Pt(50, 10), End: geom.Pt(10, 40)}

	b := el.Bounds()
	assert.Equal(t, 10.0, b.MinX)
	assert.Equal(t, 10.0, b.MinY)
	assert.Equal(t, 50.0, b.MaxX)
	assert.Equal(t, 40.0, b.MaxY)
}

func TestElementBoundsFreehandFromPoints(t *testing.T) {
	el := Element{Type: TypeFreehand, Points: []geom.Point{geom.Pt(5, 2), geom.Pt(-3, 8)}}

	b := el.Bounds()
	assert.Equal(t, -3.0, b.MinX)
	assert.Equal(t, 2.0, b.MinY)
	assert.Equal(t, 8.0, b.Width)
	assert.Equal(t, 6.0, b.Height)
}

func TestElementCloneIsDeep(t *testing.T) {
	el := Element{Type: TypeFreehand, Points: []geom.Point{geom.Pt(1, 1)}}

	c := el.Clone()
	c.Points[0].X = 99

	assert.Equal(t, 1.0, el.Points[0].X)
}

func TestWithPatchDerivesLineBox(t *testing.T) {
	el := Element{Type: TypeLine, Start: geom.Pt(0, 0), End: geom.Pt(0, 0)}

	el = el.withPatch(ElementPatch{End: pp(geom.Pt(-30, 40))}, testTime)

	assert.Equal(t, -30.0, el.X)
	assert.Equal(t, 0.0, el.Y)
	assert.Equal(t, 30.0, el.Width)
	assert.Equal(t, 40.0, el.Height)
	assert.Equal(t, testTime, el.UpdatedAt)
}

func TestWithPatchAddPointTracksBounds(t *testing.T) {
	el := Element{Type: TypeFreehand, Points: []geom.Point{geom.Pt(10, 10)}}

	el = el.withPatch(ElementPatch{AddPoint: pp(geom.Pt(30, -5))}, testTime)

	require.Len(t, el.Points, 2)
	assert.Equal(t, 10.0, el.X)
	assert.Equal(t, -5.0, el.Y)
	assert.Equal(t, 20.0, el.Width)
	assert.Equal(t, 15.0, el.Height)
}

func TestWithPatchPartial(t *testing.T) {
	el := Element{Type: TypeRectangle, X: 1, Y: 2, StrokeColor: "#1e1e1e", Opacity: 1}

	el = el.withPatch(ElementPatch{StrokeColor: sp("#ff0000"), Opacity: fp(0.5)}, testTime)

	assert.Equal(t, "#ff0000", el.StrokeColor)
	assert.Equal(t, 0.5, el.Opacity)
	assert.Equal(t, 1.0, el.X)
	assert.Equal(t, 2.0, el.Y)
}

func TestCameraMapsBothWays(t *testing.T) {
	cam := Camera{X: 40, Y: -20, Zoom: 2}

	s := cam.ScreenPoint(geom.Pt(10, 5))
	assert.Equal(t, 60.0, s.X)
	assert.Equal(t, -10.0, s.Y)

	back := cam.CanvasPoint(s)
	assert.InDelta(t, 10, back.X, 1e-12)
	assert.InDelta(t, 5, back.Y, 1e-12)
}

func TestClampZoom(t *testing.T) {
	assert.Equal(t, MinZoom, ClampZoom(0.01))
	assert.Equal(t, MaxZoom, ClampZoom(12))
	assert.Equal(t, 1.0, ClampZoom(1))
}

func TestParseColor(t *testing.T) {
	c, ok := ParseColor("#1e1e1e")
	require.True(t, ok)
	assert.Equal(t, color.RGBA{R: 30, G: 30, B: 30, A: 255}, c)

	c, ok = ParseColor("#F00")
	require.True(t, ok)
	assert.Equal(t, color.RGBA{R: 255, G: 0, B: 0, A: 255}, c)

	_, ok = ParseColor("red")
	assert.True(t, ok)

	_, ok = ParseColor(Transparent)
	assert.False(t, ok)
	_, ok = ParseColor("")
	assert.False(t, ok)
	_, ok = ParseColor("#12")
	assert.False(t, ok)
	_, ok = ParseColor("not-a-colour")
	assert.False(t, ok)
}

func TestStarVertices(t *testing.T) {
	el := Element{Type: TypeStar, Width: 100, Height: 100, PointCount: 5, InnerRadiusRatio: 0.5}

	pts := StarVertices(el)
	require.Len(t, pts, 10)
	// First vertex points straight up from the centre.
	assert.InDelta(t, 50, pts[0].X, 1e-9)
	assert.InDelta(t, 0, pts[0].Y, 1e-9)
}

func TestTriangleVerticesFallback(t *testing.T) {
	el := Element{Type: TypeTriangle, X: 0, Y: 0, Width: 100, Height: 100}

	pts := TriangleVertices(el)
	require.Len(t, pts, 3)
	assert.Equal(t, 50.0, pts[0].X)
	assert.Equal(t, 0.0, pts[0].Y)

	el.Points = []geom.Point{geom.Pt(1, 2), geom.Pt(3, 4), geom.Pt(5, 6)}
	assert.Equal(t, el.Points, TriangleVertices(el))
}

func TestArrowHead(t *testing.T) {
	b1, b2 := ArrowHead(geom.Pt(0, 0), geom.Pt(100, 0), 12)

	assert.InDelta(t, 88, b1.X, 1e-9)
	assert.InDelta(t, 88, b2.X, 1e-9)
	assert.InDelta(t, 6, b1.Y, 1e-9)
	assert.InDelta(t, -6, b2.Y, 1e-9)

	// Degenerate shaft collapses onto the endpoint.
	b1, b2 = ArrowHead(geom.Pt(5, 5), geom.Pt(5, 5), 12)
	assert.Equal(t, geom.Pt(5, 5), b1)
	assert.Equal(t, geom.Pt(5, 5), b2)
}
