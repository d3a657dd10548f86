package export

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/geom"
	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/state"
)

func sampleSnapshot() state.Snapshot {
	return state.Snapshot{
		Elements: []state.Element{
			{ID: "r1", Type: state.TypeRectangle, X: 0, Y: 0, Width: 200, Height: 120,
				StrokeColor: "#1e1e1e", FillColor: "#e03131", StrokeWidth: 2, Opacity: 1},
			{ID: "e1", Type: state.TypeEllipse, X: 220, Y: 0, Width: 80, Height: 60,
				StrokeColor: "blue", FillColor: state.Transparent, StrokeWidth: 2, Opacity: 1},
			{ID: "d1", Type: state.TypeDiamond, X: 220, Y: 70, Width: 60, Height: 60,
				StrokeColor: "green", StrokeWidth: 2, Opacity: 1},
			{ID: "s1", Type: state.TypeStar, X: 220, Y: 140, Width: 80, Height: 80,
				StrokeColor: "purple", InnerRadiusRatio: 0.5, PointCount: 5, StrokeWidth: 2, Opacity: 1},
			{ID: "l1", Type: state.TypeLine, Start: geom.Pt(0, 150), End: geom.Pt(200, 150),
				StrokeColor: "#1e1e1e", StrokeWidth: 3, Opacity: 1},
			{ID: "a1", Type: state.TypeArrow, Start: geom.Pt(0, 170), End: geom.Pt(120, 230),
				ArrowHeadSize: 12, StrokeColor: "orange", StrokeWidth: 2, Opacity: 0.8},
			{ID: "f1", Type: state.TypeFreehand, StrokeColor: "#1e1e1e", StrokeWidth: 2, Opacity: 1,
				Points: []geom.Point{geom.Pt(10, 250), geom.Pt(60, 270), geom.Pt(120, 255), geom.Pt(180, 275)}},
			{ID: "t1", Type: state.TypeText, X: 20, Y: 290, Width: 80, Height: 24,
				Text: "board notes", FontSize: 18, StrokeColor: "#1e1e1e", Opacity: 1},
		},
		Camera: state.Camera{Zoom: 1},
	}
}

func TestPDFWritesDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, sampleSnapshot()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 500)
}

func TestPDFEmptySnapshot(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, state.Snapshot{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestPNGRendersFilledRectangle(t *testing.T) {
	snap := state.Snapshot{Elements: []state.Element{{
		ID: "r1", Type: state.TypeRectangle, Width: 100, Height: 100,
		StrokeColor: "#1e1e1e", FillColor: "#e03131", StrokeWidth: 2, Opacity: 1,
	}}}
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, snap, 400, 300))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())

	// The fill lands in the middle of the viewport, the margin stays white.
	r, g, b, _ := img.At(200, 150).RGBA()
	assert.Greater(t, r>>8, uint32(150))
	assert.Less(t, g>>8, uint32(120))
	assert.Less(t, b>>8, uint32(120))

	r, g, b, _ = img.At(5, 5).RGBA()
	assert.Equal(t, uint32(255), r>>8)
	assert.Equal(t, uint32(255), g>>8)
	assert.Equal(t, uint32(255), b>>8)
}

func TestPNGRendersEverySupportedType(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, sampleSnapshot(), 640, 480))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 480, img.Bounds().Dy())
}

func TestPNGRejectsBadSize(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, PNG(&buf, state.Snapshot{}, 0, 300))
	assert.Error(t, PNG(&buf, state.Snapshot{}, 400, -1))
}

func TestFitCentresAndScales(t *testing.T) {
	b := geom.BoundingBox([]geom.Point{geom.Pt(0, 0), geom.Pt(100, 50)})
	tr := fit(b, 297, 210, 10)
	assert.InDelta(t, 2.77, tr.scale, 1e-9)
	assert.InDelta(t, 10, tr.x(0), 1e-9)
	assert.InDelta(t, 287, tr.x(100), 1e-9)
	assert.InDelta(t, 35.75, tr.y(0), 1e-9)
	assert.InDelta(t, 174.25, tr.y(50), 1e-9)
}

func TestFitSinglePointCentres(t *testing.T) {
	b := geom.BoundingBox([]geom.Point{geom.Pt(40, 40)})
	tr := fit(b, 297, 210, 10)
	assert.InDelta(t, 1.0, tr.scale, 1e-9)
	assert.InDelta(t, 148.5, tr.x(40), 1e-9)
	assert.InDelta(t, 105, tr.y(40), 1e-9)
}

func TestContentBoundsUnion(t *testing.T) {
	els := []state.Element{
		{Type: state.TypeRectangle, X: 10, Y: 20, Width: 30, Height: 30},
		{Type: state.TypeLine, Start: geom.Pt(-5, 100), End: geom.Pt(60, 40)},
	}
	b := contentBounds(els)
	assert.Equal(t, -5.0, b.MinX)
	assert.Equal(t, 20.0, b.MinY)
	assert.Equal(t, 60.0, b.MaxX)
	assert.Equal(t, 100.0, b.MaxY)
	assert.Equal(t, 65.0, b.Width)
	assert.Equal(t, 80.0, b.Height)
}
