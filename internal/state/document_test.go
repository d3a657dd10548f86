package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/geom"
)

func docWith(els ...Element) DocumentState {
	d := NewDocumentState()
	d.Elements = els
	return d
}

func rectAt(id string, x, y float64) Element {
	return Element{ID: id, Type: TypeRectangle, X: x, Y: y, Width: 10, Height: 10}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	d := docWith(rectAt("a", 0, 0), rectAt("b", 20, 0))
	d.SelectedIDs = map[string]bool{"a": true}
	before := docWith(rectAt("a", 0, 0), rectAt("b", 20, 0))
	before.SelectedIDs = map[string]bool{"a": true}

	reduce(d, deleteElements{IDs: []string{"a"}}, testTime)
	reduce(d, moveElements{IDs: []string{"b"}, DX: 5, DY: 5}, testTime)
	reduce(d, addElement{Element: rectAt("c", 0, 0)}, testTime)
	reduce(d, setTool{Tool: ToolPan}, testTime)

	assert.Equal(t, before, d)
}

func TestSetToolClearsSelection(t *testing.T) {
	d := docWith(rectAt("a", 0, 0))
	d.SelectedIDs = map[string]bool{"a": true}

	d = reduce(d, setTool{Tool: ToolEraser}, testTime)

	assert.Equal(t, ToolEraser, d.ActiveTool)
	assert.Empty(t, d.SelectedIDs)
}

func TestStartDrawingReplacesInProgress(t *testing.T) {
	d := NewDocumentState()

	d = reduce(d, startDrawing{Element: rectAt("first", 0, 0)}, testTime)
	d = reduce(d, startDrawing{Element: rectAt("second", 0, 0)}, testTime)

	require.NotNil(t, d.Drawing)
	assert.Equal(t, "second", d.Drawing.ID)

	d = reduce(d, finishDrawing{}, testTime)
	require.Len(t, d.Elements, 1)
	assert.Equal(t, "second", d.Elements[0].ID)
	assert.Nil(t, d.Drawing)
}

func TestDrawingCommandsNoopWhenIdle(t *testing.T) {
	d := docWith(rectAt("a", 0, 0))

	d = reduce(d, updateDrawing{Patch: ElementPatch{X: fp(99)}}, testTime)
	d = reduce(d, finishDrawing{}, testTime)
	d = reduce(d, replaceCurrent{Element: rectAt("ghost", 0, 0)}, testTime)

	assert.Len(t, d.Elements, 1)
	assert.Nil(t, d.Drawing)
}

func TestCancelDrawingDiscards(t *testing.T) {
	d := NewDocumentState()
	d = reduce(d, startDrawing{Element: rectAt("x", 0, 0)}, testTime)
	d = reduce(d, cancelDrawing{}, testTime)

	assert.Nil(t, d.Drawing)
	assert.Empty(t, d.Elements)
}

func TestDeleteElementsPrunesSelection(t *testing.T) {
	d := docWith(rectAt("a", 0, 0), rectAt("b", 20, 0))
	d.SelectedIDs = map[string]bool{"a": true, "b": true}

	d = reduce(d, deleteElements{IDs: []string{"a", "missing"}}, testTime)

	require.Len(t, d.Elements, 1)
	assert.Equal(t, "b", d.Elements[0].ID)
	assert.Equal(t, map[string]bool{"b": true}, d.SelectedIDs)
}

func TestMoveElementsSkipsLocked(t *testing.T) {
	locked := rectAt("a", 0, 0)
	locked.Locked = true
	d := docWith(locked, rectAt("b", 20, 0))

	d = reduce(d, moveElements{IDs: []string{"a", "b"}, DX: 5, DY: -5}, testTime)

	assert.Equal(t, 0.0, d.Elements[0].X)
	assert.Equal(t, 25.0, d.Elements[1].X)
	assert.Equal(t, -5.0, d.Elements[1].Y)
}

func TestMoveElementsCarriesPointsAndEndpoints(t *testing.T) {
	line := Element{ID: "l", Type: TypeLine, Start: geom.Pt(0, 0), End: geom.Pt(10, 0)}
	stroke := Element{ID: "s", Type: TypeFreehand, Points: []geom.Point{geom.Pt(1, 1), geom.Pt(2, 2)}}
	d := docWith(line, stroke)

	d = reduce(d, moveElements{IDs: []string{"l", "s"}, DX: 3, DY: 4}, testTime)

	assert.Equal(t, 3.0, d.Elements[0].Start.X)
	assert.Equal(t, 13.0, d.Elements[0].End.X)
	assert.Equal(t, 4.0, d.Elements[0].End.Y)
	assert.Equal(t, 4.0, d.Elements[1].Points[0].X)
	assert.Equal(t, 5.0, d.Elements[1].Points[0].Y)
}

func TestRestyleElementsSkipsLocked(t *testing.T) {
	locked := rectAt("a", 0, 0)
	locked.Locked = true
	d := docWith(locked, rectAt("b", 20, 0))

	d = reduce(d, restyleElements{IDs: []string{"a", "b"}, Patch: ElementPatch{StrokeColor: sp("#f00")}}, testTime)

	assert.Empty(t, d.Elements[0].StrokeColor)
	assert.Equal(t, "#f00", d.Elements[1].StrokeColor)
}

func TestRestoreReplacesOnlyElements(t *testing.T) {
	d := docWith(rectAt("a", 0, 0))
	d.SelectedIDs = map[string]bool{"a": true}
	d.Camera = Camera{X: 7, Y: 8, Zoom: 2}
	d.ActiveTool = ToolSelect

	d = reduce(d, restoreElements{Elements: nil}, testTime)

	assert.Empty(t, d.Elements)
	assert.Equal(t, map[string]bool{"a": true}, d.SelectedIDs)
	assert.Equal(t, Camera{X: 7, Y: 8, Zoom: 2}, d.Camera)
	assert.Equal(t, ToolSelect, d.ActiveTool)
}
