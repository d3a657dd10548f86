package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/geom"
	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/state"
)

const (
	zoomStep     = 1.2
	eraserRadius = 12.0
)

// BoardWidget is the drawing surface. Pointer input is translated to canvas
// space and turned into store operations; rendering reads back through the
// store's accessors, so the widget itself holds no document state.
type BoardWidget struct {
	widget.BaseWidget
	store *state.Store

	drawing bool
	moving  bool
	panning bool

	// OnTextRequested fires when the text tool is clicked; the app opens an
	// entry dialog and adds the element.
	OnTextRequested func(p geom.Point)
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ fyne.Scrollable = (*BoardWidget)(nil)

func NewBoardWidget(store *state.Store) *BoardWidget {
	b := &BoardWidget{store: store}
	b.ExtendBaseWidget(b)
	return b
}

func (b *BoardWidget) canvasPoint(pos fyne.Position) geom.Point {
	return b.store.Camera().CanvasPoint(geom.Pt(float64(pos.X), float64(pos.Y)))
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	p := b.canvasPoint(e.Position)

	switch tool := b.store.ActiveTool(); tool {
	case state.ToolPan:
		b.panning = true
	case state.ToolSelect:
		if el, ok := b.store.ElementAt(p); ok {
			b.store.SelectElements(el.ID)
			b.moving = true
		} else {
			b.store.ClearSelection()
		}
	case state.ToolEraser:
		b.drawing = true
		b.store.EraseAt(p, eraserRadius/b.store.Camera().Zoom)
	case state.ToolText:
		if b.OnTextRequested != nil {
			b.OnTextRequested(p)
		}
	default:
		b.drawing = true
		b.store.StartDrawing(b.store.NewElement(elementType(tool), p.X, p.Y))
	}
	b.Refresh()
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	cam := b.store.Camera()
	switch {
	case b.panning:
		cam.X += float64(e.Dragged.DX)
		cam.Y += float64(e.Dragged.DY)
		b.store.SetCamera(cam)
	case b.moving:
		b.store.MoveSelected(float64(e.Dragged.DX)/cam.Zoom, float64(e.Dragged.DY)/cam.Zoom)
	case b.drawing && b.store.ActiveTool() == state.ToolEraser:
		b.store.EraseAt(b.canvasPoint(e.Position), eraserRadius/cam.Zoom)
	case b.drawing:
		b.extendDrawing(b.canvasPoint(e.Position))
	default:
		// A drag that did not start a gesture pans the camera.
		cam.X += float64(e.Dragged.DX)
		cam.Y += float64(e.Dragged.DY)
		b.store.SetCamera(cam)
	}
	b.Refresh()
}

func (b *BoardWidget) extendDrawing(p geom.Point) {
	draw, ok := b.store.Drawing()
	if !ok {
		return
	}
	switch draw.Type {
	case state.TypeFreehand:
		b.store.UpdateDrawing(state.ElementPatch{AddPoint: &p})
	case state.TypeLine, state.TypeArrow:
		b.store.UpdateDrawing(state.ElementPatch{End: &p})
	default:
		// Shapes keep their anchor corner; width and height may go
		// negative while dragging.
		w, h := p.X-draw.X, p.Y-draw.Y
		b.store.UpdateDrawing(state.ElementPatch{Width: &w, Height: &h})
	}
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.finishGesture()
	}
}

func (b *BoardWidget) DragEnd() {
	b.finishGesture()
}

func (b *BoardWidget) finishGesture() {
	switch {
	case b.moving:
		b.moving = false
		b.store.CommitMove()
	case b.drawing:
		b.drawing = false
		if b.store.ActiveTool() == state.ToolFreehand {
			b.store.FinishStroke()
		} else {
			b.store.FinishDrawing()
		}
	}
	b.panning = false
	b.Refresh()
}

// Scrolled zooms about the cursor so the canvas point under it stays fixed.
func (b *BoardWidget) Scrolled(e *fyne.ScrollEvent) {
	cam := b.store.Camera()
	factor := zoomStep
	if e.Scrolled.DY < 0 {
		factor = 1 / zoomStep
	}
	next := state.ClampZoom(cam.Zoom * factor)
	if next == cam.Zoom {
		return
	}
	mx, my := float64(e.Position.X), float64(e.Position.Y)
	cam.X = mx - (mx-cam.X)*next/cam.Zoom
	cam.Y = my - (my-cam.Y)*next/cam.Zoom
	cam.Zoom = next
	b.store.SetCamera(cam)
	b.Refresh()
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}
func (b *BoardWidget) MouseOut()                   {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

func elementType(t state.Tool) state.ElementType {
	switch t {
	case state.ToolLine:
		return state.TypeLine
	case state.ToolArrow:
		return state.TypeArrow
	case state.ToolRectangle:
		return state.TypeRectangle
	case state.ToolEllipse:
		return state.TypeEllipse
	case state.ToolDiamond:
		return state.TypeDiamond
	case state.ToolTriangle:
		return state.TypeTriangle
	case state.ToolStar:
		return state.TypeStar
	case state.ToolText:
		return state.TypeText
	default:
		return state.TypeFreehand
	}
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardRenderer{board: b}
	r.background = canvas.NewRectangle(color.NRGBA{R: 250, G: 250, B: 250, A: 255})
	return r
}

type boardRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
}

// Objects rebuilds the scene from the store: committed elements in z-order,
// then the in-progress element through the same mapping, then selection
// boxes on top.
func (r *boardRenderer) Objects() []fyne.CanvasObject {
	store := r.board.store
	cam := store.Camera()

	objects := []fyne.CanvasObject{r.background}
	for _, el := range store.Elements() {
		objects = append(objects, elementObjects(el, cam)...)
	}
	if draw, ok := store.Drawing(); ok {
		objects = append(objects, elementObjects(draw, cam)...)
	}
	for _, el := range store.SelectedElements() {
		objects = append(objects, selectionBox(el, cam))
	}
	return objects
}

func (r *boardRenderer) Refresh() {
	canvas.Refresh(r.board)
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
}

func (r *boardRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardRenderer) Destroy() {}
