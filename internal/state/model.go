package state

import (
	"math"
	"time"

	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/geom"
)

// Tool is the active pointer mode. Tools are mutually exclusive.
type Tool string

const (
	ToolSelect    Tool = "select"
	ToolPan       Tool = "pan"
	ToolFreehand  Tool = "freehand"
	ToolEraser    Tool = "eraser"
	ToolLine      Tool = "line"
	ToolArrow     Tool = "arrow"
	ToolRectangle Tool = "rectangle"
	ToolEllipse   Tool = "ellipse"
	ToolDiamond   Tool = "diamond"
	ToolTriangle  Tool = "triangle"
	ToolStar      Tool = "star"
	ToolText      Tool = "text"
)

// ElementType discriminates the element union. Every consumer switches on it.
type ElementType string

const (
	TypeFreehand  ElementType = "freehand"
	TypeRectangle ElementType = "rectangle"
	TypeEllipse   ElementType = "ellipse"
	TypeLine      ElementType = "line"
	TypeArrow     ElementType = "arrow"
	TypeDiamond   ElementType = "diamond"
	TypeTriangle  ElementType = "triangle"
	TypeStar      ElementType = "star"
	TypeText      ElementType = "text"
)

// Transparent is the fill sentinel meaning "no fill".
const Transparent = "transparent"

const (
	MinZoom = 0.3
	MaxZoom = 3.0

	DefaultStrokeColor = "#1e1e1e"
	DefaultFillColor   = Transparent
	DefaultStrokeWidth = 2.0
	DefaultOpacity     = 1.0
	DefaultFontSize    = 18.0
	DefaultFontFamily  = "sans-serif"
	DefaultArrowHead   = 12.0
	DefaultStarRatio   = 0.5
	DefaultStarPoints  = 5
)

// ClampZoom keeps a zoom factor inside the supported range. SetCamera does
// not clamp; interactive callers run their zoom through this first.
func ClampZoom(z float64) float64 {
	return math.Min(MaxZoom, math.Max(MinZoom, z))
}

// Element is every drawable thing on the board: one struct discriminated by
// Type rather than an interface, so the store, the exporters and the renderer
// can switch exhaustively. Width and Height keep the sign of the drag that
// created them; Bounds normalises on query.
type Element struct {
	ID          string      `json:"id"`
	Type        ElementType `json:"type"`
	X           float64     `json:"x"`
	Y           float64     `json:"y"`
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	Rotation    float64     `json:"rotation"`
	StrokeColor string      `json:"strokeColor"`
	FillColor   string      `json:"fillColor"`
	StrokeWidth float64     `json:"strokeWidth"`
	Opacity     float64     `json:"opacity"`
	Locked      bool        `json:"locked"`

	// Points carries the sampled stroke for freehand elements and the three
	// vertices of a recognised triangle. Coordinates are absolute.
	Points []geom.Point `json:"points,omitempty"`

	// Start and End are authoritative for line and arrow elements; the box
	// fields are derived from them.
	Start geom.Point `json:"start"`
	End   geom.Point `json:"end"`

	ArrowHeadSize    float64 `json:"arrowHeadSize,omitempty"`
	CornerRadius     float64 `json:"cornerRadius,omitempty"`
	InnerRadiusRatio float64 `json:"innerRadiusRatio,omitempty"`
	PointCount       int     `json:"pointCount,omitempty"`

	Text       string  `json:"text,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty"`
	FontFamily string  `json:"fontFamily,omitempty"`
	TextAlign  string  `json:"textAlign,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Bounds returns the normalised axis-aligned box of the element. Lines and
// arrows derive it from their endpoints, point-carrying elements from their
// points, everything else from the (possibly negative) box fields.
func (e Element) Bounds() geom.Box {
	switch {
	case e.Type == TypeLine || e.Type == TypeArrow:
		return geom.BoundingBox([]geom.Point{e.Start, e.End})
	case len(e.Points) > 0:
		return geom.BoundingBox(e.Points)
	}
	x, y, w, h := e.X, e.Y, e.Width, e.Height
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	return geom.Box{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h, Width: w, Height: h}
}

// Clone returns a copy that shares no mutable state with the receiver.
func (e Element) Clone() Element {
	c := e
	if e.Points != nil {
		c.Points = append([]geom.Point(nil), e.Points...)
	}
	return c
}

func cloneElements(els []Element) []Element {
	out := make([]Element, len(els))
	for i, el := range els {
		out[i] = el.Clone()
	}
	return out
}

// translated returns the element shifted by (dx, dy), points and endpoints
// included.
func (e Element) translated(dx, dy float64, now time.Time) Element {
	c := e.Clone()
	c.X += dx
	c.Y += dy
	for i := range c.Points {
		c.Points[i].X += dx
		c.Points[i].Y += dy
	}
	c.Start.X += dx
	c.Start.Y += dy
	c.End.X += dx
	c.End.Y += dy
	c.UpdatedAt = now
	return c
}

// ElementPatch is a partial element update. Nil fields stay untouched.
type ElementPatch struct {
	X           *float64
	Y           *float64
	Width       *float64
	Height      *float64
	Rotation    *float64
	StrokeColor *string
	FillColor   *string
	StrokeWidth *float64
	Opacity     *float64
	Locked      *bool

	Start *geom.Point
	End   *geom.Point

	// Points replaces the whole point list when non-nil; AddPoint appends a
	// single sample.
	Points   []geom.Point
	AddPoint *geom.Point

	Text *string
}

// withPatch applies a patch to a copy of the element, keeping the derived box
// fields of lines and point-carrying elements in sync.
func (e Element) withPatch(p ElementPatch, now time.Time) Element {
	c := e.Clone()
	if p.X != nil {
		c.X = *p.X
	}
	if p.Y != nil {
		c.Y = *p.Y
	}
	if p.Width != nil {
		c.Width = *p.Width
	}
	if p.Height != nil {
		c.Height = *p.Height
	}
	if p.Rotation != nil {
		c.Rotation = *p.Rotation
	}
	if p.StrokeColor != nil {
		c.StrokeColor = *p.StrokeColor
	}
	if p.FillColor != nil {
		c.FillColor = *p.FillColor
	}
	if p.StrokeWidth != nil {
		c.StrokeWidth = *p.StrokeWidth
	}
	if p.Opacity != nil {
		c.Opacity = *p.Opacity
	}
	if p.Locked != nil {
		c.Locked = *p.Locked
	}
	if p.Start != nil {
		c.Start = *p.Start
	}
	if p.End != nil {
		c.End = *p.End
	}
	if p.Points != nil {
		c.Points = append([]geom.Point(nil), p.Points...)
	}
	if p.AddPoint != nil {
		c.Points = append(c.Points, *p.AddPoint)
	}
	if p.Text != nil {
		c.Text = *p.Text
	}
	if (p.Start != nil || p.End != nil) && (c.Type == TypeLine || c.Type == TypeArrow) {
		c.X = math.Min(c.Start.X, c.End.X)
		c.Y = math.Min(c.Start.Y, c.End.Y)
		c.Width = math.Abs(c.End.X - c.Start.X)
		c.Height = math.Abs(c.End.Y - c.Start.Y)
	}
	if (p.Points != nil || p.AddPoint != nil) && len(c.Points) > 0 {
		b := geom.BoundingBox(c.Points)
		c.X, c.Y, c.Width, c.Height = b.MinX, b.MinY, b.Width, b.Height
	}
	c.UpdatedAt = now
	return c
}

// Camera maps canvas space to screen space: screen = canvas*Zoom + (X, Y).
type Camera struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

func (c Camera) ScreenPoint(p geom.Point) geom.Point {
	return geom.Point{X: p.X*c.Zoom + c.X, Y: p.Y*c.Zoom + c.Y, Pressure: p.Pressure}
}

func (c Camera) CanvasPoint(p geom.Point) geom.Point {
	return geom.Point{X: (p.X - c.X) / c.Zoom, Y: (p.Y - c.Y) / c.Zoom, Pressure: p.Pressure}
}

// DocumentState is the whole mutable document. Values are treated as
// immutable: the reducer copies whatever it changes.
type DocumentState struct {
	Elements    []Element
	SelectedIDs map[string]bool
	Camera      Camera
	ActiveTool  Tool
	StrokeColor string
	FillColor   string
	StrokeWidth float64

	// Drawing is the in-progress element, not yet part of Elements.
	Drawing *Element
}

func NewDocumentState() DocumentState {
	return DocumentState{
		SelectedIDs: map[string]bool{},
		Camera:      Camera{Zoom: 1},
		ActiveTool:  ToolFreehand,
		StrokeColor: DefaultStrokeColor,
		FillColor:   DefaultFillColor,
		StrokeWidth: DefaultStrokeWidth,
	}
}

func (d DocumentState) hasElement(id string) bool {
	for _, el := range d.Elements {
		if el.ID == id {
			return true
		}
	}
	return false
}

// Snapshot is the read-only view handed to collaborators: the share feed, the
// exporters and anything else that must not touch live state.
type Snapshot struct {
	Elements   []Element `json:"elements"`
	Camera     Camera    `json:"camera"`
	CapturedAt time.Time `json:"capturedAt"`
}
