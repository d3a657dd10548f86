package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/geom"
	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/state"
)

// A4 landscape, millimetres.
const (
	pdfPageW  = 297.0
	pdfPageH  = 210.0
	pdfMargin = 10.0
)

// PDF writes the snapshot to w as a single A4 landscape page with the board
// content scaled to fit.
func PDF(w io.Writer, snap state.Snapshot) error {
	doc := gofpdf.New("L", "mm", "A4", "")
	doc.AddPage()
	t := fit(contentBounds(snap.Elements), pdfPageW, pdfPageH, pdfMargin)
	for _, el := range snap.Elements {
		pdfElement(doc, t, el)
	}
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func pdfElement(doc *gofpdf.Fpdf, t fitTransform, el state.Element) {
	r, g, b := 30, 30, 30
	if c, ok := state.ParseColor(el.StrokeColor); ok {
		r, g, b = int(c.R), int(c.G), int(c.B)
	}
	doc.SetDrawColor(r, g, b)

	lw := el.StrokeWidth * t.scale
	if lw < 0.2 {
		lw = 0.2
	}
	doc.SetLineWidth(lw)

	style := "D"
	if c, ok := state.ParseColor(el.FillColor); ok {
		doc.SetFillColor(int(c.R), int(c.G), int(c.B))
		style = "FD"
	}
	if el.Opacity > 0 && el.Opacity < 1 {
		doc.SetAlpha(el.Opacity, "Normal")
		defer doc.SetAlpha(1, "Normal")
	}

	box := el.Bounds()
	switch el.Type {
	case state.TypeFreehand:
		for i := 1; i < len(el.Points); i++ {
			x1, y1 := t.pt(el.Points[i-1])
			x2, y2 := t.pt(el.Points[i])
			doc.Line(x1, y1, x2, y2)
		}
	case state.TypeLine:
		x1, y1 := t.pt(el.Start)
		x2, y2 := t.pt(el.End)
		doc.Line(x1, y1, x2, y2)
	case state.TypeArrow:
		x1, y1 := t.pt(el.Start)
		x2, y2 := t.pt(el.End)
		doc.Line(x1, y1, x2, y2)
		b1, b2 := state.ArrowHead(el.Start, el.End, el.ArrowHeadSize)
		bx, by := t.pt(b1)
		doc.Line(bx, by, x2, y2)
		bx, by = t.pt(b2)
		doc.Line(bx, by, x2, y2)
	case state.TypeRectangle:
		doc.Rect(t.x(box.MinX), t.y(box.MinY), box.Width*t.scale, box.Height*t.scale, style)
	case state.TypeEllipse:
		doc.Ellipse(t.x(box.CenterX()), t.y(box.CenterY()),
			box.Width/2*t.scale, box.Height/2*t.scale, 0, style)
	case state.TypeDiamond:
		doc.Polygon(pdfPoints(t, state.DiamondVertices(box)), style)
	case state.TypeTriangle:
		doc.Polygon(pdfPoints(t, state.TriangleVertices(el)), style)
	case state.TypeStar:
		doc.Polygon(pdfPoints(t, state.StarVertices(el)), style)
	case state.TypeText:
		size := el.FontSize
		if size <= 0 {
			size = state.DefaultFontSize
		}
		size *= t.scale
		doc.SetFont("Helvetica", "", 12)
		doc.SetFontUnitSize(size)
		doc.SetTextColor(r, g, b)
		doc.Text(t.x(el.X), t.y(el.Y)+size, el.Text)
	}
}

func pdfPoints(t fitTransform, pts []geom.Point) []gofpdf.PointType {
	out := make([]gofpdf.PointType, len(pts))
	for i, p := range pts {
		x, y := t.pt(p)
		out[i] = gofpdf.PointType{X: x, Y: y}
	}
	return out
}
