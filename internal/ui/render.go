package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/geom"
	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/state"
)

var (
	defaultInk   = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
	selectionInk = color.NRGBA{R: 66, G: 133, B: 244, A: 255}
)

// elementObjects maps one element to fyne canvas primitives in screen space.
func elementObjects(el state.Element, cam state.Camera) []fyne.CanvasObject {
	stroke := strokeColor(el)
	width := float32(el.StrokeWidth * cam.Zoom)
	if width < 1 {
		width = 1
	}
	box := el.Bounds()

	switch el.Type {
	case state.TypeFreehand:
		return polylineObjects(el.Points, false, stroke, width, cam)
	case state.TypeLine:
		return []fyne.CanvasObject{segment(el.Start, el.End, stroke, width, cam)}
	case state.TypeArrow:
		size := el.ArrowHeadSize
		if size <= 0 {
			size = state.DefaultArrowHead
		}
		b1, b2 := state.ArrowHead(el.Start, el.End, size)
		return []fyne.CanvasObject{
			segment(el.Start, el.End, stroke, width, cam),
			segment(b1, el.End, stroke, width, cam),
			segment(b2, el.End, stroke, width, cam),
		}
	case state.TypeRectangle:
		rect := canvas.NewRectangle(fillColor(el))
		rect.StrokeColor = stroke
		rect.StrokeWidth = width
		rect.CornerRadius = float32(el.CornerRadius * cam.Zoom)
		tl := cam.ScreenPoint(geom.Pt(box.MinX, box.MinY))
		rect.Move(fyne.NewPos(float32(tl.X), float32(tl.Y)))
		rect.Resize(fyne.NewSize(float32(box.Width*cam.Zoom), float32(box.Height*cam.Zoom)))
		return []fyne.CanvasObject{rect}
	case state.TypeEllipse:
		circle := canvas.NewCircle(fillColor(el))
		circle.StrokeColor = stroke
		circle.StrokeWidth = width
		tl := cam.ScreenPoint(geom.Pt(box.MinX, box.MinY))
		br := cam.ScreenPoint(geom.Pt(box.MaxX, box.MaxY))
		circle.Position1 = fyne.NewPos(float32(tl.X), float32(tl.Y))
		circle.Position2 = fyne.NewPos(float32(br.X), float32(br.Y))
		return []fyne.CanvasObject{circle}
	case state.TypeDiamond:
		return polylineObjects(state.DiamondVertices(box), true, stroke, width, cam)
	case state.TypeTriangle:
		return polylineObjects(state.TriangleVertices(el), true, stroke, width, cam)
	case state.TypeStar:
		return polylineObjects(state.StarVertices(el), true, stroke, width, cam)
	case state.TypeText:
		txt := canvas.NewText(el.Text, stroke)
		size := el.FontSize
		if size <= 0 {
			size = state.DefaultFontSize
		}
		txt.TextSize = float32(size * cam.Zoom)
		tl := cam.ScreenPoint(geom.Pt(el.X, el.Y))
		txt.Move(fyne.NewPos(float32(tl.X), float32(tl.Y)))
		return []fyne.CanvasObject{txt}
	}
	return nil
}

func polylineObjects(pts []geom.Point, closed bool, col color.Color, width float32, cam state.Camera) []fyne.CanvasObject {
	if len(pts) == 0 {
		return nil
	}
	out := make([]fyne.CanvasObject, 0, len(pts))
	for i := 1; i < len(pts); i++ {
		out = append(out, segment(pts[i-1], pts[i], col, width, cam))
	}
	if closed && len(pts) > 2 {
		out = append(out, segment(pts[len(pts)-1], pts[0], col, width, cam))
	}
	return out
}

func segment(a, b geom.Point, col color.Color, width float32, cam state.Camera) fyne.CanvasObject {
	line := canvas.NewLine(col)
	line.StrokeWidth = width
	sa, sb := cam.ScreenPoint(a), cam.ScreenPoint(b)
	line.Position1 = fyne.NewPos(float32(sa.X), float32(sa.Y))
	line.Position2 = fyne.NewPos(float32(sb.X), float32(sb.Y))
	return line
}

func selectionBox(el state.Element, cam state.Camera) fyne.CanvasObject {
	box := el.Bounds()
	pad := 4.0 / cam.Zoom
	rect := canvas.NewRectangle(color.Transparent)
	rect.StrokeColor = selectionInk
	rect.StrokeWidth = 1.5
	tl := cam.ScreenPoint(geom.Pt(box.MinX-pad, box.MinY-pad))
	rect.Move(fyne.NewPos(float32(tl.X), float32(tl.Y)))
	rect.Resize(fyne.NewSize(float32((box.Width+2*pad)*cam.Zoom), float32((box.Height+2*pad)*cam.Zoom)))
	return rect
}

func strokeColor(el state.Element) color.Color {
	c, ok := state.ParseColor(el.StrokeColor)
	if !ok {
		return applyOpacity(defaultInk, el.Opacity)
	}
	return applyOpacity(c, el.Opacity)
}

func fillColor(el state.Element) color.Color {
	c, ok := state.ParseColor(el.FillColor)
	if !ok {
		return color.Transparent
	}
	return applyOpacity(c, el.Opacity)
}

func applyOpacity(c color.Color, opacity float64) color.Color {
	if opacity <= 0 || opacity >= 1 {
		return c
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float64(n.A)*opacity + 0.5)
	return n
}
