package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/geom"
	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/state"
)

const (
	pngMargin = 24.0
	// Cubic Bezier approximation of a quarter circle.
	kappa = 0.5522847498

	ellipseSegments = 48
)

// PNG rasterises the snapshot into a width by height image and encodes it
// to w. The board content is scaled to fit with a small margin on a white
// background.
func PNG(w io.Writer, snap state.Snapshot, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("png size must be positive, got %dx%d", width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	t := fit(contentBounds(snap.Elements), float64(width), float64(height), pngMargin)
	ras := vector.NewRasterizer(width, height)
	for _, el := range snap.Elements {
		pngElement(img, ras, t, el)
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func pngElement(img *image.RGBA, ras *vector.Rasterizer, t fitTransform, el state.Element) {
	stroke := color.RGBA{R: 30, G: 30, B: 30, A: 255}
	if c, ok := state.ParseColor(el.StrokeColor); ok {
		stroke = c
	}
	fill, hasFill := state.ParseColor(el.FillColor)
	strokeInk := ink(stroke, el.Opacity)
	fillInk := ink(fill, el.Opacity)

	width := el.StrokeWidth
	if width <= 0 {
		width = state.DefaultStrokeWidth
	}

	box := el.Bounds()
	switch el.Type {
	case state.TypeFreehand:
		strokePolyline(img, ras, t, el.Points, width, strokeInk, false)
	case state.TypeLine:
		strokePolyline(img, ras, t, []geom.Point{el.Start, el.End}, width, strokeInk, false)
	case state.TypeArrow:
		strokePolyline(img, ras, t, []geom.Point{el.Start, el.End}, width, strokeInk, false)
		b1, b2 := state.ArrowHead(el.Start, el.End, el.ArrowHeadSize)
		strokePolyline(img, ras, t, []geom.Point{b1, el.End, b2}, width, strokeInk, false)
	case state.TypeRectangle:
		outline := state.RectangleOutline(box)
		if hasFill {
			fillPolygon(img, ras, t, outline, fillInk)
		}
		strokePolyline(img, ras, t, outline, width, strokeInk, true)
	case state.TypeEllipse:
		if hasFill {
			fillEllipse(img, ras, t, box, fillInk)
		}
		strokePolyline(img, ras, t, state.EllipseOutline(box, ellipseSegments), width, strokeInk, true)
	case state.TypeDiamond:
		outline := state.DiamondVertices(box)
		if hasFill {
			fillPolygon(img, ras, t, outline, fillInk)
		}
		strokePolyline(img, ras, t, outline, width, strokeInk, true)
	case state.TypeTriangle:
		outline := state.TriangleVertices(el)
		if hasFill {
			fillPolygon(img, ras, t, outline, fillInk)
		}
		strokePolyline(img, ras, t, outline, width, strokeInk, true)
	case state.TypeStar:
		outline := state.StarVertices(el)
		if hasFill {
			fillPolygon(img, ras, t, outline, fillInk)
		}
		strokePolyline(img, ras, t, outline, width, strokeInk, true)
	case state.TypeText:
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(strokeInk),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(int(t.x(el.X)), int(t.y(el.Y))+basicfont.Face7x13.Ascent),
		}
		d.DrawString(el.Text)
	}
}

// ink applies the element opacity to a parsed colour.
func ink(c color.RGBA, opacity float64) color.Color {
	if opacity <= 0 || opacity >= 1 {
		return c
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(opacity*255 + 0.5)}
}

func fillPolygon(img *image.RGBA, ras *vector.Rasterizer, t fitTransform, pts []geom.Point, col color.Color) {
	if len(pts) < 3 {
		return
	}
	ras.Reset(img.Bounds().Dx(), img.Bounds().Dy())
	x, y := t.pt32(pts[0])
	ras.MoveTo(x, y)
	for _, p := range pts[1:] {
		x, y = t.pt32(p)
		ras.LineTo(x, y)
	}
	ras.ClosePath()
	ras.Draw(img, img.Bounds(), image.NewUniform(col), image.Point{})
}

func fillEllipse(img *image.RGBA, ras *vector.Rasterizer, t fitTransform, b geom.Box, col color.Color) {
	cx, cy := float32(t.x(b.CenterX())), float32(t.y(b.CenterY()))
	rx, ry := float32(b.Width/2*t.scale), float32(b.Height/2*t.scale)
	kx, ky := kappa*rx, kappa*ry
	ras.Reset(img.Bounds().Dx(), img.Bounds().Dy())
	ras.MoveTo(cx, cy-ry)
	ras.CubeTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	ras.CubeTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	ras.CubeTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	ras.CubeTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	ras.ClosePath()
	ras.Draw(img, img.Bounds(), image.NewUniform(col), image.Point{})
}

// strokePolyline paints a polyline as one filled path: a quad per segment
// plus a disc per joint so thick strokes have no notches at turns.
func strokePolyline(img *image.RGBA, ras *vector.Rasterizer, t fitTransform, pts []geom.Point, width float64, col color.Color, closed bool) {
	n := len(pts)
	if n == 0 {
		return
	}
	half := float32(math.Max(width*t.scale, 1)) / 2
	ras.Reset(img.Bounds().Dx(), img.Bounds().Dy())
	if n == 1 {
		x, y := t.pt32(pts[0])
		addDisc(ras, x, y, half)
	} else {
		for i := 0; i+1 < n; i++ {
			addQuad(ras, t, pts[i], pts[i+1], half)
		}
		if closed {
			addQuad(ras, t, pts[n-1], pts[0], half)
		}
		for _, p := range pts {
			x, y := t.pt32(p)
			addDisc(ras, x, y, half)
		}
	}
	ras.Draw(img, img.Bounds(), image.NewUniform(col), image.Point{})
}

// addQuad extrudes the segment a-b by the half stroke width. Vertex order is
// normalised to a positive winding so overlapping segments never cancel.
func addQuad(ras *vector.Rasterizer, t fitTransform, a, b geom.Point, half float32) {
	ax, ay := t.pt32(a)
	bx, by := t.pt32(b)
	dx, dy := bx-ax, by-ay
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	ox, oy := -dy/l*half, dx/l*half
	x1, y1 := ax+ox, ay+oy
	x2, y2 := bx+ox, by+oy
	x3, y3 := bx-ox, by-oy
	x4, y4 := ax-ox, ay-oy
	if (x2-x1)*(y4-y1)-(x4-x1)*(y2-y1) < 0 {
		x2, y2, x4, y4 = x4, y4, x2, y2
	}
	ras.MoveTo(x1, y1)
	ras.LineTo(x2, y2)
	ras.LineTo(x3, y3)
	ras.LineTo(x4, y4)
	ras.ClosePath()
}

func addDisc(ras *vector.Rasterizer, cx, cy, r float32) {
	if r <= 0 {
		return
	}
	kr := kappa * r
	ras.MoveTo(cx, cy-r)
	ras.CubeTo(cx+kr, cy-r, cx+r, cy-kr, cx+r, cy)
	ras.CubeTo(cx+r, cy+kr, cx+kr, cy+r, cx, cy+r)
	ras.CubeTo(cx-kr, cy+r, cx-r, cy+kr, cx-r, cy)
	ras.CubeTo(cx-r, cy-kr, cx-kr, cy-r, cx, cy-r)
	ras.ClosePath()
}
