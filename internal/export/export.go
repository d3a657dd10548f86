// Package export renders board snapshots to portable formats. Exporters are
// pure functions of a snapshot and never touch live state.
package export

import (
	"math"

	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/geom"
	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/state"
)

// contentBounds is the union of all element bounds; the zero box when there
// are no elements.
func contentBounds(els []state.Element) geom.Box {
	if len(els) == 0 {
		return geom.Box{}
	}
	b := els[0].Bounds()
	minX, minY, maxX, maxY := b.MinX, b.MinY, b.MaxX, b.MaxY
	for _, el := range els[1:] {
		eb := el.Bounds()
		minX = math.Min(minX, eb.MinX)
		minY = math.Min(minY, eb.MinY)
		maxX = math.Max(maxX, eb.MaxX)
		maxY = math.Max(maxY, eb.MaxY)
	}
	return geom.Box{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY,
		Width: maxX - minX, Height: maxY - minY}
}

// fitTransform maps canvas coordinates into a target viewport, preserving
// aspect ratio and centring the content inside the margin.
type fitTransform struct {
	scale  float64
	ox, oy float64
}

func fit(b geom.Box, targetW, targetH, margin float64) fitTransform {
	innerW, innerH := targetW-2*margin, targetH-2*margin
	scale := 1.0
	if b.Width > 0 || b.Height > 0 {
		sx, sy := math.Inf(1), math.Inf(1)
		if b.Width > 0 {
			sx = innerW / b.Width
		}
		if b.Height > 0 {
			sy = innerH / b.Height
		}
		scale = math.Min(sx, sy)
	}
	return fitTransform{
		scale: scale,
		ox:    margin + (innerW-b.Width*scale)/2 - b.MinX*scale,
		oy:    margin + (innerH-b.Height*scale)/2 - b.MinY*scale,
	}
}

func (t fitTransform) x(v float64) float64 { return v*t.scale + t.ox }

func (t fitTransform) y(v float64) float64 { return v*t.scale + t.oy }

func (t fitTransform) pt(p geom.Point) (float64, float64) { return t.x(p.X), t.y(p.Y) }

func (t fitTransform) pt32(p geom.Point) (float32, float32) {
	return float32(t.x(p.X)), float32(t.y(p.Y))
}
