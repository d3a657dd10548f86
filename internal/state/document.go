package state

import "time"

// Commands are the only way document state changes. reduce applies one to a
// state value and returns the next state without mutating its input; Store is
// the imperative wrapper that serialises commands and records history.
type command any

type setTool struct{ Tool Tool }

type setCamera struct{ Camera Camera }

type setStrokeColor struct{ Color string }

type setFillColor struct{ Color string }

type setStrokeWidth struct{ Width float64 }

// startDrawing replaces any in-progress element silently.
type startDrawing struct{ Element Element }

type updateDrawing struct{ Patch ElementPatch }

type cancelDrawing struct{}

type finishDrawing struct{}

// replaceCurrent commits el instead of the in-progress element, discarding
// the raw stroke. Used when recognition promotes a stroke to a primitive.
type replaceCurrent struct{ Element Element }

type addElement struct{ Element Element }

type updateElement struct {
	ID    string
	Patch ElementPatch
}

type deleteElements struct{ IDs []string }

type selectElements struct{ IDs []string }

type clearSelection struct{}

type moveElements struct {
	IDs    []string
	DX, DY float64
}

type restyleElements struct {
	IDs   []string
	Patch ElementPatch
}

// restoreElements swaps in a history snapshot. Selection, camera and tool are
// deliberately left alone.
type restoreElements struct{ Elements []Element }

func reduce(d DocumentState, c command, now time.Time) DocumentState {
	switch c := c.(type) {
	case setTool:
		d.ActiveTool = c.Tool
		d.SelectedIDs = map[string]bool{}

	case setCamera:
		d.Camera = c.Camera

	case setStrokeColor:
		d.StrokeColor = c.Color

	case setFillColor:
		d.FillColor = c.Color

	case setStrokeWidth:
		d.StrokeWidth = c.Width

	case startDrawing:
		el := c.Element.Clone()
		d.Drawing = &el

	case updateDrawing:
		if d.Drawing == nil {
			return d
		}
		el := d.Drawing.withPatch(c.Patch, now)
		d.Drawing = &el

	case cancelDrawing:
		d.Drawing = nil

	case finishDrawing:
		if d.Drawing == nil {
			return d
		}
		el := d.Drawing.Clone()
		el.UpdatedAt = now
		d.Elements = append(cloneElements(d.Elements), el)
		d.Drawing = nil

	case replaceCurrent:
		if d.Drawing == nil {
			return d
		}
		d.Elements = append(cloneElements(d.Elements), c.Element.Clone())
		d.Drawing = nil

	case addElement:
		d.Elements = append(cloneElements(d.Elements), c.Element.Clone())

	case updateElement:
		els := cloneElements(d.Elements)
		for i := range els {
			if els[i].ID == c.ID {
				els[i] = els[i].withPatch(c.Patch, now)
				break
			}
		}
		d.Elements = els

	case deleteElements:
		drop := idSet(c.IDs)
		els := make([]Element, 0, len(d.Elements))
		for _, el := range d.Elements {
			if !drop[el.ID] {
				els = append(els, el.Clone())
			}
		}
		sel := map[string]bool{}
		for id := range d.SelectedIDs {
			if !drop[id] {
				sel[id] = true
			}
		}
		d.Elements, d.SelectedIDs = els, sel

	case selectElements:
		d.SelectedIDs = idSet(c.IDs)

	case clearSelection:
		d.SelectedIDs = map[string]bool{}

	case moveElements:
		move := idSet(c.IDs)
		els := cloneElements(d.Elements)
		for i := range els {
			if move[els[i].ID] && !els[i].Locked {
				els[i] = els[i].translated(c.DX, c.DY, now)
			}
		}
		d.Elements = els

	case restyleElements:
		touch := idSet(c.IDs)
		els := cloneElements(d.Elements)
		for i := range els {
			if touch[els[i].ID] && !els[i].Locked {
				els[i] = els[i].withPatch(c.Patch, now)
			}
		}
		d.Elements = els

	case restoreElements:
		d.Elements = cloneElements(c.Elements)
	}
	return d
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
