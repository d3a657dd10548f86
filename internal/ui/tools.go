package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/state"
)

// --- Custom Widget for Colour Swatches ---

type colorSwatch struct {
	widget.BaseWidget
	fill     color.Color
	OnTapped func()
}

func newColorSwatch(c color.Color, tapped func()) *colorSwatch {
	s := &colorSwatch{fill: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.fill)
	rect.SetMinSize(fyne.NewSize(24, 24))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped()
	}
}

// --- The Main Toolbar ---

// NewToolbar builds the tool strip: one button per tool, stroke and fill
// swatches, a stroke width slider and undo/redo. The returned sync function
// refreshes button state from the store and should run after every change.
func NewToolbar(store *state.Store, board *BoardWidget) (fyne.CanvasObject, func()) {
	tools := []struct {
		label string
		tool  state.Tool
	}{
		{"Select", state.ToolSelect},
		{"Pan", state.ToolPan},
		{"Pen", state.ToolFreehand},
		{"Line", state.ToolLine},
		{"Arrow", state.ToolArrow},
		{"Rect", state.ToolRectangle},
		{"Ellipse", state.ToolEllipse},
		{"Diamond", state.ToolDiamond},
		{"Triangle", state.ToolTriangle},
		{"Star", state.ToolStar},
		{"Text", state.ToolText},
		{"Eraser", state.ToolEraser},
	}

	buttons := make(map[state.Tool]*widget.Button, len(tools))
	var sync func()

	toolRow := container.NewHBox()
	for _, entry := range tools {
		entry := entry
		btn := widget.NewButton(entry.label, func() {
			store.SetTool(entry.tool)
			sync()
			board.Refresh()
		})
		buttons[entry.tool] = btn
		toolRow.Add(btn)
	}

	// --- Colour Palettes ---
	strokes := []string{"#1e1e1e", "red", "green", "blue", "orange", "purple"}
	strokeRow := container.NewHBox()
	for _, name := range strokes {
		name := name
		c, _ := state.ParseColor(name)
		strokeRow.Add(newColorSwatch(c, func() {
			store.SetStrokeColor(name)
			store.RestyleSelected(state.ElementPatch{StrokeColor: &name})
			board.Refresh()
		}))
	}

	fills := []string{state.Transparent, "#ffffff", "yellow", "red", "blue", "green"}
	fillRow := container.NewHBox()
	for _, name := range fills {
		name := name
		c, ok := state.ParseColor(name)
		if !ok {
			c = color.RGBA{}
		}
		fillRow.Add(newColorSwatch(c, func() {
			store.SetFillColor(name)
			store.RestyleSelected(state.ElementPatch{FillColor: &name})
			board.Refresh()
		}))
	}

	// --- Stroke Width Slider ---
	slider := widget.NewSlider(1, 24)
	slider.SetValue(store.StrokeWidth())
	slider.OnChanged = func(v float64) {
		store.SetStrokeWidth(v)
	}
	slider.OnChangeEnded = func(v float64) {
		store.RestyleSelected(state.ElementPatch{StrokeWidth: &v})
		board.Refresh()
	}
	sliderBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(140, 36)), slider)

	// --- Undo / Redo ---
	undo := widget.NewButtonWithIcon("", theme.ContentUndoIcon(), func() {
		store.Undo()
		sync()
		board.Refresh()
	})
	redo := widget.NewButtonWithIcon("", theme.ContentRedoIcon(), func() {
		store.Redo()
		sync()
		board.Refresh()
	})

	// sync runs on every store change, so it only refreshes widgets whose
	// state actually flipped.
	sync = func() {
		active := store.ActiveTool()
		for tool, btn := range buttons {
			want := widget.MediumImportance
			if tool == active {
				want = widget.HighImportance
			}
			if btn.Importance != want {
				btn.Importance = want
				btn.Refresh()
			}
		}
		if canUndo := store.CanUndo(); canUndo == undo.Disabled() {
			if canUndo {
				undo.Enable()
			} else {
				undo.Disable()
			}
		}
		if canRedo := store.CanRedo(); canRedo == redo.Disabled() {
			if canRedo {
				redo.Enable()
			} else {
				redo.Disable()
			}
		}
	}
	sync()

	styleRow := container.NewHBox(
		widget.NewLabel("Stroke:"),
		strokeRow,
		widget.NewSeparator(),
		widget.NewLabel("Fill:"),
		fillRow,
		widget.NewSeparator(),
		widget.NewLabel("Width:"),
		sliderBox,
		layout.NewSpacer(),
		undo,
		redo,
	)

	return container.NewVBox(toolRow, styleRow), sync
}
