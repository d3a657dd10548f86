package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/config"
	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/export"
	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/geom"
	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/share"
	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/state"
)

// RunApp builds the main window around the store and runs the Fyne event
// loop until the window closes. srv may be nil when sharing is disabled.
func RunApp(cfg *config.Config, store *state.Store, srv *share.Server, log *zap.Logger) {
	a := app.New()
	win := a.NewWindow("Infinite Canvas Studio")
	win.Resize(fyne.NewSize(float32(cfg.WindowWidth), float32(cfg.WindowHeight)))

	board := NewBoardWidget(store)
	toolbar, syncToolbar := NewToolbar(store, board)

	board.OnTextRequested = func(p geom.Point) {
		entry := widget.NewEntry()
		items := []*widget.FormItem{widget.NewFormItem("Text", entry)}
		dialog.ShowForm("Add text", "Add", "Cancel", items, func(ok bool) {
			if !ok || entry.Text == "" {
				return
			}
			el := store.NewElement(state.TypeText, p.X, p.Y)
			el.Text = entry.Text
			store.AddElement(el)
			board.Refresh()
		}, win)
	}

	store.OnChange = func() { fyne.Do(syncToolbar) }
	store.OnElementsChanged = func() {
		if srv != nil {
			srv.Publish()
		}
	}

	status := widget.NewLabel("Sharing off")
	if srv != nil {
		status.SetText("Sharing at " + share.URL(cfg.ShareAddr))
	}

	exportPDF := widget.NewButton("Export PDF", func() {
		d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
			if err != nil || wc == nil {
				return
			}
			defer wc.Close()
			if exportErr := export.PDF(wc, store.Snapshot()); exportErr != nil {
				dialog.ShowError(exportErr, win)
				return
			}
			log.Info("board exported", zap.String("file", wc.URI().String()))
		}, win)
		d.SetFileName("board.pdf")
		d.Show()
	})
	exportPNG := widget.NewButton("Export PNG", func() {
		d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
			if err != nil || wc == nil {
				return
			}
			defer wc.Close()
			if exportErr := export.PNG(wc, store.Snapshot(), 1920, 1200); exportErr != nil {
				dialog.ShowError(exportErr, win)
				return
			}
			log.Info("board exported", zap.String("file", wc.URI().String()))
		}, win)
		d.SetFileName("board.png")
		d.Show()
	})

	win.Canvas().AddShortcut(
		&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierControl},
		func(fyne.Shortcut) {
			store.Undo()
			board.Refresh()
		})
	win.Canvas().AddShortcut(
		&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierControl},
		func(fyne.Shortcut) {
			store.Redo()
			board.Refresh()
		})
	win.Canvas().SetOnTypedKey(func(e *fyne.KeyEvent) {
		switch e.Name {
		case fyne.KeyDelete, fyne.KeyBackspace:
			store.DeleteElements(store.SelectedIDs()...)
			board.Refresh()
		case fyne.KeyEscape:
			store.CancelDrawing()
			store.ClearSelection()
			board.Refresh()
		}
	})

	bottom := container.NewHBox(status, layout.NewSpacer(), exportPDF, exportPNG)
	win.SetContent(container.NewBorder(toolbar, bottom, nil, nil, board))
	win.ShowAndRun()
}
