package state

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/geom"
	"github.com/NayaKunal30/infinite-canvas-studio-10205d00/internal/shape"
)

// Store is the imperative shell around the document reducer. It owns the undo
// history, serialises mutations behind a mutex so share-server goroutines can
// read consistent snapshots while the UI thread writes, and fires change
// callbacks after every applied command.
type Store struct {
	mu      sync.RWMutex
	doc     DocumentState
	history *History
	clock   func() time.Time
	log     *zap.Logger

	// OnChange fires after every applied command; OnElementsChanged only
	// when the element collection changed, which is what the share feed
	// broadcasts on. Both run outside the store lock and must be set
	// before the store is used concurrently.
	OnChange          func()
	OnElementsChanged func()
}

func NewStore(log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		doc:     NewDocumentState(),
		history: NewHistory(),
		clock:   time.Now,
		log:     log,
	}
}

func (s *Store) changed(elements bool) {
	if s.OnChange != nil {
		s.OnChange()
	}
	if elements && s.OnElementsChanged != nil {
		s.OnElementsChanged()
	}
}

// apply runs one command under the lock, checkpointing when asked.
func (s *Store) apply(c command, checkpoint bool) {
	s.mu.Lock()
	now := s.clock()
	s.doc = reduce(s.doc, c, now)
	if checkpoint {
		s.history.Checkpoint(s.doc.Elements, now)
	}
	s.mu.Unlock()
	s.changed(checkpoint)
}

// SetTool switches the active tool and clears the selection.
func (s *Store) SetTool(t Tool) { s.apply(setTool{Tool: t}, false) }

// SetCamera replaces the camera unconditionally. Zoom is not clamped here;
// callers pass it through ClampZoom first.
func (s *Store) SetCamera(c Camera) { s.apply(setCamera{Camera: c}, false) }

func (s *Store) SetStrokeColor(c string) { s.apply(setStrokeColor{Color: c}, false) }

func (s *Store) SetFillColor(c string) { s.apply(setFillColor{Color: c}, false) }

func (s *Store) SetStrokeWidth(w float64) { s.apply(setStrokeWidth{Width: w}, false) }

// StartDrawing makes el the in-progress element. An element already in
// progress is silently replaced.
func (s *Store) StartDrawing(el Element) { s.apply(startDrawing{Element: el}, false) }

// UpdateDrawing merges a patch into the in-progress element. No-op when
// nothing is being drawn.
func (s *Store) UpdateDrawing(p ElementPatch) { s.apply(updateDrawing{Patch: p}, false) }

// CancelDrawing abandons the in-progress element without committing it.
func (s *Store) CancelDrawing() { s.apply(cancelDrawing{}, false) }

// FinishDrawing commits the in-progress element as-is and records a
// checkpoint. No-op when nothing is being drawn.
func (s *Store) FinishDrawing() {
	s.mu.Lock()
	had := s.doc.Drawing != nil
	now := s.clock()
	s.doc = reduce(s.doc, finishDrawing{}, now)
	if had {
		s.history.Checkpoint(s.doc.Elements, now)
	}
	s.mu.Unlock()
	s.changed(had)
}

// ReplaceCurrentWithElement commits el in place of the in-progress element,
// discarding the raw stroke, and records a checkpoint. No-op when nothing is
// being drawn.
func (s *Store) ReplaceCurrentWithElement(el Element) {
	s.mu.Lock()
	had := s.doc.Drawing != nil
	now := s.clock()
	s.doc = reduce(s.doc, replaceCurrent{Element: el}, now)
	if had {
		s.history.Checkpoint(s.doc.Elements, now)
	}
	s.mu.Unlock()
	s.changed(had)
}

// FinishStroke completes a freehand gesture: the stroke is run through the
// recogniser, a hypothesis replaces it with the clean primitive, anything
// else keeps the raw stroke. Other tools commit their element unchanged.
func (s *Store) FinishStroke() {
	s.mu.Lock()
	draw := s.doc.Drawing
	if draw == nil {
		s.mu.Unlock()
		return
	}
	now := s.clock()
	cmd := command(finishDrawing{})
	if draw.Type == TypeFreehand {
		if r := shape.Recognize(draw.Points); r.Kind != shape.None {
			cmd = replaceCurrent{Element: recognizedElement(*draw, r, now)}
			s.log.Debug("stroke recognised",
				zap.String("kind", r.Kind.String()),
				zap.Int("points", len(draw.Points)))
		}
	}
	s.doc = reduce(s.doc, cmd, now)
	s.history.Checkpoint(s.doc.Elements, now)
	s.mu.Unlock()
	s.changed(true)
}

// AddElement appends el outside the draw lifecycle and records a checkpoint.
func (s *Store) AddElement(el Element) { s.apply(addElement{Element: el}, true) }

// UpdateElement patches one committed element and records a checkpoint.
// Unknown ids are ignored.
func (s *Store) UpdateElement(id string, p ElementPatch) {
	s.mu.Lock()
	exists := s.doc.hasElement(id)
	now := s.clock()
	s.doc = reduce(s.doc, updateElement{ID: id, Patch: p}, now)
	if exists {
		s.history.Checkpoint(s.doc.Elements, now)
	}
	s.mu.Unlock()
	s.changed(exists)
}

// DeleteElements removes the given ids, prunes them from the selection and
// records a checkpoint. No-op when none of the ids exist.
func (s *Store) DeleteElements(ids ...string) {
	s.mu.Lock()
	hit := false
	for _, id := range ids {
		if s.doc.hasElement(id) {
			hit = true
			break
		}
	}
	if !hit {
		s.mu.Unlock()
		return
	}
	now := s.clock()
	s.doc = reduce(s.doc, deleteElements{IDs: ids}, now)
	s.history.Checkpoint(s.doc.Elements, now)
	s.mu.Unlock()
	s.changed(true)
}

// EraseAt deletes every unlocked element within radius of p. Nothing under
// the eraser means no command and no checkpoint.
func (s *Store) EraseAt(p geom.Point, radius float64) {
	s.mu.Lock()
	var ids []string
	for _, el := range s.doc.Elements {
		if el.Locked {
			continue
		}
		if elementHit(el, p, radius) {
			ids = append(ids, el.ID)
		}
	}
	if len(ids) == 0 {
		s.mu.Unlock()
		return
	}
	now := s.clock()
	s.doc = reduce(s.doc, deleteElements{IDs: ids}, now)
	s.history.Checkpoint(s.doc.Elements, now)
	s.mu.Unlock()
	s.log.Debug("erased", zap.Int("count", len(ids)))
	s.changed(true)
}

// SelectElements replaces the selection wholesale. Ids are not validated;
// stale ids are filtered by SelectedElements.
func (s *Store) SelectElements(ids ...string) { s.apply(selectElements{IDs: ids}, false) }

func (s *Store) ClearSelection() { s.apply(clearSelection{}, false) }

// MoveSelected shifts the unlocked selected elements. Meant for live drags,
// so it does not checkpoint; call CommitMove when the drag ends.
func (s *Store) MoveSelected(dx, dy float64) {
	s.mu.Lock()
	ids := s.doc.selectedIDList()
	if len(ids) == 0 {
		s.mu.Unlock()
		return
	}
	s.doc = reduce(s.doc, moveElements{IDs: ids, DX: dx, DY: dy}, s.clock())
	s.mu.Unlock()
	s.changed(true)
}

// CommitMove records the element collection once at the end of a selection
// drag, making the whole drag a single undo step.
func (s *Store) CommitMove() {
	s.mu.Lock()
	s.history.Checkpoint(s.doc.Elements, s.clock())
	s.mu.Unlock()
	s.changed(false)
}

// RestyleSelected patches every unlocked selected element and records one
// checkpoint. No-op with an empty selection.
func (s *Store) RestyleSelected(p ElementPatch) {
	s.mu.Lock()
	ids := s.doc.selectedIDList()
	if len(ids) == 0 {
		s.mu.Unlock()
		return
	}
	now := s.clock()
	s.doc = reduce(s.doc, restyleElements{IDs: ids, Patch: p}, now)
	s.history.Checkpoint(s.doc.Elements, now)
	s.mu.Unlock()
	s.changed(true)
}

// Undo steps the element collection back one checkpoint. Selection, camera
// and tool stay as they are.
func (s *Store) Undo() bool {
	s.mu.Lock()
	els, ok := s.history.Undo()
	if ok {
		s.doc = reduce(s.doc, restoreElements{Elements: els}, s.clock())
	}
	s.mu.Unlock()
	if ok {
		s.changed(true)
	}
	return ok
}

// Redo steps the element collection forward one checkpoint.
func (s *Store) Redo() bool {
	s.mu.Lock()
	els, ok := s.history.Redo()
	if ok {
		s.doc = reduce(s.doc, restoreElements{Elements: els}, s.clock())
	}
	s.mu.Unlock()
	if ok {
		s.changed(true)
	}
	return ok
}

func (s *Store) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.CanUndo()
}

func (s *Store) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.CanRedo()
}

// NewElement builds an element of the given type at (x, y) carrying the
// current style defaults and a fresh id. It is not added to the document.
func (s *Store) NewElement(t ElementType, x, y float64) Element {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := s.clock()
	el := Element{
		ID:          uuid.NewString(),
		Type:        t,
		X:           x,
		Y:           y,
		StrokeColor: s.doc.StrokeColor,
		FillColor:   s.doc.FillColor,
		StrokeWidth: s.doc.StrokeWidth,
		Opacity:     DefaultOpacity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	switch t {
	case TypeFreehand:
		el.Points = []geom.Point{geom.Pt(x, y)}
	case TypeLine:
		el.Start, el.End = geom.Pt(x, y), geom.Pt(x, y)
	case TypeArrow:
		el.Start, el.End = geom.Pt(x, y), geom.Pt(x, y)
		el.ArrowHeadSize = DefaultArrowHead
	case TypeStar:
		el.InnerRadiusRatio = DefaultStarRatio
		el.PointCount = DefaultStarPoints
	case TypeText:
		el.FontSize = DefaultFontSize
		el.FontFamily = DefaultFontFamily
		el.TextAlign = "left"
	}
	return el
}

// Elements returns a copy of the committed elements in z-order.
func (s *Store) Elements() []Element {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneElements(s.doc.Elements)
}

// SelectedIDs returns the selection as a sorted id list, stale ids included.
func (s *Store) SelectedIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.doc.selectedIDList()
	sort.Strings(ids)
	return ids
}

// SelectedElements returns the selected elements that still exist, in
// z-order. Stale selection ids are skipped.
func (s *Store) SelectedElements() []Element {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Element
	for _, el := range s.doc.Elements {
		if s.doc.SelectedIDs[el.ID] {
			out = append(out, el.Clone())
		}
	}
	return out
}

func (s *Store) Camera() Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Camera
}

func (s *Store) ActiveTool() Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.ActiveTool
}

func (s *Store) StrokeColor() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.StrokeColor
}

func (s *Store) FillColor() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.FillColor
}

func (s *Store) StrokeWidth() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.StrokeWidth
}

// Drawing returns a copy of the in-progress element, if any.
func (s *Store) Drawing() (Element, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc.Drawing == nil {
		return Element{}, false
	}
	return s.doc.Drawing.Clone(), true
}

// Snapshot captures elements and camera for collaborators.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Elements:   cloneElements(s.doc.Elements),
		Camera:     s.doc.Camera,
		CapturedAt: s.clock(),
	}
}

// ElementAt returns the topmost unlocked element under p, honouring z-order.
func (s *Store) ElementAt(p geom.Point) (Element, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.doc.Elements) - 1; i >= 0; i-- {
		el := s.doc.Elements[i]
		if el.Locked {
			continue
		}
		if elementHit(el, p, hitSlop) {
			return el.Clone(), true
		}
	}
	return Element{}, false
}

func (d DocumentState) selectedIDList() []string {
	ids := make([]string, 0, len(d.SelectedIDs))
	for id := range d.SelectedIDs {
		ids = append(ids, id)
	}
	return ids
}

// recognizedElement builds the clean primitive for a recognition hypothesis,
// inheriting the stroke's id and style.
func recognizedElement(stroke Element, r shape.Result, now time.Time) Element {
	el := stroke.Clone()
	el.Points = nil
	el.UpdatedAt = now
	switch r.Kind {
	case shape.Line:
		el.Type = TypeLine
		el.Start, el.End = r.Start, r.End
		el.X = math.Min(r.Start.X, r.End.X)
		el.Y = math.Min(r.Start.Y, r.End.Y)
		el.Width = math.Abs(r.End.X - r.Start.X)
		el.Height = math.Abs(r.End.Y - r.Start.Y)
	case shape.Ellipse:
		el.Type = TypeEllipse
		el.X, el.Y = r.CenterX-r.RadiusX, r.CenterY-r.RadiusY
		el.Width, el.Height = 2*r.RadiusX, 2*r.RadiusY
	case shape.Diamond:
		el.Type = TypeDiamond
		el.X, el.Y, el.Width, el.Height = r.Box.MinX, r.Box.MinY, r.Box.Width, r.Box.Height
	case shape.Triangle:
		el.Type = TypeTriangle
		el.Points = []geom.Point{r.V1, r.V2, r.V3}
		b := geom.BoundingBox(el.Points)
		el.X, el.Y, el.Width, el.Height = b.MinX, b.MinY, b.Width, b.Height
	case shape.Rectangle:
		el.Type = TypeRectangle
		el.X, el.Y, el.Width, el.Height = r.Box.MinX, r.Box.MinY, r.Box.Width, r.Box.Height
	}
	return el
}
