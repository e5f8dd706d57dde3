// Package editor implements the interactive decal editing session:
// placement, selection, drag-to-slide, and keyboard commands.
package editor

import (
	"fmt"
	"image"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/decal-studio/internal/decal"
	"github.com/Faultbox/decal-studio/internal/engine/model"
	"github.com/Faultbox/decal-studio/internal/engine/picking"
	"github.com/Faultbox/decal-studio/internal/logger"
	"github.com/Faultbox/decal-studio/pkg/math"
)

// Pointer is a pointer event in window pixels plus normalized device coordinates.
type Pointer struct {
	X, Y       float32
	NDCX, NDCY float32
}

// PointerAt builds a pointer event from window pixels, with Y growing downward.
func PointerAt(x, y, width, height float32) Pointer {
	p := Pointer{X: x, Y: y}
	if width > 0 && height > 0 {
		p.NDCX = 2*x/width - 1
		p.NDCY = 1 - 2*y/height
	}
	return p
}

// Viewpoint supplies the active camera's unprojection.
type Viewpoint interface {
	InverseViewProjection() math.Mat4
}

// Orbiter is an optional Viewpoint capability: drags that don't move a decal rotate the view.
type Orbiter interface {
	HandleDrag(deltaX, deltaY float32)
}

// Notifier receives short status messages for the user.
type Notifier func(msg string)

// pending is a texture waiting to be placed.
type pending struct {
	texture image.Image
	aspect  float32
}

// gesture tracks one press-move-release sequence.
type gesture struct {
	active   bool
	press    Pointer
	last     Pointer
	dragging bool // Moved past the click threshold
	onDecal  bool // Press landed on the selected decal
	consumed bool // Press placed a decal
}

// Session is one editor context: the targets, the decals placed on them,
// the selection, and in-flight pointer gestures.
type Session struct {
	targets *model.Collection
	view    Viewpoint
	surface decal.Surface
	notify  Notifier
	opts    Options
	log     *zap.Logger

	decals   []*decal.Decal
	selected *decal.Decal
	pending  *pending
	gesture  gesture
}

// NewSession creates a session. notify may be nil.
func NewSession(targets *model.Collection, view Viewpoint, surface decal.Surface, notify Notifier, opts Options) *Session {
	return &Session{
		targets: targets,
		view:    view,
		surface: surface,
		notify:  notify,
		opts:    opts,
		log:     logger.Component("editor"),
	}
}

// SetPendingTexture arms placement: the next press on a target places tex.
// aspect is the texture's width/height ratio.
func (s *Session) SetPendingTexture(tex image.Image, aspect float32) {
	s.pending = &pending{texture: tex, aspect: aspect}
	s.status("Click on the model to place the decal")
}

// Placing reports whether a texture is waiting to be placed.
func (s *Session) Placing() bool {
	return s.pending != nil
}

// CancelPlacement drops the pending texture.
func (s *Session) CancelPlacement() {
	if s.pending == nil {
		return
	}
	s.pending = nil
	s.status("Placement cancelled")
}

// Decals returns the decals top-first.
func (s *Session) Decals() []*decal.Decal {
	return decal.Ordered(s.decals)
}

// Selected returns the selected decal, or nil.
func (s *Session) Selected() *decal.Decal {
	return s.selected
}

// Find returns the decal with the given ID.
func (s *Session) Find(id uuid.UUID) *decal.Decal {
	for _, d := range s.decals {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// Select selects the decal with the given ID.
func (s *Session) Select(id uuid.UUID) bool {
	d := s.Find(id)
	if d == nil {
		return false
	}
	s.selected = d
	s.log.Info("decal selected", zap.Stringer("decal", id))
	return true
}

// Deselect clears the selection.
func (s *Session) Deselect() {
	s.selected = nil
}

// SetVisible shows or hides a decal.
func (s *Session) SetVisible(id uuid.UUID, visible bool) bool {
	d := s.Find(id)
	if d == nil {
		return false
	}
	d.SetVisible(visible)
	return true
}

// MoveToIndex moves a decal to a position in the top-first list.
func (s *Session) MoveToIndex(id uuid.UUID, index int) bool {
	d := s.Find(id)
	if d == nil {
		return false
	}
	decal.MoveToIndex(s.decals, d, index)
	return true
}

// Delete destroys a decal and removes it from the session.
func (s *Session) Delete(id uuid.UUID) bool {
	d := s.Find(id)
	if d == nil {
		return false
	}
	d.Destroy()
	s.decals = slices.DeleteFunc(s.decals, func(x *decal.Decal) bool { return x == d })
	if s.selected == d {
		s.selected = nil
	}
	s.log.Info("decal deleted", zap.Stringer("decal", id))
	s.status("Decal deleted")
	return true
}

// PointerDown starts a gesture. With a pending texture, a press on a target places it.
func (s *Session) PointerDown(p Pointer) {
	s.gesture = gesture{active: true, press: p, last: p}

	if s.pending != nil {
		if hit, ok := s.castTargets(p); ok {
			s.place(hit)
			s.gesture.consumed = true
			return
		}
		s.status("No surface under the pointer")
	}

	if s.selected != nil {
		if d, _, ok := decal.Pick(s.decals, s.ray(p)); ok && d == s.selected {
			s.gesture.onDecal = true
		}
	}
}

// PointerMove slides a grabbed decal along the targets, or orbits the view.
func (s *Session) PointerMove(p Pointer) {
	g := &s.gesture
	if !g.active {
		return
	}
	if !g.dragging && distance(p, g.press) > s.opts.ClickThreshold {
		g.dragging = true
	}
	if !g.dragging || g.consumed {
		g.last = p
		return
	}

	if g.onDecal && s.selected != nil {
		if hit, ok := s.castTargets(p); ok {
			s.selected.MoveOnto(hit.Mesh, hit.Point, hit.Normal)
		}
	} else if o, ok := s.view.(Orbiter); ok {
		o.HandleDrag(p.X-g.last.X, p.Y-g.last.Y)
	}
	g.last = p
}

// PointerUp ends a gesture. A release within the click threshold selects the
// decal under the pointer, or deselects when there is none.
func (s *Session) PointerUp(p Pointer) {
	g := s.gesture
	s.gesture = gesture{}
	if !g.active || g.consumed {
		return
	}
	if g.dragging || distance(p, g.press) > s.opts.ClickThreshold {
		if g.onDecal {
			s.status("Decal moved")
		}
		return
	}

	if d, _, ok := decal.Pick(s.decals, s.ray(p)); ok {
		s.Select(d.ID)
		s.status(fmt.Sprintf("Selected decal (layer %d)", d.Layer()))
		return
	}
	s.Deselect()
}

// HandleKey runs a keyboard command. It reports whether the key was used.
func (s *Session) HandleKey(k Key, mods Modifiers) bool {
	if k == KeyEscape {
		switch {
		case s.pending != nil:
			s.CancelPlacement()
		case s.selected != nil:
			s.Deselect()
		default:
			return false
		}
		return true
	}

	d := s.selected
	if d == nil {
		if k != KeyNone {
			s.status("No decal selected")
		}
		return false
	}

	switch k {
	case KeyRotate:
		step := s.opts.RotationStep
		if mods.Shift {
			step = -step
		}
		d.Rotate(step)
	case KeyGrow:
		d.Resize(s.opts.ResizeStep)
	case KeyShrink:
		d.Resize(1 / s.opts.ResizeStep)
	case KeyFlipH:
		d.FlipH()
	case KeyFlipV:
		d.FlipV()
	case KeyLayerUp:
		decal.Nudge(d, 1)
		s.status(fmt.Sprintf("Layer %d", d.Layer()))
	case KeyLayerDown:
		decal.Nudge(d, -1)
		s.status(fmt.Sprintf("Layer %d", d.Layer()))
	case KeyStepUp:
		decal.StepUp(s.decals, d)
	case KeyStepDown:
		decal.StepDown(s.decals, d)
	case KeyDelete:
		s.Delete(d.ID)
	default:
		return false
	}

	s.log.Debug("key command", zap.Stringer("key", k), zap.Bool("shift", mods.Shift))
	return true
}

func (s *Session) place(hit model.Hit) {
	p := s.pending
	s.pending = nil

	d := decal.New(decal.Params{
		Position:    hit.Point,
		Normal:      hit.Normal,
		Size:        s.opts.DefaultSize,
		AspectRatio: p.aspect,
		Layer:       decal.NextLayer(s.decals),
		Visible:     true,
	}, p.texture, hit.Mesh, s.surface, s.opts.Decal)

	s.decals = append(s.decals, d)
	s.selected = d

	s.log.Info("decal placed",
		zap.Stringer("decal", d.ID),
		zap.String("target", hit.Mesh.Name),
		zap.Int("layer", d.Layer()),
		zap.Int("triangles", d.Mesh().Geometry.TriangleCount()))

	if d.Mesh().Geometry.Empty() {
		s.status("Decal placed, but no surface lies inside its box")
		return
	}
	s.status("Decal placed")
}

func (s *Session) ray(p Pointer) picking.Ray {
	return picking.NDCToRay(p.NDCX, p.NDCY, s.view.InverseViewProjection())
}

func (s *Session) castTargets(p Pointer) (model.Hit, bool) {
	if s.targets == nil {
		return model.Hit{}, false
	}
	return s.targets.Raycast(s.ray(p))
}

func (s *Session) status(msg string) {
	if s.notify != nil {
		s.notify(msg)
	}
}

func distance(a, b Pointer) float32 {
	return math.Vec2{X: a.X, Y: a.Y}.Distance(math.Vec2{X: b.X, Y: b.Y})
}
