// Package gesture turns ordered pointer events into selection and
// table-reassignment intents.
//
// # Overview
//
// The [DragController] is a small state machine: Idle → Pressing →
// Dragging. A press that lands on a bar arms it; holding still past the
// long-press threshold starts a drag; lifting early fires a plain select.
// While dragging, the pointer's Y position alone picks the hovered target
// row; a drag changes which table a reservation belongs to, never its
// time. A release over a table row emits a reassignment intent and the
// controller returns to Idle. It never mutates reservations or layout;
// committing the move (and coping with commit failure) is entirely the
// caller's job.
//
// Every event is processed against a [viewport.HitTester] built from the
// layout and transform snapshot current at that instant, so an in-flight
// zoom animation can never skew a hit test.
package gesture

import (
	"time"

	"github.com/google/uuid"

	"github.com/KyleKincer/tableyeah/pkg/viewport"
)

// Phase is the kind of a pointer event.
type Phase int

// Pointer event phases, in the order a gesture produces them.
const (
	PhaseDown Phase = iota
	PhaseMove
	PhaseUp
	PhaseCancel
)

// PointerEvent is one discrete, ordered input from the gesture
// recognizer. How events are produced (input thread, callback queue) is
// the recognizer's concern; the controller only requires arrival order.
type PointerEvent struct {
	Phase Phase
	X, Y  float64
	At    time.Time
}

// State is the drag controller's current mode.
type State int

// Controller states.
const (
	StateIdle State = iota
	StatePressing
	StateDragging
)

func (s State) String() string {
	switch s {
	case StatePressing:
		return "pressing"
	case StateDragging:
		return "dragging"
	default:
		return "idle"
	}
}

// Reassignment is the intent emitted on a successful drop. The engine has
// not applied it; the caller persists it and re-supplies an updated
// reservation list, which triggers a fresh layout pass.
type Reassignment struct {
	SessionID     string
	ReservationID string
	TargetTableID int
}

// Callbacks deliver controller output. Nil callbacks are skipped.
type Callbacks struct {
	// OnSelect fires when a press on a bar lifts before the long-press
	// threshold: a plain tap.
	OnSelect func(reservationID string)

	// OnReassign fires on a drop over a table row.
	OnReassign func(r Reassignment)

	// OnHoverRow fires while dragging whenever the hovered target row
	// changes; row is -1 when no row is under the pointer. Purely for
	// caller-side visual feedback.
	OnHoverRow func(row int)
}

// Tunables.
const (
	// DefaultLongPress is how long a press must hold still before it
	// becomes a drag.
	DefaultLongPress = 350 * time.Millisecond

	// DefaultSlop is the movement tolerance, in screen units, within
	// which a press still counts as stationary.
	DefaultSlop = 6.0
)

// noHover marks "no row under the pointer".
const noHover = -1

// session is the transient state of one press-drag-release cycle.
type session struct {
	id         string
	hit        viewport.Hit
	downX      float64
	downY      float64
	downAt     time.Time
	pointerX   float64
	pointerY   float64
	hoveredRow int
}

// DragController recognizes taps and long-press drags over timeline bars.
// It is single-threaded by contract: feed it events in arrival order from
// one goroutine. Only one session can be active; a second press while
// dragging is ignored.
type DragController struct {
	state     State
	longPress time.Duration
	slop      float64
	callbacks Callbacks
	sess      *session
}

// NewDragController creates a controller with default thresholds.
func NewDragController(cb Callbacks) *DragController {
	return &DragController{
		longPress: DefaultLongPress,
		slop:      DefaultSlop,
		callbacks: cb,
	}
}

// SetLongPress overrides the long-press threshold.
func (c *DragController) SetLongPress(d time.Duration) { c.longPress = d }

// SetSlop overrides the movement tolerance.
func (c *DragController) SetSlop(px float64) { c.slop = px }

// State returns the controller's current state.
func (c *DragController) State() State { return c.state }

// HoveredRow returns the currently hovered target row index while
// dragging, or -1.
func (c *DragController) HoveredRow() int {
	if c.state != StateDragging || c.sess == nil {
		return noHover
	}
	return c.sess.hoveredRow
}

// DraggedReservation returns the reservation being dragged, or "".
func (c *DragController) DraggedReservation() string {
	if c.state != StateDragging || c.sess == nil {
		return ""
	}
	return c.sess.hit.ReservationID
}

// Handle processes one pointer event against the hit tester snapshot
// taken at the same logical instant as the event.
func (c *DragController) Handle(ev PointerEvent, ht *viewport.HitTester) {
	switch ev.Phase {
	case PhaseDown:
		c.handleDown(ev, ht)
	case PhaseMove:
		c.handleMove(ev, ht)
	case PhaseUp:
		c.handleUp(ev, ht)
	case PhaseCancel:
		c.Cancel()
	}
}

// Tick promotes a still-held press to a drag once the long-press
// threshold elapses, without requiring pointer movement. Call it from the
// gesture recognizer's timer.
func (c *DragController) Tick(now time.Time, ht *viewport.HitTester) {
	if c.state != StatePressing {
		return
	}
	if now.Sub(c.sess.downAt) >= c.longPress {
		c.startDrag(ht)
	}
}

// Cancel aborts any in-flight session with no event emitted. Safe to call
// in any state; always leaves the controller Idle.
func (c *DragController) Cancel() {
	if c.state == StateDragging {
		c.setHover(noHover)
	}
	c.state = StateIdle
	c.sess = nil
}

func (c *DragController) handleDown(ev PointerEvent, ht *viewport.HitTester) {
	if c.state != StateIdle {
		return // one session at a time
	}
	hit, ok := ht.HitTest(ev.X, ev.Y)
	if !ok {
		return
	}
	c.state = StatePressing
	c.sess = &session{
		id:         uuid.NewString(),
		hit:        hit,
		downX:      ev.X,
		downY:      ev.Y,
		downAt:     ev.At,
		pointerX:   ev.X,
		pointerY:   ev.Y,
		hoveredRow: noHover,
	}
}

func (c *DragController) handleMove(ev PointerEvent, ht *viewport.HitTester) {
	switch c.state {
	case StatePressing:
		c.sess.pointerX, c.sess.pointerY = ev.X, ev.Y
		if c.moved() {
			// Moved before the threshold: this is a pan/scroll, not a
			// drag. Stand down without an event.
			c.Cancel()
			return
		}
		if ev.At.Sub(c.sess.downAt) >= c.longPress {
			c.startDrag(ht)
		}
	case StateDragging:
		c.sess.pointerX, c.sess.pointerY = ev.X, ev.Y
		c.updateHover(ht)
	}
}

func (c *DragController) handleUp(ev PointerEvent, ht *viewport.HitTester) {
	switch c.state {
	case StatePressing:
		// Lifted before the long press: plain select.
		id := c.sess.hit.ReservationID
		c.Cancel()
		if c.callbacks.OnSelect != nil {
			c.callbacks.OnSelect(id)
		}
	case StateDragging:
		c.sess.pointerX, c.sess.pointerY = ev.X, ev.Y
		c.updateHover(ht)
		c.drop(ht)
	}
}

func (c *DragController) startDrag(ht *viewport.HitTester) {
	c.state = StateDragging
	c.updateHover(ht)
}

// updateHover recomputes the hovered target row from the pointer's Y
// position only.
func (c *DragController) updateHover(ht *viewport.HitTester) {
	row, ok := ht.RowAtScreenY(c.sess.pointerY)
	if !ok {
		c.setHover(noHover)
		return
	}
	c.setHover(row)
}

func (c *DragController) setHover(row int) {
	if c.sess == nil || c.sess.hoveredRow == row {
		return
	}
	c.sess.hoveredRow = row
	if c.callbacks.OnHoverRow != nil {
		c.callbacks.OnHoverRow(row)
	}
}

// drop finishes a drag. A release over a table row emits the
// reassignment intent; a release over the unassigned row, a row gap, or
// outside all rows is a cancel, which is an expected outcome rather than
// an error.
func (c *DragController) drop(ht *viewport.HitTester) {
	sess := c.sess
	row := sess.hoveredRow
	c.Cancel()

	if row == noHover {
		return
	}
	target := ht.Row(row)
	if target.IsUnassigned() {
		return
	}
	if c.callbacks.OnReassign != nil {
		c.callbacks.OnReassign(Reassignment{
			SessionID:     sess.id,
			ReservationID: sess.hit.ReservationID,
			TargetTableID: target.Table.ID,
		})
	}
}

// moved reports whether the pointer has left the press slop radius.
func (c *DragController) moved() bool {
	dx := c.sess.pointerX - c.sess.downX
	dy := c.sess.pointerY - c.sess.downY
	return dx*dx+dy*dy > c.slop*c.slop
}
