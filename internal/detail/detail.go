// Package detail implements the detail overlay state machine.
//
// The overlay is either Closed or Open on exactly one seller. Selecting while
// open switches sellers directly. Any dismissal closes it and always releases
// the background scroll lock, even when the overlay was already closed.
package detail

import "fmt"

// Trigger identifies what caused a transition.
type Trigger int

const (
	// TriggerSelect opens the overlay on a seller.
	TriggerSelect Trigger = iota
	// TriggerClose is the explicit close control.
	TriggerClose
	// TriggerOutside is an interaction outside the overlay boundary.
	TriggerOutside
	// TriggerCancel is the escape key or equivalent.
	TriggerCancel
)

func (t Trigger) String() string {
	switch t {
	case TriggerSelect:
		return "select"
	case TriggerClose:
		return "close"
	case TriggerOutside:
		return "outside"
	case TriggerCancel:
		return "cancel"
	}
	return fmt.Sprintf("Trigger(%d)", int(t))
}

// State is either Closed (Open false) or Open on SellerID.
type State struct {
	Open     bool
	SellerID int
}

// Closed is the closed state.
var Closed = State{}

// OpenOn returns the open state for a seller.
func OpenOn(id int) State {
	return State{Open: true, SellerID: id}
}

func (s State) String() string {
	if !s.Open {
		return "Closed"
	}
	return fmt.Sprintf("Open(%d)", s.SellerID)
}

// Transition describes an observable state change.
type Transition struct {
	From    State
	To      State
	Trigger Trigger
}

// Focus targets inside the overlay.
const (
	FocusCloseButton = "close"
	FocusWhatsApp    = "whatsapp"
	FocusInstagram   = "instagram"
	FocusSnapchat    = "snapchat"
)

// Controller owns the overlay state. It is not safe for concurrent use; it
// is driven from a single event loop.
type Controller struct {
	state        State
	origin       int
	hasOrigin    bool
	scrollLocked bool

	focusRing  []string
	focusIndex int

	listeners []func(Transition)
}

// NewController creates a closed controller.
func NewController() *Controller {
	return &Controller{}
}

// OnTransition registers a listener called after every real state change.
func (c *Controller) OnTransition(fn func(Transition)) {
	if fn != nil {
		c.listeners = append(c.listeners, fn)
	}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// IsOpen reports whether the overlay is open.
func (c *Controller) IsOpen() bool {
	return c.state.Open
}

// Select opens the overlay on id. origin identifies the control that
// triggered the selection so focus can return to it on dismissal.
// Selecting the already open seller is not a transition.
func (c *Controller) Select(id, origin int) {
	from := c.state
	c.origin = origin
	c.hasOrigin = true
	c.scrollLocked = true
	if from.Open && from.SellerID == id {
		return
	}
	c.state = OpenOn(id)
	c.focusIndex = 0
	c.emit(Transition{From: from, To: c.state, Trigger: TriggerSelect})
}

// Dismiss closes the overlay. Dismissing while closed only releases the scroll lock.
func (c *Controller) Dismiss(trigger Trigger) {
	c.scrollLocked = false
	if !c.state.Open {
		return
	}
	from := c.state
	c.state = Closed
	c.focusIndex = 0
	c.emit(Transition{From: from, To: c.state, Trigger: trigger})
}

// FocusTrapped reports whether keyboard focus must stay inside the overlay.
func (c *Controller) FocusTrapped() bool {
	return c.state.Open
}

// ScrollLocked reports whether background scrolling is suppressed.
func (c *Controller) ScrollLocked() bool {
	return c.scrollLocked
}

// ReturnFocus reports the control that should regain focus after dismissal.
// It is only available while the overlay is closed.
func (c *Controller) ReturnFocus() (int, bool) {
	if c.state.Open || !c.hasOrigin {
		return 0, false
	}
	return c.origin, true
}

// SetFocusTargets sets the focusable controls inside the overlay.
// The close button is always the first target.
func (c *Controller) SetFocusTargets(targets ...string) {
	ring := []string{FocusCloseButton}
	for _, t := range targets {
		if t != "" && t != FocusCloseButton {
			ring = append(ring, t)
		}
	}
	c.focusRing = ring
	c.focusIndex = 0
}

// Focused returns the focused target, or "" when the overlay is closed.
func (c *Controller) Focused() string {
	if !c.state.Open {
		return ""
	}
	if len(c.focusRing) == 0 {
		return FocusCloseButton
	}
	return c.focusRing[c.focusIndex]
}

// FocusNext moves focus forward, wrapping at the end.
func (c *Controller) FocusNext() string {
	return c.moveFocus(1)
}

// FocusPrev moves focus backward, wrapping at the start.
func (c *Controller) FocusPrev() string {
	return c.moveFocus(-1)
}

func (c *Controller) moveFocus(delta int) string {
	if !c.state.Open {
		return ""
	}
	n := len(c.focusRing)
	if n == 0 {
		return FocusCloseButton
	}
	c.focusIndex = ((c.focusIndex+delta)%n + n) % n
	return c.focusRing[c.focusIndex]
}

func (c *Controller) emit(t Transition) {
	for _, fn := range c.listeners {
		fn(t)
	}
}
