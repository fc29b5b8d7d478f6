package detail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(c *Controller) *[]Transition {
	var seen []Transition
	c.OnTransition(func(t Transition) { seen = append(seen, t) })
	return &seen
}

func TestSelectSwitchDismiss(t *testing.T) {
	c := NewController()
	seen := record(c)

	c.Select(2, 1) // B
	c.Select(1, 0) // A
	c.Dismiss(TriggerClose)

	assert.Equal(t, Closed, c.State())
	require.Len(t, *seen, 3)
	assert.Equal(t, []State{OpenOn(2), OpenOn(1), Closed}, []State{(*seen)[0].To, (*seen)[1].To, (*seen)[2].To})
	assert.Equal(t, OpenOn(2), (*seen)[1].From, "no intermediate Closed state")
	assert.Equal(t, TriggerClose, (*seen)[2].Trigger)
}

func TestDismissTriggers(t *testing.T) {
	for _, trigger := range []Trigger{TriggerClose, TriggerOutside, TriggerCancel} {
		t.Run(trigger.String(), func(t *testing.T) {
			c := NewController()
			c.Select(5, 3)
			require.True(t, c.IsOpen())
			c.Dismiss(trigger)
			assert.False(t, c.IsOpen())
			assert.False(t, c.ScrollLocked())
		})
	}
}

func TestReselectSameSellerIsNotATransition(t *testing.T) {
	c := NewController()
	seen := record(c)

	c.Select(1, 0)
	c.Select(1, 0)
	assert.Len(t, *seen, 1)
}

func TestOverlappingDismissals(t *testing.T) {
	c := NewController()
	seen := record(c)

	c.Select(1, 0)
	c.Dismiss(TriggerOutside)
	c.Dismiss(TriggerCancel)
	c.Dismiss(TriggerClose)

	assert.Len(t, *seen, 2, "only the first dismissal is a transition")
	assert.False(t, c.ScrollLocked())
}

func TestDismissWhileClosedRestoresScroll(t *testing.T) {
	c := NewController()
	c.scrollLocked = true

	c.Dismiss(TriggerCancel)

	assert.False(t, c.ScrollLocked())
	assert.Equal(t, Closed, c.State())
}

func TestFocusContract(t *testing.T) {
	c := NewController()

	_, ok := c.ReturnFocus()
	assert.False(t, ok, "nothing to return to before any selection")
	assert.False(t, c.FocusTrapped())

	c.Select(7, 4)
	assert.True(t, c.FocusTrapped())
	assert.True(t, c.ScrollLocked())
	_, ok = c.ReturnFocus()
	assert.False(t, ok, "focus stays inside while open")

	c.Select(8, 6)
	c.Dismiss(TriggerCancel)
	assert.False(t, c.FocusTrapped())
	origin, ok := c.ReturnFocus()
	require.True(t, ok)
	assert.Equal(t, 6, origin, "focus returns to the most recent trigger")
}

func TestFocusRingWraps(t *testing.T) {
	c := NewController()
	assert.Equal(t, "", c.FocusNext(), "no focus while closed")

	c.Select(1, 0)
	c.SetFocusTargets(FocusWhatsApp, "", FocusInstagram, FocusCloseButton)

	assert.Equal(t, FocusCloseButton, c.Focused())
	assert.Equal(t, FocusWhatsApp, c.FocusNext())
	assert.Equal(t, FocusInstagram, c.FocusNext())
	assert.Equal(t, FocusCloseButton, c.FocusNext())
	assert.Equal(t, FocusInstagram, c.FocusPrev())

	c.Dismiss(TriggerClose)
	assert.Equal(t, "", c.Focused())
}

func TestFocusWithoutTargets(t *testing.T) {
	c := NewController()
	c.Select(1, 0)
	assert.Equal(t, FocusCloseButton, c.Focused())
	assert.Equal(t, FocusCloseButton, c.FocusNext())
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "Closed", Closed.String())
	assert.Equal(t, "Open(3)", OpenOn(3).String())
	assert.Equal(t, "Trigger(9)", Trigger(9).String())
}
