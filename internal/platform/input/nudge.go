// Package input performs the synthetic input used to reset the OS idle timer.
package input

import (
	"fmt"

	"github.com/go-vgo/robotgo"
)

// MouseNudger moves the pointer one pixel and puts it back.
type MouseNudger struct {
	// Offset is the horizontal distance of the nudge in pixels.
	Offset int
}

// NewMouseNudger returns a nudger with a one pixel offset.
func NewMouseNudger() *MouseNudger {
	return &MouseNudger{Offset: 1}
}

// Nudge performs one move-and-return. The error is informational only:
// the pointer may be pinned at a screen edge or input may be blocked.
func (nudger *MouseNudger) Nudge() error {
	offset := nudger.Offset
	if offset == 0 {
		offset = 1
	}

	x, y := robotgo.Location()
	robotgo.MoveRelative(offset, 0)
	movedX, movedY := robotgo.Location()
	robotgo.Move(x, y)

	if movedX == x && movedY == y {
		return fmt.Errorf("nudge: pointer did not move from (%d, %d)", x, y)
	}
	return nil
}
