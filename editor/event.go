package editor

import (
	"fmt"

	"github.com/vsariola/rack"
)

type (
	// Event is a pointer event, already routed to its target by the GUI.
	Event struct {
		Kind   EventKind
		Pos    rack.Vec // pointer position on the canvas
		Delta  rack.Vec // movement since the previous DragMove
		Button Button
		Fine   bool // the fine adjustment modifier is held
		Target Target
		// Origin is where the drag started, for DragEnter, DragLeave and
		// DragDrop.
		Origin Target
	}

	EventKind int

	Button int
)

const (
	PointerDown EventKind = iota
	DragStart
	DragMove
	DragEnd
	DragEnter
	DragLeave
	DragDrop
	// Cancel aborts whatever is being dragged, e.g. when the pointer leaves
	// the window.
	Cancel
)

const (
	LeftButton Button = iota
	RightButton
)

var eventKindNames = [...]string{"PointerDown", "DragStart", "DragMove", "DragEnd", "DragEnter", "DragLeave", "DragDrop", "Cancel"}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
	return eventKindNames[k]
}
