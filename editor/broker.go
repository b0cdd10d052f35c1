package editor

import (
	"time"

	"github.com/vsariola/rack"
)

type (
	// Broker connects the editor and the player goroutine. It is many-to-one
	// communication, with one buffered channel per recipient; neither side
	// ever blocks on a send.
	Broker struct {
		ToPlayer chan any
		ToModel  chan any
	}

	// AddModuleMsg hands a new engine to the player. Handle identifies the
	// engine in the later messages; it is never reused by the same App, unlike
	// module ids which restart with every new graph.
	AddModuleMsg struct {
		Handle int
		Engine rack.Engine
		IO     *rack.ModuleIO
	}

	// RemoveModuleMsg asks the player to drop its references to an engine.
	// The player answers with ModuleReleasedMsg, after which the engine can
	// be destroyed.
	RemoveModuleMsg struct {
		Handle int
	}

	ModuleReleasedMsg struct {
		Handle int
	}

	// RoutesMsg replaces all the routes of the player.
	RoutesMsg struct {
		Routes []Route
	}

	// MsgToModel runs Data on the GUI goroutine. Goroutines other than the
	// player use it too, e.g. a file dialog that finished.
	MsgToModel struct {
		Data func()
	}

	// Route copies an output value to an input value once per sample.
	Route struct {
		From, To *rack.Value
	}
)

func NewBroker() *Broker {
	return &Broker{
		ToPlayer: make(chan any, 1024),
		ToModel:  make(chan any, 1024),
	}
}

// TrySend is a helper function to send a value to a channel if it is not full.
// It is guaranteed to be non-blocking. Return true if the value was sent, false
// otherwise.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}

// TimeoutReceive is a helper function to block until a value is received from a
// channel, or timing out after t. ok will be false if the timeout occurred or
// if the channel is closed.
func TimeoutReceive[T any](c <-chan T, t time.Duration) (v T, ok bool) {
	select {
	case v, ok = <-c:
		return v, ok
	case <-time.After(t):
		return v, false
	}
}
