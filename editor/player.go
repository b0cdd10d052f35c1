package editor

import (
	"slices"

	"github.com/vsariola/rack"
)

type (
	// Player runs the engines. It lives on the audio goroutine and is only
	// touched through Process; everything else reaches it via the broker.
	Player struct {
		broker  *Broker
		modules []playerModule
		routes  []Route
		dt      float32
	}

	playerModule struct {
		handle int
		engine rack.Engine
		io     *rack.ModuleIO
		output rack.AudioOutput
	}
)

func NewPlayer(broker *Broker) *Player {
	return &Player{broker: broker, dt: 1.0 / rack.SampleRate}
}

// Process handles the pending messages and then renders the buffer. Each
// frame, the routes copy the outputs to the inputs and then all the engines
// are stepped; the frames of the audio output engines are summed into buf.
func (p *Player) Process(buf rack.AudioBuffer) {
	p.processMessages()
	for i := range buf {
		for _, r := range p.routes {
			r.To.Store(r.From.Load())
		}
		var frame [2]float32
		for _, m := range p.modules {
			m.engine.Step(m.io, p.dt)
			if m.output != nil {
				f := m.output.Frame()
				frame[0] += f[0]
				frame[1] += f[1]
			}
		}
		buf[i] = frame
	}
}

// Source returns Process as an AudioSource.
func (p *Player) Source() rack.AudioSource { return p.Process }

func (p *Player) NumModules() int { return len(p.modules) }

func (p *Player) processMessages() {
loop:
	for {
		select {
		case msg := <-p.broker.ToPlayer:
			p.processMessage(msg)
		default:
			break loop
		}
	}
}

func (p *Player) processMessage(msg any) {
	switch m := msg.(type) {
	case AddModuleMsg:
		pm := playerModule{handle: m.Handle, engine: m.Engine, io: m.IO}
		pm.output, _ = m.Engine.(rack.AudioOutput)
		p.modules = append(p.modules, pm)
	case RemoveModuleMsg:
		p.modules = slices.DeleteFunc(p.modules, func(pm playerModule) bool { return pm.handle == m.Handle })
		TrySend(p.broker.ToModel, any(ModuleReleasedMsg{Handle: m.Handle}))
	case RoutesMsg:
		// inputs that are no longer wired read zero
		for _, old := range p.routes {
			if !slices.ContainsFunc(m.Routes, func(r Route) bool { return r.To == old.To }) {
				old.To.Store(0)
			}
		}
		p.routes = m.Routes
	}
}
