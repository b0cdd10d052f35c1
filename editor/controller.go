package editor

import (
	"log/slog"

	"github.com/vsariola/rack"
)

type (
	// Controller turns pointer events into edits of the Graph. It is a state
	// machine: a drag can only start from Idle, and every drag returns to
	// Idle on DragEnd or Cancel. Events are queued with Push and handled in
	// order by Update, on the GUI goroutine.
	Controller struct {
		graph *Graph
		cfg   Config
		log   *slog.Logger
		queue []Event
		state State

		// DraggingModule
		module    int
		grab      rack.Vec
		requested rack.Vec

		// DraggingWireLoose
		fixed    PortRef
		loose    rack.Vec
		hover    PortRef
		hovering bool
		color    rack.Color
		pulled   bool

		// DraggingParam
		param      Target
		startValue float32
		startIndex int
	}

	State int
)

const (
	Idle State = iota
	DraggingModule
	DraggingWireLoose
	DraggingParam
)

var stateNames = [...]string{"Idle", "DraggingModule", "DraggingWireLoose", "DraggingParam"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "State(?)"
	}
	return stateNames[s]
}

func NewController(g *Graph, cfg Config, log *slog.Logger) *Controller {
	return &Controller{graph: g, cfg: cfg, log: log}
}

// SetGraph cancels any drag and starts editing another graph.
func (c *Controller) SetGraph(g *Graph) {
	c.cancel()
	c.queue = c.queue[:0]
	c.graph = g
}

func (c *Controller) State() State { return c.state }

// Push queues an event to be handled on the next Update.
func (c *Controller) Push(ev Event) { c.queue = append(c.queue, ev) }

// Update handles all the queued events.
func (c *Controller) Update() {
	for i := 0; i < len(c.queue); i++ {
		c.handle(c.queue[i])
	}
	c.queue = c.queue[:0]
}

func (c *Controller) handle(ev Event) {
	switch ev.Kind {
	case PointerDown:
		if c.state != Idle {
			c.log.Debug("pointer down ignored while dragging", "state", c.state)
			return
		}
		c.begin(ev)
	case DragStart:
		if c.state == Idle && ev.Button == LeftButton {
			c.begin(ev)
		}
	case DragMove:
		c.move(ev)
	case DragEnd:
		c.end(ev)
	case DragEnter, DragDrop:
		if c.state == DraggingWireLoose && ev.Target.Kind == PortTarget && c.valid(ev.Target.Port) {
			c.hover, c.hovering = ev.Target.Port, true
		}
		if ev.Kind == DragDrop && c.state == DraggingParam && ev.Target == c.param {
			if p, ok := c.activeParam(); ok && p.behavior != nil {
				p.behavior.Drop(p)
			}
		}
	case DragLeave:
		if c.state == DraggingWireLoose && c.hovering && ev.Target.Kind == PortTarget && ev.Target.Port == c.hover {
			c.hovering = false
		}
	case Cancel:
		c.cancel()
	}
}

func (c *Controller) begin(ev Event) {
	t := ev.Target
	switch t.Kind {
	case ModuleTarget:
		m, ok := c.graph.Module(t.Module)
		if !ok || ev.Button != LeftButton {
			return
		}
		c.state = DraggingModule
		c.module = m.ID
		c.grab = ev.Pos.Sub(m.Pos())
		c.requested = m.Pos()
	case PortTarget:
		if _, ok := c.graph.PortPos(t.Port); !ok {
			return
		}
		if ev.Button == RightButton {
			n := c.graph.DisconnectPort(t.Port)
			c.log.Debug("disconnected port", "port", t.Port, "wires", n)
			return
		}
		c.beginWire(t.Port, ev.Pos)
	case ParamTarget:
		c.param = t
		p, ok := c.activeParam()
		if !ok || ev.Button != LeftButton {
			return
		}
		c.state = DraggingParam
		c.startValue, c.startIndex = p.Value(), p.index
		if p.behavior != nil {
			p.behavior.Press(p)
		}
	}
}

// beginWire starts dragging a loose wire from a port. Grabbing an input that
// has a wire pulls the wire out: its output end stays fixed.
func (c *Controller) beginWire(p PortRef, pos rack.Vec) {
	c.fixed, c.color, c.pulled = p, c.graph.nextColor(), false
	if w, ok := c.graph.InputWire(p); ok {
		c.fixed, c.color, c.pulled = w.Out, w.Color, true
		c.graph.Disconnect(w.ID)
	}
	c.loose = pos
	c.hovering = false
	c.state = DraggingWireLoose
}

func (c *Controller) move(ev Event) {
	switch c.state {
	case DraggingModule:
		c.requested = c.cfg.Snap(ev.Pos.Sub(c.grab))
	case DraggingWireLoose:
		c.loose = ev.Pos
		c.hovering = false
		for _, p := range c.graph.PortsNear(ev.Pos, c.fixed.Dir.Opposite(), c.cfg.PortHitRadius) {
			if c.valid(p) {
				c.hover, c.hovering = p, true
				break
			}
		}
	case DraggingParam:
		p, ok := c.activeParam()
		if !ok {
			c.reset()
			return
		}
		if p.behavior != nil {
			return
		}
		scale := c.cfg.KnobSensitivity * (p.Spec.Max - p.Spec.Min)
		if ev.Fine {
			scale /= c.cfg.FineDivisor
		}
		p.SetValue(p.Value() - ev.Delta.Y*scale)
	}
}

func (c *Controller) end(ev Event) {
	switch c.state {
	case DraggingModule:
		if !c.cfg.Bounds().Contains(ev.Pos) {
			c.log.Debug("module dropped outside the canvas", "module", c.module)
			break
		}
		if err := c.graph.MoveModule(c.module, c.requested); err != nil {
			c.log.Warn("could not move module", "module", c.module, "err", err)
		}
	case DraggingWireLoose:
		to, ok := c.hover, c.hovering
		if ev.Target.Kind == PortTarget && c.valid(ev.Target.Port) {
			to, ok = ev.Target.Port, true
		}
		if !ok {
			break
		}
		out, in, _ := Orient(c.fixed, to)
		if c.pulled {
			c.graph.ConnectColor(out, in, c.color)
		} else {
			c.graph.Connect(out, in)
		}
	case DraggingParam:
		if p, ok := c.activeParam(); ok && p.behavior != nil {
			p.behavior.Release(p)
		}
	}
	c.reset()
}

// cancel returns to Idle without committing anything. A param gets back the
// value it had when the drag started; a pulled wire stays disconnected.
func (c *Controller) cancel() {
	if c.state == DraggingParam {
		if p, ok := c.activeParam(); ok {
			p.SetValue(c.startValue)
			p.index = c.startIndex
		}
	}
	c.reset()
}

func (c *Controller) reset() {
	c.state = Idle
	c.hovering = false
	c.pulled = false
}

// valid reports whether the loose wire could be plugged into p.
func (c *Controller) valid(p PortRef) bool {
	out, in, ok := Orient(c.fixed, p)
	return ok && c.graph.CanConnect(out, in) == nil
}

func (c *Controller) activeParam() (*Param, bool) {
	m, ok := c.graph.Module(c.param.Module)
	if !ok || c.param.Param < 0 || c.param.Param >= len(m.Params) {
		return nil, false
	}
	return m.Params[c.param.Param], true
}

// DraggedModule returns the module being dragged and where it would be
// placed if dropped now.
func (c *Controller) DraggedModule() (id int, requested rack.Vec, ok bool) {
	if c.state != DraggingModule {
		return 0, rack.Vec{}, false
	}
	return c.module, c.requested, true
}

// LooseWire returns the fixed port and the free end of the wire being
// dragged.
func (c *Controller) LooseWire() (fixed PortRef, end rack.Vec, color rack.Color, ok bool) {
	if c.state != DraggingWireLoose {
		return PortRef{}, rack.Vec{}, rack.Color{}, false
	}
	return c.fixed, c.loose, c.color, true
}

// Hover returns the port the loose wire would be plugged into.
func (c *Controller) Hover() (PortRef, bool) {
	return c.hover, c.state == DraggingWireLoose && c.hovering
}

// ActiveParam returns the param being dragged.
func (c *Controller) ActiveParam() (module, param int, ok bool) {
	if c.state != DraggingParam {
		return 0, 0, false
	}
	return c.param.Module, c.param.Param, true
}
