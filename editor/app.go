package editor

import (
	"io"
	"log/slog"

	"github.com/vsariola/rack"
)

type (
	// App is the application context: built once in main and passed to
	// everything that needs the patch. It owns the graph and the controller
	// and keeps the player in sync with the graph. All methods must be called
	// from the GUI goroutine.
	App struct {
		registry *rack.Registry
		cfg      Config
		graph    *Graph
		ctrl     *Controller
		broker   *Broker
		alerts   Alerts
		log      *slog.Logger

		filePath     string
		recoveryPath string
		lastRecovery []byte

		// engine handles of the modules the player knows about, and the
		// modules removed from the graph waiting for the player to release
		// them, keyed by handle
		handles    map[*Module]int
		nextHandle int
		pending    map[int]*pendingModule
	}

	pendingModule struct {
		module *Module
		sent   bool
	}

	Option func(*App)
)

func WithLogger(l *slog.Logger) Option { return func(a *App) { a.log = l } }
func WithConfig(c Config) Option       { return func(a *App) { a.cfg = c } }

// WithRecoveryFile sets where SaveRecovery writes the patch.
func WithRecoveryFile(path string) Option { return func(a *App) { a.recoveryPath = path } }

// NewApp creates an app with an empty patch. broker may be nil, in which case
// there is no player and removed modules are destroyed immediately.
func NewApp(registry *rack.Registry, broker *Broker, opts ...Option) *App {
	a := &App{
		registry: registry,
		cfg:      DefaultConfig(),
		broker:   broker,
		log:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
		handles:  make(map[*Module]int),
		pending:  make(map[int]*pendingModule),
	}
	for _, o := range opts {
		o(a)
	}
	a.graph = NewGraph(a.cfg)
	a.graph.SetListener(a)
	a.ctrl = NewController(a.graph, a.cfg, a.log.With("component", "controller"))
	return a
}

func (a *App) Registry() *rack.Registry    { return a.registry }
func (a *App) Config() Config              { return a.cfg }
func (a *App) Graph() *Graph               { return a.graph }
func (a *App) Controller() *Controller     { return a.ctrl }
func (a *App) Alerts() *Alerts             { return &a.alerts }
func (a *App) Logger() *slog.Logger        { return a.log }
func (a *App) FilePath() string            { return a.filePath }
func (a *App) SetFilePath(path string)     { a.filePath = path }
func (a *App) PendingReleases() int        { return len(a.pending) }
func (a *App) Broker() *Broker             { return a.broker }
func (a *App) Draw(s Surface)              { a.ctrl.Draw(s) }
func (a *App) Push(ev Event)               { a.ctrl.Push(ev) }
func (a *App) HitTest(pos rack.Vec) Target { return a.graph.HitTest(pos) }

// Update handles the queued pointer events and resends the messages the
// player did not have room for.
func (a *App) Update() {
	a.ctrl.Update()
	a.flush()
}

// AddModule adds a module of the given model; failures become alerts.
func (a *App) AddModule(model *rack.Model, pos rack.Vec) (int, bool) {
	id, err := a.graph.AddModule(model, pos)
	if err != nil {
		a.log.Warn("could not add module", "model", model.String(), "err", err)
		a.alerts.AddNamed("AddModule", "Could not add "+model.Name+": "+err.Error(), Warning)
		return 0, false
	}
	return id, true
}

// ProcessMsg handles a message from the player.
func (a *App) ProcessMsg(msg any) {
	switch m := msg.(type) {
	case ModuleReleasedMsg:
		p, ok := a.pending[m.Handle]
		if !ok {
			return
		}
		delete(a.pending, m.Handle)
		a.destroy(p.module)
	case MsgToModel:
		if m.Data != nil {
			m.Data()
		}
	}
}

// Close destroys all the modules. The player must have been stopped.
func (a *App) Close() {
	a.graph.SetListener(nil)
	a.graph.Clear()
	clear(a.handles)
	for h, p := range a.pending {
		delete(a.pending, h)
		a.destroy(p.module)
	}
}

// ModuleAdded hands the engine to the player.
func (a *App) ModuleAdded(m *Module) {
	if a.broker == nil {
		return
	}
	a.nextHandle++
	a.handles[m] = a.nextHandle
	if !TrySend(a.broker.ToPlayer, any(AddModuleMsg{Handle: a.nextHandle, Engine: m.engine, IO: m.io})) {
		a.log.Error("player queue full, module will stay silent", "module", m.ID)
		a.alerts.AddNamed("PlayerQueueFull", "Audio engine is not responding", Error)
	}
}

// ModuleRemoved defers destroying the module until the player has released
// it.
func (a *App) ModuleRemoved(m *Module) {
	if a.broker == nil {
		a.destroy(m)
		return
	}
	h, ok := a.handles[m]
	if !ok {
		a.destroy(m)
		return
	}
	delete(a.handles, m)
	p := &pendingModule{module: m}
	p.sent = TrySend(a.broker.ToPlayer, any(RemoveModuleMsg{Handle: h}))
	a.pending[h] = p
}

// WiresChanged sends the new routes to the player.
func (a *App) WiresChanged() {
	if a.broker == nil {
		return
	}
	if !TrySend(a.broker.ToPlayer, any(a.routes())) {
		a.log.Error("player queue full, routes not updated")
	}
}

func (a *App) routes() RoutesMsg {
	routes := make([]Route, 0, a.graph.NumWires())
	for w := range a.graph.Wires() {
		out, ok1 := a.graph.Module(w.Out.Module)
		in, ok2 := a.graph.Module(w.In.Module)
		if !ok1 || !ok2 {
			continue
		}
		routes = append(routes, Route{From: &out.io.Outputs[w.Out.Index], To: &in.io.Inputs[w.In.Index]})
	}
	return RoutesMsg{Routes: routes}
}

func (a *App) flush() {
	for h, p := range a.pending {
		if !p.sent {
			p.sent = TrySend(a.broker.ToPlayer, any(RemoveModuleMsg{Handle: h}))
		}
	}
}

func (a *App) destroy(m *Module) {
	if err := m.close(); err != nil {
		a.log.Warn("closing module engine failed", "module", m.ID, "err", err)
	}
}

// setGraph replaces the edited graph, e.g. after loading a patch. The old
// modules are released and the new ones handed to the player.
func (a *App) setGraph(g *Graph) {
	a.ctrl.SetGraph(g)
	old := a.graph
	old.Clear()
	old.SetListener(nil)
	a.graph = g
	g.SetListener(a)
	for m := range g.Modules() {
		a.ModuleAdded(m)
	}
	a.WiresChanged()
}
