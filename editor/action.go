package editor

import "github.com/vsariola/rack"

type (
	// Action describes a user action that can be performed on the app, which
	// can be initiated by calling the Do() method. It is usually initiated by a
	// key press or a menu item. Action advertises whether it is enabled, so
	// UI can e.g. gray out menu items when the underlying action is not
	// allowed. The underlying Doer can optionally implement the Enabler
	// interface to decide if the action is enabled or not; if it does not
	// implement the Enabler interface, the action is always allowed.
	Action struct {
		doer Doer
	}

	// Doer is an interface that defines a single Do() method, which is called
	// when an action is performed.
	Doer interface {
		Do()
	}

	// Enabler is an interface that defines a single Enabled() method, which
	// is used by the UI to check if an Action is enabled or not.
	Enabler interface {
		Enabled() bool
	}
)

func MakeAction(doer Doer) Action {
	return Action{doer: doer}
}

func (a Action) Do() {
	e, ok := a.doer.(Enabler)
	if ok && !e.Enabled() {
		return
	}
	if a.doer != nil {
		a.doer.Do()
	}
}

func (a Action) Enabled() bool {
	if a.doer == nil {
		return false // no doer, not allowed
	}
	e, ok := a.doer.(Enabler)
	if !ok {
		return true // not enabler, always allowed
	}
	return e.Enabled()
}

// moduleAction is the common part of the actions acting on one module.
type moduleAction struct {
	app *App
	id  int
}

func (m moduleAction) Enabled() bool {
	_, ok := m.app.graph.Module(m.id)
	return ok
}

func (m moduleAction) module() *Module {
	mod, _ := m.app.graph.Module(m.id)
	return mod
}

// deleteModule
type deleteModule struct{ moduleAction }

func (a *App) DeleteModule(id int) Action { return MakeAction(deleteModule{moduleAction{a, id}}) }
func (m deleteModule) Do()                { m.app.graph.RemoveModule(m.id) }

// disconnectModule
type disconnectModule struct{ moduleAction }

func (a *App) DisconnectModule(id int) Action {
	return MakeAction(disconnectModule{moduleAction{a, id}})
}
func (m disconnectModule) Do() { m.app.graph.DisconnectModule(m.id) }

// resetModule
type resetModule struct{ moduleAction }

func (a *App) ResetModule(id int) Action { return MakeAction(resetModule{moduleAction{a, id}}) }
func (m resetModule) Do()                { m.module().ResetParams() }

// cloneModule adds a new module of the same model with the same params,
// as near to the right of the original as there is room.
type cloneModule struct{ moduleAction }

func (a *App) CloneModule(id int) Action { return MakeAction(cloneModule{moduleAction{a, id}}) }
func (m cloneModule) Do() {
	src := m.module()
	id, ok := m.app.AddModule(src.Model, src.Pos().Add(rack.V(src.Size().X, 0)))
	if !ok {
		return
	}
	clone, _ := m.app.graph.Module(id)
	clone.SetParamValues(src.ParamValues())
}

// clearPatch
type clearPatch App

func (a *App) ClearPatch() Action   { return MakeAction((*clearPatch)(a)) }
func (m *clearPatch) Enabled() bool { return m.graph.NumModules() > 0 }
func (m *clearPatch) Do()           { m.graph.Clear() }
