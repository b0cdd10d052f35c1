package editor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsariola/rack"
	"github.com/vsariola/rack/editor"
)

func TestPlayerRoutesSignals(t *testing.T) {
	m := newTestModels(t)
	broker := editor.NewBroker()
	app := editor.NewApp(m.reg, broker)
	player := editor.NewPlayer(broker)
	g := app.Graph()
	src := add(t, g, m.Source, 0, 0)
	sink := add(t, g, m.Sink, 300, 0)
	g.Connect(editor.Out(src, 0), editor.In(sink, 0))
	buf := make(rack.AudioBuffer, 4)
	player.Process(buf)
	assert.Equal(t, 2, player.NumModules())
	// the wire delays the signal by one sample
	assert.Equal(t, [2]float32{0, 0}, buf[0])
	assert.Equal(t, [2]float32{3, 3}, buf[3])

	mustModule(t, g, src).Params[0].SetValue(-2)
	player.Process(buf)
	assert.Equal(t, [2]float32{-2, -2}, buf[3])

	g.DisconnectPort(editor.In(sink, 0))
	player.Process(buf)
	assert.Equal(t, [2]float32{0, 0}, buf[3], "unwired input reads zero")
	assert.Equal(t, float32(0), mustModule(t, g, sink).Signal(editor.Input, 0))
}

func TestRemovedModuleIsDestroyedAfterRelease(t *testing.T) {
	m := newTestModels(t)
	broker := editor.NewBroker()
	app := editor.NewApp(m.reg, broker)
	player := editor.NewPlayer(broker)
	id := add(t, app.Graph(), m.A, 0, 0)
	player.Process(make(rack.AudioBuffer, 1))
	require.Equal(t, 1, player.NumModules())

	app.Graph().RemoveModule(id)
	assert.Equal(t, 0, m.counter.closed, "player may still be using the engine")
	assert.Equal(t, 1, app.PendingReleases())

	player.Process(make(rack.AudioBuffer, 1))
	assert.Equal(t, 0, player.NumModules())
	msg, ok := editor.TimeoutReceive(broker.ToModel, time.Second)
	require.True(t, ok)
	app.ProcessMsg(msg)
	assert.Equal(t, 1, m.counter.closed)
	assert.Equal(t, 0, app.PendingReleases())
}

func TestReleaseOfPreviousPatchKeepsReusedID(t *testing.T) {
	m := newTestModels(t)
	broker := editor.NewBroker()
	app := editor.NewApp(m.reg, broker)
	player := editor.NewPlayer(broker)
	old := add(t, app.Graph(), m.A, 0, 0)
	player.Process(make(rack.AudioBuffer, 1))
	app.NewPatch()
	id := add(t, app.Graph(), m.Sink, 0, 0)
	require.Equal(t, old, id, "a new graph numbers its modules from the start")
	player.Process(make(rack.AudioBuffer, 1))
	require.Equal(t, 1, player.NumModules())
	app.Graph().RemoveModule(id)
	assert.Equal(t, 2, app.PendingReleases())

	msg, ok := editor.TimeoutReceive(broker.ToModel, time.Second)
	require.True(t, ok)
	app.ProcessMsg(msg)
	assert.Equal(t, 1, m.counter.closed)
	assert.Equal(t, 1, app.PendingReleases(), "the engine still held by the player stays alive")
	assert.Equal(t, 1, player.NumModules())

	player.Process(make(rack.AudioBuffer, 1))
	assert.Equal(t, 0, player.NumModules())
	msg, ok = editor.TimeoutReceive(broker.ToModel, time.Second)
	require.True(t, ok)
	app.ProcessMsg(msg)
	assert.Equal(t, 2, m.counter.closed)
	assert.Equal(t, 0, app.PendingReleases())
}

func TestRemovedModuleWithoutBrokerIsDestroyedImmediately(t *testing.T) {
	m := newTestModels(t)
	app := m.newApp()
	id := add(t, app.Graph(), m.A, 0, 0)
	app.Graph().RemoveModule(id)
	assert.Equal(t, 1, m.counter.closed)
	assert.Equal(t, 0, app.PendingReleases())
}

func TestCloseDestroysPendingModules(t *testing.T) {
	m := newTestModels(t)
	broker := editor.NewBroker()
	app := editor.NewApp(m.reg, broker)
	id := add(t, app.Graph(), m.A, 0, 0)
	add(t, app.Graph(), m.B, 300, 0)
	app.Graph().RemoveModule(id)
	app.Close()
	assert.Equal(t, 2, m.counter.closed)
	assert.Equal(t, 0, app.PendingReleases())
}

func TestLoadingPatchHandsModulesToPlayer(t *testing.T) {
	m := newTestModels(t)
	broker := editor.NewBroker()
	app := editor.NewApp(m.reg, broker)
	player := editor.NewPlayer(broker)
	add(t, app.Graph(), m.A, 0, 0)
	err := app.LoadDocument(&rack.Patch{
		Version: rack.DocumentVersion,
		Modules: []rack.ModuleRecord{
			{ID: 1, Plugin: "Test", Model: "Source", Params: []float32{4}},
			{ID: 2, Plugin: "Test", Model: "Sink", X: 300},
		},
		Wires: []rack.WireRecord{{OutputModuleID: 1, OutputPort: 0, InputModuleID: 2, InputPort: 0}},
	})
	require.NoError(t, err)
	buf := make(rack.AudioBuffer, 3)
	player.Process(buf)
	assert.Equal(t, 2, player.NumModules())
	assert.Equal(t, [2]float32{4, 4}, buf[2])
	msg, ok := editor.TimeoutReceive(broker.ToModel, time.Second)
	require.True(t, ok)
	app.ProcessMsg(msg)
	assert.Equal(t, 1, m.counter.closed, "module of the previous patch is destroyed after release")
}

func TestTrySendDoesNotBlock(t *testing.T) {
	c := make(chan int, 1)
	assert.True(t, editor.TrySend(c, 1))
	assert.False(t, editor.TrySend(c, 2))
	_, ok := editor.TimeoutReceive(make(chan int), time.Millisecond)
	assert.False(t, ok)
}

func TestMsgToModelRunsOnProcess(t *testing.T) {
	m := newTestModels(t)
	app := m.newApp()
	ran := false
	app.ProcessMsg(editor.MsgToModel{Data: func() { ran = true }})
	app.ProcessMsg(editor.MsgToModel{})
	assert.True(t, ran)
}
