package gioui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/x/explorer"
	"github.com/vsariola/rack/editor"
)

// Window is the main window of the editor: the canvas, the alerts and the
// global key bindings.
type Window struct {
	*editor.App
	Theme     *Theme
	Canvas    *Canvas
	Explorer  *explorer.Explorer
	Exploring bool
}

// NewWindow creates the window for an app. The app must have a broker: file
// dialogs report back through it.
func NewWindow(a *editor.App) *Window {
	return &Window{
		App:    a,
		Theme:  NewTheme(),
		Canvas: NewCanvas(),
	}
}

// Main runs the window until it is closed. It must be called from a
// goroutine other than the one running app.Main.
func (win *Window) Main() {
	interval := win.Config().RecoveryInterval
	if interval <= 0 {
		interval = time.Second * 30
	}
	recoveryTicker := time.NewTicker(interval)
	defer recoveryTicker.Stop()
	var ops op.Ops
	titlePath := win.FilePath()
	w := new(app.Window)
	w.Option(app.Title(titleFromPath(titlePath)), app.Size(unit.Dp(1280), unit.Dp(800)))
	win.Explorer = explorer.NewExplorer(w)
	acks := make(chan struct{})
	events := make(chan event.Event)
	go func() {
		for {
			ev := w.Event()
			events <- ev
			<-acks
			if _, ok := ev.(app.DestroyEvent); ok {
				return
			}
		}
	}()
F:
	for {
		select {
		case e := <-win.Broker().ToModel:
			win.ProcessMsg(e)
			w.Invalidate()
		case e := <-events:
			switch e := e.(type) {
			case app.DestroyEvent:
				acks <- struct{}{}
				if e.Err != nil {
					win.Logger().Error("window destroyed", "err", e.Err)
				}
				break F
			case app.FrameEvent:
				if titlePath != win.FilePath() {
					titlePath = win.FilePath()
					w.Option(app.Title(titleFromPath(titlePath)))
				}
				gtx := app.NewContext(&ops, e)
				win.Layout(gtx)
				e.Frame(gtx.Ops)
			}
			acks <- struct{}{}
		case <-recoveryTicker.C:
			if err := win.SaveRecovery(); err != nil {
				win.Logger().Warn("could not save recovery file", "err", err)
			}
		}
	}
	if err := win.SaveRecovery(); err != nil {
		win.Logger().Warn("could not save recovery file", "err", err)
	}
}

func titleFromPath(path string) string {
	if path == "" {
		return "Rack"
	}
	return fmt.Sprintf("Rack - %s", path)
}

func (win *Window) Layout(gtx C) {
	win.Canvas.Layout(gtx, win.Theme, win.App)
	layoutAlerts(gtx, win.Theme, win.Alerts())
	for {
		ev, ok := gtx.Event(
			key.Filter{Name: "", Optional: key.ModShortcut | key.ModShift},
		)
		if !ok {
			break
		}
		if e, ok := ev.(key.Event); ok {
			win.KeyEvent(e)
		}
	}
}

func (win *Window) KeyEvent(e key.Event) {
	if e.State != key.Press || win.Exploring {
		return
	}
	action, ok := keyBindingMap[e]
	if !ok {
		return
	}
	win.Do(action)
}

// Do runs a named action, as bound in keybindings.yml.
func (win *Window) Do(action string) {
	target := win.HitTest(win.Canvas.Pointer())
	switch action {
	case "SavePatch":
		if win.FilePath() == "" {
			win.saveAs()
			break
		}
		win.SavePatch(win.FilePath())
	case "SavePatchAs":
		win.saveAs()
	case "OpenPatch":
		win.open()
	case "NewPatch":
		win.NewPatch()
	case "DeleteModule":
		win.DeleteModule(target.Module).Do()
	case "CloneModule":
		win.CloneModule(target.Module).Do()
	case "ResetModule":
		win.ResetModule(target.Module).Do()
	case "DisconnectModule":
		win.DisconnectModule(target.Module).Do()
	case "Cancel":
		win.Push(editor.Event{Kind: editor.Cancel, Pos: win.Canvas.Pointer()})
	default:
		if n, ok := strings.CutPrefix(action, "AddModule"); ok {
			i, err := strconv.Atoi(n)
			if err != nil || i < 1 || i > win.Registry().Len() {
				return
			}
			win.AddModule(win.Registry().At(i-1), win.Canvas.Pointer())
		}
	}
}

func (win *Window) saveAs() {
	filename := "patch.yml"
	if p := win.FilePath(); p != "" {
		filename = p
	}
	win.explorerCreateFile(func(wc io.WriteCloser) {
		// on desktop the explorer hands out plain files, which are saved
		// atomically by path
		if f, ok := wc.(*os.File); ok {
			f.Close()
			win.SavePatch(f.Name())
			return
		}
		defer wc.Close()
		if err := win.WritePatch(wc, editor.YAML); err != nil {
			win.Alerts().AddNamed("SavePatch", err.Error(), editor.Error)
		}
	}, filename)
}

func (win *Window) open() {
	win.explorerChooseFile(func(rc io.ReadCloser) {
		if f, ok := rc.(*os.File); ok {
			f.Close()
			win.LoadPatch(f.Name())
			return
		}
		defer rc.Close()
		win.ReadPatch(rc)
	}, ".yml", ".yaml", ".json")
}

func (win *Window) explorerChooseFile(success func(io.ReadCloser), extensions ...string) {
	win.Exploring = true
	go func() {
		file, err := win.Explorer.ChooseFile(extensions...)
		win.Broker().ToModel <- editor.MsgToModel{Data: func() {
			win.Exploring = false
			win.explorerDone(err, func() { success(file) })
		}}
	}()
}

func (win *Window) explorerCreateFile(success func(io.WriteCloser), filename string) {
	win.Exploring = true
	go func() {
		file, err := win.Explorer.CreateFile(filename)
		win.Broker().ToModel <- editor.MsgToModel{Data: func() {
			win.Exploring = false
			win.explorerDone(err, func() { success(file) })
		}}
	}()
}

func (win *Window) explorerDone(err error, success func()) {
	if err == nil {
		success()
		return
	}
	if !errors.Is(err, explorer.ErrUserDecline) {
		win.Alerts().Add(err.Error(), editor.Error)
	}
}
