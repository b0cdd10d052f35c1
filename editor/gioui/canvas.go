package gioui

import (
	"image"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/vsariola/rack"
	"github.com/vsariola/rack/editor"
)

type (
	// Canvas is the scrollable area where the modules live. It translates the
	// pointer events of gio into editor events and draws the patch.
	Canvas struct {
		scroll  f32.Point
		pointer rack.Vec // last known pointer position, in canvas units

		pressed bool
		last    rack.Vec
		origin  editor.Target
		over    editor.Target
	}

	C = layout.Context
	D = layout.Dimensions
)

func NewCanvas() *Canvas {
	return &Canvas{}
}

// Pointer returns the last position of the pointer on the canvas.
func (c *Canvas) Pointer() rack.Vec { return c.pointer }

func (c *Canvas) Layout(gtx C, th *Theme, app *editor.App) D {
	size := gtx.Constraints.Max
	scale := gtx.Metric.PxPerDp
	defer clip.Rect(image.Rectangle{Max: size}).Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, th.Background)
	event.Op(gtx.Ops, c)
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  c,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Leave | pointer.Move | pointer.Scroll,
			ScrollX: pointer.ScrollRange{Min: -1e6, Max: 1e6},
			ScrollY: pointer.ScrollRange{Min: -1e6, Max: 1e6},
		})
		if !ok {
			break
		}
		if e, ok := ev.(pointer.Event); ok {
			c.pointerEvent(e, scale, app)
		}
	}
	cfg := app.Config()
	bounds := cfg.Bounds()
	maxScroll := f32.Pt(
		max(bounds.Max().X*scale-float32(size.X), 0),
		max(bounds.Max().Y*scale-float32(size.Y), 0),
	)
	c.scroll.X = min(max(c.scroll.X, 0), maxScroll.X)
	c.scroll.Y = min(max(c.scroll.Y, 0), maxScroll.Y)
	app.Update()
	s := &surface{gtx: gtx, theme: th, scale: scale, scroll: c.scroll}
	c.drawGrid(s, app.Config(), size)
	app.Draw(s)
	if c.pressed {
		pointer.CursorGrabbing.Add(gtx.Ops)
	}
	return D{Size: size}
}

func (c *Canvas) toCanvas(p f32.Point, scale float32) rack.Vec {
	return rack.V((p.X+c.scroll.X)/scale, (p.Y+c.scroll.Y)/scale)
}

func (c *Canvas) pointerEvent(e pointer.Event, scale float32, app *editor.App) {
	pos := c.toCanvas(e.Position, scale)
	c.pointer = pos
	fine := e.Modifiers.Contain(key.ModShortcut)
	switch e.Kind {
	case pointer.Press:
		if c.pressed {
			return
		}
		button := editor.LeftButton
		if e.Buttons.Contain(pointer.ButtonSecondary) {
			button = editor.RightButton
		}
		c.pressed, c.last = true, pos
		c.origin = app.HitTest(pos)
		c.over = c.origin
		app.Push(editor.Event{Kind: editor.PointerDown, Pos: pos, Button: button, Fine: fine, Target: c.origin})
	case pointer.Drag:
		if !c.pressed {
			return
		}
		target := app.HitTest(pos)
		if target != c.over {
			app.Push(editor.Event{Kind: editor.DragLeave, Pos: pos, Target: c.over, Origin: c.origin})
			app.Push(editor.Event{Kind: editor.DragEnter, Pos: pos, Target: target, Origin: c.origin})
			c.over = target
		}
		app.Push(editor.Event{Kind: editor.DragMove, Pos: pos, Delta: pos.Sub(c.last), Fine: fine, Target: target})
		c.last = pos
	case pointer.Release:
		if !c.pressed {
			return
		}
		c.pressed = false
		target := app.HitTest(pos)
		app.Push(editor.Event{Kind: editor.DragDrop, Pos: pos, Target: target, Origin: c.origin})
		app.Push(editor.Event{Kind: editor.DragEnd, Pos: pos, Target: target})
	case pointer.Leave:
		// a drag may continue outside the canvas while a button is held
		if e.Buttons != 0 {
			return
		}
		c.pressed = false
		app.Push(editor.Event{Kind: editor.Cancel, Pos: pos})
	case pointer.Cancel:
		c.pressed = false
		app.Push(editor.Event{Kind: editor.Cancel, Pos: pos})
	case pointer.Scroll:
		if c.pressed {
			return
		}
		if e.Modifiers.Contain(key.ModShift) {
			e.Scroll.X, e.Scroll.Y = e.Scroll.Y, e.Scroll.X
		}
		c.scroll = c.scroll.Add(e.Scroll)
	}
}

func (c *Canvas) drawGrid(s *surface, cfg editor.Config, size image.Point) {
	for row := range cfg.Rows + 1 {
		y := int(float32(row)*cfg.RowHeight*s.scale - s.scroll.Y)
		if y < 0 || y > size.Y {
			continue
		}
		paint.FillShape(s.gtx.Ops, s.theme.GridLine, clip.Rect{Min: image.Pt(0, y), Max: image.Pt(size.X, y+1)}.Op())
	}
}
