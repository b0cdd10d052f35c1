package gioui

import (
	"image"
	"time"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"github.com/vsariola/rack/editor"
)

var alertMargin = layout.UniformInset(unit.Dp(6))
var alertInset = layout.UniformInset(unit.Dp(6))

// layoutAlerts stacks the alerts at the bottom of the window, newest at the
// bottom.
func layoutAlerts(gtx C, th *Theme, alerts *editor.Alerts) D {
	alerts.Expire(gtx.Now)
	if alerts.Len() == 0 {
		return D{}
	}
	gtx.Execute(op.InvalidateCmd{At: gtx.Now.Add(100 * time.Millisecond)})
	bottom := gtx.Constraints.Max.Y
	gtx.Constraints.Min = image.Point{}
	var items []editor.Alert
	for _, alert := range alerts.All() {
		items = append(items, alert)
	}
	for i := len(items) - 1; i >= 0; i-- {
		alert := items[i]
		style := th.Alert.Info
		switch alert.Priority {
		case editor.Warning:
			style = th.Alert.Warning
		case editor.Error:
			style = th.Alert.Error
		}
		macro := op.Record(gtx.Ops)
		dims := alertMargin.Layout(gtx, func(gtx C) D {
			gtx.Constraints.Min.X = gtx.Constraints.Max.X
			return layout.Stack{Alignment: layout.W}.Layout(gtx,
				layout.Expanded(func(gtx C) D {
					paint.FillShape(gtx.Ops, style.Bg, clip.Rect{Max: gtx.Constraints.Min}.Op())
					return D{Size: gtx.Constraints.Min}
				}),
				layout.Stacked(func(gtx C) D {
					return alertInset.Layout(gtx, func(gtx C) D {
						paint.ColorOp{Color: style.Text}.Add(gtx.Ops)
						return widget.Label{MaxLines: 1}.Layout(gtx, th.Shaper, th.Font, th.TextSize*1.3, alert.Message, op.CallOp{})
					})
				}),
			)
		})
		call := macro.Stop()
		bottom -= dims.Size.Y
		stack := op.Offset(image.Pt(0, bottom)).Push(gtx.Ops)
		call.Add(gtx.Ops)
		stack.Pop()
	}
	return D{Size: gtx.Constraints.Max}
}
