package gioui

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget"
	"gioui.org/x/stroke"
	"github.com/vsariola/rack"
	"github.com/vsariola/rack/editor"
)

// surface paints what the controller draws. Canvas coordinates are scaled
// by scale and then offset by the scroll position.
type surface struct {
	gtx    C
	theme  *Theme
	scale  float32
	scroll f32.Point
}

func (s *surface) pt(v rack.Vec) f32.Point {
	return f32.Pt(v.X*s.scale-s.scroll.X, v.Y*s.scale-s.scroll.Y)
}

func (s *surface) rect(r rack.Rect) image.Rectangle {
	return image.Rectangle{Min: s.pt(r.Pos).Round(), Max: s.pt(r.Max()).Round()}
}

func (s *surface) Module(m *editor.Module, box rack.Rect, dragged bool) {
	r := s.rect(box)
	bg := s.theme.Module.Bg
	if dragged {
		bg = s.theme.Module.DraggedBg
	}
	paint.FillShape(s.gtx.Ops, s.theme.Module.Border, clip.Rect(r).Op())
	paint.FillShape(s.gtx.Ops, bg, clip.Rect(r.Inset(int(s.theme.Module.BorderWidth*s.scale))).Op())
	s.label(m.Model.Name, s.pt(box.Pos.Add(rack.V(4, 4))), s.theme.LabelColor)
}

func (s *surface) Param(m *editor.Module, p *editor.Param, center rack.Vec, active bool) {
	c := s.pt(center)
	var r float32
	switch p.Spec.Kind {
	case rack.Knob:
		r = s.theme.Knob.Radius * s.scale
		s.knob(c, r, p.Normalized(), active)
	default:
		r = s.theme.Switch.Size * s.scale / 2
		s.switchBox(c, r, p, active)
	}
	value, unit := p.Display()
	s.label(value+unit, c.Add(f32.Pt(-r, r+2*s.scale)), s.theme.ValueColor)
}

func (s *surface) knob(center f32.Point, radius, amount float32, active bool) {
	st := s.theme.Knob
	width := st.StrokeWidth * s.scale
	s.arc(center, radius-width/2, width, 0, 1, st.Track)
	s.arc(center, radius-width/2, width, 0, amount, st.Value)
	col := st.Value
	if active {
		col = st.Active
	}
	angle := (float64(amount)*8 + 1) / 10 * 2 * math.Pi
	dir := f32.Pt(-float32(math.Sin(angle)), float32(math.Cos(angle)))
	segments := [...]stroke.Segment{
		stroke.MoveTo(center.Add(dir.Mul(radius * 0.3))),
		stroke.LineTo(center.Add(dir.Mul(radius))),
	}
	line := stroke.Stroke{
		Path:  stroke.Path{Segments: segments[:]},
		Width: width / 2,
		Cap:   stroke.FlatCap,
	}
	paint.FillShape(s.gtx.Ops, col, line.Op(s.gtx.Ops))
}

// arc strokes a part of the knob ring; start and end are in [0, 1], which
// covers 288 degrees starting from the bottom left.
func (s *surface) arc(center f32.Point, radius, width, start, end float32, col color.NRGBA) {
	end = min(max(end, 0), 1)
	if end <= start {
		return
	}
	startAngle := float64((start*8 + 1) / 10 * 2 * math.Pi)
	deltaAngle := (end - start) * 8 * math.Pi / 5
	startPt := f32.Point{X: center.X - radius*float32(math.Sin(startAngle)), Y: center.Y + radius*float32(math.Cos(startAngle))}
	segments := [...]stroke.Segment{
		stroke.MoveTo(startPt),
		stroke.ArcTo(center, deltaAngle),
	}
	st := stroke.Stroke{
		Path:  stroke.Path{Segments: segments[:]},
		Width: width,
		Cap:   stroke.FlatCap,
	}
	paint.FillShape(s.gtx.Ops, col, st.Op(s.gtx.Ops))
}

func (s *surface) switchBox(center f32.Point, half float32, p *editor.Param, active bool) {
	st := s.theme.Switch
	r := image.Rectangle{
		Min: center.Sub(f32.Pt(half, half)).Round(),
		Max: center.Add(f32.Pt(half, half)).Round(),
	}
	col := st.Off
	if p.Normalized() > 0 || (p.Spec.Kind == rack.Mode && p.DiscreteIndex() > 0) {
		col = st.On
	}
	if active {
		paint.FillShape(s.gtx.Ops, st.Active, clip.UniformRRect(r.Inset(-2), int(st.CornerRadius*s.scale)).Op(s.gtx.Ops))
	}
	paint.FillShape(s.gtx.Ops, col, clip.UniformRRect(r, int(st.CornerRadius*s.scale)).Op(s.gtx.Ops))
}

func (s *surface) Port(p editor.PortRef, center rack.Vec, state editor.PortState) {
	st := s.theme.Port
	c := s.pt(center)
	ring := st.Free
	switch state {
	case editor.PortConnected:
		ring = st.Connected
	case editor.PortHovered:
		ring = st.Hovered
	}
	inner := st.Input
	if p.Dir == editor.Output {
		inner = st.Output
	}
	r := st.Radius * s.scale
	s.circle(c, r, ring)
	s.circle(c, r-st.RingWidth*s.scale, inner)
}

func (s *surface) circle(center f32.Point, r float32, col color.NRGBA) {
	e := clip.Ellipse{
		Min: center.Sub(f32.Pt(r, r)).Round(),
		Max: center.Add(f32.Pt(r, r)).Round(),
	}
	paint.FillShape(s.gtx.Ops, col, e.Op(s.gtx.Ops))
}

func (s *surface) Wire(from, ctrl, to rack.Vec, c rack.Color, opacity float32, highlight bool) {
	width := s.theme.WireWidth
	if highlight {
		width = s.theme.LooseWidth
	}
	segments := [...]stroke.Segment{
		stroke.MoveTo(s.pt(from)),
		stroke.QuadTo(s.pt(ctrl), s.pt(to)),
	}
	st := stroke.Stroke{
		Path:  stroke.Path{Segments: segments[:]},
		Width: width * s.scale,
		Cap:   stroke.RoundCap,
	}
	paint.FillShape(s.gtx.Ops, fade(color.NRGBA(c), opacity), st.Op(s.gtx.Ops))
}

func (s *surface) label(str string, at f32.Point, col color.NRGBA) {
	defer op.Offset(at.Round()).Push(s.gtx.Ops).Pop()
	gtx := s.gtx
	gtx.Constraints = layout.Constraints{Max: image.Pt(1e4, 1e4)}
	paint.ColorOp{Color: col}.Add(gtx.Ops)
	widget.Label{MaxLines: 1}.Layout(gtx, s.theme.Shaper, s.theme.Font, s.theme.TextSize, str, op.CallOp{})
}
