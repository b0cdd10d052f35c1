package gioui

import (
	"image/color"

	"gioui.org/font"
	"gioui.org/font/gofont"
	"gioui.org/text"
	"gioui.org/unit"
)

type (
	Theme struct {
		Shaper   *text.Shaper
		Font     font.Font
		TextSize unit.Sp

		Background  color.NRGBA
		GridLine    color.NRGBA
		Module      ModuleStyle
		Knob        KnobStyle
		Switch      SwitchStyle
		Port        PortStyle
		WireWidth   float32
		LooseWidth  float32
		Alert       AlertStyles
		LabelColor  color.NRGBA
		ValueColor  color.NRGBA
		ShadowColor color.NRGBA
	}

	ModuleStyle struct {
		Bg, DraggedBg, Border color.NRGBA
		BorderWidth           float32
	}

	KnobStyle struct {
		Radius, StrokeWidth float32
		Track, Value        color.NRGBA
		Active              color.NRGBA
	}

	SwitchStyle struct {
		Size         float32
		Off, On      color.NRGBA
		Active       color.NRGBA
		IndexColor   color.NRGBA
		CornerRadius float32
	}

	PortStyle struct {
		Radius, RingWidth        float32
		Input, Output            color.NRGBA
		Free, Connected, Hovered color.NRGBA
	}

	AlertStyle struct {
		Bg, Text color.NRGBA
	}

	AlertStyles struct {
		Info, Warning, Error AlertStyle
	}
)

var fontCollection []text.FontFace = gofont.Collection()

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
var black = color.NRGBA{R: 0, G: 0, B: 0, A: 255}

var primaryColor = color.NRGBA{R: 206, G: 147, B: 216, A: 255}
var secondaryColor = color.NRGBA{R: 128, G: 222, B: 234, A: 255}
var highEmphasisTextColor = color.NRGBA{R: 222, G: 222, B: 222, A: 222}
var mediumEmphasisTextColor = color.NRGBA{R: 153, G: 153, B: 153, A: 153}

func NewTheme() *Theme {
	return &Theme{
		Shaper:   text.NewShaper(text.WithCollection(fontCollection)),
		Font:     fontCollection[6].Font,
		TextSize: unit.Sp(11),

		Background: color.NRGBA{R: 18, G: 18, B: 18, A: 255},
		GridLine:   color.NRGBA{R: 255, G: 255, B: 255, A: 8},
		Module: ModuleStyle{
			Bg:          color.NRGBA{R: 50, G: 50, B: 51, A: 255},
			DraggedBg:   color.NRGBA{R: 70, G: 70, B: 74, A: 230},
			Border:      color.NRGBA{R: 30, G: 31, B: 38, A: 255},
			BorderWidth: 2,
		},
		Knob: KnobStyle{
			Radius:      14,
			StrokeWidth: 4,
			Track:       color.NRGBA{R: 30, G: 31, B: 38, A: 255},
			Value:       primaryColor,
			Active:      white,
		},
		Switch: SwitchStyle{
			Size:         16,
			Off:          color.NRGBA{R: 30, G: 31, B: 38, A: 255},
			On:           secondaryColor,
			Active:       white,
			IndexColor:   black,
			CornerRadius: 3,
		},
		Port: PortStyle{
			Radius:    8,
			RingWidth: 3,
			Input:     color.NRGBA{R: 37, G: 37, B: 38, A: 255},
			Output:    color.NRGBA{R: 15, G: 15, B: 15, A: 255},
			Free:      mediumEmphasisTextColor,
			Connected: secondaryColor,
			Hovered:   color.NRGBA{R: 252, G: 186, B: 3, A: 255},
		},
		WireWidth:  4,
		LooseWidth: 5,
		Alert: AlertStyles{
			Info:    AlertStyle{Bg: color.NRGBA{R: 50, G: 50, B: 51, A: 255}, Text: highEmphasisTextColor},
			Warning: AlertStyle{Bg: color.NRGBA{R: 251, G: 192, B: 45, A: 255}, Text: black},
			Error:   AlertStyle{Bg: color.NRGBA{R: 207, G: 102, B: 121, A: 255}, Text: black},
		},
		LabelColor:  highEmphasisTextColor,
		ValueColor:  mediumEmphasisTextColor,
		ShadowColor: color.NRGBA{A: 192},
	}
}

// fade multiplies the alpha of c.
func fade(c color.NRGBA, amount float32) color.NRGBA {
	c.A = uint8(min(max(float32(c.A)*amount, 0), 255))
	return c
}
