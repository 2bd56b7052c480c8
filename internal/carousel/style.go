package carousel

import (
	"image/color"
	"math"
)

// Tier is the emphasis band of a slot by distance from center
type Tier int

const (
	TierNear Tier = iota
	TierMid
	TierFar
)

// Tier bounds and styling
const (
	NearDistance = 65.0
	MidDistance  = 130.0
	FarFalloff   = 300.0
	MinFarAlpha  = 0.4
	MinEdgeAlpha = 0.2
)

// Border colors per tier
var (
	NearBorder = color.NRGBA{R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF}
	MidBorder  = color.NRGBA{R: 0x87, G: 0xCE, B: 0xEB, A: 0xFF}
	FarBorder  = color.NRGBA{R: 0xDD, G: 0xDD, B: 0xDD, A: 0xFF}
)

// SlotStyle is how one slot is drawn
type SlotStyle struct {
	X           float64
	Distance    float64
	Tier        Tier
	Opacity     float64
	Scale       float64
	Border      color.NRGBA
	BorderWidth float32
}

// Styles maps every slot to its visual style for the current offset.
func (c *Carousel) Styles() [SlotCount]SlotStyle {
	return StylesAt(c.offset)
}

// StylesAt computes slot styles for an arbitrary offset.
func StylesAt(offset float64) [SlotCount]SlotStyle {
	var out [SlotCount]SlotStyle
	for i, pos := range SlotPositions {
		x := pos + offset
		d := math.Abs(x + SlotSize/2 - CenterX)
		st := SlotStyle{X: x, Distance: d}

		switch {
		case d < NearDistance:
			st.Tier, st.Opacity, st.Scale = TierNear, 1.0, 1.1
			st.Border, st.BorderWidth = NearBorder, 3
		case d < MidDistance:
			st.Tier, st.Opacity, st.Scale = TierMid, 0.8, 0.95
			st.Border, st.BorderWidth = MidBorder, 2
		default:
			st.Tier, st.Opacity, st.Scale = TierFar, math.Max(MinFarAlpha, 1-d/FarFalloff), 0.8
			st.Border, st.BorderWidth = FarBorder, 1
		}

		if (i == 0 && offset > 0) || (i == SlotCount-1 && offset < 0) {
			st.Opacity = math.Max(MinEdgeAlpha, 1-math.Abs(offset)/SlotWidth)
		}
		out[i] = st
	}
	return out
}
