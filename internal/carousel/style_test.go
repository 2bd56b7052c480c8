package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStylesAt_Rest(t *testing.T) {
	st := StylesAt(0)

	// Slot 2 sits at x=260, its center 60 px right of the visual center.
	assert.Equal(t, TierNear, st[2].Tier)
	assert.Equal(t, 1.0, st[2].Opacity)
	assert.Equal(t, 1.1, st[2].Scale)
	assert.Equal(t, NearBorder, st[2].Border)
	assert.Equal(t, float32(3), st[2].BorderWidth)

	// Slot 1 center is at 190, d=70.
	assert.Equal(t, TierMid, st[1].Tier)
	assert.Equal(t, 0.8, st[1].Opacity)
	assert.Equal(t, 0.95, st[1].Scale)
	assert.Equal(t, MidBorder, st[1].Border)

	// Slot 0 center is at 60, d=200, so the falloff is below the minimum.
	assert.Equal(t, TierFar, st[0].Tier)
	assert.Equal(t, MinFarAlpha, st[0].Opacity)
	assert.Equal(t, 0.8, st[0].Scale)
	assert.Equal(t, FarBorder, st[0].Border)

	// Slot 4 center is at 580, d=320, clamped to the far minimum.
	assert.Equal(t, MinFarAlpha, st[4].Opacity)
}

func TestStylesAt_FarFalloff(t *testing.T) {
	// Slot 3 moves to x=340, center 400, d=140.
	st := StylesAt(-50)
	assert.Equal(t, TierFar, st[3].Tier)
	assert.InDelta(t, 1-140.0/300, st[3].Opacity, 1e-9)
}

func TestStylesAt_EdgeFade(t *testing.T) {
	st := StylesAt(65)
	assert.InDelta(t, 0.5, st[0].Opacity, 1e-9)
	assert.NotEqual(t, 0.5, st[4].Opacity)

	st = StylesAt(-120)
	assert.InDelta(t, MinEdgeAlpha, st[4].Opacity, 1e-9)
}

func TestStyles_FollowsOffset(t *testing.T) {
	c := New(5)
	c.Drag(-60)
	st := c.Styles()
	assert.Equal(t, 200.0, st[2].X)
	// Slot 3 moved to x=330, d=130: mid boundary excluded.
	assert.Equal(t, TierFar, st[3].Tier)
}
