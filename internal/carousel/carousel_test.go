package carousel

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runUntilIdle(t *testing.T, c *Carousel) int {
	t.Helper()
	ticks := 0
	for c.Tick() {
		ticks++
		require.Less(t, ticks, 10000, "animation did not settle")
	}
	return ticks
}

func TestCarousel_DisplayIndexAlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, n := range []int{1, 2, 3, 5, 6, 17} {
		c := New(n)
		for i := 0; i < 2000; i++ {
			switch rng.Intn(4) {
			case 0:
				c.Press()
			case 1:
				c.Drag(rng.Float64()*800 - 400)
			case 2:
				c.Release()
			default:
				c.Tick()
			}
			require.GreaterOrEqual(t, c.DisplayIndex(), 0, "n=%d", n)
			require.Less(t, c.DisplayIndex(), n, "n=%d", n)
			require.Less(t, c.Offset(), SlotWidth)
			require.Greater(t, c.Offset(), -SlotWidth)
		}
	}
}

func TestCarousel_DragOneSlotRight(t *testing.T) {
	c := New(10)
	c.Press()
	for i := 0; i < 26; i++ {
		c.Drag(5) // 26 * 5 = 130, velocity 100 px/s
	}
	c.Drag(0) // stop before release
	c.Release()
	runUntilIdle(t, c)

	assert.Equal(t, 0.0, c.Offset())
	assert.Equal(t, 9, c.DisplayIndex())
	assert.Equal(t, PhaseIdle, c.Phase())
}

func TestCarousel_DragOneSlotLeft(t *testing.T) {
	c := New(10)
	c.Press()
	c.Drag(-130)
	c.Drag(0)
	c.Release()
	runUntilIdle(t, c)

	assert.Equal(t, 0.0, c.Offset())
	assert.Equal(t, 1, c.DisplayIndex())
}

func TestCarousel_ReleaseBelowThresholdSnaps(t *testing.T) {
	c := New(4)
	c.Press()
	c.Drag(0.5) // velocity 10 px/s
	c.Release()
	assert.Equal(t, PhaseIdle, c.Phase())
	assert.Equal(t, 0.0, c.Offset())
	assert.Equal(t, 0, c.DisplayIndex())
}

func TestCarousel_SnapRoundsToNearestSlot(t *testing.T) {
	c := New(8)
	c.Press()
	c.Drag(80)
	c.Drag(0)
	c.Release()

	// 80 rounds to one slot; the residual eases in from the left.
	assert.Equal(t, 7, c.DisplayIndex())
	assert.Equal(t, PhaseSettling, c.Phase())
	assert.InDelta(t, -50, c.Offset(), 1e-9)

	runUntilIdle(t, c)
	assert.Equal(t, 0.0, c.Offset())
	assert.Equal(t, 7, c.DisplayIndex())
}

func TestCarousel_SnapAlreadyThere(t *testing.T) {
	c := New(3)
	c.Press()
	c.Drag(4)
	c.Drag(0)
	c.Release()
	assert.Equal(t, PhaseIdle, c.Phase())
	assert.Equal(t, 0.0, c.Offset())
}

func TestCarousel_FlickDecays(t *testing.T) {
	c := New(20)
	c.Press()
	c.Drag(20) // 400 px/s
	c.Release()
	require.Equal(t, PhaseDecaying, c.Phase())
	assert.Equal(t, DecayInterval, c.Interval())

	require.True(t, c.Tick())
	assert.InDelta(t, 20+400*DecayDT, c.Offset(), 1e-9)
	assert.InDelta(t, 400*DecayFactor, c.Velocity(), 1e-9)

	runUntilIdle(t, c)
	assert.Equal(t, 0.0, c.Offset())
	assert.Equal(t, PhaseIdle, c.Phase())
	// 400 px/s decaying by 0.92 travels about 150 px in total.
	assert.Equal(t, 19, c.DisplayIndex())
}

func TestCarousel_PressStopsAnimation(t *testing.T) {
	c := New(5)
	c.Drag(50)
	c.Release()
	require.True(t, c.Animating())

	c.Press()
	assert.Equal(t, PhaseDragging, c.Phase())
	assert.Equal(t, 0.0, c.Velocity())
	assert.False(t, c.Tick())
}

func TestCarousel_EmptyIsNoop(t *testing.T) {
	c := New(0)
	c.Press()
	c.Drag(500)
	c.Release()
	c.CenterOn(3)
	assert.False(t, c.Tick())
	assert.Equal(t, 0, c.DisplayIndex())
	assert.Equal(t, 0.0, c.Offset())
	assert.Equal(t, [SlotCount]int{-1, -1, -1, -1, -1}, c.Bindings())
}

func TestCarousel_Bindings(t *testing.T) {
	c := New(3)
	c.CenterOn(0)
	assert.Equal(t, 1, c.DisplayIndex())
	assert.Equal(t, [SlotCount]int{1, 2, 0, 1, 2}, c.Bindings())
	assert.Equal(t, 0, c.Slot(CenterSlot))

	c.CenterOn(7)
	assert.Equal(t, 1, c.Slot(CenterSlot))
}

func TestCarousel_SetLen(t *testing.T) {
	c := New(10)
	c.CenterOn(9)
	c.SetLen(4)
	assert.Equal(t, 3, c.DisplayIndex())

	c.SetLen(0)
	assert.Equal(t, 0, c.DisplayIndex())
	assert.Equal(t, -1, c.Slot(0))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, 4, wrap(-1, 5))
	assert.Equal(t, 0, wrap(5, 5))
	assert.Equal(t, 3, wrap(-12, 5))
}
