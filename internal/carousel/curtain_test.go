package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurtain_DragClamps(t *testing.T) {
	c := NewCurtain(600)
	assert.Equal(t, -600.0, c.Y())

	c.Press()
	assert.True(t, c.Dragging())
	c.Drag(-50)
	assert.Equal(t, -600.0, c.Y())
	c.Drag(900)
	assert.Equal(t, 0.0, c.Y())
	assert.False(t, c.Open())
}

func TestCurtain_ReleaseSnap(t *testing.T) {
	tests := []struct {
		name   string
		drag   float64
		target float64
	}{
		{"mostly up", 200, -600},
		{"half exactly stays down", 300, 0},
		{"mostly down", 450, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCurtain(600)
			c.Press()
			c.Drag(tt.drag)
			assert.Equal(t, tt.target, c.Release())
			assert.False(t, c.Dragging())
		})
	}
}

func TestCurtain_Toggle(t *testing.T) {
	c := NewCurtain(600)
	assert.Equal(t, 0.0, c.Toggle())

	c.Set(0)
	assert.True(t, c.Open())
	assert.Equal(t, -600.0, c.Toggle())

	c.Set(-250)
	assert.Equal(t, -600.0, c.Toggle())
	c.Set(-350)
	assert.Equal(t, 0.0, c.Toggle())
}

func TestCurtain_SetClamps(t *testing.T) {
	c := NewCurtain(600)
	c.Set(50)
	assert.Equal(t, 0.0, c.Y())
	c.Set(-1000)
	assert.Equal(t, -600.0, c.Y())
}
