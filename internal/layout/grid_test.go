package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrid_MinutesToPixels(t *testing.T) {
	g := Grid{SlotMinutes: 15, SlotHeightPx: 20, MinBlockHeightPx: 18}

	tests := []struct {
		name     string
		minutes  int
		dayStart int
		want     float64
	}{
		{"day start", 480, 480, 0},
		{"one hour later", 540, 480, 80},
		{"rounds up past half slot", 488, 480, 20},
		{"rounds down below half slot", 487, 480, 0},
		{"before day start floors at zero", 420, 480, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.MinutesToPixels(tt.minutes, tt.dayStart))
		})
	}
}

func TestGrid_PixelsToMinutes(t *testing.T) {
	g := Grid{SlotMinutes: 15, SlotHeightPx: 20}

	assert.Equal(t, 480, g.PixelsToMinutes(0, 480))
	assert.Equal(t, 495, g.PixelsToMinutes(11, 480))
	assert.Equal(t, 480, g.PixelsToMinutes(9, 480))
	assert.Equal(t, 480, g.PixelsToMinutes(-100, 480))
	assert.Equal(t, 480, g.PixelsToMinutes(math.NaN(), 480))
	assert.Equal(t, 480, g.PixelsToMinutes(math.Inf(1), 480))
}

func TestGrid_RoundTrip(t *testing.T) {
	grids := []Grid{
		{SlotMinutes: 15, SlotHeightPx: 20},
		{SlotMinutes: 30, SlotHeightPx: 48},
		{SlotMinutes: 5, SlotHeightPx: 7.5},
	}
	for _, g := range grids {
		for _, dayStart := range []int{0, 420, 480} {
			for k := 0; k*g.SlotMinutes+dayStart <= 1440; k++ {
				m := dayStart + k*g.SlotMinutes
				assert.Equal(t, m, g.PixelsToMinutes(g.MinutesToPixels(m, dayStart), dayStart))
			}
		}
	}
}

func TestGrid_BlockHeight(t *testing.T) {
	g := Grid{SlotMinutes: 15, SlotHeightPx: 20, MinBlockHeightPx: 24}

	assert.Equal(t, 24.0, g.BlockHeight(5))
	assert.Equal(t, 40.0, g.BlockHeight(20))
	assert.Equal(t, 40.0, g.BlockHeight(30))
	assert.Equal(t, 160.0, g.BlockHeight(120))
}

func TestGrid_Helpers(t *testing.T) {
	g := Grid{SlotMinutes: 15, SlotHeightPx: 20}

	assert.Equal(t, 40.0, g.SnapPixels(31))
	assert.Equal(t, 20.0, g.SnapPixels(29))
	assert.Equal(t, -2, g.PixelsToSlots(-35))
	assert.Equal(t, 14*4*20.0, g.TimelineHeight(8, 22))
	assert.Equal(t, 20.0, g.TimelineHeight(10, 10))

	var zero Grid
	assert.Equal(t, 15, zero.Slot())
	assert.Equal(t, 24.0, zero.SlotHeight())
}
