package erosion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirection(t *testing.T) {
	tests := []struct {
		dir      Direction
		opposite Direction
		offset   [2]int
		name     string
	}{
		{Top, Bottom, [2]int{0, 1}, "top"},
		{Right, Left, [2]int{1, 0}, "right"},
		{Bottom, Top, [2]int{0, -1}, "bottom"},
		{Left, Right, [2]int{-1, 0}, "left"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.opposite, tt.dir.Opposite())
			assert.Equal(t, tt.offset, tt.dir.Offset())
			assert.Equal(t, tt.name, tt.dir.String())

			back := tt.dir.Opposite().Offset()
			assert.Equal(t, [2]int{0, 0}, [2]int{tt.offset[0] + back[0], tt.offset[1] + back[1]})
		})
	}
}

func TestInterpolate(t *testing.T) {
	ref := [4]float64{1, 3, 5, 11}

	t.Run("grid point", func(t *testing.T) {
		assert.Equal(t, 1.0, Interpolate([2]float64{2, 7}, ref))
		assert.Equal(t, 1.0, Interpolate([2]float64{-3, 0}, ref))
	})

	t.Run("cell center", func(t *testing.T) {
		assert.InDelta(t, (1.0+3+5+11)/4, Interpolate([2]float64{2.5, 7.5}, ref), 1e-12)
	})

	t.Run("edges", func(t *testing.T) {
		assert.InDelta(t, 2.0, Interpolate([2]float64{0.5, 0}, ref), 1e-12)
		assert.InDelta(t, 3.0, Interpolate([2]float64{0, 0.5}, ref), 1e-12)
	})

	t.Run("approaches far corners", func(t *testing.T) {
		assert.InDelta(t, 3.0, Interpolate([2]float64{0.999999, 0}, ref), 1e-5)
		assert.InDelta(t, 11.0, Interpolate([2]float64{0.999999, 0.999999}, ref), 1e-4)
	})
}

func TestParamsValidate(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate())

	bad := DefaultParams()
	bad.TimeDelta = 0
	bad.GridDistance[1] = -1
	bad.Deposition = 2

	err := bad.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "time delta")
	assert.Contains(t, err.Error(), "grid distance y")
	assert.Contains(t, err.Error(), "deposition")
}
