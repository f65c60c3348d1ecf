package erosion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Cell is the simulation state of one grid point.
type Cell struct {
	Terrain  float64
	Water    float64
	Outflow  [4]float64 // indexed by Direction, never negative
	Velocity mgl64.Vec2

	Sediment    float64 // suspended
	Transported float64 // advected value waiting to be committed
	Capacity    float64
	Normal      mgl64.Vec3
}

// Level is the height of the water surface.
func (c *Cell) Level() float64 {
	return c.Terrain + c.Water
}

func (c *Cell) HasWater() bool {
	return c.Water > 0
}

func (c *Cell) outflowSum() float64 {
	return c.Outflow[Top] + c.Outflow[Right] + c.Outflow[Bottom] + c.Outflow[Left]
}

// dry removes the remaining water and settles the suspended sediment.
// Outflows stay until the next outflow update so neighbours still receive
// what already left the cell this tick.
func (c *Cell) dry() {
	c.Water = 0
	c.Velocity = mgl64.Vec2{}
	c.Terrain += c.Sediment
	c.Sediment = 0
}

// erode dissolves terrain into suspension or deposits suspended sediment,
// depending on the transport capacity.
func (c *Cell) erode(dissolving, deposition float64) {
	if c.Capacity > c.Sediment {
		amount := dissolving * (c.Capacity - c.Sediment)
		c.Terrain -= amount
		c.Sediment += amount
		return
	}
	amount := deposition * (c.Sediment - c.Capacity)
	c.Terrain += amount
	c.Sediment -= amount
}

func (c *Cell) finite() bool {
	values := [...]float64{
		c.Terrain, c.Water, c.Sediment,
		c.Velocity[0], c.Velocity[1],
		c.Outflow[0], c.Outflow[1], c.Outflow[2], c.Outflow[3],
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
