// Package erosion simulates hydraulic erosion on a height map with the
// virtual pipe model: water flows between neighbouring cells through pipes
// driven by the difference in water level, dissolving and depositing
// sediment as it moves.
//
// Reference: Mei, Decaudin, Hu. "Fast Hydraulic Erosion Simulation and
// Visualization on GPU", Pacific Graphics 2007.
package erosion

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/EternalMC/world-gen/internal/terrain"
)

// HydraulicErosion owns the cell grid of one simulation run.
// It is not safe for concurrent use.
type HydraulicErosion struct {
	size       int
	resolution int
	cells      []Cell
	params     Params
	rng        *rand.Rand

	// Stability warnings: velocity components that would cross more than
	// one cell per tick and were clamped.
	warnings int
}

// New seeds a simulation from the terrain heights of hm. The simulation
// derives its own generator from rng, which is not retained.
func New(hm *terrain.HeightMap, rng *rand.Rand, params Params) *HydraulicErosion {
	size := hm.Size()
	cells := make([]Cell, size*size)
	for y := range size {
		for x := range size {
			cells[y*size+x].Terrain = float64(hm.Get(x, y))
		}
	}

	return &HydraulicErosion{
		size:       size,
		resolution: hm.Resolution(),
		cells:      cells,
		params:     params,
		rng:        rand.New(rand.NewSource(rng.Int63())),
	}
}

// Size returns the number of cells along one edge.
func (e *HydraulicErosion) Size() int {
	return e.size
}

// Warnings returns the number of clamped velocity components so far.
func (e *HydraulicErosion) Warnings() int {
	return e.warnings
}

// Cell returns a copy of the cell at (x, y).
func (e *HydraulicErosion) Cell(x, y int) Cell {
	return *e.cell(x, y)
}

func (e *HydraulicErosion) inBounds(x, y int) bool {
	return x >= 0 && x < e.size && y >= 0 && y < e.size
}

// index is the single place where grid positions are validated.
func (e *HydraulicErosion) index(x, y int) int {
	if !e.inBounds(x, y) {
		panic(fmt.Sprintf("erosion: position (%d, %d) outside %dx%d grid", x, y, e.size, e.size))
	}
	return y*e.size + x
}

func (e *HydraulicErosion) cell(x, y int) *Cell {
	return &e.cells[e.index(x, y)]
}

// neighbour returns the cell next to (x, y) in direction d, or nil at the
// grid border.
func (e *HydraulicErosion) neighbour(x, y int, d Direction) *Cell {
	off := d.Offset()
	nx, ny := x+off[0], y+off[1]
	if !e.inBounds(nx, ny) {
		return nil
	}
	return e.cell(nx, ny)
}

// Rain drops dropCount deposits of dropSize at uniformly random cells.
func (e *HydraulicErosion) Rain(dropCount int, dropSize float64) {
	for range dropCount {
		x := e.rng.Intn(e.size)
		y := e.rng.Intn(e.size)
		e.AddWaterDrop(x, y, dropSize)
	}
}

// AddWaterDrop adds size water at (x, y) and a quarter of it to each
// neighbour inside the grid.
func (e *HydraulicErosion) AddWaterDrop(x, y int, size float64) {
	e.cell(x, y).Water += size
	for _, d := range Directions {
		if nb := e.neighbour(x, y, d); nb != nil {
			nb.Water += size / 4
		}
	}
}

// HasWater reports whether any cell still holds water.
func (e *HydraulicErosion) HasWater() bool {
	for i := range e.cells {
		if e.cells[i].HasWater() {
			return true
		}
	}
	return false
}

// TotalWater returns the water volume over the whole grid.
func (e *HydraulicErosion) TotalWater() float64 {
	total := 0.0
	for i := range e.cells {
		total += e.cells[i].Water
	}
	return total * e.params.GridDistance[0] * e.params.GridDistance[1]
}

// TotalSediment returns the suspended sediment over the whole grid.
func (e *HydraulicErosion) TotalSediment() float64 {
	total := 0.0
	for i := range e.cells {
		total += e.cells[i].Sediment
	}
	return total
}

// Simulate ticks until the grid is dry or maxTicks ticks have run.
// It returns the number of ticks run.
func (e *HydraulicErosion) Simulate(maxTicks int) int {
	ticks := 0
	for ticks < maxTicks && e.HasWater() {
		e.Tick()
		ticks++
	}
	return ticks
}

// Tick advances the simulation by one time step. Every phase completes
// over the whole grid before the next one starts.
func (e *HydraulicErosion) Tick() {
	e.updateOutflow()
	e.applyWaterflow()
	e.applyErosionDeposition()
	e.updateTransportedSediment()
	e.applySedimentTransport()
	e.applyEvaporation()
}

// Export returns the eroded terrain heights.
func (e *HydraulicErosion) Export() *terrain.HeightMap {
	hm := terrain.NewHeightMap(e.size, e.resolution)
	for y := range e.size {
		for x := range e.size {
			hm.Set(x, y, float32(e.cell(x, y).Terrain))
		}
	}
	return hm
}

func (e *HydraulicErosion) updateOutflow() {
	p := e.params
	factor := p.TimeDelta * p.PipeArea * p.Gravity / p.PipeLength
	area := p.GridDistance[0] * p.GridDistance[1]

	for y := range e.size {
		for x := range e.size {
			c := e.cell(x, y)
			if !c.HasWater() {
				c.Outflow = [4]float64{}
				continue
			}

			sum := 0.0
			for _, d := range Directions {
				// A missing neighbour behaves like an empty cell at the
				// same terrain height.
				delta := c.Water
				if nb := e.neighbour(x, y, d); nb != nil {
					delta = c.Level() - nb.Level()
				}
				c.Outflow[d] = math.Max(0, c.Outflow[d]+factor*delta)
				sum += c.Outflow[d]
			}
			if sum == 0 {
				continue
			}

			k := math.Min(1, c.Water*area/(p.TimeDelta*sum))
			for _, d := range Directions {
				c.Outflow[d] *= k
			}
		}
	}
}

func (e *HydraulicErosion) applyWaterflow() {
	p := e.params
	area := p.GridDistance[0] * p.GridDistance[1]

	for y := range e.size {
		for x := range e.size {
			c := e.cell(x, y)

			var in [4]float64
			for _, d := range Directions {
				if nb := e.neighbour(x, y, d); nb != nil {
					in[d] = nb.Outflow[d.Opposite()]
				}
			}
			delta := p.TimeDelta * (in[Top] + in[Right] + in[Bottom] + in[Left] - c.outflowSum()) / area

			before := c.Water
			c.Water = math.Max(0, c.Water+delta)
			if c.Water < p.MinWater {
				c.dry()
				continue
			}

			depth := (before + c.Water) / 2
			if depth < p.MinWater {
				c.Velocity = mgl64.Vec2{}
				continue
			}

			// Water passing through the cell along each axis
			throughX := (in[Left] - c.Outflow[Left] + c.Outflow[Right] - in[Right]) / 2
			throughY := (in[Bottom] - c.Outflow[Bottom] + c.Outflow[Top] - in[Top]) / 2
			c.Velocity = mgl64.Vec2{
				e.clampVelocity(throughX/(depth*p.GridDistance[1]), p.GridDistance[0]),
				e.clampVelocity(throughY/(depth*p.GridDistance[0]), p.GridDistance[1]),
			}
		}
	}
}

// clampVelocity limits v so a tick never carries sediment further than
// one cell, counting every clamp.
func (e *HydraulicErosion) clampVelocity(v, distance float64) float64 {
	limit := distance / e.params.TimeDelta
	switch {
	case v > limit:
		e.warnings++
		return limit
	case v < -limit:
		e.warnings++
		return -limit
	}
	return v
}

func (e *HydraulicErosion) applyErosionDeposition() {
	p := e.params

	for y := range e.size {
		for x := range e.size {
			c := e.cell(x, y)
			if !c.HasWater() {
				continue
			}

			var level [4]float64
			for _, d := range Directions {
				level[d] = c.Level()
				if nb := e.neighbour(x, y, d); nb != nil {
					level[d] = nb.Level()
				}
			}
			dx := (level[Right] - level[Left]) / (2 * p.GridDistance[0])
			dy := (level[Top] - level[Bottom]) / (2 * p.GridDistance[1])
			c.Normal = mgl64.Vec3{-dx, -dy, 1}.Normalize()

			sinAlpha := math.Sqrt(math.Max(0, 1-c.Normal[2]*c.Normal[2]))
			c.Capacity = math.Max(0, p.SedimentCapacity*sinAlpha*c.Velocity.Len())
		}
	}

	// Terrain changes only after every normal has been computed
	for i := range e.cells {
		if e.cells[i].HasWater() {
			e.cells[i].erode(p.Dissolving, p.Deposition)
		}
	}
}

func (e *HydraulicErosion) updateTransportedSediment() {
	p := e.params

	for y := range e.size {
		for x := range e.size {
			c := e.cell(x, y)
			if c.Velocity.Len() <= p.VelocityEpsilon {
				c.Transported = c.Sediment
				continue
			}

			// Velocity is in world units; the trace steps in cells.
			src := mgl64.Vec2{
				float64(x) - c.Velocity[0]*p.TimeDelta/p.GridDistance[0],
				float64(y) - c.Velocity[1]*p.TimeDelta/p.GridDistance[1],
			}
			x0 := int(math.Floor(src[0]))
			y0 := int(math.Floor(src[1]))

			corners := [4][2]int{{x0, y0}, {x0 + 1, y0}, {x0, y0 + 1}, {x0 + 1, y0 + 1}}
			var ref [4]float64
			for i, pos := range corners {
				if e.inBounds(pos[0], pos[1]) {
					ref[i] = e.cell(pos[0], pos[1]).Sediment
				}
			}
			c.Transported = Interpolate([2]float64(src), ref)
		}
	}
}

func (e *HydraulicErosion) applySedimentTransport() {
	for i := range e.cells {
		e.cells[i].Sediment = e.cells[i].Transported
	}
}

func (e *HydraulicErosion) applyEvaporation() {
	factor := math.Max(0, 1-e.params.Evaporation*e.params.TimeDelta)

	for y := range e.size {
		for x := range e.size {
			c := e.cell(x, y)
			c.Water = math.Max(0, c.Water*factor)
			if !c.finite() {
				panic(fmt.Sprintf("erosion: non-finite state at cell (%d, %d)", x, y))
			}
		}
	}
}
