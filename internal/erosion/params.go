package erosion

import (
	"fmt"

	"go.uber.org/multierr"
)

// Params holds the constants of the pipe model.
type Params struct {
	Gravity      float64
	PipeArea     float64
	PipeLength   float64
	GridDistance [2]float64
	TimeDelta    float64

	SedimentCapacity float64
	Dissolving       float64
	Deposition       float64
	Evaporation      float64

	// MinWater is the depth below which a cell is considered dry.
	MinWater float64
	// VelocityEpsilon is the speed below which sediment is not advected.
	VelocityEpsilon float64
}

// DefaultParams returns the constants tuned for 64 unit chunks.
func DefaultParams() Params {
	return Params{
		Gravity:          1,
		PipeArea:         0.001,
		PipeLength:       1,
		GridDistance:     [2]float64{1, 1},
		TimeDelta:        0.005,
		SedimentCapacity: 35,
		Dissolving:       0.0012,
		Deposition:       0.0012,
		Evaporation:      0.001,
		MinWater:         1e-6,
		VelocityEpsilon:  1e-9,
	}
}

// Validate reports every constant that would make the model unstable.
func (p Params) Validate() error {
	var err error
	positive := func(name string, v float64) {
		if v <= 0 {
			err = multierr.Append(err, fmt.Errorf("%s must be positive, got %g", name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if v < 0 {
			err = multierr.Append(err, fmt.Errorf("%s must not be negative, got %g", name, v))
		}
	}

	positive("gravity", p.Gravity)
	positive("pipe area", p.PipeArea)
	positive("pipe length", p.PipeLength)
	positive("grid distance x", p.GridDistance[0])
	positive("grid distance y", p.GridDistance[1])
	positive("time delta", p.TimeDelta)
	nonNegative("sediment capacity", p.SedimentCapacity)
	nonNegative("dissolving", p.Dissolving)
	nonNegative("deposition", p.Deposition)
	nonNegative("evaporation", p.Evaporation)
	nonNegative("min water", p.MinWater)
	nonNegative("velocity epsilon", p.VelocityEpsilon)

	if p.Dissolving > 1 {
		err = multierr.Append(err, fmt.Errorf("dissolving must be at most 1, got %g", p.Dissolving))
	}
	if p.Deposition > 1 {
		err = multierr.Append(err, fmt.Errorf("deposition must be at most 1, got %g", p.Deposition))
	}
	return err
}
