package boid_data

import (
	"fmt"
	"io"
	"math"

	"boidview/assert"
	"boidview/boids"
)

// WriteSample writes a synthetic data file for params: the boids are evenly spaced on
// a circle about the canvas center and travel once around it over Loops frames.
// Useful for trying out a plot pipeline without running the simulator. Counts must
// lie in [0, MaxCount] and the canvas must have positive size.
func WriteSample(w io.Writer, params Params) error {
	if err := assert.IsTrue(
		params.Boids >= 0 && params.Boids <= MaxCount,
		params.Loops >= 0 && params.Loops <= MaxCount,
		params.Width > 0,
		params.Height > 0,
	); err != nil {
		return fmt.Errorf("%w: sample %+v: %v", ErrMalformedParam, params, err)
	}

	dw := NewWriter(w)
	if err := dw.WriteHeader(params); err != nil {
		return err
	}

	cx, cy := float64(params.Width)/2, float64(params.Height)/2
	r := math.Min(cx, cy) * 2 / 3
	speed := 0.0
	if params.Loops > 0 {
		speed = 2 * math.Pi * r / float64(params.Loops)
	}

	for frame := 0; frame < params.Loops; frame++ {
		for i := 0; i < params.Boids; i++ {
			ang := 2 * math.Pi * (float64(i)/float64(params.Boids) + float64(frame)/float64(params.Loops))
			sin, cos := math.Sincos(ang)
			pos := boids.NewVector(cx+r*cos, cy+r*sin)
			vel := boids.NewVector(-speed*sin, speed*cos)
			if err := dw.WriteRecord(i+1, pos, vel); err != nil {
				return err
			}
		}
	}

	return dw.Flush()
}
