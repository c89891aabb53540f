// boid_data reads and writes the text files produced by the boid simulator: a
// header of run parameters followed by one position/velocity record per boid per loop.
//
//	#header
//	boids:2;loops:1;k:7;maxv:10.000000;acc:1.250000;width:1000;height:1000
//	#endheader
//	1 10.0 20.0 0.5 -0.5
//	2 15.0 25.0 1.0 0.0
package boid_data

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"boidview/assert"
)

const (
	HeaderStart = "#header"
	HeaderEnd   = "#endheader"

	paramSep = ";"
	kvSep    = ":"
)

// Required parameter keys.
const (
	KeyBoids  = "boids"
	KeyLoops  = "loops"
	KeyWidth  = "width"
	KeyHeight = "height"
)

var requiredKeys = []string{KeyBoids, KeyLoops, KeyWidth, KeyHeight}

// MaxCount bounds the boid and loop counts a header may declare. A model allocates
// every frame up front.
const MaxCount = 1 << 20

var (
	// ErrMissingHeader is returned when a header marker or the parameter line is absent.
	ErrMissingHeader error = errors.New("missing header")
	// ErrMissingParam is returned when a required parameter key is absent.
	ErrMissingParam error = errors.New("missing parameter")
	// ErrMalformedParam is returned when a key:value pair cannot be parsed.
	ErrMalformedParam error = errors.New("malformed parameter")
)

// Params are the run parameters from a data file header. The integer fields are
// truncated toward zero from the header's float values.
type Params struct {
	Boids  int
	Loops  int
	Width  int
	Height int
	// Extra holds every other header key, e.g. k, maxv and acc.
	Extra map[string]float64
}

// Records returns the number of data records the header promises.
func (p Params) Records() int {
	return p.Boids * p.Loops
}

// ParseParams parses a header parameter line of semicolon separated key:value pairs.
// Empty pairs are ignored; a repeated key keeps its last value.
func ParseParams(line string) (params Params, err error) {
	values := map[string]float64{}
	for _, pair := range strings.Split(line, paramSep) {
		if strings.TrimSpace(pair) == "" {
			continue
		}

		key, raw, ok := strings.Cut(pair, kvSep)
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			err = fmt.Errorf("%w: %q is not a key:value pair", ErrMalformedParam, pair)
			return
		}

		var val float64
		if val, err = strconv.ParseFloat(strings.TrimSpace(raw), 64); err != nil {
			err = fmt.Errorf("%w: %s: %v", ErrMalformedParam, key, err)
			return
		}
		values[key] = val
	}

	ints := map[string]int{}
	for _, key := range requiredKeys {
		val, ok := values[key]
		if !ok {
			err = fmt.Errorf("%w: %s", ErrMissingParam, key)
			return
		}
		if math.IsNaN(val) || math.IsInf(val, 0) {
			err = fmt.Errorf("%w: %s is not finite", ErrMalformedParam, key)
			return
		}
		if err = assert.Range(val, math.MinInt32, math.MaxInt32); err != nil {
			err = fmt.Errorf("%w: %s: %v", ErrMalformedParam, key, err)
			return
		}
		ints[key] = int(math.Trunc(val))
		delete(values, key)
	}

	// Counts must lie in [0, MaxCount]; the canvas may be anything.
	for _, key := range []string{KeyBoids, KeyLoops} {
		if err = assert.Range(float64(ints[key]), 0, MaxCount); err != nil {
			err = fmt.Errorf("%w: %s count out of range: %v", ErrMalformedParam, key, err)
			return
		}
	}

	params = Params{
		Boids:  ints[KeyBoids],
		Loops:  ints[KeyLoops],
		Width:  ints[KeyWidth],
		Height: ints[KeyHeight],
		Extra:  values,
	}
	return
}

// readHeader skips to the start marker, parses the parameter line that follows it,
// then skips through the end marker.
func readHeader(lr *lineReader) (params Params, err error) {
	if err = lr.skipTo(HeaderStart); err != nil {
		return
	}

	if !lr.scan() {
		if err = lr.err(); err == nil {
			err = fmt.Errorf("%w: no parameter line after %s", ErrMissingHeader, HeaderStart)
		}
		return
	}

	if params, err = ParseParams(lr.text()); err != nil {
		err = fmt.Errorf("header line %d: %w", lr.line, err)
		return
	}

	err = lr.skipTo(HeaderEnd)
	return
}
