package boid_data

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"boidview/boids"
)

// ErrParse is matched by every ParseError.
var ErrParse error = errors.New("malformed record")

// recordFields is the number of leading fields a record must have: an ignored
// source id followed by x, y, vx and vy.
const recordFields = 5

// ParseError describes a data record that could not be converted to a boid.
type ParseError struct {
	// Line is the 1-based line number in the source, or 0 when unknown.
	Line  int
	Frame int
	Text  string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse record at line %d (frame %d): %v: %q", e.Line, e.Frame, e.Err, e.Text)
	}
	return fmt.Sprintf("parse record: %v: %q", e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports ErrParse as a match, for errors.Is.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ParseRecord converts a whitespace separated data record into a boid with the passed
// id and radius. The first field (the simulator's own boid id) is ignored, the next
// four are x, y, vx and vy, and any further fields are ignored.
func ParseRecord(text string, id int, radius float64) (*boids.Boid, error) {
	fields := strings.Fields(text)
	if len(fields) < recordFields {
		return nil, &ParseError{
			Text: text,
			Err:  fmt.Errorf("want %d fields, got %d", recordFields, len(fields)),
		}
	}

	var vals [recordFields - 1]float64
	for i := range vals {
		val, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, &ParseError{Text: text, Err: err}
		}
		vals[i] = val
	}

	return boids.NewBoid(id, vals[0], vals[1], vals[2], vals[3], radius), nil
}
