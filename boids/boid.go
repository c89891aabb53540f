// boids contains the frame model of a boid simulation: the boids of each
// frame, the per-frame overlays built from them, and their gnuplot directives.
package boids

import "strings"

// Vector is an immutable 2d position or velocity.
type Vector struct {
	X, Y float64
}

// NewVector returns the vector (x, y).
func NewVector(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

const (
	// Every boid marker is drawn at this fixed screen size, whatever the boid's radius.
	markerSize  = "scr 0.005"
	markerColor = "navy"
)

// Boid is a single simulated particle at a single frame. Boids are created once
// at ingest and never modified afterward.
type Boid struct {
	id     int
	radius float64
	pos    Vector
	vel    Vector
}

// NewBoid stores the passed values verbatim. There is no validation: negative radii
// and NaN coordinates are accepted and exported as-is.
func NewBoid(id int, x, y, vx, vy, radius float64) *Boid {
	return &Boid{
		id:     id,
		radius: radius,
		pos:    NewVector(x, y),
		vel:    NewVector(vx, vy),
	}
}

func (b *Boid) ID() int          { return b.id }
func (b *Boid) Radius() float64  { return b.radius }
func (b *Boid) Position() Vector { return b.pos }
func (b *Boid) Velocity() Vector { return b.vel }

// ExportToGnuplot returns the boid's two directives: a velocity arrow from the
// boid's position to position+velocity, then a circle marking the position.
// Both are tagged with the boid's id and newline terminated.
func (b *Boid) ExportToGnuplot() string {
	sb := strings.Builder{}
	b.writeArrow(&sb)
	b.writeMarker(&sb)
	return sb.String()
}

func (b *Boid) writeArrow(sb *strings.Builder) {
	sb.WriteString("set arrow ")
	sb.WriteString(formatInt(b.id))
	sb.WriteString(" from ")
	writePoint(sb, b.pos.X, b.pos.Y)
	sb.WriteString(" to ")
	writePoint(sb, b.pos.X+b.vel.X, b.pos.Y+b.vel.Y)
	sb.WriteByte('\n')
}

// NOTE: the marker is drawn at markerSize; b.radius does not scale it.
func (b *Boid) writeMarker(sb *strings.Builder) {
	sb.WriteString("set object ")
	sb.WriteString(formatInt(b.id))
	sb.WriteString(" circle at ")
	writePoint(sb, b.pos.X, b.pos.Y)
	sb.WriteString(" size " + markerSize + ` fc rgb "` + markerColor + `"`)
	sb.WriteByte('\n')
}

func writePoint(sb *strings.Builder, x, y float64) {
	sb.WriteString(FormatFloat(x))
	sb.WriteByte(',')
	sb.WriteString(FormatFloat(y))
}
