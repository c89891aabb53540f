package boids

import "strings"

// Overlay is the rendering-ready snapshot of one frame's boids. It shares the
// boids with the Model that built it but owns its ordering.
type Overlay struct {
	boids []*Boid
}

// NewOverlay returns an overlay of the passed boids, in the passed order.
func NewOverlay(boids []*Boid) *Overlay {
	snapshot := make([]*Boid, len(boids))
	copy(snapshot, boids)
	return &Overlay{boids: snapshot}
}

// Len returns the number of boids in the overlay.
func (ov *Overlay) Len() int {
	return len(ov.boids)
}

// Visit calls fn with each boid, in overlay order.
func (ov *Overlay) Visit(fn func(b *Boid)) {
	for _, b := range ov.boids {
		fn(b)
	}
}

// ExportToGnuplot concatenates the directives of every boid in order. An empty
// overlay exports the empty string.
func (ov *Overlay) ExportToGnuplot() string {
	sb := strings.Builder{}
	for _, b := range ov.boids {
		sb.WriteString(b.ExportToGnuplot())
	}
	return sb.String()
}
