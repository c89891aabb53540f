package boid_data

import (
	"bufio"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"boidview/boids"
)

// Writer writes boid data in the simulator's format. Call WriteHeader once, then
// WriteRecord for every boid of every loop, frame-major, then Flush.
type Writer struct {
	w *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// simulatorExtras are the extra keys the simulator prints, in its order; k is
// printed as an integer.
var simulatorExtras = []struct {
	key     string
	integer bool
}{
	{"k", true},
	{"maxv", false},
	{"acc", false},
}

// WriteHeader writes the header block: boids and loops, then the simulator's extra
// keys in its order, any other extras in key order, then width and height.
// Non-integral values are written with six decimals.
func (dw *Writer) WriteHeader(params Params) error {
	pairs := []string{
		KeyBoids + kvSep + strconv.Itoa(params.Boids),
		KeyLoops + kvSep + strconv.Itoa(params.Loops),
	}

	known := map[string]bool{}
	for _, extra := range simulatorExtras {
		known[extra.key] = true
		if val, ok := params.Extra[extra.key]; ok {
			pairs = append(pairs, extra.key+kvSep+formatParam(val, extra.integer))
		}
	}

	keys := make([]string, 0, len(params.Extra))
	for key := range params.Extra {
		if !known[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		pairs = append(pairs, key+kvSep+formatFixed(params.Extra[key]))
	}

	pairs = append(pairs,
		KeyWidth+kvSep+strconv.Itoa(params.Width),
		KeyHeight+kvSep+strconv.Itoa(params.Height))

	_, err := dw.w.WriteString(
		HeaderStart + "\n" +
			strings.Join(pairs, paramSep) + "\n" +
			HeaderEnd + "\n")
	return err
}

// WriteRecord writes one data record: the source id, then position and velocity.
func (dw *Writer) WriteRecord(id int, pos, vel boids.Vector) error {
	_, err := dw.w.WriteString(
		strconv.Itoa(id) + " " +
			formatFixed(pos.X) + " " +
			formatFixed(pos.Y) + " " +
			formatFixed(vel.X) + " " +
			formatFixed(vel.Y) + "\n")
	return err
}

// Flush writes any buffered data to the underlying writer.
func (dw *Writer) Flush() error {
	return dw.w.Flush()
}

func formatParam(val float64, integer bool) string {
	if integer && val == math.Trunc(val) && math.Abs(val) <= math.MaxInt32 {
		return strconv.Itoa(int(val))
	}
	return formatFixed(val)
}

func formatFixed(val float64) string {
	return strconv.FormatFloat(val, 'f', 6, 64)
}
