package boid_data

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"boidview/boids"
)

// SkipPolicy decides what happens to a record that fails to parse.
type SkipPolicy int

const (
	// SkipMalformed logs and drops malformed records; ingest continues.
	SkipMalformed SkipPolicy = iota
	// FailOnMalformed aborts ingest at the first malformed or missing record.
	FailOnMalformed
)

func (sp SkipPolicy) String() string {
	switch sp {
	case SkipMalformed:
		return "skip"
	case FailOnMalformed:
		return "fail"
	}
	return fmt.Sprintf("SkipPolicy(%d)", int(sp))
}

// DefaultRadiusDivisor gives each boid a radius of width/5, as the simulator's viewer always has.
const DefaultRadiusDivisor = 5

const maxLineSize = 1024 * 1024

// ErrTruncated is returned under FailOnMalformed when the input ends before every
// record promised by the header has been read.
var ErrTruncated error = errors.New("truncated boid data")

// Options configure a read.
type Options struct {
	Policy SkipPolicy
	// Workers > 1 parses records concurrently; the resulting model is identical.
	Workers int
	// RadiusDivisor divides the canvas width (integer division) to give each boid's radius.
	// Values <= 0 select DefaultRadiusDivisor.
	RadiusDivisor int
	// Logger receives skipped-record diagnostics; nil selects the standard logger.
	Logger *log.Logger
}

func (opts Options) logger() *log.Logger {
	if opts.Logger == nil {
		return log.Default()
	}
	return opts.Logger
}

func (opts Options) radius(params Params) float64 {
	divisor := opts.RadiusDivisor
	if divisor <= 0 {
		divisor = DefaultRadiusDivisor
	}
	return float64(params.Width / divisor)
}

// Report counts what happened to the records promised by the header.
type Report struct {
	// Records were parsed and added to the model.
	Records int
	// Skipped records failed to parse.
	Skipped int
	// Missing records were promised by the header but absent from the input.
	Missing int
}

// Dataset is the result of reading a boid data file.
type Dataset struct {
	Params Params
	Model  *boids.Model
	Report Report

	policy SkipPolicy
	logger *log.Logger
}

// ReadFile reads the boid data file at path. See Read.
func ReadFile(ctx context.Context, path string, opts Options) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read boid data: %w", err)
	}
	defer f.Close()

	ds, err := Read(ctx, f, opts)
	if err != nil {
		return nil, fmt.Errorf("read boid data %s: %w", path, err)
	}
	return ds, nil
}

// Read parses a header and then Params.Loops frames of Params.Boids records each,
// adding one boid per record to the model. Boids are numbered 1..Boids within each
// frame by their position in the frame. Malformed records are handled per opts.Policy.
// Header errors and read failures always abort.
func Read(ctx context.Context, r io.Reader, opts Options) (ds *Dataset, err error) {
	lr := newLineReader(r)

	var params Params
	if params, err = readHeader(lr); err != nil {
		return nil, err
	}

	var model *boids.Model
	if model, err = boids.NewModel(params.Loops); err != nil {
		return nil, err
	}

	ds = &Dataset{
		Params: params,
		Model:  model,
		policy: opts.Policy,
		logger: opts.logger(),
	}

	radius := opts.radius(params)
	var missing int
	if opts.Workers > 1 {
		missing, err = ds.readParallel(ctx, lr, radius, opts.Workers)
	} else {
		missing, err = ds.readSequential(ctx, lr, radius)
	}
	if err != nil {
		return nil, err
	}

	if missing > 0 {
		ds.Report.Missing = missing
		if ds.policy == FailOnMalformed {
			return nil, fmt.Errorf("%w: %d of %d records missing", ErrTruncated, missing, params.Records())
		}
		ds.logger.Printf("input ended early: %d of %d records missing", missing, params.Records())
	}

	return ds, nil
}

func (ds *Dataset) readSequential(
	ctx context.Context,
	lr *lineReader,
	radius float64,
) (int, error) {
	return scanRecords(lr, ds.Params, func(rec record) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return ds.apply(rec.parse(radius))
	})
}

// apply adds a parsed record's boid to the model, or applies the skip policy to its error.
func (ds *Dataset) apply(p parsed) error {
	if p.err != nil {
		ds.Report.Skipped++
		if ds.policy == FailOnMalformed {
			return p.err
		}
		ds.logger.Println("skipping record:", p.err)
		return nil
	}

	if err := ds.Model.AddBoid(p.boid, p.frame); err != nil {
		return err
	}
	ds.Report.Records++
	return nil
}

// record is one raw data line and its position in the file.
type record struct {
	// seq is the record's index in file order, the sort key for ordered appends.
	seq   int
	frame int
	id    int
	line  int
	text  string
}

type parsed struct {
	record
	boid *boids.Boid
	err  error
}

func (rec record) parse(radius float64) parsed {
	b, err := ParseRecord(rec.text, rec.id, radius)
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		parseErr.Line = rec.line
		parseErr.Frame = rec.frame
	}
	return parsed{record: rec, boid: b, err: err}
}

// scanRecords emits the records promised by params in file order: frame-major, with
// ids 1..Boids per frame. It returns the number of promised records absent from the input.
func scanRecords(
	lr *lineReader,
	params Params,
	emit func(record) error,
) (missing int, err error) {
	seq := 0
	for frame := 0; frame < params.Loops; frame++ {
		for slot := 0; slot < params.Boids; slot++ {
			if !lr.scan() {
				if err = lr.err(); err != nil {
					return
				}
				missing = params.Records() - seq
				return
			}

			rec := record{
				seq:   seq,
				frame: frame,
				id:    slot + 1,
				line:  lr.line,
				text:  lr.text(),
			}
			if err = emit(rec); err != nil {
				return
			}
			seq++
		}
	}
	return
}

// lineReader is a line scanner that tracks line numbers.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func newLineReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &lineReader{sc: sc}
}

func (lr *lineReader) scan() bool {
	if lr.sc.Scan() {
		lr.line++
		return true
	}
	return false
}

// text returns the current line without a trailing carriage return.
func (lr *lineReader) text() string {
	return strings.TrimSuffix(lr.sc.Text(), "\r")
}

func (lr *lineReader) err() error {
	if err := lr.sc.Err(); err != nil {
		return fmt.Errorf("read line %d: %w", lr.line+1, err)
	}
	return nil
}

// skipTo consumes lines up to and including the first line equal to marker.
func (lr *lineReader) skipTo(marker string) error {
	for lr.scan() {
		if lr.text() == marker {
			return nil
		}
	}
	if err := lr.err(); err != nil {
		return err
	}
	return fmt.Errorf("%w: expected %s", ErrMissingHeader, marker)
}
