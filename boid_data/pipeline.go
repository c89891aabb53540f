package boid_data

import (
	"context"
	"sort"

	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"
)

// maxPrealloc bounds the result buffer allocated up front from header counts.
const maxPrealloc = 1 << 16

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// readParallel parses records on nworkers routines. Workers finish out of order, so
// results are collected, sorted back into file order by sequence number, and only
// then applied to the model; the per-frame boid order is the same as a sequential read.
//
// The scanner is the only reader of lr, and apply runs only after every routine has exited.
func (ds *Dataset) readParallel(
	ctx context.Context,
	lr *lineReader,
	radius float64,
	nworkers int,
) (missing int, err error) {
	group, groupCtx := errgroup.WithContext(ctx)
	done := groupCtx.Done()

	records := make(chan record)
	group.Go(func() error {
		defer close(records)
		var scanErr error
		missing, scanErr = scanRecords(lr, ds.Params, func(rec record) error {
			select {
			case records <- rec:
				return nil
			case <-done:
				return groupCtx.Err()
			}
		})
		return scanErr
	})

	parse := func(rec record) parsed {
		return rec.parse(radius)
	}
	var source <-chan record = records
	workers := make([]<-chan parsed, nworkers)
	for i := range workers {
		workers[i] = channerics.Convert(done, source, parse)
	}

	results := make([]parsed, 0, minInt(ds.Params.Records(), maxPrealloc))
	group.Go(func() error {
		for p := range channerics.OrDone(done, channerics.Merge(done, workers...)) {
			results = append(results, p)
		}
		return nil
	})

	if err = group.Wait(); err != nil {
		return
	}
	// Cancellation can close the merged channel before the scanner reports it.
	if err = ctx.Err(); err != nil {
		return
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].seq < results[j].seq
	})
	for _, p := range results {
		if err = ds.apply(p); err != nil {
			return
		}
	}
	return
}
