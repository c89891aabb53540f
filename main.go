/*
Boidview converts the position/velocity snapshots written by the boid flocking simulator
into a gnuplot script that renders the run as an animated gif, one frame per simulation
loop: each boid is drawn as a velocity arrow plus a small marker at its position.

	boidview [flags] [input [gif [script]]]

Paths default to the config file's values (./config.yaml if present, otherwise built-in
defaults). Relative positional paths are placed under the config's input and output
directories. Run the result with `gnuplot boid_script.gp`.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"boidview/boid_data"
	"boidview/config"
	"boidview/gnuplot"

	"github.com/google/renameio/v2"
)

const defaultConfigPath = "./config.yaml"

// Sample runs use the simulator's own test-script parameters.
const (
	sampleLoops  = 100
	sampleWidth  = 1000
	sampleHeight = 1000
)

var (
	configPath  = flag.String("config", defaultConfigPath, "yaml config file; optional unless set explicitly")
	dbg         = flag.Bool("debug", false, "debug logging")
	nworkers    = flag.Int("workers", 0, "number of record parsing routines, overriding the config when > 0")
	strict      = flag.Bool("strict", false, "fail on malformed or missing records instead of skipping them")
	printScript = flag.Bool("print", false, "also print the script to stdout")
	sample      = flag.Int("sample", 0, "write a synthetic data file of n boids to the input path, instead of converting")
)

// loadConfig reads the config file and applies flag and positional overrides.
func loadConfig(args []string) (cfg *config.Config, err error) {
	explicit := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})

	if cfg, err = config.Load(*configPath, explicit); err != nil {
		return
	}

	if *nworkers > 0 {
		cfg.Workers = *nworkers
	}
	cfg.Strict = cfg.Strict || *strict
	cfg.Print = cfg.Print || *printScript

	err = applyArgs(cfg, args)
	return
}

// applyArgs overrides the input, gif and script names, in that order.
func applyArgs(cfg *config.Config, args []string) error {
	if len(args) > 3 {
		return fmt.Errorf("too many arguments: want at most input, gif and script paths, got %d", len(args))
	}
	targets := []*string{&cfg.Input, &cfg.Gif, &cfg.Script}
	for i, arg := range args {
		*targets[i] = arg
	}
	return cfg.Validate()
}

func readOptions(cfg *config.Config) boid_data.Options {
	opts := boid_data.Options{
		Workers:       cfg.Workers,
		RadiusDivisor: cfg.RadiusDivisor,
	}
	if cfg.Strict {
		opts.Policy = boid_data.FailOnMalformed
	}
	return opts
}

func plotSettings(cfg *config.Config) gnuplot.Settings {
	return gnuplot.Settings{
		Output:  cfg.GifPath(),
		Palette: cfg.Palette,
		Delay:   cfg.Delay,
		View:    cfg.View,
	}
}

// runApp reads the boid data, builds the script, and writes it to the script path.
func runApp(ctx context.Context, cfg *config.Config, stdout io.Writer) (err error) {
	var ds *boid_data.Dataset
	if ds, err = boid_data.ReadFile(ctx, cfg.InputPath(), readOptions(cfg)); err != nil {
		return
	}

	if *dbg {
		log.Printf("read %s: %d boids x %d loops on a %dx%d canvas, params %v",
			cfg.InputPath(), ds.Params.Boids, ds.Params.Loops, ds.Params.Width, ds.Params.Height, ds.Params.Extra)
	}
	if ds.Report.Skipped > 0 || ds.Report.Missing > 0 {
		log.Printf("read %s: %d records, %d skipped, %d missing",
			cfg.InputPath(), ds.Report.Records, ds.Report.Skipped, ds.Report.Missing)
	}

	var script string
	if script, err = gnuplot.NewScriptBuilder().
		WithParams(ds.Params).
		WithSettings(plotSettings(cfg)).
		WithModel(ds.Model).
		Build(); err != nil {
		return
	}

	if cfg.Print {
		if _, err = io.WriteString(stdout, script); err != nil {
			return
		}
	}

	if err = gnuplot.WriteFile(cfg.ScriptPath(), script); err != nil {
		return
	}

	if *dbg {
		log.Printf("wrote %s (%d bytes); run gnuplot on it to render %s", cfg.ScriptPath(), len(script), cfg.GifPath())
	}
	return
}

// writeSample writes a synthetic data file of nboids boids to the input path. The
// file is replaced atomically, so a failed write leaves any previous file in place.
func writeSample(cfg *config.Config, nboids int) (err error) {
	path := cfg.InputPath()
	var pending *renameio.PendingFile
	if pending, err = renameio.NewPendingFile(path,
		renameio.WithTempDir(filepath.Dir(path)),
		renameio.WithPermissions(0644)); err != nil {
		return fmt.Errorf("write sample %s: %w", path, err)
	}
	defer func() {
		_ = pending.Cleanup()
	}()

	params := boid_data.Params{
		Boids:  nboids,
		Loops:  sampleLoops,
		Width:  sampleWidth,
		Height: sampleHeight,
		Extra:  map[string]float64{"k": 7, "maxv": 10, "acc": 1.25},
	}
	if err = boid_data.WriteSample(pending, params); err != nil {
		return fmt.Errorf("write sample %s: %w", path, err)
	}
	if err = pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("write sample %s: %w", path, err)
	}

	if *dbg {
		log.Printf("wrote sample %s: %d boids x %d loops", path, nboids, sampleLoops)
	}
	return
}

func main() {
	flag.Parse()

	cfg, err := loadConfig(flag.Args())
	if err != nil {
		log.Fatal(err)
	}

	if *sample > 0 {
		err = writeSample(cfg, *sample)
	} else {
		err = runApp(context.Background(), cfg, os.Stdout)
	}
	if err != nil {
		log.Fatal(err)
	}
}
