// gnuplot assembles boid models into animated-gif gnuplot scripts.
package gnuplot

import (
	"errors"
	"fmt"
	"strings"
	"text/template"

	"boidview/boid_data"
	"boidview/boids"

	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"
)

// Settings are the script's presentation parameters.
type Settings struct {
	// Output is the path gnuplot writes the gif to.
	Output string
	// Palette is a gnuplot palette definition, parenthesized.
	Palette string
	// Delay is the gif frame delay, in hundredths of a second.
	Delay int
	// View is the "rot_x,rot_z" view angle; 0,0 looks straight down.
	View string
}

// DefaultSettings returns the settings every boid script has used to date.
func DefaultSettings() Settings {
	return Settings{
		Output:  "boids.gif",
		Palette: "(0 'black', 1 'green', 2 'yellow', 3 'orange', 4 'red')",
		Delay:   5,
		View:    "0,0",
	}
}

// scriptTemplate renders a script. Each frame is the frame's directives followed by a replot.
var scriptTemplate = template.Must(template.New("script").Parse(
	`reset
set palette defined {{ .Palette }}
set terminal gif animate delay {{ .Delay }}
set output '{{ .Output }}'
set view {{ .View }}
set xrange [0:{{ .Width }}]
set yrange [0:{{ .Height }}]
plot 0
{{ range .Frames }}{{ . }}replot
{{ end }}set output
`))

// scriptData is the template's view-model.
type scriptData struct {
	Settings
	Width, Height int
	Frames        []string
}

// ErrNoModel is returned when Build() is called before WithModel().
var ErrNoModel error = errors.New("no model specified: WithModel must be called")

// ErrNoParams is returned when Build() is called before WithParams().
var ErrNoParams error = errors.New("no params specified: WithParams must be called")

// ScriptBuilder collects a model, its run parameters and presentation settings,
// and builds them into a script.
type ScriptBuilder struct {
	model    *boids.Model
	params   *boid_data.Params
	settings Settings
}

// NewScriptBuilder returns a builder using DefaultSettings.
func NewScriptBuilder() *ScriptBuilder {
	return &ScriptBuilder{
		settings: DefaultSettings(),
	}
}

// WithModel sets the model whose frames are plotted.
func (sb *ScriptBuilder) WithModel(model *boids.Model) *ScriptBuilder {
	sb.model = model
	return sb
}

// WithParams sets the run parameters; the canvas width and height become the axis ranges.
func (sb *ScriptBuilder) WithParams(params boid_data.Params) *ScriptBuilder {
	sb.params = &params
	return sb
}

// WithSettings replaces the presentation settings.
func (sb *ScriptBuilder) WithSettings(settings Settings) *ScriptBuilder {
	sb.settings = settings
	return sb
}

// Build drains one full cycle of the model's frames (Loops() calls to Update) into
// the script, beginning at the model's cursor; a fresh model begins at frame 0.
// A full cycle leaves the cursor where it began.
func (sb *ScriptBuilder) Build() (string, error) {
	if sb.model == nil {
		return "", ErrNoModel
	}
	if sb.params == nil {
		return "", ErrNoParams
	}

	data := scriptData{
		Settings: sb.settings,
		Width:    sb.params.Width,
		Height:   sb.params.Height,
		Frames:   make([]string, 0, sb.model.Loops()),
	}

	done := make(chan struct{})
	defer close(done)

	// The producer is the model's only caller until Wait returns. Convert runs one
	// routine, so frames arrive in cursor order.
	group := errgroup.Group{}
	overlays := make(chan *boids.Overlay)
	group.Go(func() error {
		defer close(overlays)
		for i := 0; i < sb.model.Loops(); i++ {
			overlay, err := sb.model.Update()
			if err != nil {
				return fmt.Errorf("build frame %d: %w", i, err)
			}
			select {
			case overlays <- overlay:
			case <-done:
				return nil
			}
		}
		return nil
	})

	var source <-chan *boids.Overlay = overlays
	for frame := range channerics.Convert(done, source, (*boids.Overlay).ExportToGnuplot) {
		data.Frames = append(data.Frames, frame)
	}
	if err := group.Wait(); err != nil {
		return "", err
	}

	out := strings.Builder{}
	if err := scriptTemplate.Execute(&out, data); err != nil {
		return "", fmt.Errorf("build script: %w", err)
	}
	return out.String(), nil
}
