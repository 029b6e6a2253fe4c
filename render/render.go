package render

import (
	"context"
	"log/slog"

	"github.com/tunepipe/tunepipe/constants"
	"github.com/tunepipe/tunepipe/model"
	"github.com/tunepipe/tunepipe/util"
)

// Backend turns an event-sequence file into a waveform file. A
// backend that is not Available is skipped without being invoked.
type Backend interface {
	Name() string
	Available() bool
	Render(ctx context.Context, midiPath, wavPath string) error
}

// Chain tries backends in fixed priority order. The first backend
// that is available and completes with a non-empty output file wins.
type Chain struct {
	backends []Backend
	log      *slog.Logger
}

func NewChain(log *slog.Logger, backends ...Backend) Chain {
	if log == nil {
		log = slog.Default()
	}
	return Chain{backends: backends, log: log}
}

// DefaultChain is the production ordering: in-process soundfont
// synthesis first (no subprocess cost), then the external tools.
func DefaultChain(log *slog.Logger) Chain {
	sf := constants.GetSoundFontPath()
	return NewChain(log,
		NewSoundFontSynth(sf),
		NewFluidSynth(sf),
		NewTimidity(),
	)
}

// Render runs the chain. It returns the name of the backend that
// produced the waveform, or RenderingExhaustedError when none did.
func (c Chain) Render(ctx context.Context, midiPath, wavPath string) (string, error) {
	attempted := make([]string, 0, len(c.backends))
	for _, b := range c.backends {
		if !b.Available() {
			c.log.Debug("renderer unavailable, skipping", "backend", b.Name())
			continue
		}
		attempted = append(attempted, b.Name())
		if err := b.Render(ctx, midiPath, wavPath); err != nil {
			c.log.Warn("renderer failed", "backend", b.Name(), "error", err)
			continue
		}
		if !util.FileExists(wavPath) {
			c.log.Warn("renderer produced no output", "backend", b.Name())
			continue
		}
		return b.Name(), nil
	}
	return "", &model.RenderingExhaustedError{Attempted: attempted}
}
