package render

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/tunepipe/tunepipe/constants"
	"github.com/tunepipe/tunepipe/util"
)

// FluidSynth shells out to the fluidsynth CLI. It needs both the
// binary on PATH and the sound-bank asset.
type FluidSynth struct {
	soundFontPath string
}

func NewFluidSynth(soundFontPath string) *FluidSynth {
	return &FluidSynth{soundFontPath: soundFontPath}
}

func (f *FluidSynth) Name() string {
	return "fluidsynth"
}

func (f *FluidSynth) Available() bool {
	if !util.FileExists(f.soundFontPath) {
		return false
	}
	_, err := exec.LookPath("fluidsynth")
	return err == nil
}

func (f *FluidSynth) Render(ctx context.Context, midiPath, wavPath string) error {
	cmd := exec.CommandContext(ctx, "fluidsynth",
		"-ni", f.soundFontPath, midiPath,
		"-F", wavPath,
		"-r", strconv.Itoa(constants.SampleRate))
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("fluidsynth failed: %w: %s", err, tail(out))
	}
	return nil
}

// tail keeps error messages readable when a tool dumps pages of
// output.
func tail(out []byte) []byte {
	const max = 400
	if len(out) > max {
		return out[len(out)-max:]
	}
	return out
}
