package render

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/tunepipe/tunepipe/constants"
)

// Timidity shells out to the timidity CLI, which carries its own
// instrument patches and so needs no sound-bank asset.
type Timidity struct{}

func NewTimidity() *Timidity {
	return &Timidity{}
}

func (t *Timidity) Name() string {
	return "timidity"
}

func (t *Timidity) Available() bool {
	_, err := exec.LookPath("timidity")
	return err == nil
}

func (t *Timidity) Render(ctx context.Context, midiPath, wavPath string) error {
	cmd := exec.CommandContext(ctx, "timidity", midiPath,
		"-Ow",
		"-s", strconv.Itoa(constants.SampleRate),
		"-o", wavPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("timidity failed: %w: %s", err, tail(out))
	}
	return nil
}
