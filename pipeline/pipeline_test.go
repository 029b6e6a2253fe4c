package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tunepipe/tunepipe/model"
	"github.com/tunepipe/tunepipe/registry"
	"github.com/tunepipe/tunepipe/render"
)

type stubGenerator struct {
	text  string
	err   error
	calls int32
}

func (s *stubGenerator) Generate(ctx context.Context, seed string) (string, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func (s *stubGenerator) callCount() int {
	return int(atomic.LoadInt32(&s.calls))
}

type stubBackend struct {
	fail bool
}

func (s *stubBackend) Name() string {
	return "stub"
}

func (s *stubBackend) Available() bool {
	return true
}

func (s *stubBackend) Render(ctx context.Context, midiPath, wavPath string) error {
	if s.fail {
		return errors.New("synthetic render failure")
	}
	return os.WriteFile(wavPath, []byte("RIFFdata"), 0666)
}

type fixture struct {
	pipe    *Pipeline
	gen     *stubGenerator
	tunes   string
	orig    string
	genDir  string
	origWav string
}

func newFixture(t *testing.T, gen *stubGenerator, backends ...render.Backend) *fixture {
	t.Helper()
	base := t.TempDir()
	f := &fixture{
		gen:    gen,
		tunes:  filepath.Join(base, "tunes"),
		orig:   filepath.Join(base, "original"),
		genDir: filepath.Join(base, "generated"),
	}
	for _, dir := range []string{f.tunes, f.orig, f.genDir} {
		if err := os.MkdirAll(dir, 0777); err != nil {
			t.Fatal(err)
		}
	}
	f.origWav = filepath.Join(f.orig, "tune_1.wav")

	reg := registry.New([]model.Tune{
		{ID: 1, Title: "Tune 1", AbcFile: "tune_1.abc", OrigAudio: "tune_1.wav"},
	})
	f.pipe = New(reg, gen, render.NewChain(nil, backends...), f.tunes, f.orig, f.genDir, nil)
	return f
}

func (f *fixture) writeSeed(t *testing.T, text string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(f.tunes, "tune_1.abc"), []byte(text), 0666); err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) writeOriginal(t *testing.T) {
	t.Helper()
	if err := os.WriteFile(f.origWav, []byte("RIFForiginal"), 0666); err != nil {
		t.Fatal(err)
	}
}

func TestRunUnknownTuneIsNotFound(t *testing.T) {
	assert := assert.New(t)
	gen := &stubGenerator{text: "CDEFGAB|"}
	f := newFixture(t, gen, &stubBackend{})

	_, err := f.pipe.Run(context.Background(), 99)
	assert.ErrorIs(err, model.ErrNotFound)
	// the remote service is never contacted for an unknown tune
	assert.Equal(0, gen.callCount())
}

func TestRunMissingSeedIsNotFound(t *testing.T) {
	assert := assert.New(t)
	gen := &stubGenerator{text: "CDEFGAB|"}
	f := newFixture(t, gen, &stubBackend{})
	f.writeOriginal(t)

	_, err := f.pipe.Run(context.Background(), 1)
	assert.ErrorIs(err, model.ErrNotFound)
	assert.Equal(0, gen.callCount())
}

func TestRunHappyPath(t *testing.T) {
	assert := assert.New(t)
	gen := &stubGenerator{text: "CDEFGAB|"}
	f := newFixture(t, gen, &stubBackend{})
	f.writeSeed(t, "L:1/8\nABCDEFG|")

	res, err := f.pipe.Run(context.Background(), 1)
	assert.NoError(err)
	assert.Equal(OutcomeRendered, res.Outcome)
	assert.Equal("stub", res.Backend)

	info, statErr := os.Stat(res.WavPath)
	assert.NoError(statErr)
	assert.Greater(info.Size(), int64(0))

	// artifacts land next to each other under the same request id
	matches, _ := filepath.Glob(filepath.Join(f.genDir, "1_*.abc"))
	assert.Len(matches, 1)
	matches, _ = filepath.Glob(filepath.Join(f.genDir, "1_*.mid"))
	assert.Len(matches, 1)
}

func TestRunDegradesOnGenerationFailure(t *testing.T) {
	assert := assert.New(t)
	gen := &stubGenerator{err: &model.RemoteGenerationError{Cause: errors.New("timeout")}}
	f := newFixture(t, gen, &stubBackend{})
	f.writeSeed(t, "L:1/8\nABCDEFG|")
	f.writeOriginal(t)

	res, err := f.pipe.Run(context.Background(), 1)
	assert.NoError(err)
	assert.Equal(OutcomeDegraded, res.Outcome)
	assert.Equal(StageGenerated, res.FailedAt)
	assert.Equal(f.origWav, res.WavPath)

	// no partially written artifacts for this request
	matches, _ := filepath.Glob(filepath.Join(f.genDir, "*"))
	assert.Empty(matches)
}

func TestRunDegradesOnUnplayableGeneration(t *testing.T) {
	assert := assert.New(t)
	gen := &stubGenerator{text: "???!!!"}
	f := newFixture(t, gen, &stubBackend{})
	f.writeSeed(t, "L:1/8\nABCDEFG|")
	f.writeOriginal(t)

	res, err := f.pipe.Run(context.Background(), 1)
	assert.NoError(err)
	assert.Equal(OutcomeDegraded, res.Outcome)
	assert.Equal(StageParsedEncoded, res.FailedAt)
	assert.Equal(f.origWav, res.WavPath)
}

func TestRunDegradesOnRenderExhaustion(t *testing.T) {
	assert := assert.New(t)
	gen := &stubGenerator{text: "CDEFGAB|"}
	f := newFixture(t, gen, &stubBackend{fail: true})
	f.writeSeed(t, "L:1/8\nABCDEFG|")
	f.writeOriginal(t)

	res, err := f.pipe.Run(context.Background(), 1)
	assert.NoError(err)
	assert.Equal(OutcomeDegraded, res.Outcome)
	assert.Equal(StageRendered, res.FailedAt)
}

func TestRunFailsWhenNoFallbackExists(t *testing.T) {
	assert := assert.New(t)
	gen := &stubGenerator{err: &model.RemoteGenerationError{Cause: errors.New("timeout")}}
	f := newFixture(t, gen, &stubBackend{})
	f.writeSeed(t, "L:1/8\nABCDEFG|")
	// no original waveform on disk

	_, err := f.pipe.Run(context.Background(), 1)
	var unavailable *model.DegradedFallbackUnavailable
	assert.ErrorAs(err, &unavailable)
	assert.Equal(1, unavailable.TuneID)
	assert.Equal(string(StageGenerated), unavailable.Stage)
}

func TestRunConcurrentRequestsDoNotCollide(t *testing.T) {
	assert := assert.New(t)
	gen := &stubGenerator{text: "CDEFGAB|"}
	f := newFixture(t, gen, &stubBackend{})
	f.writeSeed(t, "L:1/8\nABCDEFG|")

	done := make(chan *Result, 4)
	for i := 0; i < 4; i++ {
		go func() {
			res, err := f.pipe.Run(context.Background(), 1)
			if err != nil {
				t.Error(err)
			}
			done <- res
		}()
	}

	paths := make(map[string]bool)
	for i := 0; i < 4; i++ {
		res := <-done
		paths[res.WavPath] = true
	}
	assert.Len(paths, 4)
}
