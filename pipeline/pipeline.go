package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/tunepipe/tunepipe/abc"
	"github.com/tunepipe/tunepipe/generator"
	"github.com/tunepipe/tunepipe/midi"
	"github.com/tunepipe/tunepipe/model"
	"github.com/tunepipe/tunepipe/registry"
	"github.com/tunepipe/tunepipe/render"
)

// Stage names the pipeline states. They exist for logging and for
// reporting where a degraded request fell over.
type Stage string

const (
	StageSeedLoaded    Stage = "seed_loaded"
	StageGenerated     Stage = "generated"
	StageSanitized     Stage = "sanitized"
	StageParsedEncoded Stage = "parsed_encoded"
	StageRendered      Stage = "rendered"
)

type Outcome string

const (
	OutcomeRendered Outcome = "rendered"
	OutcomeDegraded Outcome = "degraded"
)

// Result is the single answer every request resolves to: a waveform
// path that is either freshly rendered or the tune's original.
type Result struct {
	TuneID   int
	Outcome  Outcome
	WavPath  string
	Backend  string // renderer that produced the waveform, empty when degraded
	FailedAt Stage  // stage that triggered degradation, empty when rendered
}

// Pipeline runs one request end-to-end. All fields are read-only
// after construction, so instances are safe to share across requests;
// artifact filenames carry a per-request uuid so concurrent runs
// never collide.
type Pipeline struct {
	reg          registry.Registry
	gen          generator.Generator
	chain        render.Chain
	tunesDir     string
	originalDir  string
	generatedDir string
	log          *slog.Logger
}

func New(reg registry.Registry, gen generator.Generator, chain render.Chain,
	tunesDir, originalDir, generatedDir string, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{
		reg:          reg,
		gen:          gen,
		chain:        chain,
		tunesDir:     tunesDir,
		originalDir:  originalDir,
		generatedDir: generatedDir,
		log:          log,
	}
}

// Run executes the generate-sanitize-encode-render sequence for one
// tune. Any failure after the seed loads degrades to the original
// waveform when one exists; a missing tune or seed file is NotFound
// and is reported before the remote service is ever contacted.
func (p *Pipeline) Run(ctx context.Context, tuneID int) (*Result, error) {
	tune, ok := p.reg.Find(tuneID)
	if !ok {
		return nil, fmt.Errorf("tune %v: %w", tuneID, model.ErrNotFound)
	}

	seedPath := filepath.Join(p.tunesDir, tune.AbcFile)
	seed, err := os.ReadFile(seedPath)
	if err != nil {
		return nil, fmt.Errorf("seed notation for tune %v: %w", tuneID, model.ErrNotFound)
	}
	p.log.Info("stage ok", "tune", tuneID, "stage", StageSeedLoaded, "seed_len", len(seed))

	uid := uuid.New().String()

	generated, err := p.gen.Generate(ctx, string(seed))
	if err != nil {
		return p.degrade(tune, StageGenerated, err)
	}
	p.log.Info("stage ok", "tune", tuneID, "stage", StageGenerated, "len", len(generated))

	clean := abc.Sanitize(generated)
	abcPath := p.artifactPath(tuneID, uid, "abc")
	if err := os.WriteFile(abcPath, []byte(clean), 0666); err != nil {
		return p.degrade(tune, StageSanitized, err)
	}
	p.log.Info("stage ok", "tune", tuneID, "stage", StageSanitized, "len", len(clean))

	score, err := abc.Parse(clean)
	if err != nil {
		return p.degrade(tune, StageParsedEncoded, err)
	}
	seq, err := midi.Encode(score)
	if err != nil {
		return p.degrade(tune, StageParsedEncoded, err)
	}
	midiPath := p.artifactPath(tuneID, uid, "mid")
	if err := midi.WriteFile(seq, midiPath); err != nil {
		return p.degrade(tune, StageParsedEncoded, err)
	}
	p.log.Info("stage ok", "tune", tuneID, "stage", StageParsedEncoded, "notes", score.NoteCount())

	wavPath := p.artifactPath(tuneID, uid, "wav")
	backend, err := p.chain.Render(ctx, midiPath, wavPath)
	if err != nil {
		return p.degrade(tune, StageRendered, err)
	}
	p.log.Info("stage ok", "tune", tuneID, "stage", StageRendered, "backend", backend)

	return &Result{
		TuneID:  tuneID,
		Outcome: OutcomeRendered,
		WavPath: wavPath,
		Backend: backend,
	}, nil
}

func (p *Pipeline) artifactPath(tuneID int, uid, ext string) string {
	return filepath.Join(p.generatedDir, fmt.Sprintf("%v_%v.%v", tuneID, uid, ext))
}

// degrade substitutes the original waveform. Which stage failed does
// not change the decision, only the report.
func (p *Pipeline) degrade(tune model.Tune, stage Stage, cause error) (*Result, error) {
	origPath := filepath.Join(p.originalDir, tune.OrigAudio)
	if _, err := os.Stat(origPath); err != nil {
		return nil, &model.DegradedFallbackUnavailable{
			TuneID: tune.ID,
			Stage:  string(stage),
			Cause:  cause,
		}
	}
	p.log.Warn("stage failed, degrading to original audio",
		"tune", tune.ID, "stage", stage, "error", cause)
	return &Result{
		TuneID:   tune.ID,
		Outcome:  OutcomeDegraded,
		WavPath:  origPath,
		FailedAt: stage,
	}, nil
}
