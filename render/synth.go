package render

import (
	"context"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/sinshu/go-meltysynth/meltysynth"

	"github.com/tunepipe/tunepipe/constants"
	"github.com/tunepipe/tunepipe/util"
)

// SoundFontSynth renders in-process with meltysynth. It needs the
// sound-bank asset but no external tooling.
type SoundFontSynth struct {
	soundFontPath string
}

func NewSoundFontSynth(soundFontPath string) *SoundFontSynth {
	return &SoundFontSynth{soundFontPath: soundFontPath}
}

func (s *SoundFontSynth) Name() string {
	return "soundfont-synth"
}

func (s *SoundFontSynth) Available() bool {
	return util.FileExists(s.soundFontPath)
}

func (s *SoundFontSynth) Render(ctx context.Context, midiPath, wavPath string) error {
	sf, err := os.Open(s.soundFontPath)
	if err != nil {
		return fmt.Errorf("could not open soundfont: %w", err)
	}
	defer sf.Close()

	soundFont, err := meltysynth.NewSoundFont(sf)
	if err != nil {
		return fmt.Errorf("could not parse soundfont: %w", err)
	}

	settings := meltysynth.NewSynthesizerSettings(int32(constants.SampleRate))
	synth, err := meltysynth.NewSynthesizer(soundFont, settings)
	if err != nil {
		return fmt.Errorf("could not create synthesizer: %w", err)
	}

	mid, err := os.Open(midiPath)
	if err != nil {
		return fmt.Errorf("could not open midi file: %w", err)
	}
	defer mid.Close()

	midiFile, err := meltysynth.NewMidiFile(mid)
	if err != nil {
		return fmt.Errorf("could not parse midi file: %w", err)
	}

	sequencer := meltysynth.NewMidiFileSequencer(synth)
	sequencer.Play(midiFile, false)

	sampleCount := int(float64(constants.SampleRate) * midiFile.GetLength().Seconds())
	if sampleCount == 0 {
		return fmt.Errorf("midi file has zero length")
	}
	left := make([]float32, sampleCount)
	right := make([]float32, sampleCount)
	sequencer.Render(left, right)

	return writeWav(wavPath, left, right)
}

// writeWav interleaves two float channels into 16-bit PCM.
func writeWav(path string, left, right []float32) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create wav file: %w", err)
	}
	defer out.Close()

	data := make([]int, 0, len(left)*2)
	for i := range left {
		data = append(data, clampSample(left[i]), clampSample(right[i]))
	}

	enc := wav.NewEncoder(out, constants.SampleRate, 16, 2, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: constants.SampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		enc.Close()
		return fmt.Errorf("could not write samples: %w", err)
	}
	return enc.Close()
}

func clampSample(v float32) int {
	scaled := int(v * 32767)
	if scaled > 32767 {
		return 32767
	}
	if scaled < -32768 {
		return -32768
	}
	return scaled
}
