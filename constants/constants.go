package constants

import (
	"os"
	"path/filepath"
	"time"
)

func GetTunesDir() string {
	path := os.Getenv("TUNES_PATH")
	if path != "" {
		return path
	}
	return "./tunes"
}

func GetStaticDir() string {
	path := os.Getenv("STATIC_PATH")
	if path != "" {
		return path
	}
	return "./static"
}

func GetOriginalDir() string {
	return filepath.Join(GetStaticDir(), "original")
}

func GetGeneratedDir() string {
	return filepath.Join(GetStaticDir(), "generated")
}

func GetSoundFontPath() string {
	path := os.Getenv("SOUNDFONT_PATH")
	if path != "" {
		return path
	}
	return "./soundfonts/FluidR3_GM.sf2"
}

func GetGeneratorURL() string {
	url := os.Getenv("GENERATOR_URL")
	if url != "" {
		return url
	}
	return "https://mayurbhati2110-MusicGenRNN.hf.space/generate"
}

// GenerateTimeout bounds the remote generation call end-to-end.
const GenerateTimeout = 180 * time.Second

// GenerationLength is the length hint sent with the seed.
const GenerationLength = 100

const SampleRate = 44100

// Encoder defaults: every note gets the same velocity, tempo is fixed.
const DefaultVelocity = 64
const TempoBPM = 120
const TicksPerQuarter = 480
