package midi

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/tunepipe/tunepipe/abc"
	"github.com/tunepipe/tunepipe/constants"
	"github.com/tunepipe/tunepipe/model"
)

// Encode flattens a symbolic score into a single-track SMF: fixed
// program, fixed tempo, fixed velocity, durations taken from the
// score's unit note length. Event order equals score order. Returns
// an EncodingError when the score has nothing playable or the smf
// layer panics on malformed input.
func Encode(score abc.Score) (s *smf.SMF, e error) {
	// the smf package panics on some malformed input
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = &model.EncodingError{Reason: "smf encode panicked", Cause: fmt.Errorf("%v", r)}
		}
	}()

	if score.NoteCount() == 0 {
		return nil, &model.EncodingError{Reason: "score has no playable events"}
	}

	// ticks for one unit note: unit fraction of a whole note, where a
	// whole note is four quarters
	unitTicks := constants.TicksPerQuarter * 4 * score.UnitNum / score.UnitDen
	if unitTicks <= 0 {
		return nil, &model.EncodingError{Reason: fmt.Sprintf("unusable unit note length %v/%v", score.UnitNum, score.UnitDen)}
	}

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(constants.TempoBPM))
	tr.Add(0, midi.ProgramChange(0, 0))

	var pending uint32
	for _, evt := range score.Events {
		ticks := uint32(unitTicks * evt.Num / evt.Den)
		if evt.Rest {
			pending += ticks
			continue
		}
		tr.Add(pending, midi.NoteOn(0, evt.Key, constants.DefaultVelocity))
		tr.Add(ticks, midi.NoteOff(0, evt.Key))
		pending = 0
	}
	tr.Close(0)

	out := smf.New()
	out.TimeFormat = smf.MetricTicks(constants.TicksPerQuarter)
	if err := out.Add(tr); err != nil {
		return nil, &model.EncodingError{Reason: "could not add track", Cause: err}
	}
	return out, nil
}

// WriteFile saves an encoded sequence to disk.
func WriteFile(s *smf.SMF, path string) error {
	return s.WriteFile(path)
}

func ReadFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		errText := fmt.Sprintf("Error reading midi file... %s", err.Error())
		return &blank, errors.New(errText)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		errText := fmt.Sprintf("Error parsing midi file... %s", err.Error())
		return &blank, errors.New(errText)
	}

	return res, nil
}
