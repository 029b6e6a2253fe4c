package abc

import (
	"strconv"
	"strings"
)

// Event is one parsed notation element with a relative duration
// expressed as a multiple (Num/Den) of the score's unit note length.
type Event struct {
	Rest bool
	Key  uint8 // MIDI key, meaningless when Rest
	Num  int
	Den  int
}

// Score is the symbolic form of a notation text: events in source
// order plus the headers the encoder cares about.
type Score struct {
	UnitNum int
	UnitDen int
	Key     string
	Meter   string
	Events  []Event
}

// NoteCount returns the number of pitched (playable) events.
func (s Score) NoteCount() int {
	n := 0
	for _, e := range s.Events {
		if !e.Rest {
			n++
		}
	}
	return n
}

var noteBase = map[rune]uint8{
	'C': 60, 'D': 62, 'E': 64, 'F': 65, 'G': 67, 'A': 69, 'B': 71,
}

// Parse converts notation text into a Score. Parsing is lossy:
// unrecognized runes are skipped rather than rejected, so Parse only
// reflects what it could read. Event order always equals source order.
func Parse(text string) (Score, error) {
	score := Score{UnitNum: 1, UnitDen: 8}

	for _, line := range strings.Split(text, "\n") {
		if headerLine.MatchString(line) {
			parseHeader(&score, line)
			continue
		}
		parseBody(&score, line)
	}
	return score, nil
}

func parseHeader(score *Score, line string) {
	value := strings.TrimSpace(line[2:])
	switch line[0] {
	case 'L':
		if num, den, ok := parseFraction(value); ok {
			score.UnitNum = num
			score.UnitDen = den
		}
	case 'K':
		score.Key = value
	case 'M':
		score.Meter = value
	}
}

func parseFraction(s string) (int, int, bool) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	num, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	den, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || num <= 0 || den <= 0 {
		return 0, 0, false
	}
	return num, den, true
}

func parseBody(score *Score, line string) {
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]

		var evt Event
		switch {
		case c >= 'A' && c <= 'G':
			evt = Event{Key: noteBase[c]}
		case c >= 'a' && c <= 'g':
			// lowercase letters sit one octave up
			evt = Event{Key: noteBase[c-'a'+'A'] + 12}
		case c == 'z' || c == 'Z':
			evt = Event{Rest: true}
		default:
			// bars, brackets and anything unknown carry no timing
			continue
		}
		evt.Num = 1
		evt.Den = 1

		// trailing modifiers: sharp, multiplier, divisor
		if !evt.Rest && i+1 < len(runes) && runes[i+1] == '#' {
			evt.Key++
			i++
		}
		if n, used := readInt(runes[i+1:]); used > 0 {
			evt.Num = n
			i += used
		}
		if i+1 < len(runes) && runes[i+1] == '/' {
			i++
			if n, used := readInt(runes[i+1:]); used > 0 {
				evt.Den = n
				i += used
			} else {
				evt.Den = 2
			}
		}
		if evt.Num < 1 {
			evt.Num = 1
		}
		if evt.Den < 1 {
			evt.Den = 1
		}

		score.Events = append(score.Events, evt)
	}
}

// readInt reads a leading run of digits, returning the value and how
// many runes it consumed.
func readInt(runes []rune) (int, int) {
	n := 0
	used := 0
	for used < len(runes) && runes[used] >= '0' && runes[used] <= '9' {
		n = n*10 + int(runes[used]-'0')
		used++
	}
	if used == 0 {
		return 0, 0
	}
	return n, used
}
