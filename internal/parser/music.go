package parser

import "strconv"

// ParseAnsiMusicNotes interprets the captured note text of an ANSI-music
// sequence (ESC [ ... | <notes> 0x0e) into a note list. The grammar
// supports the commonly-used subset: note letters A-G (with # / + for
// sharp, - for flat), octave O<n>, tempo T<n>, duration L<n>, and rests
// via P. Anything unrecognized is skipped rather than aborting the whole
// sequence, since a single malformed note shouldn't silence the rest.
func ParseAnsiMusicNotes(raw string) AnsiMusic {
	var music AnsiMusic
	octave := 4
	noteLen := 4
	tempo := 120

	i := 0
	readInt := func(def int) int {
		start := i
		for i < len(raw) && raw[i] >= '0' && raw[i] <= '9' {
			i++
		}
		if i == start {
			return def
		}
		n, _ := strconv.Atoi(raw[start:i])
		return n
	}

	for i < len(raw) {
		c := raw[i]
		switch {
		case c == 'o' || c == 'O':
			i++
			octave = readInt(octave)
		case c == 'l' || c == 'L':
			i++
			noteLen = readInt(noteLen)
		case c == 't' || c == 'T':
			i++
			tempo = readInt(tempo)
		case c == 'p' || c == 'P':
			i++
			dur := readInt(noteLen)
			music.Notes = append(music.Notes, MusicNote{FrequencyHz: 0, DurationMs: noteDurationMs(dur, tempo)})
		case c >= 'a' && c <= 'g', c >= 'A' && c <= 'G':
			note := c | 0x20
			i++
			semitone := 0
			if i < len(raw) && (raw[i] == '#' || raw[i] == '+') {
				semitone = 1
				i++
			} else if i < len(raw) && raw[i] == '-' {
				semitone = -1
				i++
			}
			dur := readInt(noteLen)
			freq := noteFrequencyHz(note, octave, semitone)
			music.Notes = append(music.Notes, MusicNote{FrequencyHz: freq, DurationMs: noteDurationMs(dur, tempo)})
		default:
			i++
		}
	}
	return music
}

// semitoneOffsets maps 'c'..'b' to semitones above C within an octave.
var semitoneOffsets = map[byte]int{
	'c': 0, 'd': 2, 'e': 4, 'f': 5, 'g': 7, 'a': 9, 'b': 11,
}

// noteFrequencyHz computes the equal-tempered frequency of note (lowercase
// letter) in the given octave, shifted by semitone (-1, 0, or 1).
func noteFrequencyHz(note byte, octave, semitone int) int {
	offset := semitoneOffsets[note] + semitone
	halfStepsFromA4 := (octave-4)*12 + offset - 9
	freq := 440.0
	for n := 0; n < halfStepsFromA4; n++ {
		freq *= 1.0594630943592953
	}
	for n := 0; n > halfStepsFromA4; n-- {
		freq /= 1.0594630943592953
	}
	return int(freq + 0.5)
}

// noteDurationMs converts an L<n> note-length denominator and a T<n> tempo
// (quarter notes per minute) into milliseconds.
func noteDurationMs(denominator, tempo int) int {
	if denominator <= 0 {
		denominator = 4
	}
	if tempo <= 0 {
		tempo = 120
	}
	quarterMs := 60000.0 / float64(tempo)
	return int(quarterMs * 4.0 / float64(denominator))
}
