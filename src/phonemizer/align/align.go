package align

import (
	"strconv"
	"strings"

	"github.com/StickynoteStupid/utau/src/datastructures"
)

// MarkerPrefix starts lyrics that pin a phoneme to a note boundary instead of
// adding phonemes of their own, e.g. "+2" pins the second phoneme to the
// start of that note.
const MarkerPrefix = "+"

// Breakpoint pins the phoneme at Index to start no earlier than Tick.
// Breakpoint lists are strictly increasing in both fields.
type Breakpoint struct {
	Index int
	Tick  int
}

// Plan walks a note run and produces the breakpoints duration distribution
// runs between. Marker lyrics are parsed as 1-based phoneme indices; a marker
// that fails to parse, falls out of bounds, or does not advance past the last
// recorded breakpoint is dropped rather than aborting the run. The terminal
// (len(isVowel), totalDuration) breakpoint is always present, and a synthetic
// breakpoint pins the first vowel to tick 0 when consonants precede it.
func Plan(notes []datastructures.Note, isVowel []bool) []Breakpoint {
	count := len(isVowel)
	bps := make([]Breakpoint, 0, 4)

	for i, v := range isVowel {
		if v {
			if i > 0 {
				bps = append(bps, Breakpoint{Index: i, Tick: 0})
			}
			break
		}
	}

	position := 0
	for _, note := range notes {
		if strings.HasPrefix(note.Lyric, MarkerPrefix) {
			if idx, err := strconv.Atoi(strings.TrimPrefix(note.Lyric, MarkerPrefix)); err == nil {
				idx--
				if idx > 0 && idx < count && admissible(bps, idx, position) {
					bps = append(bps, Breakpoint{Index: idx, Tick: position})
				}
			}
		}
		position += note.Duration
	}

	return append(bps, Breakpoint{Index: count, Tick: position})
}

func admissible(bps []Breakpoint, index, tick int) bool {
	if len(bps) == 0 {
		return true
	}
	last := bps[len(bps)-1]
	return index > last.Index && tick > last.Tick
}

// Distribute assigns start positions to phonemes[startIndex:endIndex] within
// [startTick, endTick). Each consonant gets at most maxConsonantLen ticks and
// never more than half the interval split among the consonants present, so
// consonants cannot starve the vowels; an interval with no vowels is divided
// evenly among its consonants instead. Whatever remains is split across the
// vowels. Positions advance left to right, so symbol order is playback order.
func Distribute(isVowel []bool, phonemes []datastructures.Phoneme, startIndex, endIndex, startTick, endTick, maxConsonantLen int) {
	if endIndex <= startIndex {
		return
	}
	consonants, vowels := 0, 0
	for i := startIndex; i < endIndex; i++ {
		if isVowel[i] {
			vowels++
		} else {
			consonants++
		}
	}

	duration := endTick - startTick
	consonantLen := 0
	if consonants > 0 {
		if vowels > 0 {
			consonantLen = duration / 2 / consonants
			if consonantLen > maxConsonantLen {
				consonantLen = maxConsonantLen
			}
		} else {
			consonantLen = duration / consonants
		}
	}
	vowelLen := 0
	if vowels > 0 {
		vowelLen = (duration - consonantLen*consonants) / vowels
	}

	position := startTick
	for i := startIndex; i < endIndex; i++ {
		phonemes[i].Position = position
		if isVowel[i] {
			position += vowelLen
		} else {
			position += consonantLen
		}
	}
}
