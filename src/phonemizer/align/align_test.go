package align

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/StickynoteStupid/utau/src/datastructures"
)

func note(lyric string, duration int) datastructures.Note {
	return datastructures.Note{Lyric: lyric, Duration: duration}
}

func TestPlanNoMarkers(t *testing.T) {
	bps := Plan([]datastructures.Note{note("sing", 480)}, []bool{false, true, false})

	assert.Equal(t, []Breakpoint{{Index: 1, Tick: 0}, {Index: 3, Tick: 480}}, bps,
		"synthetic first-vowel breakpoint plus the terminal one")
}

func TestPlanFirstVowelAtZero(t *testing.T) {
	bps := Plan([]datastructures.Note{note("i", 480)}, []bool{true})

	assert.Equal(t, []Breakpoint{{Index: 1, Tick: 480}}, bps)
}

func TestPlanMarker(t *testing.T) {
	notes := []datastructures.Note{note("eyes", 100), note("+3", 200)}
	bps := Plan(notes, []bool{true, false, false})

	assert.Equal(t, []Breakpoint{{Index: 2, Tick: 100}, {Index: 3, Tick: 300}}, bps)
}

func TestPlanMarkerAtSyntheticIndexIgnored(t *testing.T) {
	// the synthetic breakpoint already pins the first vowel to the run start;
	// a marker naming the same index cannot move it
	notes := []datastructures.Note{note("sky", 100), note("+3", 200)}
	bps := Plan(notes, []bool{false, false, true})

	assert.Equal(t, []Breakpoint{{Index: 2, Tick: 0}, {Index: 3, Tick: 300}}, bps)
}

func TestPlanMarkerNonIncreasingIgnored(t *testing.T) {
	notes := []datastructures.Note{note("i", 100), note("+3", 100), note("+2", 100)}
	bps := Plan(notes, []bool{true, false, true, false})

	assert.Equal(t, []Breakpoint{{Index: 2, Tick: 100}, {Index: 4, Tick: 300}}, bps,
		"index 1 after index 2 dropped")
}

func TestPlanMarkerOutOfBounds(t *testing.T) {
	notes := []datastructures.Note{note("i", 100), note("+9", 100)}
	bps := Plan(notes, []bool{true, false})

	assert.Equal(t, []Breakpoint{{Index: 2, Tick: 200}}, bps)
}

func TestPlanMarkerUnparsable(t *testing.T) {
	notes := []datastructures.Note{note("i", 100), note("+x", 100), note("+", 50)}
	bps := Plan(notes, []bool{true, false})

	assert.Equal(t, []Breakpoint{{Index: 2, Tick: 250}}, bps)
}

func TestPlanMarkerBelowSynthetic(t *testing.T) {
	// first vowel at 2 records (2, 0); a "+2" marker resolves to index 1 and
	// must not walk the list backwards
	notes := []datastructures.Note{note("stay", 100), note("+2", 100)}
	bps := Plan(notes, []bool{false, false, true})

	assert.Equal(t, []Breakpoint{{Index: 2, Tick: 0}, {Index: 3, Tick: 200}}, bps)
}

func TestDistributeConsonantsAndVowel(t *testing.T) {
	isVowel := []bool{false, false, true}
	phonemes := make([]datastructures.Phoneme, 3)

	Distribute(isVowel, phonemes, 0, 3, 0, 300, 60)

	assert.Equal(t, 0, phonemes[0].Position)
	assert.Equal(t, 60, phonemes[1].Position, "each consonant capped at min(60, 300/2/2)")
	assert.Equal(t, 120, phonemes[2].Position, "vowel gets the remaining 180 ticks")
}

func TestDistributeShortIntervalHalvesConsonants(t *testing.T) {
	isVowel := []bool{false, false, true}
	phonemes := make([]datastructures.Phoneme, 3)

	Distribute(isVowel, phonemes, 0, 3, 0, 100, 60)

	// 100/2/2 = 25 per consonant, vowel keeps 50
	assert.Equal(t, []datastructures.Phoneme{{Position: 0}, {Position: 25}, {Position: 50}}, phonemes)
}

func TestDistributeNoVowels(t *testing.T) {
	isVowel := []bool{false, false, false}
	phonemes := make([]datastructures.Phoneme, 3)

	Distribute(isVowel, phonemes, 0, 3, 0, 90, 60)

	assert.Equal(t, []datastructures.Phoneme{{Position: 0}, {Position: 30}, {Position: 60}}, phonemes)
}

func TestDistributeOffsetInterval(t *testing.T) {
	isVowel := []bool{true, false, true, false}
	phonemes := make([]datastructures.Phoneme, 4)

	Distribute(isVowel, phonemes, 2, 4, 100, 300, 60)

	assert.Equal(t, 0, phonemes[0].Position, "phonemes outside the interval untouched")
	assert.Equal(t, 100, phonemes[2].Position, "interval starts at its breakpoint tick")
	assert.Equal(t, 240, phonemes[3].Position, "trailing consonant starts after the 140-tick vowel")
}

func TestDistributeEmptyInterval(t *testing.T) {
	phonemes := make([]datastructures.Phoneme, 1)
	Distribute([]bool{true}, phonemes, 1, 1, 0, 100, 60)

	assert.Equal(t, 0, phonemes[0].Position)
}
