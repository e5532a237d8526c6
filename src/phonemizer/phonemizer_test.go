package phonemizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StickynoteStupid/utau/src/datastructures"
	"github.com/StickynoteStupid/utau/src/phonemizer/dictionary"
	"github.com/StickynoteStupid/utau/src/phonemizer/phone"
)

const dictTable = `
cat  K AE1 T
sky  S K AY1
i  AY1
sing  S IH1 NG
dune  D UW1 N
`

const phoneTable = `
aa vowel
ae vowel
ah vowel
ay vowel
ih vowel
k stop
t stop
s fricative
ng nasal
`

type fullVoicebank struct{}

func (fullVoicebank) Name() string { return "full" }

func (fullVoicebank) TryResolveUnit(label string, tone int) (datastructures.UnitSample, bool) {
	return datastructures.UnitSample{Alias: label}, true
}

func fixture(t *testing.T) *Phonemizer {
	t.Helper()
	d := dictionary.New()
	d.Load(strings.NewReader(dictTable))
	table, err := phone.NewTable(strings.NewReader(phoneTable))
	require.NoError(t, err)

	p := New(Options{
		Dictionary: d,
		Phones:     table,
		Fallbacks:  phone.NewFallbacks("ay=ah;ae=ah"),
	})
	p.SetSinger(fullVoicebank{})
	return p
}

func TestProcessSingleNote(t *testing.T) {
	p := fixture(t)

	phonemes := p.Process([]datastructures.Note{{Lyric: "cat", Tone: 60, Duration: 480}}, nil, nil)

	require.Len(t, phonemes, 3)
	assert.Equal(t, datastructures.Phoneme{Unit: "- k", Position: -60}, phonemes[0],
		"leading consonant borrows lead time before the beat")
	assert.Equal(t, datastructures.Phoneme{Unit: "k ae", Position: 0}, phonemes[1],
		"first vowel lands on the beat")
	assert.Equal(t, "ae t", phonemes[2].Unit)
	assert.Equal(t, 420, phonemes[2].Position, "vowel keeps 480-60 ticks")
}

func TestProcessNeighborContext(t *testing.T) {
	p := fixture(t)
	prev := datastructures.Note{Lyric: "sing"}

	phonemes := p.Process([]datastructures.Note{{Lyric: "i", Tone: 60, Duration: 480}}, &prev, nil)

	require.Len(t, phonemes, 1)
	assert.Equal(t, "ng ay", phonemes[0].Unit, "previous note's last symbol is the context")
	assert.Equal(t, 0, phonemes[0].Position)
}

func TestProcessHintOverridesDictionary(t *testing.T) {
	p := fixture(t)
	notes := []datastructures.Note{{Lyric: "cat", PhoneticHint: "S AY bogus", Tone: 60, Duration: 480}}

	phonemes := p.Process(notes, nil, nil)

	require.Len(t, phonemes, 2, "unknown hint token dropped")
	assert.Equal(t, "- s", phonemes[0].Unit)
	assert.Equal(t, "s ay", phonemes[1].Unit)
}

func TestProcessPassthrough(t *testing.T) {
	p := fixture(t)

	phonemes := p.Process([]datastructures.Note{{Lyric: "xyzzy", Duration: 480}}, nil, nil)

	assert.Equal(t, []datastructures.Phoneme{{Unit: "xyzzy", Position: 0}}, phonemes)
}

func TestProcessPassthroughWhenDictionaryNotReady(t *testing.T) {
	table, err := phone.NewTable(strings.NewReader(phoneTable))
	require.NoError(t, err)
	p := New(Options{Dictionary: dictionary.New(), Phones: table})

	phonemes := p.Process([]datastructures.Note{{Lyric: "cat", Duration: 480}}, nil, nil)

	assert.Equal(t, []datastructures.Phoneme{{Unit: "cat", Position: 0}}, phonemes,
		"not-yet-built dictionary degrades to passthrough, never blocks")
}

func TestProcessContinuation(t *testing.T) {
	p := fixture(t)
	prev := datastructures.Note{Lyric: "sing"}

	phonemes := p.Process([]datastructures.Note{{Lyric: "-", Duration: 480}}, &prev, nil)

	assert.Equal(t, []datastructures.Phoneme{{Unit: "ng -", Position: 0}}, phonemes)
}

func TestProcessContinuationWithoutContext(t *testing.T) {
	p := fixture(t)

	phonemes := p.Process([]datastructures.Note{{Lyric: "-", Duration: 480}}, nil, nil)

	assert.Equal(t, []datastructures.Phoneme{{Unit: "-", Position: 0}}, phonemes)
}

func TestProcessAlignmentMarker(t *testing.T) {
	p := fixture(t)
	notes := []datastructures.Note{
		{Lyric: "sing", Tone: 60, Duration: 100},
		{Lyric: "+3", Tone: 60, Duration: 200},
	}

	phonemes := p.Process(notes, nil, nil)

	require.Len(t, phonemes, 3)
	assert.Equal(t, -60, phonemes[0].Position, "s borrows lead time")
	assert.Equal(t, 0, phonemes[1].Position, "ih on the beat")
	assert.Equal(t, 100, phonemes[2].Position, "ng pinned to the second note by the marker")
}

func TestProcessUntabledSymbolsNotVowels(t *testing.T) {
	p := fixture(t)

	// d, uw and n are missing from the phone table, so nothing in the run is
	// a vowel: no lead time, duration split evenly
	phonemes := p.Process([]datastructures.Note{{Lyric: "dune", Tone: 60, Duration: 90}}, nil, nil)

	require.Len(t, phonemes, 3)
	assert.Equal(t, "- d", phonemes[0].Unit)
	assert.Equal(t, 0, phonemes[0].Position)
	assert.Equal(t, 30, phonemes[1].Position)
	assert.Equal(t, 60, phonemes[2].Position)
}

type emptyVoicebank struct{}

func (emptyVoicebank) Name() string { return "empty" }

func (emptyVoicebank) TryResolveUnit(label string, tone int) (datastructures.UnitSample, bool) {
	return datastructures.UnitSample{}, false
}

func TestProcessWithRequestScopedSinger(t *testing.T) {
	p := fixture(t)
	notes := []datastructures.Note{{Lyric: "cat", Tone: 60, Duration: 480}}

	scoped := p.ProcessWith(emptyVoicebank{}, notes, nil, nil)
	require.Len(t, scoped, 3)
	assert.Equal(t, "- ae", scoped[1].Unit, "request bank consulted, not the current singer")

	current := p.Process(notes, nil, nil)
	require.Len(t, current, 3)
	assert.Equal(t, "k ae", current[1].Unit, "current singer untouched by the scoped call")
}

func TestProcessEmptyRun(t *testing.T) {
	p := fixture(t)
	assert.Nil(t, p.Process(nil, nil, nil))
}

func TestProcessIdempotent(t *testing.T) {
	p := fixture(t)
	notes := []datastructures.Note{
		{Lyric: "cat", Tone: 62, Duration: 480},
		{Lyric: "+3", Tone: 62, Duration: 240},
	}
	prev := datastructures.Note{Lyric: "sky"}

	first := p.Process(notes, &prev, nil)
	second := p.Process(notes, &prev, nil)

	assert.Equal(t, first, second, "no state leaks between calls")
}

func TestSetConsonantLength(t *testing.T) {
	p := fixture(t)
	p.SetConsonantLength(30)

	phonemes := p.Process([]datastructures.Note{{Lyric: "cat", Tone: 60, Duration: 480}}, nil, nil)

	require.Len(t, phonemes, 3)
	assert.Equal(t, -30, phonemes[0].Position)

	p.SetConsonantLength(0)
	phonemes = p.Process([]datastructures.Note{{Lyric: "cat", Tone: 60, Duration: 480}}, nil, nil)
	assert.Equal(t, -30, phonemes[0].Position, "non-positive cap ignored")
}
