package units

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StickynoteStupid/utau/src/datastructures"
	"github.com/StickynoteStupid/utau/src/phonemizer/phone"
)

type fakeVoicebank struct {
	labels  map[string]bool
	queried []string
}

func (f *fakeVoicebank) Name() string { return "fake" }

func (f *fakeVoicebank) TryResolveUnit(label string, tone int) (datastructures.UnitSample, bool) {
	f.queried = append(f.queried, label)
	return datastructures.UnitSample{Alias: label}, f.labels[label]
}

func fixture(t *testing.T) *Resolver {
	t.Helper()
	table, err := phone.NewTable(strings.NewReader("aa vowel\nah vowel\nax vowel\nt stop\nk stop"))
	require.NoError(t, err)
	return NewResolver(table, phone.NewFallbacks("aa=ah,ax"))
}

func TestResolveDirect(t *testing.T) {
	r := fixture(t)
	vb := &fakeVoicebank{labels: map[string]bool{"t aa": true}}

	assert.Equal(t, "t aa", r.Resolve(vb, "t", "aa", 60, false))
	assert.Equal(t, []string{"t aa"}, vb.queried, "no fallback probes on a direct hit")
}

func TestResolveVowelFallback(t *testing.T) {
	r := fixture(t)
	vb := &fakeVoicebank{labels: map[string]bool{"t ah": true}}

	assert.Equal(t, "t ah", r.Resolve(vb, "t", "aa", 60, false))
	assert.Equal(t, []string{"t aa", "t ah"}, vb.queried, "fallbacks probed in declared order")
}

func TestResolveFallbackOrderExhausted(t *testing.T) {
	r := fixture(t)
	vb := &fakeVoicebank{labels: map[string]bool{"t ax": true}}

	assert.Equal(t, "t ax", r.Resolve(vb, "t", "aa", 60, false))
	assert.Equal(t, []string{"t aa", "t ah", "t ax"}, vb.queried)
}

func TestResolveConsonantNoFallback(t *testing.T) {
	r := fixture(t)
	vb := &fakeVoicebank{labels: map[string]bool{}}

	assert.Equal(t, "- k", r.Resolve(vb, "aa", "k", 60, false))
	assert.Equal(t, []string{"aa k"}, vb.queried, "consonants degrade without substitution probes")
}

func TestResolveFirstProbesSilence(t *testing.T) {
	r := fixture(t)
	vb := &fakeVoicebank{labels: map[string]bool{"- k": true}}

	assert.Equal(t, "- k", r.Resolve(vb, "aa", "k", 60, true))
	assert.Equal(t, []string{"aa k", "- k"}, vb.queried)
}

func TestResolveDegradesWithoutError(t *testing.T) {
	r := fixture(t)
	vb := &fakeVoicebank{labels: map[string]bool{}}

	assert.Equal(t, "- aa", r.Resolve(vb, "t", "aa", 60, true))
}

func TestResolveUntabledSymbol(t *testing.T) {
	table, err := phone.NewTable(strings.NewReader("aa vowel\nah vowel\nt stop"))
	require.NoError(t, err)
	// "uh" has a fallback entry but is missing from the table, so it must not
	// classify as a vowel and must not get substitution probes
	r := NewResolver(table, phone.NewFallbacks("uh=ah"))
	vb := &fakeVoicebank{labels: map[string]bool{"t ah": true}}

	assert.Equal(t, "- uh", r.Resolve(vb, "t", "uh", 60, false))
	assert.Equal(t, []string{"t uh"}, vb.queried)
}

func TestResolveNilVoicebank(t *testing.T) {
	r := fixture(t)

	assert.Equal(t, "- aa", r.Resolve(nil, "t", "aa", 60, false))
}
