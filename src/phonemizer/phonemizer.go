package phonemizer

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/StickynoteStupid/utau/src/datastructures"
	"github.com/StickynoteStupid/utau/src/instances"
	"github.com/StickynoteStupid/utau/src/phonemizer/align"
	"github.com/StickynoteStupid/utau/src/phonemizer/dictionary"
	"github.com/StickynoteStupid/utau/src/phonemizer/phone"
	"github.com/StickynoteStupid/utau/src/phonemizer/units"
)

// ContinuationLyric extends the previous note's last symbol instead of
// introducing new phonemes.
const ContinuationLyric = "-"

// DefaultConsonantLength caps a consonant's duration, in ticks.
const DefaultConsonantLength = 60

type Options struct {
	Dictionary      *dictionary.Dictionary
	Phones          *phone.Table
	Fallbacks       phone.Fallbacks
	ConsonantLength int
}

// Phonemizer turns note runs into timed synthesis units. It only reads the
// shared dictionary and phone tables, so concurrent Process calls are safe;
// the singer and consonant cap are snapshotted per call.
type Phonemizer struct {
	dict     *dictionary.Dictionary
	phones   *phone.Table
	resolver *units.Resolver

	mtx             sync.Mutex
	singer          instances.Voicebank
	consonantLength int
}

func New(opts Options) *Phonemizer {
	cl := opts.ConsonantLength
	if cl <= 0 {
		cl = DefaultConsonantLength
	}
	return &Phonemizer{
		dict:            opts.Dictionary,
		phones:          opts.Phones,
		resolver:        units.NewResolver(opts.Phones, opts.Fallbacks),
		consonantLength: cl,
	}
}

// SetSinger establishes which voicebank subsequent calls consult.
func (p *Phonemizer) SetSinger(vb instances.Voicebank) {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	p.singer = vb
}

func (p *Phonemizer) SetConsonantLength(ticks int) {
	if ticks <= 0 {
		return
	}
	p.mtx.Lock()
	defer p.mtx.Unlock()
	p.consonantLength = ticks
}

// Process phonemizes one note run against the current singer. prev and next
// are the neighbor notes outside the run, if any; only prev contributes
// transition context today.
func (p *Phonemizer) Process(notes []datastructures.Note, prev, next *datastructures.Note) []datastructures.Phoneme {
	p.mtx.Lock()
	vb := p.singer
	p.mtx.Unlock()
	return p.ProcessWith(vb, notes, prev, next)
}

// ProcessWith phonemizes against an explicit voicebank, leaving the current
// singer untouched. Callers carrying a per-request singer use this so
// concurrent requests never resolve against each other's bank.
func (p *Phonemizer) ProcessWith(vb instances.Voicebank, notes []datastructures.Note, prev, next *datastructures.Note) []datastructures.Phoneme {
	if len(notes) == 0 {
		return nil
	}

	p.mtx.Lock()
	consonantLength := p.consonantLength
	p.mtx.Unlock()

	note := notes[0]
	symbols := p.symbols(note)
	if len(symbols) == 0 {
		if note.Lyric == ContinuationLyric && prev != nil {
			if prevSymbols := p.symbols(*prev); len(prevSymbols) > 0 {
				return []datastructures.Phoneme{{Unit: prevSymbols[len(prevSymbols)-1] + " " + ContinuationLyric}}
			}
		}
		// unknown lyric passes through untouched so the editor still shows it
		return []datastructures.Phoneme{{Unit: note.Lyric}}
	}

	prevSymbol := "-"
	if prev != nil {
		if prevSymbols := p.symbols(*prev); len(prevSymbols) > 0 {
			prevSymbol = prevSymbols[len(prevSymbols)-1]
		}
	}

	isVowel := make([]bool, len(symbols))
	for i, sym := range symbols {
		isVowel[i] = p.phones.IsVowel(sym)
	}

	phonemes := make([]datastructures.Phoneme, len(symbols))
	for i, sym := range symbols {
		prevS := prevSymbol
		if i > 0 {
			prevS = symbols[i-1]
		}
		phonemes[i].Unit = p.resolver.Resolve(vb, prevS, sym, note.Tone, i == 0)
	}

	// consonants ahead of the first vowel borrow lead time before the beat
	startIndex, startTick := 0, 0
	for i, v := range isVowel {
		if v {
			startTick = -consonantLength * i
			break
		}
	}

	for _, bp := range align.Plan(notes, isVowel) {
		align.Distribute(isVowel, phonemes, startIndex, bp.Index, startTick, bp.Tick, consonantLength)
		startIndex, startTick = bp.Index, bp.Tick
	}

	return phonemes
}

// symbols resolves a note to its phonetic symbols. An explicit hint bypasses
// the dictionary entirely; unknown hint tokens are dropped.
func (p *Phonemizer) symbols(note datastructures.Note) []string {
	if hint := strings.TrimSpace(note.PhoneticHint); hint != "" {
		fields := strings.Fields(strings.ToLower(hint))
		symbols := make([]string, 0, len(fields))
		for _, sym := range fields {
			if p.phones.Known(sym) {
				symbols = append(symbols, sym)
			} else {
				logrus.WithField("symbol", sym).Debug("phonemizer: dropped unknown hint symbol")
			}
		}
		return symbols
	}
	return p.dict.Lookup(note.Lyric)
}
