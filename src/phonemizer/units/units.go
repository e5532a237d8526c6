package units

import (
	"github.com/StickynoteStupid/utau/src/instances"
	"github.com/StickynoteStupid/utau/src/phonemizer/phone"
)

// Resolver picks synthesis unit names for symbol transitions, constrained by
// whatever sample inventory the current singer actually ships.
type Resolver struct {
	phones    *phone.Table
	fallbacks phone.Fallbacks
}

func NewResolver(phones *phone.Table, fallbacks phone.Fallbacks) *Resolver {
	return &Resolver{phones: phones, fallbacks: fallbacks}
}

// Resolve builds the "prev symbol" transition label and checks it against the
// voicebank. On a miss, vowels get their substitutes tried in declared order.
// The first phoneme of a run additionally probes a silence-context label,
// since the cross-boundary symbol often has no recorded transition. When
// nothing maps, the context-free label is returned anyway; coverage gaps are
// normal and must not fail the run.
func (r *Resolver) Resolve(vb instances.Voicebank, prev, symbol string, tone int, first bool) string {
	if vb != nil {
		label := prev + " " + symbol
		if _, ok := vb.TryResolveUnit(label, tone); ok {
			return label
		}
		if r.phones.IsVowel(symbol) {
			for _, alt := range r.fallbacks[symbol] {
				label = prev + " " + alt
				if _, ok := vb.TryResolveUnit(label, tone); ok {
					return label
				}
			}
		}
		if first {
			label = "- " + symbol
			if _, ok := vb.TryResolveUnit(label, tone); ok {
				return label
			}
		}
	}
	return "- " + symbol
}
