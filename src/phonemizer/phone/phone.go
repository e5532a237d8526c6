package phone

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Category classifies a phonetic symbol by its articulation family.
type Category int

const (
	Vowel Category = iota
	Stop
	Affricate
	Fricative
	Aspirate
	Liquid
	Nasal
	Semivowel
)

var categoryNames = map[string]Category{
	"vowel":     Vowel,
	"stop":      Stop,
	"affricate": Affricate,
	"fricative": Fricative,
	"aspirate":  Aspirate,
	"liquid":    Liquid,
	"nasal":     Nasal,
	"semivowel": Semivowel,
}

func (c Category) String() string {
	for name, cat := range categoryNames {
		if cat == c {
			return name
		}
	}
	return "unknown"
}

// Table maps phonetic symbols to categories. Built once, read-only after.
type Table struct {
	categories map[string]Category
}

// NewTable parses `symbol category` lines. Blank lines and lines starting
// with # are skipped; an unknown category name fails the whole build.
func NewTable(r io.Reader) (*Table, error) {
	t := &Table{categories: map[string]Category{}}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("phone: malformed line %q", line)
		}
		cat, ok := categoryNames[strings.ToLower(fields[1])]
		if !ok {
			return nil, fmt.Errorf("phone: unknown category %q", fields[1])
		}
		t.categories[strings.ToLower(fields[0])] = cat
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// Category returns the classification of a symbol.
func (t *Table) Category(symbol string) (Category, bool) {
	cat, ok := t.categories[symbol]
	return cat, ok
}

// Known reports whether symbol is part of the phone set at all. Used to
// validate explicit phonetic hints.
func (t *Table) Known(symbol string) bool {
	_, ok := t.categories[symbol]
	return ok
}

func (t *Table) IsVowel(symbol string) bool {
	cat, ok := t.categories[symbol]
	return ok && cat == Vowel
}

// Fallbacks maps a vowel symbol to substitute symbols tried, in order, when
// no transition unit exists for the original.
type Fallbacks map[string][]string

// NewFallbacks parses semicolon-separated `symbol=alt1,alt2` entries.
// Malformed entries are skipped.
func NewFallbacks(s string) Fallbacks {
	fb := Fallbacks{}
	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		kv := strings.SplitN(entry, "=", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.TrimSpace(strings.ToLower(kv[0]))
		var alts []string
		for _, alt := range strings.Split(kv[1], ",") {
			alt = strings.TrimSpace(strings.ToLower(alt))
			if alt != "" {
				alts = append(alts, alt)
			}
		}
		if key != "" && len(alts) > 0 {
			fb[key] = alts
		}
	}
	return fb
}
