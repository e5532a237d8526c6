package datastructures

// Note is one melodic note as handed over by the score layer. A run of
// consecutive notes forms a single lyrical phrase; only the first note of a
// run carries the lyric, later notes either extend it or carry alignment
// markers.
type Note struct {
	Lyric        string `json:"lyric" bson:"lyric"`
	PhoneticHint string `json:"phonetic_hint,omitempty" bson:"phonetic_hint,omitempty"`
	Tone         int    `json:"tone" bson:"tone"`
	Duration     int    `json:"duration" bson:"duration"`
}

// Phoneme is one resolved synthesis unit with its start offset in ticks
// relative to the start of the note run. Positions can be negative when
// consonants borrow lead time before the beat.
type Phoneme struct {
	Unit     string `json:"unit" bson:"unit"`
	Position int    `json:"position" bson:"position"`
}
