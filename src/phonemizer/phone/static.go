package phone

import (
	"bytes"

	"github.com/gobuffalo/packr/v2"
)

var box = packr.New("phone-static", "./static")

// DefaultTable loads the embedded arpabet classification table.
func DefaultTable() (*Table, error) {
	data, err := box.Find("phones.txt")
	if err != nil {
		return nil, err
	}
	return NewTable(bytes.NewReader(data))
}

// DefaultFallbacks loads the embedded vowel substitution table.
func DefaultFallbacks() (Fallbacks, error) {
	data, err := box.Find("fallbacks.txt")
	if err != nil {
		return nil, err
	}
	return NewFallbacks(string(data)), nil
}
