package dictionary

import (
	"bytes"
	"io"

	"github.com/gobuffalo/packr/v2"
)

var box = packr.New("dictionary-static", "./static")

// LoadStarterAsync builds from the embedded starter table, used when no
// dictionary path is configured.
func (d *Dictionary) LoadStarterAsync() {
	d.LoadAsync(func() (io.ReadCloser, error) {
		data, err := box.Find("starter.txt")
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	})
}
