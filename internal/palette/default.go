package palette

import (
	"bytes"
	_ "embed"
	"sync"

	"github.com/kailas-cloud/flossdex/internal/domain/floss"
)

//go:embed data/dmc.txt
var bundled []byte

var loadBundled = sync.OnceValues(func() (*floss.Palette, error) {
	return Load(bytes.NewReader(bundled), FormatText)
})

// Default returns the bundled DMC palette, parsed once per process.
func Default() (*floss.Palette, error) {
	return loadBundled()
}

// Open returns the palette at path, or the bundled palette when path is empty.
func Open(path string) (*floss.Palette, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}
