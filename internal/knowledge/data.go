package knowledge

import (
	"embed"
	"io/fs"
)

// The bundled dataset is a closed, versioned snapshot of the
// Well-Architected framework plus lens overlays. One JSON file per
// pillar at the root, lens files under lens/<lens-name>/.
//
//go:embed data
var dataFS embed.FS

// DefaultData returns the embedded dataset root.
func DefaultData() fs.FS {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		// The embed path is fixed at compile time; this cannot fail
		// for a correctly built binary.
		panic(err)
	}
	return sub
}
