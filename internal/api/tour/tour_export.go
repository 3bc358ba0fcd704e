package tour

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/FACorreiaa/go-foodie-tour/internal/types"
)

// ExportFilename is the name under which a tour export is saved.
const ExportFilename = "foodie_tours.json"

// WriteExport writes the export document of a tour as indented JSON with
// non-ASCII and HTML characters left unescaped.
func WriteExport(w io.Writer, tour types.Tour) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(tour.Export())
}

// SaveExport writes the export document of a tour to the file at path.
func SaveExport(path string, tour types.Tour) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	return writeAndClose(file, tour)
}

// writeAndClose reports a failed Close when the write itself succeeded.
func writeAndClose(wc io.WriteCloser, tour types.Tour) (err error) {
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close export: %w", cerr)
		}
	}()
	return WriteExport(wc, tour)
}
