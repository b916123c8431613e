package bills

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/billmap/internal/model"
)

// Encode writes bills as a region document in the given format. Optional
// fields that were absent on load stay absent.
func Encode(w io.Writer, format Format, bills []model.Bill) error {
	doc := model.Document{Bills: bills}
	if doc.Bills == nil {
		doc.Bills = []model.Bill{}
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(doc); err != nil {
			return eris.Wrap(err, "bills: encode json")
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return eris.Wrap(err, "bills: encode yaml")
		}
		if err := enc.Close(); err != nil {
			return eris.Wrap(err, "bills: flush yaml")
		}
	default:
		return eris.Wrapf(ErrUnsupportedFormat, "bills: encode %q", format)
	}
	return nil
}

// Save writes bills to path, choosing the format from the extension.
func Save(path string, bills []model.Bill) error {
	format, ok := FormatFor(path)
	if !ok {
		return fileError(path, ErrUnsupportedFormat)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, format, bills); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return eris.Wrapf(err, "bills: write %s", path)
	}
	return nil
}
