package bills

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave_RoundTrip(t *testing.T) {
	for _, ext := range []string{".json", ".yaml"} {
		t.Run(ext, func(t *testing.T) {
			src := writeFile(t, t.TempDir(), "london.json", londonJSON)
			loaded, err := LoadFile(src)
			require.NoError(t, err)

			out := filepath.Join(t.TempDir(), "london"+ext)
			require.NoError(t, Save(out, loaded))

			reloaded, err := LoadFile(out)
			require.NoError(t, err)
			assert.Equal(t, loaded, reloaded)

			// Saving what was reloaded reproduces the file byte for byte.
			first, err := os.ReadFile(out)
			require.NoError(t, err)
			again := filepath.Join(t.TempDir(), "london"+ext)
			require.NoError(t, Save(again, reloaded))
			second, err := os.ReadFile(again)
			require.NoError(t, err)
			assert.Equal(t, string(first), string(second))
		})
	}
}

func TestEncode_OmitsAbsentOptionals(t *testing.T) {
	src := writeFile(t, t.TempDir(), "leeds.yaml", leedsYAML)
	loaded, err := LoadFile(src)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJSON, loaded))
	body := buf.String()

	assert.Contains(t, body, `"bills"`)
	assert.Contains(t, body, `"restaurant": "Pie Shop"`)
	assert.NotContains(t, body, "tip")
	assert.NotContains(t, body, "delivery_charge")
	assert.NotContains(t, body, "quantity")
	assert.NotContains(t, body, "Region")
}

func TestEncode_EmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJSON, nil))
	assert.JSONEq(t, `{"bills": []}`, buf.String())
}

func TestSave_UnsupportedExtension(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "out.txt"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
