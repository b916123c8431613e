package dashboard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const londonJSON = `{
  "bills": [
    {
      "date": "2024-01-02",
      "restaurant": "Cafe A",
      "latitude": 51.5,
      "longitude": -0.12,
      "items": [{"name": "Tea", "price": 2.5, "quantity": 2}],
      "tip": 1.0
    },
    {
      "date": "2024-02-10T19:30:00",
      "restaurant": "Dishoom",
      "latitude": 51.52,
      "longitude": -0.10,
      "items": [
        {"name": "Chai", "price": 3.2, "quantity": 3},
        {"name": "Naan", "price": 4.4}
      ],
      "tip": 2.0,
      "delivery_charge": 2.5
    }
  ]
}`

const leedsYAML = `bills:
  - date: "2024-03-05"
    restaurant: Bundobust
    latitude: 53.80
    longitude: -1.55
    items:
      - name: Bhel Puri
        price: 6.50
`

// writeFixtures creates a bills directory holding two London bills and one
// Leeds bill, totalling 6.00, 18.50 and 6.50.
func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "london.json"), []byte(londonJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "leeds.yaml"), []byte(leedsYAML), 0o644))
	return dir
}
