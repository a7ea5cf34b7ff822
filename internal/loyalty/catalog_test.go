package loyalty

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	items := c.Items()
	require.NotEmpty(t, items)

	cakes, ok := c.Lookup("cakes")
	require.True(t, ok)
	require.Equal(t, "Торти", cakes.Name)
	require.Equal(t, 5, cakes.Points)

	_, ok = c.Lookup("pizza")
	require.False(t, ok)

	items[0].Name = "changed"
	require.NotEqual(t, "changed", c.Items()[0].Name)
}

func TestParseCatalog_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"bad json", `{`},
		{"empty", `[]`},
		{"no id", `[{"id":"","name":"x","points":1}]`},
		{"no name", `[{"id":"a","name":" ","points":1}]`},
		{"negative", `[{"id":"a","name":"x","points":-1}]`},
		{"duplicate", `[{"id":"a","name":"x","points":1},{"id":"a","name":"y","points":2}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.in))
			require.Error(t, err)
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog("")
	require.NoError(t, err)
	require.Equal(t, DefaultCatalog().Items(), c.Items())

	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"sacher","name":"Торта Сахер","points":7}]`), 0o600))

	c, err = LoadCatalog(path)
	require.NoError(t, err)
	require.Equal(t, []Item{{ID: "sacher", Name: "Торта Сахер", Points: 7}}, c.Items())

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
