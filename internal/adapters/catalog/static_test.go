package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freshroute/internal/domain/apperrors"
)

func TestLookupDecayConstant(t *testing.T) {
	c := New()

	constant, err := c.LookupDecayConstant("Tomato")
	require.NoError(t, err)
	assert.Equal(t, 0.5, constant)

	_, err = c.LookupDecayConstant("Durian")
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedProduce)
}

func TestList_ReturnsEveryEntry(t *testing.T) {
	c := New()

	produce := c.List()
	assert.Len(t, produce, 10)

	for _, p := range produce {
		assert.GreaterOrEqual(t, p.DecayConstant, 0.0, "produce %s", p.Name)
	}
}

func TestNewFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "produce.json")
	content := `[{"name": "Okra", "category": "vegetables", "decay_constant": 0.9}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := NewFromFile(path)
	require.NoError(t, err)

	constant, err := c.LookupDecayConstant("Okra")
	require.NoError(t, err)
	assert.Equal(t, 0.9, constant)
}

func TestNewFromFile_RejectsEmptyCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "produce.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

	_, err := NewFromFile(path)
	assert.Error(t, err)
}
