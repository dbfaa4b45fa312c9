package memory

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow(t *testing.T) {
	entries := []string{"a", "b", "c", "d"}

	assert.Equal(t, []string{"c", "d"}, Window(entries, 2))
	assert.Equal(t, entries, Window(entries, 0))
	assert.Equal(t, entries, Window(entries, -3))
	assert.Equal(t, entries, Window(entries, 10))
	assert.Empty(t, Window(nil, 5))

	w := Window(entries, 2)
	w[0] = "x"
	assert.Equal(t, "c", entries[2], "window must not alias its input")
}

func TestRecent(t *testing.T) {
	store, err := NewInMemoryStore()
	require.NoError(t, err)
	for _, e := range []string{"1", "2", "3"} {
		require.NoError(t, store.Append("s", e))
	}
	got, err := Recent(store, "s", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3"}, got)
}

func TestOpen(t *testing.T) {
	inMem, err := Open("")
	require.NoError(t, err)
	assert.IsType(t, &InMemoryStore{}, inMem)

	file, err := Open(filepath.Join(t.TempDir(), "memory.json"), func(o *Options) { o.MaxItems = 2 })
	require.NoError(t, err)
	fs, ok := file.(*FileStore)
	require.True(t, ok)
	assert.Equal(t, 2, fs.MaxItems())
}
