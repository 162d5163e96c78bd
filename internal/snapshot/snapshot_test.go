package snapshot

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/satchel/internal/model"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

func TestLoadMissingFile(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Zero(t, m.Len())
}

func TestSaveThenLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	m := model.New()
	m.AddItem("b", types.String("two"))
	m.AddItem("a", types.Int(1))
	m.AddItem("n", types.Null())
	require.NoError(t, Save(dir, m))

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "n"}, got.ListItems())

	v, ok := got.GetItem("n")
	require.True(t, ok, "stored null survives the round trip")
	assert.True(t, v.IsNull())

	want, err := m.ToJSON()
	require.NoError(t, err)
	text, err := got.ToJSON()
	require.NoError(t, err)
	assert.Equal(t, want, text)
}

func TestSaveReplaces(t *testing.T) {
	dir := t.TempDir()

	m := model.New()
	m.AddItem("k", types.Int(1))
	require.NoError(t, Save(dir, m))

	m.RemoveItem("k")
	require.NoError(t, Save(dir, m))

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Zero(t, got.Len())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
	assert.Equal(t, FileName, entries[0].Name())
}

func TestSaveUnencodable(t *testing.T) {
	dir := t.TempDir()
	m := model.New()
	m.AddItem("bad", types.Float(math.Inf(1)))

	err := Save(dir, m)
	assert.ErrorIs(t, err, types.ErrSerialization)
	assert.NoFileExists(t, Path(dir))
}

func TestLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(Path(dir), []byte(`{"a": `), 0o644))

	_, err := Load(dir)
	assert.ErrorIs(t, err, types.ErrParse)
}
