package disk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeDisk(t *testing.T, dir, name, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
	assert.NoError(t, err)
}

func TestReadWriteBlockRoundTrip(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	writeDisk(t, dir, "d1", "4\nblock2\nblock3\nblock4\n")

	store := NewStore(dir)

	err := store.WriteBlock("d1", 3, "hello")
	assert.NoError(err)

	v, err := store.ReadBlock("d1", 3)
	assert.NoError(err)
	assert.Equal("hello", v)

	v, err = store.ReadBlock("d1", 2)
	assert.NoError(err)
	assert.Equal("block2", v)

	v, err = store.ReadBlock("d1", 4)
	assert.NoError(err)
	assert.Equal("block4", v)
}

func TestBlockOneIsReadOnly(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	writeDisk(t, dir, "d1", "4\nblock2\nblock3\nblock4\n")

	store := NewStore(dir)

	err := store.WriteBlock("d1", 1, "x")
	assert.Error(err)
	assert.ErrorIs(err, errReadOnly)

	v, err := store.ReadBlock("d1", 1)
	assert.NoError(err)
	assert.Equal("4", v)
}

func TestBlockCountOneMeansNoUsableBlocks(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	writeDisk(t, dir, "d1", "1\n")

	store := NewStore(dir)

	_, err := store.ReadBlock("d1", 2)
	assert.Error(err)

	err = store.WriteBlock("d1", 2, "x")
	assert.Error(err)
}

func TestMissingDisk(t *testing.T) {
	assert := assert.New(t)

	store := NewStore(t.TempDir())

	_, err := store.ReadBlock("nope", 2)
	assert.Error(err)
}

func TestCorruptHeader(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	writeDisk(t, dir, "d1", "not-a-number\n")

	store := NewStore(dir)

	_, err := store.ReadBlock("d1", 1)
	assert.Error(err)
}

func TestSnapshotAndRestore(t *testing.T) {
	assert := assert.New(t)

	srcDir := t.TempDir()
	writeDisk(t, srcDir, "d1", "2\nblock2\n")

	store := NewStore(srcDir)

	snapDir := t.TempDir()
	err := store.Snapshot(snapDir)
	assert.NoError(err)

	restoreDir := t.TempDir()
	restoreStore := NewStore(restoreDir)
	err = restoreStore.Restore(snapDir)
	assert.NoError(err)

	v, err := restoreStore.ReadBlock("d1", 2)
	assert.NoError(err)
	assert.Equal("block2", v)
}
