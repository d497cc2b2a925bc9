package registry_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hbjs97/aiida-project/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntry(name string) registry.Entry {
	return registry.Entry{
		ID:          "0b0e1c9e-4c1f-4a37-9df0-3b4b3d7e2a11",
		Name:        name,
		ProjectPath: "/tmp/" + name,
		VenvPath:    "/tmp/" + name + "/.venv",
		Engine:      "uv",
		PythonPath:  "/usr/bin/python3.11",
		CreatedAt:   "2026-02-14T10:30:00Z",
	}
}

func TestLoad_MissingFileReturnsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", registry.FileName)
	r, err := registry.Load(path)
	require.NoError(t, err)
	assert.Empty(t, r.Projects)
}

func TestLoad_CorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), registry.FileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := registry.Load(path)
	assert.Error(t, err)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", registry.FileName)
	r := registry.New(path)
	r.Put(sampleEntry("proj1"))
	r.Put(sampleEntry("alpha"))
	require.NoError(t, r.Save())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := registry.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "proj1"}, loaded.Names())
	got, err := loaded.Get("proj1")
	require.NoError(t, err)
	assert.Equal(t, sampleEntry("proj1"), got)
}

func TestGet_NotFound(t *testing.T) {
	_, err := registry.New("").Get("ghost")
	assert.ErrorIs(t, err, registry.ErrNotFound)
}

func TestRemove_Idempotent(t *testing.T) {
	r := registry.New("")
	r.Put(sampleEntry("proj1"))
	r.Remove("proj1")
	r.Remove("proj1")
	assert.Empty(t, r.Names())
}

func TestSave_NoPath(t *testing.T) {
	assert.Error(t, registry.New("").Save())
}

func TestPut_Upserts(t *testing.T) {
	r := registry.New("")
	e := sampleEntry("proj1")
	r.Put(e)
	e.PythonPath = "/usr/bin/python3.12"
	r.Put(e)

	got, err := r.Get("proj1")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/python3.12", got.PythonPath)
	assert.Len(t, r.Names(), 1)
}

func TestAcquire_SerializesLoadToSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", registry.FileName)

	first, err := registry.Acquire(path)
	require.NoError(t, err)
	assert.FileExists(t, path+".lock")

	type result struct {
		reg *registry.Registry
		err error
	}
	second := make(chan result, 1)
	go func() {
		r, err := registry.Acquire(path)
		second <- result{r, err}
	}()

	select {
	case <-second:
		t.Fatal("second Acquire returned while the first still holds the lock")
	case <-time.After(100 * time.Millisecond):
	}

	first.Put(sampleEntry("proj1"))
	require.NoError(t, first.Save())
	require.NoError(t, first.Release())

	got := <-second
	require.NoError(t, got.err)
	defer got.reg.Release()
	_, err = got.reg.Get("proj1")
	assert.NoError(t, err, "the waiting session sees the record saved before the lock was released")

	got.reg.Put(sampleEntry("proj2"))
	require.NoError(t, got.reg.Save())
	loaded, err := registry.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"proj1", "proj2"}, loaded.Names())
}

func TestAcquire_CorruptFileReleasesLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), registry.FileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := registry.Acquire(path)
	require.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{"version":1}`), 0600))
	r, err := registry.Acquire(path)
	require.NoError(t, err)
	assert.NoError(t, r.Release())
}

func TestRelease_WithoutLock(t *testing.T) {
	r := registry.New("")
	assert.NoError(t, r.Release())
	assert.NoError(t, r.Release())
}
