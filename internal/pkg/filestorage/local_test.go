package filestorage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	storage, err := NewLocalStorage(dir)
	require.NoError(t, err)

	info, err := storage.Save("students_report_20260301_102030.xlsx", strings.NewReader("first"))
	require.NoError(t, err)
	assert.Equal(t, "students_report_20260301_102030.xlsx", info.Filename)
	assert.Equal(t, int64(5), info.FileSize)
	assert.Equal(t, filepath.Join(dir, info.Filename), info.Path)

	again, err := storage.Save("students_report_20260301_102030.xlsx", strings.NewReader("second"))
	require.NoError(t, err)
	assert.NotEqual(t, info.Filename, again.Filename)
	assert.True(t, strings.HasPrefix(again.Filename, "students_report_20260301_102030_"))
	assert.Equal(t, ".xlsx", filepath.Ext(again.Filename))

	first, err := os.ReadFile(info.Path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(first), "existing report is kept")
}

func TestLocalStorage_SaveStaysInBase(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir)
	require.NoError(t, err)

	info, err := storage.Save("../../escape.xlsx", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "escape.xlsx"), info.Path)

	_, err = storage.Save("..", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestLocalStorage_DeleteFile(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	info, err := storage.Save("transcript.xlsx", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, storage.DeleteFile(info.Filename))
	_, err = os.Stat(storage.GetFullPath(info.Filename))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, storage.DeleteFile("transcript.xlsx"), "deleting twice is fine")
	assert.NoError(t, storage.DeleteFile(""))
}
