package service

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"safai/lib"
	"safai/platform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUploadService(t *testing.T) *UploadService {
	t.Helper()
	return NewUploadService(platform.Config{UploadDir: t.TempDir()})
}

func TestStoreImageReturnsInlineData(t *testing.T) {
	svc := newUploadService(t)
	payload := []byte("png-bytes")

	result, err := svc.Store("a.png", payload)
	require.NoError(t, err)
	assert.Equal(t, "a.png", result.Filename)
	assert.Equal(t, "/uploads/a.png", result.URL)
	assert.Equal(t, base64.StdEncoding.EncodeToString(payload), result.Data)

	// a second upload of the same name dedups, never overwrites
	second, err := svc.Store("a.png", []byte("other"))
	require.NoError(t, err)
	assert.Equal(t, "a_1.png", second.Filename)
	assert.Equal(t, "/uploads/a_1.png", second.URL)
	assert.NotEmpty(t, second.Data)

	stored, err := os.ReadFile(filepath.Join(svc.config.UploadDir, "a.png"))
	require.NoError(t, err)
	assert.Equal(t, payload, stored)
}

func TestStoreNonImageOmitsInlineData(t *testing.T) {
	svc := newUploadService(t)

	first, err := svc.Store("a.txt", []byte("text"))
	require.NoError(t, err)
	assert.Equal(t, "a.txt", first.Filename)
	assert.Empty(t, first.Data)

	second, err := svc.Store("a.txt", []byte("text"))
	require.NoError(t, err)
	assert.Equal(t, "a_1.txt", second.Filename)
	assert.Empty(t, second.Data)
}

func TestStoreSanitizesFilename(t *testing.T) {
	svc := newUploadService(t)

	result, err := svc.Store("../../evil name.txt", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "evil_name.txt", result.Filename)

	_, err = os.Stat(filepath.Join(svc.config.UploadDir, "evil_name.txt"))
	assert.NoError(t, err)
}

func TestStoreValidation(t *testing.T) {
	svc := newUploadService(t)

	_, err := svc.Store("", []byte("x"))
	assert.ErrorIs(t, err, lib.ErrValidation)

	_, err = svc.Store("a.txt", nil)
	assert.ErrorIs(t, err, lib.ErrValidation)
}

func TestResolve(t *testing.T) {
	svc := newUploadService(t)
	_, err := svc.Store("a.txt", []byte("x"))
	require.NoError(t, err)

	path, err := svc.Resolve("a.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(svc.config.UploadDir, "a.txt"), path)

	_, err = svc.Resolve("missing.txt")
	assert.ErrorIs(t, err, lib.ErrNotFound)

	// traversal attempts resolve inside the uploads dir or not at all
	_, err = svc.Resolve("../../etc/passwd")
	assert.ErrorIs(t, err, lib.ErrNotFound)
}
