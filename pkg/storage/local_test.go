package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedDisk(t *testing.T) *localDisk {
	t.Helper()
	d := NewLocalDisk(t.TempDir(), "/static/").(*localDisk)
	d.now = func() time.Time { return time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC) }
	return d
}

func TestLocalDiskSaveAndDelete(t *testing.T) {
	d := fixedDisk(t)
	ctx := context.Background()

	key, err := d.Save(ctx, NamespaceDesigns, "Poster Final.pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "uploads/20240501103000_Poster_Final.pdf", key)

	data, err := os.ReadFile(filepath.Join(d.Root(), "uploads", "20240501103000_Poster_Final.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))
	assert.Equal(t, "/static/uploads/20240501103000_Poster_Final.pdf", d.URL(key))

	require.NoError(t, d.Delete(ctx, key))
	exists, err := d.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	// deleting twice is fine
	require.NoError(t, d.Delete(ctx, key))
}

func TestLocalDiskSaveSameSecondGetsDistinctKeys(t *testing.T) {
	d := fixedDisk(t)
	ctx := context.Background()

	first, err := d.Save(ctx, NamespacePaymentProofs, "bukti.jpg", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := d.Save(ctx, NamespacePaymentProofs, "bukti.jpg", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(second, "bukti_pembayaran/20240501103000_"))
	assert.True(t, strings.HasSuffix(second, "_bukti.jpg"))
}

func TestLocalDiskRejectsEscapingKeys(t *testing.T) {
	d := fixedDisk(t)
	full, err := d.fullPath("../../etc/passwd")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(full, d.Root()))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "My_cool_movie.mov", SanitizeFilename("My cool movie.mov"))
	assert.Equal(t, "etc_passwd", SanitizeFilename("../../../etc/passwd"))
	assert.Equal(t, "desain.png", SanitizeFilename("désain.png"))
	assert.Equal(t, "file", SanitizeFilename("..."))
}

func TestHasAllowedExt(t *testing.T) {
	allowed := []string{"png", "jpg", "jpeg", "pdf", "zip", "rar"}
	assert.True(t, HasAllowedExt("poster.PDF", allowed...))
	assert.True(t, HasAllowedExt("a.b.rar", allowed...))
	assert.False(t, HasAllowedExt("script.exe", allowed...))
	assert.False(t, HasAllowedExt("pdf", allowed...))
	assert.False(t, HasAllowedExt("", allowed...))
}
