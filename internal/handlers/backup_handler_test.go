package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sidompet/sidompet-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArchiveFixture(t *testing.T) (*gin.Engine, *storage.LocalStorage) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	h := NewBackupHandler(nil, store)
	r := gin.New()
	r.GET("/backup/archives/download", h.DownloadArchive)
	r.DELETE("/backup/archives", h.DeleteArchive)
	return r, store
}

func TestDownloadArchive(t *testing.T) {
	router, store := newArchiveFixture(t)

	relPath, err := store.SaveBytes([]byte(`{"customers": []}`), "backup.json", "backups")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/backup/archives/download?path="+relPath, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"customers": []}`, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
}

func TestDownloadArchiveMissing(t *testing.T) {
	router, _ := newArchiveFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/backup/archives/download?path=backups/nope.json", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestArchivePathRejectsTraversal(t *testing.T) {
	router, _ := newArchiveFixture(t)

	for _, path := range []string{
		"",
		"../etc/passwd",
		"backups/../../etc/passwd",
		"/etc/passwd",
	} {
		req := httptest.NewRequest(http.MethodGet, "/backup/archives/download?path="+path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "path %q", path)
	}
}

func TestDeleteArchive(t *testing.T) {
	router, store := newArchiveFixture(t)

	relPath, err := store.SaveBytes([]byte("x"), "backup.json", "backups")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/backup/archives?path="+relPath, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, store.Exists(relPath))
}
