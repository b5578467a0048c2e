package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sidompet/sidompet-api/internal/services"
	"github.com/sidompet/sidompet-api/internal/storage"
)

// maxBackupSize caps restore uploads at 50MB
const maxBackupSize = 50 << 20

type BackupHandler struct {
	backupService *services.BackupService
	storage       *storage.LocalStorage
}

func NewBackupHandler(backupService *services.BackupService, store *storage.LocalStorage) *BackupHandler {
	return &BackupHandler{backupService: backupService, storage: store}
}

// Export downloads the dataset as a JSON backup. ?scope=all additionally
// includes company settings and the reserve balance.
func (h *BackupHandler) Export(c *gin.Context) {
	scope := c.DefaultQuery("scope", "data")
	if scope != "data" && scope != "all" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scope tidak valid (data, all)"})
		return
	}

	data, filename, err := h.backupService.Export(c.Request.Context(), scope)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/json", data)
}

// Restore replaces the dataset from a backup. Accepts a multipart "file"
// field, a raw JSON body, or ?path= pointing at a server-side archive.
func (h *BackupHandler) Restore(c *gin.Context) {
	data, err := h.readBackupBody(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.backupService.Import(c.Request.Context(), data); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "data berhasil dipulihkan"})
}

// DownloadArchive re-serves a previously archived backup export
func (h *BackupHandler) DownloadArchive(c *gin.Context) {
	relPath, err := archivePath(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.storage.Exists(relPath) {
		c.JSON(http.StatusNotFound, gin.H{"error": "arsip tidak ditemukan"})
		return
	}

	c.FileAttachment(h.storage.GetFullPath(relPath), filepath.Base(relPath))
}

// DeleteArchive removes an archived backup export from server storage
func (h *BackupHandler) DeleteArchive(c *gin.Context) {
	relPath, err := archivePath(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.storage.Exists(relPath) {
		c.JSON(http.StatusNotFound, gin.H{"error": "arsip tidak ditemukan"})
		return
	}

	if err := h.storage.Delete(relPath); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "arsip dihapus"})
}

func (h *BackupHandler) readBackupBody(c *gin.Context) ([]byte, error) {
	if c.Query("path") != "" {
		relPath, err := archivePath(c)
		if err != nil {
			return nil, err
		}
		f, err := h.storage.Open(relPath)
		if err != nil {
			return nil, errors.New("arsip tidak ditemukan")
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, maxBackupSize))
	}

	if file, _, err := c.Request.FormFile("file"); err == nil {
		defer file.Close()
		return io.ReadAll(io.LimitReader(file, maxBackupSize))
	}

	return io.ReadAll(io.LimitReader(c.Request.Body, maxBackupSize))
}

// archivePath reads and sanitizes the ?path= query: it must stay relative and
// inside the storage root.
func archivePath(c *gin.Context) (string, error) {
	relPath := c.Query("path")
	if relPath == "" || filepath.IsAbs(relPath) ||
		strings.Contains(relPath, "..") || strings.Contains(relPath, "\\") {
		return "", errors.New("path arsip tidak valid")
	}
	return filepath.Clean(relPath), nil
}
