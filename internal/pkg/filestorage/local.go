package filestorage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/logger"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
}

var _ FileStorage = (*LocalStorage)(nil)

// NewLocalStorage creates a new LocalStorage instance rooted at basePath, creating it if needed.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Debug().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath}, nil
}

// cleanName strips any directory component so files stay under basePath
func cleanName(filename string) (string, error) {
	name := filepath.Base(filename)
	if name == "" || name == "." || name == "/" || name == ".." {
		return "", fmt.Errorf("invalid file name: %q", filename)
	}
	return name, nil
}

// Save writes content to basePath/filename. An existing file is never overwritten:
// the new one gets a short unique suffix before the extension.
func (ls *LocalStorage) Save(filename string, content io.Reader) (*FileInfo, error) {
	name, err := cleanName(filename)
	if err != nil {
		return nil, err
	}

	dstPath := filepath.Join(ls.basePath, name)
	dst, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		ext := filepath.Ext(name)
		name = strings.TrimSuffix(name, ext) + "_" + uuid.NewString()[:8] + ext
		dstPath = filepath.Join(ls.basePath, name)
		dst, err = os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	}
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, content)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write file content")
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Info().Str("filename", filename).Str("saved_as", name).Int64("bytes", size).Msg("File saved successfully")
	return &FileInfo{Path: dstPath, Filename: name, FileSize: size}, nil
}

// DeleteFile removes a file from the storage directory.
// Returns nil if deletion is successful or if the file doesn't exist.
func (ls *LocalStorage) DeleteFile(filename string) error {
	if filename == "" {
		return nil
	}
	name, err := cleanName(filename)
	if err != nil {
		return err
	}

	physicalPath := filepath.Join(ls.basePath, name)
	if err := os.Remove(physicalPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// GetFullPath returns the full filesystem path for a stored file name
func (ls *LocalStorage) GetFullPath(filename string) string {
	name, err := cleanName(filename)
	if err != nil {
		return ""
	}
	return filepath.Join(ls.basePath, name)
}
