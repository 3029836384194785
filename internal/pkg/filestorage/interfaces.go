package filestorage

import "io"

// FileInfo describes a stored file
type FileInfo struct {
	Path     string // Full filesystem path
	Filename string // Name as stored, which may differ from the requested one
	FileSize int64  // Size in bytes
}

// FileStorage persists generated files such as spreadsheet reports
type FileStorage interface {
	// Save writes content under filename and returns where it landed
	Save(filename string, content io.Reader) (*FileInfo, error)

	// DeleteFile removes a stored file; a missing file is not an error
	DeleteFile(filename string) error

	// GetFullPath returns the filesystem path of a stored file
	GetFullPath(filename string) string
}
