// Package storage defines the vault file-system abstraction.
package storage

import "github.com/starford/ansuz/internal/models"

// Provider is the interface for vault file operations. All paths are
// slash-separated and relative to the vault root.
type Provider interface {
	// List returns metadata for every .md file under dir. A missing dir
	// yields an empty listing, not an error.
	List(dir string) ([]models.NoteMetadata, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path, creating or replacing it.
	Write(path string, content []byte) error
	// Create atomically writes content to path; fails with fs.ErrExist if
	// the file is already there.
	Create(path string, content []byte) error
	// Exists reports whether a file or directory is present at path.
	Exists(path string) (bool, error)
	// EnsureFolder creates the directory at path if needed.
	EnsureFolder(path string) error
	// Delete removes the file at path.
	Delete(path string) error
	// Move renames oldPath to newPath.
	Move(oldPath, newPath string) error
}
