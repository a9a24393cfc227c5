// Package uploads validates and stores uploaded cover images.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNoFile             = errors.New("no file provided")
	ErrDisallowedFileType = errors.New("file type not allowed")
	ErrInvalidName        = errors.New("invalid stored filename")
)

// File is an uploaded file before it is stored.
type File struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// FromFileHeader adapts a multipart upload. A nil header or an empty
// filename yields nil, meaning no file was provided.
func FromFileHeader(fh *multipart.FileHeader) *File {
	if fh == nil || fh.Filename == "" {
		return nil
	}
	return &File{
		Name: fh.Filename,
		Open: func() (io.ReadCloser, error) { return fh.Open() },
	}
}

// Present reports whether f carries an actual upload.
func (f *File) Present() bool {
	return f != nil && f.Name != "" && f.Open != nil
}

// Store writes cover images into a single directory.
type Store struct {
	dir string
}

// NewStore creates the upload directory if it is missing.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the upload directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Ping checks that the upload directory still exists.
func (s *Store) Ping() error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.dir)
	}
	return nil
}

// Save validates the extension of f, stores it under a generated name and returns that name.
func (s *Store) Save(f *File) (string, error) {
	if !f.Present() {
		return "", ErrNoFile
	}
	if !IsAllowedExtension(f.Name) {
		return "", fmt.Errorf("%w: %q", ErrDisallowedFileType, f.Name)
	}

	src, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := GenerateUniqueFilename(f.Name)
	if err := s.write(name, src); err != nil {
		return "", err
	}
	return name, nil
}

// write copies r into a temp file in the same directory and renames it into place.
func (s *Store) write(name string, r io.Reader) error {
	tmpFile, err := os.CreateTemp(s.dir, "upload_tmp_")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath) // no-op after a successful rename
	}()

	if _, err := io.Copy(tmpFile, r); err != nil {
		return fmt.Errorf("write upload: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("write upload: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("chmod upload: %w", err)
	}
	if err := os.Rename(tmpPath, filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("store upload: %w", err)
	}
	return nil
}

// Path returns the location of a stored file. Names that are not a plain
// file name inside the directory are rejected.
func (s *Store) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", ErrInvalidName
	}
	return filepath.Join(s.dir, name), nil
}

// Remove deletes a stored file. Missing files are ignored.
func (s *Store) Remove(name string) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
