package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store is the blob store the leave module uses for supporting documents.
// Implementations return a stable relative reference path; only that path is
// persisted on the application row.
type Store interface {
	Save(r io.Reader, originalName string, now time.Time) (string, error)
	Open(ref string) (io.ReadCloser, error)
	Delete(ref string) error
}

// LocalStore keeps uploaded documents on disk under baseDir, partitioned by
// upload date: leave_documents/2024/03/01/<uuid>_<name>.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) (*LocalStore, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

func (s *LocalStore) Save(r io.Reader, originalName string, now time.Time) (string, error) {
	name := sanitizeFilename(originalName)
	ref := filepath.Join(
		"leave_documents",
		now.Format("2006"),
		now.Format("01"),
		now.Format("02"),
		uuid.NewString()+"_"+name,
	)

	path := filepath.Join(s.baseDir, ref)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("prepare upload directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, r); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return filepath.ToSlash(ref), nil
}

func (s *LocalStore) Open(ref string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(s.baseDir, filepath.FromSlash(ref)))
	if err != nil {
		return nil, fmt.Errorf("open upload file: %w", err)
	}
	return file, nil
}

func (s *LocalStore) Delete(ref string) error {
	err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(ref)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete upload file: %w", err)
	}
	return nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "document"
	}
	return name
}
