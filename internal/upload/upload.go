// Package upload persists multipart image files to local disk. Uploaded
// files are served back at a predictable URL prefix by the static file
// route, so the stored name only needs to be unique and safe.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrUnsupportedType = errors.New("only image files are allowed (jpeg, jpg, png, gif, webp)")

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Store writes uploaded image files into a local directory and returns
// public URLs for them.
type Store struct {
	dir        string
	baseURL    string
	pathPrefix string
}

// NewStore creates the upload directory if missing and returns a Store.
func NewStore(dir, baseURL, pathPrefix string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{
		dir:        dir,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		pathPrefix: pathPrefix,
	}, nil
}

// Dir returns the local directory files are written to.
func (s *Store) Dir() string {
	return s.dir
}

// PathPrefix returns the URL prefix uploads are served under.
func (s *Store) PathPrefix() string {
	return s.pathPrefix
}

// Save writes one uploaded file to disk and returns its public URL.
// The filename combines a timestamp with a high-entropy suffix; write
// volume is low enough that no further collision handling is needed.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}

	name := fmt.Sprintf("product-%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return fmt.Sprintf("%s%s/%s", s.baseURL, s.pathPrefix, name), nil
}

// SaveAll saves up to max files, returning their public URLs in input order.
func (s *Store) SaveAll(files []*multipart.FileHeader, max int) ([]string, error) {
	if len(files) > max {
		files = files[:max]
	}
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		url, err := s.Save(fh)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}
