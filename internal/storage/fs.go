// Package storage implements the object store over the local
// filesystem: buckets are directories under a root, public URLs are
// served by the HTTP server's static file handler.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"wellspring/internal/models"
)

type FileStore struct {
	root    string
	baseURL string
}

// NewFileStore creates the store root and known buckets up front.
func NewFileStore(root, baseURL string) (*FileStore, error) {
	for _, bucket := range []string{models.BucketExperts, models.BucketGallery, models.BucketStatic} {
		if err := os.MkdirAll(filepath.Join(root, bucket), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}
	return &FileStore{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Root returns the directory the HTTP static handler should serve.
func (s *FileStore) Root() string {
	return s.root
}

func (s *FileStore) Upload(ctx context.Context, bucket, name string, r io.Reader) error {
	if err := validName(bucket, name); err != nil {
		return err
	}

	path := filepath.Join(s.root, bucket, name)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create object %s/%s: %w", bucket, name, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, r); err != nil {
		return fmt.Errorf("failed to write object %s/%s: %w", bucket, name, err)
	}
	return nil
}

// List returns the bucket's objects, newest first.
func (s *FileStore) List(ctx context.Context, bucket string) ([]models.GalleryImage, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, bucket))
	if err != nil {
		return nil, fmt.Errorf("failed to list bucket %s: %w", bucket, err)
	}

	images := make([]models.GalleryImage, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		images = append(images, models.GalleryImage{
			Name:      entry.Name(),
			URL:       s.PublicURL(bucket, entry.Name()),
			CreatedAt: info.ModTime(),
		})
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].CreatedAt.After(images[j].CreatedAt)
	})
	return images, nil
}

func (s *FileStore) Remove(ctx context.Context, bucket, name string) error {
	if err := validName(bucket, name); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.root, bucket, name)); err != nil {
		return fmt.Errorf("failed to remove object %s/%s: %w", bucket, name, err)
	}
	return nil
}

func (s *FileStore) PublicURL(bucket, name string) string {
	return fmt.Sprintf("%s/static/%s/%s", s.baseURL, bucket, name)
}

func validName(bucket, name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid object name %q", name)
	}
	if bucket == "" || strings.ContainsAny(bucket, `/\`) {
		return fmt.Errorf("invalid bucket %q", bucket)
	}
	return nil
}
