// Package storage keeps uploaded files in per-application directories on an
// afero filesystem.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

var (
	ErrInvalidName = errors.New("storage: invalid file name")
	ErrNotExist    = errors.New("storage: file does not exist")
)

// SharedBucket holds uploads that are not tied to an application.
const SharedBucket = "shared"

type FileInfo struct {
	Name string
	Size int64
}

type Storage struct {
	fs afero.Fs
}

// NewOS roots storage at dir on the host filesystem, creating it if needed.
func NewOS(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return New(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
}

func New(fs afero.Fs) *Storage { return &Storage{fs: fs} }

// CleanName reduces name to its base component. It rejects names that would
// resolve outside the bucket.
func CleanName(name string) (string, error) {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.TrimSpace(base)
	if base == "" || base == "." || base == ".." || base == "/" {
		return "", ErrInvalidName
	}
	return base, nil
}

// Save writes r to bucket/name, replacing any existing file.
func (s *Storage) Save(bucket, name string, r io.Reader) (FileInfo, error) {
	name, err := CleanName(name)
	if err != nil {
		return FileInfo{}, err
	}
	if err := s.fs.MkdirAll(bucket, 0o755); err != nil {
		return FileInfo{}, fmt.Errorf("create bucket %s: %w", bucket, err)
	}
	f, err := s.fs.OpenFile(path.Join(bucket, name), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return FileInfo{}, fmt.Errorf("open %s/%s: %w", bucket, name, err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return FileInfo{}, fmt.Errorf("write %s/%s: %w", bucket, name, err)
	}
	return FileInfo{Name: name, Size: n}, nil
}

// Open returns a reader for bucket/name; the caller closes it.
func (s *Storage) Open(bucket, name string) (io.ReadCloser, error) {
	name, err := CleanName(name)
	if err != nil {
		return nil, err
	}
	f, err := s.fs.Open(path.Join(bucket, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// List returns the files in bucket ordered by name. A missing bucket is empty.
func (s *Storage) List(bucket string) ([]FileInfo, error) {
	entries, err := afero.ReadDir(s.fs, bucket)
	if errors.Is(err, os.ErrNotExist) {
		return []FileInfo{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := make([]FileInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		out = append(out, FileInfo{Name: e.Name(), Size: e.Size()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// DeleteAll removes bucket and everything in it.
func (s *Storage) DeleteAll(bucket string) error {
	return s.fs.RemoveAll(bucket)
}
