package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrUnsupportedType = errors.New("unsupported file type")

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// Saver writes multipart image uploads into a local directory and builds
// the public URLs recorded on listings. Filenames are random so uploads
// never collide or overwrite each other.
type Saver struct {
	dir     string
	baseURL string
}

func NewSaver(dir, baseURL string) (*Saver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir failed: %w", err)
	}
	return &Saver{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Save stores a single uploaded file and returns its public URL.
func (s *Saver) Save(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(s.dir, name)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded file failed: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create upload target failed: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", fmt.Errorf("write uploaded file failed: %w", err)
	}

	return s.baseURL + "/uploads/" + name, nil
}

// SaveAll stores every file and returns their URLs. Fails on the first
// bad file; already written files are left in place.
func (s *Saver) SaveAll(files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := s.Save(file)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// Dir is the local directory served under /uploads.
func (s *Saver) Dir() string {
	return s.dir
}
