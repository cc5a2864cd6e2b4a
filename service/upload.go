package service

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"safai/lib"
	"safai/platform"
)

type UploadService struct {
	config platform.Config
}

func NewUploadService(config platform.Config) *UploadService {
	return &UploadService{config: config}
}

// UploadResult carries the stored name and fetch URL; Data holds the bytes
// base64-encoded when the file is an image, so clients can render a preview
// without a second request.
type UploadResult struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Data     string `json:"data,omitempty"`
}

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// Store writes the bytes under a sanitized name. Collisions get an
// incrementing _N suffix before the extension; an existing file is never
// overwritten. The stat-then-write pair is not atomic against a concurrent
// upload of the same name.
func (s *UploadService) Store(filename string, data []byte) (*UploadResult, error) {
	if filename == "" || len(data) == 0 {
		return nil, fmt.Errorf("no file provided: %w", lib.ErrValidation)
	}
	if err := os.MkdirAll(s.config.UploadDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	name := lib.SanitizeFilename(filename)
	base, ext := lib.SplitExt(name)
	path := filepath.Join(s.config.UploadDir, name)
	counter := 1
	for {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		name = fmt.Sprintf("%s_%d%s", base, counter, ext)
		path = filepath.Join(s.config.UploadDir, name)
		counter++
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	result := &UploadResult{
		Filename: name,
		URL:      "/uploads/" + name,
	}
	if imageExtensions[strings.ToLower(ext)] {
		result.Data = base64.StdEncoding.EncodeToString(data)
	}
	return result, nil
}

// Resolve maps a requested name onto the uploads directory, re-sanitizing it
// so a crafted path cannot reach outside. Missing files yield ErrNotFound.
func (s *UploadService) Resolve(filename string) (string, error) {
	name := lib.SanitizeFilename(filename)
	path := filepath.Join(s.config.UploadDir, name)
	if _, err := os.Stat(path); err != nil {
		return "", lib.ErrNotFound
	}
	return path, nil
}
