package services

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ma593y/seeklyzer/internal/pipeline"
)

type StorageService interface {
	SaveFile(file *multipart.FileHeader, fileType string) (string, string, error)
	GetFilePath(filename string) string
	DeleteFile(filename string) error
	EnsureUploadDir() error

	WriteExport(category, entity, ext, content string) (string, error)
	WriteJSONExport(category, entity string, v interface{}) (string, error)
}

type storageService struct {
	uploadPath string
	exportPath string
	now        func() time.Time
}

func NewStorageService(uploadPath, exportPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
		exportPath: exportPath,
		now:        time.Now,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

func (s *storageService) SaveFile(file *multipart.FileHeader, fileType string) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return "", "", fmt.Errorf("%w: %s", pipeline.ErrUnsupportedFormat, ext)
	}

	// Generate the unique filename
	uniqueFilename := fmt.Sprintf("%s_%s%s", fileType, uuid.New().String(), ext)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	return uniqueFilename, filePath, nil
}

func (s *storageService) GetFilePath(filename string) string {
	return filepath.Join(s.uploadPath, filename)
}

func (s *storageService) DeleteFile(filename string) error {
	filePath := s.GetFilePath(filename)
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// WriteExport saves content under <export>/<category>/<entity>_<timestamp>.<ext>.
// The UTC timestamp keeps names unique per save action; this is a convenience
// export, not a record of truth, so there is no atomic-write or fsync step.
func (s *storageService) WriteExport(category, entity, ext, content string) (string, error) {
	dir := filepath.Join(s.exportPath, category)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("%w: %v", pipeline.ErrPersistenceFailed, err)
	}

	timestamp := s.now().UTC().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.%s", entity, timestamp, ext))

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("%w: %v", pipeline.ErrPersistenceFailed, err)
	}

	return path, nil
}

// WriteJSONExport marshals v with indentation and saves it like WriteExport.
func (s *storageService) WriteJSONExport(category, entity string, v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %v", pipeline.ErrPersistenceFailed, err)
	}

	return s.WriteExport(category, entity, "json", string(data))
}
