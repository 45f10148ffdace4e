package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Allowed upload extensions per file kind. Media covers what the browser
// recorder produces plus common audio container formats.
var allowedExtensions = map[string]map[string]bool{
	"resume": {".pdf": true, ".docx": true, ".doc": true},
	"media":  {".webm": true, ".mp4": true, ".mp3": true, ".wav": true, ".ogg": true, ".m4a": true},
}

type StorageService interface {
	SaveFile(file *multipart.FileHeader, kind string) (string, string, error)
	GetFilePath(filename string) string
	PublicURL(filename string) string
	DeleteFile(filename string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
	baseURL    string
}

func NewStorageService(uploadPath, baseURL string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

func (s *storageService) SaveFile(file *multipart.FileHeader, kind string) (string, string, error) {
	allowed, ok := allowedExtensions[kind]
	if !ok {
		return "", "", fmt.Errorf("unknown file kind: %s", kind)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowed[ext] {
		return "", "", fmt.Errorf("invalid file extension for %s: %s", kind, ext)
	}

	// Generate the unique filename
	uniqueFilename := fmt.Sprintf("%s_%s%s", kind, uuid.New().String(), ext)
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

// PublicURL returns the fetchable URL the transcriber and resume extractor can
// download from.
func (s *storageService) PublicURL(filename string) string {
	return fmt.Sprintf("%s/uploads/%s", s.baseURL, filename)
}

func (s *storageService) DeleteFile(filename string) error {
	filePath := s.GetFilePath(filename)
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}
