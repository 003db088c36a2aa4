package upload

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Preview: временная копия файла, ожидающего отправки.
// Файл на диске удаляется ровно один раз, сколько бы раз ни вызывали Release.
type Preview struct {
	ID   string
	File File

	once sync.Once
	err  error
}

// Release удаляет временный файл превью.
func (p *Preview) Release() error {
	p.once.Do(func() {
		if p.File.Path == "" {
			return
		}
		if err := os.Remove(p.File.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			p.err = fmt.Errorf("upload.Preview.Release: %w", err)
		}
	})
	return p.err
}

// Stager сохраняет входящие файлы во временный каталог.
type Stager struct {
	dir     string
	maxSize int64
}

// NewStager создаёт Stager. Пустой dir означает системный временный каталог.
// Файлы крупнее maxSize дочитываются до maxSize+1 байта: этого достаточно,
// чтобы отклонить их по размеру.
func NewStager(dir string, maxSize int64) *Stager {
	return &Stager{dir: dir, maxSize: maxSize}
}

// Stage копирует содержимое r во временный файл и определяет тип.
// Заявленный тип берётся как есть, если он указан и отличен от
// application/octet-stream; иначе тип определяется по содержимому.
func (s *Stager) Stage(name, declared string, r io.Reader) (*Preview, error) {
	const op = "upload.Stage"

	tmp, err := os.CreateTemp(s.dir, "preview-*")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	src := r
	if s.maxSize > 0 {
		src = io.LimitReader(r, s.maxSize+1)
	}
	size, err := io.Copy(tmp, src)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	mediaType := normalizeType(declared)
	if mediaType == "" || mediaType == "application/octet-stream" {
		detected, err := mimetype.DetectFile(tmp.Name())
		if err != nil {
			_ = os.Remove(tmp.Name())
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		mediaType = normalizeType(detected.String())
	}

	return &Preview{
		ID: uuid.NewString(),
		File: File{
			Name:      name,
			MediaType: mediaType,
			Size:      size,
			Path:      tmp.Name(),
		},
	}, nil
}

func normalizeType(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parsed, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return strings.ToLower(raw)
	}
	return parsed
}
