// Package upload проверяет и накапливает файлы пакета загрузки автора.
//
// Validator выносит вердикт по новым файлам с учётом уже принятых,
// Batch хранит принятые файлы вместе с временными превью и освобождает
// каждое превью ровно один раз.
package upload

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Сообщения об отказе, которые показываются автору.
const (
	ReasonTooManyFiles   = "You can only upload up to %d files at once"
	ReasonFileTooLarge   = "Each file must be less than 50MB"
	ReasonUnsupported    = "Only JPEG, PNG, WebP images and MP4, WebM videos are supported"
	ReasonVideoTooLong   = "Videos must be 30 seconds or less"
	ReasonUnreadableFile = "Could not read video metadata"
)

var acceptedTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
	"video/mp4":  {},
	"video/webm": {},
}

// Limits ограничения пакета загрузки.
type Limits struct {
	MaxFiles         int
	MaxFileSize      int64
	MaxVideoSeconds  float64
	ProbeConcurrency int
}

// DefaultLimits возвращает ограничения по умолчанию: 10 файлов, 50 МиБ, 30 секунд видео.
func DefaultLimits() Limits {
	return Limits{
		MaxFiles:         10,
		MaxFileSize:      50 * 1024 * 1024,
		MaxVideoSeconds:  30,
		ProbeConcurrency: 4,
	}
}

// File: кандидат в пакет загрузки.
type File struct {
	Name      string
	MediaType string
	Size      int64
	Path      string
}

// IsVideo сообщает, является ли файл видео по заявленному типу.
func (f File) IsVideo() bool {
	return strings.HasPrefix(f.MediaType, "video/")
}

// Accepted сообщает, входит ли тип в список поддерживаемых.
func Accepted(mediaType string) bool {
	_, ok := acceptedTypes[mediaType]
	return ok
}

// Prober определяет длительность видеофайла в секундах.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// Validator проверяет новые файлы пакета.
type Validator struct {
	limits Limits
	prober Prober
}

// NewValidator создаёт Validator.
func NewValidator(limits Limits, prober Prober) *Validator {
	if limits.ProbeConcurrency <= 0 {
		limits.ProbeConcurrency = 1
	}
	return &Validator{limits: limits, prober: prober}
}

// Limits возвращает действующие ограничения.
func (v *Validator) Limits() Limits {
	return v.limits
}

// CountReason возвращает причину отказа, если existing и incoming файлов
// вместе больше лимита, иначе пустую строку.
func (v *Validator) CountReason(existing, incoming int) string {
	if existing+incoming > v.limits.MaxFiles {
		return fmt.Sprintf(ReasonTooManyFiles, v.limits.MaxFiles)
	}
	return ""
}

type probeResult struct {
	seconds float64
	err     error
}

// ValidateBatch проверяет incoming с учётом existing и возвращает причину отказа
// первого неподходящего файла или пустую строку. Решение принимается целиком:
// при отказе ни один файл из incoming не принимается. Уже принятые файлы
// повторно не проверяются.
//
// Ошибка возвращается только при отмене ctx.
func (v *Validator) ValidateBatch(ctx context.Context, existing, incoming []File) (string, error) {
	const op = "upload.ValidateBatch"

	if reason := v.CountReason(len(existing), len(incoming)); reason != "" {
		return reason, nil
	}

	// длительность нужна только видео, стоящим до первого синхронного отказа
	syncFail := len(incoming)
	for i, f := range incoming {
		if v.staticReason(f) != "" {
			syncFail = i
			break
		}
	}

	results := make([]probeResult, len(incoming))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.limits.ProbeConcurrency)
	for i := 0; i < syncFail; i++ {
		f := incoming[i]
		if !f.IsVideo() {
			continue
		}
		g.Go(func() error {
			seconds, err := v.prober.Duration(gctx, f.Path)
			results[i] = probeResult{seconds: seconds, err: err}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	for i, f := range incoming {
		if reason := v.staticReason(f); reason != "" {
			return reason, nil
		}
		if !f.IsVideo() {
			continue
		}
		if results[i].err != nil {
			return ReasonUnreadableFile, nil
		}
		if results[i].seconds > v.limits.MaxVideoSeconds {
			return ReasonVideoTooLong, nil
		}
	}
	return "", nil
}

func (v *Validator) staticReason(f File) string {
	if f.Size > v.limits.MaxFileSize {
		return ReasonFileTooLarge
	}
	if !Accepted(f.MediaType) {
		return ReasonUnsupported
	}
	return ""
}
