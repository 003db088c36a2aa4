// Package services содержит сценарии загрузки медиа автором: накопление
// пакета файлов, удаление, сброс и отправку в API.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/creator-hub/internal/lib/sl"
	"github.com/magabrotheeeer/creator-hub/internal/models"
	"github.com/magabrotheeeer/creator-hub/internal/rabbitmq"
	"github.com/magabrotheeeer/creator-hub/internal/session"
	"github.com/magabrotheeeer/creator-hub/internal/upload"
	"github.com/magabrotheeeer/creator-hub/internal/upstream"
)

// ErrNotCreator: загружать медиа могут только авторы.
var ErrNotCreator = errors.New("only creators can upload media")

// Upstream описывает метод API загрузки.
type Upstream interface {
	SubmitMediaBatch(ctx context.Context, token string, meta models.UploadMetadata, files []upstream.UploadFile) (*models.Media, error)
}

// Catalog сбрасывает закешированные данные автора.
type Catalog interface {
	InvalidateCreator(ctx context.Context, creatorID string)
}

// Publisher публикует события в брокер.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
}

// Stager сохраняет входящий файл во временное превью.
type Stager interface {
	Stage(name, declared string, r io.Reader) (*upload.Preview, error)
}

// Incoming: файл из запроса, ещё не сохранённый на диск.
type Incoming struct {
	Name      string
	MediaType string
	Body      io.Reader
}

// MediaService управляет пакетами загрузки авторов.
type MediaService struct {
	registry  *upload.Registry
	stager    Stager
	upstream  Upstream
	catalog   Catalog
	publisher Publisher
	log       *slog.Logger
	onReject  func(reason string)
}

// NewMediaService создает новый экземпляр MediaService. publisher и onReject могут быть nil.
func NewMediaService(registry *upload.Registry, stager Stager, upstream Upstream, catalog Catalog, publisher Publisher, log *slog.Logger, onReject func(reason string)) *MediaService {
	return &MediaService{
		registry:  registry,
		stager:    stager,
		upstream:  upstream,
		catalog:   catalog,
		publisher: publisher,
		log:       log,
		onReject:  onReject,
	}
}

// Stage сохраняет файлы и добавляет их в пакет автора, если весь вызов проходит проверку.
// При отказе возвращается причина, пакет не меняется.
func (s *MediaService) Stage(ctx context.Context, viewer session.Viewer, incoming []Incoming) ([]models.StagedFile, string, error) {
	const op = "services.Stage"
	if !viewer.IsCreator() {
		return nil, "", fmt.Errorf("%s: %w", op, ErrNotCreator)
	}

	// лимит числа файлов проверяется до копирования на диск
	if reason := s.registry.Get(viewer.ID).CountReason(len(incoming)); reason != "" {
		s.reject(viewer, reason)
		return nil, reason, nil
	}

	previews := make([]*upload.Preview, 0, len(incoming))
	for _, in := range incoming {
		p, err := s.stager.Stage(in.Name, in.MediaType, in.Body)
		if err != nil {
			for _, staged := range previews {
				_ = staged.Release()
			}
			return nil, "", fmt.Errorf("%s: %w", op, err)
		}
		previews = append(previews, p)
	}

	reason, err := s.registry.Get(viewer.ID).Add(ctx, previews)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if reason != "" {
		s.reject(viewer, reason)
		return nil, reason, nil
	}
	return s.Pending(viewer), "", nil
}

func (s *MediaService) reject(viewer session.Viewer, reason string) {
	s.log.Info("upload batch rejected", slog.String("creator_id", viewer.ID), slog.String("reason", reason))
	if s.onReject != nil {
		s.onReject(reason)
	}
}

// Pending возвращает файлы пакета автора.
func (s *MediaService) Pending(viewer session.Viewer) []models.StagedFile {
	previews := s.registry.Get(viewer.ID).Previews()
	out := make([]models.StagedFile, 0, len(previews))
	for _, p := range previews {
		out = append(out, toStaged(p))
	}
	return out
}

// Remove убирает файл из пакета. Неизвестный id игнорируется.
func (s *MediaService) Remove(viewer session.Viewer, previewID string) ([]models.StagedFile, error) {
	const op = "services.Remove"
	if !viewer.IsCreator() {
		return nil, fmt.Errorf("%s: %w", op, ErrNotCreator)
	}
	s.registry.Get(viewer.ID).Remove(previewID)
	return s.Pending(viewer), nil
}

// Reset очищает пакет автора.
func (s *MediaService) Reset(viewer session.Viewer) error {
	const op = "services.Reset"
	if !viewer.IsCreator() {
		return fmt.Errorf("%s: %w", op, ErrNotCreator)
	}
	s.registry.Get(viewer.ID).Reset()
	return nil
}

// Submit отправляет пакет одним запросом с общими метаданными.
// После успешной отправки освобождаются только отправленные файлы, при ошибке
// они возвращаются в пакет.
func (s *MediaService) Submit(ctx context.Context, viewer session.Viewer, req models.DummyUpload) (*models.Media, error) {
	const op = "services.Submit"
	if !viewer.IsCreator() {
		return nil, fmt.Errorf("%s: %w", op, ErrNotCreator)
	}

	batch := s.registry.Get(viewer.ID)
	previews, err := batch.Take()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	meta := models.UploadMetadata{Title: req.Title, Description: req.Description, IsPublic: true}
	if req.IsPublic != nil {
		meta.IsPublic = *req.IsPublic
	}
	files := make([]upstream.UploadFile, 0, len(previews))
	for _, p := range previews {
		files = append(files, upstream.UploadFile{Name: p.File.Name, MediaType: p.File.MediaType, Path: p.File.Path})
	}

	media, err := s.upstream.SubmitMediaBatch(ctx, viewer.Token, meta, files)
	if err != nil {
		batch.Restore()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	batch.Commit()
	s.catalog.InvalidateCreator(ctx, viewer.ID)
	s.log.Info("media batch submitted",
		slog.String("creator_id", viewer.ID),
		slog.String("media_id", media.ID),
		slog.Int("files", len(files)),
	)

	if s.publisher != nil {
		evt := models.MediaUploadedEvent{
			EventID:   uuid.NewString(),
			CreatorID: viewer.ID,
			MediaID:   media.ID,
			Files:     len(files),
			IsPublic:  meta.IsPublic,
		}
		if err := s.publisher.Publish(ctx, rabbitmq.RoutingMediaUploaded, evt); err != nil {
			s.log.Warn("failed to publish media event", slog.String("op", op), sl.Err(err))
		}
	}
	return media, nil
}

func toStaged(p *upload.Preview) models.StagedFile {
	kind := models.MediaImage
	if p.File.IsVideo() {
		kind = models.MediaVideo
	}
	return models.StagedFile{
		PreviewID: p.ID,
		Name:      p.File.Name,
		MediaType: p.File.MediaType,
		Size:      p.File.Size,
		Kind:      kind,
	}
}
