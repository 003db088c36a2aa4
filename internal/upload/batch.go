package upload

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	// ErrBatchEmpty возвращается при попытке отправить пустой пакет.
	ErrBatchEmpty = errors.New("no files selected")
	// ErrSubmitInProgress: предыдущая отправка пакета ещё не завершена.
	ErrSubmitInProgress = errors.New("upload is already in progress")
	// ErrBatchClosed: пакет удалён из Registry, файлы нужно добавить в новый.
	ErrBatchClosed = errors.New("upload batch is closed")
)

// Batch: пакет файлов автора, ожидающих отправки.
// Добавления выполняются по одному, удаление и сброс не ждут проверок.
// Файлы, забранные Take, до Commit или Restore учитываются в лимите,
// но недоступны для Remove и Reset.
type Batch struct {
	validator *Validator

	addMu    sync.Mutex
	mu       sync.Mutex
	previews []*Preview
	inflight []*Preview
	// reset означает, что Reset был вызван во время отправки.
	reset  bool
	closed bool
	// touched охраняется Registry.mu.
	touched time.Time
}

// NewBatch создаёт пустой пакет.
func NewBatch(validator *Validator) *Batch {
	return &Batch{validator: validator}
}

// Add проверяет новые превью и при успехе добавляет их в пакет.
// При отказе возвращается причина, а превью отклонённого вызова освобождаются.
// В закрытый пакет ничего не добавляется: превью освобождаются, возвращается ErrBatchClosed.
func (b *Batch) Add(ctx context.Context, incoming []*Preview) (string, error) {
	const op = "upload.Batch.Add"

	b.addMu.Lock()
	defer b.addMu.Unlock()

	existing := b.Files()
	files := make([]File, 0, len(incoming))
	for _, p := range incoming {
		files = append(files, p.File)
	}

	reason, err := b.validator.ValidateBatch(ctx, existing, files)
	if err != nil || reason != "" {
		releaseAll(incoming)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		return reason, nil
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		releaseAll(incoming)
		return "", fmt.Errorf("%s: %w", op, ErrBatchClosed)
	}
	b.previews = append(b.previews, incoming...)
	b.mu.Unlock()
	return "", nil
}

// Remove убирает файл из пакета и освобождает его превью.
// Неизвестный id не считается ошибкой.
func (b *Batch) Remove(previewID string) {
	b.mu.Lock()
	var removed *Preview
	for i, p := range b.previews {
		if p.ID == previewID {
			removed = p
			b.previews = append(b.previews[:i:i], b.previews[i+1:]...)
			break
		}
	}
	b.mu.Unlock()

	if removed != nil {
		_ = removed.Release()
	}
}

// Reset освобождает все превью и очищает пакет.
// Файлы текущей отправки освобождаются при её завершении.
func (b *Batch) Reset() {
	b.mu.Lock()
	previews := b.previews
	b.previews = nil
	if b.inflight != nil {
		b.reset = true
	}
	b.mu.Unlock()

	releaseAll(previews)
}

// Take забирает все превью пакета на отправку.
// Вызывающий обязан завершить отправку через Commit или Restore.
func (b *Batch) Take() ([]*Preview, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.inflight != nil {
		return nil, ErrSubmitInProgress
	}
	if len(b.previews) == 0 {
		return nil, ErrBatchEmpty
	}
	b.inflight = b.previews
	b.previews = nil
	b.reset = false

	out := make([]*Preview, len(b.inflight))
	copy(out, b.inflight)
	return out, nil
}

// Commit освобождает отправленные превью. Файлы, добавленные во время
// отправки, остаются в пакете.
func (b *Batch) Commit() {
	b.mu.Lock()
	sent := b.inflight
	b.inflight = nil
	b.reset = false
	b.mu.Unlock()

	releaseAll(sent)
}

// Restore возвращает забранные превью в начало пакета после неудачной отправки.
// Если во время отправки пакет сбросили или закрыли, превью освобождаются.
func (b *Batch) Restore() {
	b.mu.Lock()
	taken := b.inflight
	b.inflight = nil
	drop := b.reset || b.closed
	b.reset = false
	if !drop {
		b.previews = append(taken, b.previews...)
	}
	b.mu.Unlock()

	if drop {
		releaseAll(taken)
	}
}

// Previews возвращает копию списка превью.
func (b *Batch) Previews() []*Preview {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]*Preview, len(b.previews))
	copy(out, b.previews)
	return out
}

// CountReason проверяет, поместятся ли n новых файлов в пакет.
// Остальные проверки выполняет Add.
func (b *Batch) CountReason(n int) string {
	b.mu.Lock()
	existing := len(b.inflight) + len(b.previews)
	b.mu.Unlock()
	return b.validator.CountReason(existing, n)
}

// Files возвращает описания файлов пакета вместе с файлами текущей отправки.
func (b *Batch) Files() []File {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]File, 0, len(b.inflight)+len(b.previews))
	for _, p := range b.inflight {
		out = append(out, p.File)
	}
	for _, p := range b.previews {
		out = append(out, p.File)
	}
	return out
}

// Len возвращает количество файлов в пакете.
func (b *Batch) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.previews)
}

// close закрывает пакет для Add и освобождает ожидающие превью.
func (b *Batch) close() {
	b.mu.Lock()
	b.closed = true
	previews := b.previews
	b.previews = nil
	b.mu.Unlock()

	releaseAll(previews)
}

func releaseAll(previews []*Preview) {
	for _, p := range previews {
		_ = p.Release()
	}
}

// Registry хранит по одному пакету на автора.
type Registry struct {
	validator *Validator
	now       func() time.Time

	mu      sync.Mutex
	batches map[string]*Batch
}

// NewRegistry создаёт Registry. now может быть nil.
func NewRegistry(validator *Validator, now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{
		validator: validator,
		now:       now,
		batches:   make(map[string]*Batch),
	}
}

// Get возвращает пакет автора, создавая его при первом обращении.
func (r *Registry) Get(ownerID string) *Batch {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.batches[ownerID]
	if !ok {
		b = NewBatch(r.validator)
		r.batches[ownerID] = b
	}
	b.touched = r.now()
	return b
}

// Sweep удаляет пакеты, к которым не обращались дольше idle, и освобождает
// их превью. Пакеты с незавершённой отправкой остаются. Возвращает число
// удалённых пакетов.
func (r *Registry) Sweep(idle time.Duration) int {
	if idle <= 0 {
		return 0
	}
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	var stale []*Batch
	for owner, b := range r.batches {
		if b.touched.After(cutoff) {
			continue
		}
		b.mu.Lock()
		busy := b.inflight != nil
		b.mu.Unlock()
		if busy {
			continue
		}
		stale = append(stale, b)
		delete(r.batches, owner)
	}
	r.mu.Unlock()

	for _, b := range stale {
		b.close()
	}
	return len(stale)
}

// Len возвращает количество пакетов.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.batches)
}

// Close освобождает превью всех пакетов.
func (r *Registry) Close() {
	r.mu.Lock()
	batches := r.batches
	r.batches = make(map[string]*Batch)
	r.mu.Unlock()

	for _, b := range batches {
		b.close()
	}
}
