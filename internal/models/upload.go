package models

// DummyUpload используется для приёма метаданных пакета загрузки из JSON-запроса.
// IsPublic указателем: отсутствие поля означает публичную публикацию.
type DummyUpload struct {
	Title       string `json:"title" validate:"required,min=3,max=100"`
	Description string `json:"description,omitempty" validate:"max=500"`
	IsPublic    *bool  `json:"isPublic,omitempty"`
}

// UploadMetadata: проверенные метаданные, отправляемые вместе с файлами.
type UploadMetadata struct {
	Title       string
	Description string
	IsPublic    bool
}

// StagedFile описывает файл, ожидающий отправки в составе пакета.
type StagedFile struct {
	PreviewID string    `json:"previewId"`
	Name      string    `json:"name"`
	MediaType string    `json:"mediaType"`
	Size      int64     `json:"size"`
	Kind      MediaType `json:"kind"`
}
