package upstream

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strconv"

	"github.com/magabrotheeeer/creator-hub/internal/models"
)

// UploadFile: файл, уже сохранённый на диске и готовый к отправке.
type UploadFile struct {
	Name      string
	MediaType string
	Path      string
}

// SubmitMediaBatch отправляет пакет файлов одним multipart-запросом.
// Тело формируется потоково, файлы не читаются в память целиком.
func (c *Client) SubmitMediaBatch(ctx context.Context, token string, meta models.UploadMetadata, files []UploadFile) (*models.Media, error) {
	const op = "upstream.SubmitMediaBatch"

	pr, pw := io.Pipe()
	defer pr.Close()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeUploadForm(mw, meta, files))
	}()

	req, err := c.newRequest(ctx, http.MethodPost, "/media/upload", token, pr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var media models.Media
	if err := send(c.uploadClient, req, &media); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &media, nil
}

func writeUploadForm(mw *multipart.Writer, meta models.UploadMetadata, files []UploadFile) error {
	if err := mw.WriteField("title", meta.Title); err != nil {
		return err
	}
	if meta.Description != "" {
		if err := mw.WriteField("description", meta.Description); err != nil {
			return err
		}
	}
	if err := mw.WriteField("isPublic", strconv.FormatBool(meta.IsPublic)); err != nil {
		return err
	}
	for _, f := range files {
		if err := writeFilePart(mw, f); err != nil {
			return err
		}
	}
	return mw.Close()
}

func writeFilePart(mw *multipart.Writer, f UploadFile) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, f.Name))
	h.Set("Content-Type", f.MediaType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	src, err := os.Open(f.Path)
	if err != nil {
		return err
	}
	defer src.Close()
	_, err = io.Copy(part, src)
	return err
}
