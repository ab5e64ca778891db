package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"focus-cam/internal/domain/entity"
	"focus-cam/internal/domain/port"
)

// DefaultField имя поля формы с файлом.
const DefaultField = "file"

// HTTPUploader отправляет снимок multipart-запросом.
type HTTPUploader struct {
	URL    string
	Field  string
	Client *http.Client
}

// NewHTTPUploader создаёт отправщик с таймаутом на запрос.
func NewHTTPUploader(url, field string, timeout time.Duration) *HTTPUploader {
	if field == "" {
		field = DefaultField
	}
	return &HTTPUploader{
		URL:    url,
		Field:  field,
		Client: &http.Client{Timeout: timeout},
	}
}

// Upload отправляет файл. Ответ 2xx считается успехом.
func (u *HTTPUploader) Upload(ctx context.Context, filename string, data []byte) (*entity.UploadResult, error) {
	if u.URL == "" {
		return nil, errors.New("upload url is not configured")
	}
	if len(data) == 0 {
		return nil, errors.New("nothing to upload")
	}

	id := uuid.NewString()
	body, contentType, err := buildForm(u.Field, uniqueName(filename, id), data)
	if err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.URL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Request-ID", id)

	resp, err := u.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	result := &entity.UploadResult{
		ID:         id,
		StatusCode: resp.StatusCode,
		Success:    resp.StatusCode >= 200 && resp.StatusCode < 300,
	}
	if result.Success {
		result.Message = "upload succeeded"
	} else {
		result.Message = fmt.Sprintf("upload failed: %s", resp.Status)
	}
	return result, nil
}

func buildForm(field, filename string, data []byte) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// uniqueName добавляет к имени файла идентификатор запроса.
func uniqueName(filename, id string) string {
	if filename == "" {
		filename = "capture.jpg"
	}
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filepath.Base(filename), ext)
	return base + "-" + id + ext
}

// Проверка реализации интерфейса
var _ port.Uploader = (*HTTPUploader)(nil)
