package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ams-app/internal/models"
	"ams-app/internal/store"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// errTooLarge — файл больше допустимого размера.
var errTooLarge = errors.New("attachment too large")

// splitList разбирает поле "через запятую".
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseDate: пустая строка — нулевая дата, без ошибки.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

// readAttachment returns nil when the field carries no file.
func readAttachment(c *gin.Context, field string, maxBytes int64) (*models.Attachment, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	// тело без Content-Length обрезает MaxBytesReader из LimitBody
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return nil, errTooLarge
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	if fh.Size > maxBytes {
		return nil, errTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, errTooLarge
	}

	return &models.Attachment{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

var fieldLabels = map[string]string{
	"title":              "Название проверки",
	"department":         "Подразделение",
	"auditors":           "Аудиторы",
	"audit_type":         "Тип аудита",
	"report":             "Отчёт",
	"engagement_id":      "Проверка",
	"description":        "Описание",
	"risk_level":         "Уровень риска",
	"category":           "Категория",
	"evidence":           "Доказательства",
	"finding_id":         "Несоответствие",
	"responsible_person": "Ответственный",
	"due_date":           "Срок",
	"status":             "Статус",
}

// errorMessage переводит ошибку ядра в текст для формы.
func errorMessage(err error) string {
	var (
		verr *store.ValidationError
		rerr *store.ReferenceError
		nerr *store.NotFoundError
	)
	switch {
	case errors.As(err, &verr):
		if verr.Reason != "" {
			return "Недопустимое значение: " + labels(verr.Fields)
		}
		return "Заполните обязательные поля: " + labels(verr.Fields)
	case errors.As(err, &rerr):
		return "Связанная запись не найдена: " + rerr.ID
	case errors.As(err, &nerr):
		return "Запись не найдена: " + nerr.ID
	case errors.Is(err, errTooLarge):
		return "Файл слишком большой"
	default:
		return "Внутренняя ошибка"
	}
}

// errorStatus maps core errors to HTTP status codes.
func errorStatus(err error) int {
	var (
		verr *store.ValidationError
		rerr *store.ReferenceError
		nerr *store.NotFoundError
	)
	switch {
	case errors.As(err, &verr), errors.As(err, &rerr), errors.Is(err, errTooLarge):
		return http.StatusBadRequest
	case errors.As(err, &nerr):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func labels(fields []string) string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if l, ok := fieldLabels[f]; ok {
			out = append(out, l)
			continue
		}
		out = append(out, f)
	}
	return strings.Join(out, ", ")
}
