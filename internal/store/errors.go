package store

import (
	"fmt"
	"strings"
)

// ValidationError — не заполнены обязательные поля или значение вне перечня.
type ValidationError struct {
	Entity string
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", e.Entity, e.Reason)
	}
	return fmt.Sprintf("%s: missing required fields: %s", e.Entity, strings.Join(e.Fields, ", "))
}

// NotFoundError — запись с таким ID отсутствует в хранилище.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// ReferenceError — родительская запись, на которую ссылается новая, не существует.
type ReferenceError struct {
	Entity string
	Field  string
	ID     string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s: %s %q does not exist", e.Entity, e.Field, e.ID)
}
