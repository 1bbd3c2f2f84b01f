package service

import (
	"errors"
	"fmt"
)

// Ошибки бизнес-правил. Конфликты лайков намеренно отделены от "не найдено":
// транспортный слой ради совместимости отображает их в тот же статус ответа,
// но внутри системы и в тестах условия различимы.
var (
	// ErrNotAuthorized — вызывающий не является требуемым владельцем.
	ErrNotAuthorized = errors.New("user not authorised")
	// ErrCommentNotFound — комментарий с таким id в посте отсутствует.
	ErrCommentNotFound = errors.New("comment does not exist")
	// ErrAlreadyLiked — вызывающий уже есть в списке лайков.
	ErrAlreadyLiked = errors.New("post already liked")
	// ErrNotLiked — вызывающего нет в списке лайков.
	ErrNotLiked = errors.New("post has not yet been liked")
)

// ValidationError — ошибка валидации входных данных с указанием поля.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func requiredField(field string) *ValidationError {
	return &ValidationError{Field: field, Msg: field + " is required"}
}
