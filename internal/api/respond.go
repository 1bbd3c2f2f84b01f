package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/UkralStul/social-feed-service/internal/service"
	"github.com/UkralStul/social-feed-service/internal/storage"
)

type msgResponse struct {
	Msg string `json:"msg"`
}

type fieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

type errorsResponse struct {
	Errors []fieldError `json:"errors"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondMsg(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, msgResponse{Msg: msg})
}

func respondValidation(w http.ResponseWriter, errs ...fieldError) {
	respondJSON(w, http.StatusBadRequest, errorsResponse{Errors: errs})
}

// respondError отображает ошибки сервиса в статусы и тела ответов.
// Конфликты лайков ради совместимости отдаются с тем же статусом,
// что и "не найдено", но с различимым текстом.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondValidation(w, fieldError{Msg: vErr.Msg, Param: vErr.Field})
	case errors.Is(err, storage.ErrPostNotFound):
		respondMsg(w, http.StatusNotFound, "Post not found!")
	case errors.Is(err, service.ErrCommentNotFound):
		respondMsg(w, http.StatusNotFound, "Comment does not exist!")
	case errors.Is(err, service.ErrAlreadyLiked):
		respondMsg(w, http.StatusNotFound, "Post already liked!")
	case errors.Is(err, service.ErrNotLiked):
		respondMsg(w, http.StatusNotFound, "Post has not yet been liked!")
	case errors.Is(err, service.ErrNotAuthorized):
		respondMsg(w, http.StatusUnauthorized, "User not authorised")
	default:
		h.log.Error("request failed", "error", err)
		respondMsg(w, http.StatusInternalServerError, "Server Error")
	}
}

// decodeStrict разбирает JSON-тело, отклоняя неизвестные поля: произвольные
// данные из запроса в агрегат не пропускаются.
func decodeStrict(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
