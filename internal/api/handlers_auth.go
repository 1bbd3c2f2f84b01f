package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/UkralStul/social-feed-service/internal/identity"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var in registerRequest
	if err := decodeStrict(r, &in); err != nil {
		respondValidation(w, fieldError{Msg: "Invalid request body"})
		return
	}

	var errs []fieldError
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, fieldError{Msg: "Name is required", Param: "name"})
	}
	if !strings.Contains(in.Email, "@") {
		errs = append(errs, fieldError{Msg: "Please use a valid email", Param: "email"})
	}
	if len(in.Password) < 6 {
		errs = append(errs, fieldError{Msg: "Please enter a password with 6 or more characters", Param: "password"})
	}
	if len(errs) > 0 {
		respondValidation(w, errs...)
		return
	}

	token, err := h.idp.Register(r.Context(), in.Name, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, identity.ErrUserExists) {
			respondValidation(w, fieldError{Msg: "User already exists"})
			return
		}
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeStrict(r, &in); err != nil {
		respondValidation(w, fieldError{Msg: "Invalid request body"})
		return
	}

	var errs []fieldError
	if !strings.Contains(in.Email, "@") {
		errs = append(errs, fieldError{Msg: "Please use a valid email", Param: "email"})
	}
	if in.Password == "" {
		errs = append(errs, fieldError{Msg: "Password is required", Param: "password"})
	}
	if len(errs) > 0 {
		respondValidation(w, errs...)
		return
	}

	token, err := h.idp.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			respondValidation(w, fieldError{Msg: "Invalid Credentials"})
			return
		}
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// currentUser возвращает аутентифицированного пользователя (без пароля).
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.idp.UserByID(r.Context(), callerID(r))
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
