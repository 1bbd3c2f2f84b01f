package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/UkralStul/social-feed-service/internal/service"
)

type commentRequest struct {
	Text string `json:"text"`
}

func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.GetPosts(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	var in service.CreatePostInput
	if err := decodeStrict(r, &in); err != nil {
		respondValidation(w, fieldError{Msg: "Invalid request body"})
		return
	}

	post, err := h.svc.CreatePost(r.Context(), callerID(r), in)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

func (h *Handler) getPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.svc.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

func (h *Handler) updatePost(w http.ResponseWriter, r *http.Request) {
	var in service.UpdatePostInput
	if err := decodeStrict(r, &in); err != nil {
		respondValidation(w, fieldError{Msg: "Invalid request body"})
		return
	}

	post, err := h.svc.UpdatePost(r.Context(), callerID(r), chi.URLParam(r, "id"), in)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeletePost(r.Context(), callerID(r), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, err)
		return
	}
	respondMsg(w, http.StatusOK, "Post removed")
}

func (h *Handler) likePost(w http.ResponseWriter, r *http.Request) {
	likes, err := h.svc.LikePost(r.Context(), callerID(r), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, likes)
}

func (h *Handler) unlikePost(w http.ResponseWriter, r *http.Request) {
	likes, err := h.svc.UnlikePost(r.Context(), callerID(r), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, likes)
}

func (h *Handler) addComment(w http.ResponseWriter, r *http.Request) {
	var in commentRequest
	if err := decodeStrict(r, &in); err != nil {
		respondValidation(w, fieldError{Msg: "Invalid request body"})
		return
	}

	comments, err := h.svc.AddComment(r.Context(), callerID(r), chi.URLParam(r, "id"), in.Text)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, comments)
}

func (h *Handler) editComment(w http.ResponseWriter, r *http.Request) {
	var in commentRequest
	if err := decodeStrict(r, &in); err != nil {
		respondValidation(w, fieldError{Msg: "Invalid request body"})
		return
	}

	comments, err := h.svc.EditComment(r.Context(), callerID(r),
		chi.URLParam(r, "id"), chi.URLParam(r, "commentId"), in.Text)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, comments)
}

func (h *Handler) deleteComment(w http.ResponseWriter, r *http.Request) {
	comments, err := h.svc.DeleteComment(r.Context(), callerID(r),
		chi.URLParam(r, "id"), chi.URLParam(r, "commentId"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, comments)
}
