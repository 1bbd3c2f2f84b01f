package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/UkralStul/social-feed-service/internal/domain"
	"github.com/UkralStul/social-feed-service/internal/logger"
	"github.com/UkralStul/social-feed-service/internal/service"
)

// Identity — внешний провайдер идентичности: выпускает токены и
// разрешает их в id пользователя.
type Identity interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Resolve(token string) (string, error)
	UserByID(ctx context.Context, id string) (*domain.User, error)
}

// Handler держит зависимости HTTP-обработчиков.
type Handler struct {
	svc *service.Service
	idp Identity
	log *logger.Logger
}

// NewRouter собирает маршрутизатор. Все операции с постами требуют
// аутентификации: без разрешенной идентичности до хранилища не доходим.
func NewRouter(svc *service.Service, idp Identity, log *logger.Logger) chi.Router {
	h := &Handler{svc: svc, idp: idp, log: log.With("component", "api")}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/api/users", h.register)
	r.Post("/api/auth", h.login)

	r.Group(func(r chi.Router) {
		r.Use(h.authenticate)

		r.Get("/api/auth", h.currentUser)

		r.Route("/api/posts", func(r chi.Router) {
			r.Get("/", h.listPosts)
			r.Post("/", h.createPost)
			r.Get("/{id}", h.getPost)
			r.Put("/{id}", h.updatePost)
			r.Delete("/{id}", h.deletePost)
			r.Put("/like/{id}", h.likePost)
			r.Put("/unlike/{id}", h.unlikePost)
			r.Post("/comment/{id}", h.addComment)
			r.Put("/comment/{id}/{commentId}", h.editComment)
			r.Delete("/comment/{id}/{commentId}", h.deleteComment)
		})
	})

	return r
}

type ctxKey int

const callerKey ctxKey = iota

// authenticate разрешает токен из заголовка x-auth-token в id пользователя
// и кладет его в контекст запроса.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("x-auth-token")
		if token == "" {
			respondMsg(w, http.StatusUnauthorized, "No token, authorisation denied")
			return
		}

		userID, err := h.idp.Resolve(token)
		if err != nil {
			respondMsg(w, http.StatusUnauthorized, "Token is not valid")
			return
		}

		ctx := context.WithValue(r.Context(), callerKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// callerID возвращает id аутентифицированного пользователя из контекста.
func callerID(r *http.Request) string {
	id, _ := r.Context().Value(callerKey).(string)
	return id
}
