package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/UkralStul/social-feed-service/internal/domain"
	"github.com/UkralStul/social-feed-service/internal/logger"
	"github.com/UkralStul/social-feed-service/internal/storage"
)

// Profiles выдает снимок профиля пользователя. Снимок денормализуется в пост
// или комментарий при создании и дальше с профилем не синхронизируется.
type Profiles interface {
	Profile(ctx context.Context, userID string) (domain.Profile, error)
}

// Service применяет операции к агрегату Post, проверяя права доступа.
//
// Каждая мутация — это цикл "загрузить агрегат, изменить в памяти, сохранить
// целиком". Взаимного исключения по id поста нет, поэтому конкурентные
// мутации одного поста могут потерять изменения друг друга (побеждает
// последняя запись).
type Service struct {
	store    storage.Storage
	profiles Profiles
	log      *logger.Logger
	now      func() time.Time
}

// New создает новый сервис постов.
func New(store storage.Storage, profiles Profiles, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		profiles: profiles,
		log:      log.With("component", "posts"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreatePostInput — поля нового поста.
type CreatePostInput struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// UpdatePostInput — явный перечень полей, изменяемых через редактирование.
// Неуказанные (nil) поля остаются как были; произвольные поля из запроса
// в пост не пропускаются.
type UpdatePostInput struct {
	Title *string `json:"title"`
	Text  *string `json:"text"`
}

// CreatePost создает пост от имени вызывающего со снимком его профиля.
func (s *Service) CreatePost(ctx context.Context, callerID string, in CreatePostInput) (*domain.Post, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, requiredField("text")
	}

	profile, err := s.profiles.Profile(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("resolve author profile: %w", err)
	}

	post := &domain.Post{
		ID:                uuid.NewString(),
		AuthorID:          callerID,
		AuthorDisplayName: profile.DisplayName,
		AuthorAvatarURL:   profile.AvatarURL,
		Title:             in.Title,
		Text:              in.Text,
		Likes:             datatypes.JSONSlice[domain.Like]{},
		Comments:          datatypes.JSONSlice[domain.Comment]{},
		CreatedAt:         s.now(),
	}

	saved, err := s.store.SavePost(ctx, post)
	if err != nil {
		return nil, err
	}
	s.log.Info("post created", "postId", saved.ID, "authorId", callerID)
	return saved, nil
}

// GetPosts возвращает все посты, новые первыми.
func (s *Service) GetPosts(ctx context.Context) ([]*domain.Post, error) {
	return s.store.GetPosts(ctx)
}

// GetPost возвращает пост по id.
func (s *Service) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	return s.store.GetPostByID(ctx, id)
}

// UpdatePost редактирует title/text поста. Разрешено только автору поста.
func (s *Service) UpdatePost(ctx context.Context, callerID, id string, in UpdatePostInput) (*domain.Post, error) {
	if in.Text != nil && strings.TrimSpace(*in.Text) == "" {
		return nil, requiredField("text")
	}

	post, err := s.store.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != callerID {
		return nil, ErrNotAuthorized
	}

	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Text != nil {
		post.Text = *in.Text
	}
	return s.store.SavePost(ctx, post)
}

// DeletePost удаляет пост. Разрешено только автору поста.
func (s *Service) DeletePost(ctx context.Context, callerID, id string) error {
	post, err := s.store.GetPostByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != callerID {
		return ErrNotAuthorized
	}

	if err := s.store.DeletePost(ctx, id); err != nil {
		return err
	}
	s.log.Info("post removed", "postId", id, "authorId", callerID)
	return nil
}

// LikePost добавляет лайк вызывающего в начало списка. Повторный лайк —
// конфликт, список не меняется.
func (s *Service) LikePost(ctx context.Context, callerID, id string) ([]domain.Like, error) {
	post, err := s.store.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Линейный поиск: список и есть множество, отдельного индекса нет.
	for _, l := range post.Likes {
		if l.UserID == callerID {
			return nil, ErrAlreadyLiked
		}
	}

	post.Likes = append(datatypes.JSONSlice[domain.Like]{{UserID: callerID}}, post.Likes...)

	saved, err := s.store.SavePost(ctx, post)
	if err != nil {
		return nil, err
	}
	return saved.Likes, nil
}

// UnlikePost убирает лайк вызывающего. Если лайка не было — конфликт.
func (s *Service) UnlikePost(ctx context.Context, callerID, id string) ([]domain.Like, error) {
	post, err := s.store.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, l := range post.Likes {
		if l.UserID == callerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotLiked
	}

	post.Likes = append(post.Likes[:idx], post.Likes[idx+1:]...)

	saved, err := s.store.SavePost(ctx, post)
	if err != nil {
		return nil, err
	}
	return saved.Likes, nil
}

// AddComment добавляет комментарий в начало списка со снимком профиля автора.
func (s *Service) AddComment(ctx context.Context, callerID, id, text string) ([]domain.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, requiredField("text")
	}

	post, err := s.store.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.Profile(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("resolve author profile: %w", err)
	}

	comment := domain.Comment{
		ID:                uuid.NewString(),
		AuthorID:          callerID,
		AuthorDisplayName: profile.DisplayName,
		AuthorAvatarURL:   profile.AvatarURL,
		Text:              text,
		CreatedAt:         s.now(),
	}
	post.Comments = append(datatypes.JSONSlice[domain.Comment]{comment}, post.Comments...)

	saved, err := s.store.SavePost(ctx, post)
	if err != nil {
		return nil, err
	}
	return saved.Comments, nil
}

// EditComment заменяет текст комментария на месте. Разрешено только автору
// самого комментария: владение постом прав на чужие комментарии не дает.
func (s *Service) EditComment(ctx context.Context, callerID, id, commentID, text string) ([]domain.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, requiredField("text")
	}

	post, err := s.store.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	idx := findComment(post, commentID)
	if idx < 0 {
		return nil, ErrCommentNotFound
	}
	if post.Comments[idx].AuthorID != callerID {
		return nil, ErrNotAuthorized
	}

	// Замена по индексу: id, автор и дата создания сохраняются.
	post.Comments[idx].Text = text

	saved, err := s.store.SavePost(ctx, post)
	if err != nil {
		return nil, err
	}
	return saved.Comments, nil
}

// DeleteComment удаляет комментарий по id. Разрешено только автору комментария.
func (s *Service) DeleteComment(ctx context.Context, callerID, id, commentID string) ([]domain.Comment, error) {
	post, err := s.store.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	idx := findComment(post, commentID)
	if idx < 0 {
		return nil, ErrCommentNotFound
	}
	if post.Comments[idx].AuthorID != callerID {
		return nil, ErrNotAuthorized
	}

	post.Comments = append(post.Comments[:idx], post.Comments[idx+1:]...)

	saved, err := s.store.SavePost(ctx, post)
	if err != nil {
		return nil, err
	}
	return saved.Comments, nil
}

// findComment ищет комментарий линейным проходом и возвращает его индекс:
// агрегат сохраняется целиком, поэтому адресуемся индексом, а не ссылкой.
func findComment(post *domain.Post, commentID string) int {
	for i, c := range post.Comments {
		if c.ID == commentID {
			return i
		}
	}
	return -1
}
