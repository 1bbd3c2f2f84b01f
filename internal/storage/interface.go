package storage

import (
	"context"
	"errors"

	"github.com/UkralStul/social-feed-service/internal/domain"
)

// ErrPostNotFound возвращается и для несуществующего, и для синтаксически
// некорректного идентификатора. Различать эти случаи нельзя, чтобы не
// раскрывать наружу формат идентификаторов хранилища.
var ErrPostNotFound = errors.New("post not found")

// Storage определяет контракт для хранилищ агрегата Post.
//
// SavePost всегда перезаписывает агрегат целиком — частичных обновлений на
// границе хранилища нет, при конкурентных записях побеждает последняя.
// Это принятая модель консистентности системы, а не недочет.
type Storage interface {
	GetPosts(ctx context.Context) ([]*domain.Post, error)
	GetPostByID(ctx context.Context, id string) (*domain.Post, error)
	SavePost(ctx context.Context, post *domain.Post) (*domain.Post, error)
	DeletePost(ctx context.Context, id string) error
}
