package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/UkralStul/social-feed-service/internal/domain"
	"github.com/UkralStul/social-feed-service/internal/storage"
)

// Store реализует интерфейс Storage в памяти.
type Store struct {
	mu    sync.RWMutex
	posts map[string]*domain.Post
}

// New создает новый экземпляр in-memory хранилища.
func New() *Store {
	return &Store{
		posts: make(map[string]*domain.Post),
	}
}

func (s *Store) GetPosts(ctx context.Context) ([]*domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*domain.Post, 0, len(s.posts))
	for _, p := range s.posts {
		// Отдаем копии: вызывающий будет мутировать агрегат в памяти
		// до SavePost, хранилище этого видеть не должно.
		all = append(all, p.Clone())
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}

func (s *Store) GetPostByID(ctx context.Context, id string) (*domain.Post, error) {
	if uuid.Validate(id) != nil {
		return nil, storage.ErrPostNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, storage.ErrPostNotFound
	}
	return post.Clone(), nil
}

func (s *Store) SavePost(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts[post.ID] = post.Clone()
	return post, nil
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	if uuid.Validate(id) != nil {
		return storage.ErrPostNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return storage.ErrPostNotFound
	}
	delete(s.posts, id)
	return nil
}
