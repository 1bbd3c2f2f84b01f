package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/UkralStul/social-feed-service/internal/domain"
	"github.com/UkralStul/social-feed-service/internal/storage"
)

// Store реализует интерфейс Storage с использованием PostgreSQL.
// Агрегат хранится одной строкой: лайки и комментарии лежат в JSON-колонках,
// отдельных таблиц для них нет.
type Store struct {
	db *gorm.DB
}

// New создает новый экземпляр хранилища PostgreSQL.
func New(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Выполняем миграцию схемы
	if err := db.AutoMigrate(&domain.Post{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) GetPosts(ctx context.Context) ([]*domain.Post, error) {
	var posts []*domain.Post
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func (s *Store) GetPostByID(ctx context.Context, id string) (*domain.Post, error) {
	if uuid.Validate(id) != nil {
		return nil, storage.ErrPostNotFound
	}

	var post domain.Post
	if err := s.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// SavePost перезаписывает агрегат целиком (upsert по первичному ключу).
// Версионирования нет: при конкурентных записях побеждает последняя.
func (s *Store) SavePost(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(post).Error
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	if uuid.Validate(id) != nil {
		return storage.ErrPostNotFound
	}

	res := s.db.WithContext(ctx).Delete(&domain.Post{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return storage.ErrPostNotFound
	}
	return nil
}
