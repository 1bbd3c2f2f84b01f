package inmemory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UkralStul/social-feed-service/internal/domain"
	"github.com/UkralStul/social-feed-service/internal/storage"
)

// newTestStore создает хранилище и один пост для тестов
func newTestStore(t *testing.T) (storage.Storage, *domain.Post) {
	store := New()
	ctx := context.Background()
	post := &domain.Post{
		ID:        uuid.NewString(),
		AuthorID:  "user-1",
		Title:     "Test Post",
		Text:      "Content",
		CreatedAt: time.Now().UTC(),
	}
	_, err := store.SavePost(ctx, post)
	require.NoError(t, err)
	return store, post
}

func TestStore_SaveAndGetPost(t *testing.T) {
	store, post := newTestStore(t)
	ctx := context.Background()

	retrieved, err := store.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.Text, retrieved.Text)

	_, err = store.GetPostByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, storage.ErrPostNotFound)
}

func TestStore_MalformedIDLooksLikeMissing(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	// Синтаксически некорректный id неотличим от отсутствующего
	_, err := store.GetPostByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, storage.ErrPostNotFound)

	err = store.DeletePost(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, storage.ErrPostNotFound)
}

func TestStore_GetPostsNewestFirst(t *testing.T) {
	store := New()
	ctx := context.Background()

	base := time.Now().UTC()
	var ids []string
	for i := 0; i < 3; i++ {
		post := &domain.Post{
			ID:        uuid.NewString(),
			AuthorID:  "user-1",
			Text:      "Content",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		_, err := store.SavePost(ctx, post)
		require.NoError(t, err)
		ids = append(ids, post.ID)
	}

	posts, err := store.GetPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, ids[2], posts[0].ID)
	assert.Equal(t, ids[1], posts[1].ID)
	assert.Equal(t, ids[0], posts[2].ID)
}

func TestStore_SaveOverwritesWholeAggregate(t *testing.T) {
	store, post := newTestStore(t)
	ctx := context.Background()

	updated := post.Clone()
	updated.Text = "New content"
	updated.Likes = append(updated.Likes, domain.Like{UserID: "user-2"})

	_, err := store.SavePost(ctx, updated)
	require.NoError(t, err)

	retrieved, err := store.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "New content", retrieved.Text)
	require.Len(t, retrieved.Likes, 1)
	assert.Equal(t, "user-2", retrieved.Likes[0].UserID)
}

func TestStore_ReturnsCopies(t *testing.T) {
	store, post := newTestStore(t)
	ctx := context.Background()

	// Мутация загруженного агрегата без SavePost не должна менять хранилище
	loaded, err := store.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	loaded.Text = "mutated"
	loaded.Likes = append(loaded.Likes, domain.Like{UserID: "user-9"})

	retrieved, err := store.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Content", retrieved.Text)
	assert.Empty(t, retrieved.Likes)
}

func TestStore_DeletePost(t *testing.T) {
	store, post := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.DeletePost(ctx, post.ID))

	_, err := store.GetPostByID(ctx, post.ID)
	assert.ErrorIs(t, err, storage.ErrPostNotFound)

	err = store.DeletePost(ctx, post.ID)
	assert.ErrorIs(t, err, storage.ErrPostNotFound)
}
