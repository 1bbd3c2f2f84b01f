package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UkralStul/social-feed-service/internal/logger"
)

func newTestProvider(t *testing.T) *Provider {
	return NewProvider("test-secret", logger.NewNop())
}

func TestProvider_RegisterAndResolve(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	token, err := p.Register(ctx, "Alice", "Alice@Example.com", "password1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := p.Resolve(token)
	require.NoError(t, err)

	user, err := p.UserByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	// Email нормализуется при регистрации
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Contains(t, user.AvatarURL, "gravatar.com/avatar/")
	// Пароль хранится только хэшем
	assert.NotEqual(t, "password1", user.Password)
}

func TestProvider_RegisterDuplicateEmail(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	_, err := p.Register(ctx, "Alice", "alice@example.com", "password1")
	require.NoError(t, err)

	_, err = p.Register(ctx, "Impostor", "alice@example.com", "password2")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestProvider_Login(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	_, err := p.Register(ctx, "Alice", "alice@example.com", "password1")
	require.NoError(t, err)

	token, err := p.Login(ctx, "alice@example.com", "password1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	_, err = p.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Про несуществующий email не сообщаем отдельно
	_, err = p.Login(ctx, "nobody@example.com", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProvider_ResolveInvalidToken(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	_, err := p.Resolve("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Токен, подписанный другим секретом, не принимается
	other := NewProvider("other-secret", logger.NewNop())
	token, err := other.Register(ctx, "Eve", "eve@example.com", "password1")
	require.NoError(t, err)

	_, err = p.Resolve(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestProvider_ProfileSnapshot(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	token, err := p.Register(ctx, "Alice", "alice@example.com", "password1")
	require.NoError(t, err)
	userID, err := p.Resolve(token)
	require.NoError(t, err)

	profile, err := p.Profile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, profile.ID)
	assert.Equal(t, "Alice", profile.DisplayName)
	assert.NotEmpty(t, profile.AvatarURL)

	_, err = p.Profile(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
