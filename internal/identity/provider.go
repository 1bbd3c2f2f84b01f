package identity

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/UkralStul/social-feed-service/internal/domain"
	"github.com/UkralStul/social-feed-service/internal/logger"
)

var (
	// ErrUserExists — пользователь с таким email уже зарегистрирован.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials — неверная пара email/пароль. Не уточняем,
	// что именно не совпало.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound — пользователь с таким id не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidToken — токен просрочен или подпись не сошлась.
	ErrInvalidToken = errors.New("invalid token")
)

const tokenTTL = 10 * time.Hour

// Provider выпускает и проверяет токены доступа (HS256) и хранит реестр
// пользователей с bcrypt-хэшами паролей. Для сервиса постов он же является
// источником снимков профиля.
type Provider struct {
	mu      sync.RWMutex
	users   map[string]*domain.User // по id
	byEmail map[string]string       // email -> id

	secret []byte
	log    *logger.Logger
}

// NewProvider создает провайдер идентичности с пустым реестром пользователей.
func NewProvider(secret string, log *logger.Logger) *Provider {
	return &Provider{
		users:   make(map[string]*domain.User),
		byEmail: make(map[string]string),
		secret:  []byte(secret),
		log:     log.With("component", "identity"),
	}
}

// Register регистрирует пользователя и сразу выдает токен.
// Аватар вычисляется из email (gravatar) и фиксируется на момент регистрации.
func (p *Provider) Register(ctx context.Context, name, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  string(hash),
		AvatarURL: gravatarURL(email),
		CreatedAt: time.Now().UTC(),
	}

	p.mu.Lock()
	if _, ok := p.byEmail[email]; ok {
		p.mu.Unlock()
		return "", ErrUserExists
	}
	p.users[user.ID] = user
	p.byEmail[email] = user.ID
	p.mu.Unlock()

	p.log.Info("user registered", "userId", user.ID)
	return p.issueToken(user.ID)
}

// Login проверяет пароль и выдает токен.
func (p *Provider) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	p.mu.RLock()
	id, ok := p.byEmail[email]
	var user *domain.User
	if ok {
		user = p.users[id]
	}
	p.mu.RUnlock()

	if user == nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return p.issueToken(user.ID)
}

// Resolve извлекает id пользователя из токена.
func (p *Provider) Resolve(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		// Принимаем только HMAC: подмена алгоритма в заголовке не пройдет.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// UserByID возвращает пользователя по id.
func (p *Provider) UserByID(ctx context.Context, id string) (*domain.User, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	user, ok := p.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

// Profile реализует service.Profiles: снимок профиля для денормализации.
func (p *Provider) Profile(ctx context.Context, userID string) (domain.Profile, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	user, ok := p.users[userID]
	if !ok {
		return domain.Profile{}, ErrUserNotFound
	}
	return domain.Profile{
		ID:          user.ID,
		DisplayName: user.Name,
		AvatarURL:   user.AvatarURL,
	}, nil
}

func (p *Provider) issueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

// gravatarURL строит адрес аватара по email.
func gravatarURL(email string) string {
	sum := md5.Sum([]byte(email))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=200&r=pg&d=mm", hex.EncodeToString(sum[:]))
}
