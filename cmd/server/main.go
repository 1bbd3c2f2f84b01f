package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"github.com/UkralStul/social-feed-service/internal/api"
	"github.com/UkralStul/social-feed-service/internal/identity"
	"github.com/UkralStul/social-feed-service/internal/logger"
	"github.com/UkralStul/social-feed-service/internal/service"
	"github.com/UkralStul/social-feed-service/internal/storage"
	"github.com/UkralStul/social-feed-service/internal/storage/inmemory"
	"github.com/UkralStul/social-feed-service/internal/storage/postgres"
)

const defaultPort = "8080"

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	storageType := flag.String("storage", "in-memory", "Storage type (in-memory or postgres)")
	flag.Parse()

	log, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret"
		log.Warn("JWT_SECRET is not set, using insecure development secret")
	}

	var store storage.Storage

	log.Info("starting server", "storage", *storageType)
	if *storageType == "postgres" {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			log.Fatal("DATABASE_URL must be set for postgres storage")
		}
		store, err = postgres.New(dsn)
		if err != nil {
			log.Fatal("failed to connect to postgres", "error", err)
		}
	} else {
		store = inmemory.New()
	}

	idp := identity.NewProvider(secret, log)
	svc := service.New(store, idp, log)

	if *storageType != "postgres" {
		// Заполним данными для ручной проверки
		fillWithMockData(idp, svc, log)
	}

	router := api.NewRouter(svc, idp, log)

	log.Info("server listening", "port", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal("server failed to start", "error", err)
	}
}

func fillWithMockData(idp *identity.Provider, svc *service.Service, log *logger.Logger) {
	ctx := context.Background()

	// 1. Регистрируем двух пользователей и разрешаем их id из токенов.
	aliceToken, err := idp.Register(ctx, "Alice", "alice@example.com", "password1")
	if err != nil {
		log.Fatal("fillWithMockData: failed to register alice", "error", err)
	}
	aliceID, err := idp.Resolve(aliceToken)
	if err != nil {
		log.Fatal("fillWithMockData: failed to resolve alice token", "error", err)
	}

	bobToken, err := idp.Register(ctx, "Bob", "bob@example.com", "password2")
	if err != nil {
		log.Fatal("fillWithMockData: failed to register bob", "error", err)
	}
	bobID, err := idp.Resolve(bobToken)
	if err != nil {
		log.Fatal("fillWithMockData: failed to resolve bob token", "error", err)
	}

	// 2. Создаем пост от имени первого пользователя.
	post, err := svc.CreatePost(ctx, aliceID, service.CreatePostInput{
		Title: "Тестовый пост",
		Text:  "Это содержимое тестового поста.",
	})
	if err != nil {
		log.Fatal("fillWithMockData: failed to create post", "error", err)
	}

	// 3. Второй пользователь лайкает и комментирует.
	if _, err := svc.LikePost(ctx, bobID, post.ID); err != nil {
		log.Fatal("fillWithMockData: failed to like post", "error", err)
	}
	if _, err := svc.AddComment(ctx, bobID, post.ID, "Отличный пост!"); err != nil {
		log.Fatal("fillWithMockData: failed to add comment", "error", err)
	}

	log.Info("mock data filled successfully", "postId", post.ID)
}
