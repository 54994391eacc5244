package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/VitaminP8/bloggery/internal/auth"
	"github.com/VitaminP8/bloggery/internal/comment"
	"github.com/VitaminP8/bloggery/internal/config"
	"github.com/VitaminP8/bloggery/internal/handlers"
	"github.com/VitaminP8/bloggery/internal/mailer"
	"github.com/VitaminP8/bloggery/internal/post"
	"github.com/VitaminP8/bloggery/internal/storage/memory"
	"github.com/VitaminP8/bloggery/internal/storage/postgres"
	"github.com/VitaminP8/bloggery/internal/subscription"
	"github.com/VitaminP8/bloggery/internal/user"
)

func main() {
	storageType := flag.String("storage", "memory", "Тип хранилища: memory или postgres")
	addr := flag.String("addr", ":8080", "Адрес HTTP сервера")
	flag.Parse()

	// загружаем .env из нашего config.go
	config.LoadEnv()

	manager := subscription.NewSubscriptionManager()

	var postStore post.PostStorage
	var commentStore comment.CommentStorage
	var userStore user.UserStorage

	switch *storageType {
	case "postgres":
		db, err := postgres.Open()
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if err := postgres.Migrate(db); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}

		log.Println("Используется PostgreSQL хранилище")
		postStore = postgres.NewPostPostgresStorage(db)
		commentStore = postgres.NewCommentPostgresStorage(db, manager)
		userStore = postgres.NewUserPostgresStorage(db)

	case "memory":
		log.Println("Используется in-memory хранилище")
		postStore = memory.NewPostMemoryStorage()
		commentStore = memory.NewCommentMemoryStorage(postStore, manager)
		userStore = memory.NewUserMemoryStorage()

	default:
		log.Fatalf("неизвестный тип хранилища: %s", *storageType)
	}

	sessions := auth.NewSessionManager(config.GetEnv("JWT_SECRET"), auth.DefaultSessionTTL)

	var mail mailer.Mailer
	smtpHost := config.GetEnvDefault("SMTP_HOST", "")
	if smtpHost != "" {
		mail = mailer.NewSMTPMailer(
			smtpHost,
			config.GetEnvDefault("SMTP_PORT", "587"),
			config.GetEnv("SMTP_USER"),
			config.GetEnv("SMTP_PASSWORD"),
			config.GetEnv("CONTACT_EMAIL"),
		)
	} else {
		log.Println("SMTP не настроен, контактная форма будет отвечать ошибкой")
		mail = mailer.DisabledMailer{}
	}

	h := &handlers.Handler{
		Users:    userStore,
		Posts:    postStore,
		Comments: commentStore,
		Sessions: sessions,
		Mailer:   mail,
		Subs:     manager,
	}

	// HTTP сервер
	server := &http.Server{
		Addr:    *addr,
		Handler: h.Routes(),
	}

	// запуск HTTP сервера
	go func() {
		log.Printf("Сервер запущен на http://localhost%s/", *addr)
		// строка не возвращается (блокирует поток) пока не выполнится server.Shutdown() или не произойдет фатальная ошибка
		// Поэтому запускаем goroutine
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Ошибка сервера: %v", err)
		}
	}()

	// Ожидание SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // ждет сигнал

	log.Println("Завершение...")

	if err := server.Shutdown(context.Background()); err != nil {
		log.Fatalf("Ошибка при завершении сервера: %v", err)
	}

	log.Println("Сервер остановлен корректно")
}
