package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"kavun/infrastructure/cache"
	"kavun/infrastructure/db"
	"kavun/infrastructure/ws"
	httpDelivery "kavun/internal/delivery/http"
	"kavun/internal/delivery/websocket"
	"kavun/internal/repository"
	"kavun/internal/usecase"
	"kavun/pkg/jwt"
	"kavun/pkg/mail"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("godotenv: no .env file, using environment")
	}

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	if os.Getenv("LOG_LEVEL") == "debug" {
		logrus.SetLevel(logrus.DebugLevel)
	}

	ctx := context.Background()

	mongoStore, err := db.NewMongoStore(ctx, os.Getenv("MONGODB_URI"), os.Getenv("MONGODB_DATABASE"))
	if err != nil {
		logrus.WithError(err).Fatal("mongodb connection failed")
	}
	defer func() {
		_ = mongoStore.Close(ctx)
	}()

	logrus.Info("connected to MongoDB")

	if err := mongoStore.EnsureIndexes(ctx); err != nil {
		logrus.WithError(err).Fatal("index migration failed")
	}

	// Repositories
	userRepo := repository.NewUserRepository(*mongoStore.DB)
	conversationRepo := repository.NewConversationRepository(*mongoStore.DB)
	messageRepo := repository.NewMessageRepository(*mongoStore.DB)
	notificationRepo := repository.NewNotificationRepository(*mongoStore.DB)
	refreshTokenRepo := repository.NewRefreshTokenRepository(*mongoStore.DB)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-this-in-production"
		logrus.Warn("using default JWT secret, set JWT_SECRET for production")
	}

	// Access token: 15 minutes, refresh token: 30 days
	jwtManager := jwt.NewJWTManager(jwtSecret, 15*time.Minute, 30*24*time.Hour)

	var mailer mail.Mailer
	if smtpAddr := os.Getenv("SMTP_ADDR"); smtpAddr != "" {
		mailer = mail.NewSMTPMailer(smtpAddr, os.Getenv("SMTP_FROM"), os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
		logrus.WithField("addr", smtpAddr).Info("smtp mailer enabled")
	} else {
		mailer = mail.NewNoopMailer()
		logrus.Info("no SMTP_ADDR set, verification mails are logged only")
	}

	bannedWordsPath := os.Getenv("BANNED_WORDS_PATH")
	if bannedWordsPath == "" {
		bannedWordsPath = "banned_words.json"
	}

	userCache := cache.NewMemCache(time.Minute)
	defer userCache.Close()

	// Use cases
	authUc := usecase.NewAuthUsecase(userRepo, refreshTokenRepo, jwtManager, mailer, usecase.AuthConfig{
		BannedWordsPath: bannedWordsPath,
		VerifyBaseURL:   os.Getenv("VERIFY_BASE_URL"),
	})
	userUc := usecase.NewUserUsecase(userRepo)
	conversationUc := usecase.NewConversationUsecase(conversationRepo, messageRepo, userRepo, userCache)
	notificationUc := usecase.NewNotificationUsecase(notificationRepo)

	// Redis hub when REDIS_ADDR is set, in-memory hub otherwise
	var hub ws.IHub
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		serverID := os.Getenv("SERVER_ID")
		if serverID == "" {
			serverID = "server-1"
		}
		logrus.WithFields(logrus.Fields{"addr": redisAddr, "serverId": serverID}).Info("using redis hub")
		hub = ws.NewRedisHub(redisAddr, serverID)
	} else {
		logrus.Info("using in-memory hub (single server)")
		hub = ws.NewHub()
	}

	hub.SetOnClientUnregister(func(client *ws.UserClient) error {
		return userUc.HandleUnregisterClient(ctx, client.UserId)
	})

	go hub.Run()

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(corsMiddleware)

	// Handlers
	websocketH := websocket.NewWebsocketHandler(hub, authUc, userUc, conversationUc)
	httpH := httpDelivery.NewHttpHandler(conversationUc, userUc, hub)
	notificationH := httpDelivery.NewNotificationHandler(notificationUc)
	authH := httpDelivery.NewAuthHandler(authUc)
	authMiddleware := httpDelivery.NewAuthMiddleware(authUc)

	httpDelivery.MapHttpRoutes(router, httpH, notificationH, websocketH, authH, authMiddleware)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logrus.WithField("port", port).Info("http server is running")

	if err := http.ListenAndServe(":"+port, router); err != nil {
		logrus.WithError(err).Fatal("http server stopped")
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigin := os.Getenv("CORS_ORIGIN")
	if allowedOrigin == "" {
		allowedOrigin = "http://localhost:3000"
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
