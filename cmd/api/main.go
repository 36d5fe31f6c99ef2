package main

// @title Matjib Backend API
// @version 1.0.0
// @description Бэкенд локального поиска заведений. Проксирует 상가(상권)정보 API портала открытых данных Кореи с нормализацией ответа к стабильной JSON-схеме, а также Naver Blog Search, OAuth-брокеринг Naver/Kakao и email-аутентификацию через Supabase.
// @description
// @description Основные возможности:
// @description - Поиск заведений общепита по тексту запроса с автоматическим выбором эндпоинта
// @description - Классификация ответа портала (JSON / HTML-ошибка / XML-ошибка) и каноническая схема записей
// @description - Поиск постов в блогах Naver
// @description - OAuth-брокеринг Naver и Kakao с одноразовым state в Redis
// @description - Вход и регистрация по email через Supabase GoTrue

// @contact.name API Support
// @contact.email support@matjib.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/matjib/matjib-backend/docs/swagger"
	"github.com/matjib/matjib-backend/internal/config"
	httpDelivery "github.com/matjib/matjib-backend/internal/delivery/http"
	"github.com/matjib/matjib-backend/internal/delivery/http/handler"
	"github.com/matjib/matjib-backend/internal/infrastructure/kakao"
	"github.com/matjib/matjib-backend/internal/infrastructure/naver"
	"github.com/matjib/matjib-backend/internal/infrastructure/publicdata"
	"github.com/matjib/matjib-backend/internal/infrastructure/supabaseauth"
	"github.com/matjib/matjib-backend/internal/pkg/logger"
	redisrepo "github.com/matjib/matjib-backend/internal/repository/redis"
	"github.com/matjib/matjib-backend/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Matjib Backend")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to Redis (одноразовые OAuth state)
	redisClient, err := redisrepo.New(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	// 4. Initialize upstream clients
	storeRepo := publicdata.NewClient(&cfg.PublicData, log)
	naverClient := naver.NewClient(&cfg.Naver, log)
	kakaoClient := kakao.NewClient(&cfg.Kakao, log)

	authRepo, err := supabaseauth.NewClient(&cfg.Supabase, log)
	if err != nil {
		log.Fatal("Failed to initialize Supabase client", zap.Error(err))
	}

	stateRepo := redisrepo.NewStateRepository(redisClient.Client(), log)

	log.Info("Upstream clients initialized")

	// 5. Initialize Use Cases
	searchUC := usecase.NewSearchUseCase(
		storeRepo,
		log,
		cfg.IsProduction(),
	)

	blogSearchUC := usecase.NewBlogSearchUseCase(
		naverClient,
		log,
	)

	authUC := usecase.NewAuthUseCase(
		naverClient,
		kakaoClient,
		authRepo,
		stateRepo,
		log,
		cfg.OAuth.StateTTL,
	)

	log.Info("Use cases initialized")

	// 6. Initialize HTTP Handlers
	searchHandler := handler.NewSearchHandler(searchUC, log)
	blogSearchHandler := handler.NewBlogSearchHandler(blogSearchUC, log)
	authHandler := handler.NewAuthHandler(authUC, log)

	// 7. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		searchHandler,
		blogSearchHandler,
		authHandler,
	)

	// 8. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
