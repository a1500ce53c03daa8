package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	v1 "go-parley/cmd/api/router/v1"
	"go-parley/internal/config"
	cacheadapter "go-parley/internal/infrastructure/cache/adapter"
	"go-parley/internal/infrastructure/database"
	queueadapter "go-parley/internal/infrastructure/queue/adapter"
	"go-parley/internal/infrastructure/realtime"
	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/chat/application/task"
	"go-parley/internal/pkg/chat/application/usecase"
	chatadapter "go-parley/internal/pkg/chat/persistence/repository/adapter"
	"go-parley/internal/pkg/room/application/memberindex"
	roomadapter "go-parley/internal/pkg/room/persistence/repository/adapter"
	useradapter "go-parley/internal/pkg/user/persistence/repository/adapter"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg(".env file not found or could not be loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	pool, err := database.NewPoolFromEnv(ctx)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	cache, err := cacheadapter.NewRedisAdapter()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer cache.Close()

	queueClient, err := queueadapter.NewAsynqClientFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create queue client")
	}
	defer queueClient.Close()

	users := useradapter.NewPgUserRepository(pool)
	rooms := roomadapter.NewPgRoomRepository(pool)
	messages := chatadapter.NewPgMessageRepository(pool)
	notifications := chatadapter.NewPgNotificationRepository(pool)

	tokens := auth.NewTokenManager(auth.TokenConfig{
		Secret: cfg.JWTSecret,
		TTL:    cfg.JWTTTL,
		Issuer: cfg.JWTIssuer,
	})
	hasher := auth.NewPasswordHasher()
	verifier := auth.NewVerifier(tokens, users, cache)

	// Warm the membership index before accepting any connection: the
	// realtime handshake and every room authorization check read from it.
	index := memberindex.New()
	loadCtx, loadCancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = index.LoadAll(loadCtx, rooms)
	loadCancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load room memberships")
	}

	hub := realtime.NewHub()
	defer hub.Close()

	worker, err := queueadapter.NewAsynqServer(log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create queue server")
	}
	fanOut := usecase.NewFanOutRoomNotificationsUseCase(notifications, rooms)
	worker.Register(task.TypeNotifyRoomMembers, task.NotifyRoomMembersHandler(fanOut, log))

	workerCtx, stopWorker := context.WithCancel(context.Background())
	go func() {
		if err := worker.Run(workerCtx); err != nil {
			log.Error().Err(err).Msg("queue server stopped")
		}
	}()

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	v1.RegisterRoutes(r, v1.Deps{
		Users:         users,
		Rooms:         rooms,
		Messages:      messages,
		Notifications: notifications,
		Index:         index,
		Hub:           hub,
		Verifier:      verifier,
		Tokens:        tokens,
		Hasher:        hasher,
		Queue:         queueClient,
		Log:           log,
	})

	srv := &http.Server{Addr: cfg.Addr, Handler: r}
	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	stopWorker()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = worker.Stop(shutdownCtx)
	hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
