package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpHandler "github.com/anthanhphan/go-files-manager/internal/api/adapter/inbound/http"
	"github.com/anthanhphan/go-files-manager/internal/api/adapter/outbound/asynqqueue"
	"github.com/anthanhphan/go-files-manager/internal/api/adapter/outbound/disk"
	"github.com/anthanhphan/go-files-manager/internal/api/adapter/outbound/mongodb"
	"github.com/anthanhphan/go-files-manager/internal/api/adapter/outbound/redistoken"
	"github.com/anthanhphan/go-files-manager/internal/api/config"
	"github.com/anthanhphan/go-files-manager/internal/api/service"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type App struct {
	cfg         *config.Config
	server      *httpHandler.Server
	mongoClient *mongo.Client
	redisClient *redis.Client
	queueClient *asynq.Client
}

func New(configPath string) (*App, error) {
	// 1. Load Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger.InitLogger(&cfg.Logger)

	// 3. Initialize Mongo
	mongoClient, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect mongo: %w", err)
	}
	db := mongoClient.Database(cfg.Mongo.Database)

	// 4. Initialize Redis and the job queue client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// 5. Adapters & Service
	svc := service.NewFileService(
		mongodb.NewFileRepository(db),
		mongodb.NewUserRepository(db),
		redistoken.NewTokenStore(redisClient),
		disk.NewBlobStore(cfg.Storage.BaseDir),
		asynqqueue.NewJobQueue(queueClient),
		mongodb.NewHealth(mongoClient),
	)

	// 6. HTTP Server
	httpServer := httpHandler.NewServer(cfg, svc)

	return &App{
		cfg:         cfg,
		server:      httpServer,
		mongoClient: mongoClient,
		redisClient: redisClient,
		queueClient: queueClient,
	}, nil
}

func (a *App) Run() error {
	logger.Infow("Files manager API starting", "addr", a.cfg.Server.Addr, "base_dir", a.cfg.Storage.BaseDir)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			serverErrCh <- err
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case sig := <-stop:
		logger.Infow("Shutdown signal received", "signal", sig.String())
	case err := <-serverErrCh:
		runErr = fmt.Errorf("http server failed: %w", err)
		logger.Errorw("API server exited unexpectedly", "error", err.Error())
	}

	logger.Info("Shutting down API services")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Stop(shutdownCtx); err != nil {
		logger.Errorw("API shutdown error", "error", err.Error())
		if runErr == nil {
			runErr = err
		}
	}
	if err := a.queueClient.Close(); err != nil {
		logger.Warnw("Queue client close error", "error", err.Error())
	}
	if err := a.redisClient.Close(); err != nil {
		logger.Warnw("Redis close error", "error", err.Error())
	}
	if err := a.mongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Warnw("Mongo disconnect error", "error", err.Error())
	}

	return runErr
}
