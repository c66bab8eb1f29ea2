package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"banking-service/internal/config"
	"banking-service/internal/handler"
	"banking-service/internal/pub"
	"banking-service/internal/repository"
	"banking-service/internal/router"
	"banking-service/internal/service"
	"banking-service/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const schemaPath = "migrations/schema.sql"

type Server struct {
	httpServer *http.Server
	db         *pgxpool.Pool
	rdb        *redis.Client
	logger     *zap.Logger
}

func New(cfg *config.Config) *Server {
	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("failed to connect DB: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	// Repositories
	store := repository.NewPostgresStore(db)
	accountRepo := repository.NewAccountRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	userRepo := repository.NewUserRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Schema + default users
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := service.NewBootstrap(db, userRepo, logger).Run(ctx, schemaPath); err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}

	// Usecases
	events := pub.NewTransactionEventPublisher(rdb)
	ledgerUC := usecase.NewLedgerService(store, logger, events)
	authUC := usecase.NewAuthService(userRepo, rdb, cfg.JWTSecret, cfg.SessionTTL, logger)
	reportUC := usecase.NewReportService(reportRepo, rdb, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authUC)
	accountHandler := handler.NewAccountHandler(ledgerUC, accountRepo)
	txHandler := handler.NewTransactionHandler(ledgerUC, txRepo)
	reportHandler := handler.NewReportHandler(reportUC)

	r := router.New(authUC, authHandler, accountHandler, txHandler, reportHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
		db:     db,
		rdb:    rdb,
		logger: logger,
	}
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	defer func() {
		s.db.Close()
		_ = s.rdb.Close()
		_ = s.logger.Sync()
	}()
	return s.httpServer.Shutdown(ctx)
}
