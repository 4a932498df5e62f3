package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	apicontext "github.com/dtroode/tasktracker-server/internal/api/http/context"
	"github.com/dtroode/tasktracker-server/internal/api/http/handler"
	"github.com/dtroode/tasktracker-server/internal/api/http/router"
	httpServer "github.com/dtroode/tasktracker-server/internal/api/http/server"
	"github.com/dtroode/tasktracker-server/internal/config"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
	"github.com/dtroode/tasktracker-server/internal/password"
	"github.com/dtroode/tasktracker-server/internal/query"
	"github.com/dtroode/tasktracker-server/internal/repository/memory"
	"github.com/dtroode/tasktracker-server/internal/repository/postgres"
	"github.com/dtroode/tasktracker-server/internal/server"
	"github.com/dtroode/tasktracker-server/internal/service"
	storage "github.com/dtroode/tasktracker-server/internal/storage/minio"
	"github.com/dtroode/tasktracker-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

type stores struct {
	users  model.UserStore
	tasks  model.TaskStore
	pinger handler.Pinger
	close  func() error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	// A missing .env file is fine; the environment alone is enough.
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	location, err := cfg.Location()
	if err != nil {
		logger.Fatal("failed to resolve timezone", "error", err)
	}

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer st.close()

	var avatars model.Storage
	if cfg.Storage.Enabled {
		avatars, err = openObjectStorage(ctx, cfg.Storage)
		if err != nil {
			logger.Fatal("failed to initialize object storage", "error", err)
		}
	}

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)
	hasher := password.NewBcrypt(cfg.Password.Cost)
	engine := query.NewEngine(nil, location)

	sessionService := service.NewSession(tokenManager, st.users, logger)
	authService := service.NewAuth(st.users, hasher, sessionService, avatars, logger)
	taskService := service.NewTask(st.tasks, st.users, engine, logger)

	r := router.New(authService, taskService, sessionService, st.pinger, apicontext.NewManager(), cfg.HTTP.AllowedOrigins, logger)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port), cfg.HTTP.ReadTimeout)

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func openStores(ctx context.Context, cfg *config.Config, logger *logger.Logger) (stores, error) {
	if cfg.Database.InMemory {
		logger.Warn("using in-memory storage, data is lost on restart")
		return stores{
			users: memory.NewUserRepository(),
			tasks: memory.NewTaskRepository(),
			close: func() error { return nil },
		}, nil
	}

	db, err := postgres.NewConection(ctx, cfg.Database.DSN, cfg.Database.QueryTimeout)
	if err != nil {
		return stores{}, err
	}
	return stores{
		users:  postgres.NewUserRepository(db),
		tasks:  postgres.NewTaskRepository(db),
		pinger: db,
		close:  db.Close,
	}, nil
}

func openObjectStorage(ctx context.Context, cfg config.Storage) (*storage.Client, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return storage.NewClient(ctx, minioClient, cfg.Bucket)
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
