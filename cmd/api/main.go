package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"task_manager/docs"
	"task_manager/internal/config"
	"task_manager/internal/handlers"
	"task_manager/internal/logger"
	"task_manager/internal/repository"
	"task_manager/internal/repository/db"
	"task_manager/internal/server"
	"task_manager/internal/service"

	flag "github.com/spf13/pflag"
)

const shutdownTimeout = 10 * time.Second

// @title           Task Manager API
// @version         1.0
// @description     Personal task manager: accounts, owner-scoped tasks and simple stats.
// @BasePath        /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	configPath, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	// load config.yml
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Init(cfg.Log.Level, cfg.Log.Encoding)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatalw("invalid config", "err", err)
	}

	// open DB
	conn, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init database", "driver", cfg.DB.Driver, "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close database", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn, cfg.DB.Driver)
	closeCache := attachCache(cfg, repos, log)
	defer closeCache()

	docs.SwaggerInfo.BasePath = cfg.BasePath
	services := service.NewService(repos, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	apiHandler := handlers.NewHandler(services, log, handlers.Options{
		BasePath:       cfg.BasePath,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

// openDB initializes the configured database.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	log.Infow("opening database", "driver", cfg.DB.Driver)
	return db.Open(cfg.DB.Driver, cfg.DB.DSN)
}

// attachCache puts the redis list cache in front of the task store when
// redis.addr is set. A redis that cannot be reached at startup is skipped.
func attachCache(cfg *config.Config, repos *repository.Repository, log *logger.Logger) func() {
	if cfg.Redis.Addr == "" {
		return func() {}
	}
	rdb, err := repository.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warnw("task cache disabled", "addr", cfg.Redis.Addr, "err", err)
		return func() {}
	}
	repos.Tasks = repository.NewCachedTasks(repos.Tasks, rdb, cfg.Redis.TTL, log)
	log.Infow("task cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	return func() { _ = rdb.Close() }
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("server starting", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}

// parseFlags returns the --config path; empty means configs/config.yml.
func parseFlags(args []string) (string, error) {
	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "path to config file (default configs/config.yml)")
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	return *configPath, nil
}
