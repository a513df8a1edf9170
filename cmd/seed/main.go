package main

import (
	"context"
	"os"
	"time"

	"task_manager/internal/config"
	"task_manager/internal/logger"
	"task_manager/internal/repository"
	"task_manager/internal/repository/db"
	"task_manager/internal/seed"
	"task_manager/internal/service"

	flag "github.com/spf13/pflag"
)

const seedTimeout = 30 * time.Second

func main() {
	configPath, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Init(cfg.Log.Level, cfg.Log.Encoding)
	defer func() { _ = log.Sync() }()

	conn, err := db.Open(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		log.Fatalw("failed to init database", "driver", cfg.DB.Driver, "err", err)
	}
	defer conn.Close()

	repos := repository.NewRepository(conn, cfg.DB.Driver)
	// tokens are never issued here, so the signing key is irrelevant
	services := service.NewService(repos, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	res, err := seed.New(repos.Maintenance, services.Authorization, repos.Tasks, log).Run(ctx, time.Now())
	if err != nil {
		log.Fatalw("seed failed", "err", err)
	}
	log.Infow("seed complete", "email", seed.DemoEmail, "userId", res.UserID, "tasks", res.Tasks)
}

// parseFlags returns the --config path; empty means configs/config.yml.
func parseFlags(args []string) (string, error) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "path to config file (default configs/config.yml)")
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	return *configPath, nil
}
