package main

import (
	"flag"

	"github.com/slodongo/kgl-api/internal/infrastructure/database"
	"github.com/slodongo/kgl-api/pkg/config"
	"github.com/slodongo/kgl-api/pkg/logger"
)

func main() {
	path := flag.String("path", "migrations", "directory holding the SQL migration files")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	if err := database.RunMigrations(cfg.DB, *path, log); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}
}
