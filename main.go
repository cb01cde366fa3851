package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/mbolis/quick-form/app"
	"github.com/mbolis/quick-form/config"
	"github.com/mbolis/quick-form/database"
	"github.com/mbolis/quick-form/httpx"
	"github.com/mbolis/quick-form/log"
	"github.com/mbolis/quick-form/routes"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg.DBUrl)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	ctx := context.Background()
	if cfg.AdminPassword != "" {
		err = database.EnsureUser(ctx, db, cfg.AdminUser, cfg.AdminPassword)
		if err != nil {
			log.Fatal("main.db.admin:", err)
		}
	}
	if cfg.SeedFile != "" {
		n, err := database.SeedFile(ctx, db, cfg.SeedFile)
		if err != nil {
			log.Fatal("main.db.seed:", err)
		}
		log.Infof("seeded %d forms from %s", n, cfg.SeedFile)
	}

	app := app.App{
		DB:           db,
		BearerServer: httpx.NewBearerServer(db, cfg),
		Config:       cfg,
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
