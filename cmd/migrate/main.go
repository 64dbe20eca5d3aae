package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/AustiNight/chefmargaretalvis-sub001/internal/config"
	"github.com/AustiNight/chefmargaretalvis-sub001/internal/infra/logger"
	localstore "github.com/AustiNight/chefmargaretalvis-sub001/internal/repo/localstore"
	pgrepo "github.com/AustiNight/chefmargaretalvis-sub001/internal/repo/postgres"
	migrationsvc "github.com/AustiNight/chefmargaretalvis-sub001/internal/services/migration"
)

// migrate imports a legacy localStorage export file into postgres. The
// same pipeline backs the admin API endpoint; this binary exists for
// operators who prefer to run the import from a shell.
func main() {
	exportPath := flag.String("export", "", "path to the legacy localStorage export (JSON)")
	cfgPath := flag.String("config", "configs/config.yaml", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = log.Sync()
	}()

	if *exportPath == "" {
		log.Fatal("missing -export flag")
	}

	data, err := os.ReadFile(*exportPath)
	if err != nil {
		log.Fatal("read legacy export", zap.Error(err))
	}

	snapshot, err := localstore.Parse(data)
	if err != nil {
		log.Fatal("parse legacy export", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	service := migrationsvc.NewService(migrationsvc.Dependencies{
		Source:          snapshot,
		Events:          pgrepo.NewEventRepo(pool),
		Users:           pgrepo.NewAdminUserRepo(pool),
		FormSubmissions: pgrepo.NewFormSubmissionRepo(pool),
		Recipes:         pgrepo.NewRecipeRepo(pool),
		BlogPosts:       pgrepo.NewBlogPostRepo(pool),
		Notifications:   pgrepo.NewNotificationRepo(pool),
		Settings:        pgrepo.NewSiteSettingsRepo(pool),
		Progress:        pgrepo.NewMigrationProgressRepo(pool),
	})

	report, err := service.MigrateAll(ctx)
	if err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	log.Info("migration completed",
		zap.Int("events", report.Events),
		zap.Int("users", report.Users),
		zap.Int("form_submissions", report.FormSubmissions),
		zap.Int("recipes", report.Recipes),
		zap.Int("blog_posts", report.BlogPosts),
		zap.Int("notifications", report.Notifications),
		zap.Bool("site_settings", report.SiteSettings),
	)
}
