package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/AustiNight/chefmargaretalvis-sub001/internal/config"
	s3infra "github.com/AustiNight/chefmargaretalvis-sub001/internal/infra/s3"
	"github.com/AustiNight/chefmargaretalvis-sub001/internal/jobs/cleanup"
	pgrepo "github.com/AustiNight/chefmargaretalvis-sub001/internal/repo/postgres"
	redrepo "github.com/AustiNight/chefmargaretalvis-sub001/internal/repo/redis"
	authsvc "github.com/AustiNight/chefmargaretalvis-sub001/internal/services/adminauth"
	contentsvc "github.com/AustiNight/chefmargaretalvis-sub001/internal/services/content"
	mediasvc "github.com/AustiNight/chefmargaretalvis-sub001/internal/services/media"
	migrationsvc "github.com/AustiNight/chefmargaretalvis-sub001/internal/services/migration"
	ratesvc "github.com/AustiNight/chefmargaretalvis-sub001/internal/services/rate"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	s3         *minio.Client
	cleanupJob *cleanup.Job
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	var redisClient *goredis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	}

	adminUserRepo := pgrepo.NewAdminUserRepo(pool)
	eventRepo := pgrepo.NewEventRepo(pool)
	submissionRepo := pgrepo.NewFormSubmissionRepo(pool)
	recipeRepo := pgrepo.NewRecipeRepo(pool)
	blogPostRepo := pgrepo.NewBlogPostRepo(pool)
	testimonialRepo := pgrepo.NewTestimonialRepo(pool)
	notificationRepo := pgrepo.NewNotificationRepo(pool)
	settingsRepo := pgrepo.NewSiteSettingsRepo(pool)
	progressRepo := pgrepo.NewMigrationProgressRepo(pool)

	// Window counters live in redis so the limit holds across replicas.
	// Without redis a per-process map still enforces the window locally.
	var windows ratesvc.WindowStore = redrepo.NewRateRepo(redisClient)
	if redisClient == nil {
		windows = ratesvc.NewMemoryStore()
	}
	limiter := ratesvc.NewLimiter(windows, cfg.Auth.LoginAttempts, cfg.Auth.LoginWindow)

	identities := identityStore(pool, adminUserRepo, cfg.Admins, log)
	tokens := authsvc.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL)
	authService := authsvc.NewService(tokens, identities, limiter)

	contentService := contentsvc.NewService(contentsvc.Dependencies{
		Events:        eventRepo,
		Recipes:       recipeRepo,
		BlogPosts:     blogPostRepo,
		Testimonials:  testimonialRepo,
		Submissions:   submissionRepo,
		Notifications: notificationRepo,
		Settings:      settingsRepo,
	})

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	} else {
		s3Client = c
	}
	mediaService := mediasvc.NewService(mediasvc.NewS3Storage(s3Client, cfg.S3.Bucket))

	migrationBuilder := func(source migrationsvc.Source) *migrationsvc.Service {
		return migrationsvc.NewService(migrationsvc.Dependencies{
			Source:          source,
			Events:          eventRepo,
			Users:           adminUserRepo,
			FormSubmissions: submissionRepo,
			Recipes:         recipeRepo,
			BlogPosts:       blogPostRepo,
			Notifications:   notificationRepo,
			Settings:        settingsRepo,
			Progress:        progressRepo,
		})
	}

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	RegisterRoutes(r, Dependencies{
		AuthService:      authService,
		ContentService:   contentService,
		MediaService:     mediaService,
		MigrationBuilder: migrationBuilder,
		Logger:           log,
		Config:           cfg,
	})

	var cleanupJob *cleanup.Job
	if pool != nil {
		cleanupJob = cleanup.New(notificationRepo, cfg.Site.ReadRetention, log)
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		s3:         s3Client,
		cleanupJob: cleanupJob,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// RunCleanup blocks, pruning read notifications on the configured
// interval until ctx is cancelled.
func (a *App) RunCleanup(ctx context.Context) {
	if a.cleanupJob == nil {
		return
	}
	a.cleanupJob.RunEvery(ctx, a.cfg.Site.CleanupInterval)
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}

// identityStore picks the administrator registry: the admin_users table
// when postgres is up, the config-seeded accounts otherwise.
func identityStore(pool *pgxpool.Pool, repo *pgrepo.AdminUserRepo, seeds []config.AdminSeed, log *zap.Logger) authsvc.IdentityStore {
	if pool != nil {
		return &pgIdentityStore{repo: repo}
	}

	if len(seeds) == 0 {
		log.Warn("no postgres and no seeded admins, logins will be rejected")
	}

	records := make([]authsvc.AdminRecord, 0, len(seeds))
	for _, seed := range seeds {
		records = append(records, authsvc.AdminRecord{
			Email:    seed.Email,
			Name:     seed.Name,
			Role:     seed.Role,
			Password: seed.Password,
		})
	}
	return authsvc.NewStaticRegistry(records)
}

type pgIdentityStore struct {
	repo *pgrepo.AdminUserRepo
}

func (s *pgIdentityStore) FindByEmail(ctx context.Context, email string) (authsvc.AdminRecord, error) {
	record, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return authsvc.AdminRecord{}, err
	}
	return authsvc.AdminRecord{
		ID:       record.ID,
		Email:    record.Email,
		Name:     record.Name,
		Role:     record.Role,
		Password: record.Password,
	}, nil
}
