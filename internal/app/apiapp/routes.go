package apiapp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/AustiNight/chefmargaretalvis-sub001/internal/config"
	authsvc "github.com/AustiNight/chefmargaretalvis-sub001/internal/services/adminauth"
	contentsvc "github.com/AustiNight/chefmargaretalvis-sub001/internal/services/content"
	mediasvc "github.com/AustiNight/chefmargaretalvis-sub001/internal/services/media"
	migrationsvc "github.com/AustiNight/chefmargaretalvis-sub001/internal/services/migration"
	"github.com/AustiNight/chefmargaretalvis-sub001/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService      *authsvc.Service
	ContentService   *contentsvc.Service
	MediaService     *mediasvc.Service
	MigrationBuilder func(source migrationsvc.Source) *migrationsvc.Service
	Logger           *zap.Logger
	Config           config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.AuthService, handlers.AuthHandlerConfig{
		AccessTTL:     deps.Config.Auth.AccessTTL,
		RefreshGrace:  deps.Config.Auth.RefreshGrace,
		SecureCookies: deps.Config.Env == "prod",
	})
	publicHandler := handlers.NewPublicHandler(deps.ContentService)
	contentHandler := handlers.NewContentHandler(deps.ContentService)
	mediaHandler := handlers.NewMediaHandler(deps.MediaService)
	migrationHandler := handlers.NewMigrationHandler(deps.MigrationBuilder, deps.Logger)
	adminMW := RequireAdmin(deps.AuthService, deps.Logger)
	pageGate := AdminPageGate(deps.Config.Site, deps.Config.Auth.PreviewBypass)

	r.Get("/healthz", healthHandler.Get)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Get("/check", authHandler.Check)
		r.Post("/refresh", authHandler.Refresh)
		r.Post("/logout", authHandler.Logout)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/recipes", publicHandler.ListRecipes)
		r.Get("/blog", publicHandler.ListBlogPosts)
		r.Get("/blog/{slug}", publicHandler.GetBlogPost)
		r.Get("/testimonials", publicHandler.ListTestimonials)
		r.Get("/settings", publicHandler.GetSettings)
		r.Post("/contact", publicHandler.SubmitContactForm)
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(adminMW)

		r.Post("/events", contentHandler.CreateEvent)
		r.Get("/events", contentHandler.ListEvents)
		r.Put("/events/{id}", contentHandler.UpdateEvent)
		r.Delete("/events/{id}", contentHandler.DeleteEvent)

		r.Post("/recipes", contentHandler.CreateRecipe)
		r.Get("/recipes", contentHandler.ListRecipes)
		r.Put("/recipes/{id}", contentHandler.UpdateRecipe)
		r.Delete("/recipes/{id}", contentHandler.DeleteRecipe)

		r.Post("/blog", contentHandler.CreateBlogPost)
		r.Get("/blog", contentHandler.ListBlogPosts)
		r.Put("/blog/{id}", contentHandler.UpdateBlogPost)
		r.Delete("/blog/{id}", contentHandler.DeleteBlogPost)

		r.Post("/testimonials", contentHandler.CreateTestimonial)
		r.Get("/testimonials", contentHandler.ListTestimonials)
		r.Put("/testimonials/{id}/approved", contentHandler.ApproveTestimonial)
		r.Delete("/testimonials/{id}", contentHandler.DeleteTestimonial)

		r.Get("/submissions", contentHandler.ListSubmissions)
		r.Put("/submissions/{id}/status", contentHandler.UpdateSubmissionStatus)

		r.Get("/notifications", contentHandler.ListNotifications)
		r.Put("/notifications/{id}/read", contentHandler.MarkNotificationRead)

		r.Get("/settings", contentHandler.GetSettings)
		r.Put("/settings", contentHandler.SaveSettings)

		r.Post("/images", mediaHandler.Upload)

		r.Post("/migrate", migrationHandler.Migrate)
	})

	r.With(pageGate).Get(deps.Config.Site.AdminPathPrefix, adminShell)
	r.With(pageGate).Get(deps.Config.Site.AdminPathPrefix+"/*", adminShell)
}

// adminShell hosts the single-page admin frontend; the page itself loads
// its data through the gated API.
func adminShell(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("<!doctype html><html><head><title>Admin</title></head><body><div id=\"app\"></div></body></html>"))
}
