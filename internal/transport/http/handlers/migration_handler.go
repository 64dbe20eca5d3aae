package handlers

import (
	"io"
	"net/http"

	"go.uber.org/zap"

	localstore "github.com/AustiNight/chefmargaretalvis-sub001/internal/repo/localstore"
	migrationsvc "github.com/AustiNight/chefmargaretalvis-sub001/internal/services/migration"
	"github.com/AustiNight/chefmargaretalvis-sub001/internal/transport/http/dto"
	httperrors "github.com/AustiNight/chefmargaretalvis-sub001/internal/transport/http/errors"
)

const maxSnapshotBytes = 16 << 20

// MigrationHandler accepts a legacy localStorage export and runs the
// one-shot import. The builder wires a pipeline around the posted
// snapshot; everything else (stores, progress markers) is fixed at
// construction.
type MigrationHandler struct {
	build  func(source migrationsvc.Source) *migrationsvc.Service
	logger *zap.Logger
}

func NewMigrationHandler(build func(source migrationsvc.Source) *migrationsvc.Service, logger *zap.Logger) *MigrationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MigrationHandler{
		build:  build,
		logger: logger,
	}
}

func (h *MigrationHandler) Migrate(w http.ResponseWriter, r *http.Request) {
	if h.build == nil {
		httperrors.Write(w, http.StatusInternalServerError, dto.MigrationFailureResponse{
			Success: false,
			Message: "migration is unavailable",
		})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxSnapshotBytes))
	if err != nil {
		httperrors.Write(w, http.StatusBadRequest, dto.MigrationFailureResponse{
			Success: false,
			Message: "failed to read legacy export",
			Error:   err.Error(),
		})
		return
	}

	snapshot, err := localstore.Parse(body)
	if err != nil {
		httperrors.Write(w, http.StatusBadRequest, dto.MigrationFailureResponse{
			Success: false,
			Message: "invalid legacy export",
			Error:   err.Error(),
		})
		return
	}

	report, err := h.build(snapshot).MigrateAll(r.Context())
	if err != nil {
		h.logger.Error("migration failed", zap.Error(err))
		httperrors.Write(w, http.StatusInternalServerError, dto.MigrationFailureResponse{
			Success: false,
			Message: "migration failed",
			Error:   err.Error(),
		})
		return
	}

	h.logger.Info("migration completed",
		zap.Int("events", report.Events),
		zap.Int("users", report.Users),
		zap.Int("form_submissions", report.FormSubmissions),
		zap.Int("recipes", report.Recipes),
		zap.Int("blog_posts", report.BlogPosts),
		zap.Int("notifications", report.Notifications),
		zap.Bool("site_settings", report.SiteSettings),
	)

	httperrors.Write(w, http.StatusOK, dto.MigrationResponse{
		Success: true,
		Message: "migration completed",
		Stats:   toMigrationStats(report),
	})
}

func toMigrationStats(report migrationsvc.Report) dto.MigrationStats {
	return dto.MigrationStats{
		Success:         report.Success,
		Events:          report.Events,
		Users:           report.Users,
		FormSubmissions: report.FormSubmissions,
		Recipes:         report.Recipes,
		BlogPosts:       report.BlogPosts,
		Notifications:   report.Notifications,
		SiteSettings:    report.SiteSettings,
	}
}
