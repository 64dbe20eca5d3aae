package migration

import (
	"context"
	"fmt"
	"strings"
	"time"

	localstore "github.com/AustiNight/chefmargaretalvis-sub001/internal/repo/localstore"
	pgrepo "github.com/AustiNight/chefmargaretalvis-sub001/internal/repo/postgres"
)

// Kind names, in migration order. Settings run last as a single upsert.
const (
	KindEvents          = "events"
	KindUsers           = "users"
	KindFormSubmissions = "formSubmissions"
	KindRecipes         = "recipes"
	KindBlogPosts       = "blogPosts"
	KindNotifications   = "notifications"
	KindSiteSettings    = "siteSettings"
)

// Report is the aggregate outcome of one migration run. Counts cover
// records written during this run; kinds skipped by a resume stay zero.
type Report struct {
	Success         bool `json:"success"`
	Events          int  `json:"events"`
	Users           int  `json:"users"`
	FormSubmissions int  `json:"formSubmissions"`
	Recipes         int  `json:"recipes"`
	BlogPosts       int  `json:"blogPosts"`
	Notifications   int  `json:"notifications"`
	SiteSettings    bool `json:"siteSettings"`
}

// KindError wraps the first failing record write; Index is the position
// within the failing kind.
type KindError struct {
	Kind  string
	Index int
	Err   error
}

func (e *KindError) Error() string {
	return fmt.Sprintf("migrate %s record %d: %v", e.Kind, e.Index, e.Err)
}

func (e *KindError) Unwrap() error {
	return e.Err
}

// Source is a read-only snapshot of the legacy store.
type Source interface {
	Events() []localstore.LegacyEvent
	Users() []localstore.LegacyUser
	FormSubmissions() []localstore.LegacyFormSubmission
	Recipes() []localstore.LegacyRecipe
	BlogPosts() []localstore.LegacyBlogPost
	Notifications() []localstore.LegacyNotification
	SiteSettings() (localstore.LegacySiteSettings, bool)
}

type EventStore interface {
	Create(ctx context.Context, event pgrepo.EventRecord) (pgrepo.EventRecord, error)
}

type AdminUserStore interface {
	Create(ctx context.Context, user pgrepo.AdminUserRecord) (pgrepo.AdminUserRecord, error)
}

type FormSubmissionStore interface {
	Create(ctx context.Context, sub pgrepo.FormSubmissionRecord) (pgrepo.FormSubmissionRecord, error)
}

type RecipeStore interface {
	Create(ctx context.Context, recipe pgrepo.RecipeRecord) (pgrepo.RecipeRecord, error)
}

type BlogPostStore interface {
	Create(ctx context.Context, post pgrepo.BlogPostRecord) (pgrepo.BlogPostRecord, error)
}

type NotificationStore interface {
	Create(ctx context.Context, n pgrepo.NotificationRecord) (pgrepo.NotificationRecord, error)
}

type SettingsStore interface {
	Upsert(ctx context.Context, s pgrepo.SiteSettingsRecord) (bool, error)
}

// ProgressStore records per-kind completion markers so a rerun resumes
// from the first incomplete kind. A nil store makes every run start over.
type ProgressStore interface {
	IsDone(ctx context.Context, kind string) (bool, error)
	MarkDone(ctx context.Context, kind string) error
}

type Dependencies struct {
	Source          Source
	Events          EventStore
	Users           AdminUserStore
	FormSubmissions FormSubmissionStore
	Recipes         RecipeStore
	BlogPosts       BlogPostStore
	Notifications   NotificationStore
	Settings        SettingsStore
	Progress        ProgressStore
}

type Service struct {
	deps Dependencies
}

func NewService(deps Dependencies) *Service {
	return &Service{deps: deps}
}

// MigrateAll transfers every legacy record into durable storage, one kind
// at a time in fixed order, then upserts the settings singleton. Writes
// are sequential; the first failure aborts the run and no report is
// returned. Writes committed before the failure stay committed.
func (s *Service) MigrateAll(ctx context.Context) (Report, error) {
	if s.deps.Source == nil {
		return Report{}, fmt.Errorf("migration source is nil")
	}

	var report Report

	if err := s.runKind(ctx, KindEvents, &report.Events, s.migrateEvents); err != nil {
		return Report{}, err
	}
	if err := s.runKind(ctx, KindUsers, &report.Users, s.migrateUsers); err != nil {
		return Report{}, err
	}
	if err := s.runKind(ctx, KindFormSubmissions, &report.FormSubmissions, s.migrateFormSubmissions); err != nil {
		return Report{}, err
	}
	if err := s.runKind(ctx, KindRecipes, &report.Recipes, s.migrateRecipes); err != nil {
		return Report{}, err
	}
	if err := s.runKind(ctx, KindBlogPosts, &report.BlogPosts, s.migrateBlogPosts); err != nil {
		return Report{}, err
	}
	if err := s.runKind(ctx, KindNotifications, &report.Notifications, s.migrateNotifications); err != nil {
		return Report{}, err
	}

	migrated, err := s.migrateSiteSettings(ctx)
	if err != nil {
		return Report{}, err
	}
	report.SiteSettings = migrated

	report.Success = true
	return report, nil
}

func (s *Service) runKind(ctx context.Context, kind string, counter *int, migrate func(context.Context) (int, error)) error {
	done, err := s.kindDone(ctx, kind)
	if err != nil {
		return err
	}
	if done {
		return nil
	}

	count, err := migrate(ctx)
	if err != nil {
		return err
	}
	*counter = count

	return s.markKindDone(ctx, kind)
}

func (s *Service) migrateEvents(ctx context.Context) (int, error) {
	if s.deps.Events == nil {
		return 0, fmt.Errorf("event store is nil")
	}

	count := 0
	for i, legacy := range s.deps.Source.Events() {
		eventDate, err := parseLegacyDate(legacy.EventDate)
		if err != nil {
			return 0, &KindError{Kind: KindEvents, Index: i, Err: err}
		}
		record := pgrepo.EventRecord{
			Title:      legacy.Title,
			ClientName: legacy.ClientName,
			EventDate:  eventDate,
			GuestCount: legacy.GuestCount,
			Location:   legacy.Location,
			Menu:       legacy.Menu,
			Status:     legacy.Status,
		}
		if _, err := s.deps.Events.Create(ctx, record); err != nil {
			return 0, &KindError{Kind: KindEvents, Index: i, Err: err}
		}
		count++
	}

	return count, nil
}

func (s *Service) migrateUsers(ctx context.Context) (int, error) {
	if s.deps.Users == nil {
		return 0, fmt.Errorf("admin user store is nil")
	}

	count := 0
	for i, legacy := range s.deps.Source.Users() {
		record := pgrepo.AdminUserRecord{
			Email:    legacy.Email,
			Name:     legacy.Name,
			Role:     legacy.Role,
			Password: legacy.Password,
		}
		if _, err := s.deps.Users.Create(ctx, record); err != nil {
			return 0, &KindError{Kind: KindUsers, Index: i, Err: err}
		}
		count++
	}

	return count, nil
}

func (s *Service) migrateFormSubmissions(ctx context.Context) (int, error) {
	if s.deps.FormSubmissions == nil {
		return 0, fmt.Errorf("form submission store is nil")
	}

	count := 0
	for i, legacy := range s.deps.Source.FormSubmissions() {
		record := pgrepo.FormSubmissionRecord{
			Name:       legacy.Name,
			Email:      legacy.Email,
			Phone:      legacy.Phone,
			EventType:  legacy.EventType,
			GuestCount: legacy.GuestCount,
			Message:    legacy.Message,
			Status:     legacy.Status,
		}
		if strings.TrimSpace(legacy.EventDate) != "" {
			eventDate, err := parseLegacyDate(legacy.EventDate)
			if err != nil {
				return 0, &KindError{Kind: KindFormSubmissions, Index: i, Err: err}
			}
			record.EventDate = &eventDate
		}
		if _, err := s.deps.FormSubmissions.Create(ctx, record); err != nil {
			return 0, &KindError{Kind: KindFormSubmissions, Index: i, Err: err}
		}
		count++
	}

	return count, nil
}

func (s *Service) migrateRecipes(ctx context.Context) (int, error) {
	if s.deps.Recipes == nil {
		return 0, fmt.Errorf("recipe store is nil")
	}

	count := 0
	for i, legacy := range s.deps.Source.Recipes() {
		record := pgrepo.RecipeRecord{
			Title:        legacy.Title,
			Description:  legacy.Description,
			Ingredients:  legacy.Ingredients,
			Instructions: legacy.Instructions,
			Category:     legacy.Category,
			ImageURL:     legacy.ImageURL,
			Published:    legacy.Published,
		}
		if _, err := s.deps.Recipes.Create(ctx, record); err != nil {
			return 0, &KindError{Kind: KindRecipes, Index: i, Err: err}
		}
		count++
	}

	return count, nil
}

func (s *Service) migrateBlogPosts(ctx context.Context) (int, error) {
	if s.deps.BlogPosts == nil {
		return 0, fmt.Errorf("blog post store is nil")
	}

	count := 0
	for i, legacy := range s.deps.Source.BlogPosts() {
		record := pgrepo.BlogPostRecord{
			Title:     legacy.Title,
			Slug:      legacy.Slug,
			Excerpt:   legacy.Excerpt,
			Content:   legacy.Content,
			ImageURL:  legacy.ImageURL,
			Published: legacy.Published,
		}
		if strings.TrimSpace(legacy.PublishedAt) != "" {
			publishedAt, err := parseLegacyDate(legacy.PublishedAt)
			if err != nil {
				return 0, &KindError{Kind: KindBlogPosts, Index: i, Err: err}
			}
			record.PublishedAt = &publishedAt
		}
		if _, err := s.deps.BlogPosts.Create(ctx, record); err != nil {
			return 0, &KindError{Kind: KindBlogPosts, Index: i, Err: err}
		}
		count++
	}

	return count, nil
}

func (s *Service) migrateNotifications(ctx context.Context) (int, error) {
	if s.deps.Notifications == nil {
		return 0, fmt.Errorf("notification store is nil")
	}

	count := 0
	for i, legacy := range s.deps.Source.Notifications() {
		record := pgrepo.NotificationRecord{
			Kind:    legacy.Kind,
			Message: legacy.Message,
			Read:    legacy.Read,
		}
		if strings.TrimSpace(legacy.CreatedAt) != "" {
			createdAt, err := parseLegacyDate(legacy.CreatedAt)
			if err != nil {
				return 0, &KindError{Kind: KindNotifications, Index: i, Err: err}
			}
			record.CreatedAt = createdAt
		}
		if _, err := s.deps.Notifications.Create(ctx, record); err != nil {
			return 0, &KindError{Kind: KindNotifications, Index: i, Err: err}
		}
		count++
	}

	return count, nil
}

func (s *Service) migrateSiteSettings(ctx context.Context) (bool, error) {
	done, err := s.kindDone(ctx, KindSiteSettings)
	if err != nil {
		return false, err
	}
	if done {
		return false, nil
	}

	legacy, ok := s.deps.Source.SiteSettings()
	if !ok {
		return false, s.markKindDone(ctx, KindSiteSettings)
	}
	if s.deps.Settings == nil {
		return false, fmt.Errorf("settings store is nil")
	}

	record := pgrepo.SiteSettingsRecord{
		BusinessName: legacy.BusinessName,
		Tagline:      legacy.Tagline,
		AboutText:    legacy.AboutText,
		Email:        legacy.Email,
		Phone:        legacy.Phone,
		Address:      legacy.Address,
		InstagramURL: legacy.InstagramURL,
		FacebookURL:  legacy.FacebookURL,
		HeroImageURL: legacy.HeroImageURL,
	}
	if _, err := s.deps.Settings.Upsert(ctx, record); err != nil {
		return false, &KindError{Kind: KindSiteSettings, Index: 0, Err: err}
	}

	return true, s.markKindDone(ctx, KindSiteSettings)
}

func (s *Service) kindDone(ctx context.Context, kind string) (bool, error) {
	if s.deps.Progress == nil {
		return false, nil
	}
	done, err := s.deps.Progress.IsDone(ctx, kind)
	if err != nil {
		return false, fmt.Errorf("check %s progress: %w", kind, err)
	}
	return done, nil
}

func (s *Service) markKindDone(ctx context.Context, kind string) error {
	if s.deps.Progress == nil {
		return nil
	}
	if err := s.deps.Progress.MarkDone(ctx, kind); err != nil {
		return fmt.Errorf("mark %s done: %w", kind, err)
	}
	return nil
}

// parseLegacyDate accepts the two timestamp shapes the legacy store
// produced: bare dates from form inputs and RFC 3339 from Date.toJSON.
func parseLegacyDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse legacy date %q: %w", raw, err)
	}
	return t, nil
}
