package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AustiNight/chefmargaretalvis-sub001/internal/domain/enums"
	"github.com/AustiNight/chefmargaretalvis-sub001/internal/pkg/validate"
	pgrepo "github.com/AustiNight/chefmargaretalvis-sub001/internal/repo/postgres"
)

var ErrValidation = errors.New("validation error")

type EventStore interface {
	Create(ctx context.Context, event pgrepo.EventRecord) (pgrepo.EventRecord, error)
	GetByID(ctx context.Context, id int64) (pgrepo.EventRecord, error)
	List(ctx context.Context) ([]pgrepo.EventRecord, error)
	Update(ctx context.Context, event pgrepo.EventRecord) error
	Delete(ctx context.Context, id int64) error
}

type RecipeStore interface {
	Create(ctx context.Context, recipe pgrepo.RecipeRecord) (pgrepo.RecipeRecord, error)
	GetByID(ctx context.Context, id int64) (pgrepo.RecipeRecord, error)
	List(ctx context.Context, publishedOnly bool) ([]pgrepo.RecipeRecord, error)
	Update(ctx context.Context, recipe pgrepo.RecipeRecord) error
	Delete(ctx context.Context, id int64) error
}

type BlogPostStore interface {
	Create(ctx context.Context, post pgrepo.BlogPostRecord) (pgrepo.BlogPostRecord, error)
	GetBySlug(ctx context.Context, slug string) (pgrepo.BlogPostRecord, error)
	List(ctx context.Context, publishedOnly bool) ([]pgrepo.BlogPostRecord, error)
	Update(ctx context.Context, post pgrepo.BlogPostRecord) error
	Delete(ctx context.Context, id int64) error
}

type TestimonialStore interface {
	Create(ctx context.Context, t pgrepo.TestimonialRecord) (pgrepo.TestimonialRecord, error)
	List(ctx context.Context, approvedOnly bool) ([]pgrepo.TestimonialRecord, error)
	SetApproved(ctx context.Context, id int64, approved bool) error
	Delete(ctx context.Context, id int64) error
}

type SubmissionStore interface {
	Create(ctx context.Context, sub pgrepo.FormSubmissionRecord) (pgrepo.FormSubmissionRecord, error)
	List(ctx context.Context) ([]pgrepo.FormSubmissionRecord, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type NotificationStore interface {
	Create(ctx context.Context, n pgrepo.NotificationRecord) (pgrepo.NotificationRecord, error)
	List(ctx context.Context, limit int) ([]pgrepo.NotificationRecord, error)
	MarkRead(ctx context.Context, id int64) error
}

type SettingsStore interface {
	Get(ctx context.Context) (pgrepo.SiteSettingsRecord, error)
	Upsert(ctx context.Context, s pgrepo.SiteSettingsRecord) (bool, error)
}

type Dependencies struct {
	Events        EventStore
	Recipes       RecipeStore
	BlogPosts     BlogPostStore
	Testimonials  TestimonialStore
	Submissions   SubmissionStore
	Notifications NotificationStore
	Settings      SettingsStore
}

type Service struct {
	deps Dependencies
}

func NewService(deps Dependencies) *Service {
	return &Service{deps: deps}
}

func (s *Service) CreateEvent(ctx context.Context, event pgrepo.EventRecord) (pgrepo.EventRecord, error) {
	if s.deps.Events == nil {
		return pgrepo.EventRecord{}, fmt.Errorf("event store is nil")
	}
	if !validate.Required(event.Title) {
		return pgrepo.EventRecord{}, ErrValidation
	}
	if event.Status != "" && !enums.EventStatus(event.Status).Valid() {
		return pgrepo.EventRecord{}, ErrValidation
	}
	return s.deps.Events.Create(ctx, event)
}

func (s *Service) GetEvent(ctx context.Context, id int64) (pgrepo.EventRecord, error) {
	if s.deps.Events == nil {
		return pgrepo.EventRecord{}, fmt.Errorf("event store is nil")
	}
	return s.deps.Events.GetByID(ctx, id)
}

func (s *Service) ListEvents(ctx context.Context) ([]pgrepo.EventRecord, error) {
	if s.deps.Events == nil {
		return nil, fmt.Errorf("event store is nil")
	}
	return s.deps.Events.List(ctx)
}

func (s *Service) UpdateEvent(ctx context.Context, event pgrepo.EventRecord) error {
	if s.deps.Events == nil {
		return fmt.Errorf("event store is nil")
	}
	if event.ID <= 0 {
		return ErrValidation
	}
	if event.Status != "" && !enums.EventStatus(event.Status).Valid() {
		return ErrValidation
	}
	return s.deps.Events.Update(ctx, event)
}

func (s *Service) DeleteEvent(ctx context.Context, id int64) error {
	if s.deps.Events == nil {
		return fmt.Errorf("event store is nil")
	}
	return s.deps.Events.Delete(ctx, id)
}

func (s *Service) CreateRecipe(ctx context.Context, recipe pgrepo.RecipeRecord) (pgrepo.RecipeRecord, error) {
	if s.deps.Recipes == nil {
		return pgrepo.RecipeRecord{}, fmt.Errorf("recipe store is nil")
	}
	if !validate.Required(recipe.Title) {
		return pgrepo.RecipeRecord{}, ErrValidation
	}
	return s.deps.Recipes.Create(ctx, recipe)
}

func (s *Service) GetRecipe(ctx context.Context, id int64) (pgrepo.RecipeRecord, error) {
	if s.deps.Recipes == nil {
		return pgrepo.RecipeRecord{}, fmt.Errorf("recipe store is nil")
	}
	return s.deps.Recipes.GetByID(ctx, id)
}

func (s *Service) ListRecipes(ctx context.Context) ([]pgrepo.RecipeRecord, error) {
	if s.deps.Recipes == nil {
		return nil, fmt.Errorf("recipe store is nil")
	}
	return s.deps.Recipes.List(ctx, false)
}

// PublishedRecipes feeds the public site; drafts stay admin-only.
func (s *Service) PublishedRecipes(ctx context.Context) ([]pgrepo.RecipeRecord, error) {
	if s.deps.Recipes == nil {
		return nil, fmt.Errorf("recipe store is nil")
	}
	return s.deps.Recipes.List(ctx, true)
}

func (s *Service) UpdateRecipe(ctx context.Context, recipe pgrepo.RecipeRecord) error {
	if s.deps.Recipes == nil {
		return fmt.Errorf("recipe store is nil")
	}
	if recipe.ID <= 0 {
		return ErrValidation
	}
	return s.deps.Recipes.Update(ctx, recipe)
}

func (s *Service) DeleteRecipe(ctx context.Context, id int64) error {
	if s.deps.Recipes == nil {
		return fmt.Errorf("recipe store is nil")
	}
	return s.deps.Recipes.Delete(ctx, id)
}

func (s *Service) CreateBlogPost(ctx context.Context, post pgrepo.BlogPostRecord) (pgrepo.BlogPostRecord, error) {
	if s.deps.BlogPosts == nil {
		return pgrepo.BlogPostRecord{}, fmt.Errorf("blog post store is nil")
	}
	if !validate.Required(post.Title) {
		return pgrepo.BlogPostRecord{}, ErrValidation
	}
	return s.deps.BlogPosts.Create(ctx, post)
}

func (s *Service) GetBlogPost(ctx context.Context, slug string) (pgrepo.BlogPostRecord, error) {
	if s.deps.BlogPosts == nil {
		return pgrepo.BlogPostRecord{}, fmt.Errorf("blog post store is nil")
	}
	return s.deps.BlogPosts.GetBySlug(ctx, slug)
}

func (s *Service) ListBlogPosts(ctx context.Context) ([]pgrepo.BlogPostRecord, error) {
	if s.deps.BlogPosts == nil {
		return nil, fmt.Errorf("blog post store is nil")
	}
	return s.deps.BlogPosts.List(ctx, false)
}

func (s *Service) PublishedBlogPosts(ctx context.Context) ([]pgrepo.BlogPostRecord, error) {
	if s.deps.BlogPosts == nil {
		return nil, fmt.Errorf("blog post store is nil")
	}
	return s.deps.BlogPosts.List(ctx, true)
}

func (s *Service) UpdateBlogPost(ctx context.Context, post pgrepo.BlogPostRecord) error {
	if s.deps.BlogPosts == nil {
		return fmt.Errorf("blog post store is nil")
	}
	if post.ID <= 0 {
		return ErrValidation
	}
	return s.deps.BlogPosts.Update(ctx, post)
}

func (s *Service) DeleteBlogPost(ctx context.Context, id int64) error {
	if s.deps.BlogPosts == nil {
		return fmt.Errorf("blog post store is nil")
	}
	return s.deps.BlogPosts.Delete(ctx, id)
}

func (s *Service) CreateTestimonial(ctx context.Context, t pgrepo.TestimonialRecord) (pgrepo.TestimonialRecord, error) {
	if s.deps.Testimonials == nil {
		return pgrepo.TestimonialRecord{}, fmt.Errorf("testimonial store is nil")
	}
	if !validate.Required(t.Quote) {
		return pgrepo.TestimonialRecord{}, ErrValidation
	}
	return s.deps.Testimonials.Create(ctx, t)
}

func (s *Service) ListTestimonials(ctx context.Context) ([]pgrepo.TestimonialRecord, error) {
	if s.deps.Testimonials == nil {
		return nil, fmt.Errorf("testimonial store is nil")
	}
	return s.deps.Testimonials.List(ctx, false)
}

func (s *Service) ApprovedTestimonials(ctx context.Context) ([]pgrepo.TestimonialRecord, error) {
	if s.deps.Testimonials == nil {
		return nil, fmt.Errorf("testimonial store is nil")
	}
	return s.deps.Testimonials.List(ctx, true)
}

func (s *Service) SetTestimonialApproved(ctx context.Context, id int64, approved bool) error {
	if s.deps.Testimonials == nil {
		return fmt.Errorf("testimonial store is nil")
	}
	return s.deps.Testimonials.SetApproved(ctx, id, approved)
}

func (s *Service) DeleteTestimonial(ctx context.Context, id int64) error {
	if s.deps.Testimonials == nil {
		return fmt.Errorf("testimonial store is nil")
	}
	return s.deps.Testimonials.Delete(ctx, id)
}

// SubmitContactForm stores the inquiry and drops a notification for the
// back office in one pass. A notification failure does not undo the
// stored submission.
func (s *Service) SubmitContactForm(ctx context.Context, sub pgrepo.FormSubmissionRecord) (pgrepo.FormSubmissionRecord, error) {
	if s.deps.Submissions == nil {
		return pgrepo.FormSubmissionRecord{}, fmt.Errorf("submission store is nil")
	}
	if !validate.Required(sub.Email) || !validate.Required(sub.Name) {
		return pgrepo.FormSubmissionRecord{}, ErrValidation
	}

	created, err := s.deps.Submissions.Create(ctx, sub)
	if err != nil {
		return pgrepo.FormSubmissionRecord{}, fmt.Errorf("create form submission: %w", err)
	}

	if s.deps.Notifications != nil {
		_, _ = s.deps.Notifications.Create(ctx, pgrepo.NotificationRecord{
			Kind:    string(enums.NotificationKindFormSubmission),
			Message: fmt.Sprintf("New inquiry from %s (%s)", created.Name, created.Email),
		})
	}

	return created, nil
}

func (s *Service) ListSubmissions(ctx context.Context) ([]pgrepo.FormSubmissionRecord, error) {
	if s.deps.Submissions == nil {
		return nil, fmt.Errorf("submission store is nil")
	}
	return s.deps.Submissions.List(ctx)
}

func (s *Service) UpdateSubmissionStatus(ctx context.Context, id int64, status string) error {
	if s.deps.Submissions == nil {
		return fmt.Errorf("submission store is nil")
	}
	if id <= 0 || !enums.SubmissionStatus(strings.TrimSpace(status)).Valid() {
		return ErrValidation
	}
	return s.deps.Submissions.UpdateStatus(ctx, id, status)
}

func (s *Service) ListNotifications(ctx context.Context, limit int) ([]pgrepo.NotificationRecord, error) {
	if s.deps.Notifications == nil {
		return nil, fmt.Errorf("notification store is nil")
	}
	return s.deps.Notifications.List(ctx, limit)
}

func (s *Service) MarkNotificationRead(ctx context.Context, id int64) error {
	if s.deps.Notifications == nil {
		return fmt.Errorf("notification store is nil")
	}
	if id <= 0 {
		return ErrValidation
	}
	return s.deps.Notifications.MarkRead(ctx, id)
}

func (s *Service) GetSettings(ctx context.Context) (pgrepo.SiteSettingsRecord, error) {
	if s.deps.Settings == nil {
		return pgrepo.SiteSettingsRecord{}, fmt.Errorf("settings store is nil")
	}
	return s.deps.Settings.Get(ctx)
}

func (s *Service) SaveSettings(ctx context.Context, settings pgrepo.SiteSettingsRecord) error {
	if s.deps.Settings == nil {
		return fmt.Errorf("settings store is nil")
	}
	if _, err := s.deps.Settings.Upsert(ctx, settings); err != nil {
		return fmt.Errorf("save site settings: %w", err)
	}
	return nil
}
