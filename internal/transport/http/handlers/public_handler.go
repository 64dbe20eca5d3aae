package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	pgrepo "github.com/AustiNight/chefmargaretalvis-sub001/internal/repo/postgres"
	contentsvc "github.com/AustiNight/chefmargaretalvis-sub001/internal/services/content"
	"github.com/AustiNight/chefmargaretalvis-sub001/internal/transport/http/dto"
	httperrors "github.com/AustiNight/chefmargaretalvis-sub001/internal/transport/http/errors"
)

// PublicHandler serves the visitor-facing read surface plus the contact
// form. Only published and approved records leave this handler.
type PublicHandler struct {
	service *contentsvc.Service
}

func NewPublicHandler(service *contentsvc.Service) *PublicHandler {
	return &PublicHandler{service: service}
}

func (h *PublicHandler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONTENT_SERVICE_UNAVAILABLE", "content service is unavailable")
		return
	}

	recipes, err := h.service.PublishedRecipes(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
		return
	}

	items := make([]dto.RecipePayload, 0, len(recipes))
	for _, recipe := range recipes {
		items = append(items, toRecipePayload(recipe))
	}
	httperrors.Write(w, http.StatusOK, dto.RecipeListResponse{Items: items})
}

func (h *PublicHandler) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONTENT_SERVICE_UNAVAILABLE", "content service is unavailable")
		return
	}

	posts, err := h.service.PublishedBlogPosts(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
		return
	}

	items := make([]dto.BlogPostPayload, 0, len(posts))
	for _, post := range posts {
		items = append(items, toBlogPostPayload(post))
	}
	httperrors.Write(w, http.StatusOK, dto.BlogPostListResponse{Items: items})
}

func (h *PublicHandler) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONTENT_SERVICE_UNAVAILABLE", "content service is unavailable")
		return
	}

	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	if slug == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "missing slug")
		return
	}

	post, err := h.service.GetBlogPost(r.Context(), slug)
	if err != nil {
		if errors.Is(err, pgrepo.ErrBlogPostNotFound) {
			writeNotFound(w, "NOT_FOUND", "blog post not found")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
		return
	}
	if !post.Published {
		writeNotFound(w, "NOT_FOUND", "blog post not found")
		return
	}

	httperrors.Write(w, http.StatusOK, toBlogPostPayload(post))
}

func (h *PublicHandler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONTENT_SERVICE_UNAVAILABLE", "content service is unavailable")
		return
	}

	testimonials, err := h.service.ApprovedTestimonials(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
		return
	}

	items := make([]dto.TestimonialPayload, 0, len(testimonials))
	for _, t := range testimonials {
		items = append(items, toTestimonialPayload(t))
	}
	httperrors.Write(w, http.StatusOK, dto.TestimonialListResponse{Items: items})
}

func (h *PublicHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONTENT_SERVICE_UNAVAILABLE", "content service is unavailable")
		return
	}

	settings, err := h.service.GetSettings(r.Context())
	if err != nil {
		if errors.Is(err, pgrepo.ErrSettingsNotFound) {
			httperrors.Write(w, http.StatusOK, dto.SiteSettingsPayload{})
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
		return
	}

	httperrors.Write(w, http.StatusOK, toSettingsPayload(settings))
}

func (h *PublicHandler) SubmitContactForm(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONTENT_SERVICE_UNAVAILABLE", "content service is unavailable")
		return
	}

	var req dto.SubmissionPayload
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	record := pgrepo.FormSubmissionRecord{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		EventType:  req.EventType,
		GuestCount: req.GuestCount,
		Message:    req.Message,
	}
	if strings.TrimSpace(req.EventDate) != "" {
		eventDate, err := time.Parse(dateLayout, req.EventDate)
		if err != nil {
			writeBadRequest(w, "VALIDATION_ERROR", "event_date must be YYYY-MM-DD")
			return
		}
		record.EventDate = &eventDate
	}

	created, err := h.service.SubmitContactForm(r.Context(), record)
	if err != nil {
		if errors.Is(err, contentsvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "name and email are required")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
		return
	}

	httperrors.Write(w, http.StatusCreated, toSubmissionPayload(created))
}
