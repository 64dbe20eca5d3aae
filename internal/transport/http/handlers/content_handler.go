package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	pgrepo "github.com/AustiNight/chefmargaretalvis-sub001/internal/repo/postgres"
	contentsvc "github.com/AustiNight/chefmargaretalvis-sub001/internal/services/content"
	"github.com/AustiNight/chefmargaretalvis-sub001/internal/transport/http/dto"
	httperrors "github.com/AustiNight/chefmargaretalvis-sub001/internal/transport/http/errors"
)

const dateLayout = "2006-01-02"

// ContentHandler serves the admin back office CRUD surface.
type ContentHandler struct {
	service *contentsvc.Service
}

func NewContentHandler(service *contentsvc.Service) *ContentHandler {
	return &ContentHandler{service: service}
}

func (h *ContentHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONTENT_SERVICE_UNAVAILABLE", "content service is unavailable")
		return
	}

	var req dto.EventPayload
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	record, ok := eventFromPayload(w, req)
	if !ok {
		return
	}

	created, err := h.service.CreateEvent(r.Context(), record)
	if err != nil {
		h.handleContentError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, toEventPayload(created))
}

func (h *ContentHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONTENT_SERVICE_UNAVAILABLE", "content service is unavailable")
		return
	}

	events, err := h.service.ListEvents(r.Context())
	if err != nil {
		h.handleContentError(w, err)
		return
	}

	items := make([]dto.EventPayload, 0, len(events))
	for _, event := range events {
		items = append(items, toEventPayload(event))
	}
	httperrors.Write(w, http.StatusOK, dto.EventListResponse{Items: items})
}

func (h *ContentHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONTENT_SERVICE_UNAVAILABLE", "content service is unavailable")
		return
	}

	id, ok := urlParamID(w, r)
	if !ok {
		return
	}

	var req dto.EventPayload
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	record, ok := eventFromPayload(w, req)
	if !ok {
		return
	}
	record.ID = id

	if err := h.service.UpdateEvent(r.Context(), record); err != nil {
		h.handleContentError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *ContentHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONTENT_SERVICE_UNAVAILABLE", "content service is unavailable")
		return
	}

	id, ok := urlParamID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteEvent(r.Context(), id); err != nil {
		h.handleContentError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *ContentHandler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONTENT_SERVICE_UNAVAILABLE", "content service is unavailable")
		return
	}

	var req dto.RecipePayload
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	created, err := h.service.CreateRecipe(r.Context(), recipeFromPayload(req))
	if err != nil {
		h.handleContentError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, toRecipePayload(created))
}

func (h *ContentHandler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONTENT_SERVICE_UNAVAILABLE", "content service is unavailable")
		return
	}

	recipes, err := h.service.ListRecipes(r.Context())
	if err != nil {
		h.handleContentError(w, err)
		return
	}

	items := make([]dto.RecipePayload, 0, len(recipes))
	for _, recipe := range recipes {
		items = append(items, toRecipePayload(recipe))
	}
	httperrors.Write(w, http.StatusOK, dto.RecipeListResponse{Items: items})
}

func (h *ContentHandler) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONTENT_SERVICE_UNAVAILABLE", "content service is unavailable")
		return
	}

	id, ok := urlParamID(w, r)
	if !ok {
		return
	}

	var req dto.RecipePayload
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	record := recipeFromPayload(req)
	record.ID = id

	if err := h.service.UpdateRecipe(r.Context(), record); err != nil {
		h.handleContentError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *ContentHandler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONTENT_SERVICE_UNAVAILABLE", "content service is unavailable")
		return
	}

	id, ok := urlParamID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteRecipe(r.Context(), id); err != nil {
		h.handleContentError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *ContentHandler) CreateBlogPost(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONTENT_SERVICE_UNAVAILABLE", "content service is unavailable")
		return
	}

	var req dto.BlogPostPayload
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	record, ok := blogPostFromPayload(w, req)
	if !ok {
		return
	}

	created, err := h.service.CreateBlogPost(r.Context(), record)
	if err != nil {
		h.handleContentError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, toBlogPostPayload(created))
}

func (h *ContentHandler) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONTENT_SERVICE_UNAVAILABLE", "content service is unavailable")
		return
	}

	posts, err := h.service.ListBlogPosts(r.Context())
	if err != nil {
		h.handleContentError(w, err)
		return
	}

	items := make([]dto.BlogPostPayload, 0, len(posts))
	for _, post := range posts {
		items = append(items, toBlogPostPayload(post))
	}
	httperrors.Write(w, http.StatusOK, dto.BlogPostListResponse{Items: items})
}

func (h *ContentHandler) UpdateBlogPost(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONTENT_SERVICE_UNAVAILABLE", "content service is unavailable")
		return
	}

	id, ok := urlParamID(w, r)
	if !ok {
		return
	}

	var req dto.BlogPostPayload
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	record, ok := blogPostFromPayload(w, req)
	if !ok {
		return
	}
	record.ID = id

	if err := h.service.UpdateBlogPost(r.Context(), record); err != nil {
		h.handleContentError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *ContentHandler) DeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONTENT_SERVICE_UNAVAILABLE", "content service is unavailable")
		return
	}

	id, ok := urlParamID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteBlogPost(r.Context(), id); err != nil {
		h.handleContentError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *ContentHandler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONTENT_SERVICE_UNAVAILABLE", "content service is unavailable")
		return
	}

	var req dto.TestimonialPayload
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	created, err := h.service.CreateTestimonial(r.Context(), pgrepo.TestimonialRecord{
		ClientName: req.ClientName,
		Quote:      req.Quote,
		Rating:     req.Rating,
		Approved:   req.Approved,
	})
	if err != nil {
		h.handleContentError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, toTestimonialPayload(created))
}

func (h *ContentHandler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONTENT_SERVICE_UNAVAILABLE", "content service is unavailable")
		return
	}

	testimonials, err := h.service.ListTestimonials(r.Context())
	if err != nil {
		h.handleContentError(w, err)
		return
	}

	items := make([]dto.TestimonialPayload, 0, len(testimonials))
	for _, t := range testimonials {
		items = append(items, toTestimonialPayload(t))
	}
	httperrors.Write(w, http.StatusOK, dto.TestimonialListResponse{Items: items})
}

func (h *ContentHandler) ApproveTestimonial(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONTENT_SERVICE_UNAVAILABLE", "content service is unavailable")
		return
	}

	id, ok := urlParamID(w, r)
	if !ok {
		return
	}

	var req dto.ApprovedRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.service.SetTestimonialApproved(r.Context(), id, req.Approved); err != nil {
		h.handleContentError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *ContentHandler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONTENT_SERVICE_UNAVAILABLE", "content service is unavailable")
		return
	}

	id, ok := urlParamID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteTestimonial(r.Context(), id); err != nil {
		h.handleContentError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *ContentHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONTENT_SERVICE_UNAVAILABLE", "content service is unavailable")
		return
	}

	subs, err := h.service.ListSubmissions(r.Context())
	if err != nil {
		h.handleContentError(w, err)
		return
	}

	items := make([]dto.SubmissionPayload, 0, len(subs))
	for _, sub := range subs {
		items = append(items, toSubmissionPayload(sub))
	}
	httperrors.Write(w, http.StatusOK, dto.SubmissionListResponse{Items: items})
}

func (h *ContentHandler) UpdateSubmissionStatus(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONTENT_SERVICE_UNAVAILABLE", "content service is unavailable")
		return
	}

	id, ok := urlParamID(w, r)
	if !ok {
		return
	}

	var req dto.SubmissionStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.service.UpdateSubmissionStatus(r.Context(), id, req.Status); err != nil {
		h.handleContentError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *ContentHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONTENT_SERVICE_UNAVAILABLE", "content service is unavailable")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	notifications, err := h.service.ListNotifications(r.Context(), limit)
	if err != nil {
		h.handleContentError(w, err)
		return
	}

	items := make([]dto.NotificationPayload, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, dto.NotificationPayload{
			ID:        n.ID,
			Kind:      n.Kind,
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		})
	}
	httperrors.Write(w, http.StatusOK, dto.NotificationListResponse{Items: items})
}

func (h *ContentHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONTENT_SERVICE_UNAVAILABLE", "content service is unavailable")
		return
	}

	id, ok := urlParamID(w, r)
	if !ok {
		return
	}

	if err := h.service.MarkNotificationRead(r.Context(), id); err != nil {
		h.handleContentError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *ContentHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
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
		h.handleContentError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, toSettingsPayload(settings))
}

func (h *ContentHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONTENT_SERVICE_UNAVAILABLE", "content service is unavailable")
		return
	}

	var req dto.SiteSettingsPayload
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.service.SaveSettings(r.Context(), settingsFromPayload(req)); err != nil {
		h.handleContentError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *ContentHandler) handleContentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, contentsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, pgrepo.ErrEventNotFound),
		errors.Is(err, pgrepo.ErrRecipeNotFound),
		errors.Is(err, pgrepo.ErrBlogPostNotFound),
		errors.Is(err, pgrepo.ErrTestimonialNotFound),
		errors.Is(err, pgrepo.ErrSubmissionNotFound),
		errors.Is(err, pgrepo.ErrSettingsNotFound):
		writeNotFound(w, "NOT_FOUND", "record not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

func eventFromPayload(w http.ResponseWriter, req dto.EventPayload) (pgrepo.EventRecord, bool) {
	eventDate, err := time.Parse(dateLayout, strings.TrimSpace(req.EventDate))
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "event_date must be YYYY-MM-DD")
		return pgrepo.EventRecord{}, false
	}

	return pgrepo.EventRecord{
		Title:      req.Title,
		ClientName: req.ClientName,
		EventDate:  eventDate,
		GuestCount: req.GuestCount,
		Location:   req.Location,
		Menu:       req.Menu,
		Status:     req.Status,
	}, true
}

func toEventPayload(event pgrepo.EventRecord) dto.EventPayload {
	return dto.EventPayload{
		ID:         event.ID,
		Title:      event.Title,
		ClientName: event.ClientName,
		EventDate:  event.EventDate.Format(dateLayout),
		GuestCount: event.GuestCount,
		Location:   event.Location,
		Menu:       event.Menu,
		Status:     event.Status,
		CreatedAt:  event.CreatedAt.Format(time.RFC3339),
	}
}

func recipeFromPayload(req dto.RecipePayload) pgrepo.RecipeRecord {
	return pgrepo.RecipeRecord{
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		Published:    req.Published,
	}
}

func toRecipePayload(recipe pgrepo.RecipeRecord) dto.RecipePayload {
	return dto.RecipePayload{
		ID:           recipe.ID,
		Title:        recipe.Title,
		Description:  recipe.Description,
		Ingredients:  recipe.Ingredients,
		Instructions: recipe.Instructions,
		Category:     recipe.Category,
		ImageURL:     recipe.ImageURL,
		Published:    recipe.Published,
		CreatedAt:    recipe.CreatedAt.Format(time.RFC3339),
	}
}

func blogPostFromPayload(w http.ResponseWriter, req dto.BlogPostPayload) (pgrepo.BlogPostRecord, bool) {
	record := pgrepo.BlogPostRecord{
		Title:     req.Title,
		Slug:      req.Slug,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		Published: req.Published,
	}

	if strings.TrimSpace(req.PublishedAt) != "" {
		publishedAt, err := time.Parse(time.RFC3339, req.PublishedAt)
		if err != nil {
			writeBadRequest(w, "VALIDATION_ERROR", "published_at must be RFC 3339")
			return pgrepo.BlogPostRecord{}, false
		}
		record.PublishedAt = &publishedAt
	}

	return record, true
}

func toBlogPostPayload(post pgrepo.BlogPostRecord) dto.BlogPostPayload {
	payload := dto.BlogPostPayload{
		ID:        post.ID,
		Title:     post.Title,
		Slug:      post.Slug,
		Excerpt:   post.Excerpt,
		Content:   post.Content,
		ImageURL:  post.ImageURL,
		Published: post.Published,
		CreatedAt: post.CreatedAt.Format(time.RFC3339),
	}
	if post.PublishedAt != nil {
		payload.PublishedAt = post.PublishedAt.Format(time.RFC3339)
	}
	return payload
}

func toTestimonialPayload(t pgrepo.TestimonialRecord) dto.TestimonialPayload {
	return dto.TestimonialPayload{
		ID:         t.ID,
		ClientName: t.ClientName,
		Quote:      t.Quote,
		Rating:     t.Rating,
		Approved:   t.Approved,
		CreatedAt:  t.CreatedAt.Format(time.RFC3339),
	}
}

func toSubmissionPayload(sub pgrepo.FormSubmissionRecord) dto.SubmissionPayload {
	payload := dto.SubmissionPayload{
		ID:         sub.ID,
		Name:       sub.Name,
		Email:      sub.Email,
		Phone:      sub.Phone,
		EventType:  sub.EventType,
		GuestCount: sub.GuestCount,
		Message:    sub.Message,
		Status:     sub.Status,
		CreatedAt:  sub.CreatedAt.Format(time.RFC3339),
	}
	if sub.EventDate != nil {
		payload.EventDate = sub.EventDate.Format(dateLayout)
	}
	return payload
}

func settingsFromPayload(req dto.SiteSettingsPayload) pgrepo.SiteSettingsRecord {
	return pgrepo.SiteSettingsRecord{
		BusinessName: req.BusinessName,
		Tagline:      req.Tagline,
		AboutText:    req.AboutText,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		InstagramURL: req.InstagramURL,
		FacebookURL:  req.FacebookURL,
		HeroImageURL: req.HeroImageURL,
	}
}

func toSettingsPayload(s pgrepo.SiteSettingsRecord) dto.SiteSettingsPayload {
	return dto.SiteSettingsPayload{
		BusinessName: s.BusinessName,
		Tagline:      s.Tagline,
		AboutText:    s.AboutText,
		Email:        s.Email,
		Phone:        s.Phone,
		Address:      s.Address,
		InstagramURL: s.InstagramURL,
		FacebookURL:  s.FacebookURL,
		HeroImageURL: s.HeroImageURL,
	}
}

func urlParamID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid id")
		return 0, false
	}
	return id, true
}

func writeBadRequest(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{Code: code, Message: message})
}

func writeNotFound(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusNotFound, httperrors.APIError{Code: code, Message: message})
}

func writeInternal(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{Code: code, Message: message})
}
