package dto

type EventPayload struct {
	ID         int64  `json:"id,omitempty"`
	Title      string `json:"title"`
	ClientName string `json:"client_name"`
	EventDate  string `json:"event_date"`
	GuestCount int    `json:"guest_count"`
	Location   string `json:"location"`
	Menu       string `json:"menu"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at,omitempty"`
}

type EventListResponse struct {
	Items []EventPayload `json:"items"`
}

type RecipePayload struct {
	ID           int64  `json:"id,omitempty"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	Category     string `json:"category"`
	ImageURL     string `json:"image_url"`
	Published    bool   `json:"published"`
	CreatedAt    string `json:"created_at,omitempty"`
}

type RecipeListResponse struct {
	Items []RecipePayload `json:"items"`
}

type BlogPostPayload struct {
	ID          int64  `json:"id,omitempty"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Excerpt     string `json:"excerpt"`
	Content     string `json:"content"`
	ImageURL    string `json:"image_url"`
	Published   bool   `json:"published"`
	PublishedAt string `json:"published_at,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type BlogPostListResponse struct {
	Items []BlogPostPayload `json:"items"`
}

type TestimonialPayload struct {
	ID         int64  `json:"id,omitempty"`
	ClientName string `json:"client_name"`
	Quote      string `json:"quote"`
	Rating     int    `json:"rating"`
	Approved   bool   `json:"approved"`
	CreatedAt  string `json:"created_at,omitempty"`
}

type TestimonialListResponse struct {
	Items []TestimonialPayload `json:"items"`
}

type SubmissionPayload struct {
	ID         int64  `json:"id,omitempty"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	EventType  string `json:"event_type"`
	EventDate  string `json:"event_date,omitempty"`
	GuestCount int    `json:"guest_count"`
	Message    string `json:"message"`
	Status     string `json:"status,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

type SubmissionListResponse struct {
	Items []SubmissionPayload `json:"items"`
}

type SubmissionStatusRequest struct {
	Status string `json:"status"`
}

type NotificationPayload struct {
	ID        int64  `json:"id"`
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at"`
}

type NotificationListResponse struct {
	Items []NotificationPayload `json:"items"`
}

type SiteSettingsPayload struct {
	BusinessName string `json:"business_name"`
	Tagline      string `json:"tagline"`
	AboutText    string `json:"about_text"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	InstagramURL string `json:"instagram_url"`
	FacebookURL  string `json:"facebook_url"`
	HeroImageURL string `json:"hero_image_url"`
}

type ApprovedRequest struct {
	Approved bool `json:"approved"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}
