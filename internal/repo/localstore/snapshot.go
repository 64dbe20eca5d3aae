// Package localstore parses exports of the legacy browser localStorage
// persistence layer. The export is a single JSON document keyed by record
// kind; field names keep the legacy camelCase shapes.
package localstore

import (
	"encoding/json"
	"fmt"
)

type LegacyEvent struct {
	Title      string `json:"title"`
	ClientName string `json:"clientName"`
	EventDate  string `json:"eventDate"`
	GuestCount int    `json:"guestCount"`
	Location   string `json:"location"`
	Menu       string `json:"menu"`
	Status     string `json:"status"`
}

type LegacyUser struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LegacyFormSubmission struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	EventType  string `json:"eventType"`
	EventDate  string `json:"eventDate"`
	GuestCount int    `json:"guestCount"`
	Message    string `json:"message"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
}

type LegacyRecipe struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	Category     string `json:"category"`
	ImageURL     string `json:"imageUrl"`
	Published    bool   `json:"published"`
}

type LegacyBlogPost struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Excerpt     string `json:"excerpt"`
	Content     string `json:"content"`
	ImageURL    string `json:"imageUrl"`
	Published   bool   `json:"published"`
	PublishedAt string `json:"publishedAt"`
}

type LegacyNotification struct {
	Kind      string `json:"type"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt"`
}

type LegacySiteSettings struct {
	BusinessName string `json:"businessName"`
	Tagline      string `json:"tagline"`
	AboutText    string `json:"aboutText"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	InstagramURL string `json:"instagramUrl"`
	FacebookURL  string `json:"facebookUrl"`
	HeroImageURL string `json:"heroImageUrl"`
}

// Snapshot is a read-only, in-memory view of one export. Accessors hand
// out copies so the source can never be mutated by consumers.
type Snapshot struct {
	events          []LegacyEvent
	users           []LegacyUser
	formSubmissions []LegacyFormSubmission
	recipes         []LegacyRecipe
	blogPosts       []LegacyBlogPost
	notifications   []LegacyNotification
	siteSettings    *LegacySiteSettings
}

type snapshotPayload struct {
	Events          []LegacyEvent          `json:"events"`
	Users           []LegacyUser           `json:"users"`
	FormSubmissions []LegacyFormSubmission `json:"formSubmissions"`
	Recipes         []LegacyRecipe         `json:"recipes"`
	BlogPosts       []LegacyBlogPost       `json:"blogPosts"`
	Notifications   []LegacyNotification   `json:"notificationHistory"`
	SiteSettings    *LegacySiteSettings    `json:"siteSettings"`
}

func Parse(data []byte) (*Snapshot, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("legacy export is empty")
	}

	var payload snapshotPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal legacy export: %w", err)
	}

	return &Snapshot{
		events:          payload.Events,
		users:           payload.Users,
		formSubmissions: payload.FormSubmissions,
		recipes:         payload.Recipes,
		blogPosts:       payload.BlogPosts,
		notifications:   payload.Notifications,
		siteSettings:    payload.SiteSettings,
	}, nil
}

func (s *Snapshot) Events() []LegacyEvent {
	return append([]LegacyEvent(nil), s.events...)
}

func (s *Snapshot) Users() []LegacyUser {
	return append([]LegacyUser(nil), s.users...)
}

func (s *Snapshot) FormSubmissions() []LegacyFormSubmission {
	return append([]LegacyFormSubmission(nil), s.formSubmissions...)
}

func (s *Snapshot) Recipes() []LegacyRecipe {
	return append([]LegacyRecipe(nil), s.recipes...)
}

func (s *Snapshot) BlogPosts() []LegacyBlogPost {
	return append([]LegacyBlogPost(nil), s.blogPosts...)
}

func (s *Snapshot) Notifications() []LegacyNotification {
	return append([]LegacyNotification(nil), s.notifications...)
}

func (s *Snapshot) SiteSettings() (LegacySiteSettings, bool) {
	if s.siteSettings == nil {
		return LegacySiteSettings{}, false
	}
	return *s.siteSettings, true
}
