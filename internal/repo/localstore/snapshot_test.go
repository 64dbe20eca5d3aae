package localstore

import (
	"testing"
)

func TestParseReadsLegacyShapes(t *testing.T) {
	snapshot, err := Parse([]byte(`{
		"events": [
			{"title": "Tasting", "clientName": "Kim", "eventDate": "2025-04-10", "guestCount": 6, "location": "Dallas", "menu": "spring", "status": "confirmed"}
		],
		"users": [
			{"email": "chef@example.com", "name": "Margaret", "password": "pw", "role": "admin"}
		],
		"formSubmissions": [
			{"name": "Pat", "email": "pat@example.com", "eventType": "dinner", "eventDate": "2025-05-01", "guestCount": 4, "message": "hello", "status": "new"}
		],
		"recipes": [
			{"title": "Bisque", "imageUrl": "https://cdn/x.jpg", "published": true}
		],
		"blogPosts": [
			{"title": "Menus", "slug": "menus", "publishedAt": "2025-01-15T08:00:00Z", "published": true}
		],
		"notificationHistory": [
			{"type": "form_submission", "message": "new inquiry", "read": false, "createdAt": "2025-02-02T10:00:00Z"}
		],
		"siteSettings": {"businessName": "Chef Margaret", "instagramUrl": "https://instagram.com/chef"}
	}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	events := snapshot.Events()
	if len(events) != 1 || events[0].ClientName != "Kim" || events[0].EventDate != "2025-04-10" {
		t.Fatalf("unexpected events: %+v", events)
	}

	users := snapshot.Users()
	if len(users) != 1 || users[0].Email != "chef@example.com" {
		t.Fatalf("unexpected users: %+v", users)
	}

	notifications := snapshot.Notifications()
	if len(notifications) != 1 || notifications[0].Kind != "form_submission" {
		t.Fatalf("notification kind must come from the legacy type field: %+v", notifications)
	}

	recipes := snapshot.Recipes()
	if len(recipes) != 1 || recipes[0].ImageURL != "https://cdn/x.jpg" {
		t.Fatalf("unexpected recipes: %+v", recipes)
	}

	settings, ok := snapshot.SiteSettings()
	if !ok {
		t.Fatal("site settings present in export must parse")
	}
	if settings.BusinessName != "Chef Margaret" || settings.InstagramURL != "https://instagram.com/chef" {
		t.Fatalf("unexpected settings: %+v", settings)
	}
}

func TestParseMissingKindsAreEmpty(t *testing.T) {
	snapshot, err := Parse([]byte(`{"events": []}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(snapshot.Events()) != 0 || len(snapshot.Users()) != 0 || len(snapshot.BlogPosts()) != 0 {
		t.Fatal("missing kinds must read as empty")
	}
	if _, ok := snapshot.SiteSettings(); ok {
		t.Fatal("absent settings must report not-present")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Fatal("expected error for malformed export")
	}
	if _, err := Parse(nil); err == nil {
		t.Fatal("expected error for empty export")
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	snapshot, err := Parse([]byte(`{"events": [{"title": "One"}, {"title": "Two"}]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	first := snapshot.Events()
	first[0].Title = "mutated"

	if snapshot.Events()[0].Title != "One" {
		t.Fatal("mutating a returned slice must not affect the snapshot")
	}
}
