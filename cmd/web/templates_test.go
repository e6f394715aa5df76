package main

import (
	"testing"
	"time"
)

func TestHumanDate(t *testing.T) {
	tests := []struct {
		name string
		tm   time.Time
		want string
	}{
		{
			name: "UTC",
			tm:   time.Date(2026, 3, 17, 10, 15, 0, 0, time.UTC),
			want: "17 Mar 2026",
		},
		{
			name: "zero",
			tm:   time.Time{},
			want: "",
		},
		{
			name: "non-UTC location",
			tm:   time.Date(2026, 3, 17, 10, 15, 0, 0, time.FixedZone("CET", 1*60*60)),
			want: "17 Mar 2026",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := humanDate(tt.tm); got != tt.want {
				t.Errorf("humanDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewTemplateCache(t *testing.T) {
	cache, err := newTemplateCache()
	if err != nil {
		t.Fatalf("building template cache: %v", err)
	}

	// Every page the handlers render must be present and parse cleanly.
	pages := []string{
		"home.html", "books.html", "book.html",
		"categories.html", "category.html",
		"authors.html", "author.html",
		"contact.html", "signup.html", "login.html",
		"profile.html", "edit_profile.html", "my_books.html",
		"review.html", "dashboard.html", "maintenance.html",
		"404.html", "500.html",
	}
	for _, page := range pages {
		ts, ok := cache[page]
		if !ok {
			t.Errorf("template cache missing %s", page)
			continue
		}
		if ts.Lookup("base") == nil {
			t.Errorf("%s does not define the base layout", page)
		}
	}
}
