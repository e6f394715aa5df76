package main

import (
	"html/template"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/maktaba/maktaba/internal/data"
	"github.com/maktaba/maktaba/ui"
)

type templateData struct {
	FlashInfo       string
	FlashError      string
	DisplayNav      bool
	Form            any
	IsAuthenticated bool
	User            *data.User

	Book       *data.Book
	Books      []*data.Book
	TopBooks   []*data.Book
	Author     *data.Author
	Authors    []*data.Author
	Category   *data.Category
	Categories []*data.Category
	Reviews    []*data.Review
	Metadata   data.Metadata

	SearchQuery      string
	SelectedCategory int64
	SelectedSort     string

	UserHasBorrowed        bool
	UserCurrentlyBorrowing bool
	UserHasReviewed        bool

	Profile        *data.Profile
	CurrentBorrows []*data.BorrowedBook
	BorrowHistory  []*data.BorrowedBook

	BookCount   int
	AuthorCount int
	MemberCount int

	TotalBooks      int
	TotalMembers    int
	BooksBorrowed   int
	OverdueBooks    int
	TotalVisits     int
	Members         []*data.User
	Messages        []*data.ContactMessage
	MaintenanceMode bool
}

func humanDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02 Jan 2006")
}

var functions = template.FuncMap{
	"humanDate": humanDate,
	"add":       func(a, b int) int { return a + b },
	"sub":       func(a, b int) int { return a - b },
	"ratings":   func() []int { return []int{1, 2, 3, 4, 5} },
}

func newTemplateCache() (map[string]*template.Template, error) {
	cache := map[string]*template.Template{}

	pages, err := fs.Glob(ui.Files, "html/pages/*.html")
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		name := filepath.Base(page)

		patterns := []string{
			"html/base.html",
			"html/partials/*.html",
			page,
		}

		ts, err := template.New(name).Funcs(functions).ParseFS(ui.Files, patterns...)
		if err != nil {
			return nil, err
		}

		cache[name] = ts
	}

	return cache, nil
}
