// Command seed populates the database with starter catalog data and demo
// member accounts, for local development and fresh deployments.
package main

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/maktaba/maktaba/internal/data"
)

var dsn string

func main() {
	root := &cobra.Command{
		Use:          "seed",
		Short:        "Populate the library database with sample data",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&dsn, "db-dsn", os.Getenv("MAKTABA_DB_DSN"), "PostgreSQL DSN")

	root.AddCommand(
		&cobra.Command{
			Use:   "books",
			Short: "Seed categories, authors, and books",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withModels(seedBooks)
			},
		},
		&cobra.Command{
			Use:   "students",
			Short: "Seed demo member accounts",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withModels(seedStudents)
			},
		},
		&cobra.Command{
			Use:   "all",
			Short: "Seed everything",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withModels(func(m data.Models) error {
					if err := seedBooks(m); err != nil {
						return err
					}
					return seedStudents(m)
				})
			},
		},
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func withModels(fn func(data.Models) error) error {
	if dsn == "" {
		return fmt.Errorf("database DSN must be set via --db-dsn or MAKTABA_DB_DSN")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return err
	}

	return fn(data.NewModels(db))
}

func seedBooks(models data.Models) error {
	categories := []*data.Category{
		{Name: "Fiction", Icon: "fa-feather", Description: "Novels and short stories"},
		{Name: "Science", Icon: "fa-flask", Description: "Popular science and reference"},
		{Name: "History", Icon: "fa-landmark", Description: "History and biography"},
		{Name: "Technology", Icon: "fa-laptop-code", Description: "Computing and engineering"},
	}
	for _, c := range categories {
		if err := models.Categories.Insert(c); err != nil {
			return fmt.Errorf("seed category %q: %w", c.Name, err)
		}
	}

	authors := []*data.Author{
		{Name: "Naguib Mahfouz", Bio: "Egyptian novelist, Nobel laureate in Literature."},
		{Name: "Ursula K. Le Guin", Bio: "American author of speculative fiction."},
		{Name: "Carl Sagan", Bio: "Astronomer and science communicator."},
		{Name: "Eric Hobsbawm", Bio: "Historian of the long nineteenth century."},
		{Name: "Donald Knuth", Bio: "Computer scientist, author of TAOCP."},
	}
	for _, a := range authors {
		if err := models.Authors.Insert(a); err != nil {
			return fmt.Errorf("seed author %q: %w", a.Name, err)
		}
	}

	year := func(y int) *int { return &y }

	books := []*data.Book{
		{Title: "Palace Walk", AuthorID: authors[0].ID, CategoryID: &categories[0].ID, PublicationYear: year(1956), TotalCopies: 3, AvailableCopies: 3, Language: "Arabic"},
		{Title: "The Harafish", AuthorID: authors[0].ID, CategoryID: &categories[0].ID, PublicationYear: year(1977), TotalCopies: 2, AvailableCopies: 2, Language: "Arabic"},
		{Title: "The Dispossessed", AuthorID: authors[1].ID, CategoryID: &categories[0].ID, PublicationYear: year(1974), TotalCopies: 2, AvailableCopies: 2, Language: "English"},
		{Title: "A Wizard of Earthsea", AuthorID: authors[1].ID, CategoryID: &categories[0].ID, PublicationYear: year(1968), TotalCopies: 4, AvailableCopies: 4, Language: "English"},
		{Title: "Cosmos", AuthorID: authors[2].ID, CategoryID: &categories[1].ID, PublicationYear: year(1980), TotalCopies: 3, AvailableCopies: 3, Language: "English"},
		{Title: "The Demon-Haunted World", AuthorID: authors[2].ID, CategoryID: &categories[1].ID, PublicationYear: year(1995), TotalCopies: 1, AvailableCopies: 1, Language: "English"},
		{Title: "The Age of Revolution", AuthorID: authors[3].ID, CategoryID: &categories[2].ID, PublicationYear: year(1962), TotalCopies: 2, AvailableCopies: 2, Language: "English"},
		{Title: "The Art of Computer Programming, Vol. 1", AuthorID: authors[4].ID, CategoryID: &categories[3].ID, PublicationYear: year(1968), TotalCopies: 1, AvailableCopies: 1, Language: "English"},
	}
	for _, b := range books {
		if err := models.Books.Insert(b); err != nil {
			return fmt.Errorf("seed book %q: %w", b.Title, err)
		}
	}

	fmt.Printf("seeded %d categories, %d authors, %d books\n", len(categories), len(authors), len(books))
	return nil
}

func seedStudents(models data.Models) error {
	students := []struct {
		name, email, phone string
	}{
		{"Layla Hassan", "layla@example.edu", "0100000001"},
		{"Omar Farouk", "omar@example.edu", "0100000002"},
		{"Sara Mansour", "sara@example.edu", ""},
	}

	for _, s := range students {
		user := &data.User{Name: s.name, Email: s.email, Role: data.RoleMember}
		if err := user.Password.Set("password123"); err != nil {
			return err
		}
		if err := models.Users.Insert(user); err != nil {
			return fmt.Errorf("seed student %q: %w", s.email, err)
		}
		if err := models.Profiles.Upsert(&data.Profile{UserID: user.ID, Phone: s.phone}); err != nil {
			return err
		}
	}

	staff := &data.User{Name: "Library Staff", Email: "staff@example.edu", Role: data.RoleStaff}
	if err := staff.Password.Set("password123"); err != nil {
		return err
	}
	if err := models.Users.Insert(staff); err != nil {
		return fmt.Errorf("seed staff account: %w", err)
	}

	fmt.Printf("seeded %d students and 1 staff account\n", len(students))
	return nil
}
