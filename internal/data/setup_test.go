package data

import (
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/lib/pq"
)

// newTestDB connects to the database named by MAKTABA_TEST_DB_DSN, applies
// the migrations, and truncates all application tables so each test starts
// clean. Tests calling it are skipped when the variable is unset.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("MAKTABA_TEST_DB_DSN")
	if dsn == "" {
		t.Skip("MAKTABA_TEST_DB_DSN not set; skipping database tests")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Ping(); err != nil {
		t.Fatalf("ping db: %v", err)
	}

	applyMigrations(t, db)

	_, err = db.Exec(`
		TRUNCATE users, profiles, authors, categories, books,
			borrow_records, reviews, contact_messages, visit_logs, site_settings
		RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("truncate tables: %v", err)
	}

	return db
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()

	dir := filepath.Join("..", "..", "migrations")
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}

	var names []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".sql" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		script, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("read migration %s: %v", name, err)
		}
		if _, err := db.Exec(string(script)); err != nil {
			t.Fatalf("apply migration %s: %v", name, err)
		}
	}
}

// createTestUser inserts a member account and returns its ID.
func createTestUser(t *testing.T, db *sql.DB, email string) int64 {
	t.Helper()

	user := &User{Name: "Test User", Email: email}
	if err := user.Password.Set("password123"); err != nil {
		t.Fatalf("set password: %v", err)
	}
	if err := (UserModel{DB: db}).Insert(user); err != nil {
		t.Fatalf("insert user %s: %v", email, err)
	}
	return user.ID
}

// createTestBook inserts an author and a book with the given copy counts
// and returns the book ID.
func createTestBook(t *testing.T, db *sql.DB, title string, copies int) int64 {
	t.Helper()

	author := &Author{Name: "Test Author"}
	if err := (AuthorModel{DB: db}).Insert(author); err != nil {
		t.Fatalf("insert author: %v", err)
	}

	book := &Book{
		Title:           title,
		AuthorID:        author.ID,
		Language:        "English",
		TotalCopies:     copies,
		AvailableCopies: copies,
	}
	if err := (BookModel{DB: db}).Insert(book); err != nil {
		t.Fatalf("insert book %s: %v", title, err)
	}
	return book.ID
}

// availableCopies reads the current counter for a book.
func availableCopies(t *testing.T, db *sql.DB, bookID int64) int {
	t.Helper()

	var n int
	err := db.QueryRow(`SELECT available_copies FROM books WHERE id = $1`, bookID).Scan(&n)
	if err != nil {
		t.Fatalf("read available_copies: %v", err)
	}
	return n
}

// activeRecords counts unreturned borrow records for a book.
func activeRecords(t *testing.T, db *sql.DB, bookID int64) int {
	t.Helper()

	var n int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM borrow_records
		WHERE book_id = $1 AND is_returned = FALSE`, bookID).Scan(&n)
	if err != nil {
		t.Fatalf("count active records: %v", err)
	}
	return n
}

// checkInvariant asserts available = total − active for the book.
func checkInvariant(t *testing.T, db *sql.DB, bookID int64) {
	t.Helper()

	var total int
	err := db.QueryRow(`SELECT total_copies FROM books WHERE id = $1`, bookID).Scan(&total)
	if err != nil {
		t.Fatalf("read total_copies: %v", err)
	}

	available := availableCopies(t, db, bookID)
	active := activeRecords(t, db, bookID)

	if available != total-active {
		t.Fatalf("invariant violated: available=%d, total=%d, active=%d", available, total, active)
	}
}
