package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type Book struct {
	ID              int64
	Title           string
	AuthorID        int64
	AuthorName      string
	CategoryID      *int64
	CategoryName    *string
	Cover           string
	Description     string
	PublicationYear *int
	Pages           *int
	Language        string
	TotalCopies     int
	AvailableCopies int
	CreatedAt       time.Time

	AverageRating float64
	RatingCount   int
}

func (b *Book) IsAvailable() bool {
	return b.AvailableCopies > 0
}

// Status returns the availability badge shown next to a book.
func (b *Book) Status() string {
	if b.IsAvailable() {
		return "Available"
	}
	return "Fully Borrowed"
}

type BookFilters struct {
	Query      string
	CategoryID int64
	Sort       string
	Page       int
	PageSize   int
}

type Metadata struct {
	CurrentPage  int
	PageSize     int
	FirstPage    int
	LastPage     int
	TotalRecords int
}

func calculateMetadata(totalRecords, page, pageSize int) Metadata {
	if totalRecords == 0 {
		return Metadata{}
	}
	return Metadata{
		CurrentPage:  page,
		PageSize:     pageSize,
		FirstPage:    1,
		LastPage:     (totalRecords + pageSize - 1) / pageSize,
		TotalRecords: totalRecords,
	}
}

// bookColumns is the shared select list for book queries; the rating
// aggregates are recomputed per query rather than cached.
const bookColumns = `
	b.id, b.title, b.author_id, a.name, b.category_id, c.name,
	b.cover, b.description, b.publication_year, b.pages, b.language,
	b.total_copies, b.available_copies, b.created_at,
	COALESCE((SELECT ROUND(AVG(r.rating)::numeric, 1) FROM reviews r WHERE r.book_id = b.id), 0) AS average_rating,
	(SELECT COUNT(*) FROM reviews r WHERE r.book_id = b.id) AS rating_count`

func scanBook(row interface{ Scan(...any) error }, b *Book) error {
	return row.Scan(
		&b.ID,
		&b.Title,
		&b.AuthorID,
		&b.AuthorName,
		&b.CategoryID,
		&b.CategoryName,
		&b.Cover,
		&b.Description,
		&b.PublicationYear,
		&b.Pages,
		&b.Language,
		&b.TotalCopies,
		&b.AvailableCopies,
		&b.CreatedAt,
		&b.AverageRating,
		&b.RatingCount,
	)
}

type BookModel struct {
	DB *sql.DB
}

func (m BookModel) Insert(book *Book) error {
	query := `
		INSERT INTO books (title, author_id, category_id, cover, description, publication_year, pages, language, total_copies, available_copies)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	args := []any{
		book.Title, book.AuthorID, book.CategoryID, book.Cover, book.Description,
		book.PublicationYear, book.Pages, book.Language, book.TotalCopies, book.AvailableCopies,
	}
	return m.DB.QueryRowContext(ctx, query, args...).Scan(&book.ID, &book.CreatedAt)
}

func (m BookModel) Get(id int64) (*Book, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := `
		SELECT` + bookColumns + `
		FROM books b
		JOIN authors a ON a.id = b.author_id
		LEFT JOIN categories c ON c.id = b.category_id
		WHERE b.id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var b Book
	err := scanBook(m.DB.QueryRowContext(ctx, query, id), &b)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (m BookModel) queryBooks(query string, args ...any) ([]*Book, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		var b Book
		if err := scanBook(rows, &b); err != nil {
			return nil, err
		}
		books = append(books, &b)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

func (m BookModel) GetAll() ([]*Book, error) {
	query := `
		SELECT` + bookColumns + `
		FROM books b
		JOIN authors a ON a.id = b.author_id
		LEFT JOIN categories c ON c.id = b.category_id
		ORDER BY b.created_at DESC`
	return m.queryBooks(query)
}

// Search filters by title or author-name substring and category, sorts by
// newest (default), oldest, or rating, and paginates the result.
func (m BookModel) Search(filters BookFilters) ([]*Book, Metadata, error) {
	var orderBy string
	switch filters.Sort {
	case "oldest":
		orderBy = "b.created_at ASC"
	case "rating":
		orderBy = "average_rating DESC, b.created_at DESC"
	default:
		orderBy = "b.created_at DESC"
	}

	query := fmt.Sprintf(`
		SELECT COUNT(*) OVER(),`+bookColumns+`
		FROM books b
		JOIN authors a ON a.id = b.author_id
		LEFT JOIN categories c ON c.id = b.category_id
		WHERE ($1 = '' OR b.title ILIKE '%%' || $1 || '%%' OR a.name ILIKE '%%' || $1 || '%%')
		AND ($2 = 0 OR b.category_id = $2)
		ORDER BY %s
		LIMIT $3 OFFSET $4`, orderBy)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	offset := (filters.Page - 1) * filters.PageSize
	rows, err := m.DB.QueryContext(ctx, query, filters.Query, filters.CategoryID, filters.PageSize, offset)
	if err != nil {
		return nil, Metadata{}, err
	}
	defer rows.Close()

	totalRecords := 0
	var books []*Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(
			&totalRecords,
			&b.ID,
			&b.Title,
			&b.AuthorID,
			&b.AuthorName,
			&b.CategoryID,
			&b.CategoryName,
			&b.Cover,
			&b.Description,
			&b.PublicationYear,
			&b.Pages,
			&b.Language,
			&b.TotalCopies,
			&b.AvailableCopies,
			&b.CreatedAt,
			&b.AverageRating,
			&b.RatingCount,
		); err != nil {
			return nil, Metadata{}, err
		}
		books = append(books, &b)
	}

	if err = rows.Err(); err != nil {
		return nil, Metadata{}, err
	}

	metadata := calculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return books, metadata, nil
}

func (m BookModel) GetRecent(limit int) ([]*Book, error) {
	query := `
		SELECT` + bookColumns + `
		FROM books b
		JOIN authors a ON a.id = b.author_id
		LEFT JOIN categories c ON c.id = b.category_id
		ORDER BY b.created_at DESC
		LIMIT $1`
	return m.queryBooks(query, limit)
}

// GetTopRated returns the highest-rated books among those that have at
// least one review.
func (m BookModel) GetTopRated(limit int) ([]*Book, error) {
	query := `
		SELECT` + bookColumns + `
		FROM books b
		JOIN authors a ON a.id = b.author_id
		LEFT JOIN categories c ON c.id = b.category_id
		WHERE EXISTS (SELECT 1 FROM reviews r WHERE r.book_id = b.id)
		ORDER BY average_rating DESC, b.created_at DESC
		LIMIT $1`
	return m.queryBooks(query, limit)
}

func (m BookModel) GetByAuthor(authorID int64) ([]*Book, error) {
	query := `
		SELECT` + bookColumns + `
		FROM books b
		JOIN authors a ON a.id = b.author_id
		LEFT JOIN categories c ON c.id = b.category_id
		WHERE b.author_id = $1
		ORDER BY b.created_at DESC`
	return m.queryBooks(query, authorID)
}

func (m BookModel) GetByCategory(categoryID int64) ([]*Book, error) {
	query := `
		SELECT` + bookColumns + `
		FROM books b
		JOIN authors a ON a.id = b.author_id
		LEFT JOIN categories c ON c.id = b.category_id
		WHERE b.category_id = $1
		ORDER BY b.created_at DESC`
	return m.queryBooks(query, categoryID)
}

func (m BookModel) Update(book *Book) error {
	query := `
		UPDATE books
		SET title = $1, author_id = $2, category_id = $3, cover = $4, description = $5,
			publication_year = $6, pages = $7, language = $8, total_copies = $9, available_copies = $10
		WHERE id = $11`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	args := []any{
		book.Title, book.AuthorID, book.CategoryID, book.Cover, book.Description,
		book.PublicationYear, book.Pages, book.Language, book.TotalCopies, book.AvailableCopies,
		book.ID,
	}
	result, err := m.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (m BookModel) Delete(id int64) error {
	if id < 1 {
		return ErrRecordNotFound
	}

	query := `DELETE FROM books WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (m BookModel) Count() (int, error) {
	query := `SELECT COUNT(*) FROM books`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var count int
	err := m.DB.QueryRowContext(ctx, query).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
