package data

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type Author struct {
	ID        int64
	Name      string
	Photo     string
	Bio       string
	BookCount int
}

type AuthorModel struct {
	DB *sql.DB
}

func (m AuthorModel) Insert(author *Author) error {
	query := `
		INSERT INTO authors (name, photo, bio)
		VALUES ($1, $2, $3)
		RETURNING id`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return m.DB.QueryRowContext(ctx, query, author.Name, author.Photo, author.Bio).
		Scan(&author.ID)
}

func (m AuthorModel) Get(id int64) (*Author, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := `
		SELECT a.id, a.name, a.photo, a.bio,
			(SELECT COUNT(*) FROM books b WHERE b.author_id = a.id)
		FROM authors a
		WHERE a.id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var a Author
	err := m.DB.QueryRowContext(ctx, query, id).
		Scan(&a.ID, &a.Name, &a.Photo, &a.Bio, &a.BookCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (m AuthorModel) GetAll() ([]*Author, error) {
	query := `
		SELECT a.id, a.name, a.photo, a.bio,
			(SELECT COUNT(*) FROM books b WHERE b.author_id = a.id)
		FROM authors a
		ORDER BY a.name`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authors []*Author
	for rows.Next() {
		var a Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Photo, &a.Bio, &a.BookCount); err != nil {
			return nil, err
		}
		authors = append(authors, &a)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return authors, nil
}

func (m AuthorModel) Count() (int, error) {
	query := `SELECT COUNT(*) FROM authors`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var count int
	err := m.DB.QueryRowContext(ctx, query).Scan(&count)
	return count, err
}
