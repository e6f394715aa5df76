package data

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type Category struct {
	ID          int64
	Name        string
	Icon        string
	Description string
	BookCount   int
}

type CategoryModel struct {
	DB *sql.DB
}

func (m CategoryModel) Insert(category *Category) error {
	query := `
		INSERT INTO categories (name, icon, description)
		VALUES ($1, $2, $3)
		RETURNING id`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if category.Icon == "" {
		category.Icon = "fa-book"
	}

	return m.DB.QueryRowContext(ctx, query, category.Name, category.Icon, category.Description).
		Scan(&category.ID)
}

func (m CategoryModel) Get(id int64) (*Category, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := `
		SELECT c.id, c.name, c.icon, c.description,
			(SELECT COUNT(*) FROM books b WHERE b.category_id = c.id)
		FROM categories c
		WHERE c.id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var c Category
	err := m.DB.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Icon, &c.Description, &c.BookCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (m CategoryModel) GetAll() ([]*Category, error) {
	query := `
		SELECT c.id, c.name, c.icon, c.description,
			(SELECT COUNT(*) FROM books b WHERE b.category_id = c.id)
		FROM categories c
		ORDER BY c.name`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Description, &c.BookCount); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

// Delete removes a category; books referencing it keep existing with a
// NULL category (ON DELETE SET NULL in the schema).
func (m CategoryModel) Delete(id int64) error {
	if id < 1 {
		return ErrRecordNotFound
	}

	query := `DELETE FROM categories WHERE id = $1`

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
