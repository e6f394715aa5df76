package data

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/maktaba/maktaba/internal/validator"
)

type Review struct {
	ID        int64
	UserID    int64
	BookID    int64
	UserName  string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

func ValidateReview(v *validator.Validator, review *Review) {
	v.Check(review.Rating != 0, "rating", "must be provided")
	v.Check(validator.Between(review.Rating, 1, 5), "rating", "must be between 1 and 5")
	v.Check(validator.MaxChars(review.Comment, 2000), "comment", "must not be more than 2000 characters long")
}

type ReviewModel struct {
	DB *sql.DB
}

// Insert adds a review after checking the user has borrowed the book at
// least once, returned or not. The unique index on (user_id, book_id) is
// the arbiter for duplicates, so a racing second review still fails with
// ErrAlreadyReviewed.
func (m ReviewModel) Insert(review *Review) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var eligible bool
	err := m.DB.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM borrow_records WHERE user_id = $1 AND book_id = $2
		)`,
		review.UserID, review.BookID).Scan(&eligible)
	if err != nil {
		return err
	}
	if !eligible {
		return ErrNotEligible
	}

	err = m.DB.QueryRowContext(ctx, `
		INSERT INTO reviews (user_id, book_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		review.UserID, review.BookID, review.Rating, review.Comment,
	).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		switch {
		case errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation":
			return ErrAlreadyReviewed
		case errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation":
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}

func (m ReviewModel) GetForBook(bookID int64) ([]*Review, error) {
	query := `
		SELECT r.id, r.user_id, r.book_id, u.name, r.rating, r.comment, r.created_at
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.book_id = $1
		ORDER BY r.created_at DESC, r.id DESC`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*Review
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.UserID, &r.BookID, &r.UserName, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, &r)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (m ReviewModel) HasReviewed(userID, bookID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reviews WHERE user_id = $1 AND book_id = $2
		)`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var exists bool
	err := m.DB.QueryRowContext(ctx, query, userID, bookID).Scan(&exists)
	return exists, err
}
