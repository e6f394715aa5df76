package data

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

const (
	// MaxActiveBorrows is the per-user cap on unreturned records.
	MaxActiveBorrows = 5

	// BorrowDays is the loan period used to derive the due date.
	BorrowDays = 14
)

type BorrowRecord struct {
	ID         int64
	UserID     int64
	BookID     int64
	BorrowDate time.Time
	DueDate    time.Time
	ReturnDate *time.Time
	IsReturned bool
}

func (r *BorrowRecord) IsOverdue() bool {
	if r.IsReturned {
		return false
	}
	return r.DueDate.Before(today())
}

// DaysRemaining reports days until the due date; negative means overdue
// and returned records always report 0.
func (r *BorrowRecord) DaysRemaining() int {
	if r.IsReturned {
		return 0
	}
	return int(r.DueDate.Sub(today()).Hours() / 24)
}

// BorrowedBook joins a borrow record with the book it refers to, for the
// my-books and profile pages.
type BorrowedBook struct {
	BorrowRecord
	Title      string
	AuthorName string
	Cover      string
}

func today() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type BorrowModel struct {
	DB *sql.DB
}

// Borrow creates an active borrow record for (user, book) and decrements
// the book's available copies, all inside one transaction. The book row is
// locked first, so concurrent borrows of the same book serialize and the
// availability check stays truthful: at most total_copies records can be
// active at once. Preconditions are checked in a fixed order and the first
// failure wins.
func (m BorrowModel) Borrow(userID, bookID int64) (*BorrowRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var available int
	err = tx.QueryRowContext(ctx, `
		SELECT available_copies FROM books WHERE id = $1 FOR UPDATE`,
		bookID).Scan(&available)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	if available < 1 {
		return nil, ErrNoCopiesAvailable
	}

	var alreadyBorrowing bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM borrow_records
			WHERE user_id = $1 AND book_id = $2 AND is_returned = FALSE
		)`,
		userID, bookID).Scan(&alreadyBorrowing)
	if err != nil {
		return nil, err
	}
	if alreadyBorrowing {
		return nil, ErrAlreadyBorrowed
	}

	var activeCount int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM borrow_records
		WHERE user_id = $1 AND is_returned = FALSE`,
		userID).Scan(&activeCount)
	if err != nil {
		return nil, err
	}
	if activeCount >= MaxActiveBorrows {
		return nil, ErrBorrowLimitExceeded
	}

	record := BorrowRecord{
		UserID:  userID,
		BookID:  bookID,
		DueDate: today().AddDate(0, 0, BorrowDays),
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO borrow_records (user_id, book_id, due_date)
		VALUES ($1, $2, $3)
		RETURNING id, borrow_date`,
		userID, bookID, record.DueDate).Scan(&record.ID, &record.BorrowDate)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE books SET available_copies = available_copies - 1 WHERE id = $1`,
		bookID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &record, nil
}

// Return marks the record returned and gives the copy back to the book's
// available pool in the same transaction. The record is looked up by
// (id, user), so a record belonging to someone else is indistinguishable
// from a missing one.
func (m BorrowModel) Return(userID, recordID int64) (*BorrowRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var record BorrowRecord
	err = tx.QueryRowContext(ctx, `
		SELECT id, user_id, book_id, borrow_date, due_date, return_date, is_returned
		FROM borrow_records
		WHERE id = $1 AND user_id = $2`,
		recordID, userID).Scan(
		&record.ID,
		&record.UserID,
		&record.BookID,
		&record.BorrowDate,
		&record.DueDate,
		&record.ReturnDate,
		&record.IsReturned,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	// Lock the book row before re-checking the flag so a concurrent
	// double-return cannot increment the counter twice.
	_, err = tx.ExecContext(ctx, `SELECT 1 FROM books WHERE id = $1 FOR UPDATE`, record.BookID)
	if err != nil {
		return nil, err
	}

	var stillActive bool
	err = tx.QueryRowContext(ctx, `
		SELECT NOT is_returned FROM borrow_records WHERE id = $1`,
		record.ID).Scan(&stillActive)
	if err != nil {
		return nil, err
	}
	if record.IsReturned || !stillActive {
		return nil, ErrAlreadyReturned
	}

	returnDate := today()
	_, err = tx.ExecContext(ctx, `
		UPDATE borrow_records
		SET is_returned = TRUE, return_date = $1
		WHERE id = $2`,
		returnDate, record.ID)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE books SET available_copies = available_copies + 1 WHERE id = $1`,
		record.BookID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	record.IsReturned = true
	record.ReturnDate = &returnDate
	return &record, nil
}

func (m BorrowModel) queryBorrowedBooks(query string, args ...any) ([]*BorrowedBook, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var borrowed []*BorrowedBook
	for rows.Next() {
		var b BorrowedBook
		if err := rows.Scan(
			&b.ID,
			&b.UserID,
			&b.BookID,
			&b.BorrowDate,
			&b.DueDate,
			&b.ReturnDate,
			&b.IsReturned,
			&b.Title,
			&b.AuthorName,
			&b.Cover,
		); err != nil {
			return nil, err
		}
		borrowed = append(borrowed, &b)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return borrowed, nil
}

func (m BorrowModel) GetCurrentBorrows(userID int64) ([]*BorrowedBook, error) {
	query := `
		SELECT br.id, br.user_id, br.book_id, br.borrow_date, br.due_date, br.return_date, br.is_returned,
			b.title, a.name, b.cover
		FROM borrow_records br
		JOIN books b ON b.id = br.book_id
		JOIN authors a ON a.id = b.author_id
		WHERE br.user_id = $1 AND br.is_returned = FALSE
		ORDER BY br.borrow_date DESC, br.id DESC`
	return m.queryBorrowedBooks(query, userID)
}

func (m BorrowModel) GetBorrowHistory(userID int64) ([]*BorrowedBook, error) {
	query := `
		SELECT br.id, br.user_id, br.book_id, br.borrow_date, br.due_date, br.return_date, br.is_returned,
			b.title, a.name, b.cover
		FROM borrow_records br
		JOIN books b ON b.id = br.book_id
		JOIN authors a ON a.id = b.author_id
		WHERE br.user_id = $1 AND br.is_returned = TRUE
		ORDER BY br.borrow_date DESC, br.id DESC`
	return m.queryBorrowedBooks(query, userID)
}

// HasBorrowed reports whether the user has ever borrowed the book,
// returned or not. This is the review-eligibility check.
func (m BorrowModel) HasBorrowed(userID, bookID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM borrow_records WHERE user_id = $1 AND book_id = $2
		)`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var exists bool
	err := m.DB.QueryRowContext(ctx, query, userID, bookID).Scan(&exists)
	return exists, err
}

func (m BorrowModel) IsCurrentlyBorrowing(userID, bookID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM borrow_records
			WHERE user_id = $1 AND book_id = $2 AND is_returned = FALSE
		)`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var exists bool
	err := m.DB.QueryRowContext(ctx, query, userID, bookID).Scan(&exists)
	return exists, err
}

func (m BorrowModel) CountActiveBorrows() (int, error) {
	query := `SELECT COUNT(*) FROM borrow_records WHERE is_returned = FALSE`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var count int
	err := m.DB.QueryRowContext(ctx, query).Scan(&count)
	return count, err
}

func (m BorrowModel) CountOverdue() (int, error) {
	query := `
		SELECT COUNT(*) FROM borrow_records
		WHERE is_returned = FALSE AND due_date < CURRENT_DATE`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var count int
	err := m.DB.QueryRowContext(ctx, query).Scan(&count)
	return count, err
}
