package data

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Profile extends a user account with contact details. The borrow counts
// are derived from borrow_records on every read, never stored.
type Profile struct {
	UserID  int64
	Phone   string
	Picture string

	CurrentlyBorrowed int
	TotalBorrowed     int
}

type ProfileModel struct {
	DB *sql.DB
}

func (m ProfileModel) Get(userID int64) (*Profile, error) {
	query := `
		SELECT p.user_id, p.phone, p.picture,
			(SELECT COUNT(*) FROM borrow_records br WHERE br.user_id = p.user_id AND br.is_returned = FALSE),
			(SELECT COUNT(*) FROM borrow_records br WHERE br.user_id = p.user_id)
		FROM profiles p
		WHERE p.user_id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var p Profile
	err := m.DB.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID,
		&p.Phone,
		&p.Picture,
		&p.CurrentlyBorrowed,
		&p.TotalBorrowed,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (m ProfileModel) Upsert(profile *Profile) error {
	query := `
		INSERT INTO profiles (user_id, phone, picture)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id)
		DO UPDATE SET phone = EXCLUDED.phone, picture = EXCLUDED.picture`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := m.DB.ExecContext(ctx, query, profile.UserID, profile.Phone, profile.Picture)
	return err
}
