package data

import (
	"context"
	"database/sql"
	"time"

	"github.com/maktaba/maktaba/internal/validator"
)

type ContactMessage struct {
	ID        int64
	Name      string
	Email     string
	Subject   string
	Message   string
	CreatedAt time.Time
}

func ValidateContactMessage(v *validator.Validator, msg *ContactMessage) {
	v.Check(validator.NotBlank(msg.Name), "name", "must be provided")
	v.Check(validator.MaxChars(msg.Name, 100), "name", "must not be more than 100 characters long")
	ValidateEmail(v, msg.Email)
	v.Check(validator.NotBlank(msg.Subject), "subject", "must be provided")
	v.Check(validator.MaxChars(msg.Subject, 200), "subject", "must not be more than 200 characters long")
	v.Check(validator.NotBlank(msg.Message), "message", "must be provided")
}

type ContactModel struct {
	DB *sql.DB
}

func (m ContactModel) Insert(msg *ContactMessage) error {
	query := `
		INSERT INTO contact_messages (name, email, subject, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return m.DB.QueryRowContext(ctx, query, msg.Name, msg.Email, msg.Subject, msg.Message).
		Scan(&msg.ID, &msg.CreatedAt)
}

func (m ContactModel) GetRecent(limit int) ([]*ContactMessage, error) {
	query := `
		SELECT id, name, email, subject, message, created_at
		FROM contact_messages
		ORDER BY created_at DESC
		LIMIT $1`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*ContactMessage
	for rows.Next() {
		var msg ContactMessage
		if err := rows.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Subject, &msg.Message, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, &msg)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}
