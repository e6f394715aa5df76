package data

import (
	"context"
	"database/sql"
	"time"
)

// Visit is one logged page view, written by the visit-logging middleware.
type Visit struct {
	ID        int64
	Path      string
	Method    string
	IPAddress string
	CreatedAt time.Time
}

type VisitModel struct {
	DB *sql.DB
}

func (m VisitModel) Insert(visit *Visit) error {
	query := `
		INSERT INTO visit_logs (path, method, ip_address)
		VALUES ($1, $2, $3)`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := m.DB.ExecContext(ctx, query, visit.Path, visit.Method, visit.IPAddress)
	return err
}

func (m VisitModel) Count() (int, error) {
	query := `SELECT COUNT(*) FROM visit_logs`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var count int
	err := m.DB.QueryRowContext(ctx, query).Scan(&count)
	return count, err
}
