package data

import (
	"context"
	"database/sql"
	"sync/atomic"
	"time"
)

// SiteSettings is the single row of site-wide configuration. It is loaded
// once at startup into a process-wide cache; request paths read the cache
// and never touch the database.
type SiteSettings struct {
	MaintenanceMode bool
}

type SettingsModel struct {
	DB      *sql.DB
	current atomic.Pointer[SiteSettings]
}

func NewSettingsModel(db *sql.DB) *SettingsModel {
	m := &SettingsModel{DB: db}
	m.current.Store(&SiteSettings{})
	return m
}

// Load reads the settings row, creating it with defaults on first run,
// and primes the cache.
func (m *SettingsModel) Load() (*SiteSettings, error) {
	query := `
		INSERT INTO site_settings (id, maintenance_mode)
		VALUES (1, FALSE)
		ON CONFLICT (id) DO UPDATE SET id = site_settings.id
		RETURNING maintenance_mode`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var s SiteSettings
	err := m.DB.QueryRowContext(ctx, query).Scan(&s.MaintenanceMode)
	if err != nil {
		return nil, err
	}

	m.current.Store(&s)
	return &s, nil
}

// Reload re-reads the settings row into the cache, for picking up changes
// made outside this process.
func (m *SettingsModel) Reload() (*SiteSettings, error) {
	return m.Load()
}

func (m *SettingsModel) SetMaintenanceMode(enabled bool) (*SiteSettings, error) {
	query := `
		UPDATE site_settings SET maintenance_mode = $1 WHERE id = 1
		RETURNING maintenance_mode`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var s SiteSettings
	err := m.DB.QueryRowContext(ctx, query, enabled).Scan(&s.MaintenanceMode)
	if err != nil {
		return nil, err
	}

	m.current.Store(&s)
	return &s, nil
}

// Current returns the cached settings without a database round trip.
func (m *SettingsModel) Current() *SiteSettings {
	return m.current.Load()
}
