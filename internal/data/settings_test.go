package data

import "testing"

func TestSettingsLoadCreatesRow(t *testing.T) {
	db := newTestDB(t)
	settings := NewSettingsModel(db)

	// Before Load the cache holds the zero value.
	if settings.Current().MaintenanceMode {
		t.Error("fresh model should default to maintenance off")
	}

	s, err := settings.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.MaintenanceMode {
		t.Error("first load should create the row with maintenance off")
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM site_settings`).Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Errorf("site_settings has %d rows, want 1", count)
	}

	// Loading again must reuse the same row, not create a second one.
	if _, err := settings.Load(); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM site_settings`).Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Errorf("site_settings has %d rows after second load, want 1", count)
	}
}

func TestSetMaintenanceMode(t *testing.T) {
	db := newTestDB(t)
	settings := NewSettingsModel(db)

	if _, err := settings.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	s, err := settings.SetMaintenanceMode(true)
	if err != nil {
		t.Fatalf("enable: %v", err)
	}
	if !s.MaintenanceMode {
		t.Error("returned settings should have maintenance on")
	}
	if !settings.Current().MaintenanceMode {
		t.Error("cache should reflect the update immediately")
	}

	// The change must be durable, not cache-only.
	var persisted bool
	if err := db.QueryRow(`SELECT maintenance_mode FROM site_settings WHERE id = 1`).Scan(&persisted); err != nil {
		t.Fatalf("read row: %v", err)
	}
	if !persisted {
		t.Error("maintenance flag not persisted")
	}

	if _, err := settings.SetMaintenanceMode(false); err != nil {
		t.Fatalf("disable: %v", err)
	}
	if settings.Current().MaintenanceMode {
		t.Error("cache should show maintenance off after disabling")
	}
}

func TestSettingsReloadPicksUpExternalChange(t *testing.T) {
	db := newTestDB(t)
	settings := NewSettingsModel(db)

	if _, err := settings.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	// Flip the row behind the model's back, as another process would.
	if _, err := db.Exec(`UPDATE site_settings SET maintenance_mode = TRUE WHERE id = 1`); err != nil {
		t.Fatalf("update row: %v", err)
	}

	if settings.Current().MaintenanceMode {
		t.Fatal("cache should be stale until Reload")
	}

	s, err := settings.Reload()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !s.MaintenanceMode {
		t.Error("reload should pick up the external change")
	}
	if !settings.Current().MaintenanceMode {
		t.Error("cache should be updated by Reload")
	}
}
