package data

import (
	"errors"
	"strings"
	"testing"

	"github.com/maktaba/maktaba/internal/validator"
)

func TestUserInsertDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	users := UserModel{DB: db}

	createTestUser(t, db, "taken@example.edu")

	dupe := &User{Name: "Second User", Email: "taken@example.edu"}
	if err := dupe.Password.Set("password123"); err != nil {
		t.Fatalf("set password: %v", err)
	}
	err := users.Insert(dupe)
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("got %v, want ErrDuplicateEmail", err)
	}

	// Emails are citext, so a case variant is still a duplicate.
	dupe.Email = "TAKEN@example.edu"
	err = users.Insert(dupe)
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("case variant: got %v, want ErrDuplicateEmail", err)
	}
}

func TestUserAuthentication(t *testing.T) {
	db := newTestDB(t)
	users := UserModel{DB: db}

	createTestUser(t, db, "login@example.edu")

	user, err := users.GetByEmail("login@example.edu")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if user.Role != RoleMember || user.IsStaff() {
		t.Errorf("new accounts should be members, got role %q", user.Role)
	}

	match, err := user.Password.Matches("password123")
	if err != nil {
		t.Fatalf("matches: %v", err)
	}
	if !match {
		t.Error("correct password rejected")
	}

	match, err = user.Password.Matches("wrong-password")
	if err != nil {
		t.Fatalf("matches: %v", err)
	}
	if match {
		t.Error("wrong password accepted")
	}

	if _, err := users.GetByEmail("nobody@example.edu"); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("unknown email: got %v, want ErrRecordNotFound", err)
	}
}

func TestUserUpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	users := UserModel{DB: db}

	id := createTestUser(t, db, "member@example.edu")

	user, err := users.Get(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	version := user.Version

	user.Name = "Renamed User"
	if err := users.Update(user); err != nil {
		t.Fatalf("update: %v", err)
	}
	if user.Version != version+1 {
		t.Errorf("version = %d, want %d", user.Version, version+1)
	}

	if err := users.Delete(id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := users.Get(id); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("get after delete: %v, want ErrRecordNotFound", err)
	}
}

func TestValidatePasswordPlaintext(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"empty", "", false},
		{"too short", "abc123", false},
		{"too long", strings.Repeat("x", 73), false},
		{"ok", "password123", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidatePasswordPlaintext(v, tt.password)
			if v.Valid() != tt.valid {
				t.Errorf("Valid() = %v, want %v (errors: %v)", v.Valid(), tt.valid, v.Errors)
			}
		})
	}
}
