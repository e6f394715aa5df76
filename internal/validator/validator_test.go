package validator

import "testing"

func TestCheck(t *testing.T) {
	v := New()
	if !v.Valid() {
		t.Error("new validator should be valid")
	}

	v.Check(true, "name", "must be provided")
	if !v.Valid() {
		t.Error("passing check should not record an error")
	}

	v.Check(false, "name", "must be provided")
	v.Check(false, "name", "a later message")
	if v.Valid() {
		t.Error("failing check should record an error")
	}
	if got := v.Errors["name"]; got != "must be provided" {
		t.Errorf("Errors[name] = %q, want the first message to win", got)
	}
}

func TestNotBlank(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"hello", true},
		{"  hello  ", true},
		{"", false},
		{"   ", false},
		{"\t\n", false},
	}

	for _, tt := range tests {
		if got := NotBlank(tt.value); got != tt.want {
			t.Errorf("NotBlank(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestCharCountsAreRunes(t *testing.T) {
	// Five runes, more than five bytes.
	s := "héllo"

	if !MaxChars(s, 5) {
		t.Errorf("MaxChars(%q, 5) = false, want true", s)
	}
	if MaxChars(s, 4) {
		t.Errorf("MaxChars(%q, 4) = true, want false", s)
	}
	if !MinChars(s, 5) {
		t.Errorf("MinChars(%q, 5) = false, want true", s)
	}
	if MinChars(s, 6) {
		t.Errorf("MinChars(%q, 6) = true, want false", s)
	}
}

func TestEmailRX(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"alice@example.com", true},
		{"alice+tag@sub.example.edu", true},
		{"alice", false},
		{"alice@", false},
		{"@example.com", false},
		{"alice example@example.com", false},
	}

	for _, tt := range tests {
		if got := Matches(tt.email, EmailRX); got != tt.want {
			t.Errorf("Matches(%q, EmailRX) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestBetween(t *testing.T) {
	tests := []struct {
		value, min, max int
		want            bool
	}{
		{1, 1, 5, true},
		{5, 1, 5, true},
		{3, 1, 5, true},
		{0, 1, 5, false},
		{6, 1, 5, false},
	}

	for _, tt := range tests {
		if got := Between(tt.value, tt.min, tt.max); got != tt.want {
			t.Errorf("Between(%d, %d, %d) = %v, want %v", tt.value, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestPermittedValue(t *testing.T) {
	if !PermittedValue("rating", "newest", "oldest", "rating") {
		t.Error("expected value in list to be permitted")
	}
	if PermittedValue("title", "newest", "oldest", "rating") {
		t.Error("expected value outside list to be rejected")
	}
	if !PermittedValue(3, 1, 2, 3) {
		t.Error("expected int value in list to be permitted")
	}
}
