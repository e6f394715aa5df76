package main

import (
	"net/http/httptest"
	"testing"
)

func TestPathID(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		wantID int64
		wantOK bool
	}{
		{"valid", "42", 42, true},
		{"zero", "0", 0, false},
		{"negative", "-3", 0, false},
		{"not a number", "abc", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/books/1", nil)
			r.SetPathValue("id", tt.value)

			id, ok := pathID(r, "id")
			if id != tt.wantID || ok != tt.wantOK {
				t.Errorf("pathID() = (%d, %v), want (%d, %v)", id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestIsAssetPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/static/css/main.css", true},
		{"/uploads/abc.png", true},
		{"/metrics", true},
		{"/favicon.ico", true},
		{"/", false},
		{"/books/7", false},
		{"/staticfile", false},
	}

	for _, tt := range tests {
		if got := isAssetPath(tt.path); got != tt.want {
			t.Errorf("isAssetPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
