package data

import (
	"errors"
	"fmt"
	"testing"

	"github.com/maktaba/maktaba/internal/validator"
)

func TestReviewEligibility(t *testing.T) {
	db := newTestDB(t)
	reviews := ReviewModel{DB: db}
	borrows := BorrowModel{DB: db}

	bookID := createTestBook(t, db, "Reviewable", 2)
	userID := createTestUser(t, db, "reader@example.edu")

	// Never borrowed: not eligible.
	err := reviews.Insert(&Review{UserID: userID, BookID: bookID, Rating: 4})
	if !errors.Is(err, ErrNotEligible) {
		t.Fatalf("got %v, want ErrNotEligible", err)
	}

	record, err := borrows.Borrow(userID, bookID)
	if err != nil {
		t.Fatalf("borrow: %v", err)
	}

	// An active, unreturned record is enough.
	review := &Review{UserID: userID, BookID: bookID, Rating: 4, Comment: "Solid."}
	if err := reviews.Insert(review); err != nil {
		t.Fatalf("insert review: %v", err)
	}
	if review.ID == 0 {
		t.Error("review ID not set on insert")
	}

	// Still eligible after returning, but only one review per book.
	if _, err := borrows.Return(userID, record.ID); err != nil {
		t.Fatalf("return: %v", err)
	}
	err = reviews.Insert(&Review{UserID: userID, BookID: bookID, Rating: 5})
	if !errors.Is(err, ErrAlreadyReviewed) {
		t.Fatalf("got %v, want ErrAlreadyReviewed", err)
	}
}

func TestAverageRating(t *testing.T) {
	db := newTestDB(t)
	reviews := ReviewModel{DB: db}
	borrows := BorrowModel{DB: db}
	books := BookModel{DB: db}

	bookID := createTestBook(t, db, "Rated", 5)

	// No reviews yet: average is 0.
	book, err := books.Get(bookID)
	if err != nil {
		t.Fatalf("get book: %v", err)
	}
	if book.AverageRating != 0 || book.RatingCount != 0 {
		t.Fatalf("unreviewed book: average=%v count=%d, want 0 and 0", book.AverageRating, book.RatingCount)
	}

	for i, rating := range []int{4, 5, 3} {
		userID := createTestUser(t, db, fmt.Sprintf("rater%d@example.edu", i))
		if _, err := borrows.Borrow(userID, bookID); err != nil {
			t.Fatalf("borrow: %v", err)
		}
		if err := reviews.Insert(&Review{UserID: userID, BookID: bookID, Rating: rating}); err != nil {
			t.Fatalf("insert review: %v", err)
		}
	}

	book, err = books.Get(bookID)
	if err != nil {
		t.Fatalf("get book: %v", err)
	}
	if book.AverageRating != 4.0 {
		t.Errorf("average rating = %v, want 4.0", book.AverageRating)
	}
	if book.RatingCount != 3 {
		t.Errorf("rating count = %d, want 3", book.RatingCount)
	}
}

func TestGetReviewsForBook(t *testing.T) {
	db := newTestDB(t)
	reviews := ReviewModel{DB: db}
	borrows := BorrowModel{DB: db}

	bookID := createTestBook(t, db, "Discussed", 5)
	userID := createTestUser(t, db, "reader@example.edu")

	if _, err := borrows.Borrow(userID, bookID); err != nil {
		t.Fatalf("borrow: %v", err)
	}
	if err := reviews.Insert(&Review{UserID: userID, BookID: bookID, Rating: 5, Comment: "Loved it"}); err != nil {
		t.Fatalf("insert review: %v", err)
	}

	got, err := reviews.GetForBook(bookID)
	if err != nil {
		t.Fatalf("get reviews: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d reviews, want 1", len(got))
	}
	if got[0].UserName != "Test User" || got[0].Comment != "Loved it" {
		t.Errorf("review = %+v, want reviewer name and comment populated", got[0])
	}

	reviewed, err := reviews.HasReviewed(userID, bookID)
	if err != nil {
		t.Fatalf("has reviewed: %v", err)
	}
	if !reviewed {
		t.Error("HasReviewed = false, want true")
	}
}

func TestValidateReview(t *testing.T) {
	tests := []struct {
		name    string
		rating  int
		wantKey string
	}{
		{"missing rating", 0, "rating"},
		{"rating too low", -1, "rating"},
		{"rating too high", 6, "rating"},
		{"valid rating", 3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidateReview(v, &Review{Rating: tt.rating})

			if tt.wantKey == "" {
				if !v.Valid() {
					t.Errorf("unexpected errors: %v", v.Errors)
				}
				return
			}
			if _, ok := v.Errors[tt.wantKey]; !ok {
				t.Errorf("missing error for %q, got %v", tt.wantKey, v.Errors)
			}
		})
	}
}
