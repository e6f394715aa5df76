package data

import (
	"database/sql"
	"errors"
)

var (
	ErrRecordNotFound = errors.New("models: record not found")

	ErrNoCopiesAvailable   = errors.New("models: no available copies")
	ErrAlreadyBorrowed     = errors.New("models: book already borrowed by user")
	ErrBorrowLimitExceeded = errors.New("models: active borrow limit reached")
	ErrAlreadyReturned     = errors.New("models: record already returned")

	ErrNotEligible     = errors.New("models: user never borrowed this book")
	ErrAlreadyReviewed = errors.New("models: user already reviewed this book")
)

type Models struct {
	Users interface {
		Insert(user *User) error
		GetByEmail(email string) (*User, error)
		Get(id int64) (*User, error)
		GetAll() ([]*User, error)
		Update(user *User) error
		Delete(id int64) error
		Count() (int, error)
	}

	Profiles interface {
		Get(userID int64) (*Profile, error)
		Upsert(profile *Profile) error
	}

	Books interface {
		Insert(book *Book) error
		Get(id int64) (*Book, error)
		GetAll() ([]*Book, error)
		Search(filters BookFilters) ([]*Book, Metadata, error)
		GetRecent(limit int) ([]*Book, error)
		GetTopRated(limit int) ([]*Book, error)
		GetByAuthor(authorID int64) ([]*Book, error)
		GetByCategory(categoryID int64) ([]*Book, error)
		Update(book *Book) error
		Delete(id int64) error
		Count() (int, error)
	}

	Authors interface {
		Insert(author *Author) error
		Get(id int64) (*Author, error)
		GetAll() ([]*Author, error)
		Count() (int, error)
	}

	Categories interface {
		Insert(category *Category) error
		Get(id int64) (*Category, error)
		GetAll() ([]*Category, error)
		Delete(id int64) error
	}

	Borrows interface {
		Borrow(userID, bookID int64) (*BorrowRecord, error)
		Return(userID, recordID int64) (*BorrowRecord, error)
		GetCurrentBorrows(userID int64) ([]*BorrowedBook, error)
		GetBorrowHistory(userID int64) ([]*BorrowedBook, error)
		HasBorrowed(userID, bookID int64) (bool, error)
		IsCurrentlyBorrowing(userID, bookID int64) (bool, error)
		CountActiveBorrows() (int, error)
		CountOverdue() (int, error)
	}

	Reviews interface {
		Insert(review *Review) error
		GetForBook(bookID int64) ([]*Review, error)
		HasReviewed(userID, bookID int64) (bool, error)
	}

	Contact interface {
		Insert(msg *ContactMessage) error
		GetRecent(limit int) ([]*ContactMessage, error)
	}

	Visits interface {
		Insert(visit *Visit) error
		Count() (int, error)
	}
}

func NewModels(db *sql.DB) Models {
	return Models{
		Users:      UserModel{DB: db},
		Profiles:   ProfileModel{DB: db},
		Books:      BookModel{DB: db},
		Authors:    AuthorModel{DB: db},
		Categories: CategoryModel{DB: db},
		Borrows:    BorrowModel{DB: db},
		Reviews:    ReviewModel{DB: db},
		Contact:    ContactModel{DB: db},
		Visits:     VisitModel{DB: db},
	}
}
