package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/maktaba/maktaba/internal/data"
	"github.com/maktaba/maktaba/internal/validator"
)

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	recent, err := app.models.Books.GetRecent(6)
	if err != nil {
		app.serverError(w, err)
		return
	}

	top, err := app.models.Books.GetTopRated(3)
	if err != nil {
		app.serverError(w, err)
		return
	}

	bookCount, err := app.models.Books.Count()
	if err != nil {
		app.serverError(w, err)
		return
	}

	authorCount, err := app.models.Authors.Count()
	if err != nil {
		app.serverError(w, err)
		return
	}

	memberCount, err := app.models.Users.Count()
	if err != nil {
		app.serverError(w, err)
		return
	}

	data := app.newTemplateData(r)
	data.Books = recent
	data.TopBooks = top
	data.BookCount = bookCount
	data.AuthorCount = authorCount
	data.MemberCount = memberCount
	app.render(w, http.StatusOK, "home.html", data)
}

func (app *application) listBooks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	categoryID, _ := strconv.ParseInt(q.Get("category"), 10, 64)

	sort := q.Get("sort")
	if !validator.PermittedValue(sort, "newest", "oldest", "rating") {
		sort = "newest"
	}

	filters := data.BookFilters{
		Query:      q.Get("q"),
		CategoryID: categoryID,
		Sort:       sort,
		Page:       page,
		PageSize:   9,
	}

	books, metadata, err := app.models.Books.Search(filters)
	if err != nil {
		app.serverError(w, err)
		return
	}

	categories, err := app.models.Categories.GetAll()
	if err != nil {
		app.serverError(w, err)
		return
	}

	td := app.newTemplateData(r)
	td.Books = books
	td.Metadata = metadata
	td.Categories = categories
	td.SearchQuery = filters.Query
	td.SelectedCategory = categoryID
	td.SelectedSort = sort
	app.render(w, http.StatusOK, "books.html", td)
}

func (app *application) displayBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		app.notFound(w, r)
		return
	}

	book, err := app.models.Books.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFound(w, r)
		default:
			app.serverError(w, err)
		}
		return
	}

	reviews, err := app.models.Reviews.GetForBook(id)
	if err != nil {
		app.serverError(w, err)
		return
	}

	td := app.newTemplateData(r)
	td.Book = book
	td.Reviews = reviews

	// Work out what this user has done with this book so the page can
	// show the right buttons.
	if user := app.currentUser(r); user != nil {
		td.UserHasBorrowed, err = app.models.Borrows.HasBorrowed(user.ID, id)
		if err != nil {
			app.serverError(w, err)
			return
		}
		td.UserCurrentlyBorrowing, err = app.models.Borrows.IsCurrentlyBorrowing(user.ID, id)
		if err != nil {
			app.serverError(w, err)
			return
		}
		td.UserHasReviewed, err = app.models.Reviews.HasReviewed(user.ID, id)
		if err != nil {
			app.serverError(w, err)
			return
		}
	}

	app.render(w, http.StatusOK, "book.html", td)
}

func (app *application) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := app.models.Categories.GetAll()
	if err != nil {
		app.serverError(w, err)
		return
	}

	td := app.newTemplateData(r)
	td.Categories = categories
	app.render(w, http.StatusOK, "categories.html", td)
}

func (app *application) displayCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		app.notFound(w, r)
		return
	}

	category, err := app.models.Categories.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFound(w, r)
		default:
			app.serverError(w, err)
		}
		return
	}

	books, err := app.models.Books.GetByCategory(id)
	if err != nil {
		app.serverError(w, err)
		return
	}

	td := app.newTemplateData(r)
	td.Category = category
	td.Books = books
	app.render(w, http.StatusOK, "category.html", td)
}

func (app *application) listAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := app.models.Authors.GetAll()
	if err != nil {
		app.serverError(w, err)
		return
	}

	td := app.newTemplateData(r)
	td.Authors = authors
	app.render(w, http.StatusOK, "authors.html", td)
}

func (app *application) displayAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		app.notFound(w, r)
		return
	}

	author, err := app.models.Authors.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFound(w, r)
		default:
			app.serverError(w, err)
		}
		return
	}

	books, err := app.models.Books.GetByAuthor(id)
	if err != nil {
		app.serverError(w, err)
		return
	}

	td := app.newTemplateData(r)
	td.Author = author
	td.Books = books
	app.render(w, http.StatusOK, "author.html", td)
}

type contactForm struct {
	Name    string
	Email   string
	Subject string
	Message string
	validator.Validator
}

func (app *application) contact(w http.ResponseWriter, r *http.Request) {
	td := app.newTemplateData(r)
	td.Form = contactForm{}
	app.render(w, http.StatusOK, "contact.html", td)
}

func (app *application) contactPost(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		app.badRequest(w, r)
		return
	}

	form := contactForm{
		Name:      r.FormValue("name"),
		Email:     r.FormValue("email"),
		Subject:   r.FormValue("subject"),
		Message:   r.FormValue("message"),
		Validator: *validator.New(),
	}

	msg := &data.ContactMessage{
		Name:    form.Name,
		Email:   form.Email,
		Subject: form.Subject,
		Message: form.Message,
	}
	data.ValidateContactMessage(&form.Validator, msg)

	if !form.Valid() {
		td := app.newTemplateData(r)
		td.Form = form
		app.render(w, http.StatusUnprocessableEntity, "contact.html", td)
		return
	}

	if err := app.models.Contact.Insert(msg); err != nil {
		app.serverError(w, err)
		return
	}

	app.flashInfo(r, "Your message has been sent. Thank you!")
	http.Redirect(w, r, "/contact", http.StatusSeeOther)
}

type userSignupForm struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
	validator.Validator
}

func (app *application) signup(w http.ResponseWriter, r *http.Request) {
	td := app.newTemplateData(r)
	td.DisplayNav = false
	td.Form = userSignupForm{}
	app.render(w, http.StatusOK, "signup.html", td)
}

func (app *application) signupPost(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		app.badRequest(w, r)
		return
	}

	form := userSignupForm{
		Name:            r.FormValue("name"),
		Email:           r.FormValue("email"),
		Phone:           r.FormValue("phone"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
		Validator:       *validator.New(),
	}

	form.Check(validator.NotBlank(form.Name), "name", "must be provided")
	form.Check(validator.MinChars(form.Name, 3), "name", "must be more than 3 bytes long")
	form.Check(validator.MaxChars(form.Name, 100), "name", "must not be more than 100 bytes long")
	form.Check(validator.MaxChars(form.Phone, 20), "phone", "must not be more than 20 bytes long")

	data.ValidateEmail(&form.Validator, form.Email)
	data.ValidatePasswordPlaintext(&form.Validator, form.Password)
	if _, ok := form.Errors["password"]; !ok {
		form.Check(
			form.ConfirmPassword == form.Password,
			"confirm_password",
			"passwords do not match",
		)
	}

	if !form.Valid() {
		td := app.newTemplateData(r)
		td.DisplayNav = false
		td.Form = form
		app.render(w, http.StatusUnprocessableEntity, "signup.html", td)
		return
	}

	user := &data.User{
		Name:  form.Name,
		Email: form.Email,
		Role:  data.RoleMember,
	}

	err = user.Password.Set(form.Password)
	if err != nil {
		app.serverError(w, err)
		return
	}

	err = app.models.Users.Insert(user)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrDuplicateEmail):
			form.AddError("email", "this email address already exists")
			td := app.newTemplateData(r)
			td.DisplayNav = false
			td.Form = form
			app.render(w, http.StatusUnprocessableEntity, "signup.html", td)
		default:
			app.serverError(w, err)
		}
		return
	}

	err = app.models.Profiles.Upsert(&data.Profile{UserID: user.ID, Phone: form.Phone})
	if err != nil {
		app.serverError(w, err)
		return
	}

	app.flashInfo(r, "Account created. You can now log in.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

type userLoginForm struct {
	Email      string
	Password   string
	RememberMe string
	validator.Validator
}

func (app *application) login(w http.ResponseWriter, r *http.Request) {
	td := app.newTemplateData(r)
	td.DisplayNav = false
	td.Form = userLoginForm{}
	app.render(w, http.StatusOK, "login.html", td)
}

func (app *application) loginPost(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		app.badRequest(w, r)
		return
	}

	form := userLoginForm{
		Email:      r.FormValue("email"),
		Password:   r.FormValue("password"),
		RememberMe: r.FormValue("remember"),
		Validator:  *validator.New(),
	}

	data.ValidateEmail(&form.Validator, form.Email)
	data.ValidatePasswordPlaintext(&form.Validator, form.Password)

	if !form.Valid() {
		td := app.newTemplateData(r)
		td.DisplayNav = false
		td.Form = form
		app.render(w, http.StatusUnprocessableEntity, "login.html", td)
		return
	}

	user, err := app.models.Users.GetByEmail(form.Email)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			form.AddError("email", "User does not exist")
			td := app.newTemplateData(r)
			td.DisplayNav = false
			td.Form = form
			app.render(w, http.StatusUnprocessableEntity, "login.html", td)
		default:
			app.serverError(w, err)
		}
		return
	}

	match, err := user.Password.Matches(form.Password)
	if err != nil {
		app.serverError(w, err)
		return
	}

	if !match {
		form.AddError("password", "Incorrect password")
		td := app.newTemplateData(r)
		td.DisplayNav = false
		td.Form = form
		app.render(w, http.StatusUnprocessableEntity, "login.html", td)
		return
	}

	// without remember-me the session cookie dies with the browser
	app.session.Cookie.Persist = form.RememberMe == "1"

	err = app.session.RenewToken(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}

	app.session.Put(r.Context(), "authenticatedUserID", user.ID)
	app.flashInfo(r, fmt.Sprintf("Welcome back, %s!", user.Name))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) logout(w http.ResponseWriter, r *http.Request) {
	err := app.session.RenewToken(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}

	app.session.Remove(r.Context(), "authenticatedUserID")
	app.flashInfo(r, "You have been logged out.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) profile(w http.ResponseWriter, r *http.Request) {
	user := app.currentUser(r)

	profile, err := app.models.Profiles.Get(user.ID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			// accounts created before profiles existed get an empty one
			profile = &data.Profile{UserID: user.ID}
		default:
			app.serverError(w, err)
			return
		}
	}

	td := app.newTemplateData(r)
	td.Profile = profile
	app.render(w, http.StatusOK, "profile.html", td)
}

type profileEditForm struct {
	Name        string
	Email       string
	Phone       string
	NewPassword string
	validator.Validator
}

func (app *application) editProfile(w http.ResponseWriter, r *http.Request) {
	user := app.currentUser(r)

	phone := ""
	if profile, err := app.models.Profiles.Get(user.ID); err == nil {
		phone = profile.Phone
	}

	td := app.newTemplateData(r)
	td.Form = profileEditForm{
		Name:  user.Name,
		Email: user.Email,
		Phone: phone,
	}
	app.render(w, http.StatusOK, "edit_profile.html", td)
}

func (app *application) editProfilePost(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(5 << 20)
	if err != nil {
		app.badRequest(w, r)
		return
	}

	user := app.currentUser(r)

	form := profileEditForm{
		Name:        r.FormValue("name"),
		Email:       r.FormValue("email"),
		Phone:       r.FormValue("phone"),
		NewPassword: r.FormValue("new_password"),
		Validator:   *validator.New(),
	}

	form.Check(validator.NotBlank(form.Name), "name", "must be provided")
	form.Check(validator.MaxChars(form.Name, 100), "name", "must not be more than 100 bytes long")
	form.Check(validator.MaxChars(form.Phone, 20), "phone", "must not be more than 20 bytes long")
	data.ValidateEmail(&form.Validator, form.Email)
	if form.NewPassword != "" {
		data.ValidatePasswordPlaintext(&form.Validator, form.NewPassword)
	}

	if !form.Valid() {
		td := app.newTemplateData(r)
		td.Form = form
		app.render(w, http.StatusUnprocessableEntity, "edit_profile.html", td)
		return
	}

	user.Name = form.Name
	user.Email = form.Email
	if form.NewPassword != "" {
		if err := user.Password.Set(form.NewPassword); err != nil {
			app.serverError(w, err)
			return
		}
	}

	err = app.models.Users.Update(user)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrDuplicateEmail):
			form.AddError("email", "this email address already exists")
			td := app.newTemplateData(r)
			td.Form = form
			app.render(w, http.StatusUnprocessableEntity, "edit_profile.html", td)
		default:
			app.serverError(w, err)
		}
		return
	}

	profile := &data.Profile{UserID: user.ID, Phone: form.Phone}
	if existing, err := app.models.Profiles.Get(user.ID); err == nil {
		profile.Picture = existing.Picture
	}

	if file, header, err := r.FormFile("picture"); err == nil {
		defer file.Close()
		url, err := app.saveUpload(file, header.Filename)
		if err != nil {
			app.serverError(w, err)
			return
		}
		profile.Picture = url
	}

	if err := app.models.Profiles.Upsert(profile); err != nil {
		app.serverError(w, err)
		return
	}

	app.flashInfo(r, "Profile updated.")
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

func (app *application) myBooks(w http.ResponseWriter, r *http.Request) {
	user := app.currentUser(r)

	current, err := app.models.Borrows.GetCurrentBorrows(user.ID)
	if err != nil {
		app.serverError(w, err)
		return
	}

	history, err := app.models.Borrows.GetBorrowHistory(user.ID)
	if err != nil {
		app.serverError(w, err)
		return
	}

	td := app.newTemplateData(r)
	td.CurrentBorrows = current
	td.BorrowHistory = history
	app.render(w, http.StatusOK, "my_books.html", td)
}

func (app *application) borrowBook(w http.ResponseWriter, r *http.Request) {
	bookID, ok := pathID(r, "id")
	if !ok {
		app.notFound(w, r)
		return
	}

	user := app.currentUser(r)

	record, err := app.models.Borrows.Borrow(user.ID, bookID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrNoCopiesAvailable):
			app.flashError(r, "This book has no available copies right now.")
		case errors.Is(err, data.ErrAlreadyBorrowed):
			app.flashError(r, "You already have this book borrowed.")
		case errors.Is(err, data.ErrBorrowLimitExceeded):
			app.flashError(r, fmt.Sprintf("You have reached the maximum of %d borrowed books.", data.MaxActiveBorrows))
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFound(w, r)
			return
		default:
			app.serverError(w, err)
			return
		}

		http.Redirect(w, r, fmt.Sprintf("/books/%d", bookID), http.StatusSeeOther)
		return
	}

	app.flashInfo(r, fmt.Sprintf("Book borrowed. Due date: %s.", humanDate(record.DueDate)))
	http.Redirect(w, r, "/my-books", http.StatusSeeOther)
}

func (app *application) returnBook(w http.ResponseWriter, r *http.Request) {
	recordID, ok := pathID(r, "id")
	if !ok {
		app.notFound(w, r)
		return
	}

	user := app.currentUser(r)

	_, err := app.models.Borrows.Return(user.ID, recordID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrAlreadyReturned):
			app.flashError(r, "This book has already been returned.")
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFound(w, r)
			return
		default:
			app.serverError(w, err)
			return
		}
	} else {
		app.flashInfo(r, "Book returned. Thank you!")
	}

	http.Redirect(w, r, "/my-books", http.StatusSeeOther)
}

type reviewForm struct {
	Rating  int
	Comment string
	validator.Validator
}

func (app *application) addReview(w http.ResponseWriter, r *http.Request) {
	bookID, ok := pathID(r, "id")
	if !ok {
		app.notFound(w, r)
		return
	}

	book, err := app.models.Books.Get(bookID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFound(w, r)
		default:
			app.serverError(w, err)
		}
		return
	}

	user := app.currentUser(r)

	eligible, err := app.models.Borrows.HasBorrowed(user.ID, bookID)
	if err != nil {
		app.serverError(w, err)
		return
	}
	if !eligible {
		app.flashError(r, "You can only review books you have borrowed.")
		http.Redirect(w, r, fmt.Sprintf("/books/%d", bookID), http.StatusSeeOther)
		return
	}

	reviewed, err := app.models.Reviews.HasReviewed(user.ID, bookID)
	if err != nil {
		app.serverError(w, err)
		return
	}
	if reviewed {
		app.flashError(r, "You have already reviewed this book.")
		http.Redirect(w, r, fmt.Sprintf("/books/%d", bookID), http.StatusSeeOther)
		return
	}

	td := app.newTemplateData(r)
	td.Book = book
	td.Form = reviewForm{}
	app.render(w, http.StatusOK, "review.html", td)
}

func (app *application) addReviewPost(w http.ResponseWriter, r *http.Request) {
	bookID, ok := pathID(r, "id")
	if !ok {
		app.notFound(w, r)
		return
	}

	err := r.ParseForm()
	if err != nil {
		app.badRequest(w, r)
		return
	}

	rating, _ := strconv.Atoi(r.FormValue("rating"))

	form := reviewForm{
		Rating:    rating,
		Comment:   r.FormValue("comment"),
		Validator: *validator.New(),
	}

	user := app.currentUser(r)

	review := &data.Review{
		UserID:  user.ID,
		BookID:  bookID,
		Rating:  form.Rating,
		Comment: form.Comment,
	}
	data.ValidateReview(&form.Validator, review)

	if !form.Valid() {
		book, err := app.models.Books.Get(bookID)
		if err != nil {
			app.serverError(w, err)
			return
		}
		td := app.newTemplateData(r)
		td.Book = book
		td.Form = form
		app.render(w, http.StatusUnprocessableEntity, "review.html", td)
		return
	}

	err = app.models.Reviews.Insert(review)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrNotEligible):
			app.flashError(r, "You can only review books you have borrowed.")
		case errors.Is(err, data.ErrAlreadyReviewed):
			app.flashError(r, "You have already reviewed this book.")
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFound(w, r)
			return
		default:
			app.serverError(w, err)
			return
		}
	} else {
		app.flashInfo(r, "Your review has been added.")
	}

	http.Redirect(w, r, fmt.Sprintf("/books/%d", bookID), http.StatusSeeOther)
}

// Dashboard handlers

func (app *application) dashboard(w http.ResponseWriter, r *http.Request) {
	td := app.newTemplateData(r)

	totalBooks, err := app.models.Books.Count()
	if err != nil {
		app.serverError(w, err)
		return
	}
	td.TotalBooks = totalBooks

	totalMembers, err := app.models.Users.Count()
	if err != nil {
		app.serverError(w, err)
		return
	}
	td.TotalMembers = totalMembers

	booksBorrowed, err := app.models.Borrows.CountActiveBorrows()
	if err != nil {
		app.serverError(w, err)
		return
	}
	td.BooksBorrowed = booksBorrowed

	overdueBooks, err := app.models.Borrows.CountOverdue()
	if err != nil {
		app.serverError(w, err)
		return
	}
	td.OverdueBooks = overdueBooks

	totalVisits, err := app.models.Visits.Count()
	if err != nil {
		app.serverError(w, err)
		return
	}
	td.TotalVisits = totalVisits

	books, err := app.models.Books.GetAll()
	if err != nil {
		app.serverError(w, err)
		return
	}
	td.Books = books

	members, err := app.models.Users.GetAll()
	if err != nil {
		app.serverError(w, err)
		return
	}
	td.Members = members

	messages, err := app.models.Contact.GetRecent(10)
	if err != nil {
		app.serverError(w, err)
		return
	}
	td.Messages = messages

	td.MaintenanceMode = app.settings.Current().MaintenanceMode

	app.render(w, http.StatusOK, "dashboard.html", td)
}

func (app *application) toggleMaintenance(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		app.badRequest(w, r)
		return
	}

	enabled := r.FormValue("enabled") == "1"

	if _, err := app.settings.SetMaintenanceMode(enabled); err != nil {
		app.serverError(w, err)
		return
	}

	if enabled {
		app.flashInfo(r, "Maintenance mode enabled.")
	} else {
		app.flashInfo(r, "Maintenance mode disabled.")
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

type bookForm struct {
	Title           string
	AuthorID        int64
	CategoryID      int64
	Cover           string
	Description     string
	PublicationYear int
	Pages           int
	Language        string
	TotalCopies     int
	validator.Validator
}

func (app *application) createBook(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		app.badRequest(w, r)
		return
	}

	authorID, _ := strconv.ParseInt(r.FormValue("author_id"), 10, 64)
	categoryID, _ := strconv.ParseInt(r.FormValue("category_id"), 10, 64)
	publicationYear, _ := strconv.Atoi(r.FormValue("publication_year"))
	pages, _ := strconv.Atoi(r.FormValue("pages"))
	totalCopies, _ := strconv.Atoi(r.FormValue("total_copies"))

	form := bookForm{
		Title:           r.FormValue("title"),
		AuthorID:        authorID,
		CategoryID:      categoryID,
		Cover:           r.FormValue("cover"),
		Description:     r.FormValue("description"),
		PublicationYear: publicationYear,
		Pages:           pages,
		Language:        r.FormValue("language"),
		TotalCopies:     totalCopies,
		Validator:       *validator.New(),
	}

	form.Check(validator.NotBlank(form.Title), "title", "must be provided")
	form.Check(form.AuthorID > 0, "author_id", "must be provided")
	form.Check(form.TotalCopies >= 1, "total_copies", "must be at least 1")

	if !form.Valid() {
		app.flashError(r, "Please fill in all required fields correctly.")
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	if form.Language == "" {
		form.Language = "English"
	}

	book := &data.Book{
		Title:           form.Title,
		AuthorID:        form.AuthorID,
		Cover:           form.Cover,
		Description:     form.Description,
		Language:        form.Language,
		TotalCopies:     form.TotalCopies,
		AvailableCopies: form.TotalCopies,
	}
	if form.CategoryID > 0 {
		book.CategoryID = &form.CategoryID
	}
	if form.PublicationYear > 0 {
		book.PublicationYear = &form.PublicationYear
	}
	if form.Pages > 0 {
		book.Pages = &form.Pages
	}

	if err := app.models.Books.Insert(book); err != nil {
		app.serverError(w, err)
		return
	}

	app.flashInfo(r, "Book added successfully.")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (app *application) updateBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		app.notFound(w, r)
		return
	}

	err := r.ParseForm()
	if err != nil {
		app.badRequest(w, r)
		return
	}

	book, err := app.models.Books.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFound(w, r)
		default:
			app.serverError(w, err)
		}
		return
	}

	authorID, _ := strconv.ParseInt(r.FormValue("author_id"), 10, 64)
	categoryID, _ := strconv.ParseInt(r.FormValue("category_id"), 10, 64)
	publicationYear, _ := strconv.Atoi(r.FormValue("publication_year"))
	pages, _ := strconv.Atoi(r.FormValue("pages"))
	totalCopies, _ := strconv.Atoi(r.FormValue("total_copies"))
	availableCopies, _ := strconv.Atoi(r.FormValue("available_copies"))

	book.Title = r.FormValue("title")
	if authorID > 0 {
		book.AuthorID = authorID
	}
	book.CategoryID = nil
	if categoryID > 0 {
		book.CategoryID = &categoryID
	}
	book.Cover = r.FormValue("cover")
	book.Description = r.FormValue("description")
	book.PublicationYear = nil
	if publicationYear > 0 {
		book.PublicationYear = &publicationYear
	}
	book.Pages = nil
	if pages > 0 {
		book.Pages = &pages
	}
	if lang := r.FormValue("language"); lang != "" {
		book.Language = lang
	}
	book.TotalCopies = totalCopies
	book.AvailableCopies = availableCopies

	err = app.models.Books.Update(book)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFound(w, r)
		default:
			app.serverError(w, err)
		}
		return
	}

	app.flashInfo(r, "Book updated successfully.")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (app *application) deleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		app.notFound(w, r)
		return
	}

	err := app.models.Books.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFound(w, r)
		default:
			app.serverError(w, err)
		}
		return
	}

	app.flashInfo(r, "Book deleted successfully.")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (app *application) updateMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		app.notFound(w, r)
		return
	}

	err := r.ParseForm()
	if err != nil {
		app.badRequest(w, r)
		return
	}

	user, err := app.models.Users.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFound(w, r)
		default:
			app.serverError(w, err)
		}
		return
	}

	user.Name = r.FormValue("name")
	user.Email = r.FormValue("email")
	if role := r.FormValue("role"); validator.PermittedValue(role, data.RoleMember, data.RoleStaff) {
		user.Role = role
	}

	err = app.models.Users.Update(user)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFound(w, r)
		case errors.Is(err, data.ErrDuplicateEmail):
			app.flashError(r, "Email address already in use.")
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		default:
			app.serverError(w, err)
		}
		return
	}

	app.flashInfo(r, "Member updated successfully.")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (app *application) deleteMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		app.notFound(w, r)
		return
	}

	// Prevent deleting yourself
	if app.currentUser(r).ID == id {
		app.flashError(r, "You cannot delete your own account.")
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	err := app.models.Users.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFound(w, r)
		default:
			app.serverError(w, err)
		}
		return
	}

	app.flashInfo(r, "Member deleted successfully.")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
