package main

import (
	"net/http"

	"github.com/0xrinful/rush"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maktaba/maktaba/ui"
)

func (app *application) routes() http.Handler {
	r := rush.New()
	r.NotFound = http.HandlerFunc(app.notFound)

	fileServer := http.FileServer(http.FS(ui.Files))
	r.Handle("/static/*", fileServer, "GET")

	uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(app.config.UploadDir)))
	r.Handle("/uploads/*", uploads, "GET")

	r.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}), "GET")

	r.Get("/", app.home)
	r.Get("/books", app.listBooks)
	r.Get("/books/{id}", app.displayBook)
	r.Get("/categories", app.listCategories)
	r.Get("/categories/{id}", app.displayCategory)
	r.Get("/authors", app.listAuthors)
	r.Get("/authors/{id}", app.displayAuthor)

	r.Get("/contact", app.contact)
	r.Post("/contact", app.contactPost)

	r.Handle("/signup", app.requireNoAuthentication(http.HandlerFunc(app.signup)), "GET")
	r.Handle("/signup", app.requireNoAuthentication(http.HandlerFunc(app.signupPost)), "POST")
	r.Handle("/login", app.requireNoAuthentication(http.HandlerFunc(app.login)), "GET")
	r.Handle("/login", app.requireNoAuthentication(http.HandlerFunc(app.loginPost)), "POST")
	r.Post("/logout", app.logout)

	r.Handle("/profile", app.requireAuthentication(http.HandlerFunc(app.profile)), "GET")
	r.Handle("/profile/edit", app.requireAuthentication(http.HandlerFunc(app.editProfile)), "GET")
	r.Handle("/profile/edit", app.requireAuthentication(http.HandlerFunc(app.editProfilePost)), "POST")

	r.Handle("/my-books", app.requireAuthentication(http.HandlerFunc(app.myBooks)), "GET")
	r.Handle("/borrow/{id}", app.requireAuthentication(http.HandlerFunc(app.borrowBook)), "POST")
	r.Handle("/return/{id}", app.requireAuthentication(http.HandlerFunc(app.returnBook)), "POST")

	r.Handle("/books/{id}/review", app.requireAuthentication(http.HandlerFunc(app.addReview)), "GET")
	r.Handle("/books/{id}/review", app.requireAuthentication(http.HandlerFunc(app.addReviewPost)), "POST")

	r.Handle("/dashboard", app.requireStaff(http.HandlerFunc(app.dashboard)), "GET")
	r.Handle("/dashboard/maintenance", app.requireStaff(http.HandlerFunc(app.toggleMaintenance)), "POST")
	r.Handle("/dashboard/books", app.requireStaff(http.HandlerFunc(app.createBook)), "POST")
	r.Handle("/dashboard/books/{id}", app.requireStaff(http.HandlerFunc(app.updateBook)), "POST")
	r.Handle("/dashboard/books/{id}/delete", app.requireStaff(http.HandlerFunc(app.deleteBook)), "POST")
	r.Handle("/dashboard/members/{id}", app.requireStaff(http.HandlerFunc(app.updateMember)), "POST")
	r.Handle("/dashboard/members/{id}/delete", app.requireStaff(http.HandlerFunc(app.deleteMember)), "POST")

	handler := app.maintenanceMode(r)
	handler = app.logVisit(handler)
	handler = app.authenticate(handler)
	handler = app.session.LoadAndSave(handler)
	return app.measureRequests(handler)
}
