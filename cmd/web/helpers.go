package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/maktaba/maktaba/internal/data"
)

func (app *application) render(w http.ResponseWriter, status int, page string, data *templateData) {
	ts, ok := app.templateCache[page]
	if !ok {
		err := fmt.Errorf("the template %s does not exist", page)
		app.serverError(w, err)
		return
	}

	w.WriteHeader(status)

	err := ts.ExecuteTemplate(w, "base", data)
	if err != nil {
		app.serverError(w, err)
	}
}

func (app *application) isAuthenticated(r *http.Request) bool {
	isAuthenticated, ok := r.Context().Value(isAuthenticatedContextKey).(bool)
	return ok && isAuthenticated
}

func (app *application) currentUser(r *http.Request) *data.User {
	user, ok := r.Context().Value(userContextKey).(*data.User)
	if !ok {
		return nil
	}
	return user
}

func (app *application) newTemplateData(r *http.Request) *templateData {
	td := &templateData{
		IsAuthenticated: app.isAuthenticated(r),
		DisplayNav:      true,
		FlashInfo:       app.session.PopString(r.Context(), "flash_info"),
		FlashError:      app.session.PopString(r.Context(), "flash_error"),
		User:            app.currentUser(r),
	}
	return td
}

func (app *application) flashInfo(r *http.Request, msg string) {
	app.session.Put(r.Context(), "flash_info", msg)
}

func (app *application) flashError(r *http.Request, msg string) {
	app.session.Put(r.Context(), "flash_error", msg)
}

// pathID parses the {id} segment of the request path; ok is false when the
// value is missing or not a positive integer.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// saveUpload stores an uploaded file under a random name in the upload
// directory and returns the public URL path for it.
func (app *application) saveUpload(file io.Reader, originalName string) (string, error) {
	if err := os.MkdirAll(app.config.UploadDir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + filepath.Ext(originalName)
	dst, err := os.Create(filepath.Join(app.config.UploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}
