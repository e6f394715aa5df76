package main

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/maktaba/maktaba/internal/data"
)

func (app *application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID := app.session.GetInt64(ctx, "authenticatedUserID")
		if userID == 0 {
			ctx = context.WithValue(ctx, isAuthenticatedContextKey, false)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		user, err := app.models.Users.Get(userID)
		if err != nil {
			// stale / invalid session → logout silently
			app.session.Remove(ctx, "authenticatedUserID")
			ctx = context.WithValue(ctx, isAuthenticatedContextKey, false)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		ctx = context.WithValue(ctx, isAuthenticatedContextKey, true)
		ctx = context.WithValue(ctx, userContextKey, user)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *application) requireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		isAuthenticated, ok := r.Context().Value(isAuthenticatedContextKey).(bool)
		if !ok || !isAuthenticated {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (app *application) requireNoAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		isAuthenticated, ok := r.Context().Value(isAuthenticatedContextKey).(bool)
		if ok && isAuthenticated {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireStaff hides staff pages from members: non-staff get a 404, not a
// 403, so the dashboard paths don't advertise themselves.
func (app *application) requireStaff(next http.Handler) http.Handler {
	return app.requireAuthentication(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value(userContextKey).(*data.User)
		if !ok || !user.IsStaff() {
			app.notFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func isAssetPath(path string) bool {
	return strings.HasPrefix(path, "/static/") ||
		strings.HasPrefix(path, "/uploads/") ||
		path == "/metrics" ||
		path == "/favicon.ico"
}

// logVisit records every page view for the dashboard's analytics counter.
// A failed insert is logged and the request proceeds normally.
func (app *application) logVisit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)

		if isAssetPath(r.URL.Path) {
			return
		}

		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		visit := &data.Visit{
			Path:      r.URL.Path,
			Method:    r.Method,
			IPAddress: ip,
		}
		if err := app.models.Visits.Insert(visit); err != nil {
			app.logger.PrintError(err)
		}
	})
}

// maintenanceMode serves a 503 page to members and visitors while the flag
// is set. Login, static assets, and metrics stay reachable so staff can
// get in and turn it off. Reads the in-process settings cache only.
func (app *application) maintenanceMode(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !app.settings.Current().MaintenanceMode {
			next.ServeHTTP(w, r)
			return
		}

		if isAssetPath(r.URL.Path) || r.URL.Path == "/login" {
			next.ServeHTTP(w, r)
			return
		}

		if user := app.currentUser(r); user != nil && user.IsStaff() {
			next.ServeHTTP(w, r)
			return
		}

		app.maintenance(w, r)
	})
}
