package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"

	"mindbridge/internal/application/orchestrators"
	"mindbridge/internal/application/projections"
	libraryDomain "mindbridge/internal/domain/library"
	sessionDomain "mindbridge/internal/domain/session"
)

// handleLibrary handles GET (browse/search) and POST (add resource) for /library
func handleLibrary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	if r.Method == "GET" {
		query := projections.GetLibraryQuery{
			Category: r.URL.Query().Get("category"),
			Search:   r.URL.Query().Get("q"),
		}
		deps := projections.GetLibraryDeps{
			BookStore: stores.BookStore,
		}

		books, err := projections.QueryGetLibrary(ctx, query, deps)
		if err != nil {
			internalError(w, err)
			return
		}

		if isHTML {
			renderTemplate(w, r, "library.html", map[string]any{
				"Books":          books,
				"CategoryFilter": query.Category,
				"Search":         query.Search,
				"Categories":     libraryDomain.ValidCategories,
				"CSRFToken":      csrf.Token(r),
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(books)
		return
	}

	if r.Method == "POST" {
		if denyGuard(w, r, sessionDomain.ActionAddResource) {
			return
		}

		var input orchestrators.AddBookInput

		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			input.Title = r.FormValue("Title")
			input.Author = r.FormValue("Author")
			input.Description = r.FormValue("Description")
			input.Category = r.FormValue("Category")
			input.CoverImageURL = r.FormValue("CoverImageURL")
			input.PDFURL = r.FormValue("PDFURL")
			input.ExternalLink = r.FormValue("ExternalLink")
			input.ISBN = r.FormValue("ISBN")
			if v := r.FormValue("PublishedYear"); v != "" {
				if n, err := strconv.Atoi(v); err == nil {
					input.PublishedYear = n
				}
			}
		} else {
			if err := strictDecode(r, &input); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
		}

		deps := orchestrators.AddBookDeps{
			BookStore: stores.BookStore,
		}
		if _, err := orchestrators.ExecuteAddBook(ctx, input, deps); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if isHTML {
			http.Redirect(w, r, "/library", http.StatusSeeOther)
		} else {
			w.WriteHeader(http.StatusNoContent)
		}
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}
