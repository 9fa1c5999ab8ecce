package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"

	"mindbridge/internal/adapters/http/middleware"
	"mindbridge/internal/application/orchestrators"
	"mindbridge/internal/application/projections"
	postDomain "mindbridge/internal/domain/post"
	sessionDomain "mindbridge/internal/domain/session"
)

// handleStories handles GET (wall) and POST (submit) for /stories
func handleStories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	if r.Method == "GET" {
		query := projections.GetStoriesQuery{
			Category: r.URL.Query().Get("category"),
		}
		if ms, ok := middleware.GetSessionFromContext(ctx); ok {
			query.ViewerID = ms.AccountID
		}
		deps := projections.GetStoriesDeps{
			PostStore: stores.PostStore,
		}

		items, err := projections.QueryGetStories(ctx, query, deps)
		if err != nil {
			internalError(w, err)
			return
		}

		// Staff also see the moderation queue.
		var pending []postDomain.Post
		if middleware.IsStaff(ctx) {
			pending, err = stores.PostStore.ListPending(ctx)
			if err != nil {
				internalError(w, err)
				return
			}
		}

		if isHTML {
			renderTemplate(w, r, "stories.html", map[string]any{
				"Stories":        items,
				"PendingQueue":   pending,
				"CategoryFilter": query.Category,
				"Categories":     postDomain.ValidCategories,
				"CSRFToken":      csrf.Token(r),
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(items)
		return
	}

	if r.Method == "POST" {
		if denyGuard(w, r, sessionDomain.ActionShareStory) {
			return
		}
		ms, _ := middleware.GetSessionFromContext(ctx)

		input := orchestrators.SubmitPostInput{
			AuthorID: ms.AccountID,
			Author:   ms.Username,
		}

		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			input.Title = r.FormValue("Title")
			input.Content = r.FormValue("Content")
			input.Category = r.FormValue("Category")
			input.Anonymous = r.FormValue("Anonymous") == "true" || r.FormValue("Anonymous") == "on"
		} else {
			var body struct {
				Title     string
				Content   string
				Category  string
				Anonymous bool
			}
			if err := strictDecode(r, &body); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			input.Title = body.Title
			input.Content = body.Content
			input.Category = body.Category
			input.Anonymous = body.Anonymous
		}

		deps := orchestrators.SubmitPostDeps{
			PostStore: stores.PostStore,
		}
		if _, err := orchestrators.ExecuteSubmitPost(ctx, input, deps); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if isHTML {
			http.Redirect(w, r, "/stories", http.StatusSeeOther)
		} else {
			w.WriteHeader(http.StatusNoContent)
		}
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleModeratePost handles POST /stories/moderate (staff approve/reject)
func handleModeratePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if denyGuard(w, r, sessionDomain.ActionModeratePost) {
		return
	}

	var input orchestrators.ModeratePostInput
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.PostID = r.FormValue("PostID")
		input.Action = r.FormValue("Action")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	deps := orchestrators.ModeratePostDeps{PostStore: stores.PostStore}
	if err := orchestrators.ExecuteModeratePost(r.Context(), input, deps); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/stories", http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}
