package controllers

import (
	"errors"
	"html/template"
	"net/http"
	"path/filepath"
	"strconv"

	"blogicum/app/repositories"

	"github.com/go-playground/validator/v10"
)

// loadTemplates loads and parses all templates
func loadTemplates(basePath string) map[string]*template.Template {
	views := filepath.Join(basePath, "app/views")
	parse := func(files ...string) *template.Template {
		paths := make([]string, 0, len(files)+1)
		paths = append(paths, filepath.Join(views, "layout.html"))
		for _, f := range files {
			paths = append(paths, filepath.Join(views, f))
		}
		return template.Must(template.ParseFiles(paths...))
	}

	templates := make(map[string]*template.Template)
	templates["index"] = parse("posts/index.html")
	templates["category"] = parse("posts/category.html")
	templates["detail"] = parse("posts/detail.html")
	templates["post_form"] = parse("posts/form.html")
	templates["post_confirm_delete"] = parse("posts/confirm_delete.html")
	templates["comment_form"] = parse("comments/form.html")
	templates["registration"] = parse("users/registration_form.html")
	templates["login"] = parse("users/login.html")
	templates["profile"] = parse("users/profile.html")
	templates["about"] = parse("pages/about.html")
	templates["rules"] = parse("pages/rules.html")
	return templates
}

// pageNumber reads the 1-based ?page= parameter, defaulting to 1.
// Range clamping happens in the feed service.
func pageNumber(r *http.Request) int {
	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	return page
}

// notFound renders the not-found response. Policy violations that are
// folded into lookups end up here too, indistinguishable from a
// missing record.
func notFound(w http.ResponseWriter) {
	http.Error(w, "Page not found", http.StatusNotFound)
}

// isNotFound reports whether err means the record is absent or hidden
func isNotFound(err error) bool {
	return errors.Is(err, repositories.ErrNotFound)
}

// formErrors flattens a validation error into human-readable messages
// for redisplaying a form.
func formErrors(err error) []string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				msgs = append(msgs, fe.Field()+" is required")
			case "email":
				msgs = append(msgs, fe.Field()+" must be a valid email address")
			case "min":
				msgs = append(msgs, fe.Field()+" is too short")
			case "max":
				msgs = append(msgs, fe.Field()+" is too long")
			default:
				msgs = append(msgs, fe.Field()+" is invalid")
			}
		}
		return msgs
	}
	return []string{err.Error()}
}
