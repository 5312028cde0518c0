package controllers

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"blogicum/app/middleware"
	"blogicum/app/models"
	"blogicum/app/repositories"
	"blogicum/app/services"

	"github.com/gorilla/mux"
)

// UserController handles registration, login, profiles and profile
// editing.
type UserController struct {
	userService    *services.UserService
	sessionService *services.SessionService
	feedService    *services.FeedService
	templates      map[string]*template.Template
	now            func() time.Time
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, sessionService *services.SessionService, feedService *services.FeedService, basePath string, now func() time.Time) *UserController {
	if now == nil {
		now = time.Now
	}
	return &UserController{
		userService:    userService,
		sessionService: sessionService,
		feedService:    feedService,
		templates:      loadTemplates(basePath),
		now:            now,
	}
}

// Register shows the registration form and creates the user. Success
// redirects to the login page; there is no email verification step.
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		uc.renderUserForm(w, "Registration", &models.User{}, nil)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	user := &models.User{
		Username:  r.FormValue("username"),
		Email:     r.FormValue("email"),
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
	}

	password := r.FormValue("password1")
	if password != r.FormValue("password2") {
		uc.renderUserForm(w, "Registration", user, []string{"passwords do not match"})
		return
	}

	_, err := uc.userService.Register(user.Username, user.Email, user.FirstName, user.LastName, password)
	if err != nil {
		if errors.Is(err, repositories.ErrUsernameTaken) {
			uc.renderUserForm(w, "Registration", user, []string{"username already taken"})
			return
		}
		uc.renderUserForm(w, "Registration", user, formErrors(err))
		return
	}
	http.Redirect(w, r, "/login/", http.StatusSeeOther)
}

// Login shows the login form and opens a session on success.
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		data := struct {
			User   *models.User
			Errors []string
		}{User: middleware.CurrentUser(r)}
		if err := uc.templates["login"].ExecuteTemplate(w, "layout", data); err != nil {
			http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := uc.userService.Authenticate(r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			data := struct {
				User   *models.User
				Errors []string
			}{Errors: []string{err.Error()}}
			if err := uc.templates["login"].ExecuteTemplate(w, "layout", data); err != nil {
				http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
			}
			return
		}
		http.Error(w, "Login failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	session, err := uc.sessionService.Start(user)
	if err != nil {
		http.Error(w, "Could not create session: "+err.Error(), http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout ends the session and clears the cookie.
func (uc *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		uc.sessionService.End(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Profile renders a user's profile feed. The owner sees all their
// posts; everyone else sees only the live subset.
func (uc *UserController) Profile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	profile, err := uc.userService.GetByUsername(username)
	if err != nil {
		if isNotFound(err) {
			notFound(w)
			return
		}
		http.Error(w, "Failed to fetch profile: "+err.Error(), http.StatusInternalServerError)
		return
	}

	viewer := middleware.CurrentUser(r)
	page, err := uc.feedService.ProfileFeed(profile, viewer, uc.now(), pageNumber(r))
	if err != nil {
		http.Error(w, "Failed to fetch posts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	data := struct {
		Profile *models.User
		Page    *services.Page
		User    *models.User
		IsOwner bool
	}{
		Profile: profile,
		Page:    page,
		User:    viewer,
		IsOwner: viewer != nil && viewer.ID == profile.ID,
	}
	if err := uc.templates["profile"].ExecuteTemplate(w, "layout", data); err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// EditProfile shows and saves the current user's profile form.
func (uc *UserController) EditProfile(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.CurrentUser(r)

	if r.Method == http.MethodGet {
		uc.renderUserForm(w, "Edit profile", viewer, nil)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	updated := &models.User{
		ID:        viewer.ID,
		Username:  r.FormValue("username"),
		Email:     r.FormValue("email"),
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
	}
	if err := uc.userService.UpdateProfile(updated); err != nil {
		if errors.Is(err, repositories.ErrUsernameTaken) {
			uc.renderUserForm(w, "Edit profile", updated, []string{"username already taken"})
			return
		}
		uc.renderUserForm(w, "Edit profile", updated, formErrors(err))
		return
	}
	http.Redirect(w, r, "/profile/"+updated.Username+"/", http.StatusSeeOther)
}

// ProfileRedirect sends the current user to their own profile.
func (uc *UserController) ProfileRedirect(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.CurrentUser(r)
	http.Redirect(w, r, "/profile/"+viewer.Username+"/", http.StatusSeeOther)
}

func (uc *UserController) renderUserForm(w http.ResponseWriter, title string, user *models.User, errs []string) {
	data := struct {
		Title  string
		Form   *models.User
		User   *models.User
		Errors []string
	}{
		Title:  title,
		Form:   user,
		Errors: errs,
	}
	if err := uc.templates["registration"].ExecuteTemplate(w, "layout", data); err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}
