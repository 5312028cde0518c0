package controllers

import (
	"html/template"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"blogicum/app/middleware"
	"blogicum/app/models"
	"blogicum/app/services"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const maxUploadBytes = 10 << 20

// PostController handles the index feed, category feeds and all post
// pages.
type PostController struct {
	postService *services.PostService
	feedService *services.FeedService
	templates   map[string]*template.Template
	mediaDir    string
	now         func() time.Time
}

// NewPostController creates a new PostController. basePath locates the
// view templates, mediaDir is where uploaded images are stored and now
// supplies the clock (tests pin it).
func NewPostController(postService *services.PostService, feedService *services.FeedService, basePath, mediaDir string, now func() time.Time) *PostController {
	if now == nil {
		now = time.Now
	}
	return &PostController{
		postService: postService,
		feedService: feedService,
		templates:   loadTemplates(basePath),
		mediaDir:    mediaDir,
		now:         now,
	}
}

// Index renders the public feed, paginated.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	page, err := pc.feedService.PublicFeed(pc.now(), pageNumber(r))
	if err != nil {
		http.Error(w, "Failed to fetch posts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	data := struct {
		Page *services.Page
		User *models.User
	}{
		Page: page,
		User: middleware.CurrentUser(r),
	}
	if err := pc.templates["index"].ExecuteTemplate(w, "layout", data); err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// Category renders the feed of a published category.
func (pc *PostController) Category(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	category, page, err := pc.feedService.CategoryFeed(slug, pc.now(), pageNumber(r))
	if err != nil {
		if isNotFound(err) {
			notFound(w)
			return
		}
		http.Error(w, "Failed to fetch posts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	data := struct {
		Category *models.Category
		Page     *services.Page
		User     *models.User
	}{
		Category: category,
		Page:     page,
		User:     middleware.CurrentUser(r),
	}
	if err := pc.templates["category"].ExecuteTemplate(w, "layout", data); err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// Detail renders a single post with its comments and the comment form.
// A post the viewer may not see is a plain 404.
func (pc *PostController) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		notFound(w)
		return
	}

	viewer := middleware.CurrentUser(r)
	post, err := pc.postService.GetPostForViewer(id, viewer, pc.now())
	if err != nil {
		if isNotFound(err) {
			notFound(w)
			return
		}
		http.Error(w, "Failed to fetch post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	data := detailData{
		Post:       post,
		User:       viewer,
		CanEdit:    models.CanEditPost(viewer, post),
		CanComment: models.CanCommentOnPost(viewer, post),
	}
	if err := pc.templates["detail"].ExecuteTemplate(w, "layout", data); err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

type detailData struct {
	Post       *models.Post
	User       *models.User
	CanEdit    bool
	CanComment bool
}

// Create shows the post form and handles its submission. Requires an
// authenticated user; the author is always the current user.
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.CurrentUser(r)

	if r.Method == http.MethodGet {
		pc.renderPostForm(w, r, &models.Post{PubDate: pc.now()}, nil)
		return
	}

	post, err := pc.postFromForm(r)
	if err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	post.AuthorID = viewer.ID

	if err := pc.postService.CreatePost(post); err != nil {
		pc.renderPostForm(w, r, post, formErrors(err))
		return
	}
	http.Redirect(w, r, "/profile/"+viewer.Username+"/", http.StatusSeeOther)
}

// Edit shows the edit form for a post and handles its submission. A
// non-author is redirected to the read-only detail view rather than
// shown an error.
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		notFound(w)
		return
	}

	post, err := pc.postService.GetPost(id)
	if err != nil {
		if isNotFound(err) {
			notFound(w)
			return
		}
		http.Error(w, "Failed to fetch post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	viewer := middleware.CurrentUser(r)
	if !models.CanEditPost(viewer, post) {
		http.Redirect(w, r, "/posts/"+strconv.Itoa(id)+"/", http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodGet {
		pc.renderPostForm(w, r, post, nil)
		return
	}

	updated, err := pc.postFromForm(r)
	if err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	updated.ID = post.ID

	if err := pc.postService.UpdatePost(updated); err != nil {
		pc.renderPostForm(w, r, updated, formErrors(err))
		return
	}
	http.Redirect(w, r, "/posts/"+strconv.Itoa(id)+"/", http.StatusSeeOther)
}

// Delete shows the delete confirmation and handles the deletion.
// Ownership is folded into the lookup: a non-author gets a 404, not a
// forbidden page.
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		notFound(w)
		return
	}

	viewer := middleware.CurrentUser(r)

	if r.Method == http.MethodGet {
		post, err := pc.postService.GetOwnedPost(id, viewer)
		if err != nil {
			if isNotFound(err) {
				notFound(w)
				return
			}
			http.Error(w, "Failed to fetch post: "+err.Error(), http.StatusInternalServerError)
			return
		}
		data := struct {
			Post *models.Post
			User *models.User
		}{Post: post, User: viewer}
		if err := pc.templates["post_confirm_delete"].ExecuteTemplate(w, "layout", data); err != nil {
			http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if err := pc.postService.DeletePost(id, viewer); err != nil {
		if isNotFound(err) {
			notFound(w)
			return
		}
		http.Error(w, "Failed to delete post: "+err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// renderPostForm renders the create/edit form, optionally with
// validation messages and the submitted values for correction.
func (pc *PostController) renderPostForm(w http.ResponseWriter, r *http.Request, post *models.Post, errs []string) {
	categories, err := pc.postService.Categories()
	if err != nil {
		http.Error(w, "Failed to load categories: "+err.Error(), http.StatusInternalServerError)
		return
	}
	locations, err := pc.postService.Locations()
	if err != nil {
		http.Error(w, "Failed to load locations: "+err.Error(), http.StatusInternalServerError)
		return
	}

	data := struct {
		Post       *models.Post
		Categories []*models.Category
		Locations  []*models.Location
		Errors     []string
		User       *models.User
	}{
		Post:       post,
		Categories: categories,
		Locations:  locations,
		Errors:     errs,
		User:       middleware.CurrentUser(r),
	}
	if err := pc.templates["post_form"].ExecuteTemplate(w, "layout", data); err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// postFromForm builds a post from the submitted form fields, saving an
// uploaded image if one was attached.
func (pc *PostController) postFromForm(r *http.Request) (*models.Post, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
	}

	post := &models.Post{
		Title:       r.FormValue("title"),
		Text:        r.FormValue("text"),
		IsPublished: r.FormValue("is_published") != "",
	}

	if v := r.FormValue("pub_date"); v != "" {
		pubDate, err := parsePubDate(v)
		if err != nil {
			return nil, err
		}
		post.PubDate = pubDate
	} else {
		post.PubDate = pc.now()
	}

	if v := r.FormValue("category"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		post.CategoryID = id
	}
	if v := r.FormValue("location"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		post.LocationID = id
	}

	image, err := pc.saveUpload(r)
	if err != nil {
		return nil, err
	}
	post.Image = image

	return post, nil
}

// parsePubDate accepts the datetime-local input format with a
// date-only fallback.
func parsePubDate(v string) (time.Time, error) {
	var t time.Time
	var err error
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"} {
		if t, err = time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// saveUpload stores the optional image upload under the media dir and
// returns the stored filename, or "" when no file was sent.
func (pc *PostController) saveUpload(r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile || r.MultipartForm == nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := os.MkdirAll(pc.mediaDir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join(pc.mediaDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return name, nil
}
