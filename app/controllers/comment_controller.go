package controllers

import (
	"html/template"
	"net/http"
	"strconv"

	"blogicum/app/middleware"
	"blogicum/app/models"
	"blogicum/app/services"

	"github.com/gorilla/mux"
)

// CommentController handles adding, editing and deleting comments.
// All three routes require login; ownership violations surface as 404
// because the service folds them into the lookups.
type CommentController struct {
	commentService *services.CommentService
	templates      map[string]*template.Template
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService, basePath string) *CommentController {
	return &CommentController{
		commentService: commentService,
		templates:      loadTemplates(basePath),
	}
}

// Add shows the comment form and handles its submission.
func (cc *CommentController) Add(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		notFound(w)
		return
	}

	post, err := cc.commentService.GetPublishedPost(postID)
	if err != nil {
		if isNotFound(err) {
			notFound(w)
			return
		}
		http.Error(w, "Failed to fetch post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	viewer := middleware.CurrentUser(r)

	if r.Method == http.MethodGet {
		cc.renderForm(w, post, nil, viewer, nil)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := cc.commentService.AddComment(postID, viewer, r.FormValue("text")); err != nil {
		if isNotFound(err) {
			notFound(w)
			return
		}
		cc.renderForm(w, post, nil, viewer, formErrors(err))
		return
	}
	http.Redirect(w, r, "/posts/"+strconv.Itoa(postID)+"/", http.StatusSeeOther)
}

// Edit shows the edit form for the viewer's own comment and handles
// its submission.
func (cc *CommentController) Edit(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID, err := strconv.Atoi(vars["id"])
	if err != nil {
		notFound(w)
		return
	}
	commentID, err := strconv.Atoi(vars["cid"])
	if err != nil {
		notFound(w)
		return
	}

	post, err := cc.commentService.GetPublishedPost(postID)
	if err != nil {
		if isNotFound(err) {
			notFound(w)
			return
		}
		http.Error(w, "Failed to fetch post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	viewer := middleware.CurrentUser(r)
	comment, err := cc.commentService.GetOwnedComment(postID, commentID, viewer)
	if err != nil {
		if isNotFound(err) {
			notFound(w)
			return
		}
		http.Error(w, "Failed to fetch comment: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Method == http.MethodGet {
		cc.renderForm(w, post, comment, viewer, nil)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := cc.commentService.EditComment(postID, commentID, viewer, r.FormValue("text")); err != nil {
		if isNotFound(err) {
			notFound(w)
			return
		}
		cc.renderForm(w, post, comment, viewer, formErrors(err))
		return
	}
	http.Redirect(w, r, "/posts/"+strconv.Itoa(postID)+"/", http.StatusSeeOther)
}

// Delete shows the delete confirmation for the viewer's own comment
// and handles the deletion.
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID, err := strconv.Atoi(vars["id"])
	if err != nil {
		notFound(w)
		return
	}
	commentID, err := strconv.Atoi(vars["cid"])
	if err != nil {
		notFound(w)
		return
	}

	viewer := middleware.CurrentUser(r)

	if r.Method == http.MethodGet {
		comment, err := cc.commentService.GetOwnedComment(postID, commentID, viewer)
		if err != nil {
			if isNotFound(err) {
				notFound(w)
				return
			}
			http.Error(w, "Failed to fetch comment: "+err.Error(), http.StatusInternalServerError)
			return
		}
		post, err := cc.commentService.GetPublishedPost(postID)
		if err != nil {
			if isNotFound(err) {
				notFound(w)
				return
			}
			http.Error(w, "Failed to fetch post: "+err.Error(), http.StatusInternalServerError)
			return
		}
		cc.renderForm(w, post, comment, viewer, nil)
		return
	}

	if err := cc.commentService.DeleteComment(postID, commentID, viewer); err != nil {
		if isNotFound(err) {
			notFound(w)
			return
		}
		http.Error(w, "Failed to delete comment: "+err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/posts/"+strconv.Itoa(postID)+"/", http.StatusSeeOther)
}

func (cc *CommentController) renderForm(w http.ResponseWriter, post *models.Post, comment *models.Comment, viewer *models.User, errs []string) {
	data := struct {
		Post    *models.Post
		Comment *models.Comment
		User    *models.User
		Errors  []string
	}{
		Post:    post,
		Comment: comment,
		User:    viewer,
		Errors:  errs,
	}
	if err := cc.templates["comment_form"].ExecuteTemplate(w, "layout", data); err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}
