package controllers

import (
	"html/template"
	"net/http"

	"blogicum/app/middleware"
	"blogicum/app/models"
)

// PagesController serves the static informational pages.
type PagesController struct {
	templates map[string]*template.Template
}

// NewPagesController creates a new PagesController
func NewPagesController(basePath string) *PagesController {
	return &PagesController{templates: loadTemplates(basePath)}
}

// About renders the about page
func (p *PagesController) About(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, "about")
}

// Rules renders the rules page
func (p *PagesController) Rules(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, "rules")
}

func (p *PagesController) render(w http.ResponseWriter, r *http.Request, name string) {
	data := struct {
		User *models.User
	}{User: middleware.CurrentUser(r)}
	if err := p.templates[name].ExecuteTemplate(w, "layout", data); err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}
