package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/repo-browser/internal/render"
	"github.com/naka-gawa/repo-browser/internal/usecase"
)

const contentTypeHTML = "text/html; charset=utf-8"

// Handler manages HTTP requests for the browser.
type Handler struct {
	browser  *usecase.Browser
	renderer *render.Renderer
	logger   *logrus.Logger
}

// NewHandler creates a new Handler.
func NewHandler(browser *usecase.Browser, renderer *render.Renderer, logger *logrus.Logger) *Handler {
	return &Handler{
		browser:  browser,
		renderer: renderer,
		logger:   logger,
	}
}

// showPage renders the page shell. With ?repo= both regions are prerendered;
// if that fails the bare shell is served and the client loads the regions.
func (h *Handler) showPage(w http.ResponseWriter, r *http.Request) {
	data := render.PageData{User: h.browser.User()}
	if repo := r.URL.Query().Get("repo"); repo != "" {
		page, err := h.browser.Page(r.Context(), repo)
		if err != nil {
			h.logger.WithError(err).WithField("repo", repo).Error("Serving page without prerendered regions")
		}
		data.Page = page
	}

	var buf bytes.Buffer
	if err := h.renderer.Page(&buf, data); err != nil {
		h.logger.WithError(err).Error("Failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.writeHTML(w, r, buf.Bytes())
}

// getRepositories answers the repository list fragment.
func (h *Handler) getRepositories(w http.ResponseWriter, r *http.Request) {
	repos, err := h.browser.Repositories(r.Context())
	if err != nil {
		h.leaveRegion(w, err, logrus.Fields{"region": "repositories"})
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.RepositoryList(&buf, repos); err != nil {
		h.leaveRegion(w, err, logrus.Fields{"region": "repositories"})
		return
	}
	h.writeHTML(w, r, buf.Bytes())
}

// getCommits answers the commit list fragment of the {name} repository.
func (h *Handler) getCommits(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	fields := logrus.Fields{"region": "commits", "repo": name}

	commits, err := h.browser.Commits(r.Context(), name)
	if err != nil {
		h.leaveRegion(w, err, fields)
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.CommitList(&buf, commits); err != nil {
		h.leaveRegion(w, err, fields)
		return
	}
	h.writeHTML(w, r, buf.Bytes())
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		h.logger.WithError(err).Error("Failed to encode JSON response")
	}
}

// leaveRegion logs err and answers 204 so the client keeps the region as is.
// The error never reaches the user.
func (h *Handler) leaveRegion(w http.ResponseWriter, err error, fields logrus.Fields) {
	h.logger.WithError(err).WithFields(fields).Error("Fragment not rendered")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeHTML(w http.ResponseWriter, r *http.Request, body []byte) {
	w.Header().Set("Content-Type", contentTypeHTML)
	if _, err := w.Write(body); err != nil {
		h.logger.WithError(err).WithField("path", r.URL.Path).Warn("Failed to write response")
	}
}
