package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

func createRouter(h *Handler, logger *logrus.Logger) http.Handler {
	router := mux.NewRouter()
	router.StrictSlash(true)

	router.HandleFunc("/", h.showPage).Methods(http.MethodGet)
	router.HandleFunc("/healthz", h.healthz).Methods(http.MethodGet)
	router.HandleFunc("/repositories", h.getRepositories).Methods(http.MethodGet)
	router.HandleFunc("/repositories/{name}/commits", h.getCommits).Methods(http.MethodGet)

	return Use(router.ServeHTTP, RecoverAndLog(logger))
}
