package server

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// Use stacks middleware around handler; the last one listed runs first.
func Use(handler http.HandlerFunc, mid ...func(http.Handler) http.HandlerFunc) http.HandlerFunc {
	for _, m := range mid {
		handler = m(handler)
	}
	return handler
}

// RecoverAndLog turns a panic in handler into a logged 500.
func RecoverAndLog(logger *logrus.Logger) func(http.Handler) http.HandlerFunc {
	return func(handler http.Handler) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.WithField("path", r.URL.Path).Errorf("Panic occurred in HTTP handler: %v", rec)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()
			handler.ServeHTTP(w, r)
		}
	}
}
