package handlers

import (
	"net/http"
)

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	missing := a.MissingCredentials
	if missing == nil {
		missing = []string{}
	}
	a.json(w, http.StatusOK, map[string]any{"status": "ok", "missing_credentials": missing})
}
