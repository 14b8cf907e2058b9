package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
)

// Param returns the named URL path parameter for the current route
func Param(r *stdhttp.Request, name string) string {
	return chi.URLParam(r, name)
}
