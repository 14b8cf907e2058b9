package net

import (
	"net/http"

	perr "playerpulse/internal/platform/errors"
)

// Detail is the wire shape transports use for error bodies
type Detail struct {
	Detail string `json:"detail"`
}

// Error maps a project error to its status and a detail body
func Error(err error, _ string) (int, Detail) {
	if err == nil {
		return http.StatusOK, Detail{}
	}
	status := perr.HTTPStatus(err)
	w := perr.WireFrom(err)
	return status, Detail{Detail: w.Message}
}
