// Package http provides helpers for writing JSON responses with a consistent
// wire contract: success payloads are returned as-is, errors as {"detail": msg}
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "playerpulse/internal/platform/errors"
	lumnet "playerpulse/internal/platform/net"
)

// ErrorBody is the wire shape of every error response
type ErrorBody struct {
	Detail string `json:"detail"`
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONStatus writes only a status with an empty object body
func JSONStatus(w stdhttp.ResponseWriter, status int) {
	JSON(w, status, map[string]any{})
}

//
// Effectful helpers (Respond*) for classic handlers
//

// RespondOK writes data as a 200 response
func RespondOK(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	setRequestID(w, r)
	JSON(w, stdhttp.StatusOK, data)
}

// RespondCreated writes data as a 201 response
func RespondCreated(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	setRequestID(w, r)
	JSON(w, stdhttp.StatusCreated, data)
}

// RespondNoContent writes a 204 with no body
func RespondNoContent(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
	w.WriteHeader(stdhttp.StatusNoContent)
}

// RespondData is an alias for RespondOK
func RespondData(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	RespondOK(w, r, data)
}

// RespondError maps a project error to its status and writes a detail body
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	setRequestID(w, r)
	status := perr.HTTPStatus(err)
	wr := perr.WireFrom(err)
	JSON(w, status, ErrorBody{Detail: wr.Message})
}

// setRequestID surfaces the correlation id as a header since bodies stay flat
func setRequestID(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	if id := lumnet.RequestID(r.Context()); id != "" {
		w.Header().Set("X-Request-Id", id)
	}
}

//
// Return-style helpers for early returns in handlers
//

// Response is a functional response object for return-style handlers
type Response struct {
	Status int
	Body   any
	// optional headers if a handler wants to add any
	Header stdhttp.Header
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	// allow header overrides
	if resp.Header != nil {
		for k, vv := range resp.Header {
			for _, v := range vv {
				w.Header().Add(k, v)
			}
		}
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(stdhttp.StatusNoContent)
		return
	}

	setRequestID(w, r)

	// if Body is an error, derive status from the error before writing
	if err, ok := resp.Body.(error); ok && err != nil {
		status = perr.HTTPStatus(err)
		wr := perr.WireFrom(err)
		JSON(w, status, ErrorBody{Detail: wr.Message})
		return
	}

	JSON(w, status, resp.Body)
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created returns a 201 response
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// NoContent returns a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Data is an alias for OK
func Data(v any) Response { return OK(v) }

// Error returns a response that maps the error to status and a detail body
func Error(err error) Response { return Response{Body: err} }
