// Package http provides helpers for writing JSON responses with a consistent envelope
package http

import (
	"encoding/json"
	"encoding/xml"
	stdhttp "net/http"

	perr "civicline/internal/platform/errors"
	lumnet "civicline/internal/platform/net"
)

// Envelope is the standard response body for all JSON endpoints
type Envelope struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message,omitempty"`
	Code      perr.ErrorCode `json:"code,omitempty"`
	Error     string         `json:"error,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	Data      any            `json:"data,omitempty"`
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// XML writes v as text/xml with the given status.
// Used by gateway webhooks that expect TwiML-style acknowledgments
func XML(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(status)
	_ = xml.NewEncoder(w).Encode(v)
}

//
// Effectful helpers (Respond*) for classic handlers
//

// RespondOK writes a 200 success envelope with data
func RespondOK(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	JSON(w, stdhttp.StatusOK, Envelope{
		Success:   true,
		RequestID: lumnet.RequestID(r.Context()),
		Data:      data,
	})
}

// RespondCreated writes a 201 success envelope with data
func RespondCreated(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	JSON(w, stdhttp.StatusCreated, Envelope{
		Success:   true,
		RequestID: lumnet.RequestID(r.Context()),
		Data:      data,
	})
}

// RespondError maps a project error into an envelope and writes it
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status := perr.HTTPStatus(err)
	JSON(w, status, Envelope{
		Success:   false,
		Code:      perr.CodeOf(err),
		Error:     perr.MessageOf(err),
		RequestID: lumnet.RequestID(r.Context()),
	})
}

//
// Return-style helpers for early returns in handlers
//

// Response is a functional response object for return-style handlers
type Response struct {
	Status  int
	Message string
	Body    any
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
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(stdhttp.StatusNoContent)
		return
	}

	reqID := lumnet.RequestID(r.Context())

	// if Body is an error, derive status from the error before building the envelope
	if err, ok := resp.Body.(error); ok && err != nil {
		status = perr.HTTPStatus(err)
		JSON(w, status, Envelope{
			Success:   false,
			Code:      perr.CodeOf(err),
			Error:     perr.MessageOf(err),
			RequestID: reqID,
		})
		return
	}

	JSON(w, status, Envelope{
		Success:   true,
		Message:   resp.Message,
		RequestID: reqID,
		Data:      resp.Body,
	})
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// OKMsg returns a 200 response with an informational message
func OKMsg(msg string, data any) Response {
	return Response{Status: stdhttp.StatusOK, Message: msg, Body: data}
}

// Created returns a 201 response
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// NoContent returns a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error returns a response that maps the error to status and envelope
func Error(err error) Response { return Response{Body: err} }
