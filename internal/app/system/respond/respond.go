// Package respond writes the JSON bodies shared by every feature handler.
//
// Success bodies carry the entity under "data" and an optional flash
// "message". Error bodies carry a "message" and, for validation failures,
// an "errors" object keyed by field name.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/mutuhub/internal/app/system/inputval"
	"github.com/dalemusser/mutuhub/internal/app/system/limits"
	"go.uber.org/zap"
)

// Body is the envelope of every JSON response.
type Body struct {
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Meta    any               `json:"meta,omitempty"`
}

// JSON writes body with the given status.
func JSON(w http.ResponseWriter, status int, body Body) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// OK writes 200 with data.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Body{Data: data})
}

// List writes 200 with rows and paging metadata.
func List(w http.ResponseWriter, rows any, meta any) {
	JSON(w, http.StatusOK, Body{Data: rows, Meta: meta})
}

// Created writes 201 with data and a flash message.
func Created(w http.ResponseWriter, msg string, data any) {
	JSON(w, http.StatusCreated, Body{Message: msg, Data: data})
}

// Flash writes 200 with a flash message and optional data.
func Flash(w http.ResponseWriter, msg string, data any) {
	JSON(w, http.StatusOK, Body{Message: msg, Data: data})
}

// Validation writes 422 with per-field errors from an inputval.Result.
func Validation(w http.ResponseWriter, res *inputval.Result) {
	JSON(w, http.StatusUnprocessableEntity, Body{
		Message: res.First(),
		Errors:  res.Fields(),
	})
}

// ValidationField writes 422 for a single field.
func ValidationField(w http.ResponseWriter, field, msg string) {
	JSON(w, http.StatusUnprocessableEntity, Body{
		Message: msg,
		Errors:  map[string]string{field: msg},
	})
}

// BadRequest writes 400 (malformed body or path parameter).
func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, Body{Message: msg})
}

// Unauthorized writes 401.
func Unauthorized(w http.ResponseWriter) {
	JSON(w, http.StatusUnauthorized, Body{Message: "Please sign in to continue."})
}

// Forbidden writes 403.
func Forbidden(w http.ResponseWriter) {
	JSON(w, http.StatusForbidden, Body{Message: "You don't have permission to do that."})
}

// NotFound writes 404. Ownership mismatches use this too so existence of
// records under another parent is not revealed.
func NotFound(w http.ResponseWriter, what string) {
	JSON(w, http.StatusNotFound, Body{Message: what + " not found."})
}

// Conflict writes 409 (delete rejected because dependants exist).
func Conflict(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusConflict, Body{Message: msg})
}

// TooMany writes 429.
func TooMany(w http.ResponseWriter) {
	JSON(w, http.StatusTooManyRequests, Body{Message: "Too many attempts. Please wait and try again."})
}

// ServerError logs err and writes a generic 500.
func ServerError(w http.ResponseWriter, r *http.Request, log *zap.Logger, msg string, err error) {
	if log != nil {
		log.Error(msg, zap.Error(err), zap.String("method", r.Method), zap.String("path", r.URL.Path))
	}
	JSON(w, http.StatusInternalServerError, Body{Message: "Something went wrong. Please try again."})
}

// Decode reads a JSON body into dst, rejecting unknown fields and bodies
// larger than limits.MaxJSONBody.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, limits.MaxJSONBody))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
