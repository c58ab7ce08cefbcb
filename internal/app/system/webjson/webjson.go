// Package webjson holds the JSON request/response conventions shared by
// every API feature: body decoding with a size cap, a uniform error
// envelope, and the mapping from domain error kinds to HTTP statuses.
package webjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/advocateworks/lexhub/internal/domain/errs"
	"go.uber.org/zap"
)

// maxBodyBytes caps JSON request bodies. Document metadata and case
// round-trips are small; anything bigger is a client bug.
const maxBodyBytes = 1 << 20

// errorBody is the uniform error envelope.
type errorBody struct {
	Error string `json:"error"`
}

// Decode reads a JSON body into v. It returns a KindValidation error for
// malformed or oversized bodies so handlers can pass it straight to
// RespondError.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errs.Validation("request body is empty")
		}
		return errs.Validation("invalid JSON body: %v", err)
	}
	return nil
}

// Respond writes v as JSON with the given status.
func Respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the error envelope with the given status and message.
func Error(w http.ResponseWriter, status int, msg string) {
	Respond(w, status, errorBody{Error: msg})
}

// StatusFor maps a domain error kind to an HTTP status. Unknown errors
// map to 500 so storage-engine details never leak to callers.
func StatusFor(err error) int {
	switch errs.KindOf(err) {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict:
		return http.StatusConflict
	case errs.KindCascadeIncomplete:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// RespondError maps err to a status and writes the envelope. Tagged
// domain errors keep their message; everything else is logged and
// replaced with a generic message.
func RespondError(w http.ResponseWriter, log *zap.Logger, operation string, err error) {
	status := StatusFor(err)
	if errs.KindOf(err) != 0 {
		if errs.IsCascadeIncomplete(err) && log != nil {
			log.Error(operation, zap.Error(err))
		}
		Error(w, status, err.Error())
		return
	}
	if log != nil {
		log.Error(operation, zap.Error(err))
	}
	Error(w, status, "internal error")
}
