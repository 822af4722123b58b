package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"catalogadmin/internal/domain/catalog"
	"catalogadmin/internal/media"
	"catalogadmin/internal/recordstore"
)

// respond writes env with status on success. On failure the status comes
// from the error kind; server-side failures are logged with the error while
// the client only sees the envelope's generic message.
func (app *application) respond(w http.ResponseWriter, r *http.Request, status int, env recordstore.Envelope, err error) {
	if err == nil {
		_ = writeJSON(w, status, env)
		return
	}

	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		app.logger.Errorw("request failed", "method", r.Method, "path", r.URL.Path, "error", err.Error())
	} else {
		app.logger.Warnw("request rejected", "method", r.Method, "path", r.URL.Path, "status", code, "error", err.Error())
	}

	if env.Success || env.Message == "" {
		env = recordstore.Fail(http.StatusText(code))
	}
	_ = writeJSON(w, code, env)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, recordstore.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, catalog.ErrInvalidReference), errors.Is(err, media.ErrInvalidImage):
		return http.StatusBadRequest
	case errors.Is(err, media.ErrUpload):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusBadRequest, err.Error())
}

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (app *application) unauthorizedErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

func (app *application) unauthorizedBasicErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized basic error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)

	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter time.Duration) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	secs := int(retryAfter.Seconds())
	if secs < 1 {
		secs = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(secs))

	writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded, retry after: "+strconv.Itoa(secs)+"s")
}
