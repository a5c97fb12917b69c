package web

import (
	"errors"
	"fmt"
	"net/http"

	codenames "github.com/bcspragu/spymaster"
)

// httpError is an error with a status code and a message that's safe to show
// to the caller. The wrapped error is only logged.
type httpError struct {
	code    int
	userMsg string
	err     error
}

func (e *httpError) Error() string {
	return fmt.Sprintf("[%d] %v", e.code, e.err)
}

func (e *httpError) Unwrap() error {
	return e.err
}

func (e *httpError) withMessage(msg string) *httpError {
	e.userMsg = msg
	return e
}

func newError(code int, format string, args ...interface{}) *httpError {
	return &httpError{
		code:    code,
		userMsg: http.StatusText(code),
		err:     fmt.Errorf(format, args...),
	}
}

func badRequest(format string, args ...interface{}) *httpError {
	return newError(http.StatusBadRequest, format, args...)
}

func unauthorized(format string, args ...interface{}) *httpError {
	return newError(http.StatusUnauthorized, format, args...)
}

func forbidden(format string, args ...interface{}) *httpError {
	return newError(http.StatusForbidden, format, args...)
}

// extract picks the status code and user message for err. Errors from the
// engine and the hint log get their own codes, anything else is a 500.
func extract(err error) (int, string) {
	var herr *httpError
	if errors.As(err, &herr) {
		return herr.code, herr.userMsg
	}

	switch {
	case errors.Is(err, codenames.ErrNoEligibleClue):
		return http.StatusUnprocessableEntity, "no eligible clue for this board"
	case errors.Is(err, codenames.ErrEmbedding):
		return http.StatusBadGateway, "failed to embed words"
	case errors.Is(err, codenames.ErrHintNotFound):
		return http.StatusNotFound, "hint not found"
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}
