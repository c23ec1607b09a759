package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/dongwha/internal/corpus"
	"github.com/abhisek/dongwha/internal/quiz"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// badRequest marks a request the client must fix.
type badRequest struct{ err error }

func (e *badRequest) Error() string { return e.err.Error() }
func (e *badRequest) Unwrap() error { return e.err }

func invalid(err error) error { return &badRequest{err: err} }

// RespondError writes the envelope for err with the status derived from
// its kind.
func RespondError(c *gin.Context, err error) {
	status, code := classify(err)
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	if status == http.StatusNotFound && errors.Is(err, quiz.ErrNoHistory) {
		msg = "사용자 기록이 없습니다."
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func classify(err error) (int, string) {
	var br *badRequest
	var ve *quiz.ValidationError
	switch {
	case errors.As(err, &br), errors.As(err, &ve):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, quiz.ErrNoHistory):
		return http.StatusNotFound, "no_history"
	case errors.Is(err, corpus.ErrNoData):
		return http.StatusNotFound, "no_data"
	case errors.Is(err, corpus.ErrUnsatisfiable), errors.Is(err, corpus.ErrInsufficientDistractors):
		return http.StatusUnprocessableEntity, "unsatisfiable"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
