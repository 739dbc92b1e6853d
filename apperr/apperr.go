package apperr

import (
	"errors"
	"net/http"
)

// Kind buckets every rejection the flows can produce. Nothing here is fatal;
// handlers translate a Kind to an HTTP status and the UI localizes by Reason.
type Kind string

const (
	KindValidation    Kind = "validation_error"
	KindNotFound      Kind = "not_found"
	KindStateConflict Kind = "state_conflict"
	KindInsufficient  Kind = "insufficient_balance"
	KindExternal      Kind = "external_service_error"
)

type Error struct {
	Kind   Kind   `json:"kind"`
	Reason string `json:"reason"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Title + ": " + e.Detail
	}
	return e.Title
}

func New(kind Kind, reason, title, detail string) *Error {
	return &Error{Kind: kind, Reason: reason, Title: title, Detail: detail}
}

func Validation(reason, title, detail string) *Error {
	return New(KindValidation, reason, title, detail)
}

func NotFound(reason, title string) *Error {
	return New(KindNotFound, reason, title, "")
}

func Conflict(reason, title string) *Error {
	return New(KindStateConflict, reason, title, "")
}

func Insufficient(reason, title string) *Error {
	return New(KindInsufficient, reason, title, "")
}

func External(title string, err error) *Error {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return New(KindExternal, "ExternalService", title, detail)
}

// As unwraps err into *Error, or wraps it as an external-service failure so
// the boundary always has a reason code to hand to the client.
func As(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return External("Something went wrong", err)
}

// Status maps an error kind to its HTTP status code.
func Status(err error) int {
	switch As(err).Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindStateConflict:
		return http.StatusConflict
	case KindInsufficient:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}
