package errors

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindBackend Kind = iota
	KindValidation
	KindNotFound
	KindAmbiguous
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindAmbiguous:
		return "ambiguous"
	}
	return "backend"
}

type Exception struct {
	Kind       Kind
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

func validation(message string) *Exception {
	return &Exception{Kind: KindValidation, Message: message, StatusCode: http.StatusBadRequest}
}

func notFound(message string) *Exception {
	return &Exception{Kind: KindNotFound, Message: message, StatusCode: http.StatusNotFound}
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// KindOf classifies err. Anything that is not an *Exception is a backend failure.
func KindOf(err error) Kind {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindBackend
}

// PublicMessage is the text that may be shown to an end user for err.
// Backend details never leave the process.
func PublicMessage(err error, fallback string) string {
	if KindOf(err) == KindBackend {
		return fallback
	}
	return err.Error()
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}
