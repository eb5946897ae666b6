package errors

import "net/http"

var ErrAmbiguousTask = &Exception{
	Kind:       KindAmbiguous,
	Message:    "identifier matches more than one task",
	StatusCode: http.StatusConflict,
}
