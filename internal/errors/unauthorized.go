package errors

import "net/http"

var (
	ErrInvalidToken = &Exception{Kind: KindValidation, Message: "invalid token", StatusCode: http.StatusUnauthorized}
	ErrExpiredToken = &Exception{Kind: KindValidation, Message: "token has expired", StatusCode: http.StatusUnauthorized}
	ErrMissingToken = &Exception{Kind: KindValidation, Message: "missing bearer token", StatusCode: http.StatusUnauthorized}
)
