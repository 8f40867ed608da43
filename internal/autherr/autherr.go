// Package autherr defines the closed set of authentication failures the
// service can return to callers, each with a stable numeric code, plus the
// response envelope every endpoint answers with.
package autherr

import "net/http"

// Error is a typed authentication failure. The set of values below is
// exhaustive; code paths must return one of them, never an ad-hoc error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrUserAlreadyExists       = &Error{Code: 1001, Message: "User already exists"}
	ErrUserDoesNotExist        = &Error{Code: 1002, Message: "User does not exist"}
	ErrIncorrectUserOrPassword = &Error{Code: 2001, Message: "Incorrect username or password"}
	ErrExpiredOrInvalidToken   = &Error{Code: 2002, Message: "Expired or invalid token"}
)

// Response is the envelope shared by every endpoint. Message carries an
// *Error on failure (or a plain string for non-taxonomy conditions such as a
// disabled account), and is null on success.
type Response struct {
	Success bool `json:"success"`
	Message any  `json:"message"`
	Data    any  `json:"data"`
}

// OK wraps payload data in a success envelope.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// Fail wraps a taxonomy error in a failure envelope.
func Fail(err *Error) Response {
	return Response{Success: false, Message: err}
}

// HTTPStatus maps a taxonomy error to the status its endpoint responds with.
// Anything outside the taxonomy is an unexpected condition and maps to 500.
func HTTPStatus(err error) int {
	switch err {
	case ErrIncorrectUserOrPassword, ErrExpiredOrInvalidToken, ErrUserDoesNotExist:
		return http.StatusUnauthorized
	case ErrUserAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
