package server

import (
	"net/http"

	"github.com/matzehuels/motifscan/pkg/errors"
)

// ErrorBody is the JSON error envelope.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// statusCodes maps error codes to HTTP status codes.
var statusCodes = map[errors.Code]int{
	errors.ErrCodeInvalidInput:   http.StatusBadRequest,
	errors.ErrCodeInvalidMotif:   http.StatusBadRequest,
	errors.ErrCodeInvalidNetwork: http.StatusBadRequest,
	errors.ErrCodeInvalidFormat:  http.StatusBadRequest,
	errors.ErrCodeInvalidPath:    http.StatusBadRequest,
	errors.ErrCodeNotFound:       http.StatusNotFound,
	errors.ErrCodeFileNotFound:   http.StatusNotFound,
	errors.ErrCodeSearchBusy:     http.StatusConflict,
	errors.ErrCodeTimeout:        http.StatusGatewayTimeout,
	errors.ErrCodeUnsupported:    http.StatusUnprocessableEntity,
}

// errCodeMethodNotAllowed is only produced by the router.
const errCodeMethodNotAllowed errors.Code = "METHOD_NOT_ALLOWED"

// StatusCode returns the HTTP status for err.
func StatusCode(err error) int {
	code := errors.GetCode(err)
	if code == errCodeMethodNotAllowed {
		return http.StatusMethodNotAllowed
	}
	if status, ok := statusCodes[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, StatusCode(err), ErrorBody{Error: ErrorDetail{
		Code:    code,
		Message: errors.UserMessage(err),
	}})
}

func errNotFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}

func errMethodNotAllowed(method, path string) error {
	return errors.New(errCodeMethodNotAllowed, "%s not allowed on %s", method, path)
}
