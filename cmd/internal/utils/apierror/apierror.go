package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is an error that knows its HTTP status and renders as the
// JSON body sent to the client.
type ErrorResponse interface {
	error
	Code() int
}

type SimpleError struct {
	Status  int               `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func (e *SimpleError) Error() string {
	return e.Message
}

func (e *SimpleError) Code() int {
	return e.Status
}

func NewSimple(code int, message string) *SimpleError {
	return &SimpleError{Status: code, Message: message}
}

var (
	InternalServerError      = NewSimple(http.StatusInternalServerError, "Internal server error")
	MalformedBodyError       = NewSimple(http.StatusBadRequest, "Malformed request body")
	MalformedTimeError       = NewSimple(http.StatusBadRequest, "Could not understand the given start/end time")
	NotFoundError            = NewSimple(http.StatusNotFound, "Resource not found")
	NotOwnedError            = NewSimple(http.StatusForbidden, "Resource belongs to another user")
	InvalidAuthTokenError    = NewSimple(http.StatusUnauthorized, "Invalid or missing authorization token")
	UserAlreadyExistsError   = NewSimple(http.StatusConflict, "A user with this email already exists")
	CredentialsMismatchError = NewSimple(http.StatusUnauthorized, "Email or password is incorrect")
)

func NewMissingParamError(param string) *SimpleError {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Missing required parameter '%s'", param))
}

func NewInvalidParamTypeError(param, expected string) *SimpleError {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Parameter '%s' must be of type %s", param, expected))
}

// FromValidationError turns validator failures into a 400 with one detail
// entry per offending field.
func FromValidationError(err error) *SimpleError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewSimple(http.StatusBadRequest, err.Error())
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		details[strings.ToLower(fe.Field())] = rule
	}
	return &SimpleError{
		Status:  http.StatusBadRequest,
		Message: "Request validation failed",
		Details: details,
	}
}
