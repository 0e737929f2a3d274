// Package response contains the helper types and functions for the
// unified JSON responses of the HTTP handlers: success envelopes,
// errors and validation messages in one format.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response is the standard JSON envelope. Status is "OK" or "Error",
// Error carries the message on failure, Data the payload on success.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse is the error shape referenced from the Swagger
// annotations.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

const (
	// StatusOK is the status value of a successful response.
	StatusOK = "OK"
	// StatusError is the status value of a failed response.
	StatusError = "Error"
)

// StatusOKWithData returns a successful Response carrying data.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error returns a Response with the given error message.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError builds an error Response out of validation failures,
// one human-readable message per violated rule.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email address", err.Field()))
		case "phone":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid phone number", err.Field()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of: %s", err.Field(), err.Param()))
		case "datetime":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a date in format %s", err.Field(), err.Param()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must contain at least %s items", err.Field(), err.Param()))
		case "gt":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be greater than %s", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(errsMsgs, ", "),
	}
}
