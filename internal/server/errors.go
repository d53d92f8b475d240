package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/muhammadolammi/skillmatch/internal/document"
)

// ErrMissingResume indicates the form carried no resume file
type ErrMissingResume struct{}

func (e *ErrMissingResume) Error() string {
	return "Please upload a resume file (PDF or DOCX)."
}

// ErrMissingJobDescription indicates the job description was blank
type ErrMissingJobDescription struct{}

func (e *ErrMissingJobDescription) Error() string {
	return "Please paste the job description."
}

// ErrUploadTooLarge indicates the request body exceeded the upload cap
type ErrUploadTooLarge struct {
	Limit int64
}

func (e *ErrUploadTooLarge) Error() string {
	return fmt.Sprintf("Resume file is too large (limit %d MB).", e.Limit>>20)
}

// ErrResumeUnreadable wraps a document detection or extraction failure
type ErrResumeUnreadable struct {
	Cause error
}

func (e *ErrResumeUnreadable) Error() string {
	return fmt.Sprintf("Failed to read resume: %v", e.Cause)
}

func (e *ErrResumeUnreadable) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var unsupported *document.UnsupportedTypeError
	switch err.(type) {
	case *ErrMissingResume, *ErrMissingJobDescription:
		return http.StatusBadRequest
	case *ErrUploadTooLarge:
		return http.StatusRequestEntityTooLarge
	case *ErrResumeUnreadable:
		if errors.As(err, &unsupported) {
			return http.StatusUnsupportedMediaType
		}
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
