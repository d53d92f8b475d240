package document

import "fmt"

// UnsupportedTypeError is returned when an upload is neither PDF, DOCX nor plain text.
type UnsupportedTypeError struct {
	Filename    string
	ContentType string
}

func (e *UnsupportedTypeError) Error() string {
	if e.ContentType != "" {
		return fmt.Sprintf("unsupported file type: %s (%s)", e.Filename, e.ContentType)
	}
	return fmt.Sprintf("unsupported file type: %s", e.Filename)
}

// ReadError means the document was recognised but its text could not be read.
type ReadError struct {
	Kind Kind
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Kind, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
