package parser

import (
	"errors"
	"io/fs"
)

// Input validation failures. Callers test for them with errors.Is; none are
// retried.
var (
	// ErrSeparatorNotFound means no line of the source contains the separator.
	ErrSeparatorNotFound = errors.New("separator not found")
	// ErrPostTitleNotFound means the head block has no non-blank line.
	ErrPostTitleNotFound = errors.New("post title not found")
	// ErrPostHeadSyntax means the head block has more than two non-blank lines.
	ErrPostHeadSyntax = errors.New("post head syntax error")
	// ErrPostNameInvalid means the file name is not a YYYY-MM-DD-HH-mm timestamp.
	ErrPostNameInvalid = errors.New("post name invalid")
)

// ErrDecode is returned when a file's bytes are not valid in the configured
// charset. It sits outside the validation errors above.
var ErrDecode = errors.New("decode post source")

// FileError ties a failure to the file that caused it.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	var pe *fs.PathError
	if errors.As(e.Err, &pe) && pe.Path == e.Path {
		return e.Err.Error()
	}
	return e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}
