package ir

import (
	"errors"
	"fmt"
)

var (
	ErrPathNotFound    = errors.New("path not found")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// PathError reports the first segment of a path that failed to
// resolve.
type PathError struct {
	Path    string
	Segment string
	Err     error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("cannot resolve %q at segment %q: %v", e.Path, e.Segment, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}
