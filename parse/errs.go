package parse

import (
	"errors"
)

var (
	// ErrParse reports malformed source text.
	ErrParse = errors.New("parse error")
	// ErrFile reports an unreadable path or other IO failure while
	// loading a document.
	ErrFile = errors.New("file error")
)
