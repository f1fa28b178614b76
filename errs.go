package jsonq

import (
	"errors"
	"fmt"

	"github.com/signadot/jsonq/ir"
	"github.com/signadot/jsonq/parse"
)

// Error kinds, re-exported where they originate in a subpackage so
// callers can errors.Is against this package alone.
var (
	ErrParse           = parse.ErrParse
	ErrFile            = parse.ErrFile
	ErrPathNotFound    = ir.ErrPathNotFound
	ErrIndexOutOfRange = ir.ErrIndexOutOfRange

	ErrTypeMismatch    = errors.New("type mismatch")
	ErrEmptyAggregate  = errors.New("empty aggregate")
	ErrUnknownOperator = errors.New("unknown operator")
	ErrBadOperand      = errors.New("bad operand")
)

// TypeError reports an incomparable pairing in a sort, or an
// aggregate applied to non-numeric input.
type TypeError struct {
	Op   string
	Want string
	Got  ir.Type
	At   string
}

func (e *TypeError) Error() string {
	if e.At != "" {
		return fmt.Sprintf("%s: expected %s, got %s at %s", e.Op, e.Want, e.Got, e.At)
	}
	return fmt.Sprintf("%s: expected %s, got %s", e.Op, e.Want, e.Got)
}

func (e *TypeError) Unwrap() error {
	return ErrTypeMismatch
}

// OperatorError reports a Where condition naming an operator that is
// neither built in nor registered with Macro.
type OperatorError struct {
	Op string
}

func (e *OperatorError) Error() string {
	return fmt.Sprintf("no query operator %q", e.Op)
}

func (e *OperatorError) Unwrap() error {
	return ErrUnknownOperator
}
