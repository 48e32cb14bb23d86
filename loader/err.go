package loader

import (
	"errors"

	"github.com/hwvm/hwvm/translate"
)

var f = translate.From

// ErrDirectiveMissingName is a load-time syntax error: a label/var
// directive with no name token.
var ErrDirectiveMissingName = errors.New(f("directive missing a name"))

// errNotAnExpression is wrapped by ErrExpression when a $(...) expression
// does not evaluate to a single integer.
var errNotAnExpression = errors.New(f("does not evaluate to an integer"))

// ErrSyntax wraps a load-time error with the source line number it
// occurred on.
type ErrSyntax struct {
	LineNo int
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %v: %v", err.LineNo, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrDuplicateLabel is a load-time error: the same label name was declared
// twice.
type ErrDuplicateLabel struct {
	Name   string
	LineNo int
}

func (err *ErrDuplicateLabel) Error() string {
	return f("label %q already defined", err.Name)
}

// ErrDuplicateVar is a load-time error: the same var name was declared
// twice.
type ErrDuplicateVar struct {
	Name   string
	LineNo int
}

func (err *ErrDuplicateVar) Error() string {
	return f("var %q already defined", err.Name)
}

// ErrLabelMissing is a load-time error: a label:NAME token referenced a
// name no "label NAME" directive ever declared.
type ErrLabelMissing struct {
	Name string
}

func (err *ErrLabelMissing) Error() string {
	return f("undefined label %q", err.Name)
}

// ErrVarMissing is a load-time error: a var:NAME token referenced a name
// no "var NAME" directive ever declared.
type ErrVarMissing struct {
	Name string
}

func (err *ErrVarMissing) Error() string {
	return f("undefined var %q", err.Name)
}

// ErrImmediateDestination is the load-time rejection required by spec: an
// immediate (@v) token used as the destination of copy/write.
type ErrImmediateDestination struct {
	Token string
}

func (err *ErrImmediateDestination) Error() string {
	return f("immediate %q cannot be used as a destination", err.Token)
}

// ErrExpression wraps a failure evaluating a $(...) operand expression.
type ErrExpression struct {
	Expr string
	Err  error
}

func (err *ErrExpression) Error() string {
	return f("expression %q: %v", err.Expr, err.Err)
}

func (err *ErrExpression) Unwrap() error {
	return err.Err
}
