package loader

import (
	"regexp"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// parenExpr matches a $(...) operand expression. Grounded on the teacher's
// cpu/assembler.go parenEval, which evaluates the same syntax at assembly
// time with a starlark sandbox.
var parenExpr = regexp.MustCompile(`\$\([^$]*\)`)

// evalExpressions replaces every $(...) substring of line with the decimal
// text of its evaluated integer value.
func evalExpressions(line string) (result string, err error) {
	result = parenExpr.ReplaceAllStringFunc(line, func(match string) string {
		if err != nil {
			return match
		}
		var value int64
		value, err = evalParen(match[2 : len(match)-1])
		if err != nil {
			return match
		}
		return strconv.FormatInt(value, 10)
	})
	if err != nil {
		result = ""
	}
	return
}

// evalParen evaluates expr as a starlark integer expression, sandboxed: no
// predefined names, no file or network access.
func evalParen(expr string) (value int64, err error) {
	thread := &starlark.Thread{}
	opts := syntax.FileOptions{}
	prog := "rc = " + expr + "\n"

	dict, eerr := starlark.ExecFileOptions(&opts, thread, "expr", prog, nil)
	if eerr != nil {
		err = &ErrExpression{Expr: expr, Err: eerr}
		return
	}

	rc, ok := dict["rc"]
	if !ok {
		err = &ErrExpression{Expr: expr, Err: errNotAnExpression}
		return
	}

	n, ok := rc.(starlark.Int)
	if !ok {
		err = &ErrExpression{Expr: expr, Err: errNotAnExpression}
		return
	}

	value, ok = n.Int64()
	if !ok {
		err = &ErrExpression{Expr: expr, Err: errNotAnExpression}
		return
	}

	return
}
