package parser

import (
    "errors"
    "fmt"

    "rev-lang/impl/internal/diag"
)

// ErrUndeclared is returned by Check when a variable is used before any let
// binds it.
var ErrUndeclared = errors.New("undeclared variable")

// CheckDeclared walks the tree and reports every identifier used before a
// let has bound it, returning the number of reports.
//
// The walk follows the shape of the tree rather than source order: at each
// node the left child is handled before the right, and a child that is a let
// registers its name before the walk descends into it. A let whose
// expression is a bare identifier has that identifier checked before its own
// name is registered, so `let x x ;` is still reported.
func CheckDeclared(prog Program, sink *diag.Sink) int {
    if prog.Body == nil {
        return 0
    }
    c := checker{declared: map[string]bool{}, sink: sink}
    c.visit(prog.Body)
    return c.errs
}

// Check is CheckDeclared returning ErrUndeclared instead of a count.
func Check(prog Program, sink *diag.Sink) error {
    if n := CheckDeclared(prog, sink); n > 0 {
        return fmt.Errorf("%w: %d error(s)", ErrUndeclared, n)
    }
    return nil
}

type checker struct {
    declared map[string]bool
    sink     *diag.Sink
    errs     int
}

func (c *checker) visit(n Node) {
    left, right := Children(n)
    for _, child := range []Node{left, right} {
        if child == nil {
            continue
        }
        switch x := child.(type) {
        case Let:
            if id, ok := x.Value.(Identifier); ok {
                c.use(id)
                c.declared[x.Name] = true
                continue
            }
            c.declared[x.Name] = true
        case Identifier:
            c.use(x)
        }
        c.visit(child)
    }
}

func (c *checker) use(id Identifier) {
    if !c.declared[id.Name] {
        c.errs++
        c.sink.Report("UNDECLARED VARIABLE " + id.Name)
    }
}
