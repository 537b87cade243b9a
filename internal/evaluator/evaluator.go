package evaluator

import (
    "fmt"
    "io"

    "rev-lang/impl/internal/parser"
    "rev-lang/impl/internal/value"
)

// RuntimeError stops evaluation of the whole program. It is never recovered
// below the top level.
type RuntimeError struct {
    Line int
    Msg  string
}

func (e *RuntimeError) Error() string { return fmt.Sprintf("RUNTIME ERROR at %d: %s", e.Line, e.Msg) }

func fail(line int, msg string) (value.Value, error) {
    return value.Value{}, &RuntimeError{Line: line, Msg: msg}
}

var operators = map[string]func(l, r value.Value) value.Value{
    "+": value.Add,
    "-": value.Sub,
    "*": value.Mul,
    "/": value.Div,
}

// Evaluator walks a checked program once, writing print output to out and
// keeping every binding in a single global symbol table.
type Evaluator struct {
    out     io.Writer
    symbols map[string]value.Value
}

func New(w io.Writer) *Evaluator {
    return &Evaluator{out: w, symbols: map[string]value.Value{}}
}

// Eval runs prog. The returned error is a *RuntimeError, or a write error
// from the output sink.
func (ev *Evaluator) Eval(prog parser.Program) error {
    if prog.Body == nil {
        return nil
    }
    _, err := ev.eval(prog.Body)
    return err
}

// Lookup returns the value bound to name.
func (ev *Evaluator) Lookup(name string) (value.Value, bool) {
    v, ok := ev.symbols[name]
    return v, ok
}

func (ev *Evaluator) eval(n parser.Node) (value.Value, error) {
    switch x := n.(type) {
    case parser.StmtList:
        return ev.evalList(x)

    case parser.Let:
        v, err := ev.eval(x.Value)
        if err != nil { return v, err }
        ev.symbols[x.Name] = v
        return value.Value{}, nil

    case parser.Print:
        v, err := ev.eval(x.Value)
        if err != nil { return v, err }
        if v.IsErr() {
            return fail(x.Line, v.Message())
        }
        if _, err := io.WriteString(ev.out, v.String()); err != nil {
            return value.Value{}, fmt.Errorf("print: %w", err)
        }
        return value.Value{}, nil

    case parser.If:
        ok, err := ev.condition(x.Cond, x.Line)
        if err != nil || !ok { return value.Value{}, err }
        if x.Body != nil {
            if _, err := ev.eval(x.Body); err != nil { return value.Value{}, err }
        }
        return value.Value{}, nil

    case parser.Loop:
        for {
            ok, err := ev.condition(x.Cond, x.Line)
            if err != nil || !ok { return value.Value{}, err }
            if x.Body != nil {
                if _, err := ev.eval(x.Body); err != nil { return value.Value{}, err }
            }
        }

    case parser.Binary:
        l, err := ev.operand(x.Left, x.Line)
        if err != nil { return l, err }
        r, err := ev.operand(x.Right, x.Line)
        if err != nil { return r, err }
        op, ok := operators[x.Op]
        if !ok {
            return fail(x.Line, fmt.Sprintf("Unknown operator %s", x.Op))
        }
        return check(op(l, r), x.Line)

    case parser.Reverse:
        v, err := ev.operand(x.Operand, x.Line)
        if err != nil { return v, err }
        return check(value.Reverse(v), x.Line)

    case parser.IntegerLit:
        return value.Int(x.Value), nil
    case parser.StringLit:
        return value.Str(x.Value), nil
    case parser.Identifier:
        // unbound names yield the placeholder; the declaration check keeps
        // this from happening in a checked program
        return ev.symbols[x.Name], nil
    }
    return value.Value{}, fmt.Errorf("evaluator: unexpected node %T", n)
}

// evalList walks the statement chain iteratively.
func (ev *Evaluator) evalList(sl parser.StmtList) (value.Value, error) {
    for {
        if _, err := ev.eval(sl.First); err != nil { return value.Value{}, err }
        switch rest := sl.Rest.(type) {
        case nil:
            return value.Value{}, nil
        case parser.StmtList:
            sl = rest
        default:
            if _, err := ev.eval(rest); err != nil { return value.Value{}, err }
            return value.Value{}, nil
        }
    }
}

// operand evaluates n and turns an Error result into a runtime error
// attributed to line.
func (ev *Evaluator) operand(n parser.Node, line int) (value.Value, error) {
    v, err := ev.eval(n)
    if err != nil { return v, err }
    return check(v, line)
}

func check(v value.Value, line int) (value.Value, error) {
    if v.IsErr() {
        return fail(line, v.Message())
    }
    return v, nil
}

func (ev *Evaluator) condition(n parser.Node, line int) (bool, error) {
    v, err := ev.eval(n)
    if err != nil { return false, err }
    switch {
    case v.IsErr():
        return false, &RuntimeError{Line: line, Msg: v.Message()}
    case v.IsStr():
        return false, &RuntimeError{Line: line, Msg: "Expression is not an integer"}
    }
    return v.Int64() != 0, nil
}
