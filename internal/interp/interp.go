// Package interp runs a source stream through the whole pipeline: parse,
// declaration check and evaluation, each stage gated on the previous one
// finishing without errors.
package interp

import (
    "errors"
    "fmt"
    "io"

    "rev-lang/impl/internal/diag"
    "rev-lang/impl/internal/evaluator"
    "rev-lang/impl/internal/lexer"
    "rev-lang/impl/internal/parser"
)

type Options struct {
    // Diagnostics receives error reports. Nil means the program output
    // writer, so reports interleave with printed values.
    Diagnostics io.Writer
    // FirstLine is the starting value of the line counter.
    FirstLine int
    // Trace, when set, receives one line per pipeline stage.
    Trace io.Writer
}

// Result describes how far a run got.
type Result struct {
    SyntaxErrors      int
    DeclarationErrors int
    Runtime           *evaluator.RuntimeError
}

// OK reports whether the program ran to completion.
func (r Result) OK() bool {
    return r.SyntaxErrors == 0 && r.DeclarationErrors == 0 && r.Runtime == nil
}

// Run executes the program read from src, writing print output to out.
// Problems in the program are reported through the diagnostics writer and
// summarized in the Result; the error is reserved for I/O failures.
func Run(src io.Reader, out io.Writer, opts Options) (Result, error) {
    var res Result
    diagOut := opts.Diagnostics
    if diagOut == nil {
        diagOut = out
    }
    tracef := func(format string, args ...any) {
        if opts.Trace != nil {
            fmt.Fprintf(opts.Trace, "trace: "+format+"\n", args...)
        }
    }

    lex := lexer.NewAt(src, opts.FirstLine)
    parseSink := diag.New(diagOut)
    prog, err := parser.New(lex, parseSink).ParseProgram()
    if rerr := lex.Err(); rerr != nil {
        return res, fmt.Errorf("read source: %w", rerr)
    }
    res.SyntaxErrors = parseSink.Count()
    tracef("parse: %d error(s), %d line(s)", res.SyntaxErrors, lex.Line()-opts.FirstLine)
    if err != nil {
        return res, nil
    }

    res.DeclarationErrors = parser.CheckDeclared(prog, diag.New(diagOut))
    tracef("check: %d error(s)", res.DeclarationErrors)
    if res.DeclarationErrors > 0 {
        return res, nil
    }

    err = evaluator.New(out).Eval(prog)
    var rerr *evaluator.RuntimeError
    if errors.As(err, &rerr) {
        res.Runtime = rerr
        fmt.Fprintln(diagOut, rerr.Error())
        tracef("eval: stopped at line %d", rerr.Line)
        return res, nil
    }
    if err != nil {
        return res, err
    }
    tracef("eval: done")
    return res, nil
}
