package interp

import (
    "bytes"
    "errors"
    "strings"
    "testing"
)

func TestRun(t *testing.T) {
    tests := []struct {
        name   string
        src    string
        output string
        want   Result
    }{
        {name: "print", src: "print 2 + 3 * 4 ;", output: "14"},
        {name: "countdown", src: "let x 3 ;\nloop x begin\n  print x ;\n  let x x - 1 ;\nend ;\n", output: "321"},
        {name: "if false", src: "if 0 begin print 99 ; end ;", output: ""},
        {
            name:   "runtime error halts",
            src:    "print 1 ;\nprint 5 / 0 ;\nprint 2 ;\n",
            output: "1RUNTIME ERROR at 1: Divide by zero error\n",
        },
        {
            name:   "negative repetition",
            src:    `let x 0 - 1 ; print x * "ab" ;`,
            output: "RUNTIME ERROR at 0: Negative number multiplied by string\n",
        },
        {
            name:   "undeclared never evaluates",
            src:    "print 1 ;\nprint y ;\n",
            output: "UNDECLARED VARIABLE y\n",
            want:   Result{DeclarationErrors: 1},
        },
        {
            name:   "bare self reference never evaluates",
            src:    "let x x ;\nprint x ;\n",
            output: "UNDECLARED VARIABLE x\n",
            want:   Result{DeclarationErrors: 1},
        },
        {
            name:   "syntax error never checks",
            src:    "print y\n",
            output: "1: Slist Error: Missing \"SC\" after \"Stmt\"\n1: Prog Error: No \"Slist\"\n",
            want:   Result{SyntaxErrors: 2},
        },
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            var out bytes.Buffer
            res, err := Run(strings.NewReader(tt.src), &out, Options{})
            if err != nil {
                t.Fatalf("Run: %v", err)
            }
            if out.String() != tt.output {
                t.Errorf("output = %q, want %q", out.String(), tt.output)
            }
            if res.SyntaxErrors != tt.want.SyntaxErrors || res.DeclarationErrors != tt.want.DeclarationErrors {
                t.Errorf("result = %+v, want %+v", res, tt.want)
            }
            if (res.Runtime != nil) != strings.Contains(tt.output, "RUNTIME ERROR") {
                t.Errorf("runtime = %v", res.Runtime)
            }
        })
    }
}

func TestRunSeparateDiagnostics(t *testing.T) {
    var out, diags, trace bytes.Buffer
    res, err := Run(strings.NewReader("print \"a\" ;\nprint 1 + \"b\" ;"), &out, Options{
        Diagnostics: &diags,
        FirstLine:   1,
        Trace:       &trace,
    })
    if err != nil {
        t.Fatalf("Run: %v", err)
    }
    if res.OK() || res.Runtime == nil {
        t.Fatalf("result = %+v, want a runtime error", res)
    }
    if out.String() != "a" {
        t.Errorf("output = %q", out.String())
    }
    if diags.String() != "RUNTIME ERROR at 2: Type mismatch on operands of +\n" {
        t.Errorf("diagnostics = %q", diags.String())
    }
    want := "trace: parse: 0 error(s), 1 line(s)\ntrace: check: 0 error(s)\ntrace: eval: stopped at line 2\n"
    if trace.String() != want {
        t.Errorf("trace = %q, want %q", trace.String(), want)
    }
}

func TestRunIsRepeatable(t *testing.T) {
    src := "let a 5 ; let b !a * \"x\" ; loop a begin let a a - 1 ; end ;"
    for i := 0; i < 2; i++ {
        var out bytes.Buffer
        res, err := Run(strings.NewReader(src), &out, Options{})
        if err != nil || !res.OK() || out.Len() != 0 {
            t.Fatalf("run %d: %+v %v %q", i, res, err, out.String())
        }
    }
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestRunReadError(t *testing.T) {
    _, err := Run(brokenReader{}, &bytes.Buffer{}, Options{})
    if err == nil || !strings.Contains(err.Error(), "disk on fire") {
        t.Fatalf("err = %v", err)
    }
}
