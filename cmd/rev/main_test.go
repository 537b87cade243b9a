package main

import (
    "bytes"
    "encoding/json"
    "os"
    "path/filepath"
    "strings"
    "testing"
)

func writeFile(t *testing.T, name, content string) string {
    t.Helper()
    path := filepath.Join(t.TempDir(), name)
    if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
        t.Fatal(err)
    }
    return path
}

func runCLI(args []string, stdin string) (int, string, string) {
    var stdout, stderr bytes.Buffer
    code := run(args, strings.NewReader(stdin), &stdout, &stderr)
    return code, stdout.String(), stderr.String()
}

func TestRunFromStdin(t *testing.T) {
    code, out, errOut := runCLI(nil, "let x 3 ; loop x begin print x ; let x x - 1 ; end ;")
    if code != exitOK || out != "321" || errOut != "" {
        t.Fatalf("code=%d stdout=%q stderr=%q", code, out, errOut)
    }
}

func TestRunFile(t *testing.T) {
    path := writeFile(t, "prog.rev", "print !\"olleh\" ;\n")
    for _, args := range [][]string{{path}, {"run", path}} {
        code, out, _ := runCLI(args, "")
        if code != exitOK || out != "hello" {
            t.Errorf("%v: code=%d stdout=%q", args, code, out)
        }
    }
}

func TestRunProgramErrors(t *testing.T) {
    tests := []struct {
        name string
        src  string
        out  string
    }{
        {name: "runtime", src: "print 5 / 0 ; print 1 ;", out: "RUNTIME ERROR at 0: Divide by zero error\n"},
        {name: "undeclared", src: "print y ;", out: "UNDECLARED VARIABLE y\n"},
        {name: "syntax", src: "let ;", out: "0: LetStmt Error: Missing \"ID\" after \"LET\"\n0: Prog Error: No \"Slist\"\n"},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            code, out, _ := runCLI(nil, tt.src)
            if code != exitProgram {
                t.Errorf("code = %d, want %d", code, exitProgram)
            }
            if out != tt.out {
                t.Errorf("stdout = %q, want %q", out, tt.out)
            }
        })
    }
}

func TestSourceSelectionErrors(t *testing.T) {
    code, out, _ := runCLI([]string{"a.rev", "b.rev"}, "")
    if code != exitUsage || out != "TOO MANY FILENAMES\n" {
        t.Errorf("code=%d stdout=%q", code, out)
    }
    missing := filepath.Join(t.TempDir(), "missing.rev")
    code, out, _ = runCLI([]string{missing}, "")
    if code != exitUsage || out != "COULD NOT OPEN "+missing+"\n" {
        t.Errorf("code=%d stdout=%q", code, out)
    }
}

func TestConfig(t *testing.T) {
    cfg := writeFile(t, "rev.yml", "diagnostics: stderr\nfirst_line: 1\ntrailing_newline: true\n")

    code, out, errOut := runCLI([]string{"--config", cfg}, "print 1 ;\nprint \"a\" - 1 ;")
    if code != exitProgram {
        t.Errorf("code = %d", code)
    }
    if out != "1" {
        t.Errorf("stdout = %q", out)
    }
    if errOut != "RUNTIME ERROR at 2: Type mismatch on operands of -\n" {
        t.Errorf("stderr = %q", errOut)
    }

    code, out, _ = runCLI([]string{"--config", cfg}, "print 1 ;")
    if code != exitOK || out != "1\n" {
        t.Errorf("code=%d stdout=%q", code, out)
    }

    bad := writeFile(t, "bad.yml", "diagnostics: nowhere\n")
    code, _, errOut = runCLI([]string{"--config", bad}, "")
    if code != exitUsage || !strings.Contains(errOut, "config validation failed") {
        t.Errorf("code=%d stderr=%q", code, errOut)
    }
}

func TestTrace(t *testing.T) {
    cfg := writeFile(t, "rev.yml", "trace: true\n")
    code, _, errOut := runCLI([]string{"--config", cfg}, "print 1 ;")
    if code != exitOK || !strings.Contains(errOut, "trace: eval: done") {
        t.Errorf("code=%d stderr=%q", code, errOut)
    }
}

func TestTokens(t *testing.T) {
    code, out, _ := runCLI([]string{"tokens"}, "let x 5 ;")
    if code != exitOK {
        t.Fatalf("code = %d", code)
    }
    lines := strings.Split(strings.TrimSpace(out), "\n")
    want := []string{"LET", "ID", "INT", "SC", "DONE"}
    if len(lines) != len(want) {
        t.Fatalf("got %d tokens: %q", len(lines), out)
    }
    for i, line := range lines {
        var tok tokenOut
        if err := json.Unmarshal([]byte(line), &tok); err != nil {
            t.Fatalf("line %d: %v", i, err)
        }
        if tok.Type != want[i] {
            t.Errorf("token %d: type %q, want %q", i, tok.Type, want[i])
        }
    }

    code, _, _ = runCLI([]string{"tokens"}, "print # ;")
    if code != exitProgram {
        t.Errorf("lexical error: code = %d", code)
    }
}

func TestAST(t *testing.T) {
    code, out, _ := runCLI([]string{"ast"}, "print 1 + 2 ;")
    if code != exitOK {
        t.Fatalf("code = %d", code)
    }
    var doc struct {
        Type string `json:"type"`
        Body struct {
            Type  string `json:"type"`
            First struct {
                Type  string `json:"type"`
                Value struct {
                    Operator string `json:"operator"`
                } `json:"value"`
            } `json:"first"`
        } `json:"body"`
    }
    if err := json.Unmarshal([]byte(out), &doc); err != nil {
        t.Fatalf("decode: %v\n%s", err, out)
    }
    if doc.Type != "Program" || doc.Body.Type != "StmtList" || doc.Body.First.Type != "Print" || doc.Body.First.Value.Operator != "+" {
        t.Errorf("unexpected tree: %s", out)
    }
}

func TestCheck(t *testing.T) {
    code, out, _ := runCLI([]string{"check"}, "print a ; let a 1 ;")
    if code != exitProgram || out != "UNDECLARED VARIABLE a\n" {
        t.Errorf("code=%d stdout=%q", code, out)
    }
    code, out, _ = runCLI([]string{"check"}, "let a 1 ; print a ;")
    if code != exitOK || out != "" {
        t.Errorf("code=%d stdout=%q", code, out)
    }
}

func TestVersionAndHelp(t *testing.T) {
    code, out, _ := runCLI([]string{"--version"}, "")
    if code != exitOK || out != cliToolVersion+"\n" {
        t.Errorf("code=%d stdout=%q", code, out)
    }
    code, out, _ = runCLI([]string{"-h"}, "")
    if code != exitOK || !strings.HasPrefix(out, "Usage: rev") {
        t.Errorf("code=%d stdout=%q", code, out)
    }
}
