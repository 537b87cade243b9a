package main

import (
    "bufio"
    "encoding/json"
    "fmt"
    "io"
    "os"

    "rev-lang/impl/internal/config"
    "rev-lang/impl/internal/diag"
    "rev-lang/impl/internal/interp"
    "rev-lang/impl/internal/lexer"
    "rev-lang/impl/internal/parser"
)

const cliToolVersion = "rev 0.1.0"

// Exit codes.
const (
    exitOK      = 0
    exitProgram = 1 // syntax, declaration or runtime error in the program
    exitUsage   = 2 // bad arguments, unreadable input or configuration
)

type cli struct {
    cfg    config.Config
    stdin  io.Reader
    stdout io.Writer
    stderr io.Writer
}

func main() {
    os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
    c := &cli{cfg: config.Default(), stdin: stdin, stdout: stdout, stderr: stderr}

    if len(args) > 0 && args[0] == "--config" {
        if len(args) < 2 {
            c.usage(stderr)
            return exitUsage
        }
        cfg, err := config.Load(args[1])
        if err != nil {
            fmt.Fprintln(stderr, err)
            return exitUsage
        }
        c.cfg = cfg
        args = args[2:]
    }

    if len(args) == 0 {
        return c.runProgram(args)
    }
    switch args[0] {
    case "--help", "-h":
        c.usage(stdout)
        return exitOK
    case "--version", "-V", "version":
        fmt.Fprintln(stdout, cliToolVersion)
        return exitOK
    case "tokens":
        return c.printTokens(args[1:])
    case "ast":
        return c.printAST(args[1:])
    case "check":
        return c.check(args[1:])
    case "run":
        return c.runProgram(args[1:])
    default:
        return c.runProgram(args)
    }
}

func (c *cli) usage(w io.Writer) {
    fmt.Fprintln(w, "Usage: rev [--config <file>] [run|tokens|ast|check] [<file>]")
    fmt.Fprintln(w, "Reads the program from standard input when no file is given.")
}

// diagnostics is where program errors are reported, stdout unless the
// configuration says otherwise.
func (c *cli) diagnostics() io.Writer {
    if c.cfg.Diagnostics == config.Stderr {
        return c.stderr
    }
    return c.stdout
}

// open selects the source stream: the named file, or stdin when there is none.
func (c *cli) open(args []string) (io.ReadCloser, bool) {
    if len(args) > 1 {
        fmt.Fprintln(c.diagnostics(), "TOO MANY FILENAMES")
        return nil, false
    }
    if len(args) == 0 {
        return io.NopCloser(c.stdin), true
    }
    f, err := os.Open(args[0])
    if err != nil {
        fmt.Fprintln(c.diagnostics(), "COULD NOT OPEN "+args[0])
        return nil, false
    }
    return f, true
}

func (c *cli) runProgram(args []string) int {
    src, ok := c.open(args)
    if !ok {
        return exitUsage
    }
    defer src.Close()

    opts := interp.Options{Diagnostics: c.diagnostics(), FirstLine: c.cfg.FirstLine}
    if c.cfg.Trace {
        opts.Trace = c.stderr
    }
    res, err := interp.Run(src, c.stdout, opts)
    if err != nil {
        fmt.Fprintln(c.stderr, "[Error]", err)
        return exitUsage
    }
    if !res.OK() {
        return exitProgram
    }
    if c.cfg.TrailingNewline {
        fmt.Fprintln(c.stdout)
    }
    return exitOK
}

type tokenOut struct {
    Type  string `json:"type"`
    Value string `json:"value"`
    Line  int    `json:"line"`
}

func (c *cli) printTokens(args []string) int {
    src, ok := c.open(args)
    if !ok {
        return exitUsage
    }
    defer src.Close()

    lex := lexer.NewAt(src, c.cfg.FirstLine)
    enc := json.NewEncoder(c.stdout)
    enc.SetEscapeHTML(false)
    // json.Encoder by default emits minified JSON
    for {
        t := lex.Next()
        if err := enc.Encode(tokenOut{Type: string(t.Kind), Value: t.Lit, Line: t.Line}); err != nil {
            fmt.Fprintln(c.stderr, "[Error]", err)
            return exitUsage
        }
        if t.Kind == lexer.DONE {
            break
        }
    }
    if err := lex.Err(); err != nil {
        fmt.Fprintln(c.stderr, "[Error]", err)
        return exitUsage
    }
    if lex.Errors() > 0 {
        return exitProgram
    }
    return exitOK
}

// parse runs the parser with diagnostics going to the configured writer.
func (c *cli) parse(args []string) (parser.Program, int) {
    src, ok := c.open(args)
    if !ok {
        return parser.Program{}, exitUsage
    }
    defer src.Close()

    lex := lexer.NewAt(src, c.cfg.FirstLine)
    prog, err := parser.New(lex, diag.New(c.diagnostics())).ParseProgram()
    if rerr := lex.Err(); rerr != nil {
        fmt.Fprintln(c.stderr, "[Error]", rerr)
        return prog, exitUsage
    }
    if err != nil {
        return prog, exitProgram
    }
    return prog, exitOK
}

func (c *cli) printAST(args []string) int {
    prog, code := c.parse(args)
    if code != exitOK {
        return code
    }
    w := bufio.NewWriter(c.stdout)
    enc := json.NewEncoder(w)
    enc.SetEscapeHTML(false)
    enc.SetIndent("", "  ")
    if err := enc.Encode(prog); err != nil {
        fmt.Fprintln(c.stderr, "[Error]", err)
        return exitUsage
    }
    if err := w.Flush(); err != nil {
        fmt.Fprintln(c.stderr, "[Error]", err)
        return exitUsage
    }
    return exitOK
}

func (c *cli) check(args []string) int {
    prog, code := c.parse(args)
    if code != exitOK {
        return code
    }
    if err := parser.Check(prog, diag.New(c.diagnostics())); err != nil {
        return exitProgram
    }
    return exitOK
}
