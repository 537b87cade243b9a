package parser

import (
    "errors"
    "fmt"
    "strconv"

    "rev-lang/impl/internal/diag"
    "rev-lang/impl/internal/lexer"
)

// ErrSyntax is returned by ParseProgram when at least one diagnostic was
// reported.
var ErrSyntax = errors.New("syntax error")

// Parser is a predictive recursive-descent parser pulling tokens from a
// lexer with one token of pushback. A failing production reports a
// diagnostic and returns nil; callers add their own diagnostic and give up
// too, so one failure produces a cascade of messages and no recovery.
type Parser struct {
    lex    *lexer.Lexer
    diag   *diag.Sink
    pushed *lexer.Token
    errs   int
}

func New(lex *lexer.Lexer, sink *diag.Sink) *Parser { return &Parser{lex: lex, diag: sink} }

func (p *Parser) next() lexer.Token {
    if p.pushed != nil {
        t := *p.pushed
        p.pushed = nil
        return t
    }
    return p.lex.Next()
}

// pushBack panics if a token is already buffered; no production does that.
func (p *Parser) pushBack(t lexer.Token) {
    if p.pushed != nil {
        panic(fmt.Sprintf("parser: push back of %v while holding %v", t, *p.pushed))
    }
    p.pushed = &t
}

func (p *Parser) errorf(format string, args ...any) {
    p.errs++
    p.diag.Errorf(p.lex.Line(), format, args...)
}

// ParseProgram parses the whole token stream.
func (p *Parser) ParseProgram() (Program, error) {
    body, ok := p.parseStmtList()
    if !ok {
        p.errorf(`Prog Error: No "Slist"`)
    } else if t := p.next(); t.Kind != lexer.DONE {
        p.errorf(`Prog Error: Unexpected %q`, t.Kind)
    }
    if p.errs > 0 {
        return Program{Type: "Program"}, fmt.Errorf("%w: %d error(s)", ErrSyntax, p.errs)
    }
    return Program{Body: body, Type: "Program"}, nil
}

// StmtList := ';' StmtList | Stmt ';' StmtList | ε
func (p *Parser) parseStmtList() (Node, bool) {
    t := p.next()
    if t.Kind == lexer.SC {
        return p.parseStmtList()
    }
    p.pushBack(t)

    s, ok := p.parseStmt()
    if !ok || s == nil {
        return nil, ok
    }
    if t := p.next(); t.Kind != lexer.SC {
        p.pushBack(t)
        p.errorf(`Slist Error: Missing "SC" after "Stmt"`)
        return nil, false
    }
    rest, ok := p.parseStmtList()
    if !ok {
        return nil, false
    }
    return StmtList{First: s, Line: s.Pos(), Rest: rest, Type: "StmtList"}, true
}

// parseStmt returns (nil, true) when the statement list ends here: at end of
// input, or at an "end" that is left for the enclosing if or loop.
func (p *Parser) parseStmt() (Node, bool) {
    var n Node
    t := p.next()
    switch t.Kind {
    case lexer.DONE:
        return nil, true
    case lexer.END:
        p.pushBack(t)
        return nil, true
    case lexer.IF:
        n = p.parseBlockStmt(t, "IfStmt")
    case lexer.LOOP:
        n = p.parseBlockStmt(t, "LoopStmt")
    case lexer.PRINT:
        n = p.parsePrint(t)
    case lexer.LET:
        n = p.parseLet()
    default:
        p.errorf(`Stmt Error: "Stmt" expected`)
    }
    return n, n != nil
}

// IfStmt   := 'if' Expr 'begin' StmtList 'end'
// LoopStmt := 'loop' Expr 'begin' StmtList 'end'
func (p *Parser) parseBlockStmt(kw lexer.Token, name string) Node {
    word := string(kw.Kind)
    cond := p.parseExpr()
    if cond == nil {
        p.errorf(`%s Error: Missing "Expr" after %q`, name, word)
        return nil
    }
    if t := p.next(); t.Kind != lexer.BEGIN {
        p.errorf(`%s Error: Missing "BEGIN" after "%s Expr"`, name, word)
        return nil
    }
    body, ok := p.parseStmtList()
    if !ok {
        p.errorf(`%s Error: Missing "Slist" after "%s Expr BEGIN"`, name, word)
        return nil
    }
    if t := p.next(); t.Kind != lexer.END {
        p.errorf(`%s Error: Missing "END" after "%s Expr BEGIN Slist"`, name, word)
        return nil
    }
    if kw.Kind == lexer.LOOP {
        return Loop{Body: body, Cond: cond, Line: kw.Line, Type: "Loop"}
    }
    return If{Body: body, Cond: cond, Line: kw.Line, Type: "If"}
}

// PrintStmt := 'print' Expr
func (p *Parser) parsePrint(kw lexer.Token) Node {
    ex := p.parseExpr()
    if ex == nil {
        p.errorf(`PrintStmt Error: Missing "Expr" after "PRINT"`)
        return nil
    }
    return Print{Line: kw.Line, Type: "Print", Value: ex}
}

// LetStmt := 'let' ID Expr
func (p *Parser) parseLet() Node {
    id := p.next()
    if id.Kind != lexer.ID {
        p.errorf(`LetStmt Error: Missing "ID" after "LET"`)
        return nil
    }
    ex := p.parseExpr()
    if ex == nil {
        p.errorf(`LetStmt Error: Missing "Expr" after "LET ID"`)
        return nil
    }
    return Let{Line: id.Line, Name: id.Lit, Type: "Let", Value: ex}
}

// Expr := Prod (('+'|'-') Prod)*
func (p *Parser) parseExpr() Node {
    left := p.parseProd()
    if left == nil {
        p.errorf(`Expr Error: "Prod" expected`)
        return nil
    }
    for {
        t := p.next()
        if t.Kind != lexer.PLUS && t.Kind != lexer.MINUS {
            p.pushBack(t)
            return left
        }
        right := p.parseProd()
        if right == nil {
            p.errorf(`Expr Error: Missing "Prod" after "PLUS" or "MINUS" operator`)
            return nil
        }
        left = Binary{Left: left, Line: t.Line, Op: t.Lit, Right: right, Type: "Binary"}
    }
}

// Prod := Rev (('*'|'/') Rev)*
func (p *Parser) parseProd() Node {
    left := p.parseRev()
    if left == nil {
        p.errorf(`Prod Error: "Rev" expected`)
        return nil
    }
    for {
        t := p.next()
        if t.Kind != lexer.STAR && t.Kind != lexer.SLASH {
            p.pushBack(t)
            return left
        }
        right := p.parseRev()
        if right == nil {
            p.errorf(`Prod Error: Missing "Rev" after "STAR" or "SLASH" operator`)
            return nil
        }
        left = Binary{Left: left, Line: t.Line, Op: t.Lit, Right: right, Type: "Binary"}
    }
}

// Rev := '!' Rev | Primary
func (p *Parser) parseRev() Node {
    t := p.next()
    if t.Kind != lexer.BANG {
        p.pushBack(t)
        n := p.parsePrimary()
        if n == nil {
            p.errorf(`Rev Error: "Rev" expected`)
            return nil
        }
        return n
    }
    operand := p.parseRev()
    if operand == nil {
        p.errorf(`Rev Error: Missing "Rev" after "BANG" operator`)
        return nil
    }
    return Reverse{Line: p.lex.Line(), Operand: operand, Type: "Reverse"}
}

// Primary := ID | INT | STR | '(' Expr ')'
func (p *Parser) parsePrimary() Node {
    t := p.next()
    switch t.Kind {
    case lexer.ID:
        return Identifier{Line: t.Line, Name: t.Lit, Type: "Identifier"}
    case lexer.INT:
        v, err := strconv.ParseInt(t.Lit, 10, 64)
        if err != nil {
            p.errorf(`Primary Error: Integer constant out of range`)
            return nil
        }
        return IntegerLit{Line: t.Line, Type: "Integer", Value: v}
    case lexer.STR:
        return StringLit{Line: t.Line, Type: "String", Value: t.Lit}
    case lexer.LPAREN:
        ex := p.parseExpr()
        if ex == nil {
            p.errorf(`Primary Error: Missing "Expr" after "LPAREN"`)
            return nil
        }
        if t := p.next(); t.Kind != lexer.RPAREN {
            p.errorf(`Primary Error: Missing "RPAREN" after "Expr"`)
            return nil
        }
        return ex
    }
    p.errorf(`Primary Error: "Primary" expected`)
    return nil
}
