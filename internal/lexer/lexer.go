package lexer

import (
    "bufio"
    "errors"
    "io"
    "strings"
    "unicode"
)

type state int

const (
    start state = iota
    inComment
    inIdent
    inInt
    inString
)

// Lexer turns a character stream into tokens on demand. It is not restartable:
// once the stream is exhausted every call to Next returns DONE.
type Lexer struct {
    in   *bufio.Reader
    line int
    errs int
    err  error
    eof  bool
}

// New returns a lexer whose line counter starts at 0.
func New(r io.Reader) *Lexer { return NewAt(r, 0) }

// NewAt returns a lexer whose line counter starts at line.
func NewAt(r io.Reader, line int) *Lexer {
    br, ok := r.(*bufio.Reader)
    if !ok {
        br = bufio.NewReader(r)
    }
    return &Lexer{in: br, line: line}
}

// Line reports the current value of the line counter.
func (l *Lexer) Line() int { return l.line }

// Errors reports how many ERR tokens have been produced.
func (l *Lexer) Errors() int { return l.errs }

// Err returns the read error that ended the stream, if it was not io.EOF.
func (l *Lexer) Err() error { return l.err }

func (l *Lexer) read() (byte, bool) {
    if l.eof {
        return 0, false
    }
    c, err := l.in.ReadByte()
    if err != nil {
        if !errors.Is(err, io.EOF) {
            l.err = err
        }
        l.eof = true
        return 0, false
    }
    return c, true
}

// unread must only follow a successful read.
func (l *Lexer) unread() { _ = l.in.UnreadByte() }

func (l *Lexer) peek() byte {
    b, err := l.in.Peek(1)
    if err != nil || len(b) == 0 {
        return 0
    }
    return b[0]
}

func (l *Lexer) token(k Kind, lit string) Token { return Token{Kind: k, Lit: lit, Line: l.line} }

func (l *Lexer) fail(lit string) Token {
    l.errs++
    return l.token(ERR, lit)
}

func (l *Lexer) word(w string) Token {
    if k, ok := keywords[w]; ok {
        return l.token(k, w)
    }
    return l.token(ID, w)
}

// Next returns the next token from the stream.
func (l *Lexer) Next() Token {
    st := start
    var lexeme strings.Builder

    for {
        ch, ok := l.read()
        if !ok {
            break
        }

        switch st {
        case start:
            switch {
            case ch == '\n':
                l.line++
                continue
            case isSpace(ch):
                continue
            case ch == '=' || ch == '|' || ch == '&':
                // reserved, currently inert
                continue
            case ch == '"':
                st = inString
                continue
            case isLetter(ch):
                lexeme.WriteByte(ch)
                st = inIdent
                continue
            case isDigit(ch):
                lexeme.WriteByte(ch)
                st = inInt
                continue
            case ch == '/' && l.peek() == '/':
                st = inComment
                continue
            }
            if k, ok := marks[ch]; ok {
                return l.token(k, string(ch))
            }
            l.line++
            return l.fail(string(ch))

        case inComment:
            if ch == '\n' {
                l.unread()
                st = start
            }

        case inIdent:
            if isLetter(ch) || isDigit(ch) {
                lexeme.WriteByte(ch)
                continue
            }
            l.unread()
            return l.word(lexeme.String())

        case inInt:
            if isDigit(ch) {
                lexeme.WriteByte(ch)
                continue
            }
            l.unread()
            return l.token(INT, lexeme.String())

        case inString:
            switch ch {
            case '\\':
                esc, ok := l.read()
                if !ok {
                    return l.fail(`"` + lexeme.String())
                }
                if esc == 'n' {
                    esc = '\n'
                }
                lexeme.WriteByte(esc)
            case '"':
                return l.token(STR, lexeme.String())
            case '\n':
                l.line++
                lexeme.WriteByte(ch)
                return l.fail(`"` + lexeme.String())
            default:
                lexeme.WriteByte(ch)
            }
        }
    }

    switch st {
    case inIdent:
        return l.word(lexeme.String())
    case inInt:
        return l.token(INT, lexeme.String())
    case inString:
        return l.fail(`"` + lexeme.String())
    }
    return l.token(DONE, "")
}

// Lex tokenizes src completely. The result always ends with a DONE token.
func Lex(src string) []Token {
    l := New(strings.NewReader(src))
    var out []Token
    for {
        t := l.Next()
        out = append(out, t)
        if t.Kind == DONE {
            return out
        }
    }
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isLetter(b byte) bool { return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') }

func isSpace(b byte) bool { return b < unicode.MaxASCII && unicode.IsSpace(rune(b)) }
