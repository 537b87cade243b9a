package lexer

// Kind classifies a token. Values double as the names printed by `rev tokens`.
type Kind string

const (
    ID  Kind = "ID"
    INT Kind = "INT"
    STR Kind = "STR"

    // keywords
    PRINT Kind = "PRINT"
    LET   Kind = "LET"
    IF    Kind = "IF"
    LOOP  Kind = "LOOP"
    BEGIN Kind = "BEGIN"
    END   Kind = "END"

    PLUS   Kind = "PLUS"
    MINUS  Kind = "MINUS"
    STAR   Kind = "STAR"
    SLASH  Kind = "SLASH"
    BANG   Kind = "BANG"
    LPAREN Kind = "LPAREN"
    RPAREN Kind = "RPAREN"
    SC     Kind = "SC"

    DONE Kind = "DONE"
    ERR  Kind = "ERR"
)

var keywords = map[string]Kind{
    "print": PRINT,
    "let":   LET,
    "if":    IF,
    "loop":  LOOP,
    "begin": BEGIN,
    "end":   END,
}

var marks = map[byte]Kind{
    '+': PLUS,
    '-': MINUS,
    '*': STAR,
    '/': SLASH,
    '!': BANG,
    '(': LPAREN,
    ')': RPAREN,
    ';': SC,
}

// Token is a classified lexeme together with the line counter value at the
// point it was produced.
type Token struct {
    Kind Kind
    Lit  string
    Line int
}

func (t Token) String() string {
    switch t.Kind {
    case ID, INT, STR, ERR:
        return string(t.Kind) + "(" + t.Lit + ")"
    }
    return string(t.Kind)
}
