package parser

// Ordered JSON fields are ensured by struct field order.

// Program is the root of a parsed source. Body is nil for an empty program.
type Program struct {
    Body Node   `json:"body"`
    Type string `json:"type"`
}

// Node is implemented by every AST node kind. Pos is the source line used in
// diagnostics.
type Node interface{ Pos() int }

type StmtList struct {
    First Node   `json:"first"`
    Line  int    `json:"line"`
    Rest  Node   `json:"rest"`
    Type  string `json:"type"`
}
func (n StmtList) Pos() int { return n.Line }

type Let struct {
    Line  int    `json:"line"`
    Name  string `json:"name"`
    Type  string `json:"type"`
    Value Node   `json:"value"`
}
func (n Let) Pos() int { return n.Line }

type Print struct {
    Line  int    `json:"line"`
    Type  string `json:"type"`
    Value Node   `json:"value"`
}
func (n Print) Pos() int { return n.Line }

type If struct {
    Body Node   `json:"body"`
    Cond Node   `json:"condition"`
    Line int    `json:"line"`
    Type string `json:"type"`
}
func (n If) Pos() int { return n.Line }

type Loop struct {
    Body Node   `json:"body"`
    Cond Node   `json:"condition"`
    Line int    `json:"line"`
    Type string `json:"type"`
}
func (n Loop) Pos() int { return n.Line }

// Binary is one of the four arithmetic operators; Op is "+", "-", "*" or "/".
type Binary struct {
    Left  Node   `json:"left"`
    Line  int    `json:"line"`
    Op    string `json:"operator"`
    Right Node   `json:"right"`
    Type  string `json:"type"`
}
func (n Binary) Pos() int { return n.Line }

// Reverse is the unary "!" operator.
type Reverse struct {
    Line    int    `json:"line"`
    Operand Node   `json:"operand"`
    Type    string `json:"type"`
}
func (n Reverse) Pos() int { return n.Line }

type IntegerLit struct {
    Line  int    `json:"line"`
    Type  string `json:"type"`
    Value int64  `json:"value"`
}
func (n IntegerLit) Pos() int { return n.Line }

type StringLit struct {
    Line  int    `json:"line"`
    Type  string `json:"type"`
    Value string `json:"value"`
}
func (n StringLit) Pos() int { return n.Line }

type Identifier struct {
    Line int    `json:"line"`
    Name string `json:"name"`
    Type string `json:"type"`
}
func (n Identifier) Pos() int { return n.Line }

// Children returns the left and right subtrees of n. Either may be nil.
func Children(n Node) (left, right Node) {
    switch x := n.(type) {
    case StmtList:
        return x.First, x.Rest
    case Let:
        return x.Value, nil
    case Print:
        return x.Value, nil
    case If:
        return x.Cond, x.Body
    case Loop:
        return x.Cond, x.Body
    case Binary:
        return x.Left, x.Right
    case Reverse:
        return x.Operand, nil
    }
    return nil, nil
}
